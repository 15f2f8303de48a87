package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/application/event"
	"github.com/minyoungbaek/eventory/internal/domain"
	"github.com/minyoungbaek/eventory/internal/transport/http/dto"
	"github.com/minyoungbaek/eventory/internal/transport/http/middleware"
	"github.com/minyoungbaek/eventory/internal/transport/http/response"
)

type EventsHandler struct {
	svc *event.Service
}

func NewEventsHandler(svc *event.Service) *EventsHandler {
	return &EventsHandler{svc: svc}
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid body"))
		return
	}

	var clubID *uuid.UUID
	if req.ClubID != nil {
		id, err := uuid.Parse(*req.ClubID)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid body", map[string]string{
				"club_id": "must be a valid uuid",
			}))
			return
		}
		clubID = &id
	}

	e, err := h.svc.Create(r.Context(), event.CreateCmd{
		ActorID:     middleware.UserID(r),
		Title:       req.Title,
		Description: req.Description,
		ClubID:      clubID,
		CategoryID:  req.CategoryID,
		CityIDs:     req.CityIDs,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxPeople:   req.MaxPeople,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToEventResp(e))
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f event.ListFilter
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PageSize, _ = strconv.Atoi(q.Get("page_size"))

	if v := q.Get("host_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"host_id": "must be a valid uuid",
			}))
			return
		}
		f.HostID = &id
	}
	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"category_id": "must be an integer",
			}))
			return
		}
		f.CategoryID = &id
	}
	if v := q.Get("city_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"city_id": "must be an integer",
			}))
			return
		}
		f.CityID = &id
	}

	items, total, err := h.svc.List(r.Context(), f)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	page, pageSize := f.Page, f.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	response.Data(w, http.StatusOK, dto.EventListResp{
		Items:    dto.ToEventResps(items),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *EventsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	es, err := h.svc.ListMine(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResps(es))
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathUUID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	e, err := h.svc.Get(r.Context(), eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(e))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathUUID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var req dto.UpdateEventReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid body"))
		return
	}

	meta := map[string]string{}
	cmd := event.UpdateCmd{
		ActorID:     middleware.UserID(r),
		EventID:     eventID,
		Title:       patchField(req.Title, "title", meta),
		Description: patchField(req.Description, "description", meta),
		CategoryID:  patchField(req.CategoryID, "category_id", meta),
		CityIDs:     patchField(req.CityIDs, "city_ids", meta),
		StartTime:   patchField(req.StartTime, "start_time", meta),
		EndTime:     patchField(req.EndTime, "end_time", meta),
		MaxPeople:   patchField(req.MaxPeople, "max_people", meta),
	}
	if len(meta) > 0 {
		response.Err(w, r, domain.ErrValidationMeta("invalid body", meta))
		return
	}

	e, err := h.svc.Update(r.Context(), cmd)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(e))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathUUID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), eventID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"msg": "deleted"})
}

func (h *EventsHandler) Join(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathUUID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Join(r.Context(), eventID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, map[string]string{"status": "joined"})
}

func (h *EventsHandler) Out(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathUUID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Out(r.Context(), eventID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"msg": "left"})
}
