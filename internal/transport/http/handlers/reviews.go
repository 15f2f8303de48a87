package handlers

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/application/review"
	"github.com/minyoungbaek/eventory/internal/domain"
	"github.com/minyoungbaek/eventory/internal/transport/http/dto"
	"github.com/minyoungbaek/eventory/internal/transport/http/middleware"
	"github.com/minyoungbaek/eventory/internal/transport/http/response"
)

type ReviewsHandler struct {
	svc *review.Service
}

func NewReviewsHandler(svc *review.Service) *ReviewsHandler {
	return &ReviewsHandler{svc: svc}
}

func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReviewReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid body"))
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid body", map[string]string{
			"event_id": "must be a valid uuid",
		}))
		return
	}

	rv, err := h.svc.Create(r.Context(), review.CreateCmd{
		ActorID:     middleware.UserID(r),
		EventID:     eventID,
		Score:       req.Score,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToReviewResp(rv))
}

func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f review.ListFilter
	if v := q.Get("event_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"event_id": "must be a valid uuid",
			}))
			return
		}
		f.EventID = &id
	}
	if v := q.Get("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"user_id": "must be a valid uuid",
			}))
			return
		}
		f.UserID = &id
	}

	rvs, err := h.svc.List(r.Context(), f, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToReviewResps(rvs))
}

func (h *ReviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathUUID(r, "review_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	rv, err := h.svc.Get(r.Context(), reviewID, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToReviewResp(rv))
}

func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathUUID(r, "review_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var req dto.UpdateReviewReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid body"))
		return
	}

	meta := map[string]string{}
	cmd := review.UpdateCmd{
		ActorID:  middleware.UserID(r),
		ReviewID: reviewID,
		Score:    patchField(req.Score, "score", meta),
		Title:    patchField(req.Title, "title", meta),
	}
	if len(meta) > 0 {
		response.Err(w, r, domain.ErrValidationMeta("invalid body", meta))
		return
	}
	// description: absent keeps, null clears, value replaces
	if req.Description.Set {
		if req.Description.Valid {
			v := req.Description.Value
			cmd.Description = &v
		} else {
			cmd.ClearDescription = true
		}
	}

	rv, err := h.svc.Update(r.Context(), cmd)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToReviewResp(rv))
}

func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathUUID(r, "review_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), reviewID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"msg": "deleted"})
}
