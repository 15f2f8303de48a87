package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/minyoungbaek/eventory/internal/application/club"
	"github.com/minyoungbaek/eventory/internal/domain"
	"github.com/minyoungbaek/eventory/internal/transport/http/dto"
	"github.com/minyoungbaek/eventory/internal/transport/http/middleware"
	"github.com/minyoungbaek/eventory/internal/transport/http/response"
)

type ClubsHandler struct {
	svc *club.Service
}

func NewClubsHandler(svc *club.Service) *ClubsHandler {
	return &ClubsHandler{svc: svc}
}

func (h *ClubsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClubReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid body"))
		return
	}

	c, err := h.svc.Create(r.Context(), club.CreateCmd{
		ActorID:     middleware.UserID(r),
		Name:        req.Name,
		Description: req.Description,
		MaxPeople:   req.MaxPeople,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToClubResp(c))
}

func (h *ClubsHandler) List(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.List(r.Context())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToClubResps(cs))
}

func (h *ClubsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.ListMine(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToClubResps(cs))
}

func (h *ClubsHandler) Get(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathUUID(r, "club_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), clubID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToClubResp(c))
}

func (h *ClubsHandler) Update(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathUUID(r, "club_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var req dto.UpdateClubReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid body"))
		return
	}

	meta := map[string]string{}
	cmd := club.UpdateCmd{
		ActorID:     middleware.UserID(r),
		ClubID:      clubID,
		Name:        patchField(req.Name, "name", meta),
		Description: patchField(req.Description, "description", meta),
		MaxPeople:   patchField(req.MaxPeople, "max_people", meta),
	}
	if len(meta) > 0 {
		response.Err(w, r, domain.ErrValidationMeta("invalid body", meta))
		return
	}

	c, err := h.svc.Update(r.Context(), cmd)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToClubResp(c))
}

func (h *ClubsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathUUID(r, "club_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), clubID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"msg": "deleted"})
}

func (h *ClubsHandler) Join(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathUUID(r, "club_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Join(r.Context(), clubID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, map[string]string{"status": string(domain.StatusPending)})
}

func (h *ClubsHandler) Out(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathUUID(r, "club_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Out(r.Context(), clubID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"msg": "left"})
}

func (h *ClubsHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathUUID(r, "club_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	ms, err := h.svc.Applicants(r.Context(), clubID, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToApplicantResps(ms))
}

func (h *ClubsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathUUID(r, "club_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	applicantID, err := pathUUID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Approve(r.Context(), clubID, applicantID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"status": string(domain.StatusAccepted)})
}

func (h *ClubsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathUUID(r, "club_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	applicantID, err := pathUUID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Reject(r.Context(), clubID, applicantID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"msg": "rejected"})
}
