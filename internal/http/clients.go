package http

import (
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/repository"

	"github.com/go-chi/chi/v5"
)

type clientRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	WhitelabelID int64  `json:"whitelabelId" validate:"required,gt=0"`
	ProofTypeID  int64  `json:"proofTypeId" validate:"required,gt=0"`
	SportID      int64  `json:"sportId" validate:"required,gt=0"`
	MarketID     int64  `json:"marketId" validate:"required,gt=0"`
	EventName    string `json:"eventName" validate:"max=300"`
	Notes        string `json:"notes"`
}

func (req clientRequest) toDomain() domain.Client {
	return domain.Client{
		Name:         req.Name,
		WhitelabelID: req.WhitelabelID,
		ProofTypeID:  req.ProofTypeID,
		SportID:      req.SportID,
		MarketID:     req.MarketID,
		EventName:    req.EventName,
		Notes:        req.Notes,
	}
}

const clientNotFound = "client not found"

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	whitelabelID, err := parseOptionalInt64(query.Get("whitelabelId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseOptionalInt(query.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.ListClients(r.Context(), repository.ClientListFilter{
		Search:       query.Get("search"),
		WhitelabelID: whitelabelID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeServiceError(w, err, clientNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, clientNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.svc.CreateClient(r.Context(), req.toDomain())
	if err != nil {
		writeServiceError(w, err, clientNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req clientRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.svc.UpdateClient(r.Context(), id, req.toDomain())
	if err != nil {
		writeServiceError(w, err, clientNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteClient(r.Context(), id); err != nil {
		writeServiceError(w, err, clientNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
