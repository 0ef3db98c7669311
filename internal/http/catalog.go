package http

import (
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/repository"

	"github.com/go-chi/chi/v5"
)

type whitelabelRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	LogoURL      string `json:"logoUrl" validate:"omitempty,url"`
	PrimaryColor string `json:"primaryColor" validate:"omitempty,max=32"`
	URL          string `json:"url" validate:"omitempty,url"`
}

func (req whitelabelRequest) toDomain() domain.Whitelabel {
	return domain.Whitelabel{
		Name:         req.Name,
		LogoURL:      req.LogoURL,
		PrimaryColor: req.PrimaryColor,
		URL:          req.URL,
	}
}

type proofTypeRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Content string `json:"content"`
}

type namedRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

func (h *Handler) ListWhitelabels(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListWhitelabels(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, err, "whitelabel not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) GetWhitelabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.svc.GetWhitelabel(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "whitelabel not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) CreateWhitelabel(w http.ResponseWriter, r *http.Request) {
	var req whitelabelRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.svc.CreateWhitelabel(r.Context(), req.toDomain())
	if err != nil {
		writeServiceError(w, err, "whitelabel not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateWhitelabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req whitelabelRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.svc.UpdateWhitelabel(r.Context(), id, req.toDomain())
	if err != nil {
		writeServiceError(w, err, "whitelabel not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteWhitelabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteWhitelabel(r.Context(), id); err != nil {
		writeServiceError(w, err, "whitelabel not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListProofTypes(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListProofTypes(r.Context())
	if err != nil {
		writeServiceError(w, err, "proof type not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) GetProofType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.svc.GetProofType(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "proof type not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) CreateProofType(w http.ResponseWriter, r *http.Request) {
	var req proofTypeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.svc.CreateProofType(r.Context(), domain.ProofType{Name: req.Name, Content: req.Content})
	if err != nil {
		writeServiceError(w, err, "proof type not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateProofType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req proofTypeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.svc.UpdateProofType(r.Context(), id, domain.ProofType{Name: req.Name, Content: req.Content})
	if err != nil {
		writeServiceError(w, err, "proof type not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteProofType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteProofType(r.Context(), id); err != nil {
		writeServiceError(w, err, "proof type not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// namedRoutes serves sports and markets, which differ only by table.
type namedRoutes struct {
	h        *Handler
	table    repository.NamedTable
	notFound string
}

func (h *Handler) namedResource(table repository.NamedTable, notFound string) namedRoutes {
	return namedRoutes{h: h, table: table, notFound: notFound}
}

func (n namedRoutes) List(w http.ResponseWriter, r *http.Request) {
	items, err := n.h.svc.ListNamed(r.Context(), n.table)
	if err != nil {
		writeServiceError(w, err, n.notFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (n namedRoutes) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := n.h.svc.GetNamed(r.Context(), n.table, id)
	if err != nil {
		writeServiceError(w, err, n.notFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (n namedRoutes) Create(w http.ResponseWriter, r *http.Request) {
	var req namedRequest
	if !n.h.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := n.h.svc.CreateNamed(r.Context(), n.table, req.Name)
	if err != nil {
		writeServiceError(w, err, n.notFound)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (n namedRoutes) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req namedRequest
	if !n.h.decodeAndValidate(w, r, &req) {
		return
	}
	item, err := n.h.svc.UpdateNamed(r.Context(), n.table, id, req.Name)
	if err != nil {
		writeServiceError(w, err, n.notFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (n namedRoutes) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := n.h.svc.DeleteNamed(r.Context(), n.table, id); err != nil {
		writeServiceError(w, err, n.notFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (n namedRoutes) mount(r chi.Router, prefix string) {
	r.Get(prefix, n.List)
	r.Post(prefix, n.Create)
	r.Get(prefix+"/{id}", n.Get)
	r.Put(prefix+"/{id}", n.Update)
	r.Delete(prefix+"/{id}", n.Delete)
}
