package http

import (
	"errors"
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type authenticateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createAdminRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	RoleID   int64  `json:"roleId" validate:"required,gt=0"`
}

type updatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type updateRoleRequest struct {
	RoleID int64 `json:"roleId" validate:"required,gt=0"`
}

type roleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Permissions []string `json:"permissions" validate:"dive,max=100"`
}

const (
	adminNotFound = "admin not found"
	roleNotFound  = "role not found"
)

func (h *Handler) AuthenticateAdmin(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	admin, err := h.svc.AuthenticateAdmin(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.log.Info("admin authentication rejected",
			zap.String("username", req.Username),
			zap.String("request_id", RequestIDFromContext(r.Context())),
		)
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeServiceError(w, err, adminNotFound)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAdmins(r.Context())
	if err != nil {
		writeServiceError(w, err, adminNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	admin, err := h.svc.GetAdminByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, adminNotFound)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	admin, err := h.svc.CreateAdmin(r.Context(), req.Username, req.Password, req.RoleID)
	if err != nil {
		writeServiceError(w, err, adminNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}

func (h *Handler) UpdateAdminPassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updatePasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.UpdateAdminPassword(r.Context(), id, req.Password); err != nil {
		writeServiceError(w, err, adminNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateAdminRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updateRoleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.UpdateAdminRole(r.Context(), id, req.RoleID); err != nil {
		writeServiceError(w, err, adminNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteAdmin(r.Context(), id); err != nil {
		writeServiceError(w, err, adminNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListRoles(r.Context())
	if err != nil {
		writeServiceError(w, err, roleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := h.svc.GetRole(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, roleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	role, err := h.svc.CreateRole(r.Context(), domain.Role{Name: req.Name, Permissions: req.Permissions})
	if err != nil {
		writeServiceError(w, err, roleNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, role)
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req roleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	role, err := h.svc.UpdateRole(r.Context(), id, domain.Role{Name: req.Name, Permissions: req.Permissions})
	if err != nil {
		writeServiceError(w, err, roleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteRole(r.Context(), id); err != nil {
		writeServiceError(w, err, roleNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
