package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/verinews/apiserver/internal/services"
	"github.com/verinews/apiserver/internal/store"
	"github.com/verinews/apiserver/types"
)

// AdminHandler provides HTTP handlers for user administration.
type AdminHandler struct {
	userService      *services.UserService
	lifecycleService *services.LifecycleService
	auditService     *services.AuditService
}

// NewAdminHandler constructs a handler with the provided services.
func NewAdminHandler(
	userService *services.UserService,
	lifecycleService *services.LifecycleService,
	auditService *services.AuditService,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		lifecycleService: lifecycleService,
		auditService:     auditService,
	}
}

// AdminRouter registers admin routes on the given router. Every route
// requires an authenticated administrator.
func AdminRouter(
	r chi.Router,
	userService *services.UserService,
	lifecycleService *services.LifecycleService,
	auditService *services.AuditService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewAdminHandler(userService, lifecycleService, auditService)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Use(handler.requireAdmin)

	r.Get("/users", handler.ListUsers)
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Post("/approve", handler.ApproveUser)
		r.Post("/reject", handler.RejectUser)
		r.Delete("/", handler.DeleteUser)
	})
	r.Get("/logs", handler.RecentLogs)
}

// ListUsers returns non-admin users, optionally filtered by the
// `search` query parameter.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	users, err := h.userService.List(r.Context(), search)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, UserListResponse{Items: users})
}

func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lifecycleService.Approve)
}

func (h *AdminHandler) RejectUser(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lifecycleService.Reject)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lifecycleService.Delete)
}

// RecentLogs returns the most recent audit entries, newest first. The
// `limit` query parameter defaults to 10.
func (h *AdminHandler) RecentLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.auditService.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list logs")
		return
	}

	writeJSON(w, http.StatusOK, AuditListResponse{Items: entries})
}

func (h *AdminHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id int) (types.AuditEntry, error),
) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := apply(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to apply action")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *AdminHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := h.userService.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load user")
			return
		}

		if !strings.EqualFold(user.Role, types.RoleAdmin) {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserListResponse is the user list payload.
type UserListResponse struct {
	Items []types.User `json:"items"`
}

// AuditListResponse is the recent-logs payload.
type AuditListResponse struct {
	Items []types.AuditEntry `json:"items"`
}

func parseUserID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.New("invalid limit")
	}
	return limit, nil
}
