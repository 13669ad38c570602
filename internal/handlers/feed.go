package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/verinews/apiserver/internal/services"
	"github.com/verinews/apiserver/internal/store"
)

// FeedHandler serves the classified news feed.
type FeedHandler struct {
	feedService *services.FeedService
	userService *services.UserService
}

// NewFeedHandler constructs a handler with the provided services.
func NewFeedHandler(feedService *services.FeedService, userService *services.UserService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		userService: userService,
	}
}

// FeedRouter registers the feed route on the given router. The feed
// requires an authenticated, admitted account.
func FeedRouter(
	r chi.Router,
	feedService *services.FeedService,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewFeedHandler(feedService, userService)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Use(handler.requireAdmitted)
	r.Get("/", handler.GetFeed)
}

// GetFeed returns classified articles for the `category` or `search`
// query parameters, plus REAL/FAKE counts over the returned items.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	query := strings.TrimSpace(r.URL.Query().Get("search"))

	result, err := h.feedService.Fetch(r.Context(), category, query)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch news")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// requireAdmitted gates the feed on admission status. Admins bypass
// admission entirely.
func (h *FeedHandler) requireAdmitted(next http.Handler) http.Handler {
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

		if !user.Admitted() {
			writeError(w, http.StatusForbidden, "account not approved by admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}
