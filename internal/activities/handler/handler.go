package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mergington/internal/activities/models"
	dErrors "mergington/pkg/domain-errors"
	"mergington/pkg/email"
	"mergington/pkg/platform/httputil"
	"mergington/pkg/requestcontext"
)

// Service defines the interface for activity registry operations.
type Service interface {
	List(ctx context.Context) (models.Catalog, error)
	Get(ctx context.Context, name string) (*models.Activity, error)
	Signup(ctx context.Context, activityName, email string) (*models.SignupResult, error)
}

// Handler serves the activity listing and signup endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new activities Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the activities routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.handleListActivities)
		r.Get("/{activity_name}", h.handleGetActivity)
		r.Post("/{activity_name}/signup", h.handleSignup)
	})
}

func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalog, err := h.service.List(ctx)
	if err != nil {
		h.logInternal(ctx, "failed to list activities", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, catalog)
}

func (h *Handler) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, ok := activityName(r)
	if !ok {
		httputil.WriteError(w, models.ErrActivityNotFound)
		return
	}

	activity, err := h.service.Get(ctx, name)
	if err != nil {
		h.logInternal(ctx, "failed to load activity", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, activity)
}

// handleSignup registers the email query parameter for the activity in the
// path. A missing email parameter is treated as empty.
func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr := r.URL.Query().Get("email")
	name, ok := activityName(r)
	if !ok {
		// email validation still comes before the existence check
		if _, err := email.Normalize(addr); err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteError(w, models.ErrActivityNotFound)
		return
	}

	result, err := h.service.Signup(ctx, name, addr)
	if err != nil {
		h.logInternal(ctx, "failed to sign up", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.MessageResponse{Message: result.Message()})
}

func (h *Handler) logInternal(ctx context.Context, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) || !isDomainErr(err) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func isDomainErr(err error) bool {
	_, ok := dErrors.As(err)
	return ok
}

// activityName returns the percent-decoded {activity_name} segment. chi
// matches on RawPath when the request carries one, leaving the segment
// escaped; otherwise Path is already decoded.
func activityName(r *http.Request) (string, bool) {
	name := chi.URLParam(r, "activity_name")
	if r.URL.RawPath == "" {
		return name, true
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", false
	}
	return decoded, true
}
