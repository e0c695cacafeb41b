package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"conversation-report/internal/access"
	"conversation-report/internal/i18n"
	myMiddleware "conversation-report/internal/middleware"
)

type Handler struct {
	controller *Controller
	log        *zerolog.Logger
}

func NewHandler(controller *Controller, log *zerolog.Logger) *Handler {
	return &Handler{controller: controller, log: log}
}

// Report serves GET /report/conversations?course=&conversation=.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	tr := i18n.FromRequest(r)
	q := r.URL.Query()

	courseID, err := optionalInt(q, "course")
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}
	conversationID, err := optionalInt(q, "conversation")
	if err != nil {
		http.Error(w, "invalid conversation id", http.StatusBadRequest)
		return
	}

	req := Request{
		CourseID:       courseID,
		ConversationID: conversationID,
		CallerID:       myMiddleware.CallerID(r.Context()),
	}

	page, err := h.controller.Render(r.Context(), req, tr)
	if err != nil {
		h.writeError(w, r, err, tr)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout(tr.Lang(), page.Title, page.Heading, page.Body).Render(r.Context(), w); err != nil {
		h.log.Error().Err(err).Msg("render report failed")
	}
}

// CourseNavigation serves GET /api/courses/{id}/navigation.
func (h *Handler) CourseNavigation(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}

	nodes, err := h.controller.CourseNavigation(r.Context(), myMiddleware.CallerID(r.Context()), courseID, i18n.FromRequest(r))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "course not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Int("course_id", courseID).Msg("course navigation failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(nodes)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, tr *i18n.Printer) {
	status, key := http.StatusInternalServerError, "error"
	switch {
	case errors.Is(err, access.ErrDenied):
		status, key = http.StatusForbidden, "accessdenied"
		h.log.Warn().Err(err).Str("path", r.URL.RequestURI()).Msg("report access denied")
	case errors.Is(err, ErrNotFound):
		status, key = http.StatusNotFound, "notfound"
	default:
		h.log.Error().Err(err).Str("path", r.URL.RequestURI()).Msg("build report failed")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	page := layout(tr.Lang(), tr.Translate("pagetitle"), tr.Translate("pageheading"), errorBody(tr.Translate(key)))
	if err := page.Render(r.Context(), w); err != nil {
		h.log.Error().Err(err).Msg("render error page failed")
	}
}

// optionalInt returns nil when the parameter is absent or empty.
func optionalInt(q url.Values, key string) (*int, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
