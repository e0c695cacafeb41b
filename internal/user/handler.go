package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"
)

const TokenCookie = "token"

type Handler struct {
	Service *Service
	log     *zerolog.Logger
}

func NewHandler(s *Service, log *zerolog.Logger) *Handler {
	return &Handler{Service: s, log: log}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Str("username", req.Username).Msg("register failed")
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.log.Error().Err(err).Msg("login failed")
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// Report pages are browsed with plain links, so the token also rides in a cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    res.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(tokenTTL.Seconds()),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// View renders the profile page that report links point at.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	u, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", id).Msg("load profile failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if u == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := profilePage(u).Render(r.Context(), w); err != nil {
		h.log.Error().Err(err).Msg("render profile failed")
	}
}

func profilePage(u *User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		name := templ.EscapeString(u.FullName())
		_, err := io.WriteString(w, "<!doctype html><html><head><meta charset=\"utf-8\"><title>"+name+
			"</title></head><body><h1>"+name+"</h1><p>"+templ.EscapeString(u.Username)+"</p></body></html>")
		return err
	})
}
