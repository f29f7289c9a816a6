package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"driving-quiz-service/internal/app"
	"driving-quiz-service/internal/auth"
	"driving-quiz-service/internal/domain"
	"driving-quiz-service/internal/i18n"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 10

// API serves the JSON endpoints around the practice flow: categories, sign-in, profile and progress.
type API struct {
	service *app.PracticeService
	auth    auth.Authenticator
	log     *zap.Logger
}

func NewAPI(service *app.PracticeService, authenticator auth.Authenticator, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{service: service, auth: authenticator, log: log}
}

// Register mounts the API routes on mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", a.health)
	mux.HandleFunc("GET /categories", a.categories)
	mux.HandleFunc("POST /auth/signup", a.signup)
	mux.HandleFunc("POST /auth/login", a.login)
	mux.HandleFunc("POST /auth/logout", a.logout)
	mux.HandleFunc("GET /auth/me", a.me)
	mux.HandleFunc("GET /profile", a.requireAuth(a.profile))
	mux.HandleFunc("PUT /profile", a.requireAuth(a.updateProfile))
	mux.HandleFunc("GET /players/{id}/stats", a.stats)
	mux.HandleFunc("GET /players/{id}/history", a.history)
}

type categoryResponse struct {
	ID        domain.Category `json:"id"`
	Title     string          `json:"title"`
	Color     string          `json:"color"`
	Questions int             `json:"questions"`
}

type profileResponse struct {
	User  domain.User        `json:"user"`
	Stats domain.PlayerStats `json:"stats"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) categories(w http.ResponseWriter, r *http.Request) {
	tr := translatorFor(r)
	cats, err := a.service.Categories(r.Context())
	if err != nil {
		a.writeError(w, tr, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{ID: c.ID, Title: tr.CategoryTitle(c.ID), Color: c.Color, Questions: c.Questions})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) signup(w http.ResponseWriter, r *http.Request) {
	tr := translatorFor(r)
	var form auth.SignupForm
	if !decodeJSON(w, r, &form) {
		return
	}
	sess, err := a.auth.Signup(r.Context(), form)
	if err != nil {
		a.writeError(w, tr, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	tr := translatorFor(r)
	var form auth.LoginForm
	if !decodeJSON(w, r, &form) {
		return
	}
	sess, err := a.auth.Login(r.Context(), form)
	if err != nil {
		a.writeError(w, tr, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	tr := translatorFor(r)
	if err := a.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		a.writeError(w, tr, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: tr.T("auth.loggedOut")})
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	user, err := a.auth.CurrentUser(r.Context(), bearerToken(r))
	if err != nil {
		a.writeError(w, translatorFor(r), err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// requireAuth only lets signed-in callers through. Nothing else depends on the identity.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.auth.IsAuthenticated(r.Context(), bearerToken(r)) {
			a.writeError(w, translatorFor(r), domain.ErrUnauthenticated)
			return
		}
		next(w, r)
	}
}

func (a *API) profile(w http.ResponseWriter, r *http.Request) {
	tr := translatorFor(r)
	user, err := a.auth.CurrentUser(r.Context(), bearerToken(r))
	if err != nil {
		a.writeError(w, tr, err)
		return
	}
	stats, err := a.service.Stats(r.Context(), user.ID)
	if err != nil {
		a.writeError(w, tr, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{User: user, Stats: stats})
}

func (a *API) updateProfile(w http.ResponseWriter, r *http.Request) {
	tr := translatorFor(r)
	var form auth.ProfileForm
	if !decodeJSON(w, r, &form) {
		return
	}
	user, err := a.auth.UpdateUser(r.Context(), bearerToken(r), form)
	if err != nil {
		a.writeError(w, tr, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.service.Stats(r.Context(), r.PathValue("id"))
	if err != nil {
		a.writeError(w, translatorFor(r), err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) history(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorPayload{Code: "bad_request", Message: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	records, err := a.service.History(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		a.writeError(w, translatorFor(r), err)
		return
	}
	if records == nil {
		records = []domain.SessionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *API) writeError(w http.ResponseWriter, tr i18n.Translator, err error) {
	status, code := classify(err)
	payload := errorPayload{Code: code, Message: err.Error()}

	if verr, ok := auth.AsValidation(err); ok {
		payload.Message = "validation failed"
		payload.Fields = verr.Messages(tr)
		writeJSON(w, status, payload)
		return
	}
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		payload.Message = tr.T("auth.unauthenticated")
	case errors.Is(err, domain.ErrEmailTaken):
		payload.Message = tr.T("auth.emailTaken")
	case status == http.StatusInternalServerError:
		a.log.Error("request failed", zap.Error(err))
		payload.Message = http.StatusText(status)
	}
	writeJSON(w, status, payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Code: "bad_request", Message: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
