package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"driving-quiz-service/internal/app"
	"driving-quiz-service/internal/auth"
	"driving-quiz-service/internal/domain"
	"driving-quiz-service/internal/infra/memory"
)

type apiFixture struct {
	server  *httptest.Server
	service *app.PracticeService
}

func newAPIFixture(t *testing.T) apiFixture {
	t.Helper()
	service := newTestService()
	authenticator := auth.NewMockAuthenticator(memory.NewKVStore(), time.Hour, zap.NewNop())
	mux := http.NewServeMux()
	NewAPI(service, authenticator, zap.NewNop()).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return apiFixture{server: server, service: service}
}

func (f apiFixture) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "en")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAPIHealthAndCategories(t *testing.T) {
	f := newAPIFixture(t)

	var health map[string]string
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/healthz", "", nil, &health))
	assert.Equal(t, "ok", health["status"])

	var cats []categoryResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/categories", "", nil, &cats))
	require.Len(t, cats, 4)
	assert.Equal(t, categoryResponse{ID: domain.CategoryTrafficRules, Title: "Traffic Rules", Color: "#3b82f6", Questions: 2}, cats[0])
}

func TestAPIAuthFlowAndProfileGate(t *testing.T) {
	f := newAPIFixture(t)

	var errResp errorPayload
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/profile", "", nil, &errResp))
	assert.Equal(t, "unauthenticated", errResp.Code)
	assert.Equal(t, "Please log in first", errResp.Message)

	var sess auth.Session
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/auth/signup", "", auth.SignupForm{
		Name: "Ada", Email: "ada@example.com", Password: "engine1843", ConfirmPassword: "engine1843",
	}, &sess))
	require.NotEmpty(t, sess.Token)

	var me domain.User
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/auth/me", sess.Token, nil, &me))
	assert.Equal(t, "ada@example.com", me.Email)

	var profile profileResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/profile", sess.Token, nil, &profile))
	assert.Equal(t, me.ID, profile.User.ID)
	assert.Equal(t, me.ID, profile.Stats.PlayerID)
	assert.Len(t, profile.Stats.Categories, 4)

	var updated domain.User
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/profile", sess.Token, auth.ProfileForm{
		Name: "Ada Lovelace", Email: "ada@example.com", Username: "countess",
	}, &updated))
	assert.Equal(t, "countess", updated.Username)

	var msg messageResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/auth/logout", sess.Token, nil, &msg))
	assert.Equal(t, "Logged out", msg.Message)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/auth/me", sess.Token, nil, nil))
}

func TestAPISignupValidation(t *testing.T) {
	f := newAPIFixture(t)

	var errResp errorPayload
	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/auth/signup", "", auth.SignupForm{
		Name: "Ada", Email: "ada", Password: "short",
	}, &errResp))
	assert.Equal(t, "validation_failed", errResp.Code)
	assert.Equal(t, "Please enter a valid email", errResp.Fields["Email"])
	assert.Equal(t, "Password must be at least 8 characters and contain letters and numbers", errResp.Fields["Password"])

	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": ""}, &errResp))
	assert.Equal(t, "Email is required", errResp.Fields["Email"])
}

func TestAPISignupRejectsTakenEmail(t *testing.T) {
	f := newAPIFixture(t)
	form := auth.SignupForm{Name: "Ada", Email: "ada@example.com", Password: "engine1843", ConfirmPassword: "engine1843"}
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/auth/signup", "", form, nil))

	var errResp errorPayload
	require.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/auth/signup", "", form, &errResp))
	assert.Equal(t, "email_taken", errResp.Code)
	assert.Equal(t, "This email is already registered", errResp.Message)
}

func TestAPIPlayerProgress(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	answers := correctAnswers()

	view, err := f.service.Start(ctx, "p1", domain.CategoryAll)
	require.NoError(t, err)
	for !view.Completed {
		_, err = f.service.Answer(ctx, "p1", answers[view.Question.ID])
		require.NoError(t, err)
		view, err = f.service.Next(ctx, "p1")
		require.NoError(t, err)
	}

	var stats domain.PlayerStats
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/players/p1/stats", "", nil, &stats))
	assert.Equal(t, 1, stats.SessionsCompleted)
	assert.Equal(t, 5, stats.CorrectAnswers)
	assert.Equal(t, 100, stats.AverageScore)

	var history []domain.SessionRecord
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/players/p1/history?limit=5", "", nil, &history))
	require.Len(t, history, 1)
	assert.Equal(t, domain.TierExcellent, history[0].Tier)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/players/nobody/history", "", nil, &history))
	assert.Empty(t, history)

	var errResp errorPayload
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/players/p1/history?limit=zero", "", nil, &errResp))
}
