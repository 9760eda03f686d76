package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomgrid/roombook/internal/config"
)

func TestCallbackRequiresCode(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil, nil)

	for _, body := range []string{`{}`, `{"code": ""}`, `{"code": "   "}`} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/callback", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, h.Callback(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestCallbackRejectedCode(t *testing.T) {
	// A provider that refuses every code exchange.
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid_grant"}`, http.StatusBadRequest)
	}))
	defer provider.Close()

	h := NewAuthHandler(config.Config{
		OAuthClientID:     "id",
		OAuthClientSecret: "secret",
		OAuthRedirectURI:  "http://localhost/cb",
		OAuthTokenURL:     provider.URL + "/oauth/token",
		OAuthAuthURL:      provider.URL + "/oauth/authorize",
	}, nil, nil, nil)
	h.HTTPClient = provider.Client()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/callback", strings.NewReader(`{"code": "bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Callback(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFetchProfile(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1234, "email": "carol@example.com", "name": "Carol"}`))
	}))
	defer provider.Close()

	h := NewAuthHandler(config.Config{OAuthProfileURL: provider.URL}, nil, nil, nil)
	h.HTTPClient = provider.Client()

	p, err := h.fetchProfile(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), p.ID)
	assert.Equal(t, "carol@example.com", p.Email)
	assert.Equal(t, "Carol", p.Name)

	_, err = h.fetchProfile(context.Background(), "wrong-token")
	assert.Error(t, err)
}

func TestFetchProfileRejectsMissingID(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email": "noid@example.com"}`))
	}))
	defer provider.Close()

	h := NewAuthHandler(config.Config{OAuthProfileURL: provider.URL}, nil, nil, nil)
	h.HTTPClient = provider.Client()

	_, err := h.fetchProfile(context.Background(), "tok")
	assert.Error(t, err)
}
