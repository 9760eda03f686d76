package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomgrid/roombook/internal/utils"
)

const testSecret = "test-secret"

func runOptionalAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error { reached = true; return c.NoContent(http.StatusOK) }
	err := OptionalAuth(testSecret)(next)(c)
	require.NoError(t, err)
	return rec, c, reached
}

func TestOptionalAuthAnonymousPassthrough(t *testing.T) {
	rec, c, reached := runOptionalAuth(t, "")
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))
}

func TestOptionalAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "carol", true, 15)
	require.NoError(t, err)

	_, c, reached := runOptionalAuth(t, "Bearer "+tok.Token)
	require.True(t, reached)
	assert.Equal(t, uint64(7), c.Get("user_id"))
	assert.Equal(t, true, c.Get("is_admin"))
	assert.Equal(t, "carol", c.Get("user_name"))
}

func TestOptionalAuthRejectsBadTokens(t *testing.T) {
	wrongKey, err := utils.NewAccessToken("some-other-secret", 7, "carol", false, 15)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"not a bearer scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + wrongKey.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _, reached := runOptionalAuth(t, tc.header)
			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestOptionalAuthRejectsExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "carol", false, -5)
	require.NoError(t, err)

	rec, _, reached := runOptionalAuth(t, "Bearer "+tok.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
