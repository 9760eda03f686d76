package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/roomgrid/roombook/internal/config"
	"github.com/roomgrid/roombook/internal/repository"
	"github.com/roomgrid/roombook/internal/utils"
)

// AuthHandler bundles dependencies for the OAuth login endpoints. There
// is no local registration path: identity always comes from the OAuth
// provider, and the callback upserts the user row from the profile.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Log    *logrus.Logger

	// HTTPClient is used for the profile fetch. Tests substitute a client
	// pointed at a stub server.
	HTTPClient *http.Client
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, log *logrus.Logger) *AuthHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Log: log, HTTPClient: http.DefaultClient}
}

// oauthConfig builds the provider configuration from the loaded settings.
func (h *AuthHandler) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.Cfg.OAuthClientID,
		ClientSecret: h.Cfg.OAuthClientSecret,
		RedirectURL:  h.Cfg.OAuthRedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  h.Cfg.OAuthAuthURL,
			TokenURL: h.Cfg.OAuthTokenURL,
		},
	}
}

// ----- DTOs -----

type callbackReq struct {
	Code string `json:"code"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// providerProfile is the subset of the provider's profile payload the
// service reads. The numeric id becomes the stable provider_id.
type providerProfile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Callback handles POST /api/auth/callback. The frontend sends the
// authorization code it received from the provider; the service
// exchanges it for a provider token, reads the profile, upserts the
// user and returns an access/refresh pair.
func (h *AuthHandler) Callback(c echo.Context) error {
	var req callbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, h.HTTPClient)

	tok, err := h.oauthConfig().Exchange(ctx, req.Code)
	if err != nil {
		h.Log.WithError(err).Warn("oauth code exchange failed")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authorization code rejected"})
	}

	profile, err := h.fetchProfile(ctx, tok.AccessToken)
	if err != nil {
		h.Log.WithError(err).Error("fetch provider profile failed")
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load profile"})
	}

	uid, err := h.Users.UpsertFromProfile(ctx, fmt.Sprintf("%d", profile.ID), profile.Email, profile.Name)
	if err != nil {
		h.Log.WithError(err).Error("upsert user failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save user"})
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		h.Log.WithError(err).Error("load user failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}

	return h.issuePair(c, ctx, u.ID, u.Name, u.Email, u.IsAdmin)
}

// fetchProfile reads the current profile from the provider using the
// freshly exchanged access token.
func (h *AuthHandler) fetchProfile(ctx context.Context, accessToken string) (providerProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.Cfg.OAuthProfileURL, nil)
	if err != nil {
		return providerProfile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		return providerProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return providerProfile{}, fmt.Errorf("profile endpoint returned %d", resp.StatusCode)
	}

	var p providerProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return providerProfile{}, err
	}
	if p.ID == 0 {
		return providerProfile{}, errors.New("profile missing id")
	}
	return p, nil
}

// Refresh handles POST /api/auth/refresh. Rotation: the presented token
// is revoked and a new pair is issued, so a replayed old token fails.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(req.RefreshToken)
	uid, err := h.Tokens.ValidateRefresh(ctx, hash)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err != nil {
		h.Log.WithError(err).Error("validate refresh failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to refresh session"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.Log.WithError(err).Error("revoke refresh failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to refresh session"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		h.Log.WithError(err).Error("load user failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to refresh session"})
	}

	return h.issuePair(c, ctx, u.ID, u.Name, u.Email, u.IsAdmin)
}

// Logout handles POST /api/auth/logout. It revokes the presented
// refresh token; access tokens simply age out.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(req.RefreshToken))
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err != nil {
		h.Log.WithError(err).Error("revoke refresh failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to log out"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// issuePair signs a new access token and mints a fresh refresh token,
// storing only the refresh hash.
func (h *AuthHandler) issuePair(c echo.Context, ctx context.Context, uid uint64, name, email string, admin bool) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, name, admin, h.Cfg.AccessTTLMin)
	if err != nil {
		h.Log.WithError(err).Error("issue access token failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		h.Log.WithError(err).Error("issue refresh token failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		h.Log.WithError(err).Error("store refresh token failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: uid, Email: email, Name: name, IsAdmin: admin},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}
