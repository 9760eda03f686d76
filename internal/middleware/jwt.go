package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// OptionalAuth returns an Echo middleware that validates a Bearer access
// token when one is present and injects the token's claims into the
// request context.  Requests without an Authorization header pass through
// anonymously: the booking API still accepts unauthenticated creates and
// treats some legacy bookings as ownerless, so authentication cannot be
// mandatory at the routing layer.  A header that is present but invalid
// is rejected with 401 rather than silently downgraded to anonymous.
//
// On success handlers can read:
//
//	c.Get("user_id")  – uint64 application user id
//	c.Get("is_admin") – bool administrative capability
//	c.Get("user_name") – string display name
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				// Anonymous request; downstream handlers decide what
				// an absent principal is allowed to do.
				return next(c)
			}
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse the token using the HS256 signing method and our
			// secret.  A token signed with any other method is rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// JSON numbers decode as float64; normalize the subject to
			// uint64 here so handlers do not repeat the conversion.
			if sub, ok := claims["sub"].(float64); ok && sub > 0 {
				c.Set("user_id", uint64(sub))
			}
			if admin, ok := claims["admin"].(bool); ok {
				c.Set("is_admin", admin)
			}
			if name, ok := claims["name"].(string); ok {
				c.Set("user_name", name)
			}
			return next(c)
		}
	}
}
