package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"github.com/roomgrid/roombook/internal/config"     // cache and rate-limit configuration
	"github.com/roomgrid/roombook/internal/handler"    // handlers implementing the business logic
	"github.com/roomgrid/roombook/internal/middleware" // JWT, cache and rate-limit middleware
)

// Deps carries everything route registration needs.  Keeping it in one
// struct keeps main() readable as the application grows more handlers.
type Deps struct {
	DB        *sql.DB
	Rdb       *redis.Client
	JWTSecret string
	CacheCfg  config.CacheConfig
	RateCfg   config.RateLimitConfig

	Auth     *handler.AuthHandler
	Rooms    *handler.RoomHandler
	Bookings *handler.BookingHandler
}

// Register wires all routes onto the provided Echo instance.
func Register(e *echo.Echo, d Deps) {
	// Health check for load balancers and monitoring probes.  No auth, no
	// rate limit: probes must never be throttled into flapping.
	e.GET("/healthz", handler.Health(d.DB, d.Rdb))

	// Every /api route sees the optional-auth middleware first.  A request
	// without an Authorization header passes through as anonymous; a
	// request with an invalid token is rejected outright.  The rate
	// limiter runs after auth so authenticated users get per-user buckets.
	api := e.Group("/api")
	api.Use(middleware.OptionalAuth(d.JWTSecret))
	api.Use(middleware.NewTokenBucket(d.RateCfg, d.Rdb))

	// Read endpoints go through the Redis response cache.  Mutations
	// (create/delete) flush the cache prefix from inside the handlers, so
	// a cached list never outlives the admission state it reflects.
	cached := middleware.NewRedisCache(d.CacheCfg, d.Rdb)

	// Room reference data.
	api.GET("/rooms", d.Rooms.List, cached)

	// Booking lifecycle.  Create and delete are the admission-controlled
	// operations; the availability check is advisory only.
	api.GET("/bookings", d.Bookings.List, cached)
	api.POST("/bookings", d.Bookings.Create)
	api.GET("/bookings/check-availability", d.Bookings.CheckAvailability, cached)
	api.DELETE("/bookings/:id", d.Bookings.Delete)

	// OAuth session endpoints.  The callback exchanges the provider code;
	// refresh rotates the long-lived token; logout revokes it.
	auth := api.Group("/auth")
	auth.POST("/callback", d.Auth.Callback)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
}
