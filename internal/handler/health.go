package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Health reports liveness plus the state of the two backing stores. The
// endpoint always answers 200 as long as the process is up; degraded
// dependencies are visible in the body for a monitoring probe to act on.
func Health(db *sql.DB, rdb *redis.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		dbStatus := "ok"
		if db == nil {
			dbStatus = "unconfigured"
		} else if err := db.PingContext(ctx); err != nil {
			dbStatus = "down"
		}

		redisStatus := "ok"
		if rdb == nil {
			redisStatus = "unconfigured"
		} else if err := rdb.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}

		return c.JSON(http.StatusOK, echo.Map{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
