package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RoomHandler serves the room reference-data endpoints.
type RoomHandler struct {
	Rooms RoomStore
	Log   *logrus.Logger
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms RoomStore, log *logrus.Logger) *RoomHandler {
	if rooms == nil {
		panic("nil store passed to NewRoomHandler")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RoomHandler{Rooms: rooms, Log: log}
}

// roomResponse is the JSON shape of a room.
type roomResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// List handles GET /api/rooms, returning all rooms ordered by name.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Error("list rooms failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch rooms"})
	}
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomResponse{ID: r.ID, Name: r.Name})
	}
	return c.JSON(http.StatusOK, out)
}
