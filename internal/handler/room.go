package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aoimura/meeting-room-reservation/internal/model"
	"github.com/aoimura/meeting-room-reservation/internal/repository"
)

// RoomHandler serves the /rooms CRUD endpoints.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomRequest struct {
	RoomName string `json:"room_name" validate:"required,max=12"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

// List handles GET /rooms.
func (h *RoomHandler) List(c echo.Context) error {
	skip, limit := pagination(c)
	rooms, err := h.Rooms.List(c.Request().Context(), skip, limit)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	return c.JSON(http.StatusOK, rooms)
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusUnprocessableEntity, CodeInvalidPayload, err.Error())
	}
	rm := &model.Room{Name: req.RoomName, Capacity: req.Capacity}
	if err := h.Rooms.Create(c.Request().Context(), rm); err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "could not create room")
	}
	return c.JSON(http.StatusCreated, rm)
}

// Update handles PUT /rooms/:id as a full replace of mutable fields.
// Existing bookings are not revalidated when the capacity shrinks.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid id")
	}
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusUnprocessableEntity, CodeInvalidPayload, err.Error())
	}
	rm := &model.Room{ID: id, Name: req.RoomName, Capacity: req.Capacity}
	if err := h.Rooms.Update(c.Request().Context(), rm); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return jsonError(c, http.StatusNotFound, CodeRoomNotFound, "room not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "could not update room")
	}
	return c.JSON(http.StatusOK, rm)
}

// Delete handles DELETE /rooms/:id and returns the deleted row.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid id")
	}
	rm, err := h.Rooms.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return jsonError(c, http.StatusNotFound, CodeRoomNotFound, "room not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "could not delete room")
	}
	return c.JSON(http.StatusOK, rm)
}
