package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aoimura/meeting-room-reservation/internal/model"
	"github.com/aoimura/meeting-room-reservation/internal/repository"
)

// UserHandler serves the /users CRUD endpoints.
type UserHandler struct {
	Users *repository.UserRepo
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *repository.UserRepo) *UserHandler {
	if users == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: users}
}

type userRequest struct {
	Username string `json:"username" validate:"required,max=12"`
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	skip, limit := pagination(c)
	users, err := h.Users.List(c.Request().Context(), skip, limit)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusUnprocessableEntity, CodeInvalidPayload, err.Error())
	}
	u := &model.User{Username: req.Username}
	if err := h.Users.Create(c.Request().Context(), u); err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "could not create user")
	}
	return c.JSON(http.StatusCreated, u)
}

// Update handles PUT /users/:id as a full replace of mutable fields.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid id")
	}
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusUnprocessableEntity, CodeInvalidPayload, err.Error())
	}
	u := &model.User{ID: id, Username: req.Username}
	if err := h.Users.Update(c.Request().Context(), u); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return jsonError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "could not update user")
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /users/:id and returns the deleted row.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid id")
	}
	u, err := h.Users.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return jsonError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "could not delete user")
	}
	return c.JSON(http.StatusOK, u)
}
