package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/aoimura/meeting-room-reservation/internal/booking"
	"github.com/aoimura/meeting-room-reservation/internal/model"
	"github.com/aoimura/meeting-room-reservation/internal/repository"
)

// BookingHandler serves the /bookings endpoints. Create and Update
// run the full rule set: referenced user and room must exist, the
// headcount must fit the room, start must precede end, the window
// must sit inside operating hours, and the room must be free. The
// overlap check and the write commit in a single serializable
// transaction, so two racing requests for the same room and window
// cannot both pass the check and commit.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Users    *repository.UserRepo
	Rules    booking.Validator
	Log      *logrus.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *repository.BookingRepo, rooms *repository.RoomRepo, users *repository.UserRepo, rules booking.Validator, log *logrus.Logger) *BookingHandler {
	if bookings == nil || rooms == nil || users == nil || log == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Rooms: rooms, Users: users, Rules: rules, Log: log}
}

type bookingRequest struct {
	UserID        uint64 `json:"user_id" validate:"required"`
	RoomID        uint64 `json:"room_id" validate:"required"`
	BookedNum     int    `json:"booked_num" validate:"required,min=1"`
	StartDatetime string `json:"start_datetime" validate:"required"`
	EndDatetime   string `json:"end_datetime" validate:"required"`
}

// List handles GET /bookings.
func (h *BookingHandler) List(c echo.Context) error {
	skip, limit := pagination(c)
	bookings, err := h.Bookings.List(c.Request().Context(), skip, limit)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	req, start, end, errResp := h.bindBooking(c)
	if errResp != nil {
		return errResp(c)
	}
	b := &model.Booking{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		BookedNum: req.BookedNum,
		StartsAt:  start,
		EndsAt:    end,
	}
	if errResp := h.writeBooking(c, b, 0); errResp != nil {
		return errResp(c)
	}
	h.Log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"room_id":    b.RoomID,
		"user_id":    b.UserID,
		"starts_at":  b.StartsAt.Format(time.RFC3339),
		"ends_at":    b.EndsAt.Format(time.RFC3339),
	}).Info("booking created")
	return c.JSON(http.StatusCreated, b)
}

// Update handles PUT /bookings/:id as a full replace. The same rules
// as Create apply, with the booking itself excluded from the overlap
// check so a booking can always be re-saved over its own window.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid id")
	}
	req, start, end, errResp := h.bindBooking(c)
	if errResp != nil {
		return errResp(c)
	}
	b := &model.Booking{
		ID:        id,
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		BookedNum: req.BookedNum,
		StartsAt:  start,
		EndsAt:    end,
	}
	if errResp := h.writeBooking(c, b, id); errResp != nil {
		return errResp(c)
	}
	h.Log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"room_id":    b.RoomID,
	}).Info("booking updated")
	return c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /bookings/:id and returns the deleted row.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeInvalidPayload, "invalid id")
	}
	b, err := h.Bookings.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return jsonError(c, http.StatusNotFound, CodeBookingNotFound, "booking not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "could not delete booking")
	}
	h.Log.WithField("booking_id", id).Info("booking deleted")
	return c.JSON(http.StatusOK, b)
}

// errResponse defers writing a failure response until the caller has
// finished its cleanup (transaction rollback in particular).
type errResponse func(echo.Context) error

func failWith(status int, code, msg string) errResponse {
	return func(c echo.Context) error { return jsonError(c, status, code, msg) }
}

// bindBooking binds, validates and parses a booking payload.
func (h *BookingHandler) bindBooking(c echo.Context) (bookingRequest, time.Time, time.Time, errResponse) {
	var req bookingRequest
	var zero time.Time
	if err := c.Bind(&req); err != nil {
		return req, zero, zero, failWith(http.StatusBadRequest, CodeInvalidPayload, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return req, zero, zero, failWith(http.StatusUnprocessableEntity, CodeInvalidPayload, err.Error())
	}
	start, err := parseTimestamp(req.StartDatetime)
	if err != nil {
		return req, zero, zero, failWith(http.StatusUnprocessableEntity, CodeInvalidPayload, "invalid start_datetime")
	}
	end, err := parseTimestamp(req.EndDatetime)
	if err != nil {
		return req, zero, zero, failWith(http.StatusUnprocessableEntity, CodeInvalidPayload, "invalid end_datetime")
	}
	return req, start, end, nil
}

// writeBooking runs the rule checks and persists the booking inside
// one serializable transaction. excludeID is the booking being
// updated, or zero on create.
func (h *BookingHandler) writeBooking(c echo.Context, b *model.Booking, excludeID uint64) errResponse {
	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return failWith(http.StatusInternalServerError, CodeInternal, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if excludeID != 0 {
		if _, err := h.Bookings.GetByIDTx(ctx, tx, excludeID); err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return failWith(http.StatusNotFound, CodeBookingNotFound, "booking not found")
			}
			return failWith(http.StatusInternalServerError, CodeInternal, "database error")
		}
	}
	ok, err := h.Users.ExistsTx(ctx, tx, b.UserID)
	if err != nil {
		return failWith(http.StatusInternalServerError, CodeInternal, "database error")
	}
	if !ok {
		return failWith(http.StatusNotFound, CodeUserNotFound, "user not found")
	}
	room, err := h.Rooms.GetByIDTx(ctx, tx, b.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return failWith(http.StatusNotFound, CodeRoomNotFound, "room not found")
		}
		return failWith(http.StatusInternalServerError, CodeInternal, "database error")
	}
	if err := h.Rules.Check(b.StartsAt, b.EndsAt, b.BookedNum, room.Capacity); err != nil {
		h.Log.WithFields(logrus.Fields{
			"room_id": b.RoomID,
			"reason":  err.Error(),
		}).Info("booking rejected")
		return ruleFailure(err)
	}
	n, err := h.Bookings.CountOverlapTx(ctx, tx, b.RoomID, b.StartsAt, b.EndsAt, excludeID)
	if err != nil {
		return failWith(http.StatusInternalServerError, CodeInternal, "database error")
	}
	if n > 0 {
		h.Log.WithFields(logrus.Fields{
			"room_id":  b.RoomID,
			"overlaps": n,
		}).Info("booking rejected")
		return ruleFailure(booking.ErrRoomConflict)
	}

	if excludeID != 0 {
		err = h.Bookings.UpdateTx(ctx, tx, b)
	} else {
		err = h.Bookings.CreateTx(ctx, tx, b)
	}
	if err != nil {
		return failWith(http.StatusInternalServerError, CodeInternal, "could not save booking")
	}
	if err := tx.Commit(); err != nil {
		return failWith(http.StatusInternalServerError, CodeInternal, "could not save booking")
	}
	committed = true
	return nil
}

// ruleFailure maps a booking rule sentinel to its HTTP response.
func ruleFailure(err error) errResponse {
	switch {
	case errors.Is(err, booking.ErrCapacityExceeded):
		return failWith(http.StatusUnprocessableEntity, CodeCapacityExceeded, "booked number exceeds room capacity")
	case errors.Is(err, booking.ErrInvalidTimeRange):
		return failWith(http.StatusUnprocessableEntity, CodeInvalidTimeOrder, "end time must be after start time")
	case errors.Is(err, booking.ErrOutsideHours):
		return failWith(http.StatusUnprocessableEntity, CodeOutsideHours, "booking outside operating hours")
	case errors.Is(err, booking.ErrRoomConflict):
		return failWith(http.StatusConflict, CodeRoomConflict, "already booked for that time")
	default:
		return failWith(http.StatusInternalServerError, CodeInternal, "booking validation failed")
	}
}
