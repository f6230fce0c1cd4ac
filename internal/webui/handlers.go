package webui

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/aoimura/meeting-room-reservation/internal/client"
	"github.com/aoimura/meeting-room-reservation/internal/model"
)

// Advisory limits duplicated from the API configuration. They exist
// only to produce friendlier form errors before a request is made;
// the API re-checks everything server-side.
const (
	uiOpenHour  = 9
	uiCloseHour = 20
)

// Server holds the UI's dependencies and its handlers.
type Server struct {
	api   *client.Client
	creds *Credentials
	log   *logrus.Logger
}

// NewServer constructs the UI server.
func NewServer(api *client.Client, creds *Credentials, log *logrus.Logger) *Server {
	if api == nil || creds == nil || log == nil {
		panic("nil dependency passed to NewServer")
	}
	return &Server{api: api, creds: creds, log: log}
}

// Register wires the UI routes and template renderer onto e.
func (s *Server) Register(e *echo.Echo) {
	e.Renderer = newRenderer()

	e.GET("/login", s.LoginPage)
	e.POST("/login", s.Login)
	e.POST("/logout", s.Logout)

	// Everything else requires a session. Accounts with only the
	// plain "user" role see the booking page; management pages are
	// gated behind the admin role, mirroring the role-driven page
	// menu of the original tool.
	p := e.Group("", requireSession(s.creds))
	p.GET("/", s.Home)
	p.GET("/bookings/new", s.BookingPage)
	p.POST("/bookings/new", s.CreateBooking)

	admin := p.Group("", requireAdmin())
	admin.GET("/users/new", s.UserNewPage)
	admin.POST("/users/new", s.CreateUser)
	admin.GET("/rooms/new", s.RoomNewPage)
	admin.POST("/rooms/new", s.CreateRoom)
	admin.GET("/users/manage", s.UserManagePage)
	admin.POST("/users/manage", s.ManageUser)
	admin.GET("/rooms/manage", s.RoomManagePage)
	admin.POST("/rooms/manage", s.ManageRoom)
	admin.GET("/bookings/manage", s.BookingManagePage)
	admin.POST("/bookings/manage", s.ManageBooking)
}

// Page carries the fields every template expects.
type Page struct {
	Session *Session
	Message string
	Error   string
}

func page(c echo.Context, message, errMsg string) Page {
	return Page{Session: currentSession(c), Message: message, Error: errMsg}
}

// LoginPage renders the login form.
func (s *Server) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", Page{})
}

// Login verifies the submitted credentials and starts a session.
func (s *Server) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	acct, ok := s.creds.Verify(username, password)
	if !ok {
		s.log.WithField("username", username).Warn("login failed")
		return c.Render(http.StatusUnauthorized, "login", Page{Error: "invalid username or password"})
	}
	cookie, err := issueCookie(s.creds, username, acct.Roles)
	if err != nil {
		return c.Render(http.StatusInternalServerError, "login", Page{Error: "could not start session"})
	}
	c.SetCookie(cookie)
	s.log.WithField("username", username).Info("login")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session cookie.
func (s *Server) Logout(c echo.Context) error {
	c.SetCookie(clearCookie(s.creds))
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Home renders the menu page.
func (s *Server) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", page(c, "", ""))
}

// bookingRow is a booking joined with display names for the tables.
type bookingRow struct {
	ID        uint64
	Username  string
	RoomName  string
	BookedNum int
	Start     string
	End       string
}

type bookingPageData struct {
	Page
	Users    []model.User
	Rooms    []model.Room
	Bookings []bookingRow
}

// loadBookingPage fetches users, rooms and bookings and joins ids to
// display names for rendering.
func (s *Server) loadBookingPage(c echo.Context, message, errMsg string) (*bookingPageData, error) {
	ctx := c.Request().Context()
	users, err := s.api.Users(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.api.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.api.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	userNames := make(map[uint64]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Username
	}
	roomNames := make(map[uint64]string, len(rooms))
	for _, rm := range rooms {
		roomNames[rm.ID] = rm.Name
	}
	rows := make([]bookingRow, 0, len(bookings))
	for _, b := range bookings {
		username := userNames[b.UserID]
		if username == "" {
			// Bookings may dangle after a user is deleted.
			username = fmt.Sprintf("user #%d", b.UserID)
		}
		roomName := roomNames[b.RoomID]
		if roomName == "" {
			roomName = fmt.Sprintf("room #%d", b.RoomID)
		}
		rows = append(rows, bookingRow{
			ID:        b.ID,
			Username:  username,
			RoomName:  roomName,
			BookedNum: b.BookedNum,
			Start:     b.StartsAt.Format("2006/01/02 15:04"),
			End:       b.EndsAt.Format("2006/01/02 15:04"),
		})
	}
	return &bookingPageData{
		Page:     page(c, message, errMsg),
		Users:    users,
		Rooms:    rooms,
		Bookings: rows,
	}, nil
}

// BookingPage renders the booking form with the room and booking tables.
func (s *Server) BookingPage(c echo.Context) error {
	data, err := s.loadBookingPage(c, "", "")
	if err != nil {
		return c.Render(http.StatusOK, "home", page(c, "", "the reservation API is unreachable"))
	}
	return c.Render(http.StatusOK, "booking_new", data)
}

// parseWindow combines the date and time form fields into a window.
func parseWindow(c echo.Context) (start, end time.Time, err error) {
	date, err := time.ParseInLocation("2006-01-02", c.FormValue("date"), time.UTC)
	if err != nil {
		return start, end, fmt.Errorf("invalid date")
	}
	st, err := time.Parse("15:04", c.FormValue("start_time"))
	if err != nil {
		return start, end, fmt.Errorf("invalid start time")
	}
	et, err := time.Parse("15:04", c.FormValue("end_time"))
	if err != nil {
		return start, end, fmt.Errorf("invalid end time")
	}
	start = time.Date(date.Year(), date.Month(), date.Day(), st.Hour(), st.Minute(), 0, 0, time.UTC)
	end = time.Date(date.Year(), date.Month(), date.Day(), et.Hour(), et.Minute(), 0, 0, time.UTC)
	return start, end, nil
}

// preValidate mirrors the API's booking rules to produce inline form
// errors without a round trip. Returns an empty string when the form
// passes.
func preValidate(start, end time.Time, bookedNum int, room *model.Room) string {
	if room != nil && bookedNum > room.Capacity {
		return fmt.Sprintf("the capacity of %s is %d people; please book for %d or fewer",
			room.Name, room.Capacity, room.Capacity)
	}
	if !start.Before(end) {
		return "the start time must be before the end time"
	}
	if start.Hour() < uiOpenHour || end.Hour() > uiCloseHour ||
		(end.Hour() == uiCloseHour && end.Minute() > 0) {
		return fmt.Sprintf("operating hours are %02d:00 to %02d:00", uiOpenHour, uiCloseHour)
	}
	return ""
}

// CreateBooking handles the booking form submission.
func (s *Server) CreateBooking(c echo.Context) error {
	userID, _ := strconv.ParseUint(c.FormValue("user_id"), 10, 64)
	roomID, _ := strconv.ParseUint(c.FormValue("room_id"), 10, 64)
	bookedNum, _ := strconv.Atoi(c.FormValue("booked_num"))

	render := func(message, errMsg string) error {
		data, err := s.loadBookingPage(c, message, errMsg)
		if err != nil {
			return c.Render(http.StatusOK, "home", page(c, "", "the reservation API is unreachable"))
		}
		return c.Render(http.StatusOK, "booking_new", data)
	}

	start, end, err := parseWindow(c)
	if err != nil {
		return render("", err.Error())
	}
	var room *model.Room
	if rooms, err := s.api.Rooms(c.Request().Context()); err == nil {
		for i := range rooms {
			if rooms[i].ID == roomID {
				room = &rooms[i]
				break
			}
		}
	}
	if msg := preValidate(start, end, bookedNum, room); msg != "" {
		return render("", msg)
	}

	_, err = s.api.CreateBooking(c.Request().Context(), client.BookingParams{
		UserID:    userID,
		RoomID:    roomID,
		BookedNum: bookedNum,
		StartsAt:  start,
		EndsAt:    end,
	})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Code == "room_conflict" {
			return render("", "that room is already booked for the requested time")
		}
		if errors.As(err, &apiErr) {
			return render("", apiErr.Message)
		}
		return render("", "the reservation API is unreachable")
	}
	return render("booking completed", "")
}

// UserNewPage renders the user registration form.
func (s *Server) UserNewPage(c echo.Context) error {
	return c.Render(http.StatusOK, "user_new", page(c, "", ""))
}

// CreateUser handles the user registration form.
func (s *Server) CreateUser(c echo.Context) error {
	username := c.FormValue("username")
	if _, err := s.api.CreateUser(c.Request().Context(), username); err != nil {
		return c.Render(http.StatusOK, "user_new", page(c, "", apiMessage(err)))
	}
	return c.Render(http.StatusOK, "user_new", page(c, "user registered", ""))
}

// RoomNewPage renders the room registration form.
func (s *Server) RoomNewPage(c echo.Context) error {
	return c.Render(http.StatusOK, "room_new", page(c, "", ""))
}

// CreateRoom handles the room registration form.
func (s *Server) CreateRoom(c echo.Context) error {
	name := c.FormValue("room_name")
	capacity, _ := strconv.Atoi(c.FormValue("capacity"))
	if _, err := s.api.CreateRoom(c.Request().Context(), name, capacity); err != nil {
		return c.Render(http.StatusOK, "room_new", page(c, "", apiMessage(err)))
	}
	return c.Render(http.StatusOK, "room_new", page(c, "room registered", ""))
}

type userManageData struct {
	Page
	Users []model.User
}

// UserManagePage renders the user update/delete form.
func (s *Server) UserManagePage(c echo.Context) error {
	return s.renderUserManage(c, "", "")
}

func (s *Server) renderUserManage(c echo.Context, message, errMsg string) error {
	users, err := s.api.Users(c.Request().Context())
	if err != nil {
		return c.Render(http.StatusOK, "home", page(c, "", "the reservation API is unreachable"))
	}
	return c.Render(http.StatusOK, "user_manage", userManageData{Page: page(c, message, errMsg), Users: users})
}

// ManageUser applies an update or delete from the manage form.
func (s *Server) ManageUser(c echo.Context) error {
	id, _ := strconv.ParseUint(c.FormValue("user_id"), 10, 64)
	switch c.FormValue("action") {
	case "update":
		if _, err := s.api.UpdateUser(c.Request().Context(), id, c.FormValue("username")); err != nil {
			return s.renderUserManage(c, "", apiMessage(err))
		}
		return s.renderUserManage(c, "user updated", "")
	case "delete":
		if _, err := s.api.DeleteUser(c.Request().Context(), id); err != nil {
			return s.renderUserManage(c, "", apiMessage(err))
		}
		return s.renderUserManage(c, "user deleted", "")
	}
	return s.renderUserManage(c, "", "unknown action")
}

type roomManageData struct {
	Page
	Rooms []model.Room
}

// RoomManagePage renders the room update/delete form.
func (s *Server) RoomManagePage(c echo.Context) error {
	return s.renderRoomManage(c, "", "")
}

func (s *Server) renderRoomManage(c echo.Context, message, errMsg string) error {
	rooms, err := s.api.Rooms(c.Request().Context())
	if err != nil {
		return c.Render(http.StatusOK, "home", page(c, "", "the reservation API is unreachable"))
	}
	return c.Render(http.StatusOK, "room_manage", roomManageData{Page: page(c, message, errMsg), Rooms: rooms})
}

// ManageRoom applies an update or delete from the manage form.
func (s *Server) ManageRoom(c echo.Context) error {
	id, _ := strconv.ParseUint(c.FormValue("room_id"), 10, 64)
	switch c.FormValue("action") {
	case "update":
		capacity, _ := strconv.Atoi(c.FormValue("capacity"))
		if _, err := s.api.UpdateRoom(c.Request().Context(), id, c.FormValue("room_name"), capacity); err != nil {
			return s.renderRoomManage(c, "", apiMessage(err))
		}
		return s.renderRoomManage(c, "room updated", "")
	case "delete":
		if _, err := s.api.DeleteRoom(c.Request().Context(), id); err != nil {
			return s.renderRoomManage(c, "", apiMessage(err))
		}
		return s.renderRoomManage(c, "room deleted", "")
	}
	return s.renderRoomManage(c, "", "unknown action")
}

// BookingManagePage renders the booking update/delete form.
func (s *Server) BookingManagePage(c echo.Context) error {
	return s.renderBookingManage(c, "", "")
}

func (s *Server) renderBookingManage(c echo.Context, message, errMsg string) error {
	data, err := s.loadBookingPage(c, message, errMsg)
	if err != nil {
		return c.Render(http.StatusOK, "home", page(c, "", "the reservation API is unreachable"))
	}
	return c.Render(http.StatusOK, "booking_manage", data)
}

// ManageBooking applies an update or delete from the manage form.
// Updates run through the same pre-validation as new bookings.
func (s *Server) ManageBooking(c echo.Context) error {
	id, _ := strconv.ParseUint(c.FormValue("booking_id"), 10, 64)
	switch c.FormValue("action") {
	case "delete":
		if _, err := s.api.DeleteBooking(c.Request().Context(), id); err != nil {
			return s.renderBookingManage(c, "", apiMessage(err))
		}
		return s.renderBookingManage(c, "booking deleted", "")
	case "update":
		userID, _ := strconv.ParseUint(c.FormValue("user_id"), 10, 64)
		roomID, _ := strconv.ParseUint(c.FormValue("room_id"), 10, 64)
		bookedNum, _ := strconv.Atoi(c.FormValue("booked_num"))
		start, end, err := parseWindow(c)
		if err != nil {
			return s.renderBookingManage(c, "", err.Error())
		}
		var room *model.Room
		if rooms, err := s.api.Rooms(c.Request().Context()); err == nil {
			for i := range rooms {
				if rooms[i].ID == roomID {
					room = &rooms[i]
					break
				}
			}
		}
		if msg := preValidate(start, end, bookedNum, room); msg != "" {
			return s.renderBookingManage(c, "", msg)
		}
		_, err = s.api.UpdateBooking(c.Request().Context(), id, client.BookingParams{
			UserID:    userID,
			RoomID:    roomID,
			BookedNum: bookedNum,
			StartsAt:  start,
			EndsAt:    end,
		})
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.Code == "room_conflict" {
				return s.renderBookingManage(c, "", "that room is already booked for the requested time")
			}
			return s.renderBookingManage(c, "", apiMessage(err))
		}
		return s.renderBookingManage(c, "booking updated", "")
	}
	return s.renderBookingManage(c, "", "unknown action")
}

// apiMessage extracts a display message from a client error.
func apiMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "the reservation API is unreachable"
}
