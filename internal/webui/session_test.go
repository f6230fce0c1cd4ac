package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentials() *Credentials {
	creds := &Credentials{}
	creds.Cookie.Name = "reservation_session"
	creds.Cookie.Key = "test-signing-key"
	creds.Cookie.ExpiryDays = 7
	return creds
}

func TestSessionCookieRoundTrip(t *testing.T) {
	creds := testCredentials()

	cookie, err := issueCookie(creds, "alice", []string{"admin", "user"})
	require.NoError(t, err)
	assert.Equal(t, "reservation_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	sess, err := parseSession(creds, cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Name)
	assert.True(t, sess.IsAdmin())
	assert.True(t, sess.HasRole("user"))
}

func TestParseSessionRejectsTampering(t *testing.T) {
	creds := testCredentials()
	cookie, err := issueCookie(creds, "alice", []string{"user"})
	require.NoError(t, err)

	_, err = parseSession(creds, cookie.Value+"x")
	assert.Error(t, err)

	// A token signed with a different key does not verify.
	other := testCredentials()
	other.Cookie.Key = "another-key"
	_, err = parseSession(other, cookie.Value)
	assert.Error(t, err)

	_, err = parseSession(creds, "not-a-token")
	assert.Error(t, err)
}

func TestRequireSession(t *testing.T) {
	creds := testCredentials()
	e := echo.New()
	handler := requireSession(creds)(func(c echo.Context) error {
		sess := currentSession(c)
		require.NotNil(t, sess)
		return c.String(http.StatusOK, sess.Name)
	})

	// Anonymous request redirects to the login page.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	// With a valid cookie the request reaches the handler.
	cookie, err := issueCookie(creds, "alice", []string{"user"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	err = handler(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())

	// A garbage cookie is cleared and redirected.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: creds.Cookie.Name, Value: "garbage"})
	rec = httptest.NewRecorder()
	err = handler(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	handler := requireAdmin()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	run := func(sess *Session) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users/manage", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if sess != nil {
			c.Set("session", sess)
		}
		require.NoError(t, handler(c))
		return rec
	}

	rec := run(&Session{Name: "alice", Roles: []string{"admin"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = run(&Session{Name: "guest", Roles: []string{"user"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = run(nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
