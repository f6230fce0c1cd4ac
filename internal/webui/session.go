package webui

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Session identifies a logged-in operator for the duration of the
// cookie's lifetime.
type Session struct {
	Name  string
	Roles []string
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the session may use the management pages.
// Accounts limited to the plain "user" role only get the booking page.
func (s *Session) IsAdmin() bool { return s.HasRole("admin") }

// issueCookie signs a session JWT with the cookie key and wraps it
// in an HTTP cookie using the configured name and expiry.
func issueCookie(creds *Credentials, name string, roles []string) (*http.Cookie, error) {
	exp := time.Now().UTC().Add(time.Duration(creds.Cookie.ExpiryDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":   name,
		"roles": roles,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(creds.Cookie.Key))
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     creds.Cookie.Name,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// clearCookie returns an expired cookie that removes the session.
func clearCookie(creds *Credentials) *http.Cookie {
	return &http.Cookie{
		Name:     creds.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// parseSession validates a session cookie value and rebuilds the
// Session from its claims.
func parseSession(creds *Credentials, value string) (*Session, error) {
	tok, err := jwt.Parse(value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(creds.Cookie.Key), nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("invalid session")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid session claims")
	}
	name, _ := claims["sub"].(string)
	if name == "" {
		return nil, fmt.Errorf("invalid session subject")
	}
	sess := &Session{Name: name}
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				sess.Roles = append(sess.Roles, s)
			}
		}
	}
	return sess, nil
}

// requireSession redirects anonymous requests to the login page and
// stores the Session under the "session" context key for handlers.
func requireSession(creds *Credentials) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(creds.Cookie.Name)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			sess, err := parseSession(creds, cookie.Value)
			if err != nil {
				c.SetCookie(clearCookie(creds))
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			c.Set("session", sess)
			return next(c)
		}
	}
}

// requireAdmin gates the registration and management pages.
func requireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := currentSession(c)
			if sess == nil || !sess.IsAdmin() {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}

// currentSession returns the Session stored by requireSession, or nil.
func currentSession(c echo.Context) *Session {
	sess, _ := c.Get("session").(*Session)
	return sess
}
