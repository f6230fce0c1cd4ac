// Package webui is the form-driven front end of the reservation
// system. It authenticates operators against a YAML credentials
// file, keeps a signed cookie session, and drives the API through
// internal/client. Validation performed here is advisory: it exists
// to produce friendlier messages, and the API enforces every rule
// again on its side.
package webui

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

// Account is one entry in the credentials file.
type Account struct {
	PasswordHash string   `yaml:"password_hash"` // bcrypt hash of the password
	Roles        []string `yaml:"roles"`         // e.g. ["user"] or ["admin"]
}

// Credentials mirrors the YAML credentials file consumed by the UI:
//
//	cookie:
//	  name: reservation_session
//	  key: <signing secret>
//	  expiry_days: 30
//	credentials:
//	  usernames:
//	    alice:
//	      password_hash: $2a$10$...
//	      roles: [admin]
type Credentials struct {
	Cookie struct {
		Name       string `yaml:"name"`
		Key        string `yaml:"key"`
		ExpiryDays int    `yaml:"expiry_days"`
	} `yaml:"cookie"`
	Credentials struct {
		Usernames map[string]Account `yaml:"usernames"`
	} `yaml:"credentials"`
}

// LoadCredentials reads and validates the credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	var creds Credentials
	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	if creds.Cookie.Name == "" || creds.Cookie.Key == "" {
		return nil, fmt.Errorf("credentials file: cookie name and key are required")
	}
	if creds.Cookie.ExpiryDays <= 0 {
		creds.Cookie.ExpiryDays = 30
	}
	if len(creds.Credentials.Usernames) == 0 {
		return nil, fmt.Errorf("credentials file: no usernames configured")
	}
	return &creds, nil
}

// Verify checks a login attempt against the stored bcrypt hash and
// returns the matching account.
func (c *Credentials) Verify(username, password string) (*Account, bool) {
	acct, ok := c.Credentials.Usernames[username]
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, false
	}
	return &acct, true
}
