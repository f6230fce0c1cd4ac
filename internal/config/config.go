package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds runtime configuration for the API service. Each field
// corresponds to an environment variable. Required variables are
// enforced by must(); optional ones fall back to sensible defaults.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port the API listens on
	DBUser    string // database username
	DBPass    string // database password (optional)
	DBHost    string // database host address
	DBPort    string // database port number
	DBName    string // database name
	OpenHour  int    // first hour of the day a booking may start (default 9)
	CloseHour int    // hour of the day by which a booking must end (default 20)
}

// Load reads the API configuration from the environment. Missing
// required variables cause the program to exit with a fatal log
// message, mirroring how the service is expected to fail fast at
// startup rather than limp along half-configured.
func Load() Config {
	return Config{
		Env:       must("APP_ENV"),
		Port:      must("APP_PORT"),
		DBUser:    must("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"), // empty password allowed
		DBHost:    must("DB_HOST"),
		DBPort:    must("DB_PORT"),
		DBName:    must("DB_NAME"),
		OpenHour:  envInt("OPEN_HOUR", 9),
		CloseHour: envInt("CLOSE_HOUR", 20),
	}
}

// UIConfig holds runtime configuration for the web UI process.
type UIConfig struct {
	Port            string // HTTP port the UI listens on
	APIBaseURL      string // base URL of the reservation API
	CredentialsFile string // path to the YAML credentials file
}

// LoadUI reads the web UI configuration from the environment.
func LoadUI() UIConfig {
	return UIConfig{
		Port:            must("UI_PORT"),
		APIBaseURL:      must("API_BASE_URL"),
		CredentialsFile: envStr("CREDENTIALS_FILE", "./credentials.yaml"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envStr returns the value of key or the default when unset.
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt returns the integer value of key or the default when unset
// or unparsable.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
