package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus logger writing JSON to stdout at the given
// level. An unknown level falls back to info so a typo in LOG_LEVEL
// never silences the service.
func New(level string) *logrus.Logger {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stdout)
	l.SetLevel(lvl)
	return l
}
