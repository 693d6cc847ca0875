package bootstrap

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the shared structured logger. Output is JSON so the
// process plays nicely with log shippers.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
