package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the standard logrus logger.
// format is "json" (default) or "text"; an unknown level falls back to info.
func InitLogger(level, format string) {
	logrus.SetOutput(os.Stdout)

	if strings.EqualFold(format, "text") {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// LogError logs an error if it's not nil
func LogError(err error, context string) {
	if err != nil {
		logrus.WithError(err).WithField("context", context).Error("operation failed")
	}
}
