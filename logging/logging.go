package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger shared by every package.
// Production logs are JSON so they can be shipped as-is; development keeps the text formatter.
func Init(environment, level string) *logrus.Logger {
	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stdout)

	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithField("level", level).Warn("Unknown log level, falling back to info")
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
