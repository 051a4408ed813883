package log

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/wirefeed/wirefeed/utils/flag"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Send log to stderr, without json formatter for better readability
	logger.SetOutput(os.Stderr)
	if os.Getenv("WIREFEED_ENV") == "prod" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Log = logger.WithFields(
		logrus.Fields{"service": *flag.ServiceName, "is_development": os.Getenv("WIREFEED_ENV") != "prod"},
	)
}
