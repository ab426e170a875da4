package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds the structured JSON logger used across the service. Every entry
// carries a "service" field. Unknown levels fall back to info.
func New(serviceName, level string) *logrus.Entry {
	return NewWithOutput(os.Stdout, serviceName, level)
}

func NewWithOutput(out io.Writer, serviceName, level string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l.WithField("service", serviceName)
}

// Discard is a logger for tests.
func Discard() *logrus.Entry {
	return NewWithOutput(io.Discard, "test", "panic")
}
