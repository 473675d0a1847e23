package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/PixPMusic/gopher-launchpad/internal/config"
)

type Log struct {
	*logrus.Entry
}

// Fields are a representation of formatted log fields.
type Fields map[string]interface{}

// New returns a logger writing to out at the configured level
func New(cfg config.LoggerConfig, out io.Writer) (*Log, error) {
	log := logrus.New()
	log.SetOutput(out)
	log.Formatter = &logrus.TextFormatter{
		TimestampFormat:  "2006-01-02 15:04:05.0000",
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger level %q: %w", cfg.Level, err)
	}
	log.SetLevel(lvl)
	log.Debug("set level: ", lvl)

	return &Log{Entry: logrus.NewEntry(log)}, nil
}

// With will add the fields to the formatted log entry.
func (l *Log) With(fields Fields) *Log {
	return &Log{Entry: l.WithFields(logrus.Fields(fields))}
}

// Module returns a logger tagged with the module name
func (l *Log) Module(name string) *Log {
	return l.With(Fields{"module": name})
}
