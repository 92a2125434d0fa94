package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Log formats accepted by New
const (
	FormatJSON = "json"
	FormatText = "text"
)

// New builds a logger writing to out at the given level and format.
// JSON is meant for Lambda, where CloudWatch Logs indexes the fields.
func New(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)

	switch format {
	case FormatJSON, "":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return nil, fmt.Errorf("invalid log format %q (want %s or %s)", format, FormatJSON, FormatText)
	}

	return logger, nil
}
