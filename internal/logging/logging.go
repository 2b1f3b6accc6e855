// Package logging sets up AutoKuma's go-kit/log logger the same way the
// teacher binaries do: a base logger with caller/timestamp context,
// filtered by an allowed level, in either logfmt or JSON format.
package logging

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New builds a leveled logger. levelName is one of "debug", "info",
// "warn", "error"; format is "logfmt" or "json".
func New(levelName, format string) log.Logger {
	var logger log.Logger
	if format == "json" {
		logger = log.NewJSONLogger(log.NewSyncWriter(os.Stderr))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	var allowed level.Option
	switch levelName {
	case "debug":
		allowed = level.AllowDebug()
	case "warn":
		allowed = level.AllowWarn()
	case "error":
		allowed = level.AllowError()
	default:
		allowed = level.AllowInfo()
	}
	return level.NewFilter(logger, allowed)
}
