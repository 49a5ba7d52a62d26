package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/pion/logging"
)

// ParseLogLevel maps a level name to a pion log level.
func ParseLogLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return logging.LogLevelInfo, nil
	case "disabled", "off", "none":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	default:
		return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLoggerFactory returns a factory writing to w at the levels in cfg.
// Invalid levels fall back to info; Validate catches them earlier.
func NewLoggerFactory(cfg LogConfig, w io.Writer) logging.LoggerFactory {
	lvl, err := ParseLogLevel(cfg.Level)
	if err != nil {
		lvl = logging.LogLevelInfo
	}
	f := &logging.DefaultLoggerFactory{
		Writer:          w,
		DefaultLogLevel: lvl,
		ScopeLevels:     make(map[string]logging.LogLevel),
	}
	for scope, s := range cfg.Scopes {
		if l, err := ParseLogLevel(s); err == nil {
			f.ScopeLevels[strings.ToLower(scope)] = l
		}
	}
	return f
}
