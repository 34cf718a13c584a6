// Package logging configures the process-wide zerolog logger.  Verbosity is
// controlled through the AWSMCP_LOG_LEVEL environment variable (trace, debug,
// info, warn, error; default info).  Log output goes to stderr so that stdio
// transports keep stdout clean for protocol frames.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelEnvVar names the environment variable controlling log verbosity.
const LevelEnvVar = "AWSMCP_LOG_LEVEL"

// Init builds the root logger for the given application name, applies the
// level from the environment and installs it as the global zerolog logger.
func Init(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	logger = logger.Level(LevelFromEnv())
	log.Logger = logger
	return logger
}

// LevelFromEnv resolves the zerolog level from AWSMCP_LOG_LEVEL, defaulting
// to info when unset or unrecognised.
func LevelFromEnv() zerolog.Level {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(LevelEnvVar)))
	switch raw {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger scoped to one subsystem, e.g. "mcp" or
// "aws/s3".
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
