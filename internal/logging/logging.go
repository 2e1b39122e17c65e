// Package logging builds the zap logger shared by the convargs packages.
//
// Every argv token belongs to the resolver's grammar, so verbosity cannot
// be a command-line flag. It is read from the CONVARGS_VERBOSE environment
// variable instead.
package logging

import (
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvVerbose enables debug logging when set to a true value ("1", "true").
const EnvVerbose = "CONVARGS_VERBOSE"

// New returns a console logger writing to stderr. Verbose loggers emit
// debug entries; quiet ones only warnings and errors, so stderr stays
// reserved for the "Error: ..." line in normal runs.
func New(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

// VerboseFromEnv reports whether EnvVerbose holds a true value.
// Unparseable values count as false.
func VerboseFromEnv() bool {
	v, err := strconv.ParseBool(os.Getenv(EnvVerbose))
	return err == nil && v
}
