// Package logger holds the CLI logging flags and builds the logger every
// command runs with.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunnya97/cosmos-kit/cmd/flags"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
)

var (
	// LogLevel is bound to --log-level.
	LogLevel string
	// LogOutput is bound to --log-output.
	LogOutput string

	// Logger is set by PreRunESetup.
	Logger polylog.Logger
)

// PreRunESetup builds Logger from LogLevel and LogOutput and attaches it to
// the command's context.
func PreRunESetup(cmd *cobra.Command, _ []string) error {
	level, err := polyzero.ParseLevel(LogLevel)
	if err != nil {
		return flags.ErrFlagInvalidValue.Wrapf("--%s: %v", flags.FlagLogLevel, err)
	}

	var output io.Writer = os.Stderr
	if LogOutput != "" && LogOutput != flags.DefaultLogOutput {
		logFile, err := os.OpenFile(LogOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return flags.ErrFlagInvalidValue.Wrapf("--%s: %v", flags.FlagLogOutput, err)
		}
		output = logFile
	}

	Logger = polyzero.NewLogger(
		polyzero.WithLevel(level),
		polyzero.WithOutput(output),
		polyzero.WithTimestamp(),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(Logger.WithContext(ctx))
	return nil
}
