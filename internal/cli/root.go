// Package cli implements the cobra-based command of the convargs demo tool.
//
// The demo tool plays the part of a conversion program: it hands argv to
// the resolver, prints the help or version text when asked, and otherwise
// reports the resolved source/target pair and flag states. The conversion
// itself is left to real programs embedding the resolver.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/convargs/internal/config"
	"github.com/shinji-kodama/convargs/internal/logging"
	"github.com/shinji-kodama/convargs/internal/model"
	"github.com/shinji-kodama/convargs/internal/resolver"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package and used as the version of the
// built-in configuration.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates the root cobra command.
//
// Flag parsing is disabled: every token, including -help and -version,
// belongs to the resolver's grammar and is passed through untouched.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "convargs [options] <source_file> [target_file]",
		Short: "Resolve the source and target paths of a file conversion",
		Long: `convargs validates the command line of a single-source / single-target
conversion tool: it checks the source extension, derives or validates the
target path, and reports the enabled flags.

The accepted extensions and flags come from .convargs.yaml (or .yml, .json,
.jsonc) in the working directory, from the file named by $CONVARGS_CONFIG,
or from the built-in defaults. Run "convargs -help" for the active options.`,

		Args: cobra.ArbitraryArgs,

		// The resolver owns every argv token, -h and --help included.
		DisableFlagParsing: true,

		// SilenceUsage and SilenceErrors leave error output to Run.
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args)
		},
	}

	return rootCmd
}

// Execute runs the root command and exits with the matching code.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(int(Run(rootCmd)))
}

// Run executes rootCmd, prints any error as "Error: <message>" on the
// command's error stream, and returns the exit code for it.
//
// Error families map to exit codes as follows:
//   - *model.CLIError: its own Code
//   - *model.UsageError: ExitUsageError
//   - *model.ConfigError: ExitConfigError, reported as "tool misconfigured"
//   - anything else: ExitGeneralError
func Run(rootCmd *cobra.Command) model.ExitCode {
	err := rootCmd.Execute()
	if err == nil {
		return model.ExitSuccess
	}

	w := rootCmd.ErrOrStderr()

	var cliErr *model.CLIError
	var usageErr *model.UsageError
	var cfgErr *model.ConfigError
	switch {
	case errors.As(err, &cliErr):
		printError(w, cliErr.Message, cliErr.Err)
		return cliErr.Code
	case errors.As(err, &usageErr):
		printError(w, usageErr.Message, nil)
		return model.ExitUsageError
	case errors.As(err, &cfgErr):
		// The tool, not the user, is at fault: say so in its own words.
		printError(w, "tool misconfigured", cfgErr)
		return model.ExitConfigError
	default:
		printError(w, err.Error(), nil)
		return model.ExitGeneralError
	}
}

// runResolve loads the tool configuration, builds the resolver and turns
// its outcome into output or an error.
func runResolve(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to determine the working directory", err)
	}

	file, err := config.Resolve(wd)
	if err != nil {
		return err
	}
	if file.Path == "" {
		file.Version = versionString()
	}

	logger := logging.New(logging.VerboseFromEnv())
	defer func() { _ = logger.Sync() }()

	if file.Path != "" {
		logger.Debug("loaded configuration file", zap.String("path", file.Path))
	}

	cfg := file.ResolverConfig(cmd.Name())

	// The built-in configuration ships with the binary; if it is invalid
	// the build itself is broken, so it panics instead of returning.
	if file.Path == "" {
		return handleOutcome(cmd, resolver.MustNew(cfg, resolver.WithLogger(logger)).Parse(args))
	}

	r, err := resolver.New(cfg, resolver.WithLogger(logger))
	if err != nil {
		// Always a *model.ConfigError coming from the configuration file.
		logger.Debug("rejected configuration file", zap.String("path", file.Path), zap.Error(err))
		return err
	}
	return handleOutcome(cmd, r.Parse(args))
}

// handleOutcome turns a resolver outcome into output or an error.
func handleOutcome(cmd *cobra.Command, out model.Outcome) error {
	switch out.Kind {
	case model.OutcomeInformational:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
		return nil
	case model.OutcomeFailure:
		return out.Err
	default:
		return printReport(cmd.OutOrStdout(), out)
	}
}

// versionString formats the build information for the built-in configuration.
func versionString() string {
	if Commit == "none" && Date == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

// printError writes "Error: <message>" (with the underlying error appended
// when present) to w.
func printError(w io.Writer, message string, underlying error) {
	if underlying != nil {
		_, _ = fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		_, _ = fmt.Fprintf(w, "Error: %s\n", message)
	}
}
