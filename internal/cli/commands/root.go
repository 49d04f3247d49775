package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"pharaoh/internal/cli"
	"pharaoh/internal/config"
	"pharaoh/internal/exitcodes"
)

// NewRootCommand builds the pharaoh command tree
func NewRootCommand(version string) *cobra.Command {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "pharaoh [search_dir]",
		Short: "Declarative CLI test runner",
		Long: `Run the shell commands described in YAML test specifications and compare
their stdout, stderr and exit status with the expected values.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies and register them
	NewCommands(cfg).Register(rootCmd, &flags, cfg)
	return rootCmd
}

// ExitCode maps the error returned by a command to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitcodes.Success
	case errors.Is(err, ErrTestsFailed), errors.Is(err, ErrInvalidCommands):
		return exitcodes.TestFailure
	default:
		return exitcodes.RuntimeErr
	}
}
