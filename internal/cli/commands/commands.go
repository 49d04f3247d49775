package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pharaoh/internal/cli"
	"pharaoh/internal/config"
	"pharaoh/internal/discovery"
	"pharaoh/internal/logging"
	"pharaoh/internal/parser"
	"pharaoh/internal/storage"
	"pharaoh/internal/ui"
)

var (
	// ErrTestsFailed is returned when the run completed with failing test cases
	ErrTestsFailed = errors.New("some test cases failed")
	// ErrInvalidCommands is returned when the check found commands that do not parse
	ErrInvalidCommands = errors.New("some test commands have invalid shell syntax")
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Check    *CheckCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	filter := discovery.NewFilter()
	shellParser := parser.NewShellParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, filter, jsonStorage),
		List:     NewListCommand(cfg, filter),
		Check:    NewCheckCommand(cfg, filter, shellParser),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		History:  NewHistoryCommand(cfg),
	}
}

// Register registers all commands with cobra. The root command itself runs
// the tests.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Update config with flags and the search dir after parsing
	applyConfig := func(cmd *cobra.Command, args []string) error {
		cfg.Apply(flags.ToConfigFlags(), args)
		if flags.NoColor {
			color.NoColor = true
		}
		return nil
	}

	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = c.Run.Execute
	rootCmd.PreRunE = applyConfig
	rootCmd.PersistentFlags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test cases by qualified name pattern (supports wildcards, e.g., 'foo::*' or '*login*')")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flags.HistoryDSN, "history", "", "History database DSN (sqlite://<path> or mysql://<user>:<pass>@tcp(<host>:<port>)/<db>)")
	addRunFlags(rootCmd, flags)

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [search_dir]",
		Short:   "Run the test cases",
		Long:    "Discover the YAML test specifications below search_dir and run every test case",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Run.Execute,
		PreRunE: applyConfig,
	}
	addRunFlags(runCmd, flags)
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list [search_dir]",
		Short:   "List discovered test cases",
		Long:    "Scan and list all test cases without executing them",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.List.Execute,
		PreRunE: applyConfig,
	}
	rootCmd.AddCommand(listCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check [search_dir]",
		Short:   "Check the shell syntax of every test command",
		Long:    "Parse the command of every discovered test case as POSIX shell without running it",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Check.Execute,
		PreRunE: applyConfig,
	}
	rootCmd.AddCommand(checkCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures [search_dir]",
		Short:   "View test failures interactively",
		Long:    "Display test failures from the last test run in an interactive viewer",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Failures.Execute,
		PreRunE: applyConfig,
	}
	rootCmd.AddCommand(failuresCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history [search_dir]",
		Short:   "Show recent runs",
		Long:    "List the most recent runs recorded in the history database",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.History.Execute,
		PreRunE: applyConfig,
	}
	historyCmd.Flags().IntVarP(&flags.HistoryLimit, "limit", "n", config.DefaultHistoryLimit, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func addRunFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().IntVarP(&flags.Jobs, "jobs", "j", config.DefaultJobs, "Number of test cases to run at once")
	cmd.Flags().StringVar(&flags.Shell, "shell", config.DefaultShell, "Shell used to run test commands")
	cmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "Env file whose variables are added to the environment of test commands")
	cmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().BoolVar(&flags.Summary, "summary", false, "Print run statistics on stderr")
	cmd.Flags().BoolVar(&flags.NoSave, "no-save", false, "Do not save the results of this run")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this file")
}

// newLogger builds the logger of a command, always on stderr
func newLogger(cfg *config.Config, cmd *cobra.Command) (*slog.Logger, error) {
	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log, nil
}

func newGatherer(cfg *config.Config, log *slog.Logger) discovery.Gatherer {
	return discovery.NewYAMLGatherer(cfg.SearchDir, cfg.PathsToIgnore, runtime.GOMAXPROCS(0), log)
}

// colorize reports whether output should be colored: not disabled by flag and
// written to a terminal
func colorize(cfg *config.Config) bool {
	return !cfg.Flags.NoColor && !color.NoColor
}
