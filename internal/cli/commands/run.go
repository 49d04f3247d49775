package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"pharaoh/internal/config"
	"pharaoh/internal/discovery"
	"pharaoh/internal/domain"
	"pharaoh/internal/execution"
	"pharaoh/internal/history"
	"pharaoh/internal/metrics"
	"pharaoh/internal/storage"
	"pharaoh/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config  *config.Config
	filter  *discovery.Filter
	storage storage.Storage
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, filter *discovery.Filter, st storage.Storage) *RunCommand {
	return &RunCommand{
		config:  cfg,
		filter:  filter,
		storage: st,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log, err := newLogger(rc.config, cmd)
	if err != nil {
		return err
	}

	// Discover tests
	collection, err := newGatherer(rc.config, log).Gather(ctx)
	if err != nil {
		return err
	}

	// Filter tests
	collection = rc.filter.FilterCollection(collection, rc.config.Flags.NameFilter)

	env, err := rc.config.ChildEnv()
	if err != nil {
		return err
	}
	runner := execution.NewRunner(execution.NewShellExecutor(rc.config.Shell, env, ""), rc.config.Jobs, log)

	var observers execution.Observers
	if rc.config.Flags.Progress {
		observers = append(observers, ui.NewProgressBar(cmd.ErrOrStderr()))
	}
	var recorder *metrics.Recorder
	if rc.config.Flags.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		observers = append(observers, recorder)
	}
	if len(observers) > 0 {
		runner.SetObserver(observers)
	}

	// Execute tests
	runID := history.NewRunID()
	start := time.Now()
	report, err := runner.RunAll(ctx, collection)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	// Print the report
	var formatter ui.Formatter = ui.NewFormatter()
	if colorize(rc.config) {
		formatter = ui.NewColorFormatter()
	}
	if err := ui.NewPrinter(cmd.OutOrStdout(), formatter, colorize(rc.config)).PrintReport(report); err != nil {
		return err
	}

	meta := domain.NewRunMeta(runID, rc.config.SearchDir, report, duration, rc.config.Jobs, start)
	if err := rc.persist(ctx, log, collection, report, meta); err != nil {
		return err
	}

	if recorder != nil {
		recorder.SetRunDuration(duration)
		if err := recorder.WriteTextfile(rc.config.Flags.MetricsFile); err != nil {
			return err
		}
	}

	// Print stats
	if rc.config.Flags.Summary {
		ui.PrintSummary(cmd.ErrOrStderr(), meta)
	}

	if meta.FailedTestCases > 0 {
		return ErrTestsFailed
	}
	return nil
}

// persist saves the run for the failures viewer and records it in the history
// database when one is configured
func (rc *RunCommand) persist(ctx context.Context, log *slog.Logger, collection domain.TestSuiteCollection, report domain.TestReport, meta domain.RunMeta) error {
	if report.Empty() {
		return nil
	}

	if !rc.config.Flags.NoSave {
		failures := ui.CollectFailures(collection, report, ui.NewFormatter())
		if err := rc.storage.Save(meta, failures); err != nil {
			return fmt.Errorf("failed to save test results: %w", err)
		}
		log.Debug("Results saved", "path", rc.config.GetOutputPath(), "failures", len(failures))
	}

	dsn := rc.config.GetHistoryDSN()
	if dsn == "" {
		return nil
	}
	store, err := history.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Record(ctx, meta, report); err != nil {
		return err
	}
	log.Info("Run recorded", "run", meta.RunID)
	return nil
}
