package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"pharaoh/internal/config"
	"pharaoh/internal/history"
	"pharaoh/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config *config.Config
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{config: cfg}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	dsn := hc.config.GetHistoryDSN()
	if dsn == "" {
		return errors.New("no history database configured: use --history or " + config.HistoryDSNEnv)
	}

	store, err := history.Open(cmd.Context(), dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	limit := hc.config.Flags.HistoryLimit
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	ui.PrintHistory(cmd.OutOrStdout(), runs)
	return nil
}
