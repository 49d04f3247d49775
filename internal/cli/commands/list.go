package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pharaoh/internal/config"
	"pharaoh/internal/discovery"
	"pharaoh/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	filter *discovery.Filter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, filter *discovery.Filter) *ListCommand {
	return &ListCommand{
		config: cfg,
		filter: filter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	log, err := newLogger(lc.config, cmd)
	if err != nil {
		return err
	}
	collection, err := newGatherer(lc.config, log).Gather(cmd.Context())
	if err != nil {
		return err
	}

	// Filter tests
	collection = lc.filter.FilterCollection(collection, lc.config.Flags.NameFilter)

	if collection.CaseCount() == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No test case found")
		return nil
	}

	ui.PrintTestList(cmd.OutOrStdout(), collection)
	return nil
}
