package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pharaoh/internal/config"
	"pharaoh/internal/discovery"
	"pharaoh/internal/parser"
)

// CheckCommand handles the check command
type CheckCommand struct {
	config *config.Config
	filter *discovery.Filter
	parser parser.Parser
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(cfg *config.Config, filter *discovery.Filter, p parser.Parser) *CheckCommand {
	return &CheckCommand{
		config: cfg,
		filter: filter,
		parser: p,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cc.config, cmd)
	if err != nil {
		return err
	}
	collection, err := newGatherer(cc.config, log).Gather(cmd.Context())
	if err != nil {
		return err
	}
	collection = cc.filter.FilterCollection(collection, cc.config.Flags.NameFilter)

	out := cmd.OutOrStdout()
	issues := parser.CheckCollection(cc.parser, collection)
	for _, issue := range issues {
		fmt.Fprintf(out, "%s: %v\n", issue.TestName, issue.Err)
	}
	if len(issues) > 0 {
		color.New(color.FgRed).Fprintf(out, "%d of %d command(s) have invalid syntax\n", len(issues), collection.CaseCount())
		return ErrInvalidCommands
	}

	color.New(color.FgGreen).Fprintf(out, "✓ All %d command(s) are valid\n", collection.CaseCount())
	return nil
}
