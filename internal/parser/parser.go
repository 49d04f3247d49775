package parser

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"pharaoh/internal/domain"
)

// Parser checks test commands before they are run
type Parser interface {
	Check(cmd string) error
}

var _ Parser = (*ShellParser)(nil)

// ShellParser checks that commands are valid POSIX shell
type ShellParser struct {
	parser *syntax.Parser
}

// NewShellParser creates a new ShellParser
func NewShellParser() *ShellParser {
	return &ShellParser{parser: syntax.NewParser(syntax.Variant(syntax.LangPOSIX))}
}

// Check parses cmd and returns the first syntax error, if any
func (p *ShellParser) Check(cmd string) error {
	if _, err := p.parser.Parse(strings.NewReader(cmd), ""); err != nil {
		return fmt.Errorf("invalid shell syntax: %w", err)
	}
	return nil
}

// Issue is a test case whose command failed the check
type Issue struct {
	Suite    string
	TestName string
	Cmd      string
	Err      error
}

// CheckCollection checks every command of the collection and returns the
// failing ones in collection order
func CheckCollection(p Parser, collection domain.TestSuiteCollection) []Issue {
	var issues []Issue
	for _, suite := range collection.TestSuites {
		for _, tc := range suite.Tests {
			if err := p.Check(tc.Cmd); err != nil {
				issues = append(issues, Issue{Suite: suite.Name, TestName: tc.Name, Cmd: tc.Cmd, Err: err})
			}
		}
	}
	return issues
}
