package discovery

import (
	"path"
	"strings"

	"pharaoh/internal/domain"
)

// Filter filters test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterCollection keeps the test cases whose qualified name matches pattern,
// preserving order. Suites left without cases are dropped.
func (f *Filter) FilterCollection(collection domain.TestSuiteCollection, pattern string) domain.TestSuiteCollection {
	if pattern == "" {
		return collection
	}

	var suites []domain.TestSuite
	for _, suite := range collection.TestSuites {
		var tests []domain.TestCase
		for _, tc := range suite.Tests {
			if f.Match(tc.Name, pattern) {
				tests = append(tests, tc)
			}
		}
		if len(tests) > 0 {
			suites = append(suites, domain.TestSuite{Name: suite.Name, Tests: tests})
		}
	}
	return domain.NewTestSuiteCollection(suites...)
}

// Match reports whether a qualified test name matches pattern using wildcard matching.
// Supports patterns like "foo::*" or "*login*"; a pattern without wildcards
// matches any name containing it.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	// Try to match using path.Match (supports * and ? wildcards)
	matched, err := path.Match(pattern, name)
	if err == nil && matched {
		return true
	}

	// If pattern contains wildcards but path.Match didn't match,
	// try a more flexible match requiring every literal part in the name
	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
