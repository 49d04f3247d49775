package domain

// TestCase is one executable assertion: a shell command, the stdin fed to it and
// the stdout, stderr and exit status it is expected to produce.
type TestCase struct {
	Name   string `json:"name" yaml:"name"`     // Suite-qualified name, "<suite>::<case>"
	Cmd    string `json:"cmd" yaml:"cmd"`       // Shell command line
	Stdin  string `json:"stdin" yaml:"stdin"`   // Fed to the command, may be empty
	Stdout string `json:"stdout" yaml:"stdout"` // Expected stdout
	Stderr string `json:"stderr" yaml:"stderr"` // Expected stderr
	Status int    `json:"status" yaml:"status"` // Expected exit status
}

// TestSuite is a named group of test cases, in source document order
type TestSuite struct {
	Name  string
	Tests []TestCase
}

// TestSuiteCollection holds every suite to run, in sorted source path order
type TestSuiteCollection struct {
	TestSuites []TestSuite
}

// NewTestSuiteCollection builds a collection from the given suites, keeping their order
func NewTestSuiteCollection(suites ...TestSuite) TestSuiteCollection {
	return TestSuiteCollection{TestSuites: suites}
}

// CaseCount returns the number of test cases across all suites
func (c TestSuiteCollection) CaseCount() int {
	var total int
	for _, suite := range c.TestSuites {
		total += len(suite.Tests)
	}
	return total
}

// SuiteSeparator joins a suite name and a case name into a qualified test name
const SuiteSeparator = "::"

// QualifiedName returns "<suite>::<case>"
func QualifiedName(suite, name string) string {
	return suite + SuiteSeparator + name
}
