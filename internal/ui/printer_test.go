package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharaoh/internal/domain"
)

type stubFormatter struct{}

func (stubFormatter) ComputeSummary(result domain.TestResult) string {
	if result.IsSuccessful() {
		return ""
	}
	return "FAIL\n"
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReportPrinter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, NewFormatter(), false).PrintReport(domain.TestReport{}))
	assert.Equal(t, "No test case found. Exiting.\n", buf.String())
}

func TestReportPrinter_AllPassed(t *testing.T) {
	report := domain.TestReport{TestSuites: []domain.TestSuiteResult{
		{Name: "foo", Results: []domain.TestResult{
			{Name: "foo::one", ExpectedStdout: "1\n", ActualStdout: "1\n"},
			{Name: "foo::two"},
		}},
		{Name: "bar"},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, NewFormatter(), false).PrintReport(report))
	assert.Equal(t,
		"Running tests for foo\ntest foo::one ... OK\ntest foo::two ... OK\nRunning tests for bar\n",
		buf.String())
}

func TestReportPrinter_Failures(t *testing.T) {
	report := domain.TestReport{TestSuites: []domain.TestSuiteResult{
		{Name: "mysuite", Results: []domain.TestResult{
			{Name: "failingtest", ExpectedStatus: 0, ActualStatus: 1},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, stubFormatter{}, false).PrintReport(report))
	assert.Equal(t,
		"Running tests for mysuite\ntest failingtest ... FAILED\n\nfailures:\n\n---- failingtest ----\nFAIL\n\n",
		buf.String())
}

func TestReportPrinter_FooFailureScenario(t *testing.T) {
	report := domain.TestReport{TestSuites: []domain.TestSuiteResult{
		{Name: "foo", Results: []domain.TestResult{
			{Name: "foo::failure", ExpectedStdout: "foo\n", ActualStdout: "fou\n"},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, NewFormatter(), false).PrintReport(report))
	assert.Equal(t,
		"Running tests for foo\n"+
			"test foo::failure ... FAILED\n"+
			"\nfailures:\n\n"+
			"---- foo::failure ----\n"+
			"stdout differs:\n--- expected\n+++ actual\n-foo\n+fou\n"+
			"\n",
		buf.String())
}

func TestReportPrinter_FailuresKeepEncounterOrder(t *testing.T) {
	report := domain.TestReport{TestSuites: []domain.TestSuiteResult{
		{Name: "a", Results: []domain.TestResult{{Name: "a::1", ActualStatus: 1}, {Name: "a::2"}}},
		{Name: "b", Results: []domain.TestResult{{Name: "b::1", ActualStatus: 1}}},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, stubFormatter{}, false).PrintReport(report))
	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("---- a::1 ----")), bytes.Index([]byte(out), []byte("---- b::1 ----")))
	assert.NotContains(t, out, "---- a::2 ----")
}

func TestReportPrinter_WriteError(t *testing.T) {
	err := NewPrinter(failingWriter{}, NewFormatter(), false).PrintReport(domain.TestReport{})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindIO))
}

func TestReportPrinter_Colorized(t *testing.T) {
	report := domain.TestReport{TestSuites: []domain.TestSuiteResult{
		{Name: "s", Results: []domain.TestResult{{Name: "s::ok"}}},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, NewFormatter(), true).PrintReport(report))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "OK")
}

func TestCollectFailures(t *testing.T) {
	collection := domain.NewTestSuiteCollection(domain.TestSuite{
		Name: "foo",
		Tests: []domain.TestCase{
			{Name: "foo::ok", Cmd: "true"},
			{Name: "foo::failure", Cmd: "echo fou", Stdout: "foo\n"},
		},
	})
	report := domain.TestReport{TestSuites: []domain.TestSuiteResult{
		{Name: "foo", Results: []domain.TestResult{
			{Name: "foo::ok"},
			{Name: "foo::failure", ExpectedStdout: "foo\n", ActualStdout: "fou\n"},
		}},
	}}

	failures := CollectFailures(collection, report, NewFormatter())
	require.Len(t, failures, 1)
	assert.Equal(t, domain.TestFailure{
		TestName: "foo::failure",
		Suite:    "foo",
		Cmd:      "echo fou",
		Summary:  "stdout differs:\n--- expected\n+++ actual\n-foo\n+fou\n",
	}, failures[0])
}
