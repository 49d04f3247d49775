package domain

import "time"

// SignalStatus is reported as the actual status of a process that terminated
// without an exit code, e.g. because it was killed by a signal.
const SignalStatus = 129

// ProcessOutput is what the executor captured from one command
type ProcessOutput struct {
	Stdout string
	Stderr string
	Status int
}

// TestResult pairs the expected and actual outcome of one test case.
// It is built once per test case and never mutated afterwards.
type TestResult struct {
	Name           string `json:"name"`
	ExpectedStdout string `json:"expected_stdout"`
	ActualStdout   string `json:"actual_stdout"`
	ExpectedStderr string `json:"expected_stderr"`
	ActualStderr   string `json:"actual_stderr"`
	ExpectedStatus int    `json:"expected_status"`
	ActualStatus   int    `json:"actual_status"`
}

// NewTestResult combines a test case with the output of its run
func NewTestResult(tc TestCase, out ProcessOutput) TestResult {
	return TestResult{
		Name:           tc.Name,
		ExpectedStdout: tc.Stdout,
		ActualStdout:   out.Stdout,
		ExpectedStderr: tc.Stderr,
		ActualStderr:   out.Stderr,
		ExpectedStatus: tc.Status,
		ActualStatus:   out.Status,
	}
}

// IsSuccessful reports whether stdout, stderr and status all match
func (r TestResult) IsSuccessful() bool {
	return r.ExpectedStatus == r.ActualStatus &&
		r.ExpectedStdout == r.ActualStdout &&
		r.ExpectedStderr == r.ActualStderr
}

// TestSuiteResult mirrors a TestSuite, one result per test case
type TestSuiteResult struct {
	Name    string
	Results []TestResult
}

// TestReport mirrors a TestSuiteCollection, one suite result per suite
type TestReport struct {
	TestSuites []TestSuiteResult
}

// Empty reports whether the report holds no suites at all
func (r TestReport) Empty() bool {
	return len(r.TestSuites) == 0
}

// Failures returns the unsuccessful results in report order
func (r TestReport) Failures() []TestResult {
	var failures []TestResult
	for _, suite := range r.TestSuites {
		for _, result := range suite.Results {
			if !result.IsSuccessful() {
				failures = append(failures, result)
			}
		}
	}
	return failures
}

// Counts returns the total, passed and failed number of results
func (r TestReport) Counts() (total, passed, failed int) {
	for _, suite := range r.TestSuites {
		for _, result := range suite.Results {
			total++
			if result.IsSuccessful() {
				passed++
			} else {
				failed++
			}
		}
	}
	return total, passed, failed
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	SearchDir       string  `json:"search_dir"`
	TotalSuites     int     `json:"total_suites"`
	TotalTestCases  int     `json:"total_test_cases"`
	PassedTestCases int     `json:"passed_test_cases"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Jobs            int     `json:"jobs"`
	Timestamp       string  `json:"timestamp"`
}

// NewRunMeta summarizes a report into run metadata
func NewRunMeta(runID, searchDir string, report TestReport, duration time.Duration, jobs int, startedAt time.Time) RunMeta {
	total, passed, failed := report.Counts()
	return RunMeta{
		RunID:           runID,
		SearchDir:       searchDir,
		TotalSuites:     len(report.TestSuites),
		TotalTestCases:  total,
		PassedTestCases: passed,
		FailedTestCases: failed,
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Jobs:            jobs,
		Timestamp:       startedAt.Format(time.RFC3339),
	}
}

// RunOutput is the complete stored record of a run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}
