package ui

import "pharaoh/internal/domain"

// CollectFailures pairs every failed result with its test case and summary.
// The report must mirror the collection it was run from.
func CollectFailures(collection domain.TestSuiteCollection, report domain.TestReport, formatter Formatter) []domain.TestFailure {
	var failures []domain.TestFailure
	for i, suite := range report.TestSuites {
		for j, result := range suite.Results {
			if result.IsSuccessful() {
				continue
			}
			failure := domain.TestFailure{
				TestName:       result.Name,
				Suite:          suite.Name,
				Summary:        formatter.ComputeSummary(result),
				ExpectedStatus: result.ExpectedStatus,
				ActualStatus:   result.ActualStatus,
			}
			if i < len(collection.TestSuites) && j < len(collection.TestSuites[i].Tests) {
				failure.Cmd = collection.TestSuites[i].Tests[j].Cmd
			}
			failures = append(failures, failure)
		}
	}
	return failures
}
