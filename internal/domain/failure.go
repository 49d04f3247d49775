package domain

// TestFailure is the stored form of a failed test case
type TestFailure struct {
	TestName       string `json:"test_name"`
	Suite          string `json:"suite"`
	Cmd            string `json:"cmd,omitempty"`
	Summary        string `json:"summary"`
	ExpectedStatus int    `json:"expected_status"`
	ActualStatus   int    `json:"actual_status"`
	Resolved       bool   `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
