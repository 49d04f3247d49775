// Package exitcodes defines the exit codes used by pharaoh.
package exitcodes

// Exit code constants used by pharaoh
//
// * Success (0): every test case passed, or there was nothing to run
// * TestFailure (1): at least one test case failed
// * RuntimeErr (2): the run was aborted by an infrastructure error
const (
	Success     = 0 // All tests pass
	TestFailure = 1 // Test failures
	RuntimeErr  = 2 // Runtime errors
)
