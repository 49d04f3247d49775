package config

const (
	// DefaultSearchDir is the default directory searched for YAML test files
	DefaultSearchDir = "."
	// DefaultShell is the shell every test command is run with
	DefaultShell = "/bin/sh"
	// DefaultJobs is the default number of test cases run at once
	DefaultJobs = 1
	// MaxJobs bounds the number of concurrently running commands
	MaxJobs = 64
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the default output directory, relative to the search dir
	DefaultOutputJSONDir = ".pharaoh"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "warn"
	// DefaultHistoryLimit is the number of runs shown by the history command
	DefaultHistoryLimit = 20
	// HistoryDSNEnv names the environment variable holding the history DSN
	HistoryDSNEnv = "PHARAOH_HISTORY_DSN"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"node_modules",
}
