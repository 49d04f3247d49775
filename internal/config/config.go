package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Discovery settings
	SearchDir     string
	PathsToIgnore []string

	// Execution settings
	Shell string
	Jobs  int

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	LogLevel       string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Jobs         int
	NameFilter   string
	Shell        string
	EnvFile      string
	NoColor      bool
	Progress     bool
	Summary      bool
	NoSave       bool
	HistoryDSN   string
	HistoryLimit int
	MetricsFile  string
	LogLevel     string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		SearchDir:      DefaultSearchDir,
		Shell:          DefaultShell,
		Jobs:           DefaultJobs,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LogLevel:       DefaultLogLevel,
		Flags:          Flags{Jobs: DefaultJobs, HistoryLimit: DefaultHistoryLimit},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags, args []string) *Config {
	cfg := New()
	cfg.Apply(flags, args)
	return cfg
}

// Apply overrides the config with parsed flags and the optional search dir argument
func (c *Config) Apply(flags Flags, args []string) {
	c.Flags = flags

	if len(args) > 0 && args[0] != "" {
		c.SearchDir = args[0]
	}
	if flags.Jobs > 0 {
		c.Jobs = flags.Jobs
	}
	if c.Jobs > MaxJobs {
		c.Jobs = MaxJobs
	}
	if flags.Shell != "" {
		c.Shell = flags.Shell
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// GetOutputPath returns the full path to the output JSON file (under the search dir so
// run and failures use the same file). Resolves to an absolute path when possible.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.SearchDir, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// ChildEnv returns the environment for spawned test commands: the current
// environment plus the variables of the env file, if one is configured.
// It returns nil when no env file is set so commands inherit the environment.
func (c *Config) ChildEnv() ([]string, error) {
	if c.Flags.EnvFile == "" {
		return nil, nil
	}
	vars, err := godotenv.Read(c.Flags.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", c.Flags.EnvFile, err)
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	env := os.Environ()
	for _, key := range keys {
		env = append(env, key+"="+vars[key])
	}
	return env, nil
}

// GetHistoryDSN returns the history database DSN: the flag if given, otherwise
// PHARAOH_HISTORY_DSN from the environment or the search dir's .env file.
func (c *Config) GetHistoryDSN() string {
	if c.Flags.HistoryDSN != "" {
		return c.Flags.HistoryDSN
	}

	if dsn := os.Getenv(HistoryDSNEnv); dsn != "" {
		return dsn
	}

	// .env file might not exist, that's okay
	vars, err := godotenv.Read(filepath.Join(c.SearchDir, ".env"))
	if err != nil {
		return ""
	}
	return vars[HistoryDSNEnv]
}
