package cli

import "pharaoh/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Jobs:         f.Jobs,
		NameFilter:   f.NameFilter,
		Shell:        f.Shell,
		EnvFile:      f.EnvFile,
		NoColor:      f.NoColor,
		Progress:     f.Progress,
		Summary:      f.Summary,
		NoSave:       f.NoSave,
		HistoryDSN:   f.HistoryDSN,
		HistoryLimit: f.HistoryLimit,
		MetricsFile:  f.MetricsFile,
		LogLevel:     f.LogLevel,
	}
}
