package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acarl005/stripansi"

	"pharaoh/internal/domain"
)

// Save writes the run meta and its failures to the configured JSON output file.
// Summaries are stored without color escape sequences.
func (s *JSONStorage) Save(meta domain.RunMeta, failures []domain.TestFailure) error {
	details := make([]domain.TestFailure, len(failures))
	for i, f := range failures {
		f.Summary = stripansi.Strip(f.Summary)
		details[i] = f
	}
	return s.SaveOutput(&domain.RunOutput{Meta: meta, Details: details})
}

// Load reads the last run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError(domain.KindStorage, "read results file", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, domain.NewError(domain.KindStorage, "parse results", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return domain.NewError(domain.KindStorage, "marshal results", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return domain.NewError(domain.KindStorage, "create output dir", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return domain.NewError(domain.KindStorage, fmt.Sprintf("write %s", path), err)
	}
	return nil
}
