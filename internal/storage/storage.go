package storage

import (
	"pharaoh/internal/config"
	"pharaoh/internal/domain"
)

// Storage persists and loads the last run (e.g. for the failures viewer).
type Storage interface {
	Save(meta domain.RunMeta, failures []domain.TestFailure) error
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after toggling resolved marks).
	SaveOutput(output *domain.RunOutput) error
}

// JSONStorage stores the last run in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
