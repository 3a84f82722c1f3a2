package storage

import (
	"time"

	"platina/internal/config"
	"platina/internal/domain"
)

// Storage persists and loads run results (e.g. for the mismatches viewer).
type Storage interface {
	Save(results []*domain.FileResult, mode string, duration time.Duration) (*domain.RunOutput, error)
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after resolving mismatches in the viewer).
	SaveOutput(output *domain.RunOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
