package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"platina/internal/domain"
)

// Summarize builds the persisted output of a run over results.
func Summarize(results []*domain.FileResult, mode string, duration time.Duration) *domain.RunOutput {
	output := &domain.RunOutput{
		Meta: domain.RunMeta{
			RunID:           uuid.NewString(),
			Mode:            mode,
			TotalFiles:      len(results),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Files:   make([]domain.FileSummary, 0, len(results)),
		Details: []domain.Mismatch{},
	}

	for _, r := range results {
		summary := domain.FileSummary{
			Path:         r.Path,
			Cases:        len(r.Cases),
			Mismatches:   r.MismatchCount(),
			Updated:      r.Updated,
			DigestBefore: r.DigestBefore,
			DigestAfter:  r.DigestAfter,
		}
		switch {
		case r.Error != nil:
			summary.Error = r.Error.Error()
			output.Meta.ErroredFiles++
		case r.Report != "":
			output.Meta.FailedFiles++
		default:
			output.Meta.PassedFiles++
		}
		output.Meta.TotalCases += len(r.Cases)
		output.Meta.Mismatches += summary.Mismatches
		output.Files = append(output.Files, summary)
		output.Details = append(output.Details, domain.MismatchesOf(r.Path, r.Cases, r.Updated)...)
	}
	return output
}

// Save writes the results of a run to the configured JSON output file.
func (s *JSONStorage) Save(results []*domain.FileResult, mode string, duration time.Duration) (*domain.RunOutput, error) {
	output := Summarize(results, mode, duration)
	if err := s.SaveOutput(output); err != nil {
		return nil, err
	}
	return output, nil
}

// Load reads the last run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
