package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps the report as one JSON document on disk. Saves go
// through a temp file and rename, so a concurrent reader never observes a
// partially written report. All methods are safe for concurrent use.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the JSON document at path. The
// file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the store's document location.
func (s *FileStore) Path() string {
	return s.path
}

// LoadAll reads the current report. A missing document is not an error:
// it yields an empty, well-formed report.
func (s *FileStore) LoadAll() (*ScoreReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Exists reports whether a score for filePath is already persisted.
func (s *FileStore) Exists(filePath string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.load()
	if err != nil {
		return false, err
	}
	return report.Has(filePath), nil
}

// Append adds one score to the report and persists it. Duplicate checking
// is the caller's responsibility, via Exists, inside the serialized
// ingest section.
func (s *FileStore) Append(score SessionScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.load()
	if err != nil {
		return err
	}

	report.Scores = append(report.Scores, score)
	report.TotalSessions = len(report.Scores)
	report.LastScan = time.Now().UTC()
	return s.save(report)
}

// Save persists the given report, replacing the previous document.
func (s *FileStore) Save(report *ScoreReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report.TotalSessions = len(report.Scores)
	return s.save(report)
}

func (s *FileStore) load() (*ScoreReport, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewReport(), nil
		}
		return nil, fmt.Errorf("reading score store: %w", err)
	}

	var report ScoreReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing score store %s: %w", s.path, err)
	}
	if report.Scores == nil {
		report.Scores = []SessionScore{}
	}
	return &report, nil
}

func (s *FileStore) save(report *ScoreReport) error {
	return withRetry(defaultRetry, func() error {
		return s.writeAtomic(report)
	})
}

// writeAtomic marshals the report to a temp file in the target directory
// and renames it over the document, flushing before the swap.
func (s *FileStore) writeAtomic(report *ScoreReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing store file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}
