// Package store persists session scores as a single durable report
// document, keyed and deduplicated by source file path.
package store

import (
	"time"

	"github.com/jamiecraik/behaviorscore/internal/scoring"
	"github.com/jamiecraik/behaviorscore/internal/transcript"
)

// SessionScore is one scored session. Its natural key is (SessionID,
// FilePath); a record is created once and never updated in place.
type SessionScore struct {
	SessionID string    `json:"sessionId"`
	FilePath  string    `json:"filePath"`
	CreatedAt time.Time `json:"createdAt"`

	// Exactly one of Metrics or Rules is set, depending on which entry
	// point produced the score: file ingestion carries metrics, direct
	// transcript submission carries rule results.
	Metrics *transcript.SessionMetrics `json:"metrics,omitempty"`
	Rules   []scoring.RuleCheck        `json:"rules,omitempty"`

	Score   float64       `json:"score"`
	Grade   scoring.Grade `json:"grade"`
	Summary string        `json:"summary"`
}

// ScoreReport is the externally visible store snapshot. Scores appear in
// insertion order, which is processing order.
type ScoreReport struct {
	LastScan      time.Time      `json:"lastScan"`
	TotalSessions int            `json:"totalSessions"`
	Scores        []SessionScore `json:"scores"`
}

// NewReport returns an empty, well-formed report with a fresh timestamp.
func NewReport() *ScoreReport {
	return &ScoreReport{
		LastScan: time.Now().UTC(),
		Scores:   []SessionScore{},
	}
}

// Has reports whether a score for the given file path is already present.
func (r *ScoreReport) Has(filePath string) bool {
	for i := range r.Scores {
		if r.Scores[i].FilePath == filePath {
			return true
		}
	}
	return false
}

// AverageScore returns the mean score across all sessions, zero when empty.
func (r *ScoreReport) AverageScore() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	total := 0.0
	for i := range r.Scores {
		total += r.Scores[i].Score
	}
	return total / float64(len(r.Scores))
}

// GradeDistribution returns the session count per letter grade.
func (r *ScoreReport) GradeDistribution() map[scoring.Grade]int {
	dist := make(map[scoring.Grade]int)
	for i := range r.Scores {
		dist[r.Scores[i].Grade]++
	}
	return dist
}

// Store is the durable score mapping. Append never fails on duplicates;
// callers run Exists first, inside the serialized ingest section.
type Store interface {
	Exists(filePath string) (bool, error)
	Append(score SessionScore) error
	LoadAll() (*ScoreReport, error)
	Save(report *ScoreReport) error
}
