package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jamiecraik/behaviorscore/internal/logging"
	"github.com/jamiecraik/behaviorscore/internal/scoring"
	"github.com/jamiecraik/behaviorscore/internal/store"
	"github.com/jamiecraik/behaviorscore/internal/transcript"
)

// MaxTranscriptFileSize is the largest transcript file the pipeline will
// ingest; bigger files are skipped with a warning.
const MaxTranscriptFileSize = 10 * 1024 * 1024 // 10MB

// Processor runs the ingest critical section: load report, check the
// dedup invariant, parse, score, append, save. A single mutex serializes
// that whole sequence, so the watcher and the scan orchestrator can share
// one Processor without racing the read-check-append pattern.
type Processor struct {
	store store.Store
	eval  *scoring.Evaluator
	mu    sync.Mutex
	log   *logrus.Entry
}

// NewProcessor creates a processor writing to the given store. The
// evaluator is used only by the direct transcript-scoring path.
func NewProcessor(st store.Store, eval *scoring.Evaluator) *Processor {
	return &Processor{
		store: st,
		eval:  eval,
		log:   logging.NewLogger("processor"),
	}
}

// ProcessFile ingests one transcript file via the metrics-based strategy.
// It returns true when a new score was appended, and false when the path
// was already scored or the file had to be skipped. Unreadable or
// oversized files are logged and swallowed; only store I/O failures
// surface as errors.
func (p *Processor) ProcessFile(path string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	exists, err := p.store.Exists(path)
	if err != nil {
		return false, err
	}
	if exists {
		p.log.WithField("path", path).Debug("Session already scored, skipping")
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		p.log.WithError(err).WithField("path", path).Warn("Cannot stat transcript, skipping")
		return false, nil
	}
	if info.Size() > MaxTranscriptFileSize {
		p.log.WithFields(logrus.Fields{
			"path": path,
			"size": info.Size(),
		}).Warn("Transcript exceeds size limit, skipping")
		return false, nil
	}

	metrics, err := transcript.AccumulateFile(path)
	if err != nil {
		p.log.WithError(err).WithField("path", path).Warn("Failed to read transcript, skipping")
		return false, nil
	}

	score, grade, summary := scoring.ScoreMetrics(metrics)
	record := store.SessionScore{
		SessionID: IDFromPath(path),
		FilePath:  path,
		CreatedAt: time.Now().UTC(),
		Metrics:   metrics,
		Score:     score,
		Grade:     grade,
		Summary:   summary,
	}

	if err := p.store.Append(record); err != nil {
		return false, fmt.Errorf("persisting score for %s: %w", path, err)
	}

	p.log.WithFields(logrus.Fields{
		"session": record.SessionID,
		"score":   score,
		"grade":   grade,
	}).Info("Scored session")
	return true, nil
}

// ScoreTranscript scores raw transcript text via the rule-based strategy
// and appends the result under the given source path. Validation failures
// surface before any evaluation runs; no partial state is written. When
// the source path is already scored, the existing dedup invariant applies
// and nothing is appended.
func (p *Processor) ScoreTranscript(sessionID, sourcePath, text string) (*store.SessionScore, error) {
	if err := scoring.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	if err := scoring.ValidateTranscript(text); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	exists, err := p.store.Exists(sourcePath)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("transcript %s is already scored", sourcePath)
	}

	checks := p.eval.Evaluate(text)
	score, grade := scoring.ScoreRules(checks)
	record := store.SessionScore{
		SessionID: sessionID,
		FilePath:  sourcePath,
		CreatedAt: time.Now().UTC(),
		Rules:     checks,
		Score:     score,
		Grade:     grade,
		Summary:   scoring.RuleSummary(checks, score),
	}

	if err := p.store.Append(record); err != nil {
		return nil, fmt.Errorf("persisting score for %s: %w", sessionID, err)
	}
	return &record, nil
}
