package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// SessionMetrics is the per-session aggregate built by folding one
// transcript file. It is mutated only while accumulating and treated as
// immutable once scoring begins.
type SessionMetrics struct {
	TotalEvents       int            `json:"totalEvents"`
	ToolCalls         int            `json:"toolCalls"`
	ToolBreakdown     map[string]int `json:"toolBreakdown"`
	Errors            int            `json:"errors"`
	UserMessages      int            `json:"userMessages"`
	AssistantMessages int            `json:"assistantMessages"`
	ReasoningEvents   int            `json:"reasoningEvents"`

	// Duration is max(timestamp) - min(timestamp) across all timestamped
	// events in the file. Nil when no timestamp was observed; a file with
	// exactly one timestamped event has a zero (not nil) duration.
	Duration *time.Duration `json:"duration,omitempty"`

	// SkippedLines counts lines the parser rejected (blank, malformed,
	// or missing a type field).
	SkippedLines int `json:"skippedLines"`
}

// DistinctTools returns the number of distinct tool names observed.
func (m *SessionMetrics) DistinctTools() int {
	return len(m.ToolBreakdown)
}

// AccumulateFile streams a transcript file line-by-line and folds it into
// one SessionMetrics value. The file is never loaded into memory whole.
func AccumulateFile(path string) (*SessionMetrics, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer file.Close()

	metrics, err := Accumulate(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return metrics, nil
}

// Accumulate folds a stream of JSONL transcript lines into SessionMetrics.
// Identical input bytes always yield identical metrics.
func Accumulate(r io.Reader) (*SessionMetrics, error) {
	metrics := &SessionMetrics{
		ToolBreakdown: make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxScanTokenSize)

	var first, last time.Time
	for scanner.Scan() {
		event, ok := ParseLine(scanner.Bytes())
		if !ok {
			metrics.SkippedLines++
			continue
		}

		metrics.TotalEvents++
		switch event.Kind {
		case KindToolCall:
			metrics.ToolCalls++
			metrics.ToolBreakdown[event.ToolName]++
		case KindReasoning:
			metrics.ReasoningEvents++
		case KindUserMessage:
			metrics.UserMessages++
		case KindAssistantMessage:
			metrics.AssistantMessages++
		case KindError:
			metrics.Errors++
		}

		if !event.Timestamp.IsZero() {
			if first.IsZero() || event.Timestamp.Before(first) {
				first = event.Timestamp
			}
			if last.IsZero() || event.Timestamp.After(last) {
				last = event.Timestamp
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning transcript: %w", err)
	}

	if !first.IsZero() {
		d := last.Sub(first)
		metrics.Duration = &d
	}

	return metrics, nil
}
