package scoring

import (
	"fmt"
	"strings"

	"github.com/jamiecraik/behaviorscore/internal/transcript"
)

// Grade is a letter grade derived from a score via fixed thresholds.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor maps a score to its letter grade.
func GradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// ScoreMetrics converts session metrics into a score clamped to [0,100],
// a grade, and a one-line summary.
//
// Starting from 100: −10 per error, +3 per distinct tool (capped at +15),
// +5 per reasoning event (capped at +10), −20 for fewer than five events,
// −15 when no tool was ever called.
func ScoreMetrics(m *transcript.SessionMetrics) (float64, Grade, string) {
	score := 100.0
	score -= 10 * float64(m.Errors)

	toolBonus := 3 * float64(m.DistinctTools())
	if toolBonus > 15 {
		toolBonus = 15
	}
	score += toolBonus

	reasoningBonus := 5 * float64(m.ReasoningEvents)
	if reasoningBonus > 10 {
		reasoningBonus = 10
	}
	score += reasoningBonus

	if m.TotalEvents < 5 {
		score -= 20
	}
	if m.ToolCalls == 0 {
		score -= 15
	}

	score = clamp(score)
	return score, GradeFor(score), metricsSummary(m)
}

// ScoreRules converts rule results into a score clamped to [0,100] and a
// grade. The score is the unweighted pass percentage.
func ScoreRules(checks []RuleCheck) (float64, Grade) {
	if len(checks) == 0 {
		return 0, GradeF
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	score := clamp(100 * float64(passed) / float64(len(checks)))
	return score, GradeFor(score)
}

// metricsSummary joins the present facts in a fixed order: event count,
// tool-call count, then error and reasoning counts only when non-zero.
func metricsSummary(m *transcript.SessionMetrics) string {
	parts := []string{
		fmt.Sprintf("%d events", m.TotalEvents),
		fmt.Sprintf("%d tool calls", m.ToolCalls),
	}
	if m.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", m.Errors))
	}
	if m.ReasoningEvents > 0 {
		parts = append(parts, fmt.Sprintf("%d reasoning steps", m.ReasoningEvents))
	}
	return strings.Join(parts, ", ")
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
