package scoring

import (
	"testing"

	"github.com/jamiecraik/behaviorscore/internal/transcript"
)

func TestGradeFor_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Grade
	}{
		{100, GradeA},
		{90, GradeA},
		{89.999, GradeB},
		{80, GradeB},
		{79.999, GradeC},
		{70, GradeC},
		{69.999, GradeD},
		{60, GradeD},
		{59.999, GradeF},
		{0, GradeF},
	}

	for _, tc := range cases {
		if got := GradeFor(tc.score); got != tc.want {
			t.Errorf("GradeFor(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestScoreMetrics_HealthySession(t *testing.T) {
	// 10 tool calls across 3 distinct tools, no errors: the tool bonus
	// pushes past 100 and clamps back down.
	m := &transcript.SessionMetrics{
		TotalEvents: 10,
		ToolCalls:   10,
		ToolBreakdown: map[string]int{
			"shell": 6, "apply_patch": 3, "view_image": 1,
		},
	}

	score, grade, summary := ScoreMetrics(m)
	if score != 100 {
		t.Errorf("Expected score 100, got %v", score)
	}
	if grade != GradeA {
		t.Errorf("Expected grade A, got %s", grade)
	}
	if summary != "10 events, 10 tool calls" {
		t.Errorf("Unexpected summary: %q", summary)
	}
}

func TestScoreMetrics_ErrorsAndNoTools(t *testing.T) {
	// Two errors and no tool calls: 100 - 20 - 15 = 65.
	m := &transcript.SessionMetrics{
		TotalEvents:   5,
		Errors:        2,
		ToolBreakdown: map[string]int{},
	}

	score, grade, summary := ScoreMetrics(m)
	if score != 65 {
		t.Errorf("Expected score 65, got %v", score)
	}
	if grade != GradeD {
		t.Errorf("Expected grade D, got %s", grade)
	}
	if summary != "5 events, 0 tool calls, 2 errors" {
		t.Errorf("Unexpected summary: %q", summary)
	}
}

func TestScoreMetrics_Penalties(t *testing.T) {
	cases := []struct {
		name string
		m    transcript.SessionMetrics
		want float64
	}{
		{
			name: "short session with no tools",
			m:    transcript.SessionMetrics{TotalEvents: 3},
			want: 65, // 100 - 20 - 15
		},
		{
			name: "tool bonus capped at 15",
			m: transcript.SessionMetrics{
				TotalEvents: 20,
				ToolCalls:   8,
				ToolBreakdown: map[string]int{
					"a": 1, "b": 1, "c": 1, "d": 1, "e": 1, "f": 1, "g": 1, "h": 1,
				},
			},
			want: 100, // 100 + min(24,15) clamped
		},
		{
			name: "reasoning bonus capped at 10",
			m: transcript.SessionMetrics{
				TotalEvents:     10,
				ToolCalls:       1,
				ToolBreakdown:   map[string]int{"shell": 1},
				ReasoningEvents: 7,
				Errors:          2,
			},
			want: 93, // 100 - 20 + 3 + min(35,10)
		},
		{
			name: "floor at zero",
			m: transcript.SessionMetrics{
				TotalEvents: 2,
				Errors:      12,
			},
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _, _ := ScoreMetrics(&tc.m)
			if score != tc.want {
				t.Errorf("Expected score %v, got %v", tc.want, score)
			}
			if score < 0 || score > 100 {
				t.Errorf("Score %v out of bounds", score)
			}
		})
	}
}

func TestScoreMetrics_SummaryOrder(t *testing.T) {
	m := &transcript.SessionMetrics{
		TotalEvents:     7,
		ToolCalls:       2,
		ToolBreakdown:   map[string]int{"shell": 2},
		Errors:          1,
		ReasoningEvents: 3,
	}

	_, _, summary := ScoreMetrics(m)
	want := "7 events, 2 tool calls, 1 errors, 3 reasoning steps"
	if summary != want {
		t.Errorf("Expected %q, got %q", want, summary)
	}
}

func TestScoreRules(t *testing.T) {
	checks := make([]RuleCheck, 8)
	for i := 0; i < 6; i++ {
		checks[i].Passed = true
	}

	score, grade := ScoreRules(checks)
	if score != 75 {
		t.Errorf("Expected score 75, got %v", score)
	}
	if grade != GradeC {
		t.Errorf("Expected grade C, got %s", grade)
	}
}

func TestScoreRules_Empty(t *testing.T) {
	score, grade := ScoreRules(nil)
	if score != 0 || grade != GradeF {
		t.Errorf("Expected 0/F for empty rule set, got %v/%s", score, grade)
	}
}
