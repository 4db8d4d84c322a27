package scoring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	if len(rules) != 8 {
		t.Fatalf("Expected 8 built-in rules, got %d", len(rules))
	}

	seen := make(map[string]bool)
	for _, r := range rules {
		if r.ID == "" || r.Name == "" || r.Pattern == "" {
			t.Errorf("Rule %+v missing required fields", r)
		}
		if seen[r.ID] {
			t.Errorf("Duplicate rule id %s", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestEvaluator_PassAndFail(t *testing.T) {
	eval := NewEvaluator([]RuleDefinition{
		{ID: "confidence", Name: "Confidence stated", Description: "State confidence", Pattern: `Confidence level:`},
		{ID: "objective", Name: "Objective written", Description: "Write an objective first", Pattern: `OBJECTIVE:`},
	})

	transcript := "Starting work.\nConfidence level: high\nProceeding with the task."
	checks := eval.Evaluate(transcript)
	if len(checks) != 2 {
		t.Fatalf("Expected 2 checks, got %d", len(checks))
	}

	if !checks[0].Passed {
		t.Error("Expected confidence rule to pass")
	}
	if checks[0].Evidence != "Confidence level: high" {
		t.Errorf("Unexpected evidence: %q", checks[0].Evidence)
	}
	if checks[0].Suggestion != "" {
		t.Errorf("Passed rule should carry no suggestion, got %q", checks[0].Suggestion)
	}

	if checks[1].Passed {
		t.Error("Expected objective rule to fail")
	}
	if checks[1].Suggestion != "Consider: Write an objective first" {
		t.Errorf("Unexpected suggestion: %q", checks[1].Suggestion)
	}
	if checks[1].Evidence != "" {
		t.Errorf("Failed rule should carry no evidence, got %q", checks[1].Evidence)
	}
}

func TestEvaluator_EvidenceTruncation(t *testing.T) {
	eval := NewEvaluator([]RuleDefinition{
		{ID: "match", Name: "Match", Pattern: `needle`},
	})

	long := "prefix " + strings.Repeat("x", 300) + " needle tail"
	checks := eval.Evaluate(long)
	if !checks[0].Passed {
		t.Fatal("Expected rule to pass")
	}
	if len(checks[0].Evidence) != maxEvidenceLen+3 {
		t.Errorf("Expected evidence truncated to %d+ellipsis, got %d chars", maxEvidenceLen, len(checks[0].Evidence))
	}
	if !strings.HasSuffix(checks[0].Evidence, "...") {
		t.Errorf("Expected truncated evidence to end with ellipsis: %q", checks[0].Evidence)
	}
}

func TestEvaluator_InvalidPatternAlwaysFails(t *testing.T) {
	eval := NewEvaluator([]RuleDefinition{
		{ID: "bad", Name: "Bad pattern", Description: "Uses lookahead", Pattern: `(?!nope)`},
	})

	checks := eval.Evaluate("anything at all")
	if checks[0].Passed {
		t.Error("Rule with uncompilable pattern must evaluate as failed")
	}
	if checks[0].Suggestion == "" {
		t.Error("Failed rule should carry a suggestion")
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yml")
	content := `rules:
  - id: custom_rule
    name: Custom rule
    description: A custom check
    pattern: "DONE:"
    weight: 2.0
    category: response
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(rules))
	}
	if rules[0].ID != "custom_rule" || rules[0].Weight != 2.0 || rules[0].Category != CategoryResponse {
		t.Errorf("Unexpected rule: %+v", rules[0])
	}
}

func TestLoadRules_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRules(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("Expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.yml")
	os.WriteFile(empty, []byte("rules: []\n"), 0644)
	if _, err := LoadRules(empty); err == nil {
		t.Error("Expected error for empty catalog")
	}

	broken := filepath.Join(dir, "broken.yml")
	os.WriteFile(broken, []byte("rules: [\n"), 0644)
	if _, err := LoadRules(broken); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestRuleSummary(t *testing.T) {
	checks := []RuleCheck{{Passed: true}, {Passed: false}, {Passed: false}}

	cases := []struct {
		score float64
		want  string
	}{
		{95, "Excellent adherence (95%). All critical rules followed."},
		{80, "Good adherence (80%). 2 minor improvements possible."},
		{60, "Moderate adherence (60%). 2 rules need attention."},
		{30, "Needs improvement (30%). 2 critical rules missed."},
	}

	for _, tc := range cases {
		if got := RuleSummary(checks, tc.score); got != tc.want {
			t.Errorf("RuleSummary(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
