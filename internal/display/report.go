// Package display renders score reports for the terminal.
package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/jamiecraik/behaviorscore/internal/scoring"
	"github.com/jamiecraik/behaviorscore/internal/store"
)

var gradeStyles = map[scoring.Grade]lipgloss.Style{
	scoring.GradeA: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	scoring.GradeB: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	scoring.GradeC: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	scoring.GradeD: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	scoring.GradeF: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

func renderGrade(g scoring.Grade) string {
	if style, ok := gradeStyles[g]; ok {
		return style.Render(string(g))
	}
	return string(g)
}

// PrintReport writes the grade distribution, the average score, and a
// per-session table for the given report.
func PrintReport(report *store.ScoreReport, w io.Writer) {
	fmt.Fprintf(w, "Last scan: %s\n", report.LastScan.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Sessions:  %d\n", report.TotalSessions)
	fmt.Fprintf(w, "Average:   %.1f\n", report.AverageScore())

	dist := report.GradeDistribution()
	fmt.Fprint(w, "Grades:    ")
	for _, g := range []scoring.Grade{scoring.GradeA, scoring.GradeB, scoring.GradeC, scoring.GradeD, scoring.GradeF} {
		fmt.Fprintf(w, "%s:%d  ", renderGrade(g), dist[g])
	}
	fmt.Fprintln(w)

	if len(report.Scores) == 0 {
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "SESSION ID\tSCORE\tGRADE\tSCORED\tSUMMARY")
	for _, s := range report.Scores {
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t%s\t%s\n",
			s.SessionID, s.Score, renderGrade(s.Grade),
			s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Summary)
	}
	tw.Flush()
}

// PrintScore writes one session score in the human-readable form.
func PrintScore(score *store.SessionScore, w io.Writer) {
	fmt.Fprintf(w, "Session: %s\n", score.SessionID)
	fmt.Fprintf(w, "Score:   %.1f (%s)\n", score.Score, renderGrade(score.Grade))
	fmt.Fprintf(w, "%s\n", score.Summary)

	if len(score.Rules) > 0 {
		fmt.Fprintln(w, "\nRule results:")
		for _, check := range score.Rules {
			mark := "PASS"
			if !check.Passed {
				mark = "FAIL"
			}
			fmt.Fprintf(w, "  [%s] %s\n", mark, check.RuleName)
			if check.Suggestion != "" {
				fmt.Fprintf(w, "         %s\n", check.Suggestion)
			}
		}
	}
}

// PrintRules writes the active rule catalog as a table.
func PrintRules(rules []scoring.RuleDefinition, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tWEIGHT\tNAME")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\n", r.ID, r.Category, r.Weight, r.Name)
	}
	tw.Flush()
}
