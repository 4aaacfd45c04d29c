// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-assessor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintVerdict outputs the recommendation, confidence and scores of an
// analysis.
func (p *Printer) PrintVerdict(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:            %s\n", result.JobTitle))
	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", result.ApplyRecommendation))
	sb.WriteString(fmt.Sprintf("Confidence:     %.0f%%\n", result.Confidence*100))
	sb.WriteString(fmt.Sprintf("Opportunity:    %.0f/100", result.OpportunityScore))

	if len(result.StructuredReasons) > 0 {
		sb.WriteString("\n\nReasons:\n")
		count := min(len(result.StructuredReasons), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.StructuredReasons[i]))
		}
		if len(result.StructuredReasons) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.StructuredReasons)-maxItemsToShow))
		}
	}

	p.printBox("ANALYSIS VERDICT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFlags outputs the red and green flags of an analysis.
func (p *Printer) PrintFlags(result *types.AnalysisResult) {
	if result == nil || (len(result.RedFlags) == 0 && len(result.GreenFlags) == 0) {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Red: %d  Green: %d\n",
		result.Analytics.FlagCounts.Red, result.Analytics.FlagCounts.Green))

	if len(result.RedFlags) > 0 {
		sb.WriteString("\nRed Flags:\n")
		count := min(len(result.RedFlags), 3)
		for i := 0; i < count; i++ {
			flag := result.RedFlags[i]
			sb.WriteString(fmt.Sprintf("  ⚠ %s (%s)\n", flag.Title, flag.Severity))
		}
		if len(result.RedFlags) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.RedFlags)-3))
		}
	}

	if len(result.GreenFlags) > 0 {
		sb.WriteString("\nGreen Flags:\n")
		count := min(len(result.GreenFlags), 3)
		for i := 0; i < count; i++ {
			flag := result.GreenFlags[i]
			sb.WriteString(fmt.Sprintf("  ✓ %s (%s)\n", flag.Title, flag.Importance))
		}
		if len(result.GreenFlags) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.GreenFlags)-3))
		}
	}

	p.printBox("FLAGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillMatch outputs the per-skill match scores.
func (p *Printer) PrintSkillMatch(result *types.AnalysisResult) {
	if result == nil || len(result.Analytics.SkillMatch) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(result.Analytics.SkillMatch), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := result.Analytics.SkillMatch[i]
		skill := match.Skill
		if len(skill) > 24 {
			skill = skill[:21] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-24s %3.0f  %s\n", skill, match.MatchScore, match.Status))
	}
	if len(result.Analytics.SkillMatch) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(result.Analytics.SkillMatch)-maxItemsToShow))
	}

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintClientMetrics outputs the estimated client behavior scores.
func (p *Printer) PrintClientMetrics(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	m := result.Analytics.ClientMetrics
	content := fmt.Sprintf("Responsiveness: %3.0f/100\nGenerosity:     %3.0f/100\nClarity:        %3.0f/100",
		m.Responsiveness, m.Generosity, m.Clarity)
	p.printBox("CLIENT METRICS", content)
}

// PrintProposal outputs the drafted cover letter.
func (p *Printer) PrintProposal(result *types.AnalysisResult) {
	if result == nil || result.Proposal == nil || result.Proposal.CoverLetter == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(result.Proposal.CoverLetter)
	if result.Proposal.ProposedRateText != "" {
		sb.WriteString(fmt.Sprintf("\n\nProposed rate: %s", result.Proposal.ProposedRateText))
	}
	p.printBox("DRAFT PROPOSAL", sb.String())
}

// PrintReport outputs the full verbose rendering of one analysis.
func (p *Printer) PrintReport(result *types.AnalysisResult) {
	p.PrintVerdict(result)
	p.PrintFlags(result)
	p.PrintSkillMatch(result)
	p.PrintClientMetrics(result)
	p.PrintProposal(result)
}
