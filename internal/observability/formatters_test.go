package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-assessor/internal/types"
)

func fullResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		ApplyRecommendation: types.RecommendApply,
		Confidence:          0.85,
		OpportunityScore:    72,
		JobTitle:            "Senior React Developer",
		RedFlags:            []types.RedFlag{{Title: "Vague scope", Severity: "medium"}},
		GreenFlags:          []types.GreenFlag{{Title: "Clear budget", Importance: "high"}},
		DetailedReport:      "report",
		Proposal:            &types.Proposal{CoverLetter: "Hi, saw your posting.", ProposedRateText: "$55/hr"},
		Analytics: types.Analytics{
			FlagCounts: types.FlagCounts{Red: 1, Green: 1},
			SkillMatch: []types.SkillMatch{
				{Skill: "React", MatchScore: 92, Status: "expert"},
				{Skill: "GraphQL", MatchScore: 40, Status: "missing"},
			},
			ClientMetrics: types.ClientMetrics{Responsiveness: 60, Generosity: 70, Clarity: 80},
		},
		StructuredReasons: []string{"skills align", "budget is fair"},
	}
}

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintVerdict(fullResult())

	out := buf.String()
	assert.Contains(t, out, "ANALYSIS VERDICT")
	assert.Contains(t, out, "Senior React Developer")
	assert.Contains(t, out, "apply")
	assert.Contains(t, out, "85%")
	assert.Contains(t, out, "72/100")
	assert.Contains(t, out, "skills align")
}

func TestPrintFlags(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFlags(fullResult())

	out := buf.String()
	assert.Contains(t, out, "Red: 1  Green: 1")
	assert.Contains(t, out, "Vague scope")
	assert.Contains(t, out, "Clear budget")
}

func TestPrintFlagsSkipsWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := fullResult()
	result.RedFlags = nil
	result.GreenFlags = nil
	NewPrinter(&buf).PrintFlags(result)
	assert.Empty(t, buf.String())
}

func TestPrintSkillMatch(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSkillMatch(fullResult())

	out := buf.String()
	assert.Contains(t, out, "SKILL MATCH")
	assert.Contains(t, out, "React")
	assert.Contains(t, out, "missing")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(fullResult())

	out := buf.String()
	assert.Contains(t, out, "ANALYSIS VERDICT")
	assert.Contains(t, out, "FLAGS")
	assert.Contains(t, out, "CLIENT METRICS")
	assert.Contains(t, out, "DRAFT PROPOSAL")
	assert.Contains(t, out, "$55/hr")
}

func TestPrintReportNilResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(nil)
	assert.Empty(t, buf.String())
}
