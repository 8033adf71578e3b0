package normalize_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docpilot/internal/domain"
	"docpilot/internal/normalize"
)

func TestLocateJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"leading prose", `Here you go: {"summary":"ok"} hope it helps`, `{"summary":"ok"}`},
		{"nested", `x {"a":{"b":[1,{"c":2}]}} y {"z":0}`, `{"a":{"b":[1,{"c":2}]}}`},
		{"braces in strings", `{"text":"use } and { freely","n":"\"}"}`, `{"text":"use } and { freely","n":"\"}"}`},
		{"code fence", "```json\n{\"a\": true}\n```", `{"a": true}`},
		{"bom", "\uFEFF{\"a\":2}", `{"a":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalize.LocateJSONObject(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocateJSONObject_NotFound(t *testing.T) {
	for _, in := range []string{"", "no json here", `{"unterminated": "x"`, "[1,2,3]"} {
		_, err := normalize.LocateJSONObject(in)
		assert.Error(t, err, in)
	}
}

func TestParseAnalysis_IgnoresProse(t *testing.T) {
	answer := `Here you go: {"summary":"ok","riskAssessment":{"overallRisk":"low","riskScore":10},"parties":[{"name":"Acme","role":"Landlord"}]} Let me know if you need more.`

	result, err := normalize.ParseAnalysis(answer)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Summary)
	assert.Equal(t, 10, result.RiskAssessment.RiskScore)
	assert.Equal(t, domain.RiskLow, result.RiskAssessment.OverallRisk)
	require.Len(t, result.Parties, 1)
	assert.Equal(t, "Acme", result.Parties[0].Name)
}

func TestParseAnalysis_TopLevelRiskScore(t *testing.T) {
	result, err := normalize.ParseAnalysis(`Here you go: {"summary":"ok","riskScore":10}`)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Summary)
	assert.Equal(t, 10, result.RiskAssessment.RiskScore)
	assert.Equal(t, domain.RiskLow, result.RiskAssessment.OverallRisk)
}

func TestParseAnalysis_GarbageFallsBack(t *testing.T) {
	result, err := normalize.ParseAnalysis("I'm sorry, I cannot analyze this document.")

	require.NotNil(t, result)
	assert.Equal(t, domain.FallbackAnalysis(), result)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAnalysisParse))
	var pe *normalize.AnalysisParseError
	require.True(t, errors.As(err, &pe))
	assert.NotEmpty(t, pe.Reason)
}

func TestParseAnalysis_WrongShapeFallsBack(t *testing.T) {
	result, err := normalize.ParseAnalysis(`{"parties":"everyone"}`)
	assert.ErrorIs(t, err, domain.ErrAnalysisParse)
	assert.Equal(t, domain.FallbackAnalysis(), result)
}

func TestParseAnalysis_RiskNormalization(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantLevel domain.RiskLevel
		wantScore int
	}{
		{"clamped high", `{"riskAssessment":{"overallRisk":"critical","riskScore":250}}`, domain.RiskCritical, 100},
		{"band from score", `{"riskAssessment":{"overallRisk":"severe","riskScore":60}}`, domain.RiskHigh, 60},
		{"band case folded", `{"riskAssessment":{"overallRisk":" HIGH ","riskScore":70}}`, domain.RiskHigh, 70},
		{"string score", `{"riskAssessment":{"riskScore":"42"}}`, domain.RiskMedium, 42},
		{"score from band", `{"riskAssessment":{"overallRisk":"low"}}`, domain.RiskLow, 25},
		{"nothing given", `{"summary":"x"}`, domain.RiskMedium, 50},
		{"negative score", `{"riskAssessment":{"overallRisk":"critical","riskScore":-3}}`, domain.RiskCritical, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := normalize.ParseAnalysis(tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, result.RiskAssessment.OverallRisk)
			assert.Equal(t, tt.wantScore, result.RiskAssessment.RiskScore)
		})
	}
}

func TestFallbackAnalysis_IsFreshCopy(t *testing.T) {
	a := domain.FallbackAnalysis()
	a.Parties[0].Name = "mutated"
	b := domain.FallbackAnalysis()
	assert.Equal(t, "Party identification required", b.Parties[0].Name)
}
