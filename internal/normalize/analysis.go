package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"docpilot/internal/domain"
)

// AnalysisParseError is the non-fatal warning returned alongside the fallback
// analysis when the model's answer cannot be decoded.
type AnalysisParseError struct {
	Reason  string
	Snippet string
	Err     error
}

func (e *AnalysisParseError) Error() string {
	return fmt.Sprintf("analysis answer could not be parsed: %s", e.Reason)
}

func (e *AnalysisParseError) Unwrap() error {
	return e.Err
}

func (e *AnalysisParseError) Is(target error) bool {
	return target == domain.ErrAnalysisParse
}

// flexScore accepts a risk score as a JSON number or a numeric string.
type flexScore int

func (f *flexScore) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexScore(math.Round(v))
	return nil
}

type rawRiskAssessment struct {
	OverallRisk     string              `json:"overallRisk"`
	RiskScore       flexScore           `json:"riskScore"`
	RiskFactors     []domain.RiskFactor `json:"riskFactors"`
	Recommendations []string            `json:"recommendations"`
	RedFlags        []string            `json:"redFlags"`
}

type rawAnalysis struct {
	domain.AnalysisResult
	RiskAssessment rawRiskAssessment `json:"riskAssessment"`
	RiskScore      flexScore         `json:"riskScore"`
}

// ParseAnalysis decodes a contract analysis from the model's free-form answer.
// It never returns a nil result: when decoding fails it returns
// domain.FallbackAnalysis() together with an *AnalysisParseError.
func ParseAnalysis(answer string) (*domain.AnalysisResult, error) {
	obj, err := LocateJSONObject(answer)
	if err != nil {
		return domain.FallbackAnalysis(), &AnalysisParseError{
			Reason:  "no JSON object in answer",
			Snippet: truncate(answer, 200),
			Err:     err,
		}
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return domain.FallbackAnalysis(), &AnalysisParseError{
			Reason:  err.Error(),
			Snippet: truncate(obj, 200),
			Err:     err,
		}
	}

	result := raw.AnalysisResult
	score := int(raw.RiskAssessment.RiskScore)
	if score == 0 {
		score = int(raw.RiskScore)
	}
	level, score := normalizeRisk(raw.RiskAssessment.OverallRisk, score)
	result.RiskAssessment = domain.RiskAssessment{
		OverallRisk:     level,
		RiskScore:       score,
		RiskFactors:     raw.RiskAssessment.RiskFactors,
		Recommendations: raw.RiskAssessment.Recommendations,
		RedFlags:        raw.RiskAssessment.RedFlags,
	}
	return &result, nil
}

var bandScores = map[domain.RiskLevel]int{
	domain.RiskLow:      25,
	domain.RiskMedium:   50,
	domain.RiskHigh:     75,
	domain.RiskCritical: 90,
}

// normalizeRisk clamps the score to 1..100 and makes the band one of
// low|medium|high|critical. A missing band is derived from the score; a
// missing score is taken from the band.
func normalizeRisk(band string, score int) (domain.RiskLevel, int) {
	level := domain.RiskLevel(strings.ToLower(strings.TrimSpace(band)))
	validBand := domain.ValidRiskLevels[level]

	if score <= 0 {
		if !validBand {
			return domain.RiskMedium, 50
		}
		return level, bandScores[level]
	}
	if score > 100 {
		score = 100
	}
	if !validBand {
		level = domain.RiskLevelForScore(score)
	}
	return level, score
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
