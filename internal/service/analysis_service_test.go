package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docpilot/internal/domain"
	"docpilot/internal/metrics"
	"docpilot/internal/port"
	"docpilot/internal/service"
	"docpilot/internal/upstage"
	"docpilot/mocks"
)

const leaseText = "RESIDENTIAL LEASE between Alice (Landlord) and Bob (Tenant). Rent $1,000 per month."

const leaseAnalysis = `Here is the analysis:
{"contractType":{"category":"Lease","subcategory":"Residential Lease","description":"Apartment lease"},
 "parties":[{"name":"Alice","role":"Landlord"},{"name":"Bob","role":"Tenant"}],
 "riskAssessment":{"overallRisk":"low","riskScore":20,"riskFactors":[],"recommendations":[],"redFlags":[]},
 "summary":"Standard lease."}`

func setupAnalysis(ttl time.Duration) (service.AnalysisService, *mocks.MockDocumentService, *mocks.MockChatService, *metrics.Metrics) {
	docs := new(mocks.MockDocumentService)
	chat := new(mocks.MockChatService)
	m := metrics.New()
	return service.NewAnalysisService(docs, chat, m, ttl), docs, chat, m
}

func TestAnalysisService_Analyze_Complete(t *testing.T) {
	svc, docs, chat, _ := setupAnalysis(time.Hour)
	file := testFile()

	docs.On("ParseText", mock.Anything, file).
		Return(&domain.NormalizedDocument{PlainText: leaseText, Strategy: domain.StrategyElements}, nil)
	chat.On("Complete", mock.Anything, mock.MatchedBy(func(in port.ChatInput) bool {
		return in.ReasoningEffort == domain.ReasoningHigh &&
			len(in.Messages) == 2 &&
			in.Messages[0].Content == service.ContractAnalystPrompt &&
			in.Messages[1].Role == domain.RoleUser
	})).Return(json.RawMessage(completion(leaseAnalysis)), nil)

	snap, err := svc.Analyze(context.Background(), uuid.Nil, file)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, snap.SessionID)
	assert.Equal(t, domain.StageComplete, snap.Stage)
	require.NotNil(t, snap.Analysis)
	assert.Equal(t, "Lease", snap.Analysis.ContractType.Category)
	assert.Equal(t, domain.RiskLow, snap.Analysis.RiskAssessment.OverallRisk)
	assert.Equal(t, 20, snap.Analysis.RiskAssessment.RiskScore)
	assert.Equal(t, leaseText, snap.Analysis.DocumentText)
	assert.Empty(t, snap.Warnings)

	got, err := svc.Get(context.Background(), snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageComplete, got.Stage)
}

func TestAnalysisService_Analyze_PromptEmbedsDocument(t *testing.T) {
	svc, docs, chat, _ := setupAnalysis(0)
	docs.On("ParseText", mock.Anything, mock.Anything).Return(&domain.NormalizedDocument{PlainText: leaseText}, nil)

	var prompt string
	chat.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { prompt = args.Get(1).(port.ChatInput).Messages[1].Content.(string) }).
		Return(json.RawMessage(completion(leaseAnalysis)), nil)

	_, err := svc.Analyze(context.Background(), uuid.Nil, testFile())

	require.NoError(t, err)
	assert.Contains(t, prompt, "COMPLETE CONTRACT DOCUMENT:\n"+leaseText)
	assert.Contains(t, prompt, "ANALYSIS REQUIREMENTS:")
}

func TestAnalysisService_Analyze_UnparseableAnswerUsesFallback(t *testing.T) {
	svc, docs, chat, m := setupAnalysis(time.Hour)
	docs.On("ParseText", mock.Anything, mock.Anything).Return(&domain.NormalizedDocument{PlainText: leaseText}, nil)
	chat.On("Complete", mock.Anything, mock.Anything).
		Return(json.RawMessage(completion("I could not analyze this contract.")), nil)

	snap, err := svc.Analyze(context.Background(), uuid.Nil, testFile())

	require.NoError(t, err)
	assert.Equal(t, domain.StageComplete, snap.Stage)
	require.NotNil(t, snap.Analysis)
	assert.Equal(t, "Other", snap.Analysis.ContractType.Category)
	assert.Equal(t, domain.RiskMedium, snap.Analysis.RiskAssessment.OverallRisk)
	assert.Equal(t, 50, snap.Analysis.RiskAssessment.RiskScore)
	assert.Equal(t, []string{service.FallbackWarning}, snap.Warnings)

	expected := `
# HELP docpilot_analysis_fallbacks_total Contract analyses that fell back to the manual-review record.
# TYPE docpilot_analysis_fallbacks_total counter
docpilot_analysis_fallbacks_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "docpilot_analysis_fallbacks_total"))
}

func TestAnalysisService_Analyze_RateLimitedResetsToUpload(t *testing.T) {
	svc, docs, chat, _ := setupAnalysis(time.Hour)
	rateLimited := &upstage.TransportError{
		Capability: domain.CapabilityDocumentParse,
		StatusCode: 429,
		Body:       `{"error":"rate limit"}`,
		RetryAfter: 30 * time.Second,
	}
	docs.On("ParseText", mock.Anything, mock.Anything).Return(nil, rateLimited)

	snap, err := svc.Analyze(context.Background(), uuid.Nil, testFile())

	assert.Nil(t, snap)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	var failed *service.AnalysisFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, domain.StageParsing, failed.Stage)

	got, err := svc.Get(context.Background(), failed.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageUpload, got.Stage)
	assert.Nil(t, got.Analysis)
	assert.Contains(t, got.LastError, "429")
	chat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnalysisService_Analyze_ChatFailureResetsToUpload(t *testing.T) {
	svc, docs, chat, _ := setupAnalysis(time.Hour)
	docs.On("ParseText", mock.Anything, mock.Anything).Return(&domain.NormalizedDocument{PlainText: leaseText}, nil)
	chat.On("Complete", mock.Anything, mock.Anything).
		Return(nil, &upstage.TransportError{Capability: domain.CapabilityReasoningChat, StatusCode: 500, Body: "down"})

	_, err := svc.Analyze(context.Background(), uuid.Nil, testFile())

	var failed *service.AnalysisFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, domain.StageAnalyzing, failed.Stage)
	got, _ := svc.Get(context.Background(), failed.SessionID)
	assert.Equal(t, domain.StageUpload, got.Stage)
}

func TestAnalysisService_Analyze_NewUploadClearsPreviousResult(t *testing.T) {
	svc, docs, chat, _ := setupAnalysis(time.Hour)
	docs.On("ParseText", mock.Anything, mock.Anything).
		Return(&domain.NormalizedDocument{PlainText: leaseText}, nil).Once()
	chat.On("Complete", mock.Anything, mock.Anything).Return(json.RawMessage(completion(leaseAnalysis)), nil)

	first, err := svc.Analyze(context.Background(), uuid.Nil, testFile())
	require.NoError(t, err)

	docs.On("ParseText", mock.Anything, mock.Anything).Return(nil, domain.ErrNoTextExtracted)
	_, err = svc.Analyze(context.Background(), first.SessionID, testFile())
	assert.ErrorIs(t, err, domain.ErrNoTextExtracted)

	got, err := svc.Get(context.Background(), first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageUpload, got.Stage)
	assert.Nil(t, got.Analysis)
}

func TestAnalysisService_Analyze_BusySession(t *testing.T) {
	svc, docs, chat, _ := setupAnalysis(time.Hour)
	release := make(chan struct{})
	started := make(chan struct{})
	docs.On("ParseText", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.NormalizedDocument{PlainText: leaseText}, nil)
	chat.On("Complete", mock.Anything, mock.Anything).Return(json.RawMessage(completion(leaseAnalysis)), nil)

	id := uuid.New()
	done := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(context.Background(), id, testFile())
		done <- err
	}()
	<-started

	_, err := svc.Analyze(context.Background(), id, testFile())
	assert.ErrorIs(t, err, domain.ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestAnalysisService_Get_UnknownSession(t *testing.T) {
	svc, _, _, _ := setupAnalysis(time.Hour)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
