package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"docpilot/internal/domain"
	"docpilot/internal/metrics"
	"docpilot/internal/normalize"
	"docpilot/internal/port"
	"docpilot/pkg/logger"
)

// FallbackWarning is attached to an analysis that had to use the placeholder result.
const FallbackWarning = "The automated analysis could not be read; placeholder values are shown for manual review."

// AnalysisFailedError reports a failed submission together with the session it
// belongs to. The session is back at the upload stage.
type AnalysisFailedError struct {
	SessionID uuid.UUID
	Stage     domain.ProcessingStage
	Err       error
}

func (e *AnalysisFailedError) Error() string {
	return fmt.Sprintf("contract analysis failed while %s: %v", e.Stage, e.Err)
}

func (e *AnalysisFailedError) Unwrap() error {
	return e.Err
}

// AnalysisService runs the contract analysis pipeline
// upload -> parsing -> analyzing -> complete.
type AnalysisService interface {
	// Analyze submits a document. A nil session id starts a new session.
	Analyze(ctx context.Context, sessionID uuid.UUID, file *domain.UploadedFile) (*domain.AnalysisSnapshot, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.AnalysisSnapshot, error)
}

type analysisSession struct {
	tracker  *domain.StageTracker
	lastUsed time.Time
}

type analysisService struct {
	docs    DocumentService
	chat    ChatService
	metrics *metrics.Metrics
	ttl     time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*analysisSession
}

// NewAnalysisService creates an AnalysisService. Idle sessions older than ttl
// are dropped; a zero ttl keeps them for the life of the process.
func NewAnalysisService(docs DocumentService, chat ChatService, m *metrics.Metrics, ttl time.Duration) AnalysisService {
	return &analysisService{
		docs:     docs,
		chat:     chat,
		metrics:  m,
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*analysisSession),
	}
}

func (s *analysisService) Analyze(ctx context.Context, sessionID uuid.UUID, file *domain.UploadedFile) (*domain.AnalysisSnapshot, error) {
	if file == nil {
		return nil, domain.ErrMissingFile
	}
	tracker := s.session(sessionID)
	if err := tracker.Begin(); err != nil {
		return nil, err
	}
	ctx = logger.WithSession(ctx, tracker.ID().String())
	logger.Info(ctx, "contract analysis started", "file", file.Name)

	doc, err := s.docs.ParseText(ctx, file)
	if err != nil {
		return nil, s.fail(ctx, tracker, domain.StageParsing, err)
	}
	if err := tracker.Parsed(); err != nil {
		return nil, s.fail(ctx, tracker, domain.StageParsing, err)
	}

	body, err := s.chat.Complete(ctx, port.ChatInput{
		Messages: []domain.ChatMessage{
			{Role: domain.RoleSystem, Content: ContractAnalystPrompt},
			{Role: domain.RoleUser, Content: BuildContractAnalysisPrompt(doc.PlainText)},
		},
		ReasoningEffort: domain.ReasoningHigh,
	})
	if err != nil {
		return nil, s.fail(ctx, tracker, domain.StageAnalyzing, err)
	}
	answer, _, err := normalize.ChatContent(body)
	if err != nil {
		return nil, s.fail(ctx, tracker, domain.StageAnalyzing, err)
	}

	var warnings []string
	result, parseErr := normalize.ParseAnalysis(answer)
	if parseErr != nil {
		logger.Warn(ctx, "analysis answer unreadable, using fallback", "error", parseErr)
		s.metrics.IncAnalysisFallback()
		warnings = append(warnings, FallbackWarning)
	}
	result.DocumentText = doc.PlainText

	if err := tracker.Complete(result, warnings); err != nil {
		return nil, s.fail(ctx, tracker, domain.StageAnalyzing, err)
	}
	logger.Info(ctx, "contract analysis complete",
		"risk", result.RiskAssessment.OverallRisk,
		"risk_score", result.RiskAssessment.RiskScore,
		"fallback", parseErr != nil,
	)

	snap := tracker.Snapshot()
	return &snap, nil
}

func (s *analysisService) Get(_ context.Context, sessionID uuid.UUID) (*domain.AnalysisSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	snap := sess.tracker.Snapshot()
	return &snap, nil
}

func (s *analysisService) fail(ctx context.Context, tracker *domain.StageTracker, stage domain.ProcessingStage, err error) error {
	logger.Error(ctx, "contract analysis failed", "stage", stage, "error", err)
	tracker.Fail(err)
	return &AnalysisFailedError{SessionID: tracker.ID(), Stage: stage, Err: err}
}

// session returns the tracker for id, creating one when id is nil or unknown.
func (s *analysisService) session(id uuid.UUID) *domain.StageTracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.pruneLocked(now)
	if id == uuid.Nil {
		id = uuid.New()
	}
	sess, ok := s.sessions[id]
	if !ok {
		sess = &analysisSession{tracker: domain.NewStageTracker(id)}
		s.sessions[id] = sess
	}
	sess.lastUsed = now
	return sess.tracker
}

func (s *analysisService) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) <= s.ttl {
			continue
		}
		switch sess.tracker.Stage() {
		case domain.StageParsing, domain.StageAnalyzing:
			continue
		}
		delete(s.sessions, id)
	}
}
