package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StageTracker drives a contract analysis session through
// upload -> parsing -> analyzing -> complete. Any failure resets it to upload.
type StageTracker struct {
	mu        sync.Mutex
	id        uuid.UUID
	stage     ProcessingStage
	analysis  *AnalysisResult
	warnings  []string
	lastError string
	updatedAt time.Time
}

// NewStageTracker creates a tracker at the upload stage.
func NewStageTracker(id uuid.UUID) *StageTracker {
	return &StageTracker{id: id, stage: StageUpload, updatedAt: time.Now()}
}

// ID returns the session id the tracker belongs to.
func (t *StageTracker) ID() uuid.UUID {
	return t.id
}

// Begin starts a new submission. Any previous result is cleared before the
// tracker leaves upload. Returns ErrBusy while a submission is in flight.
func (t *StageTracker) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.stage {
	case StageParsing, StageAnalyzing:
		return ErrBusy
	}
	t.analysis = nil
	t.warnings = nil
	t.lastError = ""
	t.stage = StageParsing
	t.updatedAt = time.Now()
	return nil
}

// Parsed records that document text normalization succeeded.
func (t *StageTracker) Parsed() error {
	return t.advance(StageParsing, StageAnalyzing)
}

// Complete stores the analysis (parsed or fallback) and finishes the session.
func (t *StageTracker) Complete(result *AnalysisResult, warnings []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stage != StageAnalyzing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.stage, StageComplete)
	}
	t.analysis = result
	t.warnings = append([]string(nil), warnings...)
	t.stage = StageComplete
	t.updatedAt = time.Now()
	return nil
}

// Fail aborts the current submission and returns to upload with a user-visible message.
func (t *StageTracker) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.analysis = nil
	t.warnings = nil
	if err != nil {
		t.lastError = err.Error()
	}
	t.stage = StageUpload
	t.updatedAt = time.Now()
}

// Stage returns the current stage.
func (t *StageTracker) Stage() ProcessingStage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stage
}

// Snapshot returns a copy of the tracker state.
func (t *StageTracker) Snapshot() AnalysisSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return AnalysisSnapshot{
		SessionID: t.id,
		Stage:     t.stage,
		Analysis:  t.analysis,
		Warnings:  append([]string(nil), t.warnings...),
		LastError: t.lastError,
		UpdatedAt: t.updatedAt,
	}
}

func (t *StageTracker) advance(from, to ProcessingStage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stage != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.stage, to)
	}
	t.stage = to
	t.updatedAt = time.Now()
	return nil
}
