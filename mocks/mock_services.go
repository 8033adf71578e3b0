package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docpilot/internal/domain"
	"docpilot/internal/port"
	"docpilot/internal/service"
)

// MockFileIntake is a mock implementation of service.FileIntake.
type MockFileIntake struct {
	mock.Mock
}

func (m *MockFileIntake) Accept(ctx context.Context, input service.FileInput) (*domain.UploadedFile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadedFile), args.Error(1)
}

func (m *MockFileIntake) MaxBytes() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Parse(ctx context.Context, file *domain.UploadedFile) (json.RawMessage, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockDocumentService) ParseText(ctx context.Context, file *domain.UploadedFile) (*domain.NormalizedDocument, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NormalizedDocument), args.Error(1)
}

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, file *domain.UploadedFile, schema *domain.ExtractionSchema) (json.RawMessage, error) {
	args := m.Called(ctx, file, schema)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockExtractionService) ExtractFields(ctx context.Context, file *domain.UploadedFile, schema *domain.ExtractionSchema) (map[string]any, error) {
	args := m.Called(ctx, file, schema)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// MockChatService is a mock implementation of service.ChatService.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Complete(ctx context.Context, input port.ChatInput) (json.RawMessage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockChatService) Stream(ctx context.Context, input port.ChatInput) (<-chan port.StreamChunk, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan port.StreamChunk), args.Error(1)
}

func (m *MockChatService) StartConversation(ctx context.Context, documentContext string) (*domain.Conversation, error) {
	args := m.Called(ctx, documentContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatService) GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatService) SendTurn(ctx context.Context, input *service.SendTurnInput) (*domain.Conversation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, sessionID uuid.UUID, file *domain.UploadedFile) (*domain.AnalysisSnapshot, error) {
	args := m.Called(ctx, sessionID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisSnapshot), args.Error(1)
}

func (m *MockAnalysisService) Get(ctx context.Context, sessionID uuid.UUID) (*domain.AnalysisSnapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisSnapshot), args.Error(1)
}
