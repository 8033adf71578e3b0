package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"docpilot/internal/port"
)

// MockVendorGateway is a mock implementation of port.VendorGateway.
type MockVendorGateway struct {
	mock.Mock
}

func (m *MockVendorGateway) Call(ctx context.Context, req *port.VendorRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	switch body := args.Get(0).(type) {
	case string:
		return json.RawMessage(body), args.Error(1)
	default:
		return body.(json.RawMessage), args.Error(1)
	}
}

func (m *MockVendorGateway) Stream(ctx context.Context, req *port.VendorRequest) (<-chan port.StreamChunk, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan port.StreamChunk), args.Error(1)
}
