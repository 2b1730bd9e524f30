package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantrify/internal/service"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) Analyze(ctx context.Context, input service.AnalyzeInput) (*service.AnalyzeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeOutput), args.Error(1)
}

func (m *MockScanService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]service.ScanWithURL, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]service.ScanWithURL), args.Int(1), args.Error(2)
}
