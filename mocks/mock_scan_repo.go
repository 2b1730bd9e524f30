package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantrify/internal/domain"
)

// MockScanRepo is a mock implementation of port.ScanRepository.
type MockScanRepo struct {
	mock.Mock
}

func (m *MockScanRepo) Create(ctx context.Context, scan *domain.Scan) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Scan, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Scan), args.Int(1), args.Error(2)
}
