package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pantrify/internal/port"
)

// MockImageAnnotator is a mock implementation of port.ImageAnnotator.
type MockImageAnnotator struct {
	mock.Mock
}

func (m *MockImageAnnotator) Annotate(ctx context.Context, input port.AnnotateInput) (*port.Annotation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Annotation), args.Error(1)
}
