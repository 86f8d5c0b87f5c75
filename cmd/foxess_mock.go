package cmd

import (
	"context"
	"errors"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

// MockFoxessService is a mock implementation of the FoxessService interface.
type MockFoxessService struct {
	GetDataFunc     func(ctx context.Context) (*model.Snapshot, error)
	SetWorkModeFunc func(ctx context.Context, mode model.WorkMode) error
	SetMinSocFunc   func(ctx context.Context, field model.MinSocField, value int) error
}

func (m *MockFoxessService) GetData(ctx context.Context) (*model.Snapshot, error) {
	if m.GetDataFunc != nil {
		return m.GetDataFunc(ctx)
	}
	return nil, errors.New("mocked GetData not implemented")
}

func (m *MockFoxessService) SetWorkMode(ctx context.Context, mode model.WorkMode) error {
	if m.SetWorkModeFunc != nil {
		return m.SetWorkModeFunc(ctx, mode)
	}
	return errors.New("mocked SetWorkMode not implemented")
}

func (m *MockFoxessService) SetMinSoc(ctx context.Context, field model.MinSocField, value int) error {
	if m.SetMinSocFunc != nil {
		return m.SetMinSocFunc(ctx, field, value)
	}
	return errors.New("mocked SetMinSoc not implemented")
}
