package cmd

import (
	"context"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

// FoxessService defines the interface that cmd.runServices expects from the
// cloud client.
type FoxessService interface {
	GetData(ctx context.Context) (*model.Snapshot, error)
	SetWorkMode(ctx context.Context, mode model.WorkMode) error
	SetMinSoc(ctx context.Context, field model.MinSocField, value int) error
}
