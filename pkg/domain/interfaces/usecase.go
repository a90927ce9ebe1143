package interfaces

import (
	"context"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

// CheckinUseCase performs checkin rounds for an entity
type CheckinUseCase interface {
	// Checkin reports telemetry/status and returns the tasks the server
	// handed back for this entity
	Checkin(ctx context.Context, id types.EntityID, req *model.CheckinRequest) ([]model.Task, error)
}

// SyncUseCase replicates the server dataset into a local snapshot
type SyncUseCase interface {
	// Fill loads a full dataset snapshot and resets the cursor
	Fill(ctx context.Context) (*model.ChangeSummary, error)

	// Poll applies one changed-since round on top of the snapshot
	Poll(ctx context.Context) (*model.ChangeSummary, error)
}

// Notifier delivers sync change summaries to an external channel
type Notifier interface {
	NotifyChanges(ctx context.Context, summary *model.ChangeSummary) error
}
