package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/interfaces"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

type checkinUseCase struct {
	entities interfaces.EntityAPI
	tasks    interfaces.TaskAPI
	opts     model.CheckinOptions
	autoAck  bool
}

// CheckinOption is a functional option for the checkin use case
type CheckinOption func(*checkinUseCase)

// WithAutoAcknowledge acknowledges pending tasks handed back by a checkin
func WithAutoAcknowledge() CheckinOption {
	return func(uc *checkinUseCase) {
		uc.autoAck = true
	}
}

// WithCheckinOptions overrides the task filter applied to checkin responses
func WithCheckinOptions(opts model.CheckinOptions) CheckinOption {
	return func(uc *checkinUseCase) {
		uc.opts = opts
	}
}

// NewCheckin creates a CheckinUseCase
func NewCheckin(entities interfaces.EntityAPI, tasks interfaces.TaskAPI, opts ...CheckinOption) interfaces.CheckinUseCase {
	uc := &checkinUseCase{
		entities: entities,
		tasks:    tasks,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Checkin reports telemetry/status for an entity and returns the tasks the
// server handed back. With auto-acknowledge, pending tasks are acknowledged
// before being returned.
func (uc *checkinUseCase) Checkin(ctx context.Context, id types.EntityID, req *model.CheckinRequest) ([]model.Task, error) {
	logger := ctxlog.From(ctx)

	result, err := uc.entities.CheckinEntity(ctx, id, req, uc.opts)
	if err != nil {
		return nil, goerr.Wrap(err, "checkin failed", goerr.V("entity_id", id))
	}

	tasks := result.Tasks
	logger.Info("Checked in entity",
		"entity_id", id,
		"pending_tasks", len(tasks),
	)

	if !uc.autoAck {
		return tasks, nil
	}

	for i, task := range tasks {
		if task.Status != model.TaskStatusPending {
			continue
		}
		acked, err := uc.tasks.AcknowledgeTask(ctx, task.TaskID)
		if err != nil {
			return tasks, goerr.Wrap(err, "failed to acknowledge task",
				goerr.V("entity_id", id), goerr.V("task_id", task.TaskID))
		}
		if acked != nil {
			tasks[i] = *acked
		}
		logger.Debug("Acknowledged task", "task_id", task.TaskID)
	}

	return tasks, nil
}
