package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending      TaskStatus = "pending"
	TaskStatusAcknowledged TaskStatus = "acknowledged"
	TaskStatusCompleted    TaskStatus = "completed"
	TaskStatusFailed       TaskStatus = "failed"
)

// Task is a unit of work assigned to an entity
type Task struct {
	TaskID       types.TaskID    `json:"task_id"`
	Status       TaskStatus      `json:"status"`
	EntityID     *types.EntityID `json:"entity_id,omitempty"`
	Components   map[string]any  `json:"components,omitempty"`
	Extra        map[string]any  `json:"extra,omitempty"`
	Result       map[string]any  `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    *string         `json:"created_at,omitempty"`
	UpdatedAt    *string         `json:"updated_at,omitempty"`
}

// CreateTaskRequest is the payload for creating a task. An empty Status
// defaults to pending on the client side.
type CreateTaskRequest struct {
	TaskID     types.TaskID    `json:"task_id"`
	Status     TaskStatus      `json:"status"`
	EntityID   *types.EntityID `json:"entity_id,omitempty"`
	Components *TaskComponents `json:"components,omitempty"`
	Extra      map[string]any  `json:"extra,omitempty"`
}

func (x *CreateTaskRequest) Validate() error {
	if x.TaskID == "" {
		return goerr.New("task_id must not be empty")
	}
	if x.Components != nil {
		return x.Components.Validate()
	}
	return nil
}

// UpdateTaskRequest is a partial task update
type UpdateTaskRequest struct {
	Status     *TaskStatus     `json:"status,omitempty"`
	EntityID   *types.EntityID `json:"entity_id,omitempty"`
	Components *TaskComponents `json:"components,omitempty"`
	Extra      map[string]any  `json:"extra,omitempty"`
}

func (x *UpdateTaskRequest) Validate() error {
	if x.Components != nil {
		return x.Components.Validate()
	}
	return nil
}

// TaskListOptions filter task listings
type TaskListOptions struct {
	Status TaskStatus
	Limit  int
	Offset int
}

// TaskFailure describes why a task failed
type TaskFailure struct {
	ErrorMessage *string        `json:"error_message"`
	ErrorDetails map[string]any `json:"error_details"`
}

// TaskTransition moves a task to an arbitrary status. Validate controls
// whether the server enforces its transition table.
type TaskTransition struct {
	Status   TaskStatus     `json:"status"`
	Validate bool           `json:"validate"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// NewTaskTransition builds a transition with server-side validation enabled
func NewTaskTransition(status TaskStatus) *TaskTransition {
	return &TaskTransition{Status: status, Validate: true}
}
