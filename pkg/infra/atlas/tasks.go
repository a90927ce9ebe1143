package atlas

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
)

const defaultTaskListLimit = 25

func taskListQuery(opts model.TaskListOptions) url.Values {
	if opts.Limit <= 0 {
		opts.Limit = defaultTaskListLimit
	}
	query := url.Values{
		"limit":  {strconv.Itoa(opts.Limit)},
		"offset": {strconv.Itoa(opts.Offset)},
	}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}
	return query
}

// ListTasks lists tasks, optionally filtered by status
func (c *Client) ListTasks(ctx context.Context, opts model.TaskListOptions) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", taskListQuery(opts), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by ID
func (c *Client) GetTask(ctx context.Context, id types.TaskID) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id.String()), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task. An empty status defaults to pending.
func (c *Client) CreateTask(ctx context.Context, req *model.CreateTaskRequest) (*model.Task, error) {
	if req.Status == "" {
		req.Status = model.TaskStatusPending
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task
func (c *Client) UpdateTask(ctx context.Context, id types.TaskID, req *model.UpdateTaskRequest) (*model.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var task model.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id.String()), nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, id types.TaskID) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id.String()), nil, nil, nil)
}

// ListTasksByEntity lists tasks assigned to an entity
func (c *Client) ListTasksByEntity(ctx context.Context, entityID types.EntityID, opts model.TaskListOptions) ([]model.Task, error) {
	var tasks []model.Task
	path := "/entities/" + url.PathEscape(entityID.String()) + "/tasks"
	if err := c.do(ctx, http.MethodGet, path, taskListQuery(opts), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// AcknowledgeTask marks a task as acknowledged, i.e. the entity started it
func (c *Client) AcknowledgeTask(ctx context.Context, id types.TaskID) (*model.Task, error) {
	var task model.Task
	path := "/tasks/" + url.PathEscape(id.String()) + "/acknowledge"
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]any{}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// StartTask is an alias for AcknowledgeTask
func (c *Client) StartTask(ctx context.Context, id types.TaskID) (*model.Task, error) {
	return c.AcknowledgeTask(ctx, id)
}

// CompleteTask marks a task as completed with an optional result payload
func (c *Client) CompleteTask(ctx context.Context, id types.TaskID, result map[string]any) (*model.Task, error) {
	payload := map[string]any{}
	if result != nil {
		payload["result"] = result
	}

	var task model.Task
	path := "/tasks/" + url.PathEscape(id.String()) + "/complete"
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// FailTask marks a task as failed with error context
func (c *Client) FailTask(ctx context.Context, id types.TaskID, failure *model.TaskFailure) (*model.Task, error) {
	if failure == nil {
		failure = &model.TaskFailure{}
	}

	var task model.Task
	path := "/tasks/" + url.PathEscape(id.String()) + "/fail"
	if err := c.do(ctx, http.MethodPost, path, nil, failure, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// TransitionTaskStatus moves a task to an arbitrary status. The transition
// table is enforced server-side unless transition.Validate is false.
func (c *Client) TransitionTaskStatus(ctx context.Context, id types.TaskID, transition *model.TaskTransition) (*model.Task, error) {
	var task model.Task
	path := "/tasks/" + url.PathEscape(id.String()) + "/status"
	if err := c.do(ctx, http.MethodPost, path, nil, transition, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
