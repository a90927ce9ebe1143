package atlas_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas/atlastest"
)

func TestListTasks_StatusFilter(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/tasks", http.StatusOK, []model.Task{
		{TaskID: "task-1", Status: model.TaskStatusPending},
	})

	client := atlas.New(srv.URL())

	tasks := gt.R1(client.ListTasks(context.Background(), model.TaskListOptions{
		Status: model.TaskStatusPending,
	})).NoError(t)
	gt.Value(t, len(tasks)).Equal(1)

	query := srv.LastRequest().Query
	gt.Value(t, query.Get("status")).Equal("pending")
	gt.Value(t, query.Get("limit")).Equal("25")
}

func TestCreateTask_DefaultsToPending(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodPost, "/tasks", http.StatusOK, model.Task{
		TaskID: "task-1", Status: model.TaskStatusPending,
	})

	client := atlas.New(srv.URL())

	gt.R1(client.CreateTask(context.Background(), &model.CreateTaskRequest{
		TaskID: "task-1",
		Components: &model.TaskComponents{
			Command: &model.CommandComponent{Type: "goto_location"},
		},
	})).NoError(t)

	var payload map[string]any
	gt.NoError(t, srv.LastRequest().JSON(&payload))
	gt.Value(t, payload["status"]).Equal("pending")

	components := payload["components"].(map[string]any)
	command := components["command"].(map[string]any)
	gt.Value(t, command["type"]).Equal("goto_location")
}

func TestCreateTask_RejectsEmptyCommandType(t *testing.T) {
	client := atlas.New("http://atlas.local")

	_, err := client.CreateTask(context.Background(), &model.CreateTaskRequest{
		TaskID:     "task-1",
		Components: &model.TaskComponents{Command: &model.CommandComponent{}},
	})
	gt.Error(t, err)
}

func TestTaskLifecycleEndpoints(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodPost, "/tasks/{id}/acknowledge", http.StatusOK, model.Task{
		TaskID: "task-1", Status: model.TaskStatusAcknowledged,
	})
	srv.Handle(http.MethodPost, "/tasks/{id}/complete", http.StatusOK, model.Task{
		TaskID: "task-1", Status: model.TaskStatusCompleted,
	})
	srv.Handle(http.MethodPost, "/tasks/{id}/fail", http.StatusOK, model.Task{
		TaskID: "task-1", Status: model.TaskStatusFailed,
	})

	client := atlas.New(srv.URL())
	ctx := context.Background()

	task := gt.R1(client.AcknowledgeTask(ctx, "task-1")).NoError(t)
	gt.Value(t, task.Status).Equal(model.TaskStatusAcknowledged)

	// StartTask is an alias of acknowledge
	gt.R1(client.StartTask(ctx, "task-1")).NoError(t)
	gt.Value(t, len(srv.RequestsTo(http.MethodPost, "/tasks/task-1/acknowledge"))).Equal(2)

	task = gt.R1(client.CompleteTask(ctx, "task-1", map[string]any{"frames": 42})).NoError(t)
	gt.Value(t, task.Status).Equal(model.TaskStatusCompleted)

	var payload map[string]any
	gt.NoError(t, srv.LastRequest().JSON(&payload))
	result := payload["result"].(map[string]any)
	gt.Value(t, result["frames"]).Equal(42.0)

	message := "sensor offline"
	task = gt.R1(client.FailTask(ctx, "task-1", &model.TaskFailure{ErrorMessage: &message})).NoError(t)
	gt.Value(t, task.Status).Equal(model.TaskStatusFailed)

	gt.NoError(t, srv.LastRequest().JSON(&payload))
	gt.Value(t, payload["error_message"]).Equal("sensor offline")
}

func TestTransitionTaskStatus_ValidateFlag(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodPost, "/tasks/{id}/status", http.StatusOK, model.Task{
		TaskID: "task-1", Status: model.TaskStatusCompleted,
	})

	client := atlas.New(srv.URL())

	transition := model.NewTaskTransition(model.TaskStatusCompleted)
	gt.R1(client.TransitionTaskStatus(context.Background(), "task-1", transition)).NoError(t)

	var payload map[string]any
	gt.NoError(t, srv.LastRequest().JSON(&payload))
	gt.Value(t, payload["status"]).Equal("completed")
	gt.Value(t, payload["validate"]).Equal(true)
}

func TestListTasksByEntity(t *testing.T) {
	srv := atlastest.New()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/entities/{id}/tasks", http.StatusOK, []model.Task{
		{TaskID: "task-1"}, {TaskID: "task-2"},
	})

	client := atlas.New(srv.URL())

	tasks := gt.R1(client.ListTasksByEntity(context.Background(), "asset-1", model.TaskListOptions{})).NoError(t)
	gt.Value(t, len(tasks)).Equal(2)
	gt.Value(t, srv.LastRequest().Path).Equal("/entities/asset-1/tasks")
}
