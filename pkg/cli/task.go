package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/cli/config"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdTask() *cli.Command {
	var clientCfg config.Client

	return &cli.Command{
		Name:  "task",
		Usage: "Manage tasks assigned to entities",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List tasks",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "status", Usage: "Filter by status"},
					&cli.StringFlag{Name: "entity", Usage: "List tasks of one entity"},
					&cli.IntFlag{Name: "limit", Value: 25},
					&cli.IntFlag{Name: "offset"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					opts := model.TaskListOptions{
						Status: model.TaskStatus(c.String("status")),
						Limit:  int(c.Int("limit")),
						Offset: int(c.Int("offset")),
					}

					var tasks []model.Task
					if entityID := c.String("entity"); entityID != "" {
						tasks, err = client.ListTasksByEntity(ctx, types.EntityID(entityID), opts)
					} else {
						tasks, err = client.ListTasks(ctx, opts)
					}
					if err != nil {
						return err
					}

					for _, task := range tasks {
						entity := "-"
						if task.EntityID != nil {
							entity = task.EntityID.String()
						}
						fmt.Printf("%-36s %-14s %s\n", task.TaskID, task.Status, entity)
					}
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show one task",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Task ID", Required: true},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}
					task, err := client.GetTask(ctx, types.TaskID(c.String("id")))
					if err != nil {
						return err
					}
					return printJSON(task)
				},
			},
			{
				Name:  "create",
				Usage: "Create a task",
				Flags: append(append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Task ID (generated when omitted)"},
					&cli.StringFlag{Name: "entity", Usage: "Entity to assign the task to"},
					&cli.StringFlag{Name: "command", Usage: "Command type", Required: true},
				), telemetryFlags()[:3]...),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					id := c.String("id")
					if id == "" {
						id = uuid.NewString()
					}

					req := &model.CreateTaskRequest{
						TaskID: types.TaskID(id),
						Components: &model.TaskComponents{
							Command: &model.CommandComponent{Type: c.String("command")},
						},
					}
					if entityID := c.String("entity"); entityID != "" {
						eid := types.EntityID(entityID)
						req.EntityID = &eid
					}
					params := model.TaskParametersComponent{
						Latitude:  floatFlagPtr(c, "lat"),
						Longitude: floatFlagPtr(c, "lon"),
						AltitudeM: floatFlagPtr(c, "alt"),
					}
					if params.Latitude != nil || params.Longitude != nil || params.AltitudeM != nil {
						req.Components.Parameters = &params
					}

					task, err := client.CreateTask(ctx, req)
					if err != nil {
						return err
					}
					return printJSON(task)
				},
			},
			{
				Name:  "ack",
				Usage: "Acknowledge (start) a task",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Task ID", Required: true},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}
					task, err := client.AcknowledgeTask(ctx, types.TaskID(c.String("id")))
					if err != nil {
						return err
					}
					return printJSON(task)
				},
			},
			{
				Name:  "complete",
				Usage: "Complete a task with an optional JSON result",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Task ID", Required: true},
					&cli.StringFlag{Name: "result", Usage: "Result payload as JSON"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					var result map[string]any
					if raw := c.String("result"); raw != "" {
						if err := json.Unmarshal([]byte(raw), &result); err != nil {
							return goerr.Wrap(err, "result must be a JSON object")
						}
					}

					task, err := client.CompleteTask(ctx, types.TaskID(c.String("id")), result)
					if err != nil {
						return err
					}
					return printJSON(task)
				},
			},
			{
				Name:  "fail",
				Usage: "Mark a task as failed",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Task ID", Required: true},
					&cli.StringFlag{Name: "message", Usage: "Error message"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					failure := &model.TaskFailure{}
					if msg := c.String("message"); msg != "" {
						failure.ErrorMessage = &msg
					}

					task, err := client.FailTask(ctx, types.TaskID(c.String("id")), failure)
					if err != nil {
						return err
					}
					return printJSON(task)
				},
			},
		},
	}
}
