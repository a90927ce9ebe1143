package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/cli/config"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// floatFlagPtr returns a pointer to the flag value only when the flag was set
func floatFlagPtr(c *cli.Command, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Float(name)
	return &v
}

func telemetryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{Name: "lat", Usage: "Latitude in degrees"},
		&cli.FloatFlag{Name: "lon", Usage: "Longitude in degrees"},
		&cli.FloatFlag{Name: "alt", Usage: "Altitude in meters"},
		&cli.FloatFlag{Name: "speed", Usage: "Speed in m/s"},
		&cli.FloatFlag{Name: "heading", Usage: "Heading in degrees"},
	}
}

func telemetryFromFlags(c *cli.Command) model.TelemetryComponent {
	return model.TelemetryComponent{
		Latitude:   floatFlagPtr(c, "lat"),
		Longitude:  floatFlagPtr(c, "lon"),
		AltitudeM:  floatFlagPtr(c, "alt"),
		SpeedMS:    floatFlagPtr(c, "speed"),
		HeadingDeg: floatFlagPtr(c, "heading"),
	}
}

func cmdEntity() *cli.Command {
	var clientCfg config.Client

	return &cli.Command{
		Name:  "entity",
		Usage: "Manage entities tracked by Atlas Command",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List registered entities",
				Flags: append(clientCfg.Flags(),
					&cli.IntFlag{Name: "limit", Value: 100},
					&cli.IntFlag{Name: "offset"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}
					entities, err := client.ListEntities(ctx, model.ListOptions{
						Limit:  int(c.Int("limit")),
						Offset: int(c.Int("offset")),
					})
					if err != nil {
						return err
					}
					for _, entity := range entities {
						fmt.Printf("%-24s %-12s %-16s %s\n",
							entity.EntityID, entity.EntityType, entity.Subtype, entity.Alias)
					}
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show one entity by ID or alias",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Entity ID"},
					&cli.StringFlag{Name: "alias", Usage: "Entity alias"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					var entity *model.Entity
					switch {
					case c.String("id") != "":
						entity, err = client.GetEntity(ctx, types.EntityID(c.String("id")))
					case c.String("alias") != "":
						entity, err = client.GetEntityByAlias(ctx, c.String("alias"))
					default:
						return cli.Exit("either --id or --alias is required", 2)
					}
					if err != nil {
						return err
					}
					return printJSON(entity)
				},
			},
			{
				Name:  "create",
				Usage: "Register a new entity",
				Flags: append(append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Entity ID (generated when omitted)"},
					&cli.StringFlag{Name: "type", Usage: "Entity type", Required: true},
					&cli.StringFlag{Name: "alias", Usage: "Human-readable alias", Required: true},
					&cli.StringFlag{Name: "subtype", Usage: "Entity subtype", Required: true},
				), telemetryFlags()...),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					id := c.String("id")
					if id == "" {
						id = uuid.NewString()
					}

					req := &model.CreateEntityRequest{
						EntityID:   types.EntityID(id),
						EntityType: c.String("type"),
						Alias:      c.String("alias"),
						Subtype:    c.String("subtype"),
					}
					telemetry := telemetryFromFlags(c)
					if telemetry != (model.TelemetryComponent{}) {
						req.Components = &model.EntityComponents{Telemetry: &telemetry}
					}

					entity, err := client.CreateEntity(ctx, req)
					if err != nil {
						return err
					}
					return printJSON(entity)
				},
			},
			{
				Name:  "checkin",
				Usage: "Report telemetry and fetch waiting tasks",
				Flags: append(append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Entity ID", Required: true},
					&cli.StringFlag{Name: "status", Usage: "Operational status to report"},
					&cli.BoolFlag{Name: "ack", Usage: "Acknowledge pending tasks automatically"},
				), telemetryFlags()...),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					var opts []usecase.CheckinOption
					if c.Bool("ack") {
						opts = append(opts, usecase.WithAutoAcknowledge())
					}
					uc := usecase.NewCheckin(client, client, opts...)

					req := &model.CheckinRequest{
						TelemetryComponent: telemetryFromFlags(c),
					}
					if c.String("status") != "" {
						status := c.String("status")
						req.Status = &status
					}

					tasks, err := uc.Checkin(ctx, types.EntityID(c.String("id")), req)
					if err != nil {
						return err
					}
					return printJSON(tasks)
				},
			},
			{
				Name:  "delete",
				Usage: "Remove an entity",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Entity ID", Required: true},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}
					return client.DeleteEntity(ctx, types.EntityID(c.String("id")))
				},
			},
		},
	}
}
