package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdStatus() *cli.Command {
	var clientCfg config.Client

	return &cli.Command{
		Name:  "status",
		Usage: "Show service, health and readiness state of Atlas Command",
		Flags: clientCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := clientCfg.Configure(ctx)
			if err != nil {
				return err
			}

			info, err := client.Root(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("service:   %s (version %s)\n", info.Name, info.Version)

			health, err := client.Health(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("health:    %s\n", colorizeStatus(health.Status))

			readiness, err := client.Readiness(ctx)
			if err != nil {
				return err
			}
			if readiness.Ready {
				fmt.Printf("readiness: %s\n", color.GreenString("ready"))
			} else {
				fmt.Printf("readiness: %s\n", color.RedString("not ready"))
			}
			for name, state := range readiness.Checks {
				fmt.Printf("  %-16s %s\n", name, state)
			}

			return nil
		},
	}
}

func colorizeStatus(status string) string {
	switch status {
	case "healthy", "ok":
		return color.GreenString(status)
	case "degraded":
		return color.YellowString(status)
	default:
		return color.RedString(status)
	}
}
