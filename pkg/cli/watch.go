package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/cli/config"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/interfaces"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/notify"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/usecase"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdWatch() *cli.Command {
	var (
		clientCfg       config.Client
		interval        time.Duration
		limitPerType    int64
		fill            bool
		slackWebhookURL string
	)

	flags := append(clientCfg.Flags(),
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Poll interval",
			Value:       10 * time.Second,
			Destination: &interval,
			Sources:     cli.EnvVars("ATLAS_WATCH_INTERVAL"),
		},
		&cli.Int64Flag{
			Name:        "limit-per-type",
			Usage:       "Cap of records per type per poll (0 = server default)",
			Destination: &limitPerType,
			Sources:     cli.EnvVars("ATLAS_WATCH_LIMIT_PER_TYPE"),
		},
		&cli.BoolFlag{
			Name:        "fill",
			Usage:       "Load a full dataset snapshot before polling",
			Destination: &fill,
		},
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook for change notifications",
			Destination: &slackWebhookURL,
			Sources:     cli.EnvVars("ATLAS_SLACK_WEBHOOK_URL"),
		},
	)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Continuously replicate the server dataset and report changes",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if interval <= 0 {
				return goerr.New("poll interval must be positive",
					goerr.V("interval", interval))
			}

			client, err := clientCfg.Configure(ctx)
			if err != nil {
				return err
			}

			snapshot := usecase.NewSnapshot()
			syncUC := usecase.NewSync(client, snapshot,
				usecase.WithSyncLimitPerType(int(limitPerType)),
			)

			var notifier interfaces.Notifier
			if slackWebhookURL != "" {
				notifier = notify.NewSlack(slackWebhookURL)
			}

			logger.Info("Starting watch loop",
				slog.Duration("interval", interval),
				slog.Bool("fill", fill),
				slog.Bool("slack", notifier != nil),
			)

			if fill {
				if _, err := syncUC.Fill(ctx); err != nil {
					return goerr.Wrap(err, "initial dataset fill failed")
				}
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					logger.Info("Context cancelled, stopping watch loop")
					return nil
				case sig := <-sigChan:
					logger.Info("Signal received, stopping watch loop", slog.Any("signal", sig))
					return nil
				case <-ticker.C:
					summary, err := syncUC.Poll(ctx)
					if err != nil {
						logger.Error("Poll failed", slog.Any("error", err))
						continue
					}
					if notifier != nil && summary.Total() > 0 {
						dispatchNotify(ctx, notifier, summary)
					}
				}
			}
		},
	}
}

// dispatchNotify delivers a summary without blocking the poll loop
func dispatchNotify(ctx context.Context, notifier interfaces.Notifier, summary *model.ChangeSummary) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		return notifier.NotifyChanges(ctx, summary)
	})
}
