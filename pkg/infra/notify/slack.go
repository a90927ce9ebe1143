package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/interfaces"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
)

type slackNotifier struct {
	webhookURL string
}

// NewSlack creates a Notifier posting change summaries to a Slack incoming
// webhook
func NewSlack(webhookURL string) interfaces.Notifier {
	return &slackNotifier{webhookURL: webhookURL}
}

// NotifyChanges posts a one-line summary of a sync round
func (x *slackNotifier) NotifyChanges(ctx context.Context, summary *model.ChangeSummary) error {
	msg := &slack.WebhookMessage{
		Text: formatSummary(summary),
	}

	if err := slack.PostWebhookContext(ctx, x.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack webhook")
	}
	return nil
}

func formatSummary(summary *model.ChangeSummary) string {
	return fmt.Sprintf(
		"Atlas dataset changed since %s: %d entities / %d tasks / %d objects upserted, %d / %d / %d removed",
		summary.Since,
		summary.EntitiesUpserted, summary.TasksUpserted, summary.ObjectsUpserted,
		summary.EntitiesRemoved, summary.TasksRemoved, summary.ObjectsRemoved,
	)
}
