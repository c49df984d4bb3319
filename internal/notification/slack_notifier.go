package notification

import (
	"context"

	"github-pr-watcher/internal/model"
	pkgLog "github-pr-watcher/pkg/log"
	"github-pr-watcher/pkg/slack"
)

// MessagePoster posts a message to a Slack channel.
type MessagePoster interface {
	PostMessage(ctx context.Context, msg slack.Message) error
}

// SlackNotifier delivers notifications through chat.postMessage.
type SlackNotifier struct {
	client MessagePoster
	l      pkgLog.Logger
}

func NewSlackNotifier(client MessagePoster, l pkgLog.Logger) *SlackNotifier {
	return &SlackNotifier{client: client, l: l}
}

// Notify posts n once. Failures are returned to the caller and not retried.
func (s *SlackNotifier) Notify(ctx context.Context, n model.Notification) error {
	if err := s.client.PostMessage(ctx, toSlackMessage(n)); err != nil {
		return err
	}
	s.l.Infof(ctx, "internal.notification.Notify: posted %q to %s", n.Text, n.Channel)
	return nil
}

func toSlackMessage(n model.Notification) slack.Message {
	msg := slack.Message{
		Channel: n.Channel,
		Text:    n.Text,
		Blocks:  make([]slack.Block, 0, len(n.Blocks)),
	}
	for _, b := range n.Blocks {
		switch b.Type {
		case model.BlockFields:
			fields := make([]slack.TextObject, len(b.Fields))
			for i, f := range b.Fields {
				fields[i] = slack.Markdown(f)
			}
			msg.Blocks = append(msg.Blocks, slack.Block{Type: "section", Fields: fields})
		default:
			text := slack.Markdown(b.Text)
			msg.Blocks = append(msg.Blocks, slack.Block{Type: "section", Text: &text})
		}
	}
	return msg
}
