package notification_test

import (
	"context"
	"testing"

	"github-pr-watcher/internal/model"
	"github-pr-watcher/internal/notification"
	"github-pr-watcher/pkg/slack"
)

type capturePoster struct {
	msgs []slack.Message
}

func (c *capturePoster) PostMessage(ctx context.Context, msg slack.Message) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

func TestSlackNotifier_ConvertsBlocks(t *testing.T) {
	poster := &capturePoster{}
	n := notification.NewSlackNotifier(poster, &mockLogger{})

	err := n.Notify(context.Background(), model.Notification{
		Channel: "#prs",
		Text:    "summary",
		Blocks: []model.Block{
			model.Section("hello"),
			model.Fields("*Commit:* x", "*Mergeable:* ✅"),
		},
	})
	if err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if len(poster.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(poster.msgs))
	}

	msg := poster.msgs[0]
	if msg.Channel != "#prs" || msg.Text != "summary" {
		t.Errorf("unexpected envelope: %+v", msg)
	}
	if len(msg.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(msg.Blocks))
	}
	if msg.Blocks[0].Type != "section" || msg.Blocks[0].Text == nil || msg.Blocks[0].Text.Text != "hello" || msg.Blocks[0].Text.Type != "mrkdwn" {
		t.Errorf("unexpected text block: %+v", msg.Blocks[0])
	}
	if msg.Blocks[1].Text != nil || len(msg.Blocks[1].Fields) != 2 || msg.Blocks[1].Fields[1].Text != "*Mergeable:* ✅" {
		t.Errorf("unexpected fields block: %+v", msg.Blocks[1])
	}
}
