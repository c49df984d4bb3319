package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"
)

// DefaultAPIURL is the Slack Web API base URL.
const DefaultAPIURL = slackapi.APIURL

// Client wraps the Slack Web API client with per-channel post throttling.
type Client struct {
	token      string
	httpClient *http.Client
	api        *slackapi.Client
	limiter    *channelLimiter
}

// NewClient creates a Slack client authenticated with a bot token.
// postsPerSecond throttles chat.postMessage per channel; zero disables throttling.
func NewClient(token string, postsPerSecond float64) *Client {
	c := &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    newChannelLimiter(postsPerSecond),
	}
	c.SetAPIURL(DefaultAPIURL)
	return c
}

// SetAPIURL overrides the default Slack API URL for testing purposes.
func (c *Client) SetAPIURL(apiURL string) {
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	c.api = slackapi.New(c.token,
		slackapi.OptionAPIURL(apiURL),
		slackapi.OptionHTTPClient(c.httpClient),
	)
}

// LookupUserByEmail returns the Slack user id for email via users.lookupByEmail.
func (c *Client) LookupUserByEmail(ctx context.Context, email string) (string, error) {
	user, err := c.api.GetUserByEmailContext(ctx, email)
	if err != nil {
		var apiErr slackapi.SlackErrorResponse
		if errors.As(err, &apiErr) && apiErr.Err == "users_not_found" {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("slack users.lookupByEmail failed: %w", err)
	}
	if user == nil || user.ID == "" {
		return "", ErrUserNotFound
	}
	return user.ID, nil
}

// PostMessage sends msg via chat.postMessage.
func (c *Client) PostMessage(ctx context.Context, msg Message) error {
	if err := c.limiter.Wait(ctx, msg.Channel); err != nil {
		return fmt.Errorf("slack rate limiter: %w", err)
	}

	opts := []slackapi.MsgOption{slackapi.MsgOptionText(msg.Text, false)}
	if len(msg.Blocks) > 0 {
		opts = append(opts, slackapi.MsgOptionBlocks(toBlocks(msg.Blocks)...))
	}

	if _, _, err := c.api.PostMessageContext(ctx, msg.Channel, opts...); err != nil {
		return fmt.Errorf("slack chat.postMessage failed: %w", err)
	}
	return nil
}

func toBlocks(blocks []Block) []slackapi.Block {
	out := make([]slackapi.Block, 0, len(blocks))
	for _, b := range blocks {
		var text *slackapi.TextBlockObject
		if b.Text != nil {
			text = toTextObject(*b.Text)
		}
		var fields []*slackapi.TextBlockObject
		for _, f := range b.Fields {
			fields = append(fields, toTextObject(f))
		}
		out = append(out, slackapi.NewSectionBlock(text, fields, nil))
	}
	return out
}

func toTextObject(t TextObject) *slackapi.TextBlockObject {
	kind := t.Type
	if kind == "" {
		kind = slackapi.MarkdownType
	}
	return slackapi.NewTextBlockObject(kind, t.Text, false, false)
}
