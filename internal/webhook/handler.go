package webhook

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgLog "github-pr-watcher/pkg/log"
	pkgResponse "github-pr-watcher/pkg/response"
)

// HandleGitHubWebhook acknowledges every delivery and processes pull_request events in
// the background.
// @Summary GitHub webhook
// @Description Receives GitHub webhook deliveries. Only pull_request events are processed; the response is always {"status":"accepted"}.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-GitHub-Event header string true "GitHub event type"
// @Param X-GitHub-Delivery header string false "Delivery id"
// @Success 200 {object} response.Ack
// @Router /webhook [post]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	deliveryID := c.GetHeader(HeaderDelivery)
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	ctx := pkgLog.WithDeliveryID(c.Request.Context(), deliveryID)

	// Read body
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "internal.webhook.HandleGitHubWebhook: failed to read body: %v", err)
		pkgResponse.Accepted(c)
		return
	}

	eventType := c.GetHeader(HeaderEvent)
	if eventType != EventPullRequest {
		h.l.Debugf(ctx, "internal.webhook.HandleGitHubWebhook: ignoring %q event", eventType)
		pkgResponse.Accepted(c)
		return
	}

	// Process in background
	h.inflight.Add(1)
	go h.processWebhookAsync(deliveryID, body)

	// Acknowledge immediately
	pkgResponse.Accepted(c)
}

// Wait blocks until every accepted delivery has been processed.
func (h *Handler) Wait() {
	h.inflight.Wait()
}

// processWebhookAsync parses and handles one delivery on a detached context.
func (h *Handler) processWebhookAsync(deliveryID string, body []byte) {
	defer h.inflight.Done()

	ctx, cancel := context.WithTimeout(pkgLog.WithDeliveryID(context.Background(), deliveryID), h.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			h.l.Errorf(ctx, "internal.webhook.processWebhookAsync: panic: %v", r)
		}
	}()

	event, err := h.githubParser.ParsePullRequestEvent(deliveryID, body)
	if err != nil {
		if errors.Is(err, ErrMalformedPayload) {
			h.l.Warnf(ctx, "internal.webhook.processWebhookAsync: dropping delivery: %v", err)
		} else {
			h.l.Errorf(ctx, "internal.webhook.processWebhookAsync: %v", err)
		}
		return
	}

	if err := h.notificationUC.HandlePullRequestEvent(ctx, event); err != nil {
		h.l.Errorf(ctx, "internal.webhook.processWebhookAsync: %s#%d %s: %v",
			event.Repository, event.Number, event.RawAction, err)
		return
	}

	h.l.Infof(ctx, "internal.webhook.processWebhookAsync: processed %s on %s#%d", event.RawAction, event.Repository, event.Number)
}
