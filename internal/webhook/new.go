package webhook

import (
	"sync"
	"time"

	"github-pr-watcher/internal/notification"
	pkgLog "github-pr-watcher/pkg/log"
)

// DefaultProcessTimeout bounds the background processing of one delivery.
const DefaultProcessTimeout = 2 * time.Minute

type Handler struct {
	notificationUC notification.UseCase
	githubParser   *GitHubWebhookParser
	timeout        time.Duration
	l              pkgLog.Logger

	inflight sync.WaitGroup
}

func NewHandler(notificationUC notification.UseCase, l pkgLog.Logger) *Handler {
	return &Handler{
		notificationUC: notificationUC,
		githubParser:   NewGitHubParser(),
		timeout:        DefaultProcessTimeout,
		l:              l,
	}
}
