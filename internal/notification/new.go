package notification

import (
	"github-pr-watcher/internal/identity"
	"github-pr-watcher/internal/labels"
	pkgLog "github-pr-watcher/pkg/log"
)

type usecase struct {
	resolver  identity.Resolver
	poller    MergeStatusPoller
	commits   CommitInspector
	notifier  Notifier
	debouncer *labels.Debouncer
	cfg       Config
	l         pkgLog.Logger
}

func New(
	resolver identity.Resolver,
	poller MergeStatusPoller,
	commits CommitInspector,
	notifier Notifier,
	cfg Config,
	l pkgLog.Logger,
) UseCase {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}

	uc := &usecase{
		resolver: resolver,
		poller:   poller,
		commits:  commits,
		notifier: notifier,
		cfg:      cfg,
		l:        l,
	}
	uc.debouncer = labels.New(cfg.Labels, uc.flushLabels, l)

	return uc
}
