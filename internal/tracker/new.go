package tracker

import (
	"strings"
	"sync"
	"time"

	pkgLog "github-pr-watcher/pkg/log"
)

type usecase struct {
	prs      MergedPullRequestLister
	board    TaskBoard
	cfg      Config
	statuses map[string]string
	l        pkgLog.Logger

	mu       sync.Mutex
	portalID string
}

func New(prs MergedPullRequestLister, board TaskBoard, cfg Config, l pkgLog.Logger) UseCase {
	statuses := make(map[string]string, len(DefaultStatuses)+len(cfg.Statuses))
	for name, id := range DefaultStatuses {
		statuses[strings.ToLower(name)] = id
	}
	// Status names are matched case-insensitively; config keys arrive lowercased.
	for name, id := range cfg.Statuses {
		statuses[strings.ToLower(name)] = id
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &usecase{
		prs:      prs,
		board:    board,
		cfg:      cfg,
		statuses: statuses,
		l:        l,
	}
}
