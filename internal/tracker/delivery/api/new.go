package api

import (
	"github-pr-watcher/internal/tracker"
	pkgLog "github-pr-watcher/pkg/log"
)

type handler struct {
	uc       tracker.UseCase
	defaults tracker.SyncInput
	l        pkgLog.Logger
}

// New creates the handler. Fields missing from a sync request fall back to defaults.
func New(uc tracker.UseCase, defaults tracker.SyncInput, l pkgLog.Logger) Handler {
	return &handler{
		uc:       uc,
		defaults: defaults,
		l:        l,
	}
}
