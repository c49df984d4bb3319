package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github-pr-watcher/config"
	"github-pr-watcher/internal/tracker"
	"github-pr-watcher/pkg/github"
	"github-pr-watcher/pkg/log"
	"github-pr-watcher/pkg/zoho"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd(loadTracker).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadTracker builds the tracker use case from config.yaml and the environment.
func loadTracker(ctx context.Context) (tracker.UseCase, tracker.SyncInput, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, tracker.SyncInput{}, fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Zoho.Enabled() {
		return nil, tracker.SyncInput{}, fmt.Errorf("zoho.client_id, zoho.client_secret and zoho.portal_name are required")
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	githubClient := github.NewClient(cfg.GitHub.Token)
	if cfg.GitHub.APIURL != "" {
		if err := githubClient.SetBaseURL(cfg.GitHub.APIURL); err != nil {
			return nil, tracker.SyncInput{}, err
		}
	}
	zohoClient := zoho.NewClient(ctx, zoho.Config{
		ClientID:     cfg.Zoho.ClientID,
		ClientSecret: cfg.Zoho.ClientSecret,
		AccountsURL:  cfg.Zoho.AccountsURL,
		APIURL:       cfg.Zoho.APIURL,
	})

	uc := tracker.New(githubClient, zohoClient, tracker.Config{
		PortalName: cfg.Zoho.PortalName,
		Statuses:   cfg.Zoho.Statuses,
	}, logger)

	return uc, tracker.SyncInput{
		Repository:   cfg.Tracker.Repository,
		TargetBranch: cfg.Tracker.TargetBranch,
		LookbackDays: cfg.Tracker.LookbackDays,
		Comment:      cfg.Tracker.Comment,
	}, nil
}
