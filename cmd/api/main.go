package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github-pr-watcher/config"
	_ "github-pr-watcher/docs" // Swagger docs
	"github-pr-watcher/internal/httpserver"
	"github-pr-watcher/internal/identity"
	"github-pr-watcher/internal/labels"
	"github-pr-watcher/internal/mergeability"
	"github-pr-watcher/internal/notification"
	"github-pr-watcher/internal/tracker"
	trackerAPI "github-pr-watcher/internal/tracker/delivery/api"
	"github-pr-watcher/internal/webhook"
	"github-pr-watcher/pkg/github"
	"github-pr-watcher/pkg/log"
	"github-pr-watcher/pkg/retry"
	"github-pr-watcher/pkg/slack"
	"github-pr-watcher/pkg/zoho"
)

// @title       GitHub PR Watcher API
// @description Posts GitHub pull request activity to Slack and syncs merged branches to Zoho Projects.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting GitHub PR Watcher...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Slack channel: %s", cfg.Slack.Channel)

	// 3. Upstream clients
	githubClient := github.NewClient(cfg.GitHub.Token)
	if cfg.GitHub.APIURL != "" {
		if err := githubClient.SetBaseURL(cfg.GitHub.APIURL); err != nil {
			logger.Error(ctx, "Invalid GitHub API URL: ", err)
			return
		}
	}
	if cfg.GitHub.Token == "" {
		logger.Warn(ctx, "GITHUB_TOKEN is missing: API calls are unauthenticated and heavily rate limited")
	}

	slackClient := slack.NewClient(cfg.Slack.BotToken, cfg.Slack.RatePerSec)
	slackClient.SetAPIURL(cfg.Slack.APIURL)
	if cfg.Slack.BotToken == "" {
		logger.Warn(ctx, "SLACK_BOT_TOKEN is missing: notifications will fail")
	}

	// 4. Notification pipeline
	mappings, err := identity.LoadMappings(cfg.Identity.TeamMapPath, cfg.Identity.UserMapPath)
	if err != nil {
		if !identity.MissingOnly(err) {
			logger.Error(ctx, "Failed to load identity mappings: ", err)
			return
		}
		logger.Warnf(ctx, "Identity mappings incomplete, continuing with what was loaded: %v", err)
	}
	logger.Infof(ctx, "Loaded %d team maps and %d user emails", len(mappings.TeamLeads), len(mappings.UserEmails))

	identityOpts := identity.Options{CacheTTL: cfg.Identity.CacheTTL}
	if cfg.Identity.CommitEmailFallback {
		identityOpts.CommitSource = githubClient
	}
	resolver := identity.New(slackClient, mappings, identityOpts, logger)

	poller := mergeability.New(githubClient, retry.Policy{
		MaxAttempts: cfg.Mergeability.Attempts,
		Delay:       cfg.Mergeability.Delay,
	}, logger)

	notificationUC := notification.New(
		resolver,
		poller,
		githubClient,
		notification.NewSlackNotifier(slackClient, logger),
		notification.Config{
			Channel:       cfg.Slack.Channel,
			OperatorEmail: cfg.Notification.OperatorEmail,
			Labels: labels.Config{
				Delay: cfg.Labels.Delay,
				Quiet: cfg.Labels.Quiet,
			},
		},
		logger,
	)
	webhookHandler := webhook.NewHandler(notificationUC, logger)

	// 5. Task tracker (optional)
	var trackerHandler trackerAPI.Handler
	var scheduler *tracker.Scheduler
	if cfg.Zoho.Enabled() {
		zohoClient := zoho.NewClient(ctx, zoho.Config{
			ClientID:     cfg.Zoho.ClientID,
			ClientSecret: cfg.Zoho.ClientSecret,
			AccountsURL:  cfg.Zoho.AccountsURL,
			APIURL:       cfg.Zoho.APIURL,
		})
		trackerUC := tracker.New(githubClient, zohoClient, tracker.Config{
			PortalName: cfg.Zoho.PortalName,
			Statuses:   cfg.Zoho.Statuses,
		}, logger)

		defaults := tracker.SyncInput{
			Repository:   cfg.Tracker.Repository,
			TargetBranch: cfg.Tracker.TargetBranch,
			LookbackDays: cfg.Tracker.LookbackDays,
			Comment:      cfg.Tracker.Comment,
		}
		trackerHandler = trackerAPI.New(trackerUC, defaults, logger)

		scheduler = tracker.NewScheduler(trackerUC, defaults, cfg.Tracker.Interval, logger)
		scheduler.Start()
		logger.Info(ctx, "Task tracker sync initialized")
	} else {
		logger.Warn(ctx, "Task tracker skipped: ZOHO_CLIENT_ID, ZOHO_CLIENT_SECRET or ZOHO_PORTAL_NAME is missing")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		WebhookHandler: webhookHandler,
		TrackerHandler: trackerHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
	}

	// In-flight deliveries may still schedule label flushes, so drain them first.
	webhookHandler.Wait()
	notificationUC.Drain()
	if scheduler != nil {
		scheduler.Stop()
	}

	logger.Info(ctx, "Server stopped gracefully")
}
