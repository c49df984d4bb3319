package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Upstream APIs
	GitHub GitHubConfig
	Slack  SlackConfig
	Zoho   ZohoConfig

	// Notification pipeline
	Identity     IdentityConfig
	Notification NotificationConfig
	Labels       LabelsConfig
	Mergeability MergeabilityConfig

	// Task tracker sync
	Tracker TrackerConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type GitHubConfig struct {
	Token  string
	APIURL string // empty means api.github.com
}

type SlackConfig struct {
	BotToken   string
	APIURL     string
	Channel    string
	RatePerSec float64
}

type IdentityConfig struct {
	TeamMapPath         string
	UserMapPath         string
	CacheTTL            time.Duration
	CommitEmailFallback bool
}

type NotificationConfig struct {
	// OperatorEmail is mentioned in unknown-event alerts.
	OperatorEmail string
}

type LabelsConfig struct {
	Delay time.Duration
	Quiet time.Duration
}

type MergeabilityConfig struct {
	Attempts int
	Delay    time.Duration
}

type ZohoConfig struct {
	ClientID     string
	ClientSecret string
	PortalName   string
	AccountsURL  string
	APIURL       string
	Statuses     map[string]string
}

// Enabled reports whether enough credentials are present to talk to Zoho.
func (z ZohoConfig) Enabled() bool {
	return z.ClientID != "" && z.ClientSecret != "" && z.PortalName != ""
}

type TrackerConfig struct {
	Repository   string
	TargetBranch string
	LookbackDays int
	Comment      string
	// Interval of the in-process sync scheduler; zero disables it.
	Interval time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// GitHub
	cfg.GitHub.Token = viper.GetString("github.token")
	cfg.GitHub.APIURL = viper.GetString("github.api_url")
	if ghToken := viper.GetString("github_token"); ghToken != "" {
		cfg.GitHub.Token = ghToken
	}

	// Slack
	cfg.Slack.BotToken = viper.GetString("slack.bot_token")
	cfg.Slack.APIURL = viper.GetString("slack.api_url")
	cfg.Slack.Channel = viper.GetString("slack.channel")
	cfg.Slack.RatePerSec = viper.GetFloat64("slack.rate_per_sec")
	if slackToken := viper.GetString("slack_bot_token"); slackToken != "" {
		cfg.Slack.BotToken = slackToken
	}

	// Identity
	cfg.Identity.TeamMapPath = viper.GetString("identity.team_map_path")
	cfg.Identity.UserMapPath = viper.GetString("identity.user_map_path")
	cfg.Identity.CacheTTL = viper.GetDuration("identity.cache_ttl")
	cfg.Identity.CommitEmailFallback = viper.GetBool("identity.commit_email_fallback")

	cfg.Notification.OperatorEmail = viper.GetString("notification.operator_email")
	if operator := viper.GetString("author_email"); operator != "" {
		cfg.Notification.OperatorEmail = operator
	}

	cfg.Labels.Delay = viper.GetDuration("labels.delay")
	cfg.Labels.Quiet = viper.GetDuration("labels.quiet")

	cfg.Mergeability.Attempts = viper.GetInt("mergeability.attempts")
	cfg.Mergeability.Delay = viper.GetDuration("mergeability.delay")

	// Zoho
	cfg.Zoho.ClientID = viper.GetString("zoho.client_id")
	cfg.Zoho.ClientSecret = viper.GetString("zoho.client_secret")
	cfg.Zoho.PortalName = viper.GetString("zoho.portal_name")
	cfg.Zoho.AccountsURL = viper.GetString("zoho.accounts_url")
	cfg.Zoho.APIURL = viper.GetString("zoho.api_url")
	cfg.Zoho.Statuses = viper.GetStringMapString("zoho.statuses")

	// Tracker
	cfg.Tracker.Repository = viper.GetString("tracker.repository")
	cfg.Tracker.TargetBranch = viper.GetString("tracker.target_branch")
	cfg.Tracker.LookbackDays = viper.GetInt("tracker.lookback_days")
	cfg.Tracker.Comment = viper.GetString("tracker.comment")
	cfg.Tracker.Interval = viper.GetDuration("tracker.interval")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTPServer.Port <= 0 {
		return fmt.Errorf("http_server.port must be positive, got %d", cfg.HTTPServer.Port)
	}
	if cfg.Slack.Channel == "" {
		return fmt.Errorf("slack.channel must not be empty")
	}
	if cfg.Mergeability.Attempts < 1 {
		return fmt.Errorf("mergeability.attempts must be at least 1, got %d", cfg.Mergeability.Attempts)
	}
	if cfg.Tracker.Interval > 0 && (cfg.Tracker.Repository == "" || cfg.Tracker.TargetBranch == "") {
		return fmt.Errorf("tracker.interval requires tracker.repository and tracker.target_branch")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("slack.api_url", "https://slack.com/api")
	viper.SetDefault("slack.channel", "#github-pr-review-notification")
	viper.SetDefault("slack.rate_per_sec", 1)

	viper.SetDefault("identity.team_map_path", "repo_team_map.json")
	viper.SetDefault("identity.user_map_path", "user_map_emails.json")
	viper.SetDefault("identity.cache_ttl", "1h")
	viper.SetDefault("identity.commit_email_fallback", false)

	viper.SetDefault("labels.delay", "1.2s")
	viper.SetDefault("labels.quiet", "1.1s")

	viper.SetDefault("mergeability.attempts", 3)
	viper.SetDefault("mergeability.delay", "1s")

	viper.SetDefault("zoho.accounts_url", "https://accounts.zoho.in")
	viper.SetDefault("zoho.api_url", "https://projectsapi.zoho.in/restapi")

	viper.SetDefault("tracker.lookback_days", 2)
	viper.SetDefault("tracker.interval", "0s")
}
