package identity

import "time"

// PRRef points at the pull request a login was seen on.
type PRRef struct {
	Repository string
	Number     int
}

// Mappings are the static lookup tables loaded at start.
type Mappings struct {
	TeamLeads  map[string][]string // repository full name -> team lead emails
	UserEmails map[string]string   // GitHub login -> email
}

// Options tunes a resolver.
type Options struct {
	CacheTTL  time.Duration
	CacheSize int
	// CommitSource enables resolving unmapped logins from the PR commit history.
	CommitSource CommitSource
}

const (
	// NoTeamLeads is rendered when a repository has no resolvable team leads.
	NoTeamLeads = "N/A"

	defaultCacheSize = 512
)
