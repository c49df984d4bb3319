package identity

import (
	"github.com/hashicorp/golang-lru/v2/expirable"

	pkgLog "github-pr-watcher/pkg/log"
)

type resolver struct {
	directory Directory
	commits   CommitSource
	mappings  Mappings
	cache     *expirable.LRU[string, string] // email -> chat user id
	l         pkgLog.Logger
}

// New creates a Resolver over the static mappings and the chat directory.
func New(directory Directory, mappings Mappings, opts Options, l pkgLog.Logger) Resolver {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}

	var cache *expirable.LRU[string, string]
	if opts.CacheTTL > 0 {
		cache = expirable.NewLRU[string, string](size, nil, opts.CacheTTL)
	}

	if mappings.TeamLeads == nil {
		mappings.TeamLeads = map[string][]string{}
	}
	if mappings.UserEmails == nil {
		mappings.UserEmails = map[string]string{}
	}

	return &resolver{
		directory: directory,
		commits:   opts.CommitSource,
		mappings:  mappings,
		cache:     cache,
		l:         l,
	}
}
