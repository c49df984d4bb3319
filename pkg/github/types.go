package github

import "time"

// PullRequest is the subset of PR detail the watcher uses.
type PullRequest struct {
	Number         int
	Mergeable      *bool
	MergeableState string
	MergeCommitSHA string
	Merged         bool
	HeadRef        string
}

// Commit is a git commit object.
type Commit struct {
	SHA         string
	ParentCount int
	Signature   string
	AuthorEmail string
}

// CommitAuthor identifies who authored a commit of a PR.
type CommitAuthor struct {
	SHA   string
	Login string
	Email string
}

// MergedPullRequest is a merged PR as listed for tracker sync.
type MergedPullRequest struct {
	Number   int
	Title    string
	HeadRef  string
	MergedAt time.Time
}
