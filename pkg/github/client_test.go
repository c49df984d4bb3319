package github_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github-pr-watcher/pkg/github"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *github.Client {
	t.Helper()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	client := github.NewClient("ghp-test")
	if err := client.SetBaseURL(ts.URL); err != nil {
		t.Fatalf("SetBaseURL: %v", err)
	}
	return client
}

func TestGetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer ghp-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"number": 7, "mergeable": true, "merge_commit_sha": "abc", "merged": true, "head": {"ref": "TASK-1"}}`)
	})
	mux.HandleFunc("/repos/acme/api/pulls/8", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"number": 8, "mergeable": null}`)
	})
	mux.HandleFunc("/repos/acme/api/pulls/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("Populated", func(t *testing.T) {
		pr, err := client.GetPullRequest(ctx, "acme/api", 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pr.Mergeable == nil || !*pr.Mergeable {
			t.Errorf("expected mergeable=true, got %v", pr.Mergeable)
		}
		if pr.MergeCommitSHA != "abc" || pr.HeadRef != "TASK-1" || !pr.Merged {
			t.Errorf("unexpected pr: %+v", pr)
		}
	})

	t.Run("Null Mergeable", func(t *testing.T) {
		pr, err := client.GetPullRequest(ctx, "acme/api", 8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pr.Mergeable != nil {
			t.Errorf("expected nil mergeable, got %v", *pr.Mergeable)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		if _, err := client.GetPullRequest(ctx, "acme/api", 9); err == nil {
			t.Error("expected error on 404")
		}
	})

	t.Run("Invalid Repository", func(t *testing.T) {
		_, err := client.GetPullRequest(ctx, "no-slash", 1)
		if !errors.Is(err, github.ErrInvalidRepository) {
			t.Errorf("expected ErrInvalidRepository, got %v", err)
		}
	})
}

func TestGetGitCommit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/git/commits/m1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha": "m1", "parents": [{"sha": "p1"}, {"sha": "p2"}], "verification": {"verified": false, "signature": null}}`)
	})
	mux.HandleFunc("/repos/acme/api/git/commits/s1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha": "s1", "parents": [{"sha": "p1"}], "verification": {"verified": true, "signature": "-----BEGIN PGP SIGNATURE-----"}, "author": {"email": "dev@example.com"}}`)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	merge, err := client.GetGitCommit(ctx, "acme/api", "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merge.ParentCount != 2 || merge.Signature != "" {
		t.Errorf("unexpected merge commit: %+v", merge)
	}

	squash, err := client.GetGitCommit(ctx, "acme/api", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if squash.ParentCount != 1 || squash.Signature == "" || squash.AuthorEmail != "dev@example.com" {
		t.Errorf("unexpected squash commit: %+v", squash)
	}
}

func TestListPullRequestCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/pulls/3/commits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"sha": "c1", "author": {"login": "alice"}, "commit": {"author": {"email": "alice@example.com"}}},
			{"sha": "c2", "author": null, "commit": {"author": {"email": "ghost@example.com"}}}
		]`)
	})
	client := newTestClient(t, mux)

	commits, err := client.ListPullRequestCommits(context.Background(), "acme/api", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Login != "alice" || commits[0].Email != "alice@example.com" {
		t.Errorf("unexpected first commit: %+v", commits[0])
	}
	if commits[1].Login != "" || commits[1].Email != "ghost@example.com" {
		t.Errorf("unexpected second commit: %+v", commits[1])
	}
}

func TestListMergedPullRequests(t *testing.T) {
	now := time.Now().UTC()
	recent := now.Add(-2 * time.Hour).Format(time.RFC3339)
	old := now.Add(-10 * 24 * time.Hour).Format(time.RFC3339)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/pulls", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != "closed" || q.Get("base") != "develop" || q.Get("sort") != "updated" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `[
			{"number": 1, "title": "one", "head": {"ref": "TASK-1"}, "merged_at": %q, "updated_at": %q},
			{"number": 2, "title": "two", "head": {"ref": "TASK-2"}, "merged_at": null, "updated_at": %q},
			{"number": 3, "title": "three", "head": {"ref": "TASK-3"}, "merged_at": %q, "updated_at": %q}
		]`, recent, recent, recent, old, old)
	})
	client := newTestClient(t, mux)

	prs, err := client.ListMergedPullRequests(context.Background(), "acme/api", "develop", now.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prs) != 1 || prs[0].HeadRef != "TASK-1" {
		t.Errorf("expected only TASK-1, got %+v", prs)
	}
}
