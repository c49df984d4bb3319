package model_test

import (
	"testing"

	"github-pr-watcher/internal/model"
)

func TestParseAction(t *testing.T) {
	if len(model.KnownActions) != 21 {
		t.Fatalf("expected 21 known actions, got %d", len(model.KnownActions))
	}
	for _, a := range model.KnownActions {
		if got := model.ParseAction(string(a)); got != a {
			t.Errorf("ParseAction(%q) = %q", a, got)
		}
	}
	for _, raw := range []string{"renamed", "", "OPENED"} {
		if got := model.ParseAction(raw); got != model.ActionUnknown {
			t.Errorf("ParseAction(%q) = %q, want unknown", raw, got)
		}
	}
}

func TestShortSHA(t *testing.T) {
	e := model.PullRequestEvent{HeadSHA: "0123456789abcdef"}
	if got := e.ShortSHA(); got != "0123456" {
		t.Errorf("expected 0123456, got %s", got)
	}
	e.HeadSHA = "abc"
	if got := e.ShortSHA(); got != "abc" {
		t.Errorf("expected abc, got %s", got)
	}
}
