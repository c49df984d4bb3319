package log_test

import (
	"context"
	"testing"

	"github-pr-watcher/pkg/log"
)

func TestDeliveryID(t *testing.T) {
	ctx := log.WithDeliveryID(context.Background(), "abc-123")
	if got := log.DeliveryID(ctx); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}
	if got := log.DeliveryID(context.Background()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}

func TestInit(t *testing.T) {
	for _, cfg := range []log.ZapConfig{
		{Level: "debug", Mode: "development", Encoding: "console", ColorEnabled: true},
		{Level: "warn", Mode: log.ModeProduction, Encoding: log.EncodingJSON},
		{Level: "not-a-level", Mode: "debug", Encoding: "console"},
	} {
		l := log.Init(cfg)
		if l == nil {
			t.Fatalf("Init(%+v) returned nil", cfg)
		}
		l.Infof(log.WithDeliveryID(context.Background(), "d-1"), "logger ready: %s", cfg.Level)
	}
}
