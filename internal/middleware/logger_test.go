package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github-pr-watcher/internal/middleware"
	"github-pr-watcher/pkg/log"
)

type recordingLogger struct {
	log.Logger
	lines      []string
	deliveries []string
}

func (r *recordingLogger) Infof(ctx context.Context, format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
	r.deliveries = append(r.deliveries, log.DeliveryID(ctx))
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := &recordingLogger{Logger: log.NewNop()}

	r := gin.New()
	r.Use(middleware.New(l).RequestLogger())
	r.POST("/webhook", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set("X-GitHub-Delivery", "abc")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if len(l.lines) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(l.lines))
	}
	if !strings.Contains(l.lines[0], "POST /webhook 200") {
		t.Errorf("unexpected log line %q", l.lines[0])
	}
	if l.deliveries[0] != "abc" {
		t.Errorf("expected delivery id on the log context, got %q", l.deliveries[0])
	}
}
