package zoho_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github-pr-watcher/pkg/zoho"
)

func newTestClient(t *testing.T, mux *http.ServeMux) (*zoho.Client, *int32) {
	t.Helper()

	var tokenCalls int32
	mux.HandleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad token request: %v", err)
		}
		if r.Form.Get("grant_type") != "client_credentials" || r.Form.Get("client_id") != "cid" {
			t.Errorf("unexpected token form: %v", r.Form)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	c := zoho.NewClient(context.Background(), zoho.Config{
		ClientID:     "cid",
		ClientSecret: "secret",
		AccountsURL:  ts.URL,
		APIURL:       ts.URL + "/restapi",
	})
	return c, &tokenCalls
}

func requireAuth(t *testing.T, r *http.Request) {
	t.Helper()
	if got := r.Header.Get("Authorization"); got != "Zoho-oauthtoken tok" {
		t.Errorf("unexpected Authorization header %q", got)
	}
}

func TestPortalIDByName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/restapi/portals/", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		fmt.Fprint(w, `{"portals":[{"id":111,"name":"Other"},{"id":289995,"name":"Acme"}]}`)
	})
	c, tokenCalls := newTestClient(t, mux)

	id, err := c.PortalIDByName(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "289995" {
		t.Errorf("expected 289995, got %s", id)
	}

	_, err = c.PortalIDByName(context.Background(), "missing")
	if !errors.Is(err, zoho.ErrPortalNotFound) {
		t.Errorf("expected ErrPortalNotFound, got %v", err)
	}
	if n := atomic.LoadInt32(tokenCalls); n != 1 {
		t.Errorf("expected the token to be reused, fetched %d times", n)
	}
}

func TestListTasks_Paginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/restapi/portal/1/projects/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"projects":[{"id":"10","name":"API"}]}`)
	})
	mux.HandleFunc("/restapi/portal/1/projects/10/tasks/", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		index, _ := strconv.Atoi(r.URL.Query().Get("index"))
		if r.URL.Query().Get("range") != "200" {
			t.Errorf("unexpected range %q", r.URL.Query().Get("range"))
		}

		n := zoho.PageSize
		if index > zoho.PageSize {
			n = 3
		}
		tasks := make([]map[string]any, n)
		for i := range tasks {
			tasks[i] = map[string]any{"id": index + i, "key": fmt.Sprintf("API-T%d", index+i), "name": "task"}
		}
		json.NewEncoder(w).Encode(map[string]any{"tasks": tasks})
	})
	c, _ := newTestClient(t, mux)

	projects, err := c.ListProjects(context.Background(), "1")
	if err != nil || len(projects) != 1 || projects[0].ID.String() != "10" {
		t.Fatalf("unexpected projects %+v (%v)", projects, err)
	}

	tasks, err := c.ListTasks(context.Background(), "1", "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != zoho.PageSize+3 {
		t.Fatalf("expected %d tasks, got %d", zoho.PageSize+3, len(tasks))
	}
	if tasks[zoho.PageSize].Key != "API-T201" {
		t.Errorf("unexpected first key of page two: %s", tasks[zoho.PageSize].Key)
	}
}

func TestListTasks_NoContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/restapi/portal/1/projects/10/tasks/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c, _ := newTestClient(t, mux)

	tasks, err := c.ListTasks(context.Background(), "1", "10")
	if err != nil || len(tasks) != 0 {
		t.Fatalf("expected empty listing, got %v (%v)", tasks, err)
	}
}

func TestUpdateTaskStatusAndComment(t *testing.T) {
	var status, comment string
	mux := http.NewServeMux()
	mux.HandleFunc("/restapi/portal/1/projects/10/tasks/99/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		status = r.URL.Query().Get("custom_status")
		fmt.Fprint(w, `{"tasks":[]}`)
	})
	mux.HandleFunc("/restapi/portal/1/projects/10/tasks/99/comments/", func(w http.ResponseWriter, r *http.Request) {
		comment = r.URL.Query().Get("content")
		fmt.Fprint(w, `{"comments":[]}`)
	})
	mux.HandleFunc("/restapi/portal/1/projects/10/tasks/500/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	if err := c.UpdateTaskStatus(ctx, "1", "10", "99", "289995000000156067"); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if status != "289995000000156067" {
		t.Errorf("unexpected custom_status %q", status)
	}

	if err := c.AddComment(ctx, "1", "10", "99", "Deployed to QA"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if comment != "Deployed to QA" {
		t.Errorf("unexpected comment %q", comment)
	}

	comment = ""
	if err := c.AddComment(ctx, "1", "10", "99", ""); err != nil || comment != "" {
		t.Errorf("empty comment must not be posted (err=%v)", err)
	}

	err := c.UpdateTaskStatus(ctx, "1", "10", "500", "x")
	if !errors.Is(err, zoho.ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got %v", err)
	}
}
