package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Client is the Zoho Projects REST client.
type Client struct {
	apiURL     string
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

// NewClient creates a client that authenticates with the client_credentials grant.
// Tokens are cached and refreshed when they expire.
func NewClient(ctx context.Context, cfg Config) *Client {
	accountsURL := strings.TrimRight(cfg.AccountsURL, "/")
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     accountsURL + "/oauth/v2/token",
		// Zoho expects a comma separated scope list
		Scopes:    []string{strings.Join(scopes, ",")},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     cc.TokenSource(ctx),
	}
}

// PortalIDByName returns the id of the portal whose name matches, ignoring case.
func (c *Client) PortalIDByName(ctx context.Context, name string) (string, error) {
	var resp portalsResponse
	if err := c.do(ctx, http.MethodGet, "/portals/", nil, &resp); err != nil {
		return "", fmt.Errorf("failed to list portals: %w", err)
	}
	for _, p := range resp.Portals {
		if strings.EqualFold(p.Name, name) {
			return p.ID.String(), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrPortalNotFound, name)
}

// ListProjects lists the projects of a portal.
func (c *Client) ListProjects(ctx context.Context, portalID string) ([]Project, error) {
	var resp projectsResponse
	path := fmt.Sprintf("/portal/%s/projects/", portalID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return resp.Projects, nil
}

// ListTasks returns every task of a project, walking pages of PageSize.
func (c *Client) ListTasks(ctx context.Context, portalID, projectID string) ([]Task, error) {
	path := fmt.Sprintf("/portal/%s/projects/%s/tasks/", portalID, projectID)

	var all []Task
	for index := 1; ; index += PageSize {
		q := url.Values{}
		q.Set("index", strconv.Itoa(index))
		q.Set("range", strconv.Itoa(PageSize))

		var resp tasksResponse
		if err := c.do(ctx, http.MethodGet, path, q, &resp); err != nil {
			return nil, fmt.Errorf("failed to list tasks of project %s: %w", projectID, err)
		}
		all = append(all, resp.Tasks...)
		if len(resp.Tasks) < PageSize {
			return all, nil
		}
	}
}

// UpdateTaskStatus moves a task to the custom status statusID.
func (c *Client) UpdateTaskStatus(ctx context.Context, portalID, projectID, taskID, statusID string) error {
	path := fmt.Sprintf("/portal/%s/projects/%s/tasks/%s/", portalID, projectID, taskID)
	q := url.Values{}
	q.Set("custom_status", statusID)
	if err := c.do(ctx, http.MethodPost, path, q, nil); err != nil {
		return fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	return nil
}

// AddComment comments on a task. An empty comment is a no-op.
func (c *Client) AddComment(ctx context.Context, portalID, projectID, taskID, content string) error {
	if content == "" {
		return nil
	}
	path := fmt.Sprintf("/portal/%s/projects/%s/tasks/%s/comments/", portalID, projectID, taskID)
	q := url.Values{}
	q.Set("content", content)
	if err := c.do(ctx, http.MethodPost, path, q, nil); err != nil {
		return fmt.Errorf("failed to comment on task %s: %w", taskID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	tok, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+tok.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		// Zoho answers 204 for empty listings
		return nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s %s: %d %s", ErrUnexpectedStatus, method, path, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
