package zoho

import (
	"encoding/json"
	"errors"
)

const (
	DefaultAccountsURL = "https://accounts.zoho.in"
	DefaultAPIURL      = "https://projectsapi.zoho.in/restapi"

	// PageSize is the largest task page Zoho Projects serves.
	PageSize = 200
)

// DefaultScopes are the scopes the tracker sync needs.
var DefaultScopes = []string{
	"ZohoProjects.tasks.ALL",
	"ZohoProjects.projects.ALL",
	"ZohoProjects.portals.ALL",
	"ZohoProjects.users.ALL",
}

var (
	ErrPortalNotFound   = errors.New("zoho portal not found")
	ErrUnexpectedStatus = errors.New("unexpected zoho response status")
)

// Config holds the client credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	AccountsURL  string
	APIURL       string
	Scopes       []string
}

// Portal is a Zoho Projects portal.
type Portal struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Project is a project inside a portal.
type Project struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Task is a task of a project. Key is the human readable key (e.g. "PRJ-T12").
type Task struct {
	ID   json.Number `json:"id"`
	Key  string      `json:"key"`
	Name string      `json:"name"`
	Link struct {
		Web struct {
			URL string `json:"url"`
		} `json:"web"`
	} `json:"link"`
}

// WebURL returns the browser link of the task.
func (t Task) WebURL() string {
	return t.Link.Web.URL
}

type portalsResponse struct {
	Portals []Portal `json:"portals"`
}

type projectsResponse struct {
	Projects []Project `json:"projects"`
}

type tasksResponse struct {
	Tasks []Task `json:"tasks"`
}
