package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/ratelimit"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/rest"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

const (
	searchFields = "summary,status,assignee,duedate,description"
	pageSize     = 100
)

// ErrNotFound is returned when Jira answers 404 for a project or issue
var ErrNotFound = errors.New("jira: not found")

func notFound(err error, what string) error {
	if rest.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, what, err)
	}
	return err
}

// Client is a Jira Cloud REST v3 client using basic auth
type Client struct {
	rest       *rest.Client
	projectKey string
}

// NewClient creates a Jira client from configuration
func NewClient(cfg *config.JiraConfig) *Client {
	email, token := cfg.Email, cfg.APIToken
	return &Client{
		projectKey: cfg.ProjectKey,
		rest: rest.New(rest.Options{
			Service: "jira",
			BaseURL: cfg.BaseURL,
			Limiter: ratelimit.New(ratelimit.Config{
				RequestsPerSecond: cfg.RequestsPerSecond,
				BurstSize:         cfg.Burst,
			}),
			Decorate: func(r *http.Request) {
				r.SetBasicAuth(email, token)
			},
			MaxRetries: 3,
			MaxElapsed: 20 * time.Second,
		}),
	}
}

// ProjectKey returns the configured project key
func (c *Client) ProjectKey() string {
	return c.projectKey
}

type user struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

type issue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary     string `json:"summary"`
		Description *Node  `json:"description"`
		DueDate     string `json:"duedate"`
		Status      *struct {
			Name string `json:"name"`
		} `json:"status"`
		Assignee *user `json:"assignee"`
	} `json:"fields"`
}

type searchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []issue `json:"issues"`
}

// SearchTasks returns every Task issue in the configured project
func (c *Client) SearchTasks(ctx context.Context) ([]entities.Task, error) {
	jql := fmt.Sprintf("project=%s AND issuetype=Task", c.projectKey)

	var tasks []entities.Task
	for startAt := 0; ; {
		q := url.Values{}
		q.Set("jql", jql)
		q.Set("fields", searchFields)
		q.Set("startAt", strconv.Itoa(startAt))
		q.Set("maxResults", strconv.Itoa(pageSize))

		var resp searchResponse
		if err := c.rest.Do(ctx, http.MethodGet, "/rest/api/3/search", q, nil, &resp); err != nil {
			return nil, err
		}
		for _, is := range resp.Issues {
			tasks = append(tasks, toTask(is))
		}

		startAt += len(resp.Issues)
		if len(resp.Issues) == 0 || startAt >= resp.Total {
			break
		}
	}
	if tasks == nil {
		tasks = []entities.Task{}
	}
	return tasks, nil
}

func toTask(is issue) entities.Task {
	t := entities.Task{
		ID:          is.ID,
		Key:         is.Key,
		Summary:     is.Fields.Summary,
		Description: is.Fields.Description.PlainText(),
		DueDate:     is.Fields.DueDate,
	}
	if is.Fields.Status != nil {
		t.Status = is.Fields.Status.Name
	}
	if a := is.Fields.Assignee; a != nil {
		t.AssigneeName = a.DisplayName
		t.AssigneeEmail = a.EmailAddress
		t.AssigneeAccountID = a.AccountID
	}
	return t
}

type projectResponse struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ProjectTypeKey string `json:"projectTypeKey"`
	Lead           *user  `json:"lead"`
}

// GetProject fetches project metadata by ID or key
func (c *Client) GetProject(ctx context.Context, idOrKey string) (*entities.Project, error) {
	var resp projectResponse
	path := "/rest/api/3/project/" + url.PathEscape(idOrKey)
	if err := c.rest.Do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, notFound(err, "project "+idOrKey)
	}
	p := &entities.Project{
		ID:          resp.ID,
		Key:         resp.Key,
		Name:        resp.Name,
		Description: resp.Description,
		TypeKey:     resp.ProjectTypeKey,
	}
	if resp.Lead != nil {
		p.LeadName = resp.Lead.DisplayName
	}
	return p, nil
}

// FindAccountID looks up a user's account ID by email; "" when no user matches
func (c *Client) FindAccountID(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil
	}
	var users []user
	q := url.Values{"query": {email}}
	if err := c.rest.Do(ctx, http.MethodGet, "/rest/api/3/user/search", q, nil, &users); err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "", nil
	}
	return users[0].AccountID, nil
}

// IssueInput describes a Task to create
type IssueInput struct {
	Summary     string
	Description string
	AccountID   string
}

type createIssueRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

// CreatedIssue is the tracker's reference to a new issue
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// CreateIssue creates a Task in the configured project
func (c *Client) CreateIssue(ctx context.Context, in IssueInput) (*CreatedIssue, error) {
	fields := map[string]interface{}{
		"project":     map[string]string{"key": c.projectKey},
		"summary":     in.Summary,
		"description": NewDocument(in.Description),
		"issuetype":   map[string]string{"name": "Task"},
	}
	if in.AccountID != "" {
		fields["assignee"] = map[string]string{"accountId": in.AccountID}
	}

	var out CreatedIssue
	if err := c.rest.Do(ctx, http.MethodPost, "/rest/api/3/issue", nil, createIssueRequest{Fields: fields}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDueDate sets an issue's due date
func (c *Client) UpdateDueDate(ctx context.Context, issueKey, dueDate string) error {
	return c.UpdateFields(ctx, issueKey, map[string]interface{}{"duedate": dueDate})
}

// UpdateFields sets arbitrary fields on an issue
func (c *Client) UpdateFields(ctx context.Context, issueKey string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields to update")
	}
	path := "/rest/api/3/issue/" + url.PathEscape(issueKey)
	if err := c.rest.Do(ctx, http.MethodPut, path, nil, createIssueRequest{Fields: fields}, nil); err != nil {
		return notFound(err, "issue "+issueKey)
	}
	return nil
}
