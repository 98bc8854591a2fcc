package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/bkyoung/storysmith/internal/domain"
)

const (
	// DefaultBaseURL matches the github_api_url value Actions exposes on
	// github.com. Enterprise installs pass their own URL, which carries
	// the /api/v3 prefix.
	DefaultBaseURL = "https://api.github.com"

	defaultTimeout = 30 * time.Second
)

// IssuesService is the slice of go-github's issues API this client uses.
type IssuesService interface {
	Create(ctx context.Context, owner string, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

// Client files issues in a single repository.
type Client struct {
	issues IssuesService
	owner  string
	repo   string
}

// NewClient builds a client for the given repository. The token should be a
// personal access token or the GITHUB_TOKEN a workflow run provides. An empty
// baseURL targets github.com.
func NewClient(owner, repo, token, baseURL string) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = defaultTimeout

	client := github.NewClient(httpClient)
	if baseURL != "" && baseURL != DefaultBaseURL {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url %q: %w", baseURL, err)
		}
	}

	return &Client{
		issues: client.Issues,
		owner:  owner,
		repo:   repo,
	}, nil
}

// NewClientWithServices wires a client from an explicit issues service.
// Tests use this to substitute the API surface.
func NewClientWithServices(issues IssuesService, owner, repo string) *Client {
	return &Client{
		issues: issues,
		owner:  owner,
		repo:   repo,
	}
}

// CreateIssue files one issue and returns its number and browser URL.
// The call is made exactly once; callers treat any error as fatal.
func (c *Client) CreateIssue(ctx context.Context, issue domain.NewIssue) (*domain.CreatedIssue, error) {
	req := &github.IssueRequest{
		Title: github.Ptr(issue.Title),
		Body:  github.Ptr(issue.Body),
	}

	// Empty lists stay off the wire entirely. Sending an empty assignees
	// array is not the same as sending none.
	if len(issue.Labels) > 0 {
		req.Labels = &issue.Labels
	}
	if len(issue.Assignees) > 0 {
		req.Assignees = &issue.Assignees
	}

	created, resp, err := c.issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return nil, mapAPIError(c.owner, c.repo, resp, err)
	}
	if created == nil {
		return nil, fmt.Errorf("github returned no issue for %s/%s", c.owner, c.repo)
	}

	return &domain.CreatedIssue{
		Number:  created.GetNumber(),
		HTMLURL: created.GetHTMLURL(),
	}, nil
}
