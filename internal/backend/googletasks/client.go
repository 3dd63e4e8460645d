// Package googletasks reads task lists from the Google Tasks API so they can
// be imported into the task store.
package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tasklane/internal/config"
	"tasklane/internal/model"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of items requested per page.
	PageSize = 100

	// APITimeout bounds a whole fetch.
	APITimeout = 30 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted = "completed"
)

// Client reads lists and tasks from Google Tasks.
type Client struct {
	svc *tasks.Service
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oc, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tok, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("not logged in (run: tasklane login): %w", err)
	}

	// Token source refreshes automatically.
	httpClient := oauth2.NewClient(ctx, oc.TokenSource(ctx, tok))

	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// FetchLists returns every task list with all of its tasks, completed and
// hidden ones included, in API order. The default list is marked primary.
func (c *Client) FetchLists(ctx context.Context) ([]model.ImportedList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	defaultList, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	var lists []*tasks.TaskList
	err = c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		lists = append(lists, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	result := make([]model.ImportedList, 0, len(lists))
	for _, list := range lists {
		items, err := c.fetchTasks(ctx, list.Id)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", list.Title, err)
		}
		result = append(result, model.ImportedList{
			Name:    list.Title,
			Primary: list.Id == defaultList.Id,
			Tasks:   items,
		})
	}
	return result, nil
}

func (c *Client) fetchTasks(ctx context.Context, listID string) ([]model.ImportedTask, error) {
	var result []model.ImportedTask
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, task := range resp.Items {
				if task.Deleted {
					continue
				}
				result = append(result, model.ImportedTask{
					Title:    task.Title,
					Notes:    task.Notes,
					Complete: task.Status == statusCompleted,
				})
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: tasklane login)")
	}

	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}
