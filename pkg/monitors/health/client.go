package health

import (
	"context"
	"errors"
	"fmt"
)

// Getter decodes the JSON body at path into v.
type Getter interface {
	GetInto(ctx context.Context, path string, v interface{}) error
}

// Client reads the health endpoint of the watched application.
type Client struct {
	getter Getter
	path   string
}

// NewClient creates a health client for path, defaulting to DefaultPath.
func NewClient(getter Getter, path string) *Client {
	if path == "" {
		path = DefaultPath
	}
	return &Client{getter: getter, path: path}
}

// Path returns the polled path.
func (c *Client) Path() string {
	return c.path
}

// GetStatus fetches and decodes the current health status.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	if c == nil || c.getter == nil {
		return nil, errors.New(ErrMissingClient)
	}

	var status Status
	if err := c.getter.GetInto(ctx, c.path, &status); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrHealthFetch, err)
	}
	return &status, nil
}
