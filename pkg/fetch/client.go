package fetch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"golang.org/x/oauth2"

	"github.com/redhat-appstudio/workshop-console/pkg/auth"
	"github.com/redhat-appstudio/workshop-console/pkg/logger"
)

// Config describes the application the client talks to.
type Config struct {
	// BaseURL is prepended to every relative path
	BaseURL string

	// Token, when set, is sent as a bearer token
	Token string

	// Timeout bounds a single request; zero disables it
	Timeout time.Duration
}

// Client performs plain GETs against the watched application and hands back
// JSON bodies. A non-2xx status is not a failure by itself: the body is parsed
// like any other, so error payloads from the application are displayed as-is.
type Client struct {
	http   *req.Client
	tokens oauth2.TokenSource
}

// NewClient creates a client for cfg.BaseURL.
func NewClient(cfg Config) *Client {
	c := req.C().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetUserAgent(UserAgent).
		SetLogger(logger.NewReqLogger("http client: "))

	var tokens oauth2.TokenSource
	if cfg.Token != "" {
		tokens = auth.NewTokenSource(cfg.Token)
	}

	return &Client{http: c, tokens: tokens}
}

// GetJSON fetches path and returns the body once it is known to be valid JSON.
// A leading UTF-8 byte order mark is removed from the returned body.
func (c *Client) GetJSON(ctx context.Context, path string) ([]byte, error) {
	r := c.http.R().SetContext(ctx)

	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrTokenSource, err)
		}
		r.SetHeader("Authorization", tok.Type()+" "+tok.AccessToken)
	}

	start := time.Now()
	resp, err := r.Get(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrHTTPRequest, err)
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrHTTPRequest, err)
	}
	logger.Debugf("GET %s -> %d (%d bytes in %v)", path, resp.StatusCode, len(body), time.Since(start))
	body = bytes.TrimPrefix(body, utf8BOM)

	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrJSONParse, err)
	}

	return body, nil
}

// GetInto fetches path and decodes the JSON body into v.
func (c *Client) GetInto(ctx context.Context, path string, v interface{}) error {
	body, err := c.GetJSON(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: %w", ErrJSONParse, err)
	}
	return nil
}

// Pretty re-indents a JSON document with a two-space indent, keeping key order.
// Values are kept verbatim, so duplicate keys are all shown.
func Pretty(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(bytes.TrimPrefix(raw, utf8BOM)), "", Indent); err != nil {
		return "", fmt.Errorf("%s: %w", ErrJSONParse, err)
	}
	return buf.String(), nil
}
