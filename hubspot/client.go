// Package hubspot is a small client for the HubSpot CRM v3 objects API,
// scoped to one object type.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultBaseURL is HubSpot's public API host.
	DefaultBaseURL = "https://api.hubapi.com"

	// DefaultObjectType is the custom object holding game records.
	DefaultObjectType = "2-57074073"

	// MaxPageSize is the largest page the list endpoint is asked for.
	MaxPageSize = 100
)

// Config holds what a Client needs. Token may be empty, in which case every
// call goes out unauthenticated and HubSpot rejects it.
type Config struct {
	Token      string
	ObjectType string
	BaseURL    string

	// HTTPClient defaults to a client with an otelhttp transport and no
	// timeout.
	HTTPClient *http.Client
}

// Client talks to /crm/v3/objects/{ObjectType}.
type Client struct {
	token      string
	objectType string
	baseURL    string
	httpClient *http.Client
	metrics    *clientMetrics
}

var _ Objects = (*Client)(nil)

// New builds a Client from cfg.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	objectType := strings.TrimSpace(cfg.ObjectType)
	if objectType == "" {
		return nil, ErrMissingObjectType
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	return &Client{
		token:      cfg.Token,
		objectType: objectType,
		baseURL:    baseURL,
		httpClient: httpClient,
		metrics:    newClientMetrics(),
	}, nil
}

// List fetches up to limit records with the named properties populated. A
// limit outside 1..MaxPageSize is treated as MaxPageSize.
func (c *Client) List(ctx context.Context, properties []string, limit int) ([]Object, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	query := url.Values{}
	if len(properties) > 0 {
		query.Set("properties", strings.Join(properties, ","))
	}
	query.Set("limit", strconv.Itoa(limit))

	var resp listResponse
	if err := c.do(ctx, "list", http.MethodGet, c.collectionPath(), query, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Results == nil {
		return []Object{}, nil
	}
	return resp.Results, nil
}

// Create makes a new record. HubSpot assigns the id.
func (c *Client) Create(ctx context.Context, properties map[string]string) (*Object, error) {
	var obj Object
	body := propertiesRequest{Properties: properties}
	if err := c.do(ctx, "create", http.MethodPost, c.collectionPath(), nil, body, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// Update patches the record with the given id.
func (c *Client) Update(ctx context.Context, id string, properties map[string]string) (*Object, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	var obj Object
	body := propertiesRequest{Properties: properties}
	if err := c.do(ctx, "update", http.MethodPatch, c.objectPath(id), nil, body, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// Delete archives the record with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	return c.do(ctx, "delete", http.MethodDelete, c.objectPath(id), nil, nil, nil)
}

func (c *Client) collectionPath() string {
	return "/crm/v3/objects/" + url.PathEscape(c.objectType)
}

func (c *Client) objectPath(id string) string {
	return c.collectionPath() + "/" + url.PathEscape(id)
}

// do sends one request and decodes a 2xx body into out. Anything else comes
// back as an *APIError.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	start := time.Now()
	status := 0
	defer func() {
		c.metrics.record(ctx, op, status, time.Since(start))
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("hubspot: encode %s body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("hubspot: build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hubspot: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("hubspot: read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Body:        data,
			ContentType: resp.Header.Get("Content-Type"),
			Method:      method,
			Path:        path,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("hubspot: decode %s response: %w", op, err)
	}
	return nil
}
