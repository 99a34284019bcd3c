package referencedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

const (
	defaultTimeout           = 10 * time.Second
	errorBodyReadLimit int64 = 1024
)

var errBaseURLRequired = errors.New("reference data base URL is required")

// Client fetches facility, orderable and processing period resources from
// the reference data service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithAuthToken sets the bearer token attached to every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = strings.TrimSpace(token)
	}
}

// NewClient builds the reference data client given a base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return client, nil
}

// Facility fetches a facility by ID. A missing facility returns nil, nil.
func (c *Client) Facility(ctx context.Context, id uuid.UUID) (*Facility, error) {
	var facility Facility
	found, err := c.get(ctx, fmt.Sprintf("api/facilities/%s", id), &facility)
	if err != nil || !found {
		return nil, err
	}
	return &facility, nil
}

// Orderable fetches an orderable by ID. A missing orderable returns nil, nil.
func (c *Client) Orderable(ctx context.Context, id uuid.UUID) (*Orderable, error) {
	var orderable Orderable
	found, err := c.get(ctx, fmt.Sprintf("api/orderables/%s", id), &orderable)
	if err != nil || !found {
		return nil, err
	}
	return &orderable, nil
}

// ProcessingPeriod fetches a processing period by ID. A missing period returns nil, nil.
func (c *Client) ProcessingPeriod(ctx context.Context, id uuid.UUID) (*ProcessingPeriod, error) {
	var period ProcessingPeriod
	found, err := c.get(ctx, fmt.Sprintf("api/processingPeriods/%s", id), &period)
	if err != nil || !found {
		return nil, err
	}
	return &period, nil
}

func (c *Client) get(ctx context.Context, path string, out any) (bool, error) {
	if c == nil {
		return false, pkgerrors.New(pkgerrors.CodeDependency, "reference data client not configured")
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build reference data request")
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute reference data request")
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "reference data request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode reference data response")
	}
	return true, nil
}
