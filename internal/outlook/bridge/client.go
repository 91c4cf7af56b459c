package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mailscope/mailscope/internal/instrumentation"
	"github.com/mailscope/mailscope/internal/logging"
	"github.com/mailscope/mailscope/internal/outlook"
)

// DefaultBaseURL is where the bridge listens when started with its stock
// configuration.
const DefaultBaseURL = "http://127.0.0.1:8720"

const defaultTimeout = 30 * time.Second

// Client talks to the Outlook bridge over HTTP and implements
// outlook.Store.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
	log     logging.Logger
	metrics *instrumentation.Metrics
}

var _ outlook.Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithToken sets a bearer token sent with every request. Empty means no
// authentication, which is fine for a loopback-only bridge.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger replaces the logger used for per-operation debug logging.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics enables bridge operation metrics on the client.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a bridge client for the given base URL. An empty URL
// selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bridge URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid bridge URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: defaultTimeout},
		log:     logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// apiError is the JSON error envelope the bridge returns on non-2xx
// responses.
type apiError struct {
	Error string `json:"error"`
}

// do sends one request and decodes the response into out (when non-nil).
// notFound is returned, wrapped with the server's message, on a 404.
func (c *Client) do(ctx context.Context, method, path string, in, out any, notFound error) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("bridge request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %s", notFound, apiErr.Error)
		}
		return notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("bridge returned %d for %s: %s", resp.StatusCode, path, apiErr.Error)
		}
		return fmt.Errorf("bridge returned %d for %s", resp.StatusCode, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}

// instrument wraps one bridge operation with a client span, operation
// metrics, and a debug log line.
func (c *Client) instrument(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := instrumentation.StartBridgeSpan(ctx, op)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}

	if c.metrics != nil {
		c.metrics.RecordBridgeOperation(ctx, op, status, duration)
	}
	c.log.Debug("bridge operation",
		logging.KeyOperation, op,
		logging.KeyStatus, status,
		logging.KeyDuration, duration,
	)
	return err
}

// ListFolders implements outlook.Store.
func (c *Client) ListFolders(ctx context.Context) ([]outlook.StoreFolders, error) {
	var out struct {
		Stores []outlook.StoreFolders `json:"stores"`
	}
	err := c.instrument(ctx, instrumentation.BridgeOpListFolders, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, "/v1/folders", nil, &out, nil)
	})
	if err != nil {
		return nil, err
	}
	return out.Stores, nil
}

type searchMessagesRequest struct {
	Store         string `json:"store,omitempty"`
	Folder        string `json:"folder,omitempty"`
	Filter        string `json:"filter,omitempty"`
	MaxResults    int    `json:"max_results"`
	EarliestFirst bool   `json:"earliest_first"`
	MailOnly      bool   `json:"mail_only"`
}

// SearchMessages implements outlook.Store. A 404 from the bridge means the
// store or folder did not match and maps to outlook.ErrFolderNotFound.
func (c *Client) SearchMessages(ctx context.Context, scope outlook.Scope, filter string, opts outlook.SearchOptions) ([]outlook.MessageRow, error) {
	in := searchMessagesRequest{
		Store:         scope.Store,
		Folder:        scope.Folder,
		Filter:        filter,
		MaxResults:    opts.MaxResults,
		EarliestFirst: opts.EarliestFirst,
		MailOnly:      opts.MailOnly,
	}
	var out struct {
		Rows []outlook.MessageRow `json:"rows"`
	}
	err := c.instrument(ctx, instrumentation.BridgeOpSearchMessages, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, "/v1/messages/search", in, &out, outlook.ErrFolderNotFound)
	})
	if err != nil {
		return nil, err
	}
	return out.Rows, nil
}

type expandCalendarRequest struct {
	Restriction string `json:"restriction"`
}

// ExpandCalendar implements outlook.Store. The bridge sorts the calendar
// ascending and enables recurrence expansion before applying the
// restriction, so occurrences come back in start order.
func (c *Client) ExpandCalendar(ctx context.Context, restriction string) ([]outlook.Occurrence, error) {
	var out struct {
		Occurrences []outlook.Occurrence `json:"occurrences"`
	}
	err := c.instrument(ctx, instrumentation.BridgeOpExpandCalendar, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, "/v1/calendar/expand", expandCalendarRequest{Restriction: restriction}, &out, nil)
	})
	if err != nil {
		return nil, err
	}
	return out.Occurrences, nil
}

// GetItem implements outlook.Store. A 404 maps to outlook.ErrItemNotFound.
func (c *Client) GetItem(ctx context.Context, entryID string) (*outlook.Item, error) {
	var out outlook.Item
	path := "/v1/items/" + url.PathEscape(entryID)
	err := c.instrument(ctx, instrumentation.BridgeOpGetItem, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, path, nil, &out, outlook.ErrItemNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
