package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/supercrawl/internal/model"
)

// DefaultUserAgent is sent with every request unless WithUserAgent overrides it.
const DefaultUserAgent = "supercrawl-client/1.0"

// maxBodySize caps how much of a response body is read.
const maxBodySize int64 = 10 * 1024 * 1024

// Client talks to the SuperCrawl backend.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	// baseURL is the API root without a trailing slash.
	baseURL string

	httpClient *http.Client
	userAgent  string
	headers    map[string]string
	proxyAddr  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
// WithProxy is ignored when a custom HTTP client is supplied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithProxy routes every request through a SOCKS5 proxy.
// The address is either "host:port" or a socks5:// URL with optional credentials.
func WithProxy(addr string) Option {
	return func(c *Client) {
		c.proxyAddr = addr
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeaders adds headers to every request, e.g. an API key for a gateway
// in front of the backend.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the API rooted at baseURL,
// e.g. "http://localhost:5000".
//
// No connection is made here; an unreachable backend surfaces as a
// *TransportError from the first call.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(u.String(), "/"),
		userAgent: DefaultUserAgent,
		headers:   make(map[string]string),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if c.proxyAddr != "" {
			dialer, err := socksDialer(c.proxyAddr)
			if err != nil {
				return nil, err
			}
			transport.Proxy = nil
			transport.DialContext = dialContext(dialer)
		}
		c.httpClient = &http.Client{Transport: transport}
	}

	if len(c.headers) > 0 {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		hc := *c.httpClient
		hc.Transport = &headerInjectingTransport{base: base, headers: c.headers}
		c.httpClient = &hc
	}

	return c, nil
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// socksDialer builds a SOCKS5 dialer from "host:port" or a socks5:// URL.
func socksDialer(addr string) (proxy.Dialer, error) {
	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, addr)
		}
		if u.Scheme != "socks5" && u.Scheme != "socks5h" {
			return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidProxy, u.Scheme)
		}
		d, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProxy, err)
		}
		return d, nil
	}

	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, addr)
	}
	d, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}
	return d, nil
}

// dialContext adapts a proxy.Dialer to http.Transport.DialContext.
// Dialers that cannot take a context are run in a goroutine so that
// cancellation still unblocks the caller.
func dialContext(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type result struct {
			conn net.Conn
			err  error
		}
		done := make(chan result, 1)
		go func() {
			conn, err := d.Dial(network, addr)
			done <- result{conn, err}
		}()
		select {
		case <-ctx.Done():
			go func() {
				if r := <-done; r.conn != nil {
					r.conn.Close()
				}
			}()
			return nil, ctx.Err()
		case r := <-done:
			return r.conn, r.err
		}
	}
}

// headerInjectingTransport adds fixed headers to each request.
type headerInjectingTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
// The request is cloned because a RoundTripper must not modify its input.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

// CreateProject registers a new project for domain, owned by userID.
// The domain is sent as given; callers validate it beforehand.
func (c *Client) CreateProject(ctx context.Context, domain, userID string) (model.Project, error) {
	const op = "create project"
	req := model.CreateProjectRequest{Domain: domain, UserID: userID}

	var p model.Project
	raw, te := c.do(ctx, op, http.MethodPost, "/projects", req)
	if te != nil {
		return model.Project{}, te
	}
	if err := decodeObject(raw.body, &p); err != nil {
		return model.Project{}, raw.fail(err)
	}
	if err := p.Validate(); err != nil {
		return model.Project{}, raw.fail(err)
	}
	return p, nil
}

// StartCrawl asks the backend to enqueue a crawl of the project.
// The returned acknowledgment only confirms the job was accepted.
func (c *Client) StartCrawl(ctx context.Context, projectID string) (model.CrawlAck, error) {
	const op = "start crawl"
	if projectID == "" {
		return model.CrawlAck{}, fmt.Errorf("%s: %w", op, ErrEmptyProjectID)
	}

	raw, te := c.do(ctx, op, http.MethodPost, "/projects/"+url.PathEscape(projectID)+"/crawl", nil)
	if te != nil {
		return model.CrawlAck{}, te
	}
	var ack model.CrawlAck
	if err := decodeObject(raw.body, &ack); err != nil {
		return model.CrawlAck{}, raw.fail(err)
	}
	return ack, nil
}

// ListProjects returns every project in backend order.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	const op = "list projects"
	raw, te := c.do(ctx, op, http.MethodGet, "/projects", nil)
	if te != nil {
		return nil, te
	}
	var projects []model.Project
	if err := decodeList(raw.body, &projects); err != nil {
		return nil, raw.fail(err)
	}
	for i := range projects {
		if err := projects[i].Validate(); err != nil {
			return nil, raw.fail(fmt.Errorf("item %d: %w", i, err))
		}
	}
	return projects, nil
}

// ListIssues returns the issues found for a project in backend order.
func (c *Client) ListIssues(ctx context.Context, projectID string) ([]model.Issue, error) {
	const op = "list issues"
	if projectID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyProjectID)
	}
	raw, te := c.do(ctx, op, http.MethodGet, "/projects/"+url.PathEscape(projectID)+"/issues", nil)
	if te != nil {
		return nil, te
	}
	var issues []model.Issue
	if err := decodeList(raw.body, &issues); err != nil {
		return nil, raw.fail(err)
	}
	for i := range issues {
		if err := issues[i].Validate(); err != nil {
			return nil, raw.fail(fmt.Errorf("item %d: %w", i, err))
		}
	}
	return issues, nil
}

// ListPages returns the pages crawled for a project in backend order.
func (c *Client) ListPages(ctx context.Context, projectID string) ([]model.Page, error) {
	const op = "list pages"
	if projectID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyProjectID)
	}
	raw, te := c.do(ctx, op, http.MethodGet, "/projects/"+url.PathEscape(projectID)+"/pages", nil)
	if te != nil {
		return nil, te
	}
	var pages []model.Page
	if err := decodeList(raw.body, &pages); err != nil {
		return nil, raw.fail(err)
	}
	for i := range pages {
		if err := pages[i].Validate(); err != nil {
			return nil, raw.fail(fmt.Errorf("item %d: %w", i, err))
		}
	}
	return pages, nil
}

// Health queries the backend health endpoint.
func (c *Client) Health(ctx context.Context) (model.Health, error) {
	const op = "health"
	raw, te := c.do(ctx, op, http.MethodGet, "/health", nil)
	if te != nil {
		return model.Health{}, te
	}
	var h model.Health
	if err := decodeObject(raw.body, &h); err != nil {
		return model.Health{}, raw.fail(err)
	}
	return h, nil
}

// response is a successful (2xx) round trip whose body is not yet decoded.
type response struct {
	op, method, url string
	status          int
	body            []byte
}

// fail wraps a decode or validation error as a TransportError.
func (r response) fail(err error) *TransportError {
	return &TransportError{
		Op:         r.op,
		Method:     r.method,
		URL:        r.url,
		StatusCode: r.status,
		Body:       string(r.body),
		Err:        err,
	}
}

// do performs one request. A nil in means no request body.
// Any non-2xx status is returned as a TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, in any) (response, *TransportError) {
	target := c.baseURL + path
	te := &TransportError{Op: op, Method: method, URL: target}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			te.Err = fmt.Errorf("encode request: %w", err)
			return response{}, te
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		te.Err = err
		return response{}, te
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "method", method, "url", target, "error", err)
		te.Err = err
		return response{}, te
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		te.StatusCode = resp.StatusCode
		te.Err = fmt.Errorf("read body: %w", err)
		return response{}, te
	}

	c.logger.Debug("request completed",
		"op", op,
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		te.StatusCode = resp.StatusCode
		te.Body = string(data)
		te.Message = errorMessage(data)
		return response{}, te
	}

	return response{op: op, method: method, url: target, status: resp.StatusCode, body: data}, nil
}

// errorMessage extracts the text of a {"error": "..."} body.
func errorMessage(data []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return ""
	}
	return e.Error
}

var (
	errNotObject = errors.New("expected a JSON object")
	errNotArray  = errors.New("expected a JSON array")
)

// decodeObject decodes a JSON object. null and other shapes are rejected.
func decodeObject(data []byte, v any) error {
	if first(data) != '{' {
		return errNotObject
	}
	return json.Unmarshal(data, v)
}

// decodeList decodes a JSON array. null and other shapes are rejected.
func decodeList(data []byte, v any) error {
	if first(data) != '[' {
		return errNotArray
	}
	return json.Unmarshal(data, v)
}

// first returns the first non-whitespace byte of data, or 0.
func first(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
