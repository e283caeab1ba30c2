// Package http implements the MediSeek HTTP transport: a single shared client
// carrying base URL, default headers, timeout, retry policy, interceptors,
// bearer-token injection, and per-identifier request cancellation.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mediseek-io/mediseek-client/internal/auth"
	"github.com/mediseek-io/mediseek-client/internal/constants"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the shared HTTP transport for all resource clients.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	interceptors *mediseek.InterceptorChain
	userAgent    string
	logger       Logger
	debug        bool

	// inflight tracks the one permitted request per identifier. A newer
	// request cancels the older one before it is sent (last-writer-wins).
	mu       sync.Mutex
	inflight map[string]*inflightEntry
	nextGen  uint64
}

type inflightEntry struct {
	cancel context.CancelCauseFunc
	gen    uint64
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes retries for transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors installs an additional interceptor chain.
func WithInterceptors(chain *mediseek.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new transport client. tokenManager may be nil for
// unauthenticated use.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    "mediseek-client/1.0",
		inflight:     make(map[string]*inflightEntry),
	}

	for _, opt := range opts {
		opt(client)
	}

	chain := mediseek.NewInterceptorChain()

	if tokenManager != nil {
		chain.AddRequestInterceptor(mediseek.AuthenticationInterceptor(tokenManager.GetToken))
		chain.AddResponseInterceptor(mediseek.UnauthorizedInterceptor(tokenManager.ClearToken))
	}

	if client.debug && client.logger != nil {
		chain.AddRequestInterceptor(mediseek.LoggingInterceptor(loggerShim{client.logger}))
		chain.AddResponseInterceptor(mediseek.LoggingResponseInterceptor(loggerShim{client.logger}))
	}

	if client.interceptors != nil {
		extra := client.interceptors
		chain.AddRequestInterceptor(extra.ExecuteRequestInterceptors)
		chain.AddResponseInterceptor(extra.ExecuteResponseInterceptors)
	}

	client.interceptors = chain

	return client
}

// loggerShim adapts the transport Logger to mediseek.Logger.
type loggerShim struct {
	l Logger
}

func (s loggerShim) Debug(msg string, fields map[string]interface{}) { s.l.Debug(msg, fields) }
func (s loggerShim) Info(msg string, fields map[string]interface{})  { s.l.Info(msg, fields) }
func (s loggerShim) Warn(msg string, fields map[string]interface{})  { s.l.Warn(msg, fields) }
func (s loggerShim) Error(msg string, fields map[string]interface{}) { s.l.Error(msg, fields) }

// Identifier derives the cancellation identifier for a request. Query
// parameters are serialized in sorted order so parameter maps that differ
// only in iteration order share an identifier.
func Identifier(method, path string, query url.Values) string {
	id := method + " " + path
	if encoded := query.Encode(); encoded != "" {
		id += "?" + encoded
	}

	return id
}

// register cancels any in-flight request under the same identifier and
// claims the slot for the new one.
func (c *Client) register(identifier string, cancel context.CancelCauseFunc) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.inflight[identifier]; ok {
		prev.cancel(&mediseek.CancelledError{Identifier: identifier})
	}

	c.nextGen++
	gen := c.nextGen
	c.inflight[identifier] = &inflightEntry{cancel: cancel, gen: gen}

	return gen
}

// release removes a request from the tracking map unless a newer request has
// already taken the slot.
func (c *Client) release(identifier string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.inflight[identifier]; ok && entry.gen == gen {
		delete(c.inflight, identifier)
	}
}

// Do executes a request and returns the raw response. Non-2xx statuses are
// returned as *mediseek.StatusError alongside the response; cancellations and
// connection failures come back as *mediseek.CancelledError and
// *mediseek.NetworkError respectively.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	identifier := Identifier(req.Method, req.Path, req.Query)

	reqCtx, cancel := context.WithCancelCause(ctx)
	gen := c.register(identifier, cancel)

	defer c.release(identifier, gen)
	defer cancel(nil)

	ireq := &mediseek.Request{
		Method:  req.Method,
		Path:    req.Path,
		Query:   req.Query.Encode(),
		Headers: make(http.Header),
	}

	var bodyBytes []byte

	if req.Body != nil {
		var err error

		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		ireq.Body = bodyBytes
	}

	err := c.interceptors.ExecuteRequestInterceptors(reqCtx, ireq)
	if err != nil {
		return nil, err
	}

	if cached := mediseek.CachedResponse(ireq); cached != nil {
		return &Response{
			StatusCode: cached.StatusCode,
			Headers:    cached.Headers,
			Body:       cached.Body,
		}, nil
	}

	httpReq, err := c.buildRequest(reqCtx, req, ireq, bodyBytes)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(reqCtx, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.transportError(reqCtx, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	iresp := &mediseek.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		iresp.Error = statusError(resp)
	}

	err = c.interceptors.ExecuteResponseInterceptors(reqCtx, ireq, iresp)
	if err != nil {
		return resp, err
	}

	if iresp.Error != nil {
		return resp, iresp.Error
	}

	return resp, nil
}

// buildRequest assembles the retryablehttp request with default and
// interceptor-provided headers.
func (c *Client) buildRequest(ctx context.Context, req *Request, ireq *mediseek.Request, body []byte) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, values := range ireq.Headers {
		for _, value := range values {
			httpReq.Header.Set(key, value)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// transportError classifies a failure that produced no response. A context
// cancelled by a newer request surfaces its CancelledError cause; everything
// else that reached the wire is a NetworkError.
func (c *Client) transportError(ctx context.Context, err error) error {
	cause := context.Cause(ctx)

	cancelled := &mediseek.CancelledError{}
	if errors.As(cause, &cancelled) {
		return cancelled
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &mediseek.NetworkError{Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &mediseek.NetworkError{Err: err}
	}

	return fmt.Errorf("sending request: %w", err)
}

// statusError maps a non-2xx response to a StatusError, preferring the
// message carried in the response envelope.
func statusError(resp *Response) error {
	serr := &mediseek.StatusError{StatusCode: resp.StatusCode}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &envelope) == nil {
		switch {
		case envelope.Message != "":
			serr.Message = envelope.Message
		case envelope.Error != "":
			serr.Message = envelope.Error
		}
	}

	return serr
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
