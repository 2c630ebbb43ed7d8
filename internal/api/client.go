package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	HeaderRequestID     = "X-Request-Id"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	MIMEApplicationJSON = "application/json"

	loggingRequestIDKey = "request_id"
	loggingMethodKey    = "method"
	loggingURLKey       = "url"
	loggingStatusKey    = "status"
)

// TokenSource yields the bearer token for a request. An empty token means
// the request goes out unauthenticated.
type TokenSource func() (string, error)

// Client talks to the health-tracking REST API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	token   TokenSource
	timeout time.Duration
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(perSecond int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		timeout: 15 * time.Second,
		log:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Appointments() *Appointments { return &Appointments{c: c} }
func (c *Client) Treatments() *Treatments     { return &Treatments{c: c} }

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestID := uuid.NewString()
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	c.log.Debug("api.Client.do called",
		zap.String(loggingRequestIDKey, requestID),
		zap.String(loggingMethodKey, method),
		zap.String(loggingURLKey, u),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s %s: rate limit: %w", method, path, err)
		}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: marshal: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	req.Header.Set(HeaderAccept, MIMEApplicationJSON)
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set(HeaderContentType, MIMEApplicationJSON)
	}
	if c.token != nil {
		tok, err := c.token()
		if err != nil {
			return fmt.Errorf("%s %s: token: %w", method, path, err)
		}
		if tok != "" {
			req.Header.Set(HeaderAuthorization, "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api.Client.do error sending HTTP request",
			zap.String(loggingRequestIDKey, requestID),
			zap.String(loggingURLKey, u),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp, method, path)
		apiErr.RequestID = requestID
		c.log.Warn("api.Client.do non-success response",
			zap.String(loggingRequestIDKey, requestID),
			zap.String(loggingURLKey, u),
			zap.Int(loggingStatusKey, resp.StatusCode),
			zap.Strings("messages", apiErr.Messages),
		)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Error("api.Client.do error decoding response",
				zap.String(loggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return fmt.Errorf("%s %s: decode: %w", method, path, err)
		}
	}

	c.log.Debug("api.Client.do succeeded",
		zap.String(loggingRequestIDKey, requestID),
		zap.Int(loggingStatusKey, resp.StatusCode),
	)
	return nil
}
