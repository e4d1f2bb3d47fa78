package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/assetsync/pkg/errors"
	"github.com/matzehuels/assetsync/pkg/observability"
)

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 512

// Client provides shared HTTP functionality for remote API clients.
// It applies default headers and maps status codes to coded errors.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given HTTP client and default headers.
// Headers are applied to all requests made through this client.
// A nil httpClient uses [NewHTTPClient] with the default timeout.
func NewClient(httpClient *http.Client, headers map[string]string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{
		http:    httpClient,
		headers: headers,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Wrap(errors.ErrCodeInvalidResponse, err, "decode response from %s", redact(url))
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "create request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", redact(rawURL))
	}
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s not found", redact(resp.Request.URL.String()))
	case code == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeUnauthorized, "status %d: %s", code, errorBody(resp))
	case code == http.StatusTooManyRequests,
		code == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		rl := &errors.RateLimitedError{Message: errorBody(resp)}
		rl.RetryAfter, _ = strconv.Atoi(resp.Header.Get("Retry-After"))
		return errors.Wrap(errors.ErrCodeRateLimited, rl, "status %d", code)
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d: %s", code, errorBody(resp))
	}
}

func errorBody(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return string(data)
}

// redact drops the query string, which may carry credentials.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

// IsNotFound reports whether err is a 404 from the remote API.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrCodeNotFound)
}

