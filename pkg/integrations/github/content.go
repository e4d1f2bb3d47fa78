package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/matzehuels/assetsync/pkg/errors"
	"github.com/matzehuels/assetsync/pkg/integrations"
)

const (
	// DefaultBaseURL is the public GitHub REST API endpoint.
	DefaultBaseURL = "https://api.github.com"

	// DefaultUserAgent identifies assetsync to the GitHub API.
	DefaultUserAgent = "bevy-tools"

	// EncodingBase64 is the only content encoding the client decodes.
	EncodingBase64 = "base64"
)

// ContentClient provides access to GitHub repository content.
// A single client is meant to be reused for all requests of a run.
type ContentClient struct {
	*integrations.Client
	baseURL string
}

type clientOptions struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a [ContentClient].
type Option func(*clientOptions)

// WithBaseURL points the client at another API endpoint, such as a test
// server or a GitHub Enterprise instance.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = strings.TrimSuffix(u, "/") }
}

// WithUserAgent overrides [DefaultUserAgent].
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client. It takes precedence
// over [WithTimeout].
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// NewContentClient creates a new content client with the given access token.
func NewContentClient(token string, opts ...Option) *ContentClient {
	o := clientOptions{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = integrations.NewHTTPClient(o.timeout)
	}

	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": o.userAgent,
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &ContentClient{
		Client:  integrations.NewClient(o.httpClient, headers),
		baseURL: o.baseURL,
	}
}

// BaseURL returns the API endpoint the client talks to.
func (c *ContentClient) BaseURL() string { return c.baseURL }

// FetchFile retrieves the content of a file from a repository.
// The content is returned as a string (decoded from base64).
func (c *ContentClient) FetchFile(ctx context.Context, owner, repo, path string) (*FileContent, error) {
	if err := errors.ValidateRepoPath(path); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)

	var fileResp apiContentResponse
	if err := c.Get(ctx, url, &fileResp); err != nil {
		return nil, err
	}

	if fileResp.Encoding != EncodingBase64 {
		return nil, errors.New(errors.ErrCodeUnsupportedEncoding,
			"%s/%s/%s: content is not base64 (encoding %q)", owner, repo, path, fileResp.Encoding)
	}

	content, err := DecodeContent(fileResp.Content)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidResponse, err, "%s/%s/%s", owner, repo, path)
	}

	return &FileContent{
		Owner:   owner,
		Repo:    repo,
		Path:    fileResp.Path,
		Size:    fileResp.Size,
		Content: content,
	}, nil
}

// DecodeContent decodes the base64 payload of a contents response. The API
// wraps the payload in newlines, which are removed together with any
// surrounding whitespace before decoding.
func DecodeContent(s string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(strings.ReplaceAll(s, "\n", "")))
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("content is not valid UTF-8")
	}
	return string(raw), nil
}
