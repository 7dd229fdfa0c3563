// Package fetch reads changelog content from local files and HTTP(S) URLs.
package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/ariel-frischer/changelog-reader/internal/logging"
	"github.com/ariel-frischer/changelog-reader/internal/repourl"
)

const (
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 30 * time.Second
	// DefaultRetries is the number of retries for transient HTTP failures.
	DefaultRetries = 2

	// maxBodySize caps the bytes read from a response.
	maxBodySize = 10 << 20
)

// Fetcher returns the raw text at a location, which is either a local path
// or an http(s) URL.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// Options configures New.
type Options struct {
	Token              string
	InsecureSkipVerify bool
	Timeout            time.Duration
	Retries            int
	Logger             *logrus.Logger
	// HTTPClient overrides the underlying client. Used by tests.
	HTTPClient *http.Client
}

// Client is the default Fetcher.
type Client struct {
	token  string
	http   *retryablehttp.Client
	logger *logrus.Logger
}

// New builds a Client. Transient failures (connection errors and 5xx) are
// retried up to opts.Retries times; 4xx responses are returned immediately.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.Retries
	if rc.RetryMax < 0 {
		rc.RetryMax = 0
	}
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = logging.Leveled(logger)
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if opts.HTTPClient != nil {
		hc := *opts.HTTPClient
		rc.HTTPClient = &hc
	}
	rc.HTTPClient.Timeout = timeout

	if opts.InsecureSkipVerify {
		logger.Warn("SSL certificate validation is disabled. This is a security risk and should only be used with self-hosted instances with self-signed certificates.")
		transport, ok := rc.HTTPClient.Transport.(*http.Transport)
		if !ok || transport == nil {
			transport = http.DefaultTransport.(*http.Transport).Clone()
		} else {
			transport = transport.Clone()
		}
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		rc.HTTPClient.Transport = transport
	}

	return &Client{
		token:  opts.Token,
		http:   rc,
		logger: logger,
	}
}

// Fetch reads location. URLs go over HTTP, anything else is a local path.
func (c *Client) Fetch(ctx context.Context, location string) (string, error) {
	if repourl.IsURL(location) {
		return c.fetchURL(ctx, location)
	}
	return ReadFile(location)
}

// ReadFile reads a local changelog. Relative paths resolve against the
// working directory and a leading "~" is expanded.
func ReadFile(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}

	resolved, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Location: path}
		}
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}

	return string(data), nil
}

// fetchURL downloads a changelog. Blob URLs are rewritten to raw URLs first.
// A 401 with a token retries once with the "token" authorization scheme and
// a 404 retries once with the alternate raw URL shape.
func (c *Client) fetchURL(ctx context.Context, url string) (string, error) {
	rawURL := repourl.BlobToRaw(url)
	if rawURL != url {
		c.logger.WithField("url", rawURL).Info("converted blob URL to raw URL")
	}

	scheme := bearerAuth
	resp, err := c.get(ctx, rawURL, scheme)
	if err != nil {
		return "", fmt.Errorf("error fetching %s: %w", rawURL, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.token != "" {
		c.logger.Debug("bearer authorization rejected, retrying with token scheme")
		drain(resp)
		scheme = tokenAuth
		resp, err = c.get(ctx, rawURL, scheme)
		if err != nil {
			return "", fmt.Errorf("error fetching %s: %w", rawURL, err)
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		if body, ok := c.tryAlternate(ctx, rawURL, scheme); ok {
			drain(resp)
			return body, nil
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(rawURL, resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("error fetching %s: reading response: %w", rawURL, err)
	}

	return string(body), nil
}

// tryAlternate fetches the other raw URL shape once with the authorization
// scheme the first request ended up using. Any failure leaves the original
// 404 in place.
func (c *Client) tryAlternate(ctx context.Context, rawURL string, scheme authScheme) (string, bool) {
	alt, ok := repourl.AlternateRawURL(rawURL)
	if !ok {
		return "", false
	}

	c.logger.WithField("url", alt).Info("not found, trying alternate raw URL format")

	resp, err := c.get(ctx, alt, scheme)
	if err != nil {
		c.logger.WithError(err).Debug("alternate URL request failed")
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", false
	}
	return string(body), true
}

type authScheme int

const (
	bearerAuth authScheme = iota
	tokenAuth
)

func (c *Client) get(ctx context.Context, url string, scheme authScheme) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.token != "" {
		switch scheme {
		case tokenAuth:
			req.Header.Set("Authorization", "token "+c.token)
		default:
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"url":   url,
		"token": logging.MaskToken(c.token),
	}).Debug("requesting changelog")

	return c.http.Do(req)
}

// statusError converts a non-2xx response into a NotFoundError or
// StatusError. JSON error bodies contribute their message.
func statusError(url string, resp *http.Response) error {
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Location: url, Status: status}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &StatusError{
		URL:        url,
		StatusCode: resp.StatusCode,
		Status:     status,
		Message:    errorMessage(body),
	}
}

// errorMessage extracts a human-readable message from a JSON error body as
// returned by the GitHub, GitLab and Gitea APIs.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error_description", "error", "errors.0.message"} {
		if v := gjson.GetBytes(body, path); v.Exists() && v.Type == gjson.String {
			return strings.TrimSpace(v.String())
		}
	}
	return ""
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	resp.Body.Close()
}
