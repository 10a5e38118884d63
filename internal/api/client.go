package api

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

	"github.com/muurk/wallet-setup/internal/logging"
	"github.com/muurk/wallet-setup/internal/version"
)

const (
	// DefaultBaseURL is where the wallet app backend serves its REST API
	DefaultBaseURL = "http://127.0.0.1:8082/api/"

	// DefaultTimeout is the default HTTP request timeout. Setting a password
	// waits for the user to confirm on the device, so it is generous.
	DefaultTimeout = 2 * time.Minute

	// maxResponseSize caps how much of a response body is read
	maxResponseSize = 1 << 20
)

// Client talks to the wallet app backend's REST API
type Client struct {
	// BaseURL is the API root (e.g., "http://127.0.0.1:8082/api/")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a new backend client rooted at baseURL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetPassword asks the backend to initialize the device with password.
// A response with Success=false is returned without an error; only
// transport, HTTP and decoding failures produce an error. The request is
// sent exactly once.
func (c *Client) SetPassword(ctx context.Context, deviceID string, password string) (*SetPasswordResponse, error) {
	if deviceID == "" {
		return nil, NewValidationError("device ID is required")
	}

	var resp SetPasswordResponse
	path := "devices/" + url.PathEscape(deviceID) + "/set-password"
	if err := c.post(ctx, path, &SetPasswordRequest{Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisteredDevices lists the devices currently attached to the backend
func (c *Client) RegisteredDevices(ctx context.Context) (RegisteredDevices, error) {
	devices := RegisteredDevices{}
	if err := c.get(ctx, "devices/registered", &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// Ping checks that the backend is reachable
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.RegisteredDevices(ctx)
	return err
}

// URL resolves an API path against BaseURL
func (c *Client) URL(path string) (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", NewValidationError(fmt.Sprintf("invalid base URL %q: %v", c.BaseURL, err))
	}
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", NewValidationError(fmt.Sprintf("invalid path %q: %v", path, err))
	}
	return base.ResolveReference(ref).String(), nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in interface{}, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return NewValidationError(fmt.Sprintf("failed to encode request: %v", err))
	}
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do performs a single request and decodes a JSON response into out
func (c *Client) do(ctx context.Context, method string, path string, body []byte, out interface{}) error {
	target, err := c.URL(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return NewNetworkError("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.LogAPIRequest(method, target)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return NewNetworkError("failed to read response body", err)
	}

	logging.LogAPIResponse(method, target, resp.StatusCode, len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return NewHTTPError(resp.StatusCode, fmt.Sprintf("%s %s returned %d: %s", method, path, resp.StatusCode, msg))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewParseError("failed to parse JSON response", err)
	}
	return nil
}
