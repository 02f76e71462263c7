package nessusapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/user/nessus2csv/pkg/logger"
)

const DefaultRequestTimeout = 60 * time.Second

// APIError is returned for any non-200 response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("nessus api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("nessus api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Nessus REST API using API key authentication.
type Client struct {
	BaseURL   string
	AccessKey string
	SecretKey string
	HTTP      *http.Client
}

// NewClient builds a client for baseURL. insecure disables certificate checks,
// which self-signed scanner installs usually need.
func NewClient(baseURL, accessKey, secretKey string, insecure bool) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		AccessKey: accessKey,
		SecretKey: secretKey,
		HTTP:      &http.Client{Transport: transport, Timeout: DefaultRequestTimeout},
	}
}

func (c *Client) apiKeys() string {
	return fmt.Sprintf("accessKey=%s; secretKey=%s", c.AccessKey, c.SecretKey)
}

// do sends a request and returns the raw body of a 200 response.
func (c *Client) do(ctx context.Context, method, resource string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+resource, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-ApiKeys", c.apiKeys())

	logger.Debugf("%s %s", method, resource)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", method, resource)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s response", resource)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return nil, apiErr
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, method, resource string, payload, out interface{}) error {
	data, err := c.do(ctx, method, resource, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", resource)
	}
	return nil
}

// ListScans returns every folder and scan visible to the API keys.
func (c *Client) ListScans(ctx context.Context) (*ScanList, error) {
	var list ScanList
	if err := c.getJSON(ctx, http.MethodGet, "/scans", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Export requests an export of scanID in format and returns the export file id.
func (c *Client) Export(ctx context.Context, scanID int, format string) (int, error) {
	var resp struct {
		File int `json:"file"`
	}
	payload := map[string]string{"format": format}
	if err := c.getJSON(ctx, http.MethodPost, fmt.Sprintf("/scans/%d/export", scanID), payload, &resp); err != nil {
		return 0, err
	}
	return resp.File, nil
}

// ExportStatus reports whether the export is ready for download.
func (c *Client) ExportStatus(ctx context.Context, scanID, fileID int) (bool, error) {
	var resp struct {
		Status string `json:"status"`
	}
	resource := fmt.Sprintf("/scans/%d/export/%d/status", scanID, fileID)
	if err := c.getJSON(ctx, http.MethodGet, resource, nil, &resp); err != nil {
		return false, err
	}
	return resp.Status == "ready", nil
}

// WaitForExport polls the export status every interval until it is ready or ctx ends.
func (c *Client) WaitForExport(ctx context.Context, scanID, fileID int, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ready, err := c.ExportStatus(ctx, scanID, fileID)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		logger.Debugf("export %d of scan %d not ready, waiting %s", fileID, scanID, interval)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Download fetches the finished export.
func (c *Client) Download(ctx context.Context, scanID, fileID int) ([]byte, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/scans/%d/export/%d/download", scanID, fileID), nil)
}
