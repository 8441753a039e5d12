package client

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

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/shared"
)

// HTTPClient talks JSON over HTTP to the license service.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient returns a client bound to baseURL. timeout covers the whole
// request including body read.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

type checkoutRequest struct {
	DeviceID string `json:"device_id"`
	Mode     string `json:"mode"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

type licenseResponse struct {
	DeviceID    string     `json:"device_id"`
	Mode        string     `json:"mode"`
	Status      string     `json:"status"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	Token       string     `json:"token,omitempty"`
}

type snapshotRequest struct {
	DeviceID string `json:"device_id"`
}

type snapshotConfirmRequest struct {
	DeviceID string `json:"device_id"`
	Key      string `json:"key"`
}

type snapshotResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// errorMessage pulls a human-readable message out of an error body. The
// service answers either a plain {"error": ...} or an RFC 7807 problem
// document with "detail".
func errorMessage(body []byte, status string) string {
	var m struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &m); err == nil {
		if m.Error != "" {
			return m.Error
		}
		if m.Detail != "" {
			return m.Detail
		}
	}
	return status
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s", ErrRejected, errorMessage(b, resp.Status))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, deviceID string, mode models.LicenseMode) (string, error) {
	var resp checkoutResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/checkout", "",
		checkoutRequest{DeviceID: deviceID, Mode: string(mode)}, &resp)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) GetLicense(ctx context.Context, deviceID string) (*License, error) {
	var resp licenseResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/licenses/"+url.PathEscape(deviceID), "", nil, &resp)
	if err != nil {
		return nil, err
	}

	mode, err := models.ParseLicenseMode(resp.Mode)
	if err != nil {
		return nil, fmt.Errorf("license for %s: %w", deviceID, err)
	}

	return &License{
		DeviceID:    resp.DeviceID,
		Mode:        mode,
		Status:      resp.Status,
		ActivatedAt: resp.ActivatedAt,
		Token:       resp.Token,
	}, nil
}

func (c *HTTPClient) RequestSnapshotUpload(ctx context.Context, deviceID, token string) (*SnapshotTarget, error) {
	var resp snapshotResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/snapshots", token,
		snapshotRequest{DeviceID: deviceID}, &resp)
	if err != nil {
		return nil, err
	}
	return &SnapshotTarget{URL: resp.URL, Key: resp.Key}, nil
}

func (c *HTTPClient) ConfirmSnapshot(ctx context.Context, deviceID, token, key string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/snapshots/confirm", token,
		snapshotConfirmRequest{DeviceID: deviceID, Key: key}, nil)
}
