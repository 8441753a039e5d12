package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/decolog/decolog/internal/server/config"
	"github.com/decolog/decolog/internal/server/models"
	"github.com/decolog/decolog/internal/shared"
)

const requestTimeout = 10 * time.Second

// Provider creates hosted checkout sessions with the payment provider.
// One price id per purchasable mode; a missing secret or price id means
// checkout is not configured for this deployment.
type Provider struct {
	baseURL string
	secret  string
	prices  map[string]string
	hc      *http.Client
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(cfg.CheckoutBaseURL, "/"),
		secret:  cfg.CheckoutSecret,
		prices: map[string]string{
			models.ModePro:   cfg.CheckoutPriceIDPro,
			models.ModeCloud: cfg.CheckoutPriceIDCloud,
		},
		hc: &http.Client{Timeout: requestTimeout},
	}
}

type sessionRequest struct {
	PriceID   string `json:"price_id"`
	Reference string `json:"reference"`
}

type sessionResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CreateSession asks the provider for a checkout URL for the given device
// and mode. The device id travels as the session reference so the
// completed-checkout webhook can be tied back to the device.
func (p *Provider) CreateSession(ctx context.Context, deviceID string, mode string) (string, error) {
	if p.baseURL == "" || p.secret == "" {
		return "", fmt.Errorf("checkout provider: %w", shared.ErrNotConfigured)
	}

	priceID := p.prices[mode]
	if priceID == "" {
		return "", fmt.Errorf("checkout price for %s: %w", mode, shared.ErrNotConfigured)
	}

	body, err := json.Marshal(sessionRequest{PriceID: priceID, Reference: deviceID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.secret)

	resp, err := p.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var session sessionResponse
	if err := json.Unmarshal(data, &session); err != nil {
		return "", fmt.Errorf("checkout provider: unexpected response: %s", http.StatusText(resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK {
		if session.Error != "" {
			return "", fmt.Errorf("checkout provider: %s", session.Error)
		}
		return "", fmt.Errorf("checkout provider: %s", http.StatusText(resp.StatusCode))
	}

	if session.URL == "" {
		return "", fmt.Errorf("checkout provider: empty session url")
	}

	return session.URL, nil
}
