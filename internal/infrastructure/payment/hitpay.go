// Package payment implements the HitPay payment-request API client.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mps-sg/bookspace-api/internal/config"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
)

const apiKeyHeader = "X-BUSINESS-API-KEY"

// CreateRequest is the payload for creating a payment request. Optional
// fields carry omitempty so absent values are dropped entirely; the
// provider rejects explicit nulls.
type CreateRequest struct {
	Amount                string   `json:"amount"`
	Currency              string   `json:"currency"`
	Email                 string   `json:"email,omitempty"`
	Name                  string   `json:"name,omitempty"`
	Purpose               string   `json:"purpose,omitempty"`
	ReferenceNumber       string   `json:"reference_number,omitempty"`
	RedirectURL           string   `json:"redirect_url,omitempty"`
	Webhook               string   `json:"webhook,omitempty"`
	PaymentMethods        []string `json:"payment_methods,omitempty"`
	Phone                 string   `json:"phone,omitempty"`
	SendEmail             bool     `json:"send_email"`
	SendSMS               bool     `json:"send_sms"`
	AllowRepeatedPayments bool     `json:"allow_repeated_payments"`
}

// PaymentRequest is the provider's canonical payment-request record
type PaymentRequest struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Purpose         string `json:"purpose"`
	ReferenceNumber string `json:"reference_number"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	URL             string `json:"url"`
}

// Client calls the hosted payment-request API
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a payment API client with a bounded request timeout
func NewClient(cfg *config.PaymentConfig) *Client {
	return &Client{
		baseURL: cfg.APIURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// CreatePaymentRequest creates a hosted payment request and returns the
// record including the checkout URL the customer is redirected to.
func (c *Client) CreatePaymentRequest(ctx context.Context, req *CreateRequest) (*PaymentRequest, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment-requests", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("payment request rejected: HTTP %d: %s", resp.StatusCode, data)
	}

	var pr PaymentRequest
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode payment request response: %w", err)
	}
	return &pr, nil
}

// GetPaymentRequest fetches the canonical payment-request record. Any
// failure (network, non-2xx, malformed body) is reported as an upstream
// lookup failure so callers can degrade gracefully.
func (c *Client) GetPaymentRequest(ctx context.Context, id string) (*PaymentRequest, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payment-requests/"+id, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUpstreamLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", apperror.ErrUpstreamLookup, resp.StatusCode)
	}

	var pr PaymentRequest
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUpstreamLookup, err)
	}
	return &pr, nil
}

// FormatCents renders an integer-cents amount as the decimal string the
// provider expects, e.g. 17440 -> "174.40".
func FormatCents(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}
