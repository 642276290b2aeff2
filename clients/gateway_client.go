package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

// GatewayError carries the gateway's human-readable decline reason. The
// message is surfaced to the user verbatim.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string { return e.Message }

// GatewayClient talks to the payment gateway to confirm an intent that
// the backend already created.
type GatewayClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewGatewayClient(baseURL, secretKey string, timeout time.Duration) *GatewayClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GatewayClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type confirmRequest struct {
	ClientSecret      string             `json:"clientSecret"`
	PaymentMethodType string             `json:"paymentMethodType"`
	Card              models.CardDetails `json:"card"`
}

type confirmResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ConfirmIntent confirms a payment intent with the collected card. A
// gateway decline comes back as *GatewayError; anything else is a
// transport-level failure.
func (c *GatewayClient) ConfirmIntent(ctx context.Context, clientSecret string, card models.CardDetails) error {
	body, err := json.Marshal(confirmRequest{
		ClientSecret:      clientSecret,
		PaymentMethodType: "Card",
		Card:              card,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents/confirm", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build confirm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secretKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	var out confirmResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unexpected gateway response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil && out.Error.Message != "" {
		return &GatewayError{Message: out.Error.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected gateway status %d: %s", resp.StatusCode, string(data))
	}
	if !strings.EqualFold(out.Status, "succeeded") {
		return &GatewayError{Message: fmt.Sprintf("payment not completed (status %q)", out.Status)}
	}
	return nil
}
