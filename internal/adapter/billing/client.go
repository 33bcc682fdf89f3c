// Package billing provides the payment collaborator: a server-side
// receipt-verification client for tier purchases.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"minar-ads/internal/core/port"
)

// Client implements port.PaymentProvider against a verification endpoint.
type Client struct {
	verifyURL string
	http      *http.Client
}

// NewClient builds a billing client for the given verification endpoint.
func NewClient(verifyURL string, timeout time.Duration) *Client {
	return &Client{
		verifyURL: verifyURL,
		http:      &http.Client{Timeout: timeout},
	}
}

type verifyRequest struct {
	ProductID string `json:"product_id"`
}

type verifyResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// Purchase asks the verification endpoint to settle the product purchase
// and maps its status into the port's taxonomy. Unknown statuses are
// reported as unverified rather than guessed at.
func (c *Client) Purchase(ctx context.Context, productID string) (port.PurchaseResult, error) {
	body, err := json.Marshal(verifyRequest{ProductID: productID})
	if err != nil {
		return port.PurchaseResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(body))
	if err != nil {
		return port.PurchaseResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return port.PurchaseResult{}, fmt.Errorf("purchase request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return port.PurchaseResult{}, fmt.Errorf("purchase request: unexpected status %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return port.PurchaseResult{}, fmt.Errorf("purchase response: %w", err)
	}

	result := port.PurchaseResult{TransactionID: vr.TransactionID}
	switch vr.Status {
	case "verified":
		result.Status = port.PurchaseVerified
	case "cancelled":
		result.Status = port.PurchaseCancelled
	case "pending":
		result.Status = port.PurchasePending
	default:
		result.Status = port.PurchaseUnverified
	}
	return result, nil
}
