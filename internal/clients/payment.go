package clients

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// PaymentRequest asks the payment service to authorize a checkout
type PaymentRequest struct {
	TransactionID string `json:"transaction_id"`
	OwnerID       string `json:"owner_id"`
	Amount        int64  `json:"amount"` // in cents
	Method        string `json:"payment_method"`
}

// PaymentDecision is the payment service's answer
type PaymentDecision struct {
	Approved  bool   `json:"approved"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// PaymentClient talks to the payment service. With no base URL every
// request is approved locally.
type PaymentClient struct {
	http *resty.Client
}

func NewPaymentClient(baseURL string, timeout time.Duration) *PaymentClient {
	if strings.TrimSpace(baseURL) == "" {
		return &PaymentClient{}
	}
	return &PaymentClient{http: newRestyClient(baseURL, timeout)}
}

// Enabled reports whether a payment service is configured
func (c *PaymentClient) Enabled() bool {
	return c.http != nil
}

// Authorize returns the payment decision for req
func (c *PaymentClient) Authorize(ctx context.Context, req PaymentRequest) (*PaymentDecision, error) {
	if !c.Enabled() {
		return &PaymentDecision{Approved: true}, nil
	}

	decision := &PaymentDecision{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(decision).
		SetError(&apiError{}).
		Post("/payments/authorize")
	if err := mapFailure("payment service", resp, err); err != nil {
		return nil, err
	}
	return decision, nil
}
