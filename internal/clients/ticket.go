package clients

import (
	"context"
	"time"

	"campus-events/internal/models"

	"github.com/go-resty/resty/v2"
)

// TicketClient talks to the ticket service
type TicketClient struct {
	http *resty.Client
}

// NewTicketClient sends apiKey in x-service-key on every call
func NewTicketClient(baseURL, apiKey string, timeout time.Duration) *TicketClient {
	client := newRestyClient(baseURL, timeout).SetHeader(HeaderServiceKey, apiKey)
	return &TicketClient{http: client}
}

// Issue asks the ticket service to deliver an e-ticket for one line item
func (c *TicketClient) Issue(ctx context.Context, req models.TicketIssueRequest) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(ticket).
		SetError(&apiError{}).
		Post("/tickets/issue")
	if err := mapFailure("ticket service", resp, err); err != nil {
		return nil, err
	}
	return ticket, nil
}
