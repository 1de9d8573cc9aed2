package clients

import (
	"context"
	"time"

	"campus-events/internal/models"

	"github.com/go-resty/resty/v2"
)

// ParticipantRegistration is posted when a checkout commits places
type ParticipantRegistration struct {
	UserID        string `json:"user_id"`
	Quantity      int    `json:"quantity"`
	TransactionID string `json:"transaction_id"`
}

// OfferingClient talks to the offering (event inventory) service
type OfferingClient struct {
	http *resty.Client
}

func NewOfferingClient(baseURL string, timeout time.Duration) *OfferingClient {
	return &OfferingClient{http: newRestyClient(baseURL, timeout)}
}

// Get fetches availability, capacity, club scope and price of an offering
func (c *OfferingClient) Get(ctx context.Context, offeringID string) (*models.Offering, error) {
	offering := &models.Offering{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", offeringID).
		SetResult(offering).
		SetError(&apiError{}).
		Get("/offerings/{id}")
	if err := mapFailure("offering service", resp, err); err != nil {
		return nil, err
	}
	if offering.ID == "" {
		offering.ID = offeringID
	}
	return offering, nil
}

// RegisterParticipants records attendees and decrements capacity. The
// caller's access token is forwarded.
func (c *OfferingClient) RegisterParticipants(ctx context.Context, offeringID, accessToken string, reg ParticipantRegistration) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAccessToken, accessToken).
		SetPathParam("id", offeringID).
		SetBody(reg).
		SetError(&apiError{}).
		Post("/offerings/{id}/participants")
	return mapFailure("offering service", resp, err)
}
