package clients

import (
	"context"
	"net/http"
	"time"

	"campus-events/internal/models"

	"github.com/go-resty/resty/v2"
)

// PromotionClient talks to the promotion service
type PromotionClient struct {
	http *resty.Client
}

func NewPromotionClient(baseURL string, timeout time.Duration) *PromotionClient {
	return &PromotionClient{http: newRestyClient(baseURL, timeout)}
}

// GetByCode looks up a promotion. Unknown, rejected or gone codes surface
// as models.ErrPromoInvalid; outages keep their downstream kind.
func (c *PromotionClient) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	promotion := &models.Promotion{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("code", code).
		SetResult(promotion).
		SetError(&apiError{}).
		Get("/promotions/code/{code}")

	if err == nil {
		switch resp.StatusCode() {
		case http.StatusNotFound, http.StatusBadRequest, http.StatusConflict, http.StatusGone:
			return nil, models.ErrPromoInvalid
		}
	}
	if err := mapFailure("promotion service", resp, err); err != nil {
		return nil, err
	}

	if promotion.Code == "" {
		promotion.Code = code
	}
	return promotion, nil
}
