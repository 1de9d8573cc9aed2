package clients

import (
	"context"
	"time"

	"campus-events/internal/models"

	"github.com/go-resty/resty/v2"
)

// IdentityClient talks to the auth service
type IdentityClient struct {
	http *resty.Client
}

func NewIdentityClient(baseURL string, timeout time.Duration) *IdentityClient {
	return &IdentityClient{http: newRestyClient(baseURL, timeout)}
}

// Profile returns the user behind accessToken
func (c *IdentityClient) Profile(ctx context.Context, accessToken string) (*models.User, error) {
	user := &models.User{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAccessToken, accessToken).
		SetResult(user).
		SetError(&apiError{}).
		Get("/profile")
	if err := mapFailure("identity service", resp, err); err != nil {
		return nil, err
	}
	return user, nil
}
