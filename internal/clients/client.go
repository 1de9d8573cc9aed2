// Package clients holds the HTTP clients for the collaborator services the
// cart depends on. All calls are bounded by the configured timeout and by
// the caller's context.
package clients

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"campus-events/internal/models"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	HeaderAccessToken = "x-auth-token"
	HeaderServiceKey  = "x-service-key"
)

// DefaultTimeout bounds collaborator calls when no timeout is configured
const DefaultTimeout = 5 * time.Second

// apiError is the error body the services return
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))
		return nil
	})

	return client
}

// mapFailure turns a transport error or an unsuccessful response into an
// AppError. It returns nil for 2xx responses.
func mapFailure(service string, resp *resty.Response, err error) error {
	if err != nil {
		if isTimeout(err) {
			return models.WrapError(models.KindDownstreamTimeout, models.CodeDownstreamTimeout,
				fmt.Sprintf("%s did not respond in time", service), err)
		}
		return models.WrapError(models.KindDownstream, models.CodeDownstreamUnavailable,
			fmt.Sprintf("%s is unavailable", service), err)
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}

	cause := fmt.Errorf("%s responded %d: %s", service, status, errorMessage(resp))
	switch {
	case status == http.StatusNotFound:
		return models.WrapError(models.KindNotFound, models.CodeNotFound, fmt.Sprintf("%s: resource not found", service), cause)
	case status == http.StatusGatewayTimeout:
		return models.WrapError(models.KindDownstreamTimeout, models.CodeDownstreamTimeout,
			fmt.Sprintf("%s did not respond in time", service), cause)
	case status >= 500:
		return models.WrapError(models.KindDownstream, models.CodeDownstreamUnavailable,
			fmt.Sprintf("%s is unavailable", service), cause)
	default:
		return models.WrapError(models.KindDownstream, models.CodeDownstreamUnavailable,
			fmt.Sprintf("%s rejected the request", service), cause)
	}
}

func errorMessage(resp *resty.Response) string {
	if body, ok := resp.Error().(*apiError); ok && body != nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(resp.StatusCode())
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
