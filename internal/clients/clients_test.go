package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-events/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func appErr(t *testing.T, err error) *models.AppError {
	t.Helper()
	require.Error(t, err)
	e := models.AsAppError(err)
	require.NotNil(t, e)
	return e
}

func TestOfferingClient_Get(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/offerings/event-1", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":                "event-1",
			"title":             "Spring Gala",
			"status":            "published",
			"registration_open": true,
			"max_capacity":      100,
			"participants":      40,
			"club_id":           "club-1",
			"price":             1000,
		})
	})

	offering, err := NewOfferingClient(srv.URL, time.Second).Get(context.Background(), "event-1")
	require.NoError(t, err)
	assert.Equal(t, "Spring Gala", offering.Title)
	assert.Equal(t, models.OfferingPublished, offering.Status)
	assert.Equal(t, 60, offering.RemainingCapacity())
	assert.Equal(t, int64(1000), offering.Price)
}

func TestOfferingClient_RegisterParticipants(t *testing.T) {
	var got ParticipantRegistration
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/offerings/event-1/participants", r.URL.Path)
		assert.Equal(t, "access-token", r.Header.Get(HeaderAccessToken))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	})

	err := NewOfferingClient(srv.URL, time.Second).RegisterParticipants(context.Background(), "event-1", "access-token",
		ParticipantRegistration{UserID: "user-1", Quantity: 3, TransactionID: "tx-1"})
	require.NoError(t, err)
	assert.Equal(t, ParticipantRegistration{UserID: "user-1", Quantity: 3, TransactionID: "tx-1"}, got)
}

func TestClients_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   models.ErrorKind
		code   models.ErrorCode
		http   int
	}{
		{name: "not found", status: http.StatusNotFound, kind: models.KindNotFound, code: models.CodeNotFound, http: http.StatusNotFound},
		{name: "server error", status: http.StatusInternalServerError, kind: models.KindDownstream, code: models.CodeDownstreamUnavailable, http: http.StatusBadGateway},
		{name: "bad gateway", status: http.StatusBadGateway, kind: models.KindDownstream, code: models.CodeDownstreamUnavailable, http: http.StatusBadGateway},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, kind: models.KindDownstreamTimeout, code: models.CodeDownstreamTimeout, http: http.StatusServiceUnavailable},
		{name: "rejected", status: http.StatusUnprocessableEntity, kind: models.KindDownstream, code: models.CodeDownstreamUnavailable, http: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"code": "X", "message": "internal detail"})
			})

			_, err := NewOfferingClient(srv.URL, time.Second).Get(context.Background(), "event-1")
			e := appErr(t, err)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.http, e.HTTPStatus())
			assert.NotContains(t, e.Message, "internal detail", "upstream messages stay in the cause")
		})
	}
}

func TestClients_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	_, err := NewOfferingClient(srv.URL, 50*time.Millisecond).Get(context.Background(), "event-1")
	e := appErr(t, err)
	assert.Equal(t, models.CodeDownstreamTimeout, e.Code)
	assert.Equal(t, http.StatusServiceUnavailable, e.HTTPStatus())
}

func TestClients_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewOfferingClient(url, time.Second).Get(context.Background(), "event-1")
	e := appErr(t, err)
	assert.Equal(t, models.KindDownstream, e.Kind)
	assert.Equal(t, http.StatusBadGateway, e.HTTPStatus())
}

func TestPromotionClient_GetByCode(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/promotions/code/TENOFF":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"promotion_code":    "TENOFF",
				"active":            true,
				"expires_at":        "2099-01-01T00:00:00Z",
				"club_id":           "club-1",
				"discount_fraction": "0.1",
			})
		case "/promotions/code/GONE":
			writeJSON(w, http.StatusGone, map[string]string{"message": "expired"})
		case "/promotions/code/BROKEN":
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "down"})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		}
	})
	client := NewPromotionClient(srv.URL, time.Second)
	ctx := context.Background()

	promo, err := client.GetByCode(ctx, "TENOFF")
	require.NoError(t, err)
	assert.Equal(t, "0.1", promo.DiscountFraction.String())
	assert.Equal(t, "club-1", promo.ClubID)
	assert.True(t, promo.IsValid(time.Now()))

	for _, code := range []string{"GONE", "UNKNOWN"} {
		_, err = client.GetByCode(ctx, code)
		assert.ErrorIs(t, err, models.ErrPromoInvalid, code)
	}

	_, err = client.GetByCode(ctx, "BROKEN")
	assert.Equal(t, models.KindDownstream, appErr(t, err).Kind)
}

func TestIdentityClient(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profile":
			if r.Header.Get(HeaderAccessToken) != "good" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "TOKEN_EXPIRED"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": "user-1", "email": "jane@example.com", "role": "user"})
		}
	})
	client := NewIdentityClient(srv.URL, time.Second)
	ctx := context.Background()

	user, err := client.Profile(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = client.Profile(ctx, "bad")
	assert.Error(t, err)
}

func TestTicketClient_Issue(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.TicketIssueRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jane@example.com", req.Recipient)
		assert.Equal(t, "svc-key", r.Header.Get(HeaderServiceKey))
		writeJSON(w, http.StatusCreated, models.Ticket{
			ID:            "ticket-1",
			TransactionID: req.Artifact.TransactionID,
			OfferingID:    req.Artifact.OfferingID,
			Quantity:      req.Artifact.Quantity,
			Code:          "abc",
			Status:        models.TicketValid,
		})
	})

	ticket, err := NewTicketClient(srv.URL, "svc-key", time.Second).Issue(context.Background(), models.TicketIssueRequest{
		Recipient: "jane@example.com",
		Artifact:  models.TicketArtifact{TransactionID: "tx-1", OfferingID: "event-1", UserID: "user-1", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", ticket.ID)
	assert.Equal(t, 2, ticket.Quantity)
}

func TestPaymentClient(t *testing.T) {
	t.Run("disabled approves locally", func(t *testing.T) {
		client := NewPaymentClient("", time.Second)
		assert.False(t, client.Enabled())

		decision, err := client.Authorize(context.Background(), PaymentRequest{Amount: 100})
		require.NoError(t, err)
		assert.True(t, decision.Approved)
	})

	t.Run("remote decision", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			var req PaymentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusOK, PaymentDecision{Approved: req.Amount < 10000, Reason: "limit"})
		})
		client := NewPaymentClient(srv.URL, time.Second)

		decision, err := client.Authorize(context.Background(), PaymentRequest{Amount: 500})
		require.NoError(t, err)
		assert.True(t, decision.Approved)

		decision, err = client.Authorize(context.Background(), PaymentRequest{Amount: 50000})
		require.NoError(t, err)
		assert.False(t, decision.Approved)
	})
}
