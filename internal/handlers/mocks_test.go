package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus-events/internal/auth"
	"campus-events/internal/middleware"
	"campus-events/internal/models"
	"campus-events/internal/repositories"
	"campus-events/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockCartService for testing
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetOrCreateDraft(ctx context.Context, ownerID string) (*models.Transaction, error) {
	args := m.Called(ctx, ownerID)
	return txArg(args, 0), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, ownerID, offeringID string, quantity int) (*models.Transaction, error) {
	args := m.Called(ctx, ownerID, offeringID, quantity)
	return txArg(args, 0), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, ownerID, offeringID string, quantity int) (*models.Transaction, error) {
	args := m.Called(ctx, ownerID, offeringID, quantity)
	return txArg(args, 0), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, ownerID, offeringID string) (*models.Transaction, error) {
	args := m.Called(ctx, ownerID, offeringID)
	return txArg(args, 0), args.Error(1)
}

func (m *MockCartService) ApplyPromoCode(ctx context.Context, ownerID, code string) (*models.Transaction, error) {
	args := m.Called(ctx, ownerID, code)
	return txArg(args, 0), args.Error(1)
}

func (m *MockCartService) Checkout(ctx context.Context, ownerID, paymentMethod, accessToken string) (*models.Transaction, error) {
	args := m.Called(ctx, ownerID, paymentMethod, accessToken)
	return txArg(args, 0), args.Error(1)
}

func (m *MockCartService) ListMine(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockCartService) GetTransaction(ctx context.Context, identity auth.Identity, id string) (*models.Transaction, error) {
	args := m.Called(ctx, identity, id)
	return txArg(args, 0), args.Error(1)
}

func (m *MockCartService) ListAll(ctx context.Context, identity auth.Identity, filter repositories.TransactionFilter) ([]*models.Transaction, error) {
	args := m.Called(ctx, identity, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockCartService) UpdateStatus(ctx context.Context, identity auth.Identity, id string, status models.TransactionStatus) (*models.Transaction, error) {
	args := m.Called(ctx, identity, id, status)
	return txArg(args, 0), args.Error(1)
}

func txArg(args mock.Arguments, i int) *models.Transaction {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*models.Transaction)
}

// MockIdentityService for testing
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, req *models.UserCreateRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResponse), args.Error(1)
}

func (m *MockIdentityService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResponse), args.Error(1)
}

func (m *MockIdentityService) Profile(ctx context.Context, identity auth.Identity) (*models.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityService) AddPoints(ctx context.Context, identity auth.Identity, userID string, points int) (int, error) {
	args := m.Called(ctx, identity, userID, points)
	return args.Int(0), args.Error(1)
}

func (m *MockIdentityService) DeleteUser(ctx context.Context, identity auth.Identity, userID string) error {
	args := m.Called(ctx, identity, userID)
	return args.Error(0)
}

// MockTicketService for testing
type MockTicketService struct {
	mock.Mock
}

func (m *MockTicketService) Issue(ctx context.Context, req *models.TicketIssueRequest) (*models.Ticket, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Ticket), args.Bool(1), args.Error(2)
}

func (m *MockTicketService) ListMine(ctx context.Context, identity auth.Identity) ([]*models.Ticket, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockTicketService) ListByOffering(ctx context.Context, identity auth.Identity, offeringID string) ([]*models.Ticket, error) {
	args := m.Called(ctx, identity, offeringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockTicketService) Validate(ctx context.Context, identity auth.Identity, code string) (*models.Ticket, error) {
	args := m.Called(ctx, identity, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) Cancel(ctx context.Context, identity auth.Identity, ticketID string) (*models.Ticket, error) {
	args := m.Called(ctx, identity, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

var (
	student = auth.Identity{UserID: "user-1", Role: models.RoleUser}
	leader  = auth.Identity{UserID: "leader-1", Role: models.RoleClubLeader}
	admin   = auth.Identity{UserID: "admin-1", Role: models.RoleAdmin}
)

func newTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager(auth.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
	require.NoError(t, err)
	return tm
}

func accessToken(t *testing.T, tm *auth.TokenManager, identity auth.Identity) string {
	t.Helper()
	token, err := tm.IssueAccess(identity)
	require.NoError(t, err)
	return token
}

// doRequest sends body (string or value encoded as JSON) with an optional
// access token
func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(v)
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.HeaderAccessToken, token)
	}

	return serve(router, req)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
