package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"campus-events/internal/auth"
	"campus-events/internal/clients"
	"campus-events/internal/models"
	"campus-events/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// memTransactionStore is an in-memory TransactionRepository with the same
// version and one-draft-per-owner rules as the SQLite repository
type memTransactionStore struct {
	mu   sync.Mutex
	docs map[string][]byte

	// beforeUpdate runs before each Update while the lock is not held; tests
	// use it to simulate a concurrent writer
	beforeUpdate func(tx *models.Transaction)
	updates      int
}

func newMemTransactionStore() *memTransactionStore {
	return &memTransactionStore{docs: make(map[string][]byte)}
}

func (s *memTransactionStore) put(tx *models.Transaction) {
	doc, err := json.Marshal(tx)
	if err != nil {
		panic(err)
	}
	s.docs[tx.ID] = doc
}

func (s *memTransactionStore) get(id string) *models.Transaction {
	doc, ok := s.docs[id]
	if !ok {
		return nil
	}
	tx := &models.Transaction{}
	if err := json.Unmarshal(doc, tx); err != nil {
		panic(err)
	}
	return tx
}

func (s *memTransactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[tx.ID]; exists {
		return models.ErrDuplicateEntry
	}
	if tx.IsDraft() {
		for id := range s.docs {
			other := s.get(id)
			if other.OwnerID == tx.OwnerID && other.IsDraft() {
				return models.ErrDuplicateEntry
			}
		}
	}
	tx.Version = 1
	s.put(tx)
	return nil
}

func (s *memTransactionStore) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx := s.get(id); tx != nil {
		return tx, nil
	}
	return nil, models.ErrTransactionNotFound
}

func (s *memTransactionStore) GetDraftByOwner(ctx context.Context, ownerID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.docs {
		tx := s.get(id)
		if tx.OwnerID == ownerID && tx.IsDraft() {
			return tx, nil
		}
	}
	return nil, models.ErrTransactionNotFound
}

func (s *memTransactionStore) Update(ctx context.Context, tx *models.Transaction) error {
	if s.beforeUpdate != nil {
		s.beforeUpdate(tx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++

	current := s.get(tx.ID)
	if current == nil {
		return models.ErrTransactionNotFound
	}
	if current.Version != tx.Version {
		return models.ErrVersionConflict
	}

	tx.Version++
	tx.UpdatedAt = time.Now().UTC()
	s.put(tx)
	return nil
}

// bump advances the stored version as if another request had written
func (s *memTransactionStore) bump(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.get(id)
	tx.Version++
	s.put(tx)
}

func (s *memTransactionStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*models.Transaction
	for id := range s.docs {
		tx := s.get(id)
		if tx.OwnerID == ownerID && !tx.IsDraft() {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *memTransactionStore) ListAll(ctx context.Context, filter repositories.TransactionFilter) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*models.Transaction
	for id := range s.docs {
		tx := s.get(id)
		if filter.Status == "" || tx.Status == filter.Status {
			result = append(result, tx)
		}
	}
	return result, nil
}

// MockOfferingCatalog is a mock implementation of OfferingCatalog
type MockOfferingCatalog struct {
	mock.Mock
}

func (m *MockOfferingCatalog) Get(ctx context.Context, offeringID string) (*models.Offering, error) {
	args := m.Called(ctx, offeringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Offering), args.Error(1)
}

func (m *MockOfferingCatalog) RegisterParticipants(ctx context.Context, offeringID, accessToken string, reg clients.ParticipantRegistration) error {
	args := m.Called(ctx, offeringID, accessToken, reg)
	return args.Error(0)
}

// MockPromotionCatalog is a mock implementation of PromotionCatalog
type MockPromotionCatalog struct {
	mock.Mock
}

func (m *MockPromotionCatalog) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

// MockTicketIssuer is a mock implementation of TicketIssuer
type MockTicketIssuer struct {
	mock.Mock
}

func (m *MockTicketIssuer) Issue(ctx context.Context, req models.TicketIssueRequest) (*models.Ticket, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

// MockPaymentAuthorizer is a mock implementation of PaymentAuthorizer
type MockPaymentAuthorizer struct {
	mock.Mock
}

func (m *MockPaymentAuthorizer) Authorize(ctx context.Context, req clients.PaymentRequest) (*clients.PaymentDecision, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.PaymentDecision), args.Error(1)
}

// MockProfileLookup is a mock implementation of ProfileLookup
type MockProfileLookup struct {
	mock.Mock
}

func (m *MockProfileLookup) Profile(ctx context.Context, accessToken string) (*models.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddPoints(ctx context.Context, id string, points int) (int, error) {
	args := m.Called(ctx, id, points)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByCode(ctx context.Context, code string) (*models.Ticket, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByTransactionAndOffering(ctx context.Context, transactionID, offeringID string) (*models.Ticket, error) {
	args := m.Called(ctx, transactionID, offeringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListByUser(ctx context.Context, userID string) ([]*models.Ticket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListByOffering(ctx context.Context, offeringID string) ([]*models.Ticket, error) {
	args := m.Called(ctx, offeringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) UpdateStatus(ctx context.Context, id string, from, to models.TicketStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssuePair(identity auth.Identity) (auth.TokenPair, error) {
	args := m.Called(identity)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockTokenIssuer) IssueAccess(identity auth.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) VerifyRefresh(token string) (auth.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(auth.Identity), args.Error(1)
}
