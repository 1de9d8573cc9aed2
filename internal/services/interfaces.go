package services

import (
	"context"

	"campus-events/internal/auth"
	"campus-events/internal/clients"
	"campus-events/internal/models"
	"campus-events/internal/repositories"
)

// CartServiceInterface defines the cart and transaction operations used by handlers
type CartServiceInterface interface {
	GetOrCreateDraft(ctx context.Context, ownerID string) (*models.Transaction, error)
	AddItem(ctx context.Context, ownerID, offeringID string, quantity int) (*models.Transaction, error)
	UpdateQuantity(ctx context.Context, ownerID, offeringID string, quantity int) (*models.Transaction, error)
	RemoveItem(ctx context.Context, ownerID, offeringID string) (*models.Transaction, error)
	ApplyPromoCode(ctx context.Context, ownerID, code string) (*models.Transaction, error)
	Checkout(ctx context.Context, ownerID, paymentMethod, accessToken string) (*models.Transaction, error)
	ListMine(ctx context.Context, ownerID string) ([]*models.Transaction, error)
	GetTransaction(ctx context.Context, identity auth.Identity, id string) (*models.Transaction, error)
	ListAll(ctx context.Context, identity auth.Identity, filter repositories.TransactionFilter) ([]*models.Transaction, error)
	UpdateStatus(ctx context.Context, identity auth.Identity, id string, status models.TransactionStatus) (*models.Transaction, error)
}

// IdentityServiceInterface defines the auth service operations used by handlers
type IdentityServiceInterface interface {
	Register(ctx context.Context, req *models.UserCreateRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Profile(ctx context.Context, identity auth.Identity) (*models.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	AddPoints(ctx context.Context, identity auth.Identity, userID string, points int) (int, error)
	DeleteUser(ctx context.Context, identity auth.Identity, userID string) error
}

// TicketServiceInterface defines the ticket service operations used by handlers
type TicketServiceInterface interface {
	Issue(ctx context.Context, req *models.TicketIssueRequest) (*models.Ticket, bool, error)
	ListMine(ctx context.Context, identity auth.Identity) ([]*models.Ticket, error)
	ListByOffering(ctx context.Context, identity auth.Identity, offeringID string) ([]*models.Ticket, error)
	Validate(ctx context.Context, identity auth.Identity, code string) (*models.Ticket, error)
	Cancel(ctx context.Context, identity auth.Identity, ticketID string) (*models.Ticket, error)
}

// TransactionRepository interface for transaction document storage
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	GetDraftByOwner(ctx context.Context, ownerID string) (*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error)
	ListAll(ctx context.Context, filter repositories.TransactionFilter) ([]*models.Transaction, error)
}

// UserRepository interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	AddPoints(ctx context.Context, id string, points int) (int, error)
	Delete(ctx context.Context, id string) error
}

// TicketRepository interface for ticket data operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	GetByCode(ctx context.Context, code string) (*models.Ticket, error)
	GetByTransactionAndOffering(ctx context.Context, transactionID, offeringID string) (*models.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Ticket, error)
	ListByOffering(ctx context.Context, offeringID string) ([]*models.Ticket, error)
	UpdateStatus(ctx context.Context, id string, from, to models.TicketStatus) error
}

// OfferingCatalog is the offering service as seen by the cart
type OfferingCatalog interface {
	Get(ctx context.Context, offeringID string) (*models.Offering, error)
	RegisterParticipants(ctx context.Context, offeringID, accessToken string, reg clients.ParticipantRegistration) error
}

// PromotionCatalog is the promotion service as seen by the cart
type PromotionCatalog interface {
	GetByCode(ctx context.Context, code string) (*models.Promotion, error)
}

// TicketIssuer delivers e-tickets for completed line items
type TicketIssuer interface {
	Issue(ctx context.Context, req models.TicketIssueRequest) (*models.Ticket, error)
}

// PaymentAuthorizer approves or rejects a checkout
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, req clients.PaymentRequest) (*clients.PaymentDecision, error)
}

// ProfileLookup resolves the caller's profile for ticket delivery
type ProfileLookup interface {
	Profile(ctx context.Context, accessToken string) (*models.User, error)
}

// TokenIssuer is the part of auth.TokenManager the identity service needs
type TokenIssuer interface {
	IssuePair(identity auth.Identity) (auth.TokenPair, error)
	IssueAccess(identity auth.Identity) (string, error)
	VerifyRefresh(token string) (auth.Identity, error)
}

// PasswordHasher hashes and checks credentials
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
	VerifyDummy(password string)
}
