package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campus-events/internal/auth"
	"campus-events/internal/models"
	"campus-events/internal/utils"

	"github.com/google/uuid"
)

const ticketCodeLength = 16

// TicketService issues e-tickets for completed line items and tracks their use
type TicketService struct {
	tickets TicketRepository
	now     func() time.Time
}

// NewTicketService creates a new ticket service
func NewTicketService(tickets TicketRepository) *TicketService {
	return &TicketService{
		tickets: tickets,
		now:     time.Now,
	}
}

// Issue stores a ticket for one line item. A repeated request for the same
// transaction and offering returns the existing ticket with created=false.
func (s *TicketService) Issue(ctx context.Context, req *models.TicketIssueRequest) (*models.Ticket, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, models.Validation(err.Error())
	}

	artifact := req.Artifact
	existing, err := s.tickets.GetByTransactionAndOffering(ctx, artifact.TransactionID, artifact.OfferingID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrTicketNotFound) {
		return nil, false, err
	}

	code, err := utils.GenerateSecureToken(ticketCodeLength)
	if err != nil {
		return nil, false, models.Internal(fmt.Errorf("failed to generate ticket code: %w", err))
	}

	now := s.now().UTC()
	ticket := &models.Ticket{
		ID:            uuid.NewString(),
		TransactionID: artifact.TransactionID,
		OfferingID:    artifact.OfferingID,
		UserID:        artifact.UserID,
		Recipient:     strings.ToLower(strings.TrimSpace(req.Recipient)),
		Quantity:      artifact.Quantity,
		Title:         artifact.Title,
		Code:          code,
		Status:        models.TicketValid,
		IssuedAt:      now,
		UpdatedAt:     now,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			// a concurrent request issued it first
			existing, getErr := s.tickets.GetByTransactionAndOffering(ctx, artifact.TransactionID, artifact.OfferingID)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	if ticket.Recipient != "" {
		log.Printf("Issued ticket %s for offering %s to %s", ticket.ID, ticket.OfferingID, ticket.Recipient)
	} else {
		log.Printf("Issued ticket %s for offering %s without a delivery address", ticket.ID, ticket.OfferingID)
	}
	return ticket, true, nil
}

// ListMine returns the caller's tickets
func (s *TicketService) ListMine(ctx context.Context, identity auth.Identity) ([]*models.Ticket, error) {
	return s.tickets.ListByUser(ctx, identity.UserID)
}

// ListByOffering returns every ticket issued for an offering (admin only)
func (s *TicketService) ListByOffering(ctx context.Context, identity auth.Identity, offeringID string) ([]*models.Ticket, error) {
	if err := auth.RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.tickets.ListByOffering(ctx, offeringID)
}

// Validate marks a ticket as used at the door
func (s *TicketService) Validate(ctx context.Context, identity auth.Identity, code string) (*models.Ticket, error) {
	if err := auth.RequireRole(identity, models.RoleAdmin, models.RoleClubLeader); err != nil {
		return nil, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.Validation("code is required")
	}

	ticket, err := s.tickets.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !ticket.IsValid() {
		return nil, models.ErrTicketNotValid
	}

	return s.transition(ctx, ticket, models.TicketUsed)
}

// Cancel voids a ticket that has not been used. Owners and admins only.
func (s *TicketService) Cancel(ctx context.Context, identity auth.Identity, ticketID string) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.IsOwnedBy(identity.UserID) && !identity.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if !ticket.CanBeCancelled() {
		return nil, models.ErrTicketNotValid
	}

	return s.transition(ctx, ticket, models.TicketCancelled)
}

func (s *TicketService) transition(ctx context.Context, ticket *models.Ticket, to models.TicketStatus) (*models.Ticket, error) {
	if err := s.tickets.UpdateStatus(ctx, ticket.ID, ticket.Status, to); err != nil {
		return nil, err
	}

	log.Printf("Ticket %s moved from %s to %s", ticket.ID, ticket.Status, to)
	ticket.Status = to
	ticket.UpdatedAt = s.now().UTC()
	return ticket, nil
}
