package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-events/internal/database"
	"campus-events/internal/models"
)

// TicketRepository handles ticket data operations
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, transaction_id, offering_id, user_id, recipient, quantity, title, code, status, issued_at, updated_at`

// Create inserts a ticket. One ticket exists per transaction and offering;
// a duplicate fails with models.ErrDuplicateEntry.
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.TransactionID,
		ticket.OfferingID,
		ticket.UserID,
		ticket.Recipient,
		ticket.Quantity,
		ticket.Title,
		ticket.Code,
		ticket.Status,
		ticket.IssuedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: ticket for transaction %s and offering %s", models.ErrDuplicateEntry, ticket.TransactionID, ticket.OfferingID)
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`
	return scanTicket(r.db.QueryRowContext(ctx, query, id))
}

// GetByCode retrieves a ticket by its entry code
func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE code = ?`
	return scanTicket(r.db.QueryRowContext(ctx, query, code))
}

// GetByTransactionAndOffering retrieves the ticket issued for one line item
func (r *TicketRepository) GetByTransactionAndOffering(ctx context.Context, transactionID, offeringID string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE transaction_id = ? AND offering_id = ?`
	return scanTicket(r.db.QueryRowContext(ctx, query, transactionID, offeringID))
}

// ListByUser returns the user's tickets, newest first
func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = ? ORDER BY issued_at DESC, id`
	return r.list(ctx, query, userID)
}

// ListByOffering returns all tickets issued for an offering
func (r *TicketRepository) ListByOffering(ctx context.Context, offeringID string) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE offering_id = ? ORDER BY issued_at, id`
	return r.list(ctx, query, offeringID)
}

// UpdateStatus moves a ticket from one status to another. The update only
// applies while the ticket still has status from.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, from, to models.TicketStatus) error {
	query := `UPDATE tickets SET status = ?, updated_at = ? WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	return requireAffected(result, models.ErrTicketNotValid)
}

func (r *TicketRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets := []*models.Ticket{}
	for rows.Next() {
		ticket := &models.Ticket{}
		if err := rows.Scan(ticketFields(ticket)...); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}
	return tickets, nil
}

func scanTicket(row *sql.Row) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	if err := row.Scan(ticketFields(ticket)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

func ticketFields(t *models.Ticket) []interface{} {
	return []interface{}{
		&t.ID,
		&t.TransactionID,
		&t.OfferingID,
		&t.UserID,
		&t.Recipient,
		&t.Quantity,
		&t.Title,
		&t.Code,
		&t.Status,
		&t.IssuedAt,
		&t.UpdatedAt,
	}
}
