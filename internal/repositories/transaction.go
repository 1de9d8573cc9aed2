package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campus-events/internal/database"
	"campus-events/internal/models"
)

// TransactionRepository stores transactions as JSON documents with a
// version stamp used for compare-and-swap updates
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionFilter narrows ListAll results
type TransactionFilter struct {
	Status models.TransactionStatus
	Limit  int
	Offset int
}

// Create inserts a new transaction at version 1. A second draft for the same
// owner fails with models.ErrDuplicateEntry.
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	tx.Version = 1
	doc, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}

	query := `
		INSERT INTO transactions (id, owner_id, status, total_amount, version, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		tx.ID, tx.OwnerID, tx.Status, tx.TotalAmount, tx.Version, string(doc), tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: draft already exists for owner %s", models.ErrDuplicateEntry, tx.OwnerID)
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT document, version FROM transactions WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetDraftByOwner retrieves the owner's draft, or models.ErrTransactionNotFound
func (r *TransactionRepository) GetDraftByOwner(ctx context.Context, ownerID string) (*models.Transaction, error) {
	query := `SELECT document, version FROM transactions WHERE owner_id = ? AND status = 'draft'`
	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID))
}

// Update writes tx only if the stored version still equals tx.Version. On
// success tx.Version is advanced; otherwise models.ErrVersionConflict is
// returned and tx is left untouched.
func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	expected := tx.Version
	next := *tx
	next.Version = expected + 1
	next.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}

	query := `
		UPDATE transactions
		SET status = ?, total_amount = ?, version = ?, document = ?, updated_at = ?
		WHERE id = ? AND version = ?`

	result, err := r.db.ExecContext(ctx, query,
		next.Status, next.TotalAmount, next.Version, string(doc), next.UpdatedAt, tx.ID, expected)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", models.ErrDuplicateEntry, tx.ID)
		}
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.ErrVersionConflict
	}

	tx.Version = next.Version
	tx.UpdatedAt = next.UpdatedAt
	return nil
}

// ListByOwner returns the owner's non-draft transactions, newest first
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	query := `
		SELECT document, version FROM transactions
		WHERE owner_id = ? AND status != 'draft'
		ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// ListAll returns every transaction matching filter, newest first
func (r *TransactionRepository) ListAll(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	query := `SELECT document, version FROM transactions`
	args := []interface{}{}

	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC, id`

	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *TransactionRepository) scanOne(row *sql.Row) (*models.Transaction, error) {
	var doc string
	var version int64
	if err := row.Scan(&doc, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return decodeTransaction(doc, version)
}

func (r *TransactionRepository) scanAll(rows *sql.Rows) ([]*models.Transaction, error) {
	transactions := []*models.Transaction{}
	for rows.Next() {
		var doc string
		var version int64
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx, err := decodeTransaction(doc, version)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// decodeTransaction trusts the version column over the one in the document
func decodeTransaction(doc string, version int64) (*models.Transaction, error) {
	tx := &models.Transaction{}
	if err := json.Unmarshal([]byte(doc), tx); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	if tx.Items == nil {
		tx.Items = []models.LineItem{}
	}
	tx.Version = version
	return tx, nil
}
