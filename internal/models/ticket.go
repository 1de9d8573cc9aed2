package models

import (
	"errors"
	"strings"
	"time"
)

// TicketStatus represents the status of a ticket
type TicketStatus string

const (
	TicketValid     TicketStatus = "valid"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

// Ticket is an e-ticket issued for one line item of a completed transaction
type Ticket struct {
	ID            string       `json:"id" db:"id"`
	TransactionID string       `json:"transaction_id" db:"transaction_id"`
	OfferingID    string       `json:"offering_id" db:"offering_id"`
	UserID        string       `json:"user_id" db:"user_id"`
	Recipient     string       `json:"recipient" db:"recipient"`
	Quantity      int          `json:"quantity" db:"quantity"`
	Title         string       `json:"title" db:"title"`
	Code          string       `json:"code" db:"code"`
	Status        TicketStatus `json:"status" db:"status"`
	IssuedAt      time.Time    `json:"issued_at" db:"issued_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// TicketArtifact is what checkout sends to the ticketing collaborator for
// one line item
type TicketArtifact struct {
	TransactionID string `json:"transaction_id"`
	OfferingID    string `json:"offering_id"`
	UserID        string `json:"user_id"`
	Quantity      int    `json:"quantity"`
	Title         string `json:"title"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	Location      string `json:"location,omitempty"`
}

// TicketIssueRequest is the body accepted by the ticket service
type TicketIssueRequest struct {
	Recipient string         `json:"recipient"`
	Artifact  TicketArtifact `json:"artifact"`
}

// Validate validates a ticket issue request
func (req *TicketIssueRequest) Validate() error {
	if strings.TrimSpace(req.Artifact.TransactionID) == "" {
		return errors.New("transaction id is required")
	}

	if strings.TrimSpace(req.Artifact.OfferingID) == "" {
		return errors.New("offering id is required")
	}

	if strings.TrimSpace(req.Artifact.UserID) == "" {
		return errors.New("user id is required")
	}

	if req.Artifact.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	if req.Recipient != "" {
		if err := validateEmail(req.Recipient); err != nil {
			return err
		}
	}

	return nil
}

// IsValid returns true if the ticket can still be used
func (t *Ticket) IsValid() bool {
	return t.Status == TicketValid
}

// CanBeCancelled returns true if the ticket can be cancelled
func (t *Ticket) CanBeCancelled() bool {
	return t.Status == TicketValid
}

// IsOwnedBy returns true if userID owns the ticket
func (t *Ticket) IsOwnedBy(userID string) bool {
	return userID != "" && t.UserID == userID
}
