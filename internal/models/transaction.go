package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the status of a transaction
type TransactionStatus string

const (
	TransactionDraft     TransactionStatus = "draft"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// DefaultPaymentMethod is used when checkout does not name one
const DefaultPaymentMethod = "card"

const maxPaymentMethodLength = 32

// MaxLineQuantity caps the places a single line item may hold
const MaxLineQuantity = 1000

// OfferingDetails is the display metadata captured when an item is added
type OfferingDetails struct {
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
}

// LineItem is one offering in a cart. UnitPrice is the price at the time
// the item was first added and is never refreshed.
type LineItem struct {
	OfferingID string          `json:"offering_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  int64           `json:"unit_price"` // in cents
	ClubID     string          `json:"club_id,omitempty"`
	Details    OfferingDetails `json:"details"`
}

// Subtotal returns unit price times quantity, in cents
func (i LineItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// PromoCode is the single promotion attached to a transaction
type PromoCode struct {
	Code             string          `json:"code"`
	DiscountFraction decimal.Decimal `json:"discount_fraction"`
	ClubID           string          `json:"club_id,omitempty"`
}

// Fulfillment records what happened to one line item during checkout
type Fulfillment struct {
	OfferingID   string `json:"offering_id"`
	Registered   bool   `json:"registered"`
	TicketIssued bool   `json:"ticket_issued"`
	Error        string `json:"error,omitempty"`
}

// Transaction is a cart while in draft and an audit record afterwards
type Transaction struct {
	ID            string            `json:"id"`
	OwnerID       string            `json:"owner_id"`
	Items         []LineItem        `json:"items"`
	PromoCode     *PromoCode        `json:"promo_code,omitempty"`
	TotalAmount   int64             `json:"total_amount"` // in cents
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Fulfillment   []Fulfillment     `json:"fulfillment,omitempty"`
	Version       int64             `json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
}

// NewDraftTransaction creates an empty cart for ownerID
func NewDraftTransaction(ownerID string) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Items:     []LineItem{},
		Status:    TransactionDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDraft returns true if the transaction still accepts cart mutations
func (t *Transaction) IsDraft() bool {
	return t.Status == TransactionDraft
}

// IsOwnedBy returns true if ownerID owns the transaction
func (t *Transaction) IsOwnedBy(ownerID string) bool {
	return ownerID != "" && t.OwnerID == ownerID
}

// FindItem returns the index of the line item for offeringID, or -1
func (t *Transaction) FindItem(offeringID string) int {
	for i := range t.Items {
		if t.Items[i].OfferingID == offeringID {
			return i
		}
	}
	return -1
}

// QuantityOf returns the quantity already in the cart for offeringID
func (t *Transaction) QuantityOf(offeringID string) int {
	if i := t.FindItem(offeringID); i >= 0 {
		return t.Items[i].Quantity
	}
	return 0
}

// ItemCount returns the number of distinct line items
func (t *Transaction) ItemCount() int {
	return len(t.Items)
}

// AddItem merges item into the cart. An existing line for the same offering
// has its quantity increased and keeps its original price snapshot.
func (t *Transaction) AddItem(item LineItem) error {
	if !t.IsDraft() {
		return ErrTransactionFrozen
	}
	if err := validateLineItem(item); err != nil {
		return err
	}

	if i := t.FindItem(item.OfferingID); i >= 0 {
		merged := t.Items[i].Quantity + item.Quantity
		if err := ValidateQuantity(merged); err != nil {
			return err
		}
		t.Items[i].Quantity = merged
	} else {
		t.Items = append(t.Items, item)
	}

	t.CalculateTotal()
	return nil
}

// SetQuantity replaces the quantity of an existing line. Zero is rejected;
// removal is a separate operation.
func (t *Transaction) SetQuantity(offeringID string, quantity int) error {
	if !t.IsDraft() {
		return ErrTransactionFrozen
	}
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}

	i := t.FindItem(offeringID)
	if i < 0 {
		return ErrItemNotFound
	}

	t.Items[i].Quantity = quantity
	t.CalculateTotal()
	return nil
}

// RemoveItem drops the line for offeringID. Removing an absent offering is
// not an error.
func (t *Transaction) RemoveItem(offeringID string) error {
	if !t.IsDraft() {
		return ErrTransactionFrozen
	}

	if i := t.FindItem(offeringID); i >= 0 {
		t.Items = append(t.Items[:i], t.Items[i+1:]...)
	}

	t.CalculateTotal()
	return nil
}

// ApplyPromo attaches promo, replacing any previous one
func (t *Transaction) ApplyPromo(promo PromoCode) error {
	if !t.IsDraft() {
		return ErrTransactionFrozen
	}
	if strings.TrimSpace(promo.Code) == "" || !validDiscount(promo.DiscountFraction) {
		return ErrPromoInvalid
	}

	t.PromoCode = &promo
	t.CalculateTotal()
	return nil
}

// Subtotal returns the undiscounted sum of all line items, in cents
func (t *Transaction) Subtotal() int64 {
	var sum int64
	for _, item := range t.Items {
		sum += item.Subtotal()
	}
	return sum
}

// CalculateTotal recomputes TotalAmount from the items and promo code.
// The discount is applied once to the whole subtotal and the result is
// rounded to the nearest cent, halves away from zero.
func (t *Transaction) CalculateTotal() int64 {
	total := decimal.NewFromInt(t.Subtotal())

	if t.PromoCode != nil && !t.PromoCode.DiscountFraction.IsZero() {
		total = total.Mul(decimal.NewFromInt(1).Sub(t.PromoCode.DiscountFraction))
	}

	t.TotalAmount = total.Round(0).IntPart()
	return t.TotalAmount
}

// Complete moves a draft to completed. It is the only path out of draft
// that succeeds, and it can happen once.
func (t *Transaction) Complete(paymentMethod string, now time.Time) error {
	if !t.IsDraft() {
		return ErrTransactionFrozen
	}
	if t.ItemCount() == 0 {
		return ErrEmptyCart
	}
	method, err := NormalizePaymentMethod(paymentMethod)
	if err != nil {
		return err
	}

	t.CalculateTotal()
	t.Status = TransactionCompleted
	t.PaymentMethod = method
	t.CompletedAt = &now
	return nil
}

// Fail moves a draft to failed after the payment collaborator rejected it
func (t *Transaction) Fail(paymentMethod string) error {
	if !t.IsDraft() {
		return ErrTransactionFrozen
	}
	method, err := NormalizePaymentMethod(paymentMethod)
	if err != nil {
		return err
	}

	t.Status = TransactionFailed
	t.PaymentMethod = method
	return nil
}

// TransitionTo applies an administrative status change. Only
// completed <-> refunded is allowed.
func (t *Transaction) TransitionTo(status TransactionStatus) error {
	if !CanTransition(t.Status, status) {
		return ErrInvalidStatusTransition
	}
	t.Status = status
	return nil
}

// CanTransition reports whether an administrative status change is allowed
func CanTransition(from, to TransactionStatus) bool {
	switch {
	case from == TransactionCompleted && to == TransactionRefunded:
		return true
	case from == TransactionRefunded && to == TransactionCompleted:
		return true
	default:
		return false
	}
}

// ParseTransactionStatus validates a status received from a client
func ParseTransactionStatus(value string) (TransactionStatus, error) {
	status := TransactionStatus(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case TransactionDraft, TransactionCompleted, TransactionFailed, TransactionRefunded:
		return status, nil
	default:
		return "", Validation("invalid transaction status")
	}
}

// NormalizePaymentMethod defaults an empty method and bounds its length
func NormalizePaymentMethod(method string) (string, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		return DefaultPaymentMethod, nil
	}
	if len(method) > maxPaymentMethodLength {
		return "", Validation("payment method is too long")
	}
	return method, nil
}

func validateLineItem(item LineItem) error {
	if strings.TrimSpace(item.OfferingID) == "" {
		return Validation("offering id is required")
	}
	if item.UnitPrice < 0 {
		return Validation("unit price cannot be negative")
	}
	return ValidateQuantity(item.Quantity)
}

// ValidateQuantity checks a line quantity is between 1 and MaxLineQuantity
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return Validation("quantity must be at least 1")
	}
	if quantity > MaxLineQuantity {
		return Validation(fmt.Sprintf("quantity cannot exceed %d", MaxLineQuantity))
	}
	return nil
}
