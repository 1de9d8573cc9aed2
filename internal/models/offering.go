package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OfferingStatus mirrors the publication state reported by the offering service
type OfferingStatus string

const (
	OfferingDraft     OfferingStatus = "draft"
	OfferingPublished OfferingStatus = "published"
	OfferingCancelled OfferingStatus = "cancelled"
)

// Offering is the offering service's view of a reservable unit (an event
// ticket allotment). Prices are in cents.
type Offering struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Status               OfferingStatus `json:"status"`
	RegistrationOpen     bool           `json:"registration_open"`
	RegistrationDeadline *time.Time     `json:"registration_deadline,omitempty"`
	MaxCapacity          int            `json:"max_capacity"`
	Participants         int            `json:"participants"`
	ClubID               string         `json:"club_id,omitempty"`
	Price                int64          `json:"price"`
	Date                 string         `json:"date,omitempty"`
	Time                 string         `json:"time,omitempty"`
	Location             string         `json:"location,omitempty"`
}

// IsAvailable reports whether the offering currently accepts registrations
func (o *Offering) IsAvailable(now time.Time) bool {
	if o.Status != OfferingPublished || !o.RegistrationOpen {
		return false
	}
	if o.RegistrationDeadline != nil && now.After(*o.RegistrationDeadline) {
		return false
	}
	return true
}

// RemainingCapacity returns the number of places not yet committed
func (o *Offering) RemainingCapacity() int {
	remaining := o.MaxCapacity - o.Participants
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckCapacity fails with CAPACITY_EXCEEDED when requested places do not
// fit under the ceiling. requested includes what the cart already holds.
func (o *Offering) CheckCapacity(requested int) error {
	remaining := o.RemainingCapacity()
	if requested > remaining {
		return NewError(KindUnavailable, CodeCapacityExceeded,
			fmt.Sprintf("only %d places left for this offering", remaining))
	}
	return nil
}

// Snapshot captures the display metadata stored on a line item
func (o *Offering) Snapshot() OfferingDetails {
	return OfferingDetails{
		Title:    o.Title,
		Date:     o.Date,
		Time:     o.Time,
		Location: o.Location,
	}
}

// Promotion is the promotion service's view of a promo code
type Promotion struct {
	Code             string          `json:"promotion_code"`
	Active           bool            `json:"active"`
	ExpiresAt        time.Time       `json:"expires_at"`
	ClubID           string          `json:"club_id,omitempty"`
	DiscountFraction decimal.Decimal `json:"discount_fraction"`
}

// IsValid reports whether the promotion may be applied at now
func (p *Promotion) IsValid(now time.Time) bool {
	if p == nil || !p.Active {
		return false
	}
	if !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt) {
		return false
	}
	return validDiscount(p.DiscountFraction)
}

// AppliesTo reports whether the promotion's club scope matches every line
// item. Unscoped promotions and items without a club always match.
func (p *Promotion) AppliesTo(items []LineItem) bool {
	if p.ClubID == "" {
		return true
	}
	for _, item := range items {
		if item.ClubID != "" && !strings.EqualFold(item.ClubID, p.ClubID) {
			return false
		}
	}
	return true
}

// ToPromoCode converts the promotion into the value stored on a transaction
func (p *Promotion) ToPromoCode() PromoCode {
	return PromoCode{
		Code:             p.Code,
		DiscountFraction: p.DiscountFraction,
		ClubID:           p.ClubID,
	}
}

func validDiscount(fraction decimal.Decimal) bool {
	return fraction.IsPositive() && fraction.LessThanOrEqual(decimal.NewFromInt(1))
}
