package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"campus-events/internal/auth"
	"campus-events/internal/clients"
	"campus-events/internal/models"
	"campus-events/internal/repositories"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// maxMutationAttempts bounds the read-modify-write loop on a draft when
// concurrent requests from the same owner keep winning the version race.
const maxMutationAttempts = 3

const instrumentationName = "campus-events/cart"

// CartService runs the cart state machine on top of the transaction store
// and the collaborator services
type CartService struct {
	transactions TransactionRepository
	offerings    OfferingCatalog
	promotions   PromotionCatalog
	tickets      TicketIssuer
	payments     PaymentAuthorizer
	profiles     ProfileLookup
	now          func() time.Time

	tracer              trace.Tracer
	checkouts           metric.Int64Counter
	fulfillmentFailures metric.Int64Counter
	versionConflicts    metric.Int64Counter
}

// NewCartService creates a new cart service. payments and profiles may be nil.
func NewCartService(
	transactions TransactionRepository,
	offerings OfferingCatalog,
	promotions PromotionCatalog,
	tickets TicketIssuer,
	payments PaymentAuthorizer,
	profiles ProfileLookup,
) *CartService {
	meter := otel.Meter(instrumentationName)

	return &CartService{
		transactions:        transactions,
		offerings:           offerings,
		promotions:          promotions,
		tickets:             tickets,
		payments:            payments,
		profiles:            profiles,
		now:                 time.Now,
		tracer:              otel.Tracer(instrumentationName),
		checkouts:           counter(meter, "transactions.checkout.total", "Checkouts by outcome"),
		fulfillmentFailures: counter(meter, "transactions.fulfillment.failures", "Line items whose registration or ticket failed"),
		versionConflicts:    counter(meter, "transactions.version.conflicts", "Draft writes that lost the version race"),
	}
}

// SetClock replaces the time source
func (s *CartService) SetClock(now func() time.Time) {
	s.now = now
}

// GetOrCreateDraft returns the owner's single draft, creating an empty one
// if none exists
func (s *CartService) GetOrCreateDraft(ctx context.Context, ownerID string) (tx *models.Transaction, err error) {
	ctx, span := s.startSpan(ctx, "cart.GetOrCreateDraft", ownerID)
	defer func() { endSpan(span, err) }()

	return s.getOrCreateDraft(ctx, ownerID)
}

// AddItem adds quantity places of an offering to the cart, merging with an
// existing line. Price and display details are captured now and never
// refreshed.
func (s *CartService) AddItem(ctx context.Context, ownerID, offeringID string, quantity int) (tx *models.Transaction, err error) {
	ctx, span := s.startSpan(ctx, "cart.AddItem", ownerID)
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("offering.id", offeringID), attribute.Int("quantity", quantity))

	offeringID = strings.TrimSpace(offeringID)
	if offeringID == "" {
		return nil, models.Validation("offering_id is required")
	}
	if err := models.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	offering, err := s.offerings.Get(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if !offering.IsAvailable(s.now()) {
		return nil, models.ErrOfferingUnavailable
	}

	return s.mutateDraft(ctx, ownerID, func(tx *models.Transaction) error {
		if err := offering.CheckCapacity(tx.QuantityOf(offeringID) + quantity); err != nil {
			return err
		}
		return tx.AddItem(models.LineItem{
			OfferingID: offeringID,
			Quantity:   quantity,
			UnitPrice:  offering.Price,
			ClubID:     offering.ClubID,
			Details:    offering.Snapshot(),
		})
	})
}

// UpdateQuantity sets the quantity of a line already in the cart. Zero is
// rejected; use RemoveItem to drop a line.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID, offeringID string, quantity int) (tx *models.Transaction, err error) {
	ctx, span := s.startSpan(ctx, "cart.UpdateQuantity", ownerID)
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("offering.id", offeringID), attribute.Int("quantity", quantity))

	offeringID = strings.TrimSpace(offeringID)
	if offeringID == "" {
		return nil, models.Validation("offering_id is required")
	}
	if err := models.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	draft, err := s.transactions.GetDraftByOwner(ctx, ownerID)
	if err != nil && !errors.Is(err, models.ErrTransactionNotFound) {
		return nil, err
	}
	if draft == nil || draft.FindItem(offeringID) < 0 {
		return nil, models.ErrItemNotFound
	}

	offering, err := s.offerings.Get(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	return s.mutateDraft(ctx, ownerID, func(tx *models.Transaction) error {
		if tx.FindItem(offeringID) < 0 {
			return models.ErrItemNotFound
		}
		if err := offering.CheckCapacity(quantity); err != nil {
			return err
		}
		return tx.SetQuantity(offeringID, quantity)
	})
}

// RemoveItem drops a line from the cart. Removing an absent offering succeeds.
func (s *CartService) RemoveItem(ctx context.Context, ownerID, offeringID string) (tx *models.Transaction, err error) {
	ctx, span := s.startSpan(ctx, "cart.RemoveItem", ownerID)
	defer func() { endSpan(span, err) }()

	offeringID = strings.TrimSpace(offeringID)
	return s.mutateDraft(ctx, ownerID, func(tx *models.Transaction) error {
		return tx.RemoveItem(offeringID)
	})
}

// ApplyPromoCode validates code with the promotion service and attaches it,
// replacing any previous code
func (s *CartService) ApplyPromoCode(ctx context.Context, ownerID, code string) (tx *models.Transaction, err error) {
	ctx, span := s.startSpan(ctx, "cart.ApplyPromoCode", ownerID)
	defer func() { endSpan(span, err) }()

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.Validation("promotion_code is required")
	}

	promotion, err := s.promotions.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !promotion.IsValid(s.now()) {
		return nil, models.ErrPromoInvalid
	}

	return s.mutateDraft(ctx, ownerID, func(tx *models.Transaction) error {
		if !promotion.AppliesTo(tx.Items) {
			return models.WrapError(models.KindUnavailable, models.CodePromoInvalid,
				"promotion code is not valid for every item in the cart", nil)
		}
		return tx.ApplyPromo(promotion.ToPromoCode())
	})
}

// Checkout commits the owner's draft. Once the status write succeeds the
// call does not fail: participant registration and ticket issuance run per
// line item and their outcomes are recorded on the transaction.
func (s *CartService) Checkout(ctx context.Context, ownerID, paymentMethod, accessToken string) (tx *models.Transaction, err error) {
	ctx, span := s.startSpan(ctx, "cart.Checkout", ownerID)
	defer func() {
		outcome := "completed"
		if err != nil {
			outcome = string(models.AsAppError(err).Code)
		}
		s.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
		endSpan(span, err)
	}()

	method, err := models.NormalizePaymentMethod(paymentMethod)
	if err != nil {
		return nil, err
	}

	tx, err = s.commit(ctx, ownerID, method)
	if err != nil {
		return nil, err
	}

	// The transaction is committed; a client disconnect must not cut
	// fulfillment short. Each collaborator call keeps its own timeout.
	s.fulfill(context.WithoutCancel(ctx), tx, accessToken)
	return tx, nil
}

// commit authorizes payment and moves the draft out of draft with a
// version-checked write
func (s *CartService) commit(ctx context.Context, ownerID, method string) (*models.Transaction, error) {
	var decision *clients.PaymentDecision
	var authorizedAmount int64

	for attempt := 0; attempt < maxMutationAttempts; attempt++ {
		tx, err := s.transactions.GetDraftByOwner(ctx, ownerID)
		if errors.Is(err, models.ErrTransactionNotFound) {
			return nil, models.ErrEmptyCart
		}
		if err != nil {
			return nil, err
		}
		if tx.ItemCount() == 0 {
			return nil, models.ErrEmptyCart
		}

		total := tx.CalculateTotal()
		if decision == nil || authorizedAmount != total {
			decision, err = s.authorize(ctx, tx, method)
			if err != nil {
				return nil, err
			}
			authorizedAmount = total
		}

		if decision.Approved {
			err = tx.Complete(method, s.now().UTC())
		} else {
			err = tx.Fail(method)
		}
		if err != nil {
			return nil, err
		}

		err = s.transactions.Update(ctx, tx)
		if errors.Is(err, models.ErrVersionConflict) {
			s.versionConflicts.Add(ctx, 1)
			continue
		}
		if err != nil {
			return nil, err
		}

		if !decision.Approved {
			log.Printf("Payment rejected for transaction %s: %s", tx.ID, decision.Reason)
			return nil, models.ErrPaymentRejected
		}

		log.Printf("Transaction %s completed for owner %s: %d items, total %d", tx.ID, ownerID, tx.ItemCount(), tx.TotalAmount)
		return tx, nil
	}

	return nil, models.AsAppError(models.ErrVersionConflict)
}

func (s *CartService) authorize(ctx context.Context, tx *models.Transaction, method string) (*clients.PaymentDecision, error) {
	if s.payments == nil {
		return &clients.PaymentDecision{Approved: true}, nil
	}
	return s.payments.Authorize(ctx, clients.PaymentRequest{
		TransactionID: tx.ID,
		OwnerID:       tx.OwnerID,
		Amount:        tx.TotalAmount,
		Method:        method,
	})
}

// fulfill registers participants and issues tickets for each line item.
// Failures are logged and recorded, never returned.
func (s *CartService) fulfill(ctx context.Context, tx *models.Transaction, accessToken string) {
	ctx, span := s.tracer.Start(ctx, "cart.fulfill", trace.WithAttributes(attribute.String("transaction.id", tx.ID)))
	defer span.End()

	recipient := s.recipient(ctx, accessToken)
	results := make([]models.Fulfillment, 0, len(tx.Items))

	for _, item := range tx.Items {
		result := models.Fulfillment{OfferingID: item.OfferingID}

		err := s.offerings.RegisterParticipants(ctx, item.OfferingID, accessToken, clients.ParticipantRegistration{
			UserID:        tx.OwnerID,
			Quantity:      item.Quantity,
			TransactionID: tx.ID,
		})
		if err != nil {
			log.Printf("Warning: failed to register %d participants for offering %s in transaction %s: %v",
				item.Quantity, item.OfferingID, tx.ID, err)
			result.Error = models.AsAppError(err).Message
			s.fulfillmentFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("step", "register")))
			results = append(results, result)
			continue
		}
		result.Registered = true

		if s.tickets != nil {
			_, err = s.tickets.Issue(ctx, models.TicketIssueRequest{
				Recipient: recipient,
				Artifact: models.TicketArtifact{
					TransactionID: tx.ID,
					OfferingID:    item.OfferingID,
					UserID:        tx.OwnerID,
					Quantity:      item.Quantity,
					Title:         item.Details.Title,
					Date:          item.Details.Date,
					Time:          item.Details.Time,
					Location:      item.Details.Location,
				},
			})
			if err != nil {
				log.Printf("Warning: failed to issue ticket for offering %s in transaction %s: %v", item.OfferingID, tx.ID, err)
				result.Error = models.AsAppError(err).Message
				s.fulfillmentFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("step", "ticket")))
			} else {
				result.TicketIssued = true
			}
		}

		results = append(results, result)
	}

	tx.Fulfillment = results
	s.saveFulfillment(ctx, tx)
}

// saveFulfillment stores the fulfillment report. Only an administrative
// status change can race here, so the report is reapplied on conflict.
func (s *CartService) saveFulfillment(ctx context.Context, tx *models.Transaction) {
	results := tx.Fulfillment
	current := tx

	for attempt := 0; attempt < maxMutationAttempts; attempt++ {
		err := s.transactions.Update(ctx, current)
		if err == nil {
			if current != tx {
				*tx = *current
			}
			return
		}
		if !errors.Is(err, models.ErrVersionConflict) {
			log.Printf("Warning: failed to save fulfillment for transaction %s: %v", tx.ID, err)
			return
		}

		s.versionConflicts.Add(ctx, 1)
		current, err = s.transactions.GetByID(ctx, tx.ID)
		if err != nil {
			log.Printf("Warning: failed to reload transaction %s: %v", tx.ID, err)
			return
		}
		current.Fulfillment = results
	}

	log.Printf("Warning: gave up saving fulfillment for transaction %s after %d attempts", tx.ID, maxMutationAttempts)
}

func (s *CartService) recipient(ctx context.Context, accessToken string) string {
	if s.profiles == nil || accessToken == "" {
		return ""
	}
	user, err := s.profiles.Profile(ctx, accessToken)
	if err != nil {
		log.Printf("Warning: failed to load profile for ticket delivery: %v", err)
		return ""
	}
	return user.Email
}

// ListMine returns the owner's committed transactions, newest first
func (s *CartService) ListMine(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	return s.transactions.ListByOwner(ctx, ownerID)
}

// GetTransaction returns a transaction to its owner or to an admin
func (s *CartService) GetTransaction(ctx context.Context, identity auth.Identity, id string) (*models.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tx.IsOwnedBy(identity.UserID) && !identity.IsAdmin() {
		return nil, models.ErrForbidden
	}
	return tx, nil
}

// ListAll returns every transaction (admin only)
func (s *CartService) ListAll(ctx context.Context, identity auth.Identity, filter repositories.TransactionFilter) ([]*models.Transaction, error) {
	if err := auth.RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.transactions.ListAll(ctx, filter)
}

// UpdateStatus applies an administrative status change (completed <-> refunded)
func (s *CartService) UpdateStatus(ctx context.Context, identity auth.Identity, id string, status models.TransactionStatus) (tx *models.Transaction, err error) {
	ctx, span := s.startSpan(ctx, "cart.UpdateStatus", identity.UserID)
	defer func() { endSpan(span, err) }()

	if err := auth.RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxMutationAttempts; attempt++ {
		tx, err = s.transactions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		from := tx.Status
		if err := tx.TransitionTo(status); err != nil {
			return nil, err
		}

		err = s.transactions.Update(ctx, tx)
		if errors.Is(err, models.ErrVersionConflict) {
			s.versionConflicts.Add(ctx, 1)
			continue
		}
		if err != nil {
			return nil, err
		}

		log.Printf("Transaction %s status changed from %s to %s by user %s", tx.ID, from, status, identity.UserID)
		return tx, nil
	}

	return nil, models.AsAppError(models.ErrVersionConflict)
}

func (s *CartService) getOrCreateDraft(ctx context.Context, ownerID string) (*models.Transaction, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, models.Validation("owner id is required")
	}

	tx, err := s.transactions.GetDraftByOwner(ctx, ownerID)
	if err == nil {
		return tx, nil
	}
	if !errors.Is(err, models.ErrTransactionNotFound) {
		return nil, err
	}

	draft := models.NewDraftTransaction(ownerID)
	err = s.transactions.Create(ctx, draft)
	if errors.Is(err, models.ErrDuplicateEntry) {
		// another request created the draft first
		return s.transactions.GetDraftByOwner(ctx, ownerID)
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// mutateDraft loads the owner's draft, applies fn and writes it back with a
// version check, retrying when another request wrote in between
func (s *CartService) mutateDraft(ctx context.Context, ownerID string, fn func(tx *models.Transaction) error) (*models.Transaction, error) {
	for attempt := 0; attempt < maxMutationAttempts; attempt++ {
		tx, err := s.getOrCreateDraft(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		if err := fn(tx); err != nil {
			return nil, err
		}

		err = s.transactions.Update(ctx, tx)
		if err == nil {
			return tx, nil
		}
		if !errors.Is(err, models.ErrVersionConflict) {
			return nil, err
		}
		s.versionConflicts.Add(ctx, 1)
	}

	return nil, models.AsAppError(models.ErrVersionConflict)
}

func (s *CartService) startSpan(ctx context.Context, name, ownerID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("owner.id", ownerID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func counter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		log.Printf("Warning: failed to create counter %s: %v", name, err)
		return noop.Int64Counter{}
	}
	return c
}
