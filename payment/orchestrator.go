package payment

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/clients"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

var (
	// ErrIntentSecretMissing means the backend answered intent creation
	// without a client secret. The gateway is never contacted in that
	// case.
	ErrIntentSecretMissing = errors.New("intent response missing client secret")

	// ErrNoIntent means confirmation was attempted without a prior
	// successful intent creation for this session.
	ErrNoIntent = errors.New("no payment intent for this session")
)

// IntentCreator asks the backend to create a gateway payment intent.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, in clients.CreateIntentRequest) (*clients.CreateIntentResponse, error)
}

// GatewayConfirmer confirms an intent with the payment gateway.
type GatewayConfirmer interface {
	ConfirmIntent(ctx context.Context, clientSecret string, card models.CardDetails) error
}

// OrderPublisher hands a confirmed order off to the warehouse.
type OrderPublisher interface {
	PublishOrderConfirmed(order models.OrderConfirmed) error
}

type pendingIntent struct {
	intent models.PaymentIntent
	draft  models.CheckoutDraft
}

// Orchestrator runs the two-step payment: intent creation against the
// backend, then confirmation against the gateway. Confirmation can
// only follow a successful creation; a creation failure aborts the
// flow before the gateway is involved.
type Orchestrator struct {
	backend   IntentCreator
	gateway   GatewayConfirmer
	publisher OrderPublisher
	now       func() time.Time

	mu      sync.Mutex
	pending map[string]pendingIntent
}

func NewOrchestrator(backend IntentCreator, gateway GatewayConfirmer, publisher OrderPublisher) *Orchestrator {
	return &Orchestrator{
		backend:   backend,
		gateway:   gateway,
		publisher: publisher,
		now:       time.Now,
		pending:   make(map[string]pendingIntent),
	}
}

// CreateIntent requests a payment intent for the draft's total and
// remembers it for the session. The returned intent carries the opaque
// client secret the confirmation step must present.
func (o *Orchestrator) CreateIntent(ctx context.Context, sessionID, userID string, draft models.CheckoutDraft) (models.PaymentIntent, error) {
	resp, err := o.backend.CreatePaymentIntent(ctx, clients.CreateIntentRequest{
		Amount:      draft.Total,
		FirebaseUID: userID,
		ItemID:      draft.Item.ItemID,
		ItemName:    draft.Item.Name,
	})
	if err != nil {
		return models.PaymentIntent{}, err
	}
	if resp.ClientSecret == "" {
		return models.PaymentIntent{}, ErrIntentSecretMissing
	}

	intent := models.PaymentIntent{
		ClientSecret: resp.ClientSecret,
		Amount:       draft.Total,
		ItemID:       draft.Item.ItemID,
		UserID:       userID,
	}

	o.mu.Lock()
	o.pending[sessionID] = pendingIntent{
		intent: intent,
		draft:  draft,
	}
	o.mu.Unlock()

	log.Printf("Created payment intent for session %s, amount %d", sessionID, intent.Amount)
	return intent, nil
}

// Confirm validates the card, confirms the pending intent with the
// gateway and, on success, publishes the confirmed order and returns
// the receipt. Gateway failures keep the intent pending so the user
// can retry with corrected details.
func (o *Orchestrator) Confirm(ctx context.Context, sessionID, clientSecret string, card models.CardDetails) (models.Receipt, error) {
	if err := ValidateCard(card, o.now()); err != nil {
		return models.Receipt{}, err
	}

	o.mu.Lock()
	pending, ok := o.pending[sessionID]
	o.mu.Unlock()
	if !ok || pending.intent.ClientSecret != clientSecret {
		return models.Receipt{}, ErrNoIntent
	}

	if err := o.gateway.ConfirmIntent(ctx, clientSecret, card); err != nil {
		log.Printf("Gateway confirmation failed for session %s (card %s): %v",
			sessionID, MaskCardNumber(card.Number), err)
		return models.Receipt{}, err
	}

	o.mu.Lock()
	delete(o.pending, sessionID)
	o.mu.Unlock()

	order := models.OrderConfirmed{
		OrderID:  uuid.NewString(),
		UserID:   pending.intent.UserID,
		ItemID:   pending.intent.ItemID,
		ItemName: pending.draft.Item.Name,
		Quantity: pending.draft.Quantity,
		Amount:   pending.intent.Amount,
	}
	if o.publisher != nil {
		// Payment is already captured; a publish failure must not fail
		// the purchase.
		if err := o.publisher.PublishOrderConfirmed(order); err != nil {
			log.Printf("Failed to publish confirmed order %s: %v", order.OrderID, err)
		}
	}

	log.Printf("Payment confirmed for session %s, order %s", sessionID, order.OrderID)
	return models.Receipt{
		OrderID:  order.OrderID,
		ItemID:   order.ItemID,
		ItemName: order.ItemName,
		Quantity: order.Quantity,
		Amount:   order.Amount,
	}, nil
}
