package checkout

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

var (
	// ErrItemIDMissing means checkout was entered without an item
	// identifier. This is fatal for the draft; there is no fallback
	// extraction.
	ErrItemIDMissing = errors.New("item id is missing")

	// ErrOutOfStock means the item reported zero available quantity at
	// checkout entry. Checkout is disabled for it entirely.
	ErrOutOfStock = errors.New("item is out of stock")

	// ErrNoDraft means the session has no active checkout draft.
	ErrNoDraft = errors.New("no active checkout draft")
)

// ItemFetcher loads a single item's live detail for checkout entry.
type ItemFetcher interface {
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
}

// Controller owns the checkout drafts, one per session. All quantity
// mutations hold the draft's invariants: quantity stays within
// [1, available] (out-of-range adjustments are no-ops, never errors)
// and total is recomputed from price and quantity on every change.
type Controller struct {
	fetcher ItemFetcher

	mu     sync.RWMutex
	drafts map[string]*models.CheckoutDraft
}

func NewController(fetcher ItemFetcher) *Controller {
	return &Controller{
		fetcher: fetcher,
		drafts:  make(map[string]*models.CheckoutDraft),
	}
}

// CreateDraft fetches the item and opens a draft at quantity 1,
// replacing any draft the session already had. An item with no stock
// never gets a draft.
func (c *Controller) CreateDraft(ctx context.Context, sessionID, itemID string) (models.CheckoutDraft, error) {
	if itemID == "" {
		return models.CheckoutDraft{}, ErrItemIDMissing
	}

	item, err := c.fetcher.GetItem(ctx, itemID)
	if err != nil {
		return models.CheckoutDraft{}, err
	}
	if item.Available <= 0 {
		return models.CheckoutDraft{}, ErrOutOfStock
	}

	draft := &models.CheckoutDraft{
		DraftID:  uuid.NewString(),
		Item:     *item,
		Quantity: 1,
		Total:    item.Price,
	}

	c.mu.Lock()
	c.drafts[sessionID] = draft
	c.mu.Unlock()

	log.Printf("Opened checkout draft %s for item %s (session %s)", draft.DraftID, itemID, sessionID)
	return *draft, nil
}

// Get returns the session's active draft.
func (c *Controller) Get(sessionID string) (models.CheckoutDraft, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	draft, ok := c.drafts[sessionID]
	if !ok {
		return models.CheckoutDraft{}, ErrNoDraft
	}
	return *draft, nil
}

// Increment raises the quantity by one. At the stock ceiling it is a
// no-op.
func (c *Controller) Increment(sessionID string) (models.CheckoutDraft, error) {
	return c.adjust(sessionID, +1)
}

// Decrement lowers the quantity by one. At quantity 1 it is a no-op.
func (c *Controller) Decrement(sessionID string) (models.CheckoutDraft, error) {
	return c.adjust(sessionID, -1)
}

func (c *Controller) adjust(sessionID string, delta int32) (models.CheckoutDraft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, ok := c.drafts[sessionID]
	if !ok {
		return models.CheckoutDraft{}, ErrNoDraft
	}

	next := draft.Quantity + delta
	if next >= 1 && next <= draft.Item.Available {
		draft.Quantity = next
	}
	draft.Total = draft.Item.Price * int64(draft.Quantity)
	return *draft, nil
}

// Submit commits the draft and hands its summary to the next pipeline
// step (address capture). The draft stays alive until payment succeeds
// or the session discards it.
func (c *Controller) Submit(sessionID string) (models.SubmitDraftResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	draft, ok := c.drafts[sessionID]
	if !ok {
		return models.SubmitDraftResponse{}, ErrNoDraft
	}
	return models.SubmitDraftResponse{
		ItemID:   draft.Item.ItemID,
		Quantity: draft.Quantity,
		Total:    draft.Total,
	}, nil
}

// Discard drops the session's draft, if any. Called when the user
// leaves the pipeline or after payment succeeds.
func (c *Controller) Discard(sessionID string) {
	c.mu.Lock()
	delete(c.drafts, sessionID)
	c.mu.Unlock()
}
