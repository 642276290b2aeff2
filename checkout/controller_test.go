package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

type fakeFetcher struct {
	items map[string]models.Item
	err   error
	calls int
}

func (f *fakeFetcher) GetItem(_ context.Context, itemID string) (*models.Item, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[itemID]
	if !ok {
		return nil, errors.New("not found")
	}
	return &item, nil
}

func newTestController(items ...models.Item) (*Controller, *fakeFetcher) {
	f := &fakeFetcher{items: make(map[string]models.Item)}
	for _, item := range items {
		f.items[item.ItemID] = item
	}
	return NewController(f), f
}

func racketItem() models.Item {
	return models.Item{ItemID: "A1", Name: "Astrox 99", Price: 1000, Available: 3}
}

func TestCreateDraftStartsAtQuantityOne(t *testing.T) {
	c, _ := newTestController(racketItem())

	draft, err := c.CreateDraft(context.Background(), "s1", "A1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), draft.Quantity)
	assert.Equal(t, int64(1000), draft.Total)
	assert.NotEmpty(t, draft.DraftID)
}

func TestCreateDraftWithoutItemID(t *testing.T) {
	c, f := newTestController(racketItem())

	_, err := c.CreateDraft(context.Background(), "s1", "")
	require.ErrorIs(t, err, ErrItemIDMissing)
	assert.Zero(t, f.calls, "missing id must be rejected before fetching")
}

func TestCreateDraftOutOfStock(t *testing.T) {
	c, _ := newTestController(models.Item{ItemID: "B2", Price: 500, Available: 0})

	_, err := c.CreateDraft(context.Background(), "s1", "B2")
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, err = c.Get("s1")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestIncrementClampsAtAvailable(t *testing.T) {
	c, _ := newTestController(racketItem())
	_, err := c.CreateDraft(context.Background(), "s1", "A1")
	require.NoError(t, err)

	draft, err := c.Increment("s1")
	require.NoError(t, err)
	draft, err = c.Increment("s1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), draft.Quantity)
	assert.Equal(t, int64(3000), draft.Total)

	// Third increment is a no-op at the stock ceiling.
	draft, err = c.Increment("s1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), draft.Quantity)
	assert.Equal(t, int64(3000), draft.Total)
}

func TestDecrementClampsAtOne(t *testing.T) {
	c, _ := newTestController(racketItem())
	_, err := c.CreateDraft(context.Background(), "s1", "A1")
	require.NoError(t, err)

	draft, err := c.Decrement("s1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), draft.Quantity)
	assert.Equal(t, int64(1000), draft.Total)
}

func TestTotalRecomputedAfterEveryMutation(t *testing.T) {
	c, _ := newTestController(racketItem())
	_, err := c.CreateDraft(context.Background(), "s1", "A1")
	require.NoError(t, err)

	ops := []func(string) (models.CheckoutDraft, error){
		c.Increment, c.Increment, c.Decrement, c.Increment, c.Increment, c.Decrement,
	}
	for _, op := range ops {
		draft, err := op("s1")
		require.NoError(t, err)
		assert.Equal(t, draft.Item.Price*int64(draft.Quantity), draft.Total)
		assert.GreaterOrEqual(t, draft.Quantity, int32(1))
		assert.LessOrEqual(t, draft.Quantity, draft.Item.Available)
	}
}

func TestSubmitForwardsDraftSummary(t *testing.T) {
	c, _ := newTestController(racketItem())
	_, err := c.CreateDraft(context.Background(), "s1", "A1")
	require.NoError(t, err)
	_, err = c.Increment("s1")
	require.NoError(t, err)

	summary, err := c.Submit("s1")
	require.NoError(t, err)
	assert.Equal(t, "A1", summary.ItemID)
	assert.Equal(t, int32(2), summary.Quantity)
	assert.Equal(t, int64(2000), summary.Total)
}

func TestNewDraftReplacesExisting(t *testing.T) {
	c, _ := newTestController(racketItem(), models.Item{ItemID: "C3", Price: 250, Available: 5})
	_, err := c.CreateDraft(context.Background(), "s1", "A1")
	require.NoError(t, err)

	draft, err := c.CreateDraft(context.Background(), "s1", "C3")
	require.NoError(t, err)
	assert.Equal(t, "C3", draft.Item.ItemID)
	assert.Equal(t, int32(1), draft.Quantity)
}

func TestDiscardDropsDraft(t *testing.T) {
	c, _ := newTestController(racketItem())
	_, err := c.CreateDraft(context.Background(), "s1", "A1")
	require.NoError(t, err)

	c.Discard("s1")
	_, err = c.Get("s1")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestFetchErrorPropagates(t *testing.T) {
	c, f := newTestController()
	f.err = errors.New("backend down")

	_, err := c.CreateDraft(context.Background(), "s1", "A1")
	assert.EqualError(t, err, "backend down")
}
