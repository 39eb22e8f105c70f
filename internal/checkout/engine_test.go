package checkout

import (
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/pkg/money"
)

type fakeCatalog struct {
	products []domain.Product
}

func (f *fakeCatalog) ActiveProducts() []domain.Product {
	var out []domain.Product
	for _, p := range f.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

type fakeCart struct {
	counts map[int64]int
}

func (f *fakeCart) Snapshot() map[int64]int {
	out := make(map[int64]int, len(f.counts))
	for id, qty := range f.counts {
		out[id] = qty
	}
	return out
}

var _ CatalogReader = (*fakeCatalog)(nil)
var _ CartReader = (*fakeCart)(nil)

func newTestEngine(products []domain.Product, counts map[int64]int) *Engine {
	return NewEngine(&fakeCatalog{products: products}, &fakeCart{counts: counts}, nil)
}

func TestTotalScenarioA(t *testing.T) {
	// 2 × 2,50 € + 1 × 4,50 € = 9,50 €
	engine := newTestEngine([]domain.Product{
		{ID: 1, Price: 250, Active: true},
		{ID: 2, Price: 450, Active: true},
	}, map[int64]int{1: 2, 2: 1})

	assert.Equal(t, money.Cents(950), engine.Total())
}

func TestTotalExcludesInactive(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Price: 250, Active: true},
		{ID: 2, Price: 450, Active: true},
	}
	counts := map[int64]int{1: 2, 2: 1}

	engine := newTestEngine(products, counts)
	before := engine.Total()

	// Deactivating mid-session drops the product from the total even
	// though the cart still holds a quantity for it.
	products[1].Active = false
	after := engine.Total()

	assert.Equal(t, money.Cents(950), before)
	assert.Equal(t, before-450, after)
}

func TestTotalIgnoresStaleCartEntries(t *testing.T) {
	engine := newTestEngine([]domain.Product{
		{ID: 1, Price: 100, Active: true},
	}, map[int64]int{1: 1, 999: 5})

	assert.Equal(t, money.Cents(100), engine.Total())
}

func TestAddTenderRejectsIllegalValues(t *testing.T) {
	engine := newTestEngine(nil, map[int64]int{})

	for _, face := range Denominations {
		require.NoError(t, engine.AddTender(face))
	}
	for _, face := range []money.Cents{0, 1, 5, 25, 300, 10000, -100} {
		err := engine.AddTender(face)
		require.Error(t, err, "face %d", face)
		assert.True(t, domain.IsValidation(err))
	}
	assert.Len(t, engine.Tender(), len(Denominations))
}

func TestRemoveTender(t *testing.T) {
	engine := newTestEngine(nil, map[int64]int{})
	require.NoError(t, engine.AddTender(500))
	require.NoError(t, engine.AddTender(200))
	require.NoError(t, engine.AddTender(50))

	require.NoError(t, engine.RemoveTender(1))
	assert.Equal(t, []money.Cents{500, 50}, engine.Tender())

	err := engine.RemoveTender(2)
	require.Error(t, err)
	assert.True(t, domain.IsIndex(err))

	err = engine.RemoveTender(-1)
	require.Error(t, err)
	assert.True(t, domain.IsIndex(err))
}

func TestScenarioB(t *testing.T) {
	// total 9,50 €, tender two 5 € notes -> change one 50-cent coin.
	engine := newTestEngine([]domain.Product{
		{ID: 1, Price: 250, Active: true},
		{ID: 2, Price: 450, Active: true},
	}, map[int64]int{1: 2, 2: 1})

	require.NoError(t, engine.AddTender(500))
	require.NoError(t, engine.AddTender(500))

	assert.Equal(t, money.Cents(1000), engine.TenderedTotal())
	assert.True(t, engine.IsSufficient())

	sufficient, change := engine.Confirm()
	require.True(t, sufficient)
	assert.Equal(t, []ChangeLine{{Denomination: 50, Count: 1}}, change)
	assert.Equal(t, StateChangeDisplayed, engine.State())
}

func TestScenarioCExactPayment(t *testing.T) {
	engine := newTestEngine([]domain.Product{
		{ID: 1, Price: 1000, Active: true},
	}, map[int64]int{1: 1})

	require.NoError(t, engine.AddTender(1000))

	sufficient, change := engine.Confirm()
	require.True(t, sufficient)
	assert.Empty(t, change)
}

func TestScenarioDInsufficientTender(t *testing.T) {
	engine := newTestEngine([]domain.Product{
		{ID: 1, Price: 250, Active: true},
		{ID: 2, Price: 450, Active: true},
	}, map[int64]int{1: 2, 2: 1})

	require.NoError(t, engine.AddTender(500))

	assert.Equal(t, money.Cents(500), engine.TenderedTotal())
	assert.False(t, engine.IsSufficient())

	// Insufficient tender is a warning, not an error: the engine stays
	// in Tendering and no change is computed.
	sufficient, change := engine.Confirm()
	assert.False(t, sufficient)
	assert.Nil(t, change)
	assert.Equal(t, StateTendering, engine.State())
}

func TestStateMachine(t *testing.T) {
	engine := newTestEngine([]domain.Product{
		{ID: 1, Price: 100, Active: true},
	}, map[int64]int{1: 1})

	assert.Equal(t, StateBrowsing, engine.State())

	require.NoError(t, engine.AddTender(200))
	assert.Equal(t, StateTendering, engine.State())

	sufficient, _ := engine.Confirm()
	require.True(t, sufficient)
	assert.Equal(t, StateChangeDisplayed, engine.State())

	engine.Complete()
	assert.Equal(t, StateBrowsing, engine.State())
	assert.Empty(t, engine.Tender())
}

func TestCompletePublishes(t *testing.T) {
	bus := EventBus.New()
	engine := NewEngine(
		&fakeCatalog{products: []domain.Product{{ID: 1, Price: 950, Active: true}}},
		&fakeCart{counts: map[int64]int{1: 1}},
		bus,
	)

	var got Completed
	require.NoError(t, bus.Subscribe(TopicCompleted, func(done Completed) { got = done }))

	require.NoError(t, engine.AddTender(1000))
	done := engine.Complete()

	assert.Equal(t, money.Cents(950), done.Total)
	assert.Equal(t, money.Cents(1000), done.Tendered)
	assert.Equal(t, money.Cents(50), done.Change)
	assert.Equal(t, 1, done.TenderEntries)
	assert.Equal(t, done, got)
}

func TestComputeChangeExhaustive(t *testing.T) {
	// The Euro series is canonical: the greedy walk always reaches a
	// zero remainder for any non-negative cent amount.
	for change := money.Cents(0); change <= 10000; change += 10 {
		lines := ComputeChange(0, change)

		var sum money.Cents
		prev := money.Cents(1 << 30)
		for _, line := range lines {
			require.Greater(t, line.Count, 0, "change %d", change)
			require.Less(t, line.Denomination, prev, "change %d: not descending", change)
			prev = line.Denomination
			sum += line.Denomination.MulQty(line.Count)
		}
		require.Equal(t, change, sum, "change %d not fully broken down", change)
	}
}

func TestComputeChangeNeverNegative(t *testing.T) {
	assert.Empty(t, ComputeChange(1000, 500))
	assert.Empty(t, ComputeChange(1000, 1000))
}
