package order

import (
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glueckskekse/kasse/internal/catalog"
)

func TestIncrementDecrement(t *testing.T) {
	s := NewSession(nil)

	assert.Equal(t, 1, s.Increment(7))
	assert.Equal(t, 2, s.Increment(7))
	assert.Equal(t, 1, s.Decrement(7))
	assert.Equal(t, 0, s.Decrement(7))
	assert.Equal(t, 0, s.Quantity(7))
}

func TestDecrementAtZeroIsNoop(t *testing.T) {
	s := NewSession(nil)

	// Decrementing an absent entry never goes negative.
	assert.Equal(t, 0, s.Decrement(42))
	assert.Equal(t, 0, s.Decrement(42))
	assert.Equal(t, 0, s.Quantity(42))
}

func TestReset(t *testing.T) {
	s := NewSession(nil)
	s.Increment(1)
	s.Increment(2)
	s.Increment(2)

	s.Reset()

	assert.Empty(t, s.Snapshot())
	assert.Equal(t, 0, s.Quantity(2))
}

func TestPruneMissing(t *testing.T) {
	s := NewSession(nil)
	s.Increment(1)
	s.Increment(2)
	s.Increment(3)

	s.PruneMissing(map[int64]struct{}{1: {}, 3: {}})

	assert.Equal(t, map[int64]int{1: 1, 3: 1}, s.Snapshot())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewSession(nil)
	s.Increment(1)

	snap := s.Snapshot()
	snap[1] = 99

	assert.Equal(t, 1, s.Quantity(1))
}

func TestBindCatalogPrunes(t *testing.T) {
	bus := EventBus.New()
	s := NewSession(bus)
	require.NoError(t, s.BindCatalog(bus))

	s.Increment(1)
	s.Increment(2)

	bus.Publish(catalog.TopicChanged, map[int64]struct{}{2: {}})

	assert.Equal(t, map[int64]int{2: 1}, s.Snapshot())
}
