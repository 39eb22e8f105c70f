package catalog

import (
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/internal/kvstore"
	"github.com/glueckskekse/kasse/pkg/money"
)

func newTestKV(t *testing.T) *kvstore.Store {
	t.Helper()
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "kasse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(newTestKV(t), EventBus.New(), nil)
	require.NoError(t, s.Load())
	return s
}

func TestLoadSeedsDefaults(t *testing.T) {
	s := newTestStore(t)

	cats := s.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Glückskekse-Sortiment", cats[0].Name)
	assert.Equal(t, "Glückscafé", cats[1].Name)

	products := s.Products()
	require.Len(t, products, len(cafeSeed))
	for _, p := range products {
		assert.Equal(t, cats[1].ID, p.CategoryID)
		assert.True(t, p.Active)
	}
}

func TestAddProductValidation(t *testing.T) {
	s := newTestStore(t)
	catID := s.Categories()[0].ID

	cases := []struct {
		name  string
		draft ProductDraft
	}{
		{"empty name", ProductDraft{Name: "  ", Price: 100, Image: "x", CategoryID: catID}},
		{"negative price", ProductDraft{Name: "Keks", Price: -1, Image: "x", CategoryID: catID}},
		{"missing image", ProductDraft{Name: "Keks", Price: 100, CategoryID: catID}},
		{"unknown category", ProductDraft{Name: "Keks", Price: 100, Image: "x", CategoryID: 12345}},
	}
	before := len(s.Products())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := s.AddProduct(c.draft)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
	// Failed validation never mutates state.
	assert.Len(t, s.Products(), before)
}

func TestAddAndUpdateProduct(t *testing.T) {
	s := newTestStore(t)
	catID := s.Categories()[0].ID

	p, err := s.AddProduct(ProductDraft{Name: "Glückskeks", Price: 150, Image: "keks.jpg", CategoryID: catID})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.True(t, p.Active)

	newName := "Glückskeks XXL"
	newPrice := money.Cents(200)
	updated, err := s.UpdateProduct(p.ID, ProductPatch{Name: &newName, Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "Glückskeks XXL", updated.Name)
	assert.Equal(t, money.Cents(200), updated.Price)

	_, err = s.UpdateProduct(99999, ProductPatch{Name: &newName})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestSetActive(t *testing.T) {
	s := newTestStore(t)
	p := s.Products()[0]

	require.NoError(t, s.SetActive(p.ID, false))

	got, found := s.Product(p.ID)
	require.True(t, found)
	assert.False(t, got.Active)
	for _, active := range s.ActiveProducts() {
		assert.NotEqual(t, p.ID, active.ID)
	}

	err := s.SetActive(99999, true)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteProductPublishesPrunedIDs(t *testing.T) {
	bus := EventBus.New()
	s := NewStore(newTestKV(t), bus, nil)
	require.NoError(t, s.Load())

	var lastIDs map[int64]struct{}
	require.NoError(t, bus.Subscribe(TopicChanged, func(ids map[int64]struct{}) { lastIDs = ids }))

	p := s.Products()[0]
	require.NoError(t, s.DeleteProduct(p.ID))

	_, found := s.Product(p.ID)
	assert.False(t, found)
	require.NotNil(t, lastIDs)
	_, stillThere := lastIDs[p.ID]
	assert.False(t, stillThere)

	err := s.DeleteProduct(p.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	s := newTestStore(t)
	cafe := s.Categories()[1]

	err := s.DeleteCategory(cafe.ID)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	// Reassign everything, then deletion goes through.
	sortiment := s.Categories()[0].ID
	for _, p := range s.Products() {
		if p.CategoryID == cafe.ID {
			_, err := s.UpdateProduct(p.ID, ProductPatch{CategoryID: &sortiment})
			require.NoError(t, err)
		}
	}
	require.NoError(t, s.DeleteCategory(cafe.ID))
	assert.Len(t, s.Categories(), 1)
}

func TestReorder(t *testing.T) {
	s := newTestStore(t)
	cafe := s.Categories()[1].ID

	original := s.Products()
	names := func() []string {
		var out []string
		for _, p := range s.Products() {
			out = append(out, p.Name)
		}
		return out
	}

	// Move the first two products behind the fourth.
	require.NoError(t, s.Reorder(cafe, []int{0, 1}, 4))

	got := names()
	want := []string{
		original[2].Name, original[3].Name,
		original[0].Name, original[1].Name,
		original[4].Name,
	}
	assert.Equal(t, want, got[:5])

	t.Run("out of range", func(t *testing.T) {
		err := s.Reorder(cafe, []int{99}, 0)
		require.Error(t, err)
		assert.True(t, domain.IsIndex(err))

		err = s.Reorder(cafe, []int{0}, -1)
		require.Error(t, err)
		assert.True(t, domain.IsIndex(err))
	})

	t.Run("unknown category", func(t *testing.T) {
		err := s.Reorder(99999, []int{0}, 0)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestPersistenceAcrossReopen(t *testing.T) {
	kv := newTestKV(t)
	bus := EventBus.New()

	s := NewStore(kv, bus, nil)
	require.NoError(t, s.Load())
	catID := s.Categories()[0].ID
	p, err := s.AddProduct(ProductDraft{Name: "Armband", Price: 300, Image: "armband.jpg", CategoryID: catID})
	require.NoError(t, err)

	reopened := NewStore(kv, bus, nil)
	require.NoError(t, reopened.Load())

	got, found := reopened.Product(p.ID)
	require.True(t, found)
	assert.Equal(t, "Armband", got.Name)
	assert.Equal(t, money.Cents(300), got.Price)
	assert.Len(t, reopened.Products(), len(s.Products()))
}
