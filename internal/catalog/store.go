package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/glueckskekse/kasse/internal/assets"
	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/internal/kvstore"
	"github.com/glueckskekse/kasse/pkg/common"
	"github.com/glueckskekse/kasse/pkg/money"
)

const (
	keyCategories    = "categories"
	keyProducts      = "products"
	keySchemaVersion = "schema_version"

	// TopicChanged carries the surviving product-id set after every
	// catalog mutation. Cart sessions subscribe to prune stale entries.
	TopicChanged = "catalog.changed"
)

// Store is the authoritative, persisted collection of categories and
// products. All mutations go through a single writer lock; snapshots
// handed out are copies.
type Store struct {
	mu         sync.RWMutex
	kv         *kvstore.Store
	bus        EventBus.Bus
	assets     *assets.Store
	categories []domain.Category
	products   []domain.Product
}

func NewStore(kv *kvstore.Store, bus EventBus.Bus, assetStore *assets.Store) *Store {
	return &Store{kv: kv, bus: bus, assets: assetStore}
}

// ProductDraft carries the mandatory fields for a new product.
type ProductDraft struct {
	Name       string      `json:"name"`
	Price      money.Cents `json:"price"`
	Image      string      `json:"image"`
	CategoryID int64       `json:"category_id,string"`
}

type CategoryDraft struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ProductPatch updates a product in place; nil fields are left as-is.
type ProductPatch struct {
	Name       *string      `json:"name"`
	Price      *money.Cents `json:"price"`
	Image      *string      `json:"image"`
	CategoryID *int64       `json:"category_id,string"`
	Active     *bool        `json:"is_active"`
}

type CategoryPatch struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// Load reads the persisted catalog, running the one-time schema
// migration and first-run seeding when needed.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var version int
	if _, err := s.kv.Get(kvstore.BucketCatalog, keySchemaVersion, &version); err != nil {
		return &domain.PersistenceError{Op: "load schema version", Err: err}
	}
	if version < schemaVersion {
		if err := s.migrateLocked(version); err != nil {
			return err
		}
	}

	s.categories = nil
	s.products = nil
	if _, err := s.kv.Get(kvstore.BucketCatalog, keyCategories, &s.categories); err != nil {
		return &domain.PersistenceError{Op: "load categories", Err: err}
	}
	if _, err := s.kv.Get(kvstore.BucketCatalog, keyProducts, &s.products); err != nil {
		return &domain.PersistenceError{Op: "load products", Err: err}
	}

	// First run only: a till that was migrated keeps whatever the
	// legacy lists contained, even if that is an empty product list.
	seeded := false
	if len(s.categories) == 0 {
		s.seedDefaultCategoriesLocked()
		if len(s.products) == 0 {
			s.seedDefaultProductsLocked()
		}
		seeded = true
	}
	if seeded {
		if err := s.persistLocked("seed catalog"); err != nil {
			return err
		}
	}

	zap.S().Infof("catalog loaded: %d categories, %d products", len(s.categories), len(s.products))
	s.publishChangedLocked()
	return nil
}

// Categories returns a copy of the category list in display order.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Products returns a copy of the product list in display order.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ActiveProducts returns only the products visible for ordering.
func (s *Store) ActiveProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) Product(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Category looks up a category by id. A dangling reference simply
// yields ok=false; it never crashes a lookup.
func (s *Store) Category(id int64) (domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// ProductIDs returns the set of known product ids.
func (s *Store) ProductIDs() map[int64]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productIDsLocked()
}

func (s *Store) productIDsLocked() map[int64]struct{} {
	ids := make(map[int64]struct{}, len(s.products))
	for _, p := range s.products {
		ids[p.ID] = struct{}{}
	}
	return ids
}

func (s *Store) AddProduct(draft ProductDraft) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return domain.Product{}, domain.Validationf("name", "product name is required")
	}
	if draft.Price < 0 {
		return domain.Product{}, domain.Validationf("price", "price must not be negative")
	}
	if strings.TrimSpace(draft.Image) == "" {
		return domain.Product{}, domain.Validationf("image", "product image is required")
	}
	if !s.categoryExistsLocked(draft.CategoryID) {
		return domain.Product{}, domain.Validationf("category_id", "category %d does not exist", draft.CategoryID)
	}

	now := time.Now()
	p := domain.Product{
		ID:         common.UUIDint64(),
		Name:       draft.Name,
		Price:      draft.Price,
		Image:      strings.TrimSpace(draft.Image),
		Active:     true,
		CategoryID: draft.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.products = append(s.products, p)
	err := s.persistLocked("add product")
	s.publishChangedLocked()
	return p, err
}

func (s *Store) AddCategory(draft CategoryDraft) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return domain.Category{}, domain.Validationf("name", "category name is required")
	}
	if strings.TrimSpace(draft.Image) == "" {
		return domain.Category{}, domain.Validationf("image", "category image is required")
	}

	now := time.Now()
	c := domain.Category{
		ID:        common.UUIDint64(),
		Name:      draft.Name,
		Image:     strings.TrimSpace(draft.Image),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.categories = append(s.categories, c)
	err := s.persistLocked("add category")
	s.publishChangedLocked()
	return c, err
}

func (s *Store) UpdateProduct(id int64, patch ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Product{}, &domain.NotFoundError{Kind: "product", ID: id}
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Product{}, domain.Validationf("name", "product name is required")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return domain.Product{}, domain.Validationf("price", "price must not be negative")
	}
	if patch.Image != nil && strings.TrimSpace(*patch.Image) == "" {
		return domain.Product{}, domain.Validationf("image", "product image is required")
	}
	if patch.CategoryID != nil && !s.categoryExistsLocked(*patch.CategoryID) {
		return domain.Product{}, domain.Validationf("category_id", "category %d does not exist", *patch.CategoryID)
	}

	p := &s.products[idx]
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = strings.TrimSpace(*patch.Image)
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	p.UpdatedAt = time.Now()

	err := s.persistLocked("update product")
	s.publishChangedLocked()
	return *p, err
}

func (s *Store) UpdateCategory(id int64, patch CategoryPatch) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Category{}, &domain.NotFoundError{Kind: "category", ID: id}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Category{}, domain.Validationf("name", "category name is required")
	}
	if patch.Image != nil && strings.TrimSpace(*patch.Image) == "" {
		return domain.Category{}, domain.Validationf("image", "category image is required")
	}

	c := &s.categories[idx]
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Image != nil {
		c.Image = strings.TrimSpace(*patch.Image)
	}
	c.UpdatedAt = time.Now()

	err := s.persistLocked("update category")
	s.publishChangedLocked()
	return *c, err
}

// DeleteProduct removes a product, releases its uploaded image asset
// and notifies subscribers so cart entries get pruned.
func (s *Store) DeleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.NotFoundError{Kind: "product", ID: id}
	}

	removed := s.products[idx]
	s.products = append(s.products[:idx], s.products[idx+1:]...)

	if s.assets != nil && s.assets.IsUserAsset(removed.Image) {
		if err := s.assets.Delete(removed.Image); err != nil {
			zap.S().Warnf("failed to delete asset %s: %v", removed.Image, err)
		}
	}

	err := s.persistLocked("delete product")
	s.publishChangedLocked()
	return err
}

// DeleteCategory refuses to remove a category while products still
// reference it; reassign those products first.
func (s *Store) DeleteCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.NotFoundError{Kind: "category", ID: id}
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return domain.Validationf("category_id", "category %d is still referenced by product %q", id, p.Name)
		}
	}

	removed := s.categories[idx]
	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)

	if s.assets != nil && s.assets.IsUserAsset(removed.Image) {
		if err := s.assets.Delete(removed.Image); err != nil {
			zap.S().Warnf("failed to delete asset %s: %v", removed.Image, err)
		}
	}

	err := s.persistLocked("delete category")
	s.publishChangedLocked()
	return err
}

// SetActive toggles product visibility without deleting it.
func (s *Store) SetActive(id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].Active = active
			s.products[i].UpdatedAt = time.Now()
			err := s.persistLocked("set active")
			s.publishChangedLocked()
			return err
		}
	}
	return &domain.NotFoundError{Kind: "product", ID: id}
}

// Reorder applies a stable move of the products at fromIndices (indices
// within the category's display order) to toIndex in that same order.
func (s *Store) Reorder(categoryID int64, fromIndices []int, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryExistsLocked(categoryID) {
		return &domain.NotFoundError{Kind: "category", ID: categoryID}
	}

	// Positions of this category's products in the global list.
	var positions []int
	for i, p := range s.products {
		if p.CategoryID == categoryID {
			positions = append(positions, i)
		}
	}

	if toIndex < 0 || toIndex > len(positions) {
		return &domain.IndexError{Index: toIndex, Length: len(positions) + 1}
	}
	selected := make(map[int]bool, len(fromIndices))
	for _, from := range fromIndices {
		if from < 0 || from >= len(positions) {
			return &domain.IndexError{Index: from, Length: len(positions)}
		}
		selected[from] = true
	}

	ordered := make([]domain.Product, len(positions))
	for i, pos := range positions {
		ordered[i] = s.products[pos]
	}

	var moved, rest []domain.Product
	insertAt := toIndex
	for i, p := range ordered {
		if selected[i] {
			moved = append(moved, p)
			if i < toIndex {
				insertAt--
			}
		} else {
			rest = append(rest, p)
		}
	}
	reordered := make([]domain.Product, 0, len(ordered))
	reordered = append(reordered, rest[:insertAt]...)
	reordered = append(reordered, moved...)
	reordered = append(reordered, rest[insertAt:]...)

	for i, pos := range positions {
		s.products[pos] = reordered[i]
	}

	err := s.persistLocked("reorder products")
	s.publishChangedLocked()
	return err
}

func (s *Store) categoryExistsLocked(id int64) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// persistLocked writes the current in-memory catalog. On failure the
// mutation stays applied in memory; callers get a PersistenceError so
// they know durability is not guaranteed yet.
func (s *Store) persistLocked(op string) error {
	if err := s.kv.Put(kvstore.BucketCatalog, keyCategories, s.categories); err != nil {
		zap.S().Errorf("catalog persist failed (%s): %v", op, err)
		return &domain.PersistenceError{Op: op, Err: err}
	}
	if err := s.kv.Put(kvstore.BucketCatalog, keyProducts, s.products); err != nil {
		zap.S().Errorf("catalog persist failed (%s): %v", op, err)
		return &domain.PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (s *Store) publishChangedLocked() {
	if s.bus == nil {
		return
	}
	s.bus.Publish(TopicChanged, s.productIDsLocked())
}
