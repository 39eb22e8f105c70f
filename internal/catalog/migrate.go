package catalog

import (
	"go.uber.org/zap"

	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/internal/kvstore"
	"github.com/glueckskekse/kasse/pkg/money"
)

// schemaVersion tags the persisted catalog layout. Version 0 is the
// legacy flat representation: two per-bucket product lists without
// category references. Migration is dispatched on this tag, so it runs
// at most once per till.
const schemaVersion = 1

const (
	legacyKeySortiment = "customProducts"
	legacyKeyCafe      = "customCafeProducts"
)

// legacyProduct is the per-bucket record written by older versions.
// Records carry no category reference; active defaults to true.
type legacyProduct struct {
	ID     int64       `json:"id,string"`
	Name   string      `json:"name"`
	Price  money.Cents `json:"price"`
	Image  string      `json:"image"`
	Active *bool       `json:"is_active,omitempty"`
}

func (s *Store) migrateLocked(from int) error {
	switch from {
	case 0:
		return s.migrateLegacyBucketsLocked()
	default:
		return s.writeSchemaVersionLocked()
	}
}

// migrateLegacyBucketsLocked folds the legacy sortiment and café lists
// into the unified representation. Each legacy product keeps its id,
// name, price, image and active flag and is assigned the category
// matching its bucket. The legacy keys are deleted afterwards and the
// schema version is bumped so subsequent loads never re-migrate.
func (s *Store) migrateLegacyBucketsLocked() error {
	var sortiment, cafe []legacyProduct
	hadSortiment, err := s.kv.Get(kvstore.BucketCatalog, legacyKeySortiment, &sortiment)
	if err != nil {
		return &domain.PersistenceError{Op: "read legacy sortiment list", Err: err}
	}
	hadCafe, err := s.kv.Get(kvstore.BucketCatalog, legacyKeyCafe, &cafe)
	if err != nil {
		return &domain.PersistenceError{Op: "read legacy cafe list", Err: err}
	}

	if !hadSortiment && !hadCafe {
		// Fresh till, nothing to fold in.
		return s.writeSchemaVersionLocked()
	}

	if _, err := s.kv.Get(kvstore.BucketCatalog, keyCategories, &s.categories); err != nil {
		return &domain.PersistenceError{Op: "read categories", Err: err}
	}
	if len(s.categories) < 2 {
		s.seedDefaultCategoriesLocked()
	}
	sortimentCat := s.categories[0].ID
	cafeCat := s.categories[1].ID

	if _, err := s.kv.Get(kvstore.BucketCatalog, keyProducts, &s.products); err != nil {
		return &domain.PersistenceError{Op: "read products", Err: err}
	}
	existing := s.productIDsLocked()

	migrate := func(list []legacyProduct, categoryID int64) {
		for _, lp := range list {
			if _, dup := existing[lp.ID]; dup {
				continue
			}
			existing[lp.ID] = struct{}{}
			active := true
			if lp.Active != nil {
				active = *lp.Active
			}
			s.products = append(s.products, domain.Product{
				ID:         lp.ID,
				Name:       lp.Name,
				Price:      lp.Price,
				Image:      lp.Image,
				Active:     active,
				CategoryID: categoryID,
			})
		}
	}
	migrate(sortiment, sortimentCat)
	migrate(cafe, cafeCat)

	if err := s.persistLocked("migrate legacy catalog"); err != nil {
		return err
	}
	if err := s.kv.Delete(kvstore.BucketCatalog, legacyKeySortiment); err != nil {
		return &domain.PersistenceError{Op: "delete legacy sortiment list", Err: err}
	}
	if err := s.kv.Delete(kvstore.BucketCatalog, legacyKeyCafe); err != nil {
		return &domain.PersistenceError{Op: "delete legacy cafe list", Err: err}
	}
	if err := s.writeSchemaVersionLocked(); err != nil {
		return err
	}

	zap.S().Infof("migrated legacy catalog: %d sortiment, %d cafe products", len(sortiment), len(cafe))
	return nil
}

func (s *Store) writeSchemaVersionLocked() error {
	if err := s.kv.Put(kvstore.BucketCatalog, keySchemaVersion, schemaVersion); err != nil {
		return &domain.PersistenceError{Op: "write schema version", Err: err}
	}
	return nil
}
