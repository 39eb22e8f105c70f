package catalog

import (
	"time"

	"go.uber.org/zap"

	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/pkg/common"
	"github.com/glueckskekse/kasse/pkg/money"
)

// seedDefaultCategoriesLocked creates the two stand categories on a
// till that has none at all.
func (s *Store) seedDefaultCategoriesLocked() {
	now := time.Now()
	s.categories = append(s.categories,
		domain.Category{
			ID:        common.UUIDint64(),
			Name:      "Glückskekse-Sortiment",
			Image:     "logo",
			CreatedAt: now,
			UpdatedAt: now,
		},
		domain.Category{
			ID:        common.UUIDint64(),
			Name:      "Glückscafé",
			Image:     "logo",
			CreatedAt: now,
			UpdatedAt: now,
		},
	)
	zap.S().Info("seeded default categories")
}

type seedProduct struct {
	name  string
	price float64
	image string
}

var cafeSeed = []seedProduct{
	{"Ein Stück Kuchen", 2.5, "Ein Stück Kuchen"},
	{"Eisbecher 'Glückskekse'🍨 🍀🍪", 4.5, "Eisbecher 'Glückskekse'"},
	{"Eisbecher 'Schokoglück'🍨 🍫🍀", 4.5, "Eisbecher 'Glückskekse'"},
	{"Eisbecher 'Glückliche Kirsche'🍨 🍒", 4.5, "Eisbecher 'Glückliche Kirsche'"},
	{"Eisbecher 'Gemischtes Glück'🍨 🍀", 4.0, "Eisbecher 'Glückskekse'"},
	{"Becher Kaffee", 2.0, "Becher Kaffee"},
	{"Heiße Schokolade", 2.5, "Heiße Schokolade"},
	{"Tee", 2.0, "Tee"},
	{"Sprudel", 1.5, "Sprudel"},
	{"Bio-Limo (Flasche)", 2.5, "Bio-Limo (Flasche)"},
	{"Zitrone-Ingwer-Limo (hausgemacht)", 2.0, "logo"},
	{"Karotte küsst Ingwersaft (mit Apfelsaft)", 3.5, "logo"},
}

// seedDefaultProductsLocked fills the café category with the stand's
// standing menu on first run. Requires the default categories.
func (s *Store) seedDefaultProductsLocked() {
	if len(s.categories) < 2 {
		return
	}
	cafeCat := s.categories[1].ID
	now := time.Now()
	for _, sp := range cafeSeed {
		s.products = append(s.products, domain.Product{
			ID:         common.UUIDint64(),
			Name:       sp.name,
			Price:      money.ToCents(sp.price),
			Image:      sp.image,
			Active:     true,
			CategoryID: cafeCat,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	zap.S().Infof("seeded %d cafe products", len(cafeSeed))
}
