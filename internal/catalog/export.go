package catalog

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/pkg/common"
	"github.com/glueckskekse/kasse/pkg/money"
)

// productCSV is the backup row format. Prices are decimal Euros and the
// category is referenced by name so a backup stays readable and can be
// restored onto a till with different category ids.
type productCSV struct {
	ID        int64  `csv:"id"`
	Name      string `csv:"name"`
	Price     string `csv:"price"`
	Image     string `csv:"image"`
	Active    bool   `csv:"is_active"`
	Category  string `csv:"category"`
	CreatedAt string `csv:"created_at"`
}

// ExportProductsCSV writes the full product list, including inactive
// products, as a CSV backup.
func (s *Store) ExportProductsCSV(w io.Writer) error {
	s.mu.RLock()
	rows := make([]productCSV, 0, len(s.products))
	for _, p := range s.products {
		category := ""
		for _, c := range s.categories {
			if c.ID == p.CategoryID {
				category = c.Name
				break
			}
		}
		rows = append(rows, productCSV{
			ID:        p.ID,
			Name:      p.Name,
			Price:     strconv.FormatFloat(p.Price.Euros(), 'f', 2, 64),
			Image:     p.Image,
			Active:    p.Active,
			Category:  category,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	s.mu.RUnlock()
	return gocsv.Marshal(&rows, w)
}

// ImportProductsCSV restores products from a backup. Rows whose id is
// already present are skipped, so re-importing the same file is safe.
// Categories are matched by name; rows naming an unknown category land
// in the first category.
func (s *Store) ImportProductsCSV(r io.Reader) (int, error) {
	var rows []productCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, domain.Validationf("csv", "unable to parse backup: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.categories) == 0 {
		return 0, domain.Validationf("csv", "cannot import into a catalog without categories")
	}

	existing := s.productIDsLocked()
	imported := 0
	for _, row := range rows {
		if _, dup := existing[row.ID]; dup {
			continue
		}
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row.Price), 64)
		if err != nil || price < 0 {
			zap.S().Warnf("skipping backup row %q: bad price %q", name, row.Price)
			continue
		}

		categoryID := s.categories[0].ID
		for _, c := range s.categories {
			if c.Name == strings.TrimSpace(row.Category) {
				categoryID = c.ID
				break
			}
		}

		createdAt := time.Now()
		if row.CreatedAt != "" {
			if ts, err := dateparse.ParseAny(row.CreatedAt); err == nil {
				createdAt = ts
			}
		}

		id := row.ID
		if id == 0 {
			id = common.UUIDint64()
		}
		existing[id] = struct{}{}
		s.products = append(s.products, domain.Product{
			ID:         id,
			Name:       name,
			Price:      money.ToCents(price),
			Image:      row.Image,
			Active:     row.Active,
			CategoryID: categoryID,
			CreatedAt:  createdAt,
			UpdatedAt:  time.Now(),
		})
		imported++
	}

	if imported == 0 {
		return 0, nil
	}
	err := s.persistLocked("import products")
	s.publishChangedLocked()
	return imported, err
}
