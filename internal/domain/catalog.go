package domain

import (
	"time"

	"github.com/glueckskekse/kasse/pkg/money"
)

// Category groups products for display.
type Category struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a single catalog item. Price is kept in integer cents and
// serialized as a two-decimal Euro amount. A zero CategoryID means the
// product is uncategorized, a state that only exists before the legacy
// migration has assigned it a category.
type Product struct {
	ID         int64       `json:"id,string"`
	Name       string      `json:"name"`
	Price      money.Cents `json:"price"`
	Image      string      `json:"image"`
	Active     bool        `json:"is_active"`
	CategoryID int64       `json:"category_id,string,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Categorized reports whether the product references a category.
func (p Product) Categorized() bool {
	return p.CategoryID != 0
}
