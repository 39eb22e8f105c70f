package checkout

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/pkg/money"
)

// TopicCompleted is published once per finalized sale.
const TopicCompleted = "checkout.completed"

// Denominations is the legal Euro tender set, descending face value.
var Denominations = []money.Cents{5000, 2000, 1000, 500, 200, 100, 50, 20, 10}

// State of the per-customer visit.
type State int

const (
	StateBrowsing State = iota
	StateTendering
	StateChangeDisplayed
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateTendering:
		return "tendering"
	case StateChangeDisplayed:
		return "change_displayed"
	default:
		return "unknown"
	}
}

// ChangeLine is one denomination of the change breakdown.
type ChangeLine struct {
	Denomination money.Cents `json:"denomination"`
	Count        int         `json:"count"`
}

// Completed is the payload published on TopicCompleted.
type Completed struct {
	Total         money.Cents
	Tendered      money.Cents
	Change        money.Cents
	TenderEntries int
	At            time.Time
}

// CatalogReader is the slice of the catalog store the engine needs.
type CatalogReader interface {
	ActiveProducts() []domain.Product
}

// CartReader provides a copy of the current cart.
type CartReader interface {
	Snapshot() map[int64]int
}

// Engine computes the cart total, accumulates tendered cash and
// produces the change breakdown.
type Engine struct {
	mu      sync.Mutex
	catalog CatalogReader
	cart    CartReader
	bus     EventBus.Bus
	tender  []money.Cents
	state   State
}

func NewEngine(catalogReader CatalogReader, cartReader CartReader, bus EventBus.Bus) *Engine {
	return &Engine{catalog: catalogReader, cart: cartReader, bus: bus}
}

// Total sums price × quantity over active products only. A stale cart
// entry for a deactivated or deleted product silently drops out.
func (e *Engine) Total() money.Cents {
	counts := e.cart.Snapshot()
	var total money.Cents
	for _, p := range e.catalog.ActiveProducts() {
		if qty := counts[p.ID]; qty > 0 {
			total = total.Add(p.Price.MulQty(qty))
		}
	}
	return total
}

// AddTender appends one coin or note the customer handed over. Values
// outside the legal denomination set are rejected.
func (e *Engine) AddTender(face money.Cents) error {
	if !legalDenomination(face) {
		return domain.Validationf("denomination", "%s is not a legal tender value", face.Format())
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tender = append(e.tender, face)
	if e.state == StateBrowsing {
		e.state = StateTendering
	}
	return nil
}

// RemoveTender removes the entry at position index.
func (e *Engine) RemoveTender(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.tender) {
		return &domain.IndexError{Index: index, Length: len(e.tender)}
	}
	e.tender = append(e.tender[:index], e.tender[index+1:]...)
	return nil
}

// Tender returns a copy of the tendered denominations in entry order.
func (e *Engine) Tender() []money.Cents {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]money.Cents, len(e.tender))
	copy(out, e.tender)
	return out
}

// TenderedTotal sums the tendered face values.
func (e *Engine) TenderedTotal() money.Cents {
	e.mu.Lock()
	defer e.mu.Unlock()
	return tenderedTotal(e.tender)
}

func tenderedTotal(tender []money.Cents) money.Cents {
	var sum money.Cents
	for _, face := range tender {
		sum = sum.Add(face)
	}
	return sum
}

// IsSufficient reports whether the tendered amount covers the total.
func (e *Engine) IsSufficient() bool {
	return e.TenderedTotal() >= e.Total()
}

// Confirm checks sufficiency and advances to the change display. An
// insufficient tender is a warning, not an error: the engine stays in
// Tendering and reports ok=false so the caller can warn the cashier.
func (e *Engine) Confirm() (ok bool, change []ChangeLine) {
	total := e.Total()
	tendered := e.TenderedTotal()

	e.mu.Lock()
	defer e.mu.Unlock()
	if tendered < total {
		zap.S().Debugf("insufficient tender: %s of %s", tendered.Format(), total.Format())
		e.state = StateTendering
		return false, nil
	}
	e.state = StateChangeDisplayed
	return true, ComputeChange(total, tendered)
}

// Complete finalizes the sale: the tender list is cleared, the state
// returns to Browsing and the completion is published. The caller
// resets the order session alongside ("next customer" / "finish").
func (e *Engine) Complete() Completed {
	total := e.Total()

	e.mu.Lock()
	tendered := tenderedTotal(e.tender)
	entries := len(e.tender)
	e.tender = nil
	e.state = StateBrowsing
	e.mu.Unlock()

	done := Completed{
		Total:         total,
		Tendered:      tendered,
		Change:        changeAmount(total, tendered),
		TenderEntries: entries,
		At:            time.Now(),
	}
	if e.bus != nil {
		e.bus.Publish(TopicCompleted, done)
	}
	return done
}

// State returns the current position in the visit state machine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func legalDenomination(face money.Cents) bool {
	for _, d := range Denominations {
		if d == face {
			return true
		}
	}
	return false
}

func changeAmount(total, tendered money.Cents) money.Cents {
	if tendered <= total {
		return 0
	}
	return tendered - total
}

// ComputeChange breaks the overpayment into denominations, greedy over
// descending face values. The Euro series is a canonical system, so the
// greedy walk always ends with zero remainder; denominations with a
// zero count are omitted.
func ComputeChange(total, tendered money.Cents) []ChangeLine {
	remaining := changeAmount(total, tendered)
	var lines []ChangeLine
	for _, d := range Denominations {
		if remaining <= 0 {
			break
		}
		if count := int(remaining / d); count > 0 {
			lines = append(lines, ChangeLine{Denomination: d, Count: count})
			remaining -= d.MulQty(count)
		}
	}
	return lines
}
