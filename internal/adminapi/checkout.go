package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/webserver"
	"github.com/glueckskekse/kasse/pkg/money"
)

type tenderPayload struct {
	// Face value in Euro, e.g. 0.5 or 20.
	Denomination float64 `json:"denomination"`
}

func registerCheckoutRoutes(s *webserver.Server) {
	s.ApiGET("/checkout", checkoutStatus)
	s.ApiPOST("/checkout/tender", addTender)
	s.ApiDELETE("/checkout/tender/:index", removeTender)
	s.ApiPOST("/checkout/confirm", confirmCheckout)
	s.ApiPOST("/checkout/complete", completeCheckout)
}

func checkoutStatus(c echo.Context) error {
	engine := webserver.GetApp(c).Checkout()
	total := engine.Total()
	tendered := engine.TenderedTotal()
	return ok(c, map[string]interface{}{
		"state":            engine.State().String(),
		"total":            total,
		"total_display":    total.Format(),
		"tender":           engine.Tender(),
		"tendered":         tendered,
		"tendered_display": tendered.Format(),
		"sufficient":       tendered >= total,
	})
}

func addTender(c echo.Context) error {
	var payload tenderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse tender", nil)
	}
	engine := webserver.GetApp(c).Checkout()
	if err := engine.AddTender(money.ToCents(payload.Denomination)); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"tender":   engine.Tender(),
		"tendered": engine.TenderedTotal(),
	})
}

func removeTender(c echo.Context) error {
	index, err := parseIDParam(c, "index")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_INDEX", "Invalid tender index", nil)
	}
	engine := webserver.GetApp(c).Checkout()
	if err := engine.RemoveTender(int(index)); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"tender":   engine.Tender(),
		"tendered": engine.TenderedTotal(),
	})
}

// confirmCheckout advances to the change display. Insufficient tender
// is a warning for the cashier, not an error response.
func confirmCheckout(c echo.Context) error {
	engine := webserver.GetApp(c).Checkout()
	sufficient, change := engine.Confirm()
	if !sufficient {
		return ok(c, map[string]interface{}{
			"sufficient": false,
			"warning":    "Der gezahlte Betrag ist niedriger als der Gesamtbetrag",
		})
	}
	return ok(c, map[string]interface{}{
		"sufficient": true,
		"change":     change,
	})
}

// completeCheckout finalizes the sale and resets for the next customer.
func completeCheckout(c echo.Context) error {
	app := webserver.GetApp(c)
	done := app.Checkout().Complete()
	app.OrderSession().Reset()
	return ok(c, map[string]interface{}{
		"total":    done.Total,
		"tendered": done.Tendered,
		"change":   done.Change,
	})
}
