package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/webserver"
)

func registerCartRoutes(s *webserver.Server) {
	s.ApiGET("/cart", getCart)
	s.ApiPOST("/cart/:id/increment", incrementCart)
	s.ApiPOST("/cart/:id/decrement", decrementCart)
	s.ApiPOST("/cart/reset", resetCart)
}

func getCart(c echo.Context) error {
	return ok(c, webserver.GetApp(c).OrderSession().Snapshot())
}

func incrementCart(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	app := webserver.GetApp(c)
	if _, found := app.Catalog().Product(id); !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	qty := app.OrderSession().Increment(id)
	return ok(c, map[string]interface{}{"id": id, "quantity": qty})
}

func decrementCart(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	qty := webserver.GetApp(c).OrderSession().Decrement(id)
	return ok(c, map[string]interface{}{"id": id, "quantity": qty})
}

func resetCart(c echo.Context) error {
	webserver.GetApp(c).OrderSession().Reset()
	return ok(c, map[string]interface{}{"reset": true})
}
