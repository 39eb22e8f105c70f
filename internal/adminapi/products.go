package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/catalog"
	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/internal/webserver"
	"github.com/glueckskekse/kasse/pkg/money"
)

type productPayload struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	CategoryID int64   `json:"category_id,string"`
}

type productPatchPayload struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price"`
	Image      *string  `json:"image"`
	CategoryID *int64   `json:"category_id,string"`
	Active     *bool    `json:"is_active"`
}

type activePayload struct {
	Active bool `json:"active"`
}

type reorderPayload struct {
	CategoryID int64 `json:"category_id,string"`
	From       []int `json:"from"`
	To         int   `json:"to"`
}

func registerProductRoutes(s *webserver.Server) {
	s.ApiGET("/products", listProducts)
	s.ApiGET("/products/:id", getProduct)
	s.AdminPOST("/products", createProduct)
	s.AdminPUT("/products/:id", updateProduct)
	s.AdminDELETE("/products/:id", deleteProduct)
	s.AdminPUT("/products/:id/active", setProductActive)
	s.AdminPOST("/products/reorder", reorderProducts)
}

// listProducts returns active products for the till view; ?all=true
// includes deactivated products for the admin view.
func listProducts(c echo.Context) error {
	store := webserver.GetApp(c).Catalog()
	var rows []domain.Product
	if c.QueryParam("all") == "true" {
		rows = store.Products()
	} else {
		rows = store.ActiveProducts()
	}
	return ok(c, rows)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, found := webserver.GetApp(c).Catalog().Product(id)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := webserver.GetApp(c).Catalog().AddProduct(catalog.ProductDraft{
		Name:       payload.Name,
		Price:      money.ToCents(payload.Price),
		Image:      payload.Image,
		CategoryID: payload.CategoryID,
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productPatchPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	patch := catalog.ProductPatch{
		Name:       payload.Name,
		Image:      payload.Image,
		CategoryID: payload.CategoryID,
		Active:     payload.Active,
	}
	if payload.Price != nil {
		price := money.ToCents(*payload.Price)
		patch.Price = &price
	}
	p, err := webserver.GetApp(c).Catalog().UpdateProduct(id, patch)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := webserver.GetApp(c).Catalog().DeleteProduct(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func setProductActive(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload activePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse active flag", nil)
	}
	if err := webserver.GetApp(c).Catalog().SetActive(id, payload.Active); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id, "active": payload.Active})
}

func reorderProducts(c echo.Context) error {
	var payload reorderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse reorder request", nil)
	}
	if err := webserver.GetApp(c).Catalog().Reorder(payload.CategoryID, payload.From, payload.To); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"reordered": true})
}
