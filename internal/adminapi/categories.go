package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/catalog"
	"github.com/glueckskekse/kasse/internal/webserver"
)

type categoryPayload struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type categoryPatchPayload struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

func registerCategoryRoutes(s *webserver.Server) {
	s.ApiGET("/categories", listCategories)
	s.AdminPOST("/categories", createCategory)
	s.AdminPUT("/categories/:id", updateCategory)
	s.AdminDELETE("/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	return ok(c, webserver.GetApp(c).Catalog().Categories())
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	cat, err := webserver.GetApp(c).Catalog().AddCategory(catalog.CategoryDraft{
		Name:  payload.Name,
		Image: payload.Image,
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cat)
}

func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var payload categoryPatchPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	cat, err := webserver.GetApp(c).Catalog().UpdateCategory(id, catalog.CategoryPatch{
		Name:  payload.Name,
		Image: payload.Image,
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cat)
}

// deleteCategory refuses while products still reference the category;
// the admin reassigns those first.
func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	if err := webserver.GetApp(c).Catalog().DeleteCategory(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
