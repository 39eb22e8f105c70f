package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/webserver"
)

func registerBackupRoutes(s *webserver.Server) {
	s.AdminGET("/backup/products.csv", exportProductsCSV)
	s.AdminPOST("/backup/products.csv", importProductsCSV)
}

func exportProductsCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return webserver.GetApp(c).Catalog().ExportProductsCSV(c.Response())
}

func importProductsCSV(c echo.Context) error {
	imported, err := webserver.GetApp(c).Catalog().ImportProductsCSV(c.Request().Body)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"imported": imported})
}
