package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/domain"
)

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": "OK",
		"data": data,
	})
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": msg,
		"detail":  detail,
	})
}

// failErr maps the error taxonomy onto HTTP statuses. A persistence
// failure reports 500 but the detail notes the mutation is applied in
// memory, matching the no-rollback contract.
func failErr(c echo.Context, err error) error {
	switch {
	case domain.IsValidation(err):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case domain.IsNotFound(err):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case domain.IsIndex(err):
		return fail(c, http.StatusBadRequest, "INDEX_OUT_OF_RANGE", err.Error(), nil)
	case domain.IsPersistence(err):
		return fail(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", err.Error(),
			"change applied in memory but not saved; retry or restart to verify durability")
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
	}
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
