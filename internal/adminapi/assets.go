package adminapi

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/webserver"
)

// 8 MB is plenty for a product photo.
const maxAssetSize = 8 << 20

func registerAssetRoutes(s *webserver.Server) {
	s.ApiGET("/assets/:ref", serveAsset)
	s.AdminPOST("/assets", uploadAsset)
}

func serveAsset(c echo.Context) error {
	path, err := webserver.GetApp(c).Assets().Resolve(c.Param("ref"))
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Asset not found", nil)
	}
	return c.File(path)
}

func uploadAsset(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing file upload", nil)
	}
	if fh.Size > maxAssetSize {
		return fail(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Image exceeds the size limit", nil)
	}
	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read upload", err.Error())
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read upload", err.Error())
	}

	ref, err := webserver.GetApp(c).Assets().StoreBytes(data, filepath.Ext(fh.Filename))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store asset", err.Error())
	}
	return ok(c, map[string]interface{}{"ref": ref})
}
