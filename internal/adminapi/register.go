// Package adminapi wires the till and admin HTTP endpoints. The UI is
// an external collaborator; these handlers only translate between HTTP
// and the catalog, order session and checkout engine.
package adminapi

import (
	"github.com/glueckskekse/kasse/internal/webserver"
)

func Register(s *webserver.Server) {
	registerAuthRoutes(s)
	registerProductRoutes(s)
	registerCategoryRoutes(s)
	registerCartRoutes(s)
	registerCheckoutRoutes(s)
	registerAssetRoutes(s)
	registerBackupRoutes(s)
	registerSettingsRoutes(s)
}
