package adminapi

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/webserver"
)

const adminTokenTTL = 12 * time.Hour

func registerAuthRoutes(s *webserver.Server) {
	s.ApiPOST("/auth/login", login)
	s.AdminPUT("/auth/pin", updatePin)
}

type pinPayload struct {
	Pin string `json:"pin"`
}

// login exchanges the parent PIN for a short-lived admin token.
func login(c echo.Context) error {
	var payload pinPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}
	app := webserver.GetApp(c)
	if !app.CheckPin(payload.Pin) {
		return fail(c, http.StatusUnauthorized, "INVALID_PIN", "Wrong parent PIN", nil)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(adminTokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(app.WebSecret()))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err.Error())
	}
	return ok(c, map[string]interface{}{"token": signed})
}

func updatePin(c echo.Context) error {
	var payload pinPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse PIN", nil)
	}
	if err := webserver.GetApp(c).SetPin(payload.Pin); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"updated": true})
}
