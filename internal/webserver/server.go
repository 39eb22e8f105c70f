package webserver

import (
	"context"
	"fmt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/glueckskekse/kasse/config"
	"github.com/glueckskekse/kasse/internal/assets"
	"github.com/glueckskekse/kasse/internal/catalog"
	"github.com/glueckskekse/kasse/internal/checkout"
	"github.com/glueckskekse/kasse/internal/order"
	"github.com/glueckskekse/kasse/internal/settings"
)

const appContextKey = "kasse.app"

// AppContext is the slice of the application the HTTP handlers need.
type AppContext interface {
	Catalog() *catalog.Store
	OrderSession() *order.Session
	Checkout() *checkout.Engine
	Assets() *assets.Store
	Settings() *settings.Manager
	CheckPin(pin string) bool
	SetPin(pin string) error
	WebSecret() string
}

// Server hosts the till and admin API. Admin routes sit behind the JWT
// capability token issued by the PIN login.
type Server struct {
	echo  *echo.Echo
	cfg   config.WebConfig
	api   *echo.Group
	admin *echo.Group
}

func New(appCtx AppContext, cfg config.WebConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})

	api := e.Group("/api")
	admin := api.Group("/admin", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Secret),
	}))

	return &Server{echo: e, cfg: cfg, api: api, admin: admin}
}

// GetApp returns the application context injected by the middleware.
func GetApp(c echo.Context) AppContext {
	return c.Get(appContextKey).(AppContext)
}

func (s *Server) ApiGET(path string, h echo.HandlerFunc) {
	s.api.GET(path, h)
}

func (s *Server) ApiPOST(path string, h echo.HandlerFunc) {
	s.api.POST(path, h)
}

func (s *Server) ApiPUT(path string, h echo.HandlerFunc) {
	s.api.PUT(path, h)
}

func (s *Server) ApiDELETE(path string, h echo.HandlerFunc) {
	s.api.DELETE(path, h)
}

func (s *Server) AdminGET(path string, h echo.HandlerFunc) {
	s.admin.GET(path, h)
}

func (s *Server) AdminPOST(path string, h echo.HandlerFunc) {
	s.admin.POST(path, h)
}

func (s *Server) AdminPUT(path string, h echo.HandlerFunc) {
	s.admin.PUT(path, h)
}

func (s *Server) AdminDELETE(path string, h echo.HandlerFunc) {
	s.admin.DELETE(path, h)
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	zap.S().Infof("till api listening on %s", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
