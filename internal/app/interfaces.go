package app

import (
	"github.com/glueckskekse/kasse/config"
	"github.com/glueckskekse/kasse/internal/assets"
	"github.com/glueckskekse/kasse/internal/catalog"
	"github.com/glueckskekse/kasse/internal/checkout"
	"github.com/glueckskekse/kasse/internal/order"
	"github.com/glueckskekse/kasse/internal/settings"
)

// CatalogProvider provides the catalog store
type CatalogProvider interface {
	Catalog() *catalog.Store
}

// SessionProvider provides the current order session
type SessionProvider interface {
	OrderSession() *order.Session
}

// CheckoutProvider provides the checkout engine
type CheckoutProvider interface {
	Checkout() *checkout.Engine
}

// AssetProvider provides the image asset store
type AssetProvider interface {
	Assets() *assets.Store
}

// SettingsProvider provides the persisted till settings
type SettingsProvider interface {
	Settings() *settings.Manager
}

// PinAuthority gates the admin capability behind the parent PIN
type PinAuthority interface {
	CheckPin(pin string) bool
	SetPin(pin string) error
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	CatalogProvider
	SessionProvider
	CheckoutProvider
	AssetProvider
	SettingsProvider
	PinAuthority

	Config() *config.AppConfig
	WebSecret() string
	Release()
}
