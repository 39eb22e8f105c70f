package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/glueckskekse/kasse/config"
	"github.com/glueckskekse/kasse/internal/assets"
	"github.com/glueckskekse/kasse/internal/catalog"
	"github.com/glueckskekse/kasse/internal/checkout"
	"github.com/glueckskekse/kasse/internal/kvstore"
	"github.com/glueckskekse/kasse/internal/order"
	"github.com/glueckskekse/kasse/internal/settings"
	"github.com/glueckskekse/kasse/pkg/metrics"
)

// Application wires the till components together: keyed blob store,
// catalog, order session, checkout engine, settings and the event bus
// connecting them.
type Application struct {
	appConfig *config.AppConfig
	kv        *kvstore.Store
	bus       EventBus.Bus
	catalog   *catalog.Store
	session   *order.Session
	engine    *checkout.Engine
	assets    *assets.Store
	settings  *settings.Manager
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ CatalogProvider  = (*Application)(nil)
	_ SessionProvider  = (*Application)(nil)
	_ CheckoutProvider = (*Application)(nil)
	_ AssetProvider    = (*Application)(nil)
	_ SettingsProvider = (*Application)(nil)
	_ PinAuthority     = (*Application)(nil)
	_ AppContext       = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		return err
	}

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	a.kv, err = kvstore.Open(filepath.Join(cfg.System.Workdir, "kasse.db"))
	if err != nil {
		return err
	}

	a.assets, err = assets.NewStore(filepath.Join(cfg.System.Workdir, "assets"), cfg.System.BundledAssets)
	if err != nil {
		return err
	}

	a.bus = EventBus.New()
	a.settings = settings.NewManager(a.kv)
	a.catalog = catalog.NewStore(a.kv, a.bus, a.assets)
	a.session = order.NewSession(a.bus)
	if err := a.session.BindCatalog(a.bus); err != nil {
		return err
	}
	a.engine = checkout.NewEngine(a.catalog, a.session, a.bus)

	if err := a.bus.Subscribe(checkout.TopicCompleted, func(done checkout.Completed) {
		metrics.RecordCheckout(int64(done.Total), int64(done.Change), done.TenderEntries)
	}); err != nil {
		return err
	}

	a.ensureParentPin()

	if err := a.catalog.Load(); err != nil {
		zap.S().Errorf("catalog load failed: %v", err)
		return err
	}

	a.initJob()
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

func (a *Application) Catalog() *catalog.Store {
	return a.catalog
}

func (a *Application) OrderSession() *order.Session {
	return a.session
}

func (a *Application) Checkout() *checkout.Engine {
	return a.engine
}

func (a *Application) Assets() *assets.Store {
	return a.assets
}

func (a *Application) Settings() *settings.Manager {
	return a.settings
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

func (a *Application) WebSecret() string {
	return a.appConfig.Web.Secret
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.kv != nil {
		_ = a.kv.Close()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
