package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glueckskekse/kasse/config"
	"github.com/glueckskekse/kasse/internal/adminapi"
	"github.com/glueckskekse/kasse/internal/app"
	"github.com/glueckskekse/kasse/internal/webserver"
)

var configFile = flag.String("c", "kasse.yml", "config file path")

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer application.Release()

	server := webserver.New(application, cfg.Web)
	adminapi.Register(server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server stopped: %v", err)
	}
}
