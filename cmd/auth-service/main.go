// cmd/auth-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopgate/internal/authorize"
	"shopgate/internal/oauth"
	"shopgate/pkg/config"
	"shopgate/pkg/db"
	"shopgate/pkg/logger"
	"shopgate/pkg/middleware"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	// fail fast on a broken Shopify config; it is still re-read per request
	if _, err := authorize.LoadSettings(); err != nil {
		log.Fatalw("shopify settings", "err", err)
	}

	store, closeStore := db.MustShopStore(cfg, log)
	defer closeStore()

	shutdownTracing, tracing := middleware.InitTracing(context.Background(), "shopgate", log)

	svc := authorize.NewService(
		store,
		oauth.NewExchangeClient(log, oauth.WithTimeout(cfg.ExchangeTimeout)),
		authorize.NewMetrics(prometheus.DefaultRegisterer),
		log,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Tracing(tracing))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
	authorize.NewHandler(svc, authorize.LoadSettings, log).RegisterHTTP(r)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Infow("auth-service listening", "addr", cfg.HTTPAddr, "app_url", cfg.AppURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("ListenAndServe", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = shutdownTracing(ctx)
	fmt.Println("auth-service stopped")
}
