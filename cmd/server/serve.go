package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/product-catalog/api/database/migrations"

	"github.com/product-catalog/api/app/routes"
	"github.com/product-catalog/api/config"
	"github.com/product-catalog/api/pkg/auth"
	"github.com/product-catalog/api/pkg/cache"
	"github.com/product-catalog/api/pkg/logger"
	"github.com/product-catalog/api/pkg/metrics"
	"github.com/product-catalog/api/pkg/middleware"
	"github.com/product-catalog/api/pkg/migration"
	"github.com/product-catalog/api/pkg/reqid"
	"github.com/product-catalog/api/pkg/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	db, err := bootDB()
	if err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		// the API works without Redis: list caching degrades to plain DB
		// reads, and token revocation switches to the in-process
		// blacklist so revoked tokens still die
		logger.Warn("redis unavailable, using in-memory token blacklist", "error", err)
		auth.UseBlacklist(auth.NewMemoryBlacklist())
	}

	if ran, err := migration.Run(db); err != nil {
		return fmt.Errorf("serve: migrate: %w", err)
	} else if len(ran) > 0 {
		logger.Info("migrations applied", "count", len(ran))
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)
	r.HandleFunc("/metrics", metrics.Handler())
	routes.RegisterAPI(r, db)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
