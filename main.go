package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/quickly-rate/catalog"
	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/db"
	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/notify"
	"github.com/danielhkuo/quickly-rate/router"
	"github.com/danielhkuo/quickly-rate/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Optional .env for local development
	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the catalogue database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	items, err := catalog.NewRepository(dbConn,
		catalog.WithCacheSize(cfg.CatalogCacheSize),
		catalog.WithTTL(cfg.TagsTTL),
	)
	if err != nil {
		slog.Error("catalogue setup failed", "error", err)
		os.Exit(1)
	}
	defer items.Close()

	// Sessions live in memory; the hub fans their events out to subscribers
	hub := notify.NewHub(notify.WithBuffer(cfg.SubscriberBuffer))
	store := session.NewStore(hub, session.WithDuration(cfg.SessionDuration))

	// Create router
	mux := router.NewRouter(cfg, store, hub, items)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc

		// Closing the hub ends open event streams so Shutdown can drain
		store.Close()
		hub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "session_duration", cfg.SessionDuration)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
