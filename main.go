package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/straw-poll/cliparse"
	"github.com/danielhkuo/straw-poll/codec"
	"github.com/danielhkuo/straw-poll/identity"
	"github.com/danielhkuo/straw-poll/middleware"
	"github.com/danielhkuo/straw-poll/registry"
	"github.com/danielhkuo/straw-poll/router"
	"github.com/danielhkuo/straw-poll/store"
)

func main() {
	var err error

	// A .env file is optional; real environment variables win
	godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the backing store
	st, err := openStore(cfg)
	if err != nil {
		slog.Error("store open failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}
	slog.Info("Store ready", "store", cfg.StoreType)

	// Build the registry
	reg := registry.New(st, identity.RuleValidator{}, codec.JSON{})

	// Create router
	mux := router.NewRouter(reg)

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
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore picks the storage backend the configuration names.
func openStore(cfg cliparse.Config) (store.Store, error) {
	switch cfg.StoreType {
	case cliparse.StoreMemory:
		return store.NewMemory(), nil
	case cliparse.StoreBolt:
		return store.OpenBolt(cfg.StorePath)
	case cliparse.StoreSQLite:
		return store.OpenSQLite(cfg.StorePath)
	case cliparse.StorePostgres:
		return store.OpenPostgres(cfg.DatabaseURL)
	default:
		// cliparse validates the type; this is unreachable
		return nil, fmt.Errorf("unknown store type: %s", cfg.StoreType)
	}
}
