package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/settleup/internal/config"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/service"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/storage/filestore"
	"github.com/mmynk/settleup/internal/storage/replica"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath, "session_dir", cfg.SessionDir)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	mux := http.NewServeMux()

	path, handler := service.NewSettlementServiceHandler(
		service.NewSettlementService(store, m),
		connect.WithInterceptors(middleware.LoggingInterceptor(m)),
	)
	mux.Handle(path, handler)

	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect streaming clients)
	h2cHandler := h2c.NewHandler(middleware.Logging(middleware.CORS(mux)), &http2.Server{})

	slog.Info("Connect server starting", "address", cfg.Addr, "metrics", cfg.MetricsEnabled)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// openStore opens SQLite and, when a session directory is configured,
// mirrors it to JSON files.
func openStore(cfg *config.Config) (storage.Store, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if cfg.SessionDir == "" {
		return db, nil
	}
	files, err := filestore.New(cfg.SessionDir)
	if err != nil {
		db.Close()
		return nil, err
	}
	return replica.New(db, files), nil
}
