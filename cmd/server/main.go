package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"solar_yield/internal/api"
	"solar_yield/internal/config"
	"solar_yield/internal/ingest"
	"solar_yield/internal/log"
	"solar_yield/internal/model"
	"solar_yield/internal/service"
	"solar_yield/internal/simulator"
	"solar_yield/internal/store"
	"solar_yield/internal/ws"
)

func main() {
	configFile := flag.String("config", "", "path to config file (default: config.yaml in . or ./configs)")
	addr := flag.String("addr", "", "listen address (overrides http.addr)")
	weatherDir := flag.String("weather-dir", "", "directory containing cloud cover CSV files (overrides weather.dir)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, *addr, *weatherDir, *debug)

	if err := log.Init(cfg.Logging.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger := log.GetSugaredLogger()

	// Load weather records
	weather := store.New()
	n, err := loadWeatherCSVs(cfg.Weather.Dir, weather)
	if err != nil {
		log.Warnf("Weather data: %v", err)
	}
	log.Infof("Loaded %d weather records from %s", n, cfg.Weather.Dir)

	// Set up WebSocket hub and engine
	hub := ws.NewHub(logger)
	bridge := ws.NewBridge(hub, logger)
	engine := simulator.New(logger, bridge)
	engine.SetWorkers(cfg.Engine.Workers)

	svc := service.New(engine, weather, logger)
	svc.SetDefaultSite(model.GeoCoordinate{
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
	}, cfg.Location.UTCOffset)
	handler := ws.NewHandler(hub, svc, logger)
	router := api.NewRouter(api.NewHandlers(svc, logger), handler)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Shutdown: %v", err)
		}
	}()

	log.Infof("Starting server on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server: %v", err)
	}
}

// applyFlags lets non-empty command-line values win over the config.
func applyFlags(cfg *config.Config, addr, weatherDir string, debug bool) {
	if addr != "" {
		cfg.HTTP.Addr = addr
	}
	if weatherDir != "" {
		cfg.Weather.Dir = weatherDir
	}
	if debug {
		cfg.Logging.Debug = true
	}
}

// loadWeatherCSVs loads every CSV file in dir as a named weather record.
// Files that fail to parse are skipped with a warning. Returns the number of
// records loaded.
func loadWeatherCSVs(dir string, s *store.Store) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading weather directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		name, record, err := ingest.LoadFile(path)
		if err != nil {
			log.Warnf("Skipping %s: %v", path, err)
			continue
		}

		s.AddRecord(name, record)
		loaded++
		log.Infof("  Loaded %d days from %s", len(record), entry.Name())
	}

	return loaded, nil
}
