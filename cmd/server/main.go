/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the moment API server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (file, then flag overrides)
  3. Open the timeline store (SQLite or memory)
  4. Create the timeline and API handler
  5. Start the window digest (when server.digest_unit is set)
  6. Configure HTTP router
  7. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML or TOML config file (optional)
  -port    HTTP server port (overrides server.port)
  -db      SQLite database path (overrides store.path)
           Use ":memory:" for in-memory database
  -tz      Calendar time zone (overrides calendar.zone)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Stop the window digest
  3. Wait for active requests to complete (server.shutdown_timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/marks.db"

  # Run with a config file, overriding the zone
  ./server -config=config.yaml -tz=Europe/Berlin

SEE ALSO:
  - config/config.go: Configuration keys
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/warp/moment/api"
	"github.com/warp/moment/config"
	"github.com/warp/moment/store/sqlite"
	"github.com/warp/moment/timeline"
	"github.com/warp/moment/timeline/store"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "YAML or TOML config file")
	port := flag.Int("port", 0, "HTTP server port")
	dbPath := flag.String("db", "", "SQLite database path")
	zone := flag.String("tz", "", "Calendar time zone")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("[Server] Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Store.Driver = config.DriverSQLite
		cfg.Store.Path = *dbPath
	}
	if *zone != "" {
		cfg.Calendar.Zone = *zone
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Server] Invalid configuration: %v", err)
	}

	cal, err := cfg.MomentCalendar()
	if err != nil {
		log.Fatalf("[Server] Invalid calendar: %v", err)
	}

	// Initialize store
	var marks timeline.Store
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			log.Fatalf("[Server] Failed to initialize database: %v", err)
		}
		defer db.Close()
		marks = db
		log.Printf("[Store] SQLite at %s", cfg.Store.Path)
	default:
		marks = store.NewMemory()
		log.Printf("[Store] In-memory marks (lost on exit)")
	}

	// Initialize handler
	tl := timeline.New(marks, cal)
	handler := api.NewHandler(tl, cfg.Calendar.Pattern)

	// Start window digest
	digestUnit, err := cfg.DigestUnit()
	if err != nil {
		log.Fatalf("[Server] Invalid digest unit: %v", err)
	}
	scheduler := api.NewDigestScheduler(tl, digestUnit)
	scheduler.Start()

	// Create router
	router := api.NewRouter(handler, cfg.Server.CORS.AllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  cfg.Server.IdleTimeout.Duration,
	}

	// Start server in goroutine
	go func() {
		log.Printf("[Server] Listening on %s (calendar %s, week starts %s)",
			cfg.Addr(), cal.Location, cal.FirstDayOfWeek)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] Forced to shutdown: %v", err)
		return
	}

	log.Println("[Server] Stopped")
}
