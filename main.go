package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/next-read/cliparse"
	"github.com/danielhkuo/next-read/db"
	"github.com/danielhkuo/next-read/handlers"
	"github.com/danielhkuo/next-read/nominations"
	"github.com/danielhkuo/next-read/polls"
	"github.com/danielhkuo/next-read/router"
	"github.com/danielhkuo/next-read/tally"
	"github.com/danielhkuo/next-read/votes"
	"github.com/danielhkuo/next-read/winners"
)

func main() {
	var err error

	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	// Structured logs: text for a terminal, JSON for everything else
	if isatty.IsTerminal(os.Stdout.Fd()) {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	var dbConn *sql.DB
	switch cfg.DatabaseType {
	case "postgres":
		dbConn, err = sql.Open("postgres", cfg.DatabaseURL)
	default:
		dbConn, err = sql.Open("sqlite", cfg.DatabaseURL)
	}
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.DatabaseType == "sqlite" {
		// One writer; sqlite serializes anyway and this avoids SQLITE_BUSY
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Composition root: every component is constructed here and passed
	// down explicitly; no package holds a lazily-initialized singleton.
	noms := nominations.NewStore(dbConn)
	ledger := votes.NewLedger(dbConn, cfg.DatabaseType)
	engine := tally.NewEngine(dbConn)
	archive := winners.NewArchive(dbConn)
	mgr := polls.NewManager(dbConn, noms, engine, archive)

	nh := handlers.NewNominationHandler(noms, cfg)
	ph := handlers.NewPollHandler(mgr, ledger, cfg)
	wh := handlers.NewWinnerHandler(archive, cfg)

	mux := router.NewRouter(nh, ph, wh)

	// Create server
	server := http.Server{
		Handler: mux,
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
