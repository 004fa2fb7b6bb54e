package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/game"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/httpmw"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/server"
)

const tickStep = time.Second

func main() {
	logger := log.New(os.Stderr, "pawfee ", log.LstdFlags)

	port := envOr("PORT", "8090")
	saveDir := envOr("SAVE_DIR", "data")

	cfg, err := config.LoadFile(os.Getenv("BALANCE_FILE"))
	if err != nil {
		logger.Fatal(err)
	}
	cfg = config.ApplyEnv(cfg)

	cat, err := loadCatalog()
	if err != nil {
		logger.Fatal(err)
	}

	backend, err := openBackend(saveDir)
	if err != nil {
		logger.Fatal(err)
	}

	clk := clock.RealClock{}
	store := save.Open(backend, clk, logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := game.New(store, clk, cfg, cat, rng, logger)

	engine.Login()

	app := &server.App{Engine: engine, Log: logger}

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	server.RegisterAdminUI(mux, rr, port)
	server.RegisterAPIRoutes(mux, rr, app)
	server.RegisterEventsFeed(mux, rr, app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go app.TickLoop(ctx, tickStep)

	handler := httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(logger),
		httpmw.WithAccessLog(logger),
	)

	srv := &http.Server{Addr: ":" + port, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("pawfee merge cafe listening on :%s\n", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal(err)
	}

	engine.Logout()
	if err := store.Close(); err != nil {
		logger.Println("close store:", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadCatalog uses the built-in species tables unless a catalog file
// is configured. A malformed catalog file is fatal.
func loadCatalog() (*catalog.Catalog, error) {
	path := os.Getenv("CATALOG_FILE")
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

// openBackend picks the save backend: sqlite when SAVE_BACKEND=sqlite,
// plain JSON files otherwise.
func openBackend(saveDir string) (save.Backend, error) {
	if os.Getenv("SAVE_BACKEND") == "sqlite" {
		if err := os.MkdirAll(saveDir, 0o755); err != nil {
			return nil, err
		}
		return save.NewSQLiteBackend(filepath.Join(saveDir, "save.db"))
	}
	return save.NewFileBackend(saveDir)
}
