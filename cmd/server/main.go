// @title           File Manager API
// @version         1.0
// @description     Folder tree with trash, favorites and sharing over local disk or S3 storage.
// @BasePath        /api/v1
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"menedzer-plikow/internal/api"
	"menedzer-plikow/internal/app"
	"menedzer-plikow/internal/config"
	"menedzer-plikow/internal/logger"
	"menedzer-plikow/internal/metrics"
	"menedzer-plikow/internal/tree"
	"menedzer-plikow/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	appLog, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Fatalf("Nie można skonfigurować logowania: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg.Metadata)
	if err != nil {
		log.Fatalf("Nie można otworzyć magazynu metadanych: %v", err)
	}
	defer store.Close()
	log.Printf("Pomyślnie otwarto magazyn metadanych (%s)", cfg.Metadata.Type)

	files, err := app.OpenStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Nie można zainicjować magazynu plików: %v", err)
	}
	log.Printf("Pliki będą przechowywane w: %s", app.Describe(cfg))

	m := metrics.New()

	wsHub := websocket.NewHub(cfg.Events.JournalSize, m, appLog)
	go wsHub.Run()
	defer wsHub.Stop()

	engine := tree.New(store, files, tree.Options{
		RootPrefix:     cfg.Storage.RootPrefix,
		Owner:          cfg.Owner,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		Logger:         appLog,
		Metrics:        m,
		Publisher:      wsHub,
	})

	server := api.NewServer(cfg, engine, wsHub, m, appLog)
	srv := &http.Server{
		Addr:              cfg.AppHost,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Błąd podczas zamykania serwera: %v", err)
		}
	}()

	log.Printf("Uruchamianie serwera na %s", cfg.AppHost)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
	log.Println("Serwer zatrzymany")
}
