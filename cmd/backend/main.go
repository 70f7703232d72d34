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

	"github.com/gin-gonic/gin"
	"github.com/tylervsnyc/chess-learning-tree/internal/api"
	"github.com/tylervsnyc/chess-learning-tree/internal/config"
	"github.com/tylervsnyc/chess-learning-tree/internal/dao"
	"github.com/tylervsnyc/chess-learning-tree/internal/db"
	"github.com/tylervsnyc/chess-learning-tree/internal/logger"
	"github.com/tylervsnyc/chess-learning-tree/pkg/lessons"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog := lessons.Default()
	var repo dao.LessonRepository
	if cfg.Database.Address == "" {
		log.Warn("MONGO_ADDRESS not set, serving random puzzles from the embedded catalog")
		repo = dao.NewCatalogRepository(catalog, time.Now().UnixNano())
	} else {
		dbClient, err := db.NewDbClient(cfg)
		if err != nil {
			log.Error("database", "error", err)
			return err
		}
		defer dbClient.Close()
		repo = dao.NewLessonRepository(dbClient)
	}

	lessonApi := api.NewLessonApi(catalog, repo, log)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: api.NewRouter(lessonApi, log, cfg.Server.CorsOrigins),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("listening", "addr", srv.Addr, "lessons", len(catalog.Lessons()))
	if err := serve(ctx, srv); err != nil {
		log.Error("server", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

// serve runs srv until it fails or ctx is done, then shuts it down.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
