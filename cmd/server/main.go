package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/seat-layout-editor/internal/cache"
	"github.com/iliyamo/seat-layout-editor/internal/config"
	"github.com/iliyamo/seat-layout-editor/internal/database"
	"github.com/iliyamo/seat-layout-editor/internal/editor"
	"github.com/iliyamo/seat-layout-editor/internal/handler"
	"github.com/iliyamo/seat-layout-editor/internal/middleware"
	"github.com/iliyamo/seat-layout-editor/internal/queue"
	"github.com/iliyamo/seat-layout-editor/internal/repository"
	"github.com/iliyamo/seat-layout-editor/internal/router"
	"github.com/iliyamo/seat-layout-editor/internal/service"
	"github.com/iliyamo/seat-layout-editor/internal/templates"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env: .env not loaded: %v", err)
	}
	cfg := config.Load()

	editorCfg, err := config.LoadEditorConfig(cfg.EditorConfig)
	if err != nil {
		log.Fatalf("editor config: %v", err)
	}
	catalog := templates.NewCatalog()
	if err := catalog.RegisterSpecs(editorCfg.Presets); err != nil {
		log.Fatalf("editor config: %v", err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("db: %v", err)
	}
	layouts := repository.NewLayoutRepo(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it there are no drafts, no rate limit and
	// no template cache.
	rdb := config.NewRedisClient()
	var drafts handler.DraftStore
	if rdb != nil {
		defer rdb.Close()
		drafts = cache.NewDraftStore(rdb, cfg.DraftTTL)
	}

	saver := service.NewLayoutSaver(layouts, service.NewRabbitPublisher(cfg.RabbitURL))
	sessions := editor.NewRegistry(editor.Options{
		Viewport:     editorCfg.Viewport(),
		HistoryLimit: editorCfg.HistoryLimit,
		Saver:        saver,
	})
	go sessions.RunJanitor(ctx, cfg.JanitorEvery, cfg.SessionTTL)

	go func() {
		if err := queue.NewAuditConsumer(cfg.RabbitURL).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("layout-consumer: stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	h := handler.NewEditorHandler(sessions, catalog, layouts, drafts)
	router.RegisterRoutes(e)
	router.RegisterEditor(e, h,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
