package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	httpadapter "vibe-resume/internal/adapter/http"
	repo "vibe-resume/internal/adapter/repository"
	"vibe-resume/internal/infrastructure/migration"
	"vibe-resume/internal/usecase"
	"vibe-resume/pkg/ai"
	"vibe-resume/pkg/config"
	"vibe-resume/pkg/fetch"
	infra "vibe-resume/pkg/infrastructure"
	"vibe-resume/pkg/latex"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Printf("warning: GEMINI_API_KEY not set; model calls will fail")
	}

	assistant, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.FastModel, cfg.ThoroughModel)
	if err != nil {
		log.Fatalf("gemini client: %v", err)
	}

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	compiler := latex.NewCompiler(cfg.WorkDir)
	syncEngine := latex.NewSyncEngine(cfg.WorkDir)
	fetcher := fetch.New(cfg.ChromePath)

	classifier := usecase.NewClassifier(assistant, cfg.ClassifyFailOpen)
	conv := usecase.NewConversation(assistant, classifier, store, fetcher)

	app := fiber.New(fiber.Config{BodyLimit: 20 * 1024 * 1024})
	h := httpadapter.NewHandler(conv, store, compiler, syncEngine, assistant)
	h.Register(app)

	log.Printf("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// newSessionStore prefers Postgres when configured but falls back to the
// file store rather than refusing to start; sessions are not worth an
// outage.
func newSessionStore(ctx context.Context, cfg config.Config) (usecase.SessionStore, error) {
	if cfg.SessionsDatabaseURL != "" {
		pool, err := infra.NewSessionsPool(ctx, cfg.SessionsDatabaseURL)
		if err != nil {
			log.Printf("warning: sessions DB not available, using file store: %v", err)
		} else {
			if err := migration.RunMigrations(ctx, pool); err != nil {
				log.Printf("warning: migrations failed: %v", err)
			}
			return repo.NewPostgresStore(pool), nil
		}
	}
	return repo.NewFileStore(cfg.DataDir)
}
