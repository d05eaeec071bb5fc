package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"github.com/promptframe/promptframe-api/pkg/config"
	api "github.com/promptframe/promptframe-api/pkg/gallery_api"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/database"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/handler"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/repositories"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/services"
	"github.com/promptframe/promptframe-api/pkg/jobs"
	"github.com/promptframe/promptframe-api/pkg/providers"
	"github.com/promptframe/promptframe-api/pkg/providers/falai"
	"github.com/promptframe/promptframe-api/pkg/providers/gemini"
	"github.com/promptframe/promptframe-api/pkg/storage/supabase"
)

const apiVersion = "1.0.0"

func newGenerator(ctx context.Context, cfg *config.Config) (providers.Generator, error) {
	switch cfg.ImageProvider {
	case "gemini":
		return gemini.New(ctx, cfg.GeminiAPIKey)
	default:
		return falai.NewClient(cfg.FalAPIKey), nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()
	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialise %s provider: %v", cfg.ImageProvider, err)
	}
	store := supabase.NewClient(cfg.Storage.BaseURL, cfg.Storage.ServiceKey, cfg.Storage.Bucket)

	imageRepo := repositories.NewImageRepository(db)
	imagesService := services.NewImagesAPIService(imageRepo, generator, store)
	imagesController := handler.NewImagesAPIController(imagesService)
	jobs.ScheduleDailyAudit(ctx, imagesService)

	// Start server
	router := api.NewRouter(apiVersion, imagesController, cfg.Development())

	log.Printf("Server is running on port %d", cfg.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), router))
}
