package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/cache"
	"github.com/entigraph/entigraph/internal/config"
	"github.com/entigraph/entigraph/internal/core/linker"
	"github.com/entigraph/entigraph/internal/kb"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
	"github.com/entigraph/entigraph/internal/ratelimit"
	"github.com/entigraph/entigraph/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg = cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	client, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize language model client", zap.Error(err))
	}

	store := cache.NewStore(cfg.Cache.Dir, cfg.Cache.Enabled, logger)
	limiter := ratelimit.New(
		cfg.RateLimit.MaxCalls,
		time.Duration(cfg.RateLimit.PeriodSeconds)*time.Second,
		cfg.RateLimit.MaxRetries,
		time.Duration(cfg.RateLimit.BackoffBase*float64(time.Second)),
		time.Duration(cfg.Linking.TimeoutSeconds)*time.Second,
		logger,
	)

	lang := prompts.Language(cfg.Extraction.Language)
	lk := &linker.Linker{
		Wikipedia:    kb.NewWikipediaClient(limiter, store, logger),
		LLM:          client,
		Lang:         lang,
		FallbackLang: fallbackLang(lang),
		Log:          logger,
	}
	if cfg.Linking.UseWikidata {
		lk.Wikidata = kb.NewWikidataClient(cfg.Extraction.Language, cfg.Linking.AdditionalDetails, limiter, store, logger)
	}
	if cfg.Linking.UseDBpedia {
		lk.DBpedia = kb.NewDBpediaClient(cfg.Linking.DBpediaUseDE, cfg.Linking.DBpediaLookupAPI, limiter, store, logger)
	}

	srv := server.NewServer(cfg, client, lk, logger)
	r := srv.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting server", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// fallbackLang is the second Wikipedia edition searched when the primary
// language finds nothing.
func fallbackLang(lang prompts.Language) string {
	if lang == prompts.German {
		return "en"
	}
	return "de"
}
