package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/gharfix/gharfix-ai-platform/internal/api/router"
	"github.com/gharfix/gharfix-ai-platform/internal/catalog"
	"github.com/gharfix/gharfix-ai-platform/internal/chat"
	appconfig "github.com/gharfix/gharfix-ai-platform/internal/config"
	"github.com/gharfix/gharfix-ai-platform/internal/conversation"
	"github.com/gharfix/gharfix-ai-platform/internal/knowledge"
	"github.com/gharfix/gharfix-ai-platform/internal/lead"
	"github.com/gharfix/gharfix-ai-platform/internal/memory"
	"github.com/gharfix/gharfix-ai-platform/internal/observability/metrics"
	"github.com/gharfix/gharfix-ai-platform/internal/rag"
	"github.com/gharfix/gharfix-ai-platform/pkg/logging"
)

func main() {
	// Load .env if present; real deployments use actual environment variables.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting gharfix-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Missing credentials are fatal at startup, never a per-request surprise.
	if cfg.GeminiAPIKey == "" {
		logger.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY is required for embeddings")
		os.Exit(1)
	}

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	chatMetrics := metrics.NewChatMetrics(registry)

	// Retrieval stack: OpenAI embeddings over an in-process vector index,
	// rebuilt from the knowledge corpus on every boot.
	embedder := rag.NewOpenAIEmbedder(openai.NewClient(cfg.OpenAIAPIKey), cfg.EmbeddingModelID)
	index := rag.NewMemoryIndex()
	if err := knowledge.Seed(ctx, embedder, index); err != nil {
		logger.Error("failed to seed knowledge index", "error", err)
		os.Exit(1)
	}
	retriever := rag.NewRetriever(embedder, index, logger, chatMetrics)

	// Conversation state: in-process by default, Redis when configured.
	var (
		drafts    lead.DraftStore
		turnStore memory.Store
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		drafts = lead.NewRedisDraftStore(client, nil)
		turnStore = memory.NewRedisStore(client, nil)
		logger.Info("using redis conversation state", "addr", cfg.RedisAddr)
	} else {
		drafts = lead.NewMemoryDraftStore()
		turnStore = memory.NewMemoryStore()
	}

	phrases := lead.DefaultPhrases()
	if len(cfg.TriggerPhrases) > 0 {
		phrases.Triggers = cfg.TriggerPhrases
	}
	if len(cfg.CancelPhrases) > 0 {
		phrases.Cancels = cfg.CancelPhrases
	}

	flow := lead.NewFlow(lead.FlowConfig{
		Drafts:         drafts,
		Services:       catalog.Services,
		Cities:         catalog.Cities,
		Phrases:        phrases,
		WhatsAppNumber: cfg.WhatsAppNumber,
		ContactPhone:   cfg.ContactPhone,
		Logger:         logger,
	})

	generator, cleanup, err := buildGenerator(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize generator", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	engine := conversation.NewService(conversation.ServiceConfig{
		Flow:         flow,
		Memory:       turnStore,
		Retriever:    retriever,
		Generator:    generator,
		Corpus:       knowledge.Corpus,
		ContactPhone: cfg.ContactPhone,
		TopK:         cfg.RetrievalTopK,
		Logger:       logger,
		Metrics:      chatMetrics,
	})

	chatHandler := chat.NewHandler(engine, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ChatRatePerSecond:  2,
		ChatRateBurst:      5,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildGenerator wires Gemini as the primary provider and, when a Bedrock
// model is configured, wraps it with a Bedrock fallback.
func buildGenerator(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (conversation.Generator, func(), error) {
	gemini, err := conversation.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = gemini.Close() }

	if cfg.BedrockModelID == "" {
		return gemini, cleanup, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	bedrock, err := conversation.NewBedrockGenerator(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Info("bedrock fallback enabled", "model_id", cfg.BedrockModelID)
	return conversation.NewFallbackGenerator(gemini, bedrock, logger.Logger), cleanup, nil
}
