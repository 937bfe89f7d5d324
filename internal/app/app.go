package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neoconsult/booking-assistant/internal/config"
	"github.com/neoconsult/booking-assistant/internal/core/assistant"
	db "github.com/neoconsult/booking-assistant/internal/core/database"
	"github.com/neoconsult/booking-assistant/internal/core/ingestion"
	"github.com/neoconsult/booking-assistant/internal/core/llm"
	"github.com/neoconsult/booking-assistant/internal/core/notify"
	"github.com/neoconsult/booking-assistant/internal/core/objectstore"
	"github.com/neoconsult/booking-assistant/internal/core/rag"
)

// App owns the long-lived clients and the HTTP server. The embedding and
// generation clients are constructed once here and reused on every call.
type App struct {
	DBClient db.DbClient
	Embedder *llm.GeminiEmbedder
	LLM      *llm.GeminiLLM
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	startCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(startCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	// The archive is optional: without AWS credentials the assistant
	// still ingests and answers, it just keeps no copy of the uploads.
	var archive objectstore.ObjectClient
	if s3Client, err := objectstore.NewS3Client(startCtx, cfg); err != nil {
		log.Printf("document archive disabled: %v", err)
	} else {
		archive = s3Client
	}

	embedder, err := llm.NewGeminiEmbedder(startCtx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the embedder: %w", err)
	}

	llmProvider, err := llm.NewGeminiLLM(startCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the LLM provider: %w", err)
	}

	extractor := ingestion.NewDocconvExtractor(false)
	ingestor := ingestion.NewIngestor(extractor, embedder, ingestion.Config{
		ChunkSize: cfg.ChunkSize,
		Overlap:   cfg.ChunkOverlap,
	})

	answerer := rag.NewAnswerer(embedder, llmProvider, cfg.RetrievalTopK)
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	asst := assistant.New(answerer, dbClient, mailer)
	session := assistant.NewSession(cfg.HistoryLimit)

	server := NewServer(cfg, dbClient, asst, session, ingestor, archive)

	return &App{
		DBClient: dbClient,
		Embedder: embedder,
		LLM:      llmProvider,
		Server:   server,
	}, nil
}

func (a *App) Close() {
	if a.Embedder != nil {
		_ = a.Embedder.Close()
	}
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
