package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/agenthands/doccheck/internal/config"
	"github.com/agenthands/doccheck/internal/core"
	"github.com/agenthands/doccheck/internal/llm"
	"github.com/agenthands/doccheck/internal/server"
	"github.com/agenthands/doccheck/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := config.Resolve("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	st, err := store.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer st.Close(ctx)

	detector := core.NewDetector(llm.Wrap(llmClient, cfg), cfg)
	srv := server.NewServer(cfg, st, detector)
	r := srv.SetupRouter()

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
