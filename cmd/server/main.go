// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/sozercan/pixel-ai-mole/internal/agent"
	"github.com/sozercan/pixel-ai-mole/internal/analyzer"
	"github.com/sozercan/pixel-ai-mole/internal/assets"
	"github.com/sozercan/pixel-ai-mole/internal/config"
	"github.com/sozercan/pixel-ai-mole/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	assetClient, err := assets.NewClient(cfg.Assets.Endpoint, cfg.Assets.Timeout)
	if err != nil {
		log.Fatalf("failed to create asset store client: %v", err)
	}

	provider, err := agent.NewOpenAI(&cfg.Agent)
	if err != nil {
		log.Fatalf("failed to create agent provider: %v", err)
	}

	analyzer := analyzer.New(assetClient, provider, cfg.Assets.BaseURL)

	srv := server.New(*cfg, analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
