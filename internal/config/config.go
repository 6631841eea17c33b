package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	Agent  AgentConfig
	Assets AssetsConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
}

type AgentConfig struct {
	Provider       string `envconfig:"AGENT_PROVIDER" default:"openai"`
	APIKey         string `envconfig:"AGENT_API_KEY" required:"true"`
	APIEndpoint    string `envconfig:"AGENT_ENDPOINT" default:"https://api.openai.com/v1"`
	Model          string `envconfig:"AGENT_MODEL" default:"gpt-4o-mini"`
	DeploymentName string `envconfig:"AGENT_DEPLOYMENT" default:"gpt-4o"`
	APIVersion     string `envconfig:"AGENT_API_VERSION" default:"2023-05-15"`
}

type AssetsConfig struct {
	Endpoint string        `envconfig:"ASSETS_ENDPOINT" default:"http://localhost:9000/upload"`
	BaseURL  string        `envconfig:"ASSETS_BASE_URL" default:"http://localhost:9000/assets"`
	Timeout  time.Duration `envconfig:"ASSETS_TIMEOUT" default:"30s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
