// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// UpstreamConfig provides settings for the upstream call-management provider.
type UpstreamConfig interface {
	GetVapiBaseURL() string
}

// KBDocsConfig provides settings for the knowledge-base documents webhook.
type KBDocsConfig interface {
	GetKBDocsWebhookURL() string
	IsKBDocsEnabled() bool
}

// EscalationConfig provides settings for the live-call escalation webhook.
type EscalationConfig interface {
	GetEscalateWebhookURL() string
	IsEscalationEnabled() bool
}

// InsightsConfig provides settings for the call-QA insights coach.
type InsightsConfig interface {
	GetAzureOpenAIEndpoint() string
	GetAzureOpenAIAPIKey() string
	GetAzureOpenAIDeployment() string
	IsInsightsEnabled() bool
}

// =============================================================================
// Config
// =============================================================================

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	corsAllowAll   bool
	corsOrigins    []string
	corsAllowCreds bool
	rateLimitRPS   float64
	rateLimitBurst int

	vapiBaseURL string

	kbDocsWebhookURL   string
	escalateWebhookURL string

	azureOpenAIEndpoint   string
	azureOpenAIAPIKey     string
	azureOpenAIDeployment string
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	// Best effort; production injects real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		corsAllowAll:   getEnvBool("CORS_ALLOW_ALL", false),
		corsOrigins:    splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		corsAllowCreds: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		rateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 25),
		rateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 50),

		vapiBaseURL: getEnv("VAPI_BASE_URL", "https://api.vapi.ai"),

		kbDocsWebhookURL:   getEnv("KB_DOCS_WEBHOOK_URL", ""),
		escalateWebhookURL: getEnv("ESCALATE_WEBHOOK_URL", ""),

		azureOpenAIEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		azureOpenAIAPIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
		azureOpenAIDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", ""),
	}

	if cfg.vapiBaseURL == "" {
		return nil, fmt.Errorf("VAPI_BASE_URL must not be empty")
	}

	return cfg, nil
}

// GetHTTPAddr returns the HTTP listen address.
func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }

// GetCORSAllowAll reports whether all origins are allowed.
func (c *Config) GetCORSAllowAll() bool { return c.corsAllowAll }

// GetCORSOrigins returns the allowed CORS origins.
func (c *Config) GetCORSOrigins() []string { return c.corsOrigins }

// GetCORSAllowCreds reports whether CORS requests may carry credentials.
func (c *Config) GetCORSAllowCreds() bool { return c.corsAllowCreds }

// GetRateLimitRPS returns the per-IP request rate limit.
func (c *Config) GetRateLimitRPS() float64 { return c.rateLimitRPS }

// GetRateLimitBurst returns the per-IP burst allowance.
func (c *Config) GetRateLimitBurst() int { return c.rateLimitBurst }

// GetVapiBaseURL returns the upstream provider's API base URL.
func (c *Config) GetVapiBaseURL() string { return c.vapiBaseURL }

// GetKBDocsWebhookURL returns the knowledge-base documents webhook URL.
func (c *Config) GetKBDocsWebhookURL() string { return c.kbDocsWebhookURL }

// IsKBDocsEnabled reports whether the docs webhook integration is configured.
func (c *Config) IsKBDocsEnabled() bool { return c.kbDocsWebhookURL != "" }

// GetEscalateWebhookURL returns the escalation webhook URL.
func (c *Config) GetEscalateWebhookURL() string { return c.escalateWebhookURL }

// IsEscalationEnabled reports whether the escalation webhook is configured.
func (c *Config) IsEscalationEnabled() bool { return c.escalateWebhookURL != "" }

// GetAzureOpenAIEndpoint returns the Azure OpenAI resource endpoint.
func (c *Config) GetAzureOpenAIEndpoint() string { return c.azureOpenAIEndpoint }

// GetAzureOpenAIAPIKey returns the Azure OpenAI API key.
func (c *Config) GetAzureOpenAIAPIKey() string { return c.azureOpenAIAPIKey }

// GetAzureOpenAIDeployment returns the Azure OpenAI deployment name.
func (c *Config) GetAzureOpenAIDeployment() string { return c.azureOpenAIDeployment }

// IsInsightsEnabled reports whether all Azure OpenAI settings are present.
func (c *Config) IsInsightsEnabled() bool {
	return c.azureOpenAIEndpoint != "" && c.azureOpenAIAPIKey != "" && c.azureOpenAIDeployment != ""
}

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
