package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	AIProviderNone   = "none"
	AIProviderOpenAI = "openai"
	AIProviderGemini = "gemini"
	AIProviderHTTP   = "http"

	PageAgentWebsocket  = "websocket"
	PageAgentPlaywright = "playwright"
)

// AssistantConfig is everything the server reads from the environment apart
// from provider credentials, which each client package reads itself.
type AssistantConfig struct {
	Port string
	Env  string

	StorageDriver    string
	HistoryCapacity  int
	PatternTablePath string

	AIProvider string
	AITimeout  time.Duration

	PageAgentDriver    string
	PageAgentTimeout   time.Duration
	PlaywrightHeadless bool

	Timezone *time.Location
}

func DefaultAssistantConfig() AssistantConfig {
	return AssistantConfig{
		Port:             "3000",
		Env:              "development",
		StorageDriver:    StorageMemory,
		HistoryCapacity:  50,
		AIProvider:       AIProviderNone,
		AITimeout:        8 * time.Second,
		PageAgentDriver:  PageAgentWebsocket,
		PageAgentTimeout: 5 * time.Second,
		Timezone:         time.Local,
	}
}

// LoadAssistantConfig reads the environment over the defaults. Durations take
// Go syntax ("5s") or a plain number of seconds.
func LoadAssistantConfig() (AssistantConfig, error) {
	cfg := DefaultAssistantConfig()

	cfg.Port = getEnv("APP_PORT", cfg.Port)
	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.PatternTablePath = os.Getenv("PATTERN_TABLE_PATH")

	cfg.StorageDriver = strings.ToLower(getEnv("STORAGE_DRIVER", cfg.StorageDriver))
	switch cfg.StorageDriver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return cfg, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	cfg.AIProvider = strings.ToLower(getEnv("AI_PROVIDER", cfg.AIProvider))
	switch cfg.AIProvider {
	case AIProviderNone, AIProviderOpenAI, AIProviderGemini, AIProviderHTTP:
	default:
		return cfg, fmt.Errorf("unsupported AI_PROVIDER %q", cfg.AIProvider)
	}

	cfg.PageAgentDriver = strings.ToLower(getEnv("PAGE_AGENT_DRIVER", cfg.PageAgentDriver))
	switch cfg.PageAgentDriver {
	case PageAgentWebsocket, PageAgentPlaywright:
	default:
		return cfg, fmt.Errorf("unsupported PAGE_AGENT_DRIVER %q", cfg.PageAgentDriver)
	}

	var err error
	if v := os.Getenv("HISTORY_CAPACITY"); v != "" {
		cfg.HistoryCapacity, err = strconv.Atoi(v)
		if err != nil || cfg.HistoryCapacity <= 0 {
			return cfg, fmt.Errorf("invalid HISTORY_CAPACITY %q", v)
		}
	}

	if cfg.AITimeout, err = getDuration("AI_TIMEOUT", cfg.AITimeout); err != nil {
		return cfg, err
	}
	if cfg.PageAgentTimeout, err = getDuration("PAGE_AGENT_TIMEOUT", cfg.PageAgentTimeout); err != nil {
		return cfg, err
	}

	if v := os.Getenv("PLAYWRIGHT_HEADLESS"); v != "" {
		cfg.PlaywrightHeadless, err = strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid PLAYWRIGHT_HEADLESS %q", v)
		}
	}

	if v := os.Getenv("ASSISTANT_TIMEZONE"); v != "" {
		cfg.Timezone, err = time.LoadLocation(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid ASSISTANT_TIMEZONE %q: %w", v, err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		v = strconv.Itoa(secs) + "s"
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}
