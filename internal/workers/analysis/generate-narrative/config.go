// internal/workers/analysis/generate-narrative/config.go
package generatenarrative

import "time"

type Config struct {
	GenAIBaseURL string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    60 * time.Second,
		MaxRetries: 2,
	}
}
