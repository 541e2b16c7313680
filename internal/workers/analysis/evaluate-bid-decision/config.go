// internal/workers/analysis/evaluate-bid-decision/config.go
package evaluatebiddecision

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
