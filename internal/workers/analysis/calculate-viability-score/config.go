// internal/workers/analysis/calculate-viability-score/config.go
package calculateviabilityscore

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
