// internal/workers/analysis/store-analysis/config.go
package storeanalysis

import "time"

type Config struct {
	Timeout       time.Duration
	AnalysisIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		AnalysisIndex: "bid-analyses",
	}
}
