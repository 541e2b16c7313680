// internal/workers/communication/notify-analysis-result/config.go
package notifyanalysisresult

import "time"

type Config struct {
	SenderEmail string
	Region      string
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SenderEmail: "analises@example.com",
		Region:      "us-east-1",
		Timeout:     30 * time.Second,
	}
}
