// internal/workers/scoring/build-daily-summary/config.go
package builddailysummary

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
