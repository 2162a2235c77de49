// internal/workers/scoring/score-recovery/config.go
package scorerecovery

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 15 * time.Minute,
	}
}
