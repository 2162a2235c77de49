// internal/workers/telemetry/sync-telemetry/config.go
package synctelemetry

import "time"

type Config struct {
	Timeout      time.Duration
	FetchLockTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		FetchLockTTL: 2 * time.Minute,
	}
}
