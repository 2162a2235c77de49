// internal/workers/scoring/compute-fitscore/config.go
package computefitscore

import "time"

type Config struct {
	Timeout          time.Duration
	CacheTTL         time.Duration
	TargetSleepHours float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          10 * time.Second,
		CacheTTL:         15 * time.Minute,
		TargetSleepHours: 8,
	}
}
