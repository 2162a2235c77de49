package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_Logging(t *testing.T) {
	var cfg Config

	applyDefaults(&cfg)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestApplyDefaults_PreservesConfiguredLogging(t *testing.T) {
	cfg := Config{Logging: LoggingConfig{Level: "debug", Format: "json"}}

	applyDefaults(&cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyDefaults_ScoringKnobs(t *testing.T) {
	var cfg Config

	applyDefaults(&cfg)

	assert.Equal(t, 900, cfg.Scoring.RecoveryCacheTTL)
	assert.Equal(t, 900, cfg.Scoring.FitScoreCacheTTL)
	assert.InDelta(t, 8.0, cfg.Scoring.TargetSleepHours, 1e-9)
}

func TestValidateConfig_RequiredFields(t *testing.T) {
	valid := Config{}
	valid.Camunda.BrokerAddress = "localhost:26500"
	valid.Database.Postgres.Host = "localhost"
	valid.Database.Redis.Address = "localhost:6379"

	require.NoError(t, validateConfig(&valid))

	missingBroker := valid
	missingBroker.Camunda.BrokerAddress = ""
	assert.Error(t, validateConfig(&missingBroker))

	negativeSleep := valid
	negativeSleep.Scoring.TargetSleepHours = -1
	assert.Error(t, validateConfig(&negativeSleep))
}
