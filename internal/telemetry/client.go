// internal/telemetry/client.go
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"vitality-workers/internal/common/config"
	commonerrors "vitality-workers/internal/common/errors"
	commonhttp "vitality-workers/internal/common/http"
	"vitality-workers/internal/common/logger"
)

// DailySnapshot is the vendor's per-day recovery payload, already
// flattened to the fields the engine consumes. Pointers preserve the
// distinction between "vendor reported zero" and "strap had no reading".
type DailySnapshot struct {
	Date              string   `json:"date"`
	RecoveryPercent   *float64 `json:"recovery_score"`
	SleepHours        *float64 `json:"sleep_hours"`
	SleepScorePercent *float64 `json:"sleep_performance"`
	HRV               *float64 `json:"hrv_rmssd_milli"`
	HRVBaseline       *float64 `json:"hrv_baseline_milli"`
	RestingHeartRate  *float64 `json:"resting_heart_rate"`
	StrainScore       *float64 `json:"strain"`
}

// Client talks to the wearable vendor's REST API using client-credential
// OAuth; the token source refreshes transparently.
type Client struct {
	baseURL string
	http    *commonhttp.Client
	logger  logger.Logger
}

func NewClient(cfg config.TelemetryConfig, log logger.Logger) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	hc := cc.Client(context.Background())
	hc.Timeout = time.Duration(cfg.Timeout) * time.Millisecond

	return &Client{
		baseURL: cfg.BaseURL,
		http:    commonhttp.NewClientWith(hc),
		logger:  log.WithFields(map[string]interface{}{"component": "telemetry"}),
	}
}

// FetchDaily retrieves one user's snapshot for one calendar day
// (YYYY-MM-DD). The caller owns concurrency control; this client makes
// exactly one request per call.
func (c *Client) FetchDaily(ctx context.Context, userID, date string) (*DailySnapshot, error) {
	url := fmt.Sprintf("%s/v1/users/%s/daily/%s", c.baseURL, userID, date)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build telemetry request: %w", err)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, commonerrors.NewTelemetryFetchFailedError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, commonerrors.NewTelemetryUnauthorizedError(resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		// No data for the day yet; callers treat this as an empty
		// snapshot, not a failure.
		return &DailySnapshot{Date: date}, nil
	case resp.StatusCode != http.StatusOK:
		return nil, commonerrors.NewTelemetryFetchFailedError(
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	var snapshot DailySnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, commonerrors.NewTelemetryFetchFailedError(
			fmt.Errorf("decode response: %w", err))
	}
	if snapshot.Date == "" {
		snapshot.Date = date
	}

	c.logger.Debug("fetched daily snapshot", map[string]interface{}{
		"userId": userID,
		"date":   date,
	})

	return &snapshot, nil
}
