package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comparables-api/internal/config"
	"github.com/sells-group/comparables-api/pkg/searx"
)

func TestAlerter_Evaluate_NoAlerts(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		FailureRateThreshold: 0.25,
		MinSearches:          10,
	})

	snap := &MetricsSnapshot{
		Search: searx.StatsSnapshot{
			TotalSearches:      100,
			SuccessfulSearches: 95,
			FailedSearches:     5,
		},
		Requests: map[string]int64{"lookup": 50},
		Failures: map[string]int64{"lookup": 2},
	}

	alerts := a.Evaluate(snap)
	assert.Empty(t, alerts)
}

func TestAlerter_Evaluate_SearchFailureRate(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		FailureRateThreshold: 0.25,
		MinSearches:          10,
	})

	snap := &MetricsSnapshot{
		Search: searx.StatsSnapshot{
			SuccessfulSearches: 12,
			FailedSearches:     8, // 40%
		},
	}

	alerts := a.Evaluate(snap)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertSearchFailureRate, alerts[0].Type)
	assert.Equal(t, "high", alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "40.0%")
}

func TestAlerter_Evaluate_BackendUnreachable(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		FailureRateThreshold: 0.25,
		MinSearches:          10,
	})

	snap := &MetricsSnapshot{
		Search: searx.StatsSnapshot{
			SuccessfulSearches: 0,
			FailedSearches:     15,
		},
	}

	alerts := a.Evaluate(snap)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertBackendUnreachable, alerts[0].Type)
}

func TestAlerter_Evaluate_EndpointFailures(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		FailureRateThreshold: 0.25,
		MinSearches:          10,
	})

	snap := &MetricsSnapshot{
		Requests: map[string]int64{"analyze": 10},
		Failures: map[string]int64{"analyze": 6},
	}

	alerts := a.Evaluate(snap)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertEndpointFailures, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "analyze")
}

func TestAlerter_Evaluate_MinimumSearchesRequired(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		FailureRateThreshold: 0.25,
		MinSearches:          10,
	})

	// Only 3 finished searches, below the minimum for the rate alert.
	snap := &MetricsSnapshot{
		Search: searx.StatsSnapshot{
			SuccessfulSearches: 1,
			FailedSearches:     2,
		},
	}

	alerts := a.Evaluate(snap)
	assert.Empty(t, alerts)
}

func TestAlerter_SendAlerts(t *testing.T) {
	var received atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var alert Alert
		require.NoError(t, json.NewDecoder(r.Body).Decode(&alert))
		assert.Equal(t, AlertBackendUnreachable, alert.Type)
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := NewAlerter(config.MonitoringConfig{WebhookURL: srv.URL})
	sent := a.SendAlerts(context.Background(), []Alert{
		{Type: AlertBackendUnreachable, Severity: "high", Message: "down"},
	})

	assert.Equal(t, 1, sent)
	assert.Equal(t, int64(1), received.Load())
}

func TestAlerter_SendAlertsNoWebhook(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{})
	sent := a.SendAlerts(context.Background(), []Alert{
		{Type: AlertSearchFailureRate},
	})
	assert.Zero(t, sent)
}

func TestAlerter_SendAlertsWebhookError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewAlerter(config.MonitoringConfig{WebhookURL: srv.URL})
	sent := a.SendAlerts(context.Background(), []Alert{
		{Type: AlertSearchFailureRate},
	})
	assert.Zero(t, sent)
}
