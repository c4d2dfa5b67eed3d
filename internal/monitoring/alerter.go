package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/comparables-api/internal/config"
	"github.com/sells-group/comparables-api/internal/resilience"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertSearchFailureRate  AlertType = "search_failure_rate"
	AlertBackendUnreachable AlertType = "backend_unreachable"
	AlertEndpointFailures   AlertType = "endpoint_failures"
)

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Alerter evaluates a MetricsSnapshot against configured thresholds
// and sends alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg     config.MonitoringConfig
	client  *http.Client
	breaker *resilience.CircuitBreaker
}

// NewAlerter creates a new Alerter with the given monitoring config.
// A circuit breaker guards webhook delivery so a dead alert endpoint is
// not hammered on every check cycle.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			// Every delivery failure counts, not just transient ones.
			ShouldTrip: func(error) bool { return true },
		}),
	}
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
func (a *Alerter) Evaluate(snap *MetricsSnapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	finished := snap.Search.SuccessfulSearches + snap.Search.FailedSearches
	if finished >= a.cfg.MinSearches && finished > 0 {
		rate := float64(snap.Search.FailedSearches) / float64(finished)

		if snap.Search.SuccessfulSearches == 0 {
			alerts = append(alerts, Alert{
				Type:     AlertBackendUnreachable,
				Severity: "high",
				Message: fmt.Sprintf(
					"All %d recent search calls failed; the backend looks unreachable",
					snap.Search.FailedSearches,
				),
				Details: map[string]any{
					"failed": snap.Search.FailedSearches,
				},
				Timestamp: now,
			})
		} else if rate > a.cfg.FailureRateThreshold {
			alerts = append(alerts, Alert{
				Type:     AlertSearchFailureRate,
				Severity: "high",
				Message: fmt.Sprintf(
					"Search failure rate %.1f%% exceeds threshold %.1f%% (%d failed / %d finished)",
					rate*100, a.cfg.FailureRateThreshold*100,
					snap.Search.FailedSearches, finished,
				),
				Details: map[string]any{
					"failure_rate": rate,
					"threshold":    a.cfg.FailureRateThreshold,
					"failed":       snap.Search.FailedSearches,
					"finished":     finished,
				},
				Timestamp: now,
			})
		}
	}

	for endpoint, failures := range snap.Failures {
		requests := snap.Requests[endpoint]
		if requests >= 5 && float64(failures)/float64(requests) > a.cfg.FailureRateThreshold {
			alerts = append(alerts, Alert{
				Type:     AlertEndpointFailures,
				Severity: "medium",
				Message: fmt.Sprintf(
					"Endpoint %s failed %d of %d recent requests",
					endpoint, failures, requests,
				),
				Details: map[string]any{
					"endpoint": endpoint,
					"failed":   failures,
					"requests": requests,
				},
				Timestamp: now,
			})
		}
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if a.cfg.WebhookURL == "" || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		err := a.breaker.Execute(ctx, func(ctx context.Context) error {
			return a.sendWebhook(ctx, alert)
		})
		if err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
		sent++
	}
	return sent
}

// sendWebhook posts a single alert to the webhook URL.
func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
