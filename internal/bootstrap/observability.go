package bootstrap

import (
	"log/slog"

	"github.com/workvortex/vortex-api/config"
	"github.com/workvortex/vortex-api/internal/observability/notify"
	"github.com/workvortex/vortex-api/internal/observability/notify/pagerduty"
	"github.com/workvortex/vortex-api/internal/observability/notify/slack"
	"github.com/workvortex/vortex-api/internal/observability/statsd"
)

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink *statsd.Client // nil when metrics are disabled
	Notifier    *notify.Dispatcher
}

// Sink returns the metrics sink as an interface, nil when metrics are disabled.
//
//nolint:ireturn // services accept the statsd.Sink port.
func (o ObservabilityContainer) Sink() statsd.Sink {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink
}

// Close waits for in-flight notifications and closes the metrics connection.
func (o ObservabilityContainer) Close() error {
	o.Notifier.Wait()
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink.Close()
}

func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.Prefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink: metricsSink,
		Notifier:    buildNotifier(obsLogger, cfg.Notifications),
	}
}

// buildNotifier always logs workflow events; Slack and PagerDuty are added when enabled.
func buildNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) *notify.Dispatcher {
	sinks := []notify.Sink{notify.NewLogSink(logger)}

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL:    cfg.Slack.WebhookURL,
			Channel:       cfg.Slack.Channel,
			Username:      cfg.Slack.Username,
			Timeout:       cfg.Timeout,
			RetryLimit:    cfg.RetryLimit,
			LinkURLPrefix: cfg.Slack.LinkURLPrefix,
		})
		if err != nil {
			logger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, notify.WithMinSeverity(client, cfg.Slack.MinSeverity))
		}
	}

	if cfg.PagerDuty.Enabled {
		client, err := pagerduty.NewClient(pagerduty.Config{
			RoutingKey: cfg.PagerDuty.RoutingKey,
			Source:     cfg.PagerDuty.Source,
			Component:  cfg.PagerDuty.Component,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise pagerduty notifier", "error", err)
		} else {
			sinks = append(sinks, notify.WithMinSeverity(client, cfg.PagerDuty.MinSeverity))
		}
	}

	return notify.NewDispatcher(notify.DispatcherOptions{
		Sinks:  sinks,
		Logger: logger,
	})
}
