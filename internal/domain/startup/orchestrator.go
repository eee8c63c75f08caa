package startup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/launchdock/backend/internal/domain/launcher"
	"github.com/launchdock/backend/internal/domain/registry"
	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/infrastructure/monitoring"
)

// Orchestrator launches all enabled definitions in registry order.
//
// Each app's configured delay blocks only this orchestration, never the
// callers that trigger it. Individual launch failures are logged and do
// not abort the remaining apps.
type Orchestrator struct {
	registry *registry.Manager
	launcher *launcher.Launcher
	logger   *logging.Logger
	metrics  *monitoring.Metrics

	// sleep waits for the given duration or until the context is done.
	// Overridable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an orchestrator.
func New(reg *registry.Manager, l *launcher.Launcher, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		registry: reg,
		launcher: l,
		logger:   logger,
		sleep:    wait,
	}
}

// WithMetrics adds metrics tracking to the orchestrator
func (o *Orchestrator) WithMetrics(metrics *monitoring.Metrics) *Orchestrator {
	o.metrics = metrics
	return o
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run launches every enabled definition, in order, honoring per-app delays.
// Returns the number of successful launches. Cancelling the context stops
// the sequence between apps; launches already issued are not undone.
func (o *Orchestrator) Run(ctx context.Context) (int, error) {
	defs := o.registry.List()

	if o.metrics != nil {
		o.metrics.IncStartupRuns()
	}
	o.logger.Info("Startup sequence began", zap.Int("definitions", len(defs)))

	launched := 0
	for _, def := range defs {
		if !def.Enabled {
			continue
		}
		if err := ctx.Err(); err != nil {
			o.logger.Warn("Startup sequence cancelled",
				zap.Int("launched", launched),
				zap.Error(err),
			)
			return launched, err
		}

		if def.PreventDuplicate {
			o.launcher.PreemptDuplicate(def.Name)
		}

		if def.Delay > 0 {
			if err := o.sleep(ctx, time.Duration(def.Delay)*time.Second); err != nil {
				o.logger.Warn("Startup sequence cancelled during delay",
					zap.String("app_id", def.ID),
					zap.Error(err),
				)
				return launched, err
			}
		}

		if err := o.launcher.Launch(def.ID, def.Path, def.Arguments); err != nil {
			o.logger.Error("Startup launch failed",
				zap.String("app_id", def.ID),
				zap.String("name", def.Name),
				zap.Error(err),
			)
			if o.metrics != nil {
				o.metrics.IncStartupFailures()
			}
			continue
		}
		launched++
	}

	o.logger.Info("Startup sequence done", zap.Int("launched", launched))
	return launched, nil
}
