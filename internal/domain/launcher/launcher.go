package launcher

import (
	"strings"

	"go.uber.org/zap"

	"github.com/launchdock/backend/internal/domain/registry"
	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/infrastructure/monitoring"
)

// Launcher translates definitions into OS process invocations and
// terminates tracked processes. All bookkeeping goes through the registry;
// no registry lock is held while an OS command is in flight.
type Launcher struct {
	registry   *registry.Manager
	controller Controller
	logger     *logging.Logger
	metrics    *monitoring.Metrics
}

// New creates a launcher using the given controller.
func New(reg *registry.Manager, controller Controller, logger *logging.Logger) *Launcher {
	return &Launcher{
		registry:   reg,
		controller: controller,
		logger:     logger,
	}
}

// WithMetrics adds metrics tracking to the launcher
func (l *Launcher) WithMetrics(metrics *monitoring.Metrics) *Launcher {
	l.metrics = metrics
	return l
}

// Controller exposes the platform controller (used by startup preemption).
func (l *Launcher) Controller() Controller {
	return l.controller
}

// Tokenize splits a whitespace-delimited argument string into argv tokens.
// Empty and blank strings produce no tokens.
func Tokenize(arguments string) []string {
	return strings.Fields(arguments)
}

// Launch starts an OS process for the given app.
//
// A known definition with duplicate prevention launches fire-and-forget and
// is tracked by name; everything else (including one-off tool launches for
// ids not in the registry) captures and tracks the PID. Exactly one
// registry insertion happens per successful launch, none on failure.
func (l *Launcher) Launch(appID, path, arguments string) error {
	def, known := l.registry.Get(appID)
	preventDuplicate := known && def.PreventDuplicate

	args := Tokenize(arguments)

	if preventDuplicate {
		// No PID capture: short-lived relaunch sequences can report a pid
		// that is already gone, so name tracking skips it entirely.
		if _, err := l.controller.Start(path, args, false); err != nil {
			l.record("failure")
			return &LaunchError{AppID: appID, Err: err}
		}

		l.registry.TrackName(appID, def.Name)
		l.logger.Info("Application launched (name-tracked)",
			zap.String("app_id", appID),
			zap.String("name", def.Name),
		)
		l.record("success")
		return nil
	}

	pid, err := l.controller.Start(path, args, true)
	if err != nil {
		l.record("failure")
		return &LaunchError{AppID: appID, Err: err}
	}

	l.registry.TrackPID(appID, pid)
	l.logger.Info("Application launched",
		zap.String("app_id", appID),
		zap.Int("pid", pid),
	)
	l.record("success")
	return nil
}

// Stop terminates a tracked process and removes its registry entry.
//
// The entry is removed before the OS termination is issued: once a stop
// claims an entry the app reports not-running regardless of how the OS
// call turns out, so an ambiguous termination never leaves a stale entry.
func (l *Launcher) Stop(appID string) error {
	def, known := l.registry.Get(appID)
	preventDuplicate := known && def.PreventDuplicate

	key := appID
	if preventDuplicate {
		key = registry.NameKey(appID, def.Name)
	}

	pid, tracked := l.registry.Take(key)
	if !tracked {
		return ErrNotRunning
	}

	if preventDuplicate {
		if !l.controller.SupportsNameStop() {
			l.recordStop("unsupported")
			return ErrUnsupportedOperation
		}
		if err := l.controller.StopName(def.Name); err != nil {
			l.recordStop("failure")
			return &StopError{AppID: appID, Err: err}
		}
		l.logger.Info("Application stopped by name",
			zap.String("app_id", appID),
			zap.String("name", def.Name),
		)
		l.recordStop("success")
		return nil
	}

	if err := l.controller.StopPID(pid); err != nil {
		l.recordStop("failure")
		return &StopError{AppID: appID, Err: err}
	}
	l.logger.Info("Application stopped",
		zap.String("app_id", appID),
		zap.Int("pid", pid),
	)
	l.recordStop("success")
	return nil
}

// PreemptDuplicate terminates any process matching the name, best effort.
// The target may simply not be running, so failures are logged and
// swallowed. No-op on platforms without name-based termination.
func (l *Launcher) PreemptDuplicate(name string) {
	if !l.controller.SupportsNameStop() {
		return
	}
	if err := l.controller.StopName(name); err != nil {
		l.logger.Debug("Duplicate preemption found nothing to stop",
			zap.String("name", name),
			zap.Error(err),
		)
	}
}

func (l *Launcher) record(result string) {
	if l.metrics != nil {
		l.metrics.RecordLaunch(result)
	}
}

func (l *Launcher) recordStop(result string) {
	if l.metrics != nil {
		l.metrics.RecordStop(result)
	}
}
