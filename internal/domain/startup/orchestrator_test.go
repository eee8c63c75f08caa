package startup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/launchdock/backend/internal/domain/launcher"
	"github.com/launchdock/backend/internal/domain/registry"
	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/shared/types"
)

type memStore struct {
	cfg types.AppConfig
}

func (s *memStore) Load() types.AppConfig { return s.cfg }

func (s *memStore) Save(c types.AppConfig) error { s.cfg = c; return nil }

type scriptedController struct {
	started   []string
	preempted []string
	failPaths map[string]error
	nameStops bool
}

func (c *scriptedController) Start(path string, args []string, capturePID bool) (int, error) {
	if err := c.failPaths[path]; err != nil {
		return 0, err
	}
	c.started = append(c.started, path)
	return len(c.started), nil
}

func (c *scriptedController) StopPID(pid int) error { return nil }

func (c *scriptedController) StopName(name string) error {
	c.preempted = append(c.preempted, name)
	return nil
}

func (c *scriptedController) SupportsNameStop() bool { return c.nameStops }

func newTestOrchestrator(t *testing.T, ctrl launcher.Controller, defs ...types.AppDefinition) (*Orchestrator, *registry.Manager, *[]time.Duration) {
	t.Helper()
	store := &memStore{cfg: types.AppConfig{RegisteredApps: defs}}
	reg := registry.NewManager(store, logging.NewNop())
	l := launcher.New(reg, ctrl, logging.NewNop())

	var slept []time.Duration
	o := New(reg, l, logging.NewNop())
	o.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return o, reg, &slept
}

func TestRunLaunchesEnabledInOrder(t *testing.T) {
	ctrl := &scriptedController{}
	o, _, slept := newTestOrchestrator(t, ctrl,
		types.AppDefinition{ID: "a", Name: "alpha", Path: "/bin/alpha", Enabled: true},
		types.AppDefinition{ID: "b", Name: "beta", Path: "/bin/beta", Enabled: true, Delay: 2},
		types.AppDefinition{ID: "c", Name: "gamma", Path: "/bin/gamma"},
	)

	launched, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if launched != 2 {
		t.Fatalf("expected 2 launches, got %d", launched)
	}

	if len(ctrl.started) != 2 || ctrl.started[0] != "/bin/alpha" || ctrl.started[1] != "/bin/beta" {
		t.Errorf("unexpected launch order: %v", ctrl.started)
	}
	if len(*slept) != 1 || (*slept)[0] != 2*time.Second {
		t.Errorf("expected a single 2s delay, got %v", *slept)
	}
}

func TestRunSkipsDisabled(t *testing.T) {
	ctrl := &scriptedController{}
	o, _, _ := newTestOrchestrator(t, ctrl,
		types.AppDefinition{ID: "a", Name: "alpha", Path: "/bin/alpha"},
	)

	launched, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if launched != 0 || len(ctrl.started) != 0 {
		t.Errorf("disabled app was launched: %v", ctrl.started)
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	ctrl := &scriptedController{failPaths: map[string]error{"/bin/alpha": errors.New("boom")}}
	o, reg, _ := newTestOrchestrator(t, ctrl,
		types.AppDefinition{ID: "a", Name: "alpha", Path: "/bin/alpha", Enabled: true},
		types.AppDefinition{ID: "b", Name: "beta", Path: "/bin/beta", Enabled: true},
	)

	launched, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if launched != 1 {
		t.Fatalf("expected 1 launch, got %d", launched)
	}
	if reg.IsRunning("a") {
		t.Error("failed launch must not be tracked")
	}
	if !reg.IsRunning("b") {
		t.Error("surviving launch should be tracked")
	}
}

func TestRunPreemptsDuplicates(t *testing.T) {
	ctrl := &scriptedController{nameStops: true}
	o, reg, _ := newTestOrchestrator(t, ctrl,
		types.AppDefinition{ID: "a", Name: "alpha", Path: "/bin/alpha", Enabled: true, PreventDuplicate: true},
	)

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(ctrl.preempted) != 1 || ctrl.preempted[0] != "alpha" {
		t.Errorf("expected preemption of alpha, got %v", ctrl.preempted)
	}
	if !reg.IsRunning("a") {
		t.Error("duplicate-prevented app should be name-tracked after launch")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctrl := &scriptedController{}
	o, _, _ := newTestOrchestrator(t, ctrl,
		types.AppDefinition{ID: "a", Name: "alpha", Path: "/bin/alpha", Enabled: true},
		types.AppDefinition{ID: "b", Name: "beta", Path: "/bin/beta", Enabled: true, Delay: 5},
	)

	ctx, cancel := context.WithCancel(context.Background())
	o.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	launched, err := o.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if launched != 1 {
		t.Errorf("expected 1 launch before cancellation, got %d", launched)
	}
	if len(ctrl.started) != 1 {
		t.Errorf("no launch should follow a cancelled delay: %v", ctrl.started)
	}
}
