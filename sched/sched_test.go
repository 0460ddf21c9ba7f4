package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countTask struct {
	setup    atomic.Int32
	services atomic.Int32
	setupErr error
}

func (t *countTask) Setup() error {
	t.setup.Add(1)
	return t.setupErr
}
func (t *countTask) Service() { t.services.Add(1) }

func TestRunnerTicks(t *testing.T) {
	task := &countTask{}
	r := NewRunner("test", task, 10*time.Millisecond, false)

	ctx, cancel := context.WithCancel(context.Background())
	errc := r.Start(ctx)

	time.Sleep(105 * time.Millisecond)
	cancel()
	<-errc

	if task.setup.Load() != 1 {
		t.Fatalf("setup ran %d times, want 1", task.setup.Load())
	}
	n := task.services.Load()
	if n < 5 || n > 15 {
		t.Errorf("services = %d, want roughly 10", n)
	}
}

func TestRunnerSetupFailure(t *testing.T) {
	task := &countTask{setupErr: context.DeadlineExceeded}
	r := NewRunner("bad", task, time.Millisecond, false)

	err := r.Run(context.Background())
	if err == nil {
		t.Fatal("Run should surface Setup error")
	}
	if task.services.Load() != 0 {
		t.Error("task must not be serviced after failed Setup")
	}
}

func TestSetPeriodTakesEffect(t *testing.T) {
	task := &countTask{}
	r := NewRunner("slow", task, time.Hour, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	if task.services.Load() != 0 {
		t.Fatal("hour-period runner should not have ticked yet")
	}

	r.SetPeriod(5 * time.Millisecond)
	r.Force() // wake the loop so the new period arms now
	time.Sleep(60 * time.Millisecond)
	if task.services.Load() < 3 {
		t.Errorf("services = %d after period change, want several", task.services.Load())
	}
}

func TestForceServicesImmediately(t *testing.T) {
	task := &countTask{}
	r := NewRunner("forced", task, time.Hour, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	time.Sleep(10 * time.Millisecond)
	r.Force()
	time.Sleep(20 * time.Millisecond)
	if task.services.Load() != 1 {
		t.Errorf("services = %d after Force, want 1", task.services.Load())
	}
}

func TestDisableSuppressesService(t *testing.T) {
	task := &countTask{}
	r := NewRunner("off", task, 5*time.Millisecond, true)
	r.Disable()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	time.Sleep(40 * time.Millisecond)
	if task.services.Load() != 0 {
		t.Errorf("disabled runner serviced %d times", task.services.Load())
	}
	if !r.Disabled() {
		t.Error("Disabled() should report true")
	}
}

func TestRegistryDisablePeripherals(t *testing.T) {
	g := NewRegistry()
	ui := NewRunner("ui", &countTask{}, time.Hour, false)
	s1 := NewRunner("temp", &countTask{}, time.Hour, true)
	s2 := NewRunner("co2", &countTask{}, time.Hour, true)
	g.Add(ui)
	g.Add(s1)
	g.Add(s2)

	g.DisablePeripherals()

	if ui.Disabled() {
		t.Error("non-peripheral runner must stay enabled")
	}
	if !s1.Disabled() || !s2.Disabled() {
		t.Error("peripheral runners must be disabled")
	}
	if g.Lookup("co2") != s2 || g.Lookup("nope") != nil {
		t.Error("Lookup misbehaves")
	}
}
