package system

import (
	"context"
	"errors"
	"testing"
)

type fakeService struct {
	name    string
	failOn  bool
	started *[]string
	stopped *[]string
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(context.Context) error {
	if f.failOn {
		return errors.New("start failed")
	}
	*f.started = append(*f.started, f.name)
	return nil
}

func (f *fakeService) Stop(context.Context) error {
	*f.stopped = append(*f.stopped, f.name)
	return nil
}

func TestManagerStartsInOrderStopsInReverse(t *testing.T) {
	var started, stopped []string
	m := NewManager(nil)
	m.Register(&fakeService{name: "a", started: &started, stopped: &stopped})
	m.Register(&fakeService{name: "b", started: &started, stopped: &stopped})

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(started) != 2 || started[0] != "a" || started[1] != "b" {
		t.Fatalf("start order = %v", started)
	}

	m.Stop(context.Background())
	if len(stopped) != 2 || stopped[0] != "b" || stopped[1] != "a" {
		t.Fatalf("stop order = %v", stopped)
	}
}

func TestManagerFailedStartStopsEarlierServices(t *testing.T) {
	var started, stopped []string
	m := NewManager(nil)
	m.Register(&fakeService{name: "a", started: &started, stopped: &stopped})
	m.Register(&fakeService{name: "b", failOn: true, started: &started, stopped: &stopped})

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	if len(stopped) != 1 || stopped[0] != "a" {
		t.Fatalf("services running before the failure must be stopped, got %v", stopped)
	}
}

func TestManagerNames(t *testing.T) {
	var started, stopped []string
	m := NewManager(nil)
	m.Register(&fakeService{name: "a", started: &started, stopped: &stopped})
	m.Register(nil)

	names := m.Names()
	if len(names) != 1 || names[0] != "a" {
		t.Fatalf("names = %v", names)
	}
}

func TestSnapshotReportsRuntime(t *testing.T) {
	st := Snapshot(nil)
	if st.GoVersion == "" || st.NumGoroutine == 0 {
		t.Fatalf("incomplete snapshot: %+v", st)
	}
}
