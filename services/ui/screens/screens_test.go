package screens

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"uicode-go/bus"
	"uicode-go/types"
)

type fakeSurface struct {
	lines   map[int16]string
	inverse map[int16]bool
	rects   int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{lines: map[int16]string{}, inverse: map[int16]bool{}}
}

func (s *fakeSurface) Size() (int16, int16) { return 21, 8 }
func (s *fakeSurface) SetLine(row int16, segments ...string) error {
	s.lines[row] = strings.Join(segments, "")
	s.inverse[row] = false
	return nil
}
func (s *fakeSurface) SetLineInverse(row int16, text string) error {
	s.lines[row] = text
	s.inverse[row] = true
	return nil
}
func (s *fakeSurface) FillRect(x, y, w, h int16, c color.RGBA) { s.rects++ }
func (s *fakeSurface) Clear() {
	s.lines = map[int16]string{}
	s.inverse = map[int16]bool{}
}
func (s *fakeSurface) Flush() error { return nil }

func (s *fakeSurface) contains(substr string) bool {
	for _, l := range s.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

type fakeTime struct {
	now    time.Time
	synced bool
}

func (f *fakeTime) Now() time.Time { return f.now }
func (f *fakeTime) Synced() bool   { return f.synced }

func TestFactoryCoversAllSlots(t *testing.T) {
	f := &Factory{}
	if f.Count() != slotCount {
		t.Fatalf("Count = %d", f.Count())
	}
	for id := types.ScreenID(0); int(id) < f.Count(); id++ {
		s, err := f.Create(id)
		if err != nil {
			t.Errorf("Create(%d): %v", id, err)
			continue
		}
		if id == slotSetup && s.Name() != "setup" {
			t.Errorf("slot 0 = %q, want the setup screen", s.Name())
		}
		if s.RefreshPeriod() <= 0 {
			t.Errorf("screen %q has no refresh period", s.Name())
		}
	}
	if s, err := f.Create(types.ScreenLowBatt); err != nil || !s.FullScreen() {
		t.Errorf("low battery screen: %v, full=%v", err, s != nil && s.FullScreen())
	}
	if _, err := f.Create(types.ScreenID(42)); err == nil {
		t.Error("unknown slot must error")
	}
}

func TestStatusScreenFollowsPowerTopic(t *testing.T) {
	b := bus.NewBus(8)
	pub := b.NewConnection("pub")
	pub.Publish(pub.NewMessage(bus.T("power", "status"),
		types.PowerStatus{Volt: 3.87, SoC: 63}, true))

	s := newStatusScreen(b.NewConnection("screen"))
	s.Activate()
	defer s.Deactivate()

	sf := newFakeSurface()
	s.Render(sf)
	if !sf.contains("3.87V") {
		t.Errorf("voltage missing, lines = %v", sf.lines)
	}
	if !sf.contains("63%") {
		t.Errorf("charge missing, lines = %v", sf.lines)
	}

	pub.Publish(pub.NewMessage(bus.T("power", "status"),
		types.PowerStatus{Volt: 3.50, SoC: 22, LowBattery: true}, true))
	s.Render(sf)
	if !sf.contains("3.50V") || !sf.contains("LOW") {
		t.Errorf("update not rendered, lines = %v", sf.lines)
	}
}

func TestStatusScreenWithoutData(t *testing.T) {
	b := bus.NewBus(8)
	s := newStatusScreen(b.NewConnection("screen"))
	s.Activate()
	defer s.Deactivate()

	sf := newFakeSurface()
	s.Render(sf)
	if !sf.contains("waiting") {
		t.Errorf("placeholder missing, lines = %v", sf.lines)
	}
}

func TestReadingsScreenPaging(t *testing.T) {
	b := bus.NewBus(8)
	pub := b.NewConnection("pub")
	pub.Publish(pub.NewMessage(bus.T("sensors", "temperature", "value"),
		types.Reading{Value: 21.5}, true))
	pub.Publish(pub.NewMessage(bus.T("sensors", "pressure", "value"),
		types.Reading{Value: 1013.2}, true))

	s := newReadingsScreen(b.NewConnection("screen"))
	s.Activate()
	defer s.Deactivate()

	sf := newFakeSurface()
	s.Render(sf)
	if !sf.contains("21.5C") {
		t.Errorf("temperature missing, lines = %v", sf.lines)
	}
	if !sf.contains("--") {
		t.Errorf("missing humidity should render a placeholder, lines = %v", sf.lines)
	}

	// Vertical swipes flip pages and are consumed.
	if !s.HandleEvent(types.GestureDown) {
		t.Fatal("down swipe must be consumed")
	}
	s.Render(sf)
	if !sf.contains("1013.2hPa") {
		t.Errorf("page 2 missing pressure, lines = %v", sf.lines)
	}
	if !s.HandleEvent(types.GestureUp) {
		t.Error("up swipe must be consumed")
	}
	if s.page != 0 {
		t.Errorf("page = %d, want wrapped back to 0", s.page)
	}
	if s.HandleEvent(types.GestureLeft) || s.HandleEvent(types.GestureRight) {
		t.Error("horizontal swipes must pass through to navigation")
	}
}

func TestClockScreen(t *testing.T) {
	ft := &fakeTime{now: time.Date(2026, 8, 27, 9, 5, 7, 0, time.UTC)}
	s := newClockScreen(ft)
	if !s.FullScreen() {
		t.Error("clock must be full screen")
	}

	sf := newFakeSurface()
	s.Render(sf)
	if !sf.contains("not synced") {
		t.Errorf("unsynced placeholder missing, lines = %v", sf.lines)
	}

	ft.synced = true
	s.Render(sf)
	if !sf.contains("09:05:07") {
		t.Errorf("time missing, lines = %v", sf.lines)
	}
}

func TestLowBattScreen(t *testing.T) {
	s := newLowBattScreen()
	sf := newFakeSurface()
	s.Render(sf)
	if !sf.contains("BATTERY EMPTY") {
		t.Errorf("warning missing, lines = %v", sf.lines)
	}
	found := false
	for row, inv := range sf.inverse {
		if inv && strings.Contains(sf.lines[row], "BATTERY") {
			found = true
		}
	}
	if !found {
		t.Error("warning line should be inverse video")
	}
}

func TestCenter(t *testing.T) {
	if got := center("hi", 6); got != "  hi  " {
		t.Errorf("center = %q", got)
	}
	if got := center("longer than field", 6); got != "longer" {
		t.Errorf("center = %q", got)
	}
}
