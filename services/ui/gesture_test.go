package ui

import (
	"testing"

	"uicode-go/types"
)

func TestRemapDirectional(t *testing.T) {
	cases := []struct {
		raw     types.Gesture
		o       types.Orientation
		logical types.Gesture
	}{
		{types.GestureUp, types.OrientationBase, types.GestureLeft},
		{types.GestureDown, types.OrientationBase, types.GestureRight},
		{types.GestureLeft, types.OrientationBase, types.GestureDown},
		{types.GestureRight, types.OrientationBase, types.GestureUp},
		{types.GestureUp, types.OrientationFlipped, types.GestureRight},
		{types.GestureDown, types.OrientationFlipped, types.GestureLeft},
		{types.GestureLeft, types.OrientationFlipped, types.GestureUp},
		{types.GestureRight, types.OrientationFlipped, types.GestureDown},
	}
	for _, c := range cases {
		if got := remap(c.raw, c.o); got != c.logical {
			t.Errorf("remap(%v, %v) = %v, want %v", c.raw, c.o, got, c.logical)
		}
	}
}

func TestRemapPassthrough(t *testing.T) {
	pass := []types.Gesture{
		types.GestureForward, types.GestureBackward,
		types.GestureClockwise, types.GestureCounterClockwise,
		types.GestureWave,
	}
	for _, o := range []types.Orientation{types.OrientationBase, types.OrientationFlipped} {
		for _, g := range pass {
			if got := remap(g, o); got != g {
				t.Errorf("remap(%v, %v) = %v, want passthrough", g, o, got)
			}
		}
		if got := remap(types.GestureNone, o); got != types.GestureNone {
			t.Errorf("none remapped to %v", got)
		}
		if got := remap(types.Gesture(0x7F), o); got != types.GestureNone {
			t.Errorf("unknown code remapped to %v, want none", got)
		}
	}
}

func TestEventLatchCoalesces(t *testing.T) {
	var l eventLatch
	if !l.arm(100) {
		t.Fatal("first arm must succeed")
	}
	if l.arm(200) {
		t.Error("second arm while pending must fail")
	}
	if l.lastMs() != 100 {
		t.Errorf("lastMs = %d, coalesced event must not move the timestamp", l.lastMs())
	}
	l.clear()
	if !l.arm(300) {
		t.Error("arm after clear must succeed")
	}
}

func TestGestureISRWithoutManager(t *testing.T) {
	old := isrTarget.Swap(nil)
	defer isrTarget.Store(old)
	GestureISR() // must not panic
}
