package ui

import (
	"sync/atomic"

	"uicode-go/types"
)

// The gesture interrupt fires in a context that carries no receiver, so this
// is the one static binding from the vector to the live manager. Setup
// installs it, Close removes it; nothing else may touch it.
var isrTarget atomic.Pointer[Manager]

// GestureISR is the pin interrupt entry point. Safe to call before any
// manager exists.
func GestureISR() {
	if m := isrTarget.Load(); m != nil {
		m.onGesture()
	}
}

// eventLatch is the only state shared with interrupt context: a pending flag
// and the last-interaction timestamp, both atomic. Events coalesce; there is
// no queue.
type eventLatch struct {
	pending atomic.Bool
	atMs    atomic.Int64
}

// arm records an event. Reports false when a previous event is still
// unserviced.
func (l *eventLatch) arm(nowMs int64) bool {
	if !l.pending.CompareAndSwap(false, true) {
		return false
	}
	l.atMs.Store(nowMs)
	return true
}

func (l *eventLatch) clear()          { l.pending.Store(false) }
func (l *eventLatch) isPending() bool { return l.pending.Load() }
func (l *eventLatch) lastMs() int64   { return l.atMs.Load() }
func (l *eventLatch) touch(nowMs int64) { l.atMs.Store(nowMs) }

// onGesture runs in interrupt context: flag, timestamp, wake the scheduler.
// No bus I/O, no display I/O, no allocation.
func (m *Manager) onGesture() {
	if m.event.arm(m.nowMs()) {
		m.host.Force()
	}
}

// remap converts a raw directional gesture into the direction the user meant
// for the given panel orientation. The sensor is mounted rotated a quarter
// turn against the panel, so raw vertical swipes are horizontal to the user
// and vice versa; flipping the panel mirrors them. Non-directional gestures
// pass through unchanged, anything unknown collapses to none.
func remap(g types.Gesture, o types.Orientation) types.Gesture {
	if !g.Directional() {
		switch g {
		case types.GestureForward, types.GestureBackward,
			types.GestureClockwise, types.GestureCounterClockwise,
			types.GestureWave:
			return g
		}
		return types.GestureNone
	}
	if o == types.OrientationBase {
		switch g {
		case types.GestureUp:
			return types.GestureLeft
		case types.GestureDown:
			return types.GestureRight
		case types.GestureLeft:
			return types.GestureDown
		default:
			return types.GestureUp
		}
	}
	switch g {
	case types.GestureUp:
		return types.GestureRight
	case types.GestureDown:
		return types.GestureLeft
	case types.GestureLeft:
		return types.GestureUp
	default:
		return types.GestureDown
	}
}

// readUserEvent drains one raw gesture from the sensor and remaps it.
func (m *Manager) readUserEvent() types.Gesture {
	raw, err := m.gestures.ReadGesture()
	if err != nil {
		m.log.Warn("gesture read failed: " + err.Error())
		return types.GestureNone
	}
	if raw != types.GestureNone {
		m.log.Debug("gesture " + raw.String())
	}
	return remap(raw, m.orientation)
}
