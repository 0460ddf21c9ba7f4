package ui

import (
	"time"

	"uicode-go/types"
)

// Screen is one display variant. Exactly one screen is live at a time; the
// manager calls Activate before any Render and Deactivate exactly once
// before the instance is dropped. Render must be idempotent: it is called on
// every refresh tick against a surface the screen already owns.
type Screen interface {
	Activate()
	Deactivate()
	Render(s Surface)

	// HandleEvent offers a logical gesture to the screen first. Returning
	// true vetoes the manager's default navigation for that gesture.
	HandleEvent(g types.Gesture) bool

	// RefreshPeriod is the tick interval the scheduler should run the UI at
	// while this screen is live. Queried after every activation, never
	// cached across screens.
	RefreshPeriod() time.Duration

	// FullScreen screens own the whole panel; the top bar is not drawn.
	FullScreen() bool

	// RefreshWhileOff keeps Render ticking while the backlight is off.
	RefreshWhileOff() bool

	Name() string
}

// Provider creates screens by ID. Count is the number of cycle slots
// including the reserved setup slot 0; the low-battery screen sits outside
// the cycle under its own ID.
type Provider interface {
	Create(id types.ScreenID) (Screen, error)
	Count() int
}

// nextContent and prevContent step the swipe cycle. Content screens occupy
// [1, count-1]; slot 0 (setup) is skipped and reachable only by rotation
// gesture.
func nextContent(id types.ScreenID, count int) types.ScreenID {
	n := int(id) + 1
	if n >= count {
		n = 1
	}
	return types.ScreenID(n)
}

func prevContent(id types.ScreenID, count int) types.ScreenID {
	n := int(id) - 1
	if n < 1 {
		n = count - 1
	}
	return types.ScreenID(n)
}
