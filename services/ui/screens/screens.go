// Package screens holds the concrete screen set and the factory the display
// manager creates them through. Screens pull their data off the bus; the
// manager never hands them anything but the drawing surface.
package screens

import (
	"time"

	"uicode-go/bus"
	"uicode-go/errcode"
	"uicode-go/services/ui"
	"uicode-go/types"
)

// Cycle slots. Slot 0 is the setup screen, reachable only by the rotation
// gesture; slots 1..3 are the swipe cycle.
const (
	slotSetup    = types.ScreenSetup
	slotStatus   = types.ScreenID(1)
	slotReadings = types.ScreenID(2)
	slotClock    = types.ScreenID(3)

	slotCount = 4
)

// Factory implements ui.Provider.
type Factory struct {
	Conn    *bus.Connection
	Time    ui.TimeSource
	Version string
}

func (f *Factory) Count() int { return slotCount }

func (f *Factory) Create(id types.ScreenID) (ui.Screen, error) {
	switch id {
	case slotSetup:
		return newSetupScreen(f.Version), nil
	case slotStatus:
		return newStatusScreen(f.Conn), nil
	case slotReadings:
		return newReadingsScreen(f.Conn), nil
	case slotClock:
		return newClockScreen(f.Time), nil
	case types.ScreenLowBatt:
		return newLowBattScreen(), nil
	}
	return nil, errcode.UnknownScreen
}

// base carries the shared metadata and the no-op defaults.
type base struct {
	name       string
	period     time.Duration
	fullScreen bool
	refreshOff bool
}

func (b *base) Activate()                        {}
func (b *base) Deactivate()                      {}
func (b *base) HandleEvent(types.Gesture) bool   { return false }
func (b *base) RefreshPeriod() time.Duration     { return b.period }
func (b *base) FullScreen() bool                 { return b.fullScreen }
func (b *base) RefreshWhileOff() bool            { return b.refreshOff }
func (b *base) Name() string                     { return b.name }
