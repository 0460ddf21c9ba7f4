package ui

import (
	"image/color"
	"time"

	"uicode-go/types"
)

// Surface is the drawing target shared by the top bar and the screens: a
// character grid for text plus raw rectangles for the gauges and transition
// cues. display/textsurface provides the hardware-backed implementation.
type Surface interface {
	// Size returns the text grid dimensions in characters (cols, rows).
	Size() (int16, int16)
	SetLine(row int16, segments ...string) error
	SetLineInverse(row int16, text string) error
	// FillRect paints a filled rectangle in pixel coordinates.
	FillRect(x, y, w, h int16, c color.RGBA)
	Clear()
	Flush() error
}

// Display is the panel power and rotation control. Drawing goes through
// Surface; this is only the out-of-band panel state.
type Display interface {
	// Reinit re-runs the panel init sequence. Called before powering the
	// backlight back up in case the controller lost state while dark.
	Reinit()
	Backlight(on bool)
	SetRotation(o types.Orientation)
}

// GestureDriver is the service-time face of the gesture sensor. The
// interrupt side never touches it; only the scheduled task does I2C.
type GestureDriver interface {
	Configure() error
	// ReadGesture returns the latched raw gesture, or GestureNone. Reading
	// clears the sensor latch.
	ReadGesture() (types.Gesture, error)
	// Cancel discards any latched gesture without reporting it.
	Cancel()
}

// FuelGauge reads the battery monitor.
type FuelGauge interface {
	Reset() error
	QuickStart() error
	CellVoltage() (float32, error)
	StateOfCharge() (float32, error)
}

// TimeSource provides wall-clock time plus whether it has ever been synced.
// Before the first sync the top bar shows the device name instead of a bogus
// epoch date.
type TimeSource interface {
	Now() time.Time
	Synced() bool
}

// SignalSource reports link strength in dBm. The conventional value 31 means
// "no link".
type SignalSource interface {
	RSSI() int
}

// LocationSource reports the resolved locality, if any.
type LocationSource interface {
	Locality() (string, bool)
}

// Restarter performs a full device restart.
type Restarter interface {
	Restart()
}

// TaskRegistry switches off the peripheral sensor tasks on low battery.
type TaskRegistry interface {
	DisablePeripherals()
}

// Host is the scheduler handle for the manager's own task. sched.Runner
// satisfies it.
type Host interface {
	SetPeriod(d time.Duration)
	Force()
}
