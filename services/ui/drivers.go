package ui

import (
	"uicode-go/drivers/max17043"
	"uicode-go/drivers/paj7620"
	"uicode-go/types"
)

// PAJ7620Gestures adapts the gesture chip driver to GestureDriver.
type PAJ7620Gestures struct {
	Dev *paj7620.Device
}

func (a PAJ7620Gestures) Configure() error { return a.Dev.Configure() }

func (a PAJ7620Gestures) ReadGesture() (types.Gesture, error) {
	c, err := a.Dev.ReadGesture()
	if err != nil {
		return types.GestureNone, err
	}
	switch c {
	case paj7620.CodeUp:
		return types.GestureUp, nil
	case paj7620.CodeDown:
		return types.GestureDown, nil
	case paj7620.CodeLeft:
		return types.GestureLeft, nil
	case paj7620.CodeRight:
		return types.GestureRight, nil
	case paj7620.CodeForward:
		return types.GestureForward, nil
	case paj7620.CodeBackward:
		return types.GestureBackward, nil
	case paj7620.CodeClockwise:
		return types.GestureClockwise, nil
	case paj7620.CodeCounterClockwise:
		return types.GestureCounterClockwise, nil
	case paj7620.CodeWave:
		return types.GestureWave, nil
	}
	return types.GestureNone, nil
}

func (a PAJ7620Gestures) Cancel() { a.Dev.Cancel() }

// MAX17043Gauge adapts the fuel gauge driver to FuelGauge.
type MAX17043Gauge struct {
	Dev *max17043.Device
}

func (a MAX17043Gauge) Reset() error                    { return a.Dev.Reset() }
func (a MAX17043Gauge) QuickStart() error               { return a.Dev.QuickStart() }
func (a MAX17043Gauge) CellVoltage() (float32, error)   { return a.Dev.CellVoltage() }
func (a MAX17043Gauge) StateOfCharge() (float32, error) { return a.Dev.StateOfCharge() }
