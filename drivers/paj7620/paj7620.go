// Package paj7620 provides a minimal TinyGo driver for the PAJ7620U2
// gesture recognition sensor in gesture mode.
//
// Design notes (datasheet references):
// • I2C, 7-bit address 0x73; register banks selected via 0xEF.
// • The device sleeps until the first bus transaction; wake by selecting
//   bank 0 twice.
// • Recognised gestures latch into the two interrupt flag registers
//   (0x43/0x44, bank 0); reading them clears the latch and the INT line.
//
// The driver reports raw gesture codes only. Remapping to logical directions
// (sensor mounting, display rotation) is the caller's concern.
package paj7620

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Address is the fixed 7-bit I2C address.
const Address = 0x73

// Registers (bank 0 unless noted).
const (
	regBankSel   = 0xEF
	regPartIDLo  = 0x00
	regPartIDHi  = 0x01
	regIntFlag1  = 0x43
	regIntFlag2  = 0x44
	regSuspend   = 0x03
	partIDLo     = 0x20
	partIDHi     = 0x76
	flag2WaveBit = 0x01
)

// Errors returned by the driver.
var (
	ErrWrongChip = errors.New("paj7620: wrong part id")
	ErrBus       = errors.New("paj7620: bus error")
)

// Code is a raw gesture code as latched by the sensor.
type Code uint8

const (
	CodeNone Code = iota
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeForward
	CodeBackward
	CodeClockwise
	CodeCounterClockwise
	CodeWave
)

// Flag bits in regIntFlag1.
const (
	bitUp        = 0x01
	bitDown      = 0x02
	bitLeft      = 0x04
	bitRight     = 0x08
	bitForward   = 0x10
	bitBackward  = 0x20
	bitClockwise = 0x40
	bitCounter   = 0x80
)

// initSequence is the gesture-mode register set (bank, reg, value). This is
// the vendor bring-up table trimmed to the entries that matter for gesture
// recognition at the default near-mode sensitivity.
var initSequence = [...][3]byte{
	{0, 0x41, 0x00}, // mask all gesture interrupts during bring-up
	{0, 0x42, 0x00},
	{0, 0x37, 0x07},
	{0, 0x38, 0x17},
	{0, 0x39, 0x06},
	{0, 0x8B, 0x01},
	{0, 0x46, 0x2D},
	{0, 0x47, 0x0F},
	{0, 0x48, 0x3C},
	{0, 0x49, 0x00},
	{0, 0x4A, 0x1E},
	{0, 0x4C, 0x20},
	{0, 0x51, 0x10},
	{0, 0x5E, 0x10},
	{0, 0x60, 0x27},
	{0, 0x80, 0x42},
	{0, 0x81, 0x44},
	{0, 0x82, 0x04},
	{0, 0x90, 0x06},
	{0, 0x95, 0x0A},
	{0, 0x96, 0x0C},
	{0, 0x97, 0x05},
	{0, 0x9A, 0x14},
	{0, 0x9C, 0x3F},
	{0, 0xA5, 0x19},
	{0, 0xCC, 0x19},
	{0, 0xCD, 0x0B},
	{0, 0xCE, 0x13},
	{0, 0xCF, 0x64},
	{0, 0xD0, 0x21},
	{1, 0x02, 0x0F},
	{1, 0x03, 0x10},
	{1, 0x04, 0x02},
	{1, 0x25, 0x01},
	{1, 0x27, 0x39},
	{1, 0x28, 0x7F},
	{1, 0x29, 0x08},
	{1, 0x3E, 0xFF},
	{1, 0x5E, 0x3D},
	{1, 0x65, 0x96},
	{1, 0x67, 0x97},
	{1, 0x69, 0xCD},
	{1, 0x6A, 0x01},
	{1, 0x6D, 0x2C},
	{1, 0x6E, 0x01},
	{1, 0x72, 0x01},
	{1, 0x73, 0x35},
	{1, 0x74, 0x00},
	{1, 0x77, 0x01},
	{0, 0x41, 0xFF}, // unmask all gesture interrupts
	{0, 0x42, 0x01},
}

// Device wraps an I2C connection to a PAJ7620 sensor.
type Device struct {
	bus  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [1]byte
}

// New creates a new PAJ7620 connection. The I2C bus must already be
// configured. This function only creates the Device object; it does not touch
// the device.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: Address}
}

// Configure wakes the sensor, verifies its identity and loads the
// gesture-mode register set. The sensor is left in bank 0 with gesture
// interrupts enabled.
func (d *Device) Configure() error {
	// Wake: the first transaction only brings the oscillator up, the second
	// is the one that lands. A short settle between them per datasheet.
	_ = d.selectBank(0)
	time.Sleep(700 * time.Microsecond)
	if err := d.selectBank(0); err != nil {
		return ErrBus
	}

	lo, err := d.readReg(regPartIDLo)
	if err != nil {
		return ErrBus
	}
	hi, err := d.readReg(regPartIDHi)
	if err != nil {
		return ErrBus
	}
	if lo != partIDLo || hi != partIDHi {
		return ErrWrongChip
	}

	bank := byte(0)
	for _, e := range initSequence {
		if e[0] != bank {
			bank = e[0]
			if err := d.selectBank(bank); err != nil {
				return ErrBus
			}
		}
		if err := d.writeReg(e[1], e[2]); err != nil {
			return ErrBus
		}
	}
	return d.selectBank(0)
}

// ReadGesture returns the latched gesture, clearing the latch. CodeNone means
// nothing was pending.
func (d *Device) ReadGesture() (Code, error) {
	f1, err := d.readReg(regIntFlag1)
	if err != nil {
		return CodeNone, ErrBus
	}
	switch {
	case f1&bitUp != 0:
		return CodeUp, nil
	case f1&bitDown != 0:
		return CodeDown, nil
	case f1&bitLeft != 0:
		return CodeLeft, nil
	case f1&bitRight != 0:
		return CodeRight, nil
	case f1&bitForward != 0:
		return CodeForward, nil
	case f1&bitBackward != 0:
		return CodeBackward, nil
	case f1&bitClockwise != 0:
		return CodeClockwise, nil
	case f1&bitCounter != 0:
		return CodeCounterClockwise, nil
	}
	f2, err := d.readReg(regIntFlag2)
	if err != nil {
		return CodeNone, ErrBus
	}
	if f2&flag2WaveBit != 0 {
		return CodeWave, nil
	}
	return CodeNone, nil
}

// Cancel discards any latched gesture so it cannot re-trigger the INT line.
func (d *Device) Cancel() {
	_, _ = d.readReg(regIntFlag1)
	_, _ = d.readReg(regIntFlag2)
}

func (d *Device) selectBank(b byte) error { return d.writeReg(regBankSel, b) }

func (d *Device) writeReg(reg, val byte) error {
	d.w[0], d.w[1] = reg, val
	return d.bus.Tx(d.addr, d.w[:2], nil)
}

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}
