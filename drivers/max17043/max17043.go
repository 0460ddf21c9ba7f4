// Package max17043 provides a minimal TinyGo driver for the MAX17043 1-cell
// fuel gauge.
//
// Design notes (datasheet references):
// • I2C, 7-bit address 0x36; 16-bit registers, big-endian on the wire.
// • VCELL (0x02): 12-bit ADC value in the top bits, 1.25 mV per LSB.
// • SOC (0x04): ModelGauge state of charge, high byte integer percent, low
//   byte 1/256 %.
// • MODE (0x06): 0x4000 issues a quick-start (restart the SoC model).
// • COMMAND (0xFE): 0x5400 issues a power-on reset.
package max17043

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Address is the fixed 7-bit I2C address.
const Address = 0x36

// Registers.
const (
	regVCell   = 0x02
	regSOC     = 0x04
	regMode    = 0x06
	regVersion = 0x08
	regCommand = 0xFE
)

const (
	cmdQuickStart = 0x4000
	cmdPOR        = 0x5400
)

// voltsPerLSB is the VCELL scale: 1.25 mV.
const voltsPerLSB = 0.00125

// ErrBus is returned for any I2C failure.
var ErrBus = errors.New("max17043: bus error")

// Device wraps an I2C connection to a MAX17043 fuel gauge.
type Device struct {
	bus  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [3]byte
	r [2]byte
}

// New creates a new MAX17043 connection. The I2C bus must already be
// configured. This function only creates the Device object; it does not touch
// the device.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: Address}
}

// Reset issues a power-on reset. The gauge needs a moment before its next
// reading is meaningful; callers sequence that wait.
func (d *Device) Reset() error {
	return d.writeWord(regCommand, cmdPOR)
}

// QuickStart restarts the ModelGauge calculation, discarding history. Useful
// right after boot when the cell is settling.
func (d *Device) QuickStart() error {
	return d.writeWord(regMode, cmdQuickStart)
}

// CellVoltage returns the cell voltage in volts.
func (d *Device) CellVoltage() (float32, error) {
	raw, err := d.readWord(regVCell)
	if err != nil {
		return 0, err
	}
	return float32(raw>>4) * voltsPerLSB, nil
}

// StateOfCharge returns the gauge's native SoC estimate in percent. Values
// slightly above 100 are possible and left to the caller to clamp.
func (d *Device) StateOfCharge() (float32, error) {
	raw, err := d.readWord(regSOC)
	if err != nil {
		return 0, err
	}
	return float32(raw>>8) + float32(raw&0xFF)/256, nil
}

// Version returns the chip's production version word.
func (d *Device) Version() (uint16, error) {
	return d.readWord(regVersion)
}

func (d *Device) writeWord(reg byte, val uint16) error {
	d.w[0] = reg
	d.w[1] = byte(val >> 8)
	d.w[2] = byte(val)
	if err := d.bus.Tx(d.addr, d.w[:3], nil); err != nil {
		return ErrBus
	}
	return nil
}

func (d *Device) readWord(reg byte) (uint16, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, ErrBus
	}
	return uint16(d.r[0])<<8 | uint16(d.r[1]), nil
}
