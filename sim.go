package main

import (
	"errors"
	"image/color"
	"sync"

	"uicode-go/drivers/max17043"
	"uicode-go/drivers/paj7620"
	"uicode-go/types"
	"uicode-go/x/mathx"
)

// ---- simulated I2C bus ----

// simI2C routes transactions to the simulated chips by address, same as a
// shared physical bus would.
type simI2C struct {
	gestures *simGestureChip
	gauge    *simGaugeChip
}

func newSimI2C() *simI2C {
	return &simI2C{
		gestures: newSimGestureChip(),
		gauge:    &simGaugeChip{volt: 4.05},
	}
}

func (s *simI2C) Tx(addr uint16, w, r []byte) error {
	switch addr {
	case paj7620.Address:
		return s.gestures.tx(w, r)
	case max17043.Address:
		return s.gauge.tx(w, r)
	}
	return errors.New("sim: no device at address")
}

// ---- gesture chip ----

type simGestureChip struct {
	mu    sync.Mutex
	flag1 byte
	flag2 byte
}

func newSimGestureChip() *simGestureChip { return &simGestureChip{} }

// inject latches one gesture, as a hand pass over the sensor would.
func (c *simGestureChip) inject(code paj7620.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code == paj7620.CodeWave {
		c.flag2 = 0x01
		return
	}
	if code != paj7620.CodeNone {
		c.flag1 = 1 << (byte(code) - 1)
	}
}

func (c *simGestureChip) tx(w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(r) == 0 {
		return nil // register writes accepted and ignored
	}
	if len(w) != 1 {
		return errors.New("sim: bad gesture read")
	}
	switch w[0] {
	case 0x00:
		r[0] = 0x20
	case 0x01:
		r[0] = 0x76
	case 0x43:
		r[0] = c.flag1
		c.flag1 = 0 // reading clears the latch
	case 0x44:
		r[0] = c.flag2
		c.flag2 = 0
	default:
		r[0] = 0
	}
	return nil
}

// ---- fuel gauge chip ----

type simGaugeChip struct {
	mu   sync.Mutex
	volt float32
}

func (c *simGaugeChip) drain(dv float32) {
	c.mu.Lock()
	c.volt -= dv
	c.mu.Unlock()
}

func (c *simGaugeChip) tx(w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(r) == 0 {
		return nil // MODE and COMMAND writes accepted and ignored
	}
	if len(w) != 1 || len(r) != 2 {
		return errors.New("sim: bad gauge read")
	}
	switch w[0] {
	case 0x02: // VCELL, 1.25mV per LSB, left-justified 12 bits
		raw := uint16(c.volt/0.00125) << 4
		r[0], r[1] = byte(raw>>8), byte(raw)
	case 0x04: // SOC
		soc := mathx.Clamp((c.volt-3.3)/0.9*100, 0, 100)
		r[0], r[1] = byte(soc), 0
	case 0x08: // VERSION
		r[0], r[1] = 0, 3
	default:
		r[0], r[1] = 0, 0
	}
	return nil
}

// ---- panel ----

// memPanel is an in-memory Displayer standing in for the OLED.
type memPanel struct {
	w, h int16
	buf  []color.RGBA
}

func newMemPanel(w, h int16) *memPanel {
	return &memPanel{w: w, h: h, buf: make([]color.RGBA, int(w)*int(h))}
}

func (p *memPanel) Size() (int16, int16) { return p.w, p.h }

func (p *memPanel) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	p.buf[int(y)*int(p.w)+int(x)] = c
}

func (p *memPanel) Display() error { return nil }

// consolePanel implements the panel power controls by logging them.
type consolePanel struct{}

func (consolePanel) Reinit() { println("[panel] reinit") }

func (consolePanel) Backlight(on bool) {
	if on {
		println("[panel] backlight on")
	} else {
		println("[panel] backlight off")
	}
}

func (consolePanel) SetRotation(o types.Orientation) {
	println("[panel] rotation", o.String())
}
