package ui

import (
	"image/color"
	"strings"

	"uicode-go/x/mathx"
)

// Top bar layout. Three text rows plus one pixel band for the gauges;
// screens own everything from BarRows down.
const (
	rowDate     = 0
	rowClock    = 1
	rowLocation = 2
	rowGauges   = 3

	// BarRows is the number of text rows the top bar owns.
	BarRows = 4
)

// rssiDisconnected is the modem's conventional "no link" RSSI marker.
const rssiDisconnected = 31

// fontW/fontH match the 6x8 font the text surface renders with.
const (
	fontW = 6
	fontH = 8
)

var (
	colorOK    = color.RGBA{G: 0xFF, A: 0xFF}
	colorAlert = color.RGBA{R: 0xFF, A: 0xFF}
	colorFrame = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	colorOff   = color.RGBA{A: 0xFF}
)

// topBar caches the last-drawn value of every field and repaints only what
// changed. The panel link is slow; skipped writes are the whole point.
type topBar struct {
	time     TimeSource
	signal   SignalSource
	location LocationSource

	comms bool

	cache struct {
		date     string
		clock    string
		locality string
		dBm      int
		batLevel int
		comms    bool
	}
}

func newTopBar(t TimeSource, s SignalSource, l LocationSource) *topBar {
	tb := &topBar{time: t, signal: s, location: l}
	tb.cache.dBm = -1 << 12
	tb.cache.batLevel = -1
	return tb
}

// SetCommsActive toggles the transfer indicator; it repaints on the next
// draw round.
func (t *topBar) SetCommsActive(on bool) { t.comms = on }

// draw repaints the fields whose values changed since the last round, or
// everything when force is set (fresh screen underneath).
func (t *topBar) draw(s Surface, soc float32, force bool) {
	cols, _ := s.Size()
	w := int(cols)

	date, clock := t.datetime()
	if force || date != t.cache.date {
		t.cache.date = date
		_ = s.SetLine(rowDate, center(date, w))
	}
	if force || clock != t.cache.clock {
		t.cache.clock = clock
		_ = s.SetLineInverse(rowClock, center(clock, w))
	}

	loc := "searching..."
	if l, ok := t.location.Locality(); ok {
		loc = l
	}
	if force || loc != t.cache.locality {
		t.cache.locality = loc
		_ = s.SetLine(rowLocation, center(loc, w))
	}

	t.drawBattery(s, int(soc+0.5), force)
	t.drawSignal(s, t.signal.RSSI(), force)
	t.drawComms(s, force)
}

// datetime returns the date and clock lines. Before the first time sync the
// clock slot shows the device name rather than a bogus epoch date.
func (t *topBar) datetime() (date, clock string) {
	if !t.time.Synced() {
		return "", deviceName
	}
	now := t.time.Now()
	return now.Format("Mon 2 Jan 2006"), now.Format("15:04")
}

func (t *topBar) drawBattery(s Surface, level int, force bool) {
	level = mathx.Clamp(level, 0, 100)
	if !force && level == t.cache.batLevel {
		return
	}
	t.cache.batLevel = level

	const x, w, h = int16(1), int16(18), int16(6)
	y := int16(rowGauges*fontH + 1)
	s.FillRect(x, y, w, 1, colorFrame)
	s.FillRect(x, y+h-1, w, 1, colorFrame)
	s.FillRect(x, y, 1, h, colorFrame)
	s.FillRect(x+w-1, y, 1, h, colorFrame)
	s.FillRect(x+w, y+2, 2, 2, colorFrame) // tip

	s.FillRect(x+1, y+1, w-2, h-2, colorOff)
	fill := int16(level) * (w - 2) / 100
	c := colorOK
	if level < 30 {
		c = colorAlert
	}
	if fill > 0 {
		s.FillRect(x+1, y+1, fill, h-2, c)
	}
}

func (t *topBar) drawSignal(s Surface, dBm int, force bool) {
	if !force && dBm == t.cache.dBm {
		return
	}
	t.cache.dBm = dBm

	cols, _ := s.Size()
	right := cols*fontW - 2
	top := int16(rowGauges * fontH)

	// Bars change shape between levels, wipe the band first.
	s.FillRect(right-5*4, top, 5*4, fontH, colorOff)
	bars := signalBars(dBm)
	for i := int16(0); i < 5; i++ {
		bh := 3 + i
		bx := right - (5-i)*4
		c := colorFrame
		if int(i) < bars {
			c = colorOK
		}
		s.FillRect(bx, top+fontH-bh, 3, bh, c)
	}
	if dBm == rssiDisconnected {
		s.FillRect(right-5*4, top+3, 5*4, 2, colorAlert)
	}
}

func (t *topBar) drawComms(s Surface, force bool) {
	if !force && t.comms == t.cache.comms {
		return
	}
	t.cache.comms = t.comms

	cols, _ := s.Size()
	x := cols*fontW - 2 - 5*4 - 8
	y := int16(rowGauges*fontH + 2)
	c := colorOff
	if t.comms {
		c = colorOK
	}
	s.FillRect(x, y, 4, 4, c)
}

// signalBars maps dBm onto 0..5 bars via the usual percent-quality curve.
func signalBars(dBm int) int {
	var q int
	switch {
	case dBm == rssiDisconnected || dBm <= -100:
		q = 0
	case dBm >= -50:
		q = 100
	default:
		q = 2 * (dBm + 100)
	}
	switch {
	case q <= 0:
		return 0
	case q <= 20:
		return 1
	case q <= 40:
		return 2
	case q <= 60:
		return 3
	case q <= 80:
		return 4
	}
	return 5
}

// center pads s on both sides to exactly w characters so stale glyphs from
// the previous value are overwritten.
func center(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}
