package ui

import (
	"time"

	"uicode-go/x/mathx"
	"uicode-go/x/movavg"
)

const (
	// sampleInterval is the battery averaging cadence. It is deliberately
	// slower than the UI tick so load transients from the sensors get
	// smoothed out instead of flapping the low-battery state.
	sampleInterval = 10 * time.Second

	// socFullHint: above this charge the cell is almost certainly on
	// external power.
	socFullHint = 95
)

// powerTracker derives smoothed voltage and state of charge from the fuel
// gauge. The displayed charge comes from the voltage curve, not the gauge's
// own coulomb estimate, so it stays meaningful right after a cold boot.
type powerTracker struct {
	gauge FuelGauge
	log   Logger

	voltLow  float32
	voltHigh float32

	avgVolt *movavg.Window
	avgSoC  *movavg.Window

	lastSampleMs int64
}

func newPowerTracker(gauge FuelGauge, voltLow, voltHigh float32, window int, log Logger) *powerTracker {
	return &powerTracker{
		gauge:    gauge,
		log:      log,
		voltLow:  voltLow,
		voltHigh: voltHigh,
		avgVolt:  movavg.New(window),
		avgSoC:   movavg.New(window),
	}
}

// setup primes the gauge and seeds both windows so Volt and SoC are defined
// from the very first tick.
func (p *powerTracker) setup(sleep func(time.Duration), nowMs int64) {
	if err := p.gauge.Reset(); err != nil {
		p.log.Warn("gauge reset failed: " + err.Error())
	}
	if err := p.gauge.QuickStart(); err != nil {
		p.log.Warn("gauge quick start failed: " + err.Error())
	}
	sleep(time.Second) // let the first conversion complete

	v, err := p.gauge.CellVoltage()
	if err != nil {
		p.log.Warn("gauge read failed, seeding nominal voltage")
		v = p.voltHigh
	}
	p.avgVolt.Push(v)
	p.avgSoC.Push(p.socFor(v))
	p.lastSampleMs = nowMs
}

// sample pushes a fresh reading once per sampleInterval. Reports whether a
// round was taken so the caller can publish updated status.
func (p *powerTracker) sample(nowMs int64) bool {
	if nowMs-p.lastSampleMs < sampleInterval.Milliseconds() {
		return false
	}
	p.lastSampleMs = nowMs
	v, err := p.gauge.CellVoltage()
	if err != nil {
		p.log.Warn("gauge read failed: " + err.Error())
		return false
	}
	p.avgVolt.Push(v)
	p.avgSoC.Push(p.socFor(p.Volt()))
	return true
}

// socFor maps a voltage linearly onto 0..100 between the calibrated bounds.
func (p *powerTracker) socFor(volt float32) float32 {
	soc := 100 / (p.voltHigh - p.voltLow) * (volt - p.voltLow)
	return mathx.Clamp(soc, 0, 100)
}

// Volt is the smoothed cell voltage.
func (p *powerTracker) Volt() float32 { return p.avgVolt.Mean() }

// SoC is the smoothed state of charge in percent.
func (p *powerTracker) SoC() float32 { return p.avgSoC.Mean() }

// Depleted reports the low-battery condition on the smoothed voltage.
func (p *powerTracker) Depleted() bool { return p.Volt() <= p.voltLow }

// Recovered reports the smoothed voltage clearing the recharge threshold,
// the midpoint between the calibrated bounds. The gap between Depleted and
// Recovered is the hysteresis that stops restart loops on a sagging cell.
func (p *powerTracker) Recovered() bool { return p.Volt() > (p.voltHigh+p.voltLow)/2 }

// NativeSoC passes through the gauge's own charge estimate (debug surface).
func (p *powerTracker) NativeSoC() (float32, error) {
	s, err := p.gauge.StateOfCharge()
	if err != nil {
		return 0, err
	}
	return mathx.Clamp(s, 0, 100), nil
}
