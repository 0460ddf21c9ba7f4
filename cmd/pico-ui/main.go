//go:build rp2040

// Handheld build: RP2040 with an SSD1306 panel, PAJ7620 gesture sensor and
// MAX17043 fuel gauge on I2C0. Flash with the pico target.
package main

import (
	"context"
	"machine"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"

	"uicode-go/bus"
	"uicode-go/display/textsurface"
	"uicode-go/drivers/max17043"
	"uicode-go/drivers/paj7620"
	"uicode-go/sched"
	"uicode-go/services/config"
	"uicode-go/services/sensors"
	"uicode-go/services/ui"
	"uicode-go/services/ui/screens"
	"uicode-go/types"
)

const version = "0.3.0"

const (
	pinSDA       = machine.GP0
	pinSCL       = machine.GP1
	pinGestureIN = machine.GP21
	pinBacklight = machine.GP22
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot pico-ui", version)

	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400_000,
		SDA:       pinSDA,
		SCL:       pinSCL,
	})
	if err != nil {
		println("[main] i2c:", err.Error())
		return
	}

	pnl := newPanel(machine.I2C0)
	surface, err := textsurface.New(&pnl.dev)
	if err != nil {
		println("[main] text surface:", err.Error())
		return
	}

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "handheld")
	b := bus.NewBus(16)
	config.NewService().Start(ctx, b.NewConnection("config"))

	reg := sched.NewRegistry()

	mgr, err := ui.New(ui.Deps{
		Provider: &screens.Factory{
			Conn:    b.NewConnection("screens"),
			Time:    rtcTime{},
			Version: version,
		},
		Surface:  surface,
		Display:  pnl,
		Gestures: ui.PAJ7620Gestures{Dev: paj7620.New(machine.I2C0)},
		Gauge:    ui.MAX17043Gauge{Dev: max17043.New(machine.I2C0)},
		Time:     rtcTime{},
		Restart:  cpuRestart{},
		Tasks:    reg,
		Conn:     b.NewConnection("ui"),
	})
	if err != nil {
		println("[main]", err.Error())
		return
	}

	uiRunner := sched.NewRunner("ui", mgr, time.Second, false)
	mgr.Attach(uiRunner)
	reg.Add(uiRunner)

	sens := sensors.NewService(b.NewConnection("sensors"), dieTemp{})
	reg.Add(sched.NewRunner("sensors", sens, 5*time.Second, true))

	// Gesture INT line: active low, one edge per recognised gesture.
	pinGestureIN.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	err = pinGestureIN.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		ui.GestureISR()
	})
	if err != nil {
		println("[main] gesture irq:", err.Error())
	}

	reg.StartAll(ctx)
	select {}
}

// panel couples the SSD1306 driver with the backlight GPIO.
type panel struct {
	dev ssd1306.Device
	cfg ssd1306.Config
	bl  machine.Pin
}

func newPanel(i2c *machine.I2C) *panel {
	p := &panel{
		dev: ssd1306.NewI2C(i2c),
		cfg: ssd1306.Config{
			Width:   128,
			Height:  64,
			Address: 0x3C,
		},
		bl: pinBacklight,
	}
	p.bl.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.dev.Configure(p.cfg)
	p.dev.ClearDisplay()
	return p
}

func (p *panel) Reinit() {
	p.dev.Configure(p.cfg)
	p.dev.ClearDisplay()
}

func (p *panel) Backlight(on bool) {
	p.bl.Set(on)
	if err := p.dev.Sleep(!on); err != nil {
		println("[panel] sleep:", err.Error())
	}
}

func (p *panel) SetRotation(o types.Orientation) {
	r := drivers.Rotation0
	if o != 0 {
		r = drivers.Rotation180
	}
	if err := p.dev.SetRotation(r); err != nil {
		println("[panel] rotation:", err.Error())
	}
}

// rtcTime reports unsynced time; this build has no network time source, so
// the top bar shows the device name instead of an epoch date.
type rtcTime struct{}

func (rtcTime) Now() time.Time { return time.Now() }
func (rtcTime) Synced() bool   { return false }

type cpuRestart struct{}

func (cpuRestart) Restart() {
	println("[main] restarting")
	time.Sleep(100 * time.Millisecond)
	machine.CPUReset()
}

// dieTemp samples the RP2040's on-die temperature sensor.
type dieTemp struct{}

func (dieTemp) Name() string { return "temperature" }
func (dieTemp) Sample() (float32, error) {
	return float32(machine.ReadTemperature()) / 1000, nil
}
