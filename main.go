// Host demo: the full UI stack wired against simulated I2C chips and an
// in-memory panel, so the whole thing runs on a workstation. The rp2040
// build lives in cmd/pico-ui.
package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"uicode-go/bus"
	"uicode-go/display/textsurface"
	"uicode-go/drivers/max17043"
	"uicode-go/drivers/paj7620"
	"uicode-go/sched"
	"uicode-go/services/config"
	"uicode-go/services/sensors"
	"uicode-go/services/ui"
	"uicode-go/services/ui/screens"
)

const version = "0.3.0-host"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = context.WithValue(ctx, config.CtxDeviceKey, "handheld")

	b := bus.NewBus(16)
	config.NewService().Start(ctx, b.NewConnection("config"))

	// Simulated hardware.
	i2c := newSimI2C()
	panel := newMemPanel(128, 64)
	surface, err := textsurface.New(panel)
	if err != nil {
		println("[main] text surface:", err.Error())
		os.Exit(1)
	}

	reg := sched.NewRegistry()

	mgr, err := ui.New(ui.Deps{
		Provider: &screens.Factory{
			Conn:    b.NewConnection("screens"),
			Time:    systemTime{},
			Version: version,
		},
		Surface:  surface,
		Display:  &consolePanel{},
		Gestures: ui.PAJ7620Gestures{Dev: paj7620.New(i2c)},
		Gauge:    ui.MAX17043Gauge{Dev: max17043.New(i2c)},
		Time:     systemTime{},
		Signal:   fixedSignal(-72),
		Location: fixedLocation("Lisboa"),
		Restart:  exitRestart{},
		Tasks:    reg,
		Conn:     b.NewConnection("ui"),
	})
	if err != nil {
		println("[main]", err.Error())
		os.Exit(1)
	}

	uiRunner := sched.NewRunner("ui", mgr, time.Second, false)
	mgr.Attach(uiRunner)
	reg.Add(uiRunner)

	sens := sensors.NewService(b.NewConnection("sensors"),
		driftSampler("temperature", 21.0, 0.2),
		driftSampler("humidity", 45.0, 0.5),
		driftSampler("pressure", 1013.0, 0.3),
	)
	reg.Add(sched.NewRunner("sensors", sens, 5*time.Second, true))

	reg.StartAll(ctx)

	// Poke a gesture at the sim sensor every few seconds, interrupt included.
	go func() {
		script := []paj7620.Code{
			paj7620.CodeDown, paj7620.CodeDown, paj7620.CodeUp,
			paj7620.CodeClockwise, paj7620.CodeForward, paj7620.CodeWave,
		}
		i := 0
		tick := time.NewTicker(7 * time.Second)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				i2c.gestures.inject(script[i%len(script)])
				ui.GestureISR()
				i++
			}
		}
	}()

	// Slow discharge so the battery path gets exercised on a long run.
	go func() {
		tick := time.NewTicker(30 * time.Second)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				i2c.gauge.drain(0.01)
			}
		}
	}()

	<-ctx.Done()
	mgr.Close()
	println("[main] bye")
}

// ---- ambient sources ----

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now() }
func (systemTime) Synced() bool   { return true }

type fixedSignal int

func (s fixedSignal) RSSI() int { return int(s) }

type fixedLocation string

func (l fixedLocation) Locality() (string, bool) { return string(l), true }

type exitRestart struct{}

func (exitRestart) Restart() {
	println("[main] restart requested")
	os.Exit(0)
}

// driftSampler wanders around a base value, one step per sample.
func driftSampler(name string, base, step float32) sensors.Sampler {
	return &wanderer{name: name, v: base, step: step}
}

type wanderer struct {
	name string
	v    float32
	step float32
	up   bool
}

func (w *wanderer) Name() string { return w.name }
func (w *wanderer) Sample() (float32, error) {
	if w.up {
		w.v += w.step
	} else {
		w.v -= w.step
	}
	w.up = !w.up
	return w.v, nil
}
