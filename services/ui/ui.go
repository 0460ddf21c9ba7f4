// Package ui is the display manager: it owns the screen state machine, the
// gesture pipeline, battery supervision and the backlight. It runs as a
// single sched task; the gesture interrupt only latches a flag and forces a
// tick, everything else happens here.
package ui

import (
	"errors"
	"strconv"
	"time"

	"uicode-go/bus"
	"uicode-go/types"
)

const deviceName = "AIRGUARD"

const (
	// debounceInterval drops gesture bursts: one processed event per second.
	debounceInterval = time.Second
	// wakeGrace swallows the trailing flick that often follows a dismiss.
	wakeGrace = 500 * time.Millisecond
	// transitionPause keeps the swipe/rotate cue visible before the switch.
	transitionPause = 250 * time.Millisecond
	// renderSlack absorbs scheduler jitter so a tick arriving a hair early
	// still renders.
	renderSlack = 50 * time.Millisecond
	// displaySettle is the delay between panel re-init and backlight on.
	displaySettle = 10 * time.Millisecond

	gestureInitAttempts   = 3
	gestureInitRetryDelay = 2 * time.Second
	restartSettle         = time.Second
	configWait            = 250 * time.Millisecond
)

var (
	topicConfigUI    = bus.T("config", "ui")
	topicPowerStatus = bus.T("power", "status")
)

// Deps carries every collaborator the manager needs. Provider, Surface,
// Display, Gestures and Gauge are mandatory; the rest degrade to built-in
// stand-ins when nil.
type Deps struct {
	Provider Provider
	Surface  Surface
	Display  Display
	Gestures GestureDriver
	Gauge    FuelGauge

	Time     TimeSource
	Signal   SignalSource
	Location LocationSource
	Restart  Restarter
	Tasks    TaskRegistry
	Conn     *bus.Connection
	Log      Logger
}

// Manager implements sched.Task.
type Manager struct {
	prov       Provider
	surface    Surface
	display    Display
	gestures   GestureDriver
	gauge      FuelGauge
	timeSrc    TimeSource
	signal     SignalSource
	location   LocationSource
	restart    Restarter
	tasks      TaskRegistry
	conn       *bus.Connection
	log        Logger
	defaultLog bool

	cfg   types.UIConfig
	power *powerTracker
	bar   *topBar
	event eventLatch

	screen      Screen
	screenID    types.ScreenID
	orientation types.Orientation

	displayOn  bool
	gestureOK  bool
	restarting bool

	lastProcessedMs int64
	lastRenderMs    int64

	start time.Time
	host  Host

	// injectable for tests
	clock func() time.Time
	sleep func(time.Duration)
}

// New validates deps and builds a manager. Attach a scheduler host before
// Setup runs.
func New(d Deps) (*Manager, error) {
	if d.Provider == nil || d.Surface == nil || d.Display == nil ||
		d.Gestures == nil || d.Gauge == nil {
		return nil, errors.New("ui: missing mandatory dependency")
	}
	m := &Manager{
		prov:     d.Provider,
		surface:  d.Surface,
		display:  d.Display,
		gestures: d.Gestures,
		gauge:    d.Gauge,
		timeSrc:  d.Time,
		signal:   d.Signal,
		location: d.Location,
		restart:  d.Restart,
		tasks:    d.Tasks,
		conn:     d.Conn,
		log:      d.Log,
		clock:    time.Now,
		sleep:    time.Sleep,
	}
	if m.log == nil {
		m.log = printLogger{}
		m.defaultLog = true
	}
	if m.timeSrc == nil {
		m.timeSrc = neverSynced{}
	}
	if m.signal == nil {
		m.signal = noSignal{}
	}
	if m.location == nil {
		m.location = noLocation{}
	}
	if m.restart == nil {
		m.restart = logRestart{m.log}
	}
	if m.tasks == nil {
		m.tasks = noTasks{}
	}
	m.start = m.clock()
	return m, nil
}

// Attach binds the scheduler handle. Must happen before Setup.
func (m *Manager) Attach(h Host) { m.host = h }

// Setup implements sched.Task. It loads config, primes the fuel gauge,
// brings up the gesture sensor, installs the interrupt relay and activates
// the start screen.
func (m *Manager) Setup() error {
	if m.host == nil {
		return errors.New("ui: no scheduler host attached")
	}
	m.loadConfig()
	if m.defaultLog {
		m.log = printLogger{debug: m.cfg.DebugLog}
	}

	m.power = newPowerTracker(m.gauge, m.cfg.VoltLow, m.cfg.VoltHigh, m.cfg.AveragingWindow, m.log)
	m.bar = newTopBar(m.timeSrc, m.signal, m.location)
	m.power.setup(m.sleep, m.nowMs())

	m.gestureOK = m.initGesture()

	isrTarget.Store(m)
	m.gestures.Cancel() // drain anything latched before we armed

	scr, err := m.prov.Create(m.cfg.StartScreen)
	if err != nil {
		return err
	}
	m.screen, m.screenID = scr, m.cfg.StartScreen
	m.screen.Activate()
	m.host.SetPeriod(m.screen.RefreshPeriod())

	m.display.SetRotation(m.orientation)
	m.displayOn = true
	m.display.Backlight(true)
	m.event.touch(m.nowMs())

	if !m.screen.FullScreen() {
		m.bar.draw(m.surface, m.power.SoC(), true)
	}
	m.screen.Render(m.surface)
	m.lastRenderMs = m.nowMs()
	if err := m.surface.Flush(); err != nil {
		m.log.Warn("flush failed: " + err.Error())
	}
	m.publishPower(false)
	m.log.Info("up, start screen " + m.screen.Name())
	return nil
}

// Close removes the interrupt relay binding.
func (m *Manager) Close() { isrTarget.CompareAndSwap(m, nil) }

// Service implements sched.Task: one cooperative tick. Battery transitions
// outrank pending user events; rendering always runs last so the frame
// reflects whatever this tick changed.
func (m *Manager) Service() {
	now := m.nowMs()

	// Lazy gesture-sensor recovery: keep the UI usable, retry each tick.
	if !m.gestureOK {
		m.gestureOK = m.gestures.Configure() == nil
		if m.gestureOK {
			m.log.Info("gesture sensor recovered")
		}
	}

	if m.power.sample(now) {
		m.publishPower(m.screenID == types.ScreenLowBatt)
	}

	if m.power.Depleted() {
		if m.screenID != types.ScreenLowBatt {
			m.enterLowBattery()
		}
	} else if m.screenID == types.ScreenLowBatt && m.power.Recovered() {
		if !m.restarting {
			m.restarting = true
			m.log.Crit("battery recharged, restarting")
			m.sleep(restartSettle)
			m.restart.Restart()
		}
		return
	}

	if m.event.isPending() {
		if now-m.lastProcessedMs >= debounceInterval.Milliseconds() {
			m.lastProcessedMs = now
			m.event.clear()
			m.handleEvent(m.readUserEvent())
		} else {
			// Burst suppression: drop it, don't queue it.
			m.event.clear()
			m.gestures.Cancel()
			m.log.Debug("event debounced")
		}
	} else {
		m.checkBacklight(now)
	}

	m.render(now)
}

// ---- event handling ----

func (m *Manager) handleEvent(ev types.Gesture) {
	// Any gesture against a dark panel only wakes it.
	if !m.displayOn {
		m.wakeDisplay()
		return
	}
	if m.screenID == types.ScreenLowBatt && ev != types.GestureForward {
		return
	}
	switch ev {
	case types.GestureNone:
		return
	case types.GestureForward:
		m.dismissDisplay()
		return
	}
	if m.screen.HandleEvent(ev) {
		m.log.Debug("event consumed by " + m.screen.Name())
		return
	}
	switch ev {
	case types.GestureClockwise:
		m.rotate(true)
	case types.GestureCounterClockwise:
		m.rotate(false)
	case types.GestureLeft:
		m.cycle(-1)
	case types.GestureRight:
		m.cycle(+1)
	}
}

func (m *Manager) wakeDisplay() {
	// The controller may have lost state while dark; re-init is cheap.
	m.display.Reinit()
	m.sleep(displaySettle)
	m.display.Backlight(true)
	m.displayOn = true
	m.lastRenderMs = 0
	m.event.touch(m.nowMs()) // restart the idle timer
	m.log.Debug("display on")
}

func (m *Manager) dismissDisplay() {
	m.display.Backlight(false)
	m.displayOn = false
	m.log.Debug("display off")
	// A trailing flick right after the dismiss gesture is noise.
	m.sleep(wakeGrace)
	if m.event.isPending() {
		m.gestures.Cancel()
		m.event.clear()
		m.log.Debug("spurious event discarded")
	}
}

func (m *Manager) rotate(cw bool) {
	m.drawRotateCue()
	m.sleep(transitionPause)

	m.orientation = m.orientation.Toggle()
	m.log.Info("orientation " + m.orientation.String())
	if !cw {
		// Counter-clockwise lands on the setup screen.
		m.display.SetRotation(m.orientation)
		m.transitionTo(types.ScreenSetup)
		return
	}
	// Clockwise keeps the current screen, redrawn in place.
	m.screen.Deactivate()
	m.display.SetRotation(m.orientation)
	m.surface.Clear()
	m.screen.Activate()
	m.host.SetPeriod(m.screen.RefreshPeriod())
	m.lastRenderMs = 0
	if !m.screen.FullScreen() {
		m.bar.draw(m.surface, m.power.SoC(), true)
	}
}

func (m *Manager) cycle(dir int) {
	count := m.prov.Count()
	var next types.ScreenID
	if dir > 0 {
		next = nextContent(m.screenID, count)
	} else {
		next = prevContent(m.screenID, count)
	}
	if next == m.screenID {
		return
	}
	m.drawSwipeCue(dir)
	m.sleep(transitionPause)
	m.transitionTo(next)
}

// transitionTo swaps the live screen. The old instance is deactivated and
// released before the new one is created, so there are never two live
// screens.
func (m *Manager) transitionTo(id types.ScreenID) {
	if m.screen != nil {
		m.screen.Deactivate()
		m.screen = nil
	}
	m.surface.Clear()

	scr, err := m.prov.Create(id)
	if err != nil {
		m.log.Crit("create screen " + strconv.Itoa(int(id)) + ": " + err.Error())
		return
	}
	m.screen, m.screenID = scr, id
	m.screen.Activate()
	m.host.SetPeriod(m.screen.RefreshPeriod())
	m.lastRenderMs = 0
	m.log.Info("screen " + m.screen.Name())
	if !m.screen.FullScreen() {
		m.bar.draw(m.surface, m.power.SoC(), true)
	}
}

// ---- battery ----

func (m *Manager) enterLowBattery() {
	m.log.Crit("battery low, halting sensors")
	if !m.displayOn {
		m.wakeDisplay()
	}
	m.transitionTo(types.ScreenLowBatt)
	m.tasks.DisablePeripherals()
	m.publishPower(true)
}

func (m *Manager) publishPower(low bool) {
	if m.conn == nil {
		return
	}
	m.conn.Publish(m.conn.NewMessage(topicPowerStatus, types.PowerStatus{
		Volt:       m.power.Volt(),
		SoC:        m.power.SoC(),
		LowBattery: low,
		TSms:       m.nowMs(),
	}, true))
}

// ---- backlight ----

func (m *Manager) checkBacklight(now int64) {
	if !m.displayOn {
		return
	}
	timeout := m.cfg.BacklightTimeout
	if m.power.SoC() > socFullHint {
		// Almost certainly on external power; keep the panel up longer.
		timeout *= 2
	}
	if now-m.event.lastMs() > timeout.Milliseconds() {
		m.display.Backlight(false)
		m.displayOn = false
		m.log.Debug("backlight timeout")
	}
}

// ---- rendering ----

func (m *Manager) render(now int64) {
	if m.screen == nil {
		return
	}
	if !m.displayOn && !m.screen.RefreshWhileOff() {
		return
	}
	if now-m.lastRenderMs < m.screen.RefreshPeriod().Milliseconds()-renderSlack.Milliseconds() {
		return
	}
	m.lastRenderMs = now
	if !m.screen.FullScreen() {
		m.bar.draw(m.surface, m.power.SoC(), false)
	}
	m.screen.Render(m.surface)
	if err := m.surface.Flush(); err != nil {
		m.log.Warn("flush failed: " + err.Error())
	}
}

// drawSwipeCue paints a block on the swipe edge as transition feedback.
func (m *Manager) drawSwipeCue(dir int) {
	cols, rows := m.surface.Size()
	w, h := cols*fontW, rows*fontH
	if dir > 0 {
		m.surface.FillRect(w-8, h/2-8, 6, 16, colorOK)
	} else {
		m.surface.FillRect(2, h/2-8, 6, 16, colorOK)
	}
	_ = m.surface.Flush()
}

func (m *Manager) drawRotateCue() {
	cols, rows := m.surface.Size()
	w, h := cols*fontW, rows*fontH
	m.surface.FillRect(w/2-8, h/2-8, 16, 16, colorOK)
	_ = m.surface.Flush()
}

// ---- setup helpers ----

// loadConfig waits briefly for the retained UI config; absent or invalid
// config falls back to defaults.
func (m *Manager) loadConfig() {
	m.cfg = types.DefaultUIConfig()
	if m.conn == nil {
		return
	}
	sub := m.conn.Subscribe(topicConfigUI)
	defer m.conn.Unsubscribe(sub)
	select {
	case msg := <-sub.Channel():
		cfg, err := types.ParseUIConfig(msg.Payload)
		if err != nil {
			m.log.Warn("config invalid, using defaults: " + err.Error())
			return
		}
		m.cfg = cfg
	case <-time.After(configWait):
		m.log.Warn("no config received, using defaults")
	}
}

// initGesture attempts a bounded bring-up. On failure the UI stays usable
// and Service keeps retrying one attempt per tick.
func (m *Manager) initGesture() bool {
	for i := 0; i < gestureInitAttempts; i++ {
		err := m.gestures.Configure()
		if err == nil {
			m.log.Info("gesture sensor up")
			return true
		}
		m.log.Warn("gesture init: " + err.Error())
		m.sleep(gestureInitRetryDelay)
	}
	return false
}

func (m *Manager) nowMs() int64 { return m.clock().UnixMilli() }

// ---- introspection (debug console surface) ----

// CurrentScreenName returns the live screen's name.
func (m *Manager) CurrentScreenName() string {
	if m.screen == nil {
		return "none"
	}
	return m.screen.Name()
}

// Orientation returns the current panel orientation.
func (m *Manager) Orientation() types.Orientation { return m.orientation }

// DisplayOn reports whether the backlight is on.
func (m *Manager) DisplayOn() bool { return m.displayOn }

// SetCommsActive toggles the top bar transfer indicator.
func (m *Manager) SetCommsActive(on bool) {
	if m.bar != nil {
		m.bar.SetCommsActive(on)
	}
}

// BatteryStats returns a printable battery snapshot.
func (m *Manager) BatteryStats() string {
	if m.power == nil {
		return "power tracker not up"
	}
	s := strconv.FormatFloat(float64(m.power.Volt()), 'f', 2, 32) + "V " +
		strconv.FormatFloat(float64(m.power.SoC()), 'f', 0, 32) + "%"
	if n, err := m.power.NativeSoC(); err == nil {
		s += " (gauge " + strconv.FormatFloat(float64(n), 'f', 0, 32) + "%)"
	}
	return s
}

// Uptime returns time since the manager was built, as d/h/m.
func (m *Manager) Uptime() string {
	d := m.clock().Sub(m.start)
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	mins := int(d/time.Minute) % 60
	return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
}

// ---- nil-dependency stand-ins ----

type neverSynced struct{}

func (neverSynced) Now() time.Time { return time.Now() }
func (neverSynced) Synced() bool   { return false }

type noSignal struct{}

func (noSignal) RSSI() int { return rssiDisconnected }

type noLocation struct{}

func (noLocation) Locality() (string, bool) { return "", false }

type logRestart struct{ log Logger }

func (r logRestart) Restart() { r.log.Crit("restart requested, no restarter wired") }

type noTasks struct{}

func (noTasks) DisablePeripherals() {}
