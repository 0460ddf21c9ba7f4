package ui

// Logger is the leveled logging sink for the UI service. Implementations
// must not block; on hardware they end up on the USB serial console.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Crit(msg string)
}

// printLogger writes to wherever println goes (USB CDC on hardware, stderr
// on the host). Debug output is dropped unless enabled.
type printLogger struct {
	debug bool
}

func (l printLogger) Debug(msg string) {
	if l.debug {
		println("[ui] debug:", msg)
	}
}
func (l printLogger) Info(msg string) { println("[ui]", msg) }
func (l printLogger) Warn(msg string) { println("[ui] warn:", msg) }
func (l printLogger) Crit(msg string) { println("[ui] CRIT:", msg) }
