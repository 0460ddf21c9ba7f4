package screens

import (
	"time"

	"uicode-go/services/ui"
)

// clockScreen is the one full-screen variant: no top bar, just the time.
type clockScreen struct {
	base
	time ui.TimeSource
}

func newClockScreen(t ui.TimeSource) *clockScreen {
	return &clockScreen{
		base: base{name: "clock", period: time.Second, fullScreen: true},
		time: t,
	}
}

func (s *clockScreen) Render(sf ui.Surface) {
	cols, rows := sf.Size()
	w := int(cols)
	mid := rows / 2
	if s.time == nil || !s.time.Synced() {
		_ = sf.SetLine(mid, center("time not synced", w))
		return
	}
	now := s.time.Now()
	_ = sf.SetLineInverse(mid-1, center(now.Format("15:04:05"), w))
	_ = sf.SetLine(mid+1, center(now.Format("Mon 2 Jan 2006"), w))
}

// center pads s on both sides to exactly w characters.
func center(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	left := (w - len(s)) / 2
	out := make([]byte, w)
	for i := range out {
		out[i] = ' '
	}
	copy(out[left:], s)
	return string(out)
}
