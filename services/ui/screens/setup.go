package screens

import (
	"time"

	"uicode-go/services/ui"
)

// setupScreen is cycle slot 0, reachable only via the counter-clockwise
// rotation gesture.
type setupScreen struct {
	base
	version string
}

func newSetupScreen(version string) *setupScreen {
	if version == "" {
		version = "dev"
	}
	return &setupScreen{
		base:    base{name: "setup", period: 5 * time.Second},
		version: version,
	}
}

func (s *setupScreen) Render(sf ui.Surface) {
	row := int16(ui.BarRows)
	_ = sf.SetLine(row, " Setup")
	_ = sf.SetLine(row+1, " fw "+s.version)
	_ = sf.SetLine(row+2, " rotate cw: flip")
	_ = sf.SetLine(row+3, " swipe: exit")
}
