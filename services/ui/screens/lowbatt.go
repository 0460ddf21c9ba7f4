package screens

import (
	"time"

	"uicode-go/services/ui"
)

// lowBattScreen is the forced override outside the swipe cycle. The manager
// ignores everything but the dismiss gesture while it is up.
type lowBattScreen struct {
	base
}

func newLowBattScreen() *lowBattScreen {
	return &lowBattScreen{
		base: base{name: "lowbatt", period: 5 * time.Second, fullScreen: true},
	}
}

func (s *lowBattScreen) Render(sf ui.Surface) {
	cols, rows := sf.Size()
	w := int(cols)
	mid := rows / 2
	_ = sf.SetLineInverse(mid-1, center("BATTERY EMPTY", w))
	_ = sf.SetLine(mid+1, center("recharge to restart", w))
}
