package screens

import (
	"strconv"
	"time"

	"uicode-go/bus"
	"uicode-go/services/ui"
	"uicode-go/types"
)

// statusScreen shows the battery state published by the display manager. It
// reads its own retained bus topic rather than reaching into the manager.
type statusScreen struct {
	base
	conn *bus.Connection
	sub  *bus.Subscription
	last types.PowerStatus
	have bool
}

func newStatusScreen(conn *bus.Connection) *statusScreen {
	return &statusScreen{
		base: base{name: "status", period: time.Second},
		conn: conn,
	}
}

func (s *statusScreen) Activate() {
	if s.conn != nil {
		s.sub = s.conn.Subscribe(bus.T("power", "status"))
	}
}

func (s *statusScreen) Deactivate() {
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
}

func (s *statusScreen) Render(sf ui.Surface) {
	s.drain()
	row := int16(ui.BarRows)
	_ = sf.SetLine(row, " Power")
	if !s.have {
		_ = sf.SetLine(row+1, " waiting for data")
		return
	}
	_ = sf.SetLine(row+1, " cell    "+fmtFloat(s.last.Volt, 2)+"V")
	_ = sf.SetLine(row+2, " charge  "+fmtFloat(s.last.SoC, 0)+"%")
	state := " state   ok"
	if s.last.LowBattery {
		state = " state   LOW"
	}
	_ = sf.SetLine(row+3, state)
}

func (s *statusScreen) drain() {
	if s.sub == nil {
		return
	}
	for {
		select {
		case msg, ok := <-s.sub.Channel():
			if !ok {
				return
			}
			if st, ok := msg.Payload.(types.PowerStatus); ok {
				s.last, s.have = st, true
			}
		default:
			return
		}
	}
}

func fmtFloat(v float32, prec int) string {
	return strconv.FormatFloat(float64(v), 'f', prec, 32)
}
