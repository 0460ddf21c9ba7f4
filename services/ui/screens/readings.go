package screens

import (
	"strconv"
	"time"

	"uicode-go/bus"
	"uicode-go/services/ui"
	"uicode-go/types"
)

// readingsSensors is the sensor set this screen follows, two per page.
var readingsSensors = []struct {
	name  string
	label string
	unit  string
}{
	{"temperature", "temp    ", "C"},
	{"humidity", "humidity", "%"},
	{"pressure", "pressure", "hPa"},
}

const sensorsPerPage = 2

// readingsScreen pages through the latest retained sensor values. Vertical
// swipes flip pages and are consumed, so the manager's navigation never
// sees them.
type readingsScreen struct {
	base
	conn *bus.Connection
	subs []*bus.Subscription
	vals map[string]types.Reading
	page int
}

func newReadingsScreen(conn *bus.Connection) *readingsScreen {
	return &readingsScreen{
		base: base{name: "readings", period: 2 * time.Second},
		conn: conn,
		vals: map[string]types.Reading{},
	}
}

func pageCount() int {
	return (len(readingsSensors) + sensorsPerPage - 1) / sensorsPerPage
}

func (s *readingsScreen) Activate() {
	if s.conn == nil {
		return
	}
	for _, sensor := range readingsSensors {
		s.subs = append(s.subs, s.conn.Subscribe(bus.T("sensors", sensor.name, "value")))
	}
}

func (s *readingsScreen) Deactivate() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
}

func (s *readingsScreen) HandleEvent(g types.Gesture) bool {
	switch g {
	case types.GestureUp:
		s.page--
		if s.page < 0 {
			s.page = pageCount() - 1
		}
		return true
	case types.GestureDown:
		s.page = (s.page + 1) % pageCount()
		return true
	}
	return false
}

func (s *readingsScreen) Render(sf ui.Surface) {
	s.drain()
	row := int16(ui.BarRows)
	_ = sf.SetLine(row, " Readings "+strconv.Itoa(s.page+1)+"/"+strconv.Itoa(pageCount()))

	start := s.page * sensorsPerPage
	for i := int16(0); i < sensorsPerPage; i++ {
		line := ""
		if idx := start + int(i); idx < len(readingsSensors) {
			sensor := readingsSensors[idx]
			val := "--"
			if r, ok := s.vals[sensor.name]; ok {
				val = fmtFloat(r.Value, 1) + sensor.unit
			}
			line = " " + sensor.label + " " + val
		}
		_ = sf.SetLine(row+1+i, line)
	}
}

func (s *readingsScreen) drain() {
	for i, sub := range s.subs {
		for drained := false; !drained; {
			select {
			case msg, ok := <-sub.Channel():
				if !ok {
					drained = true
					break
				}
				if r, ok := msg.Payload.(types.Reading); ok {
					s.vals[readingsSensors[i].name] = r
				}
			default:
				drained = true
			}
		}
	}
}
