// Package sensors runs the peripheral sampling task. It is registered as a
// peripheral runner, so the display manager's low-battery path switches it
// off through the scheduler registry.
package sensors

import (
	"time"

	"uicode-go/bus"
	"uicode-go/types"
)

// Sampler is one measurement source.
type Sampler interface {
	Name() string
	Sample() (float32, error)
}

// Service implements sched.Task: every tick it samples each source and
// publishes the value retained on sensors/<name>/value.
type Service struct {
	conn     *bus.Connection
	samplers []Sampler
	clock    func() time.Time
}

func NewService(conn *bus.Connection, samplers ...Sampler) *Service {
	return &Service{conn: conn, samplers: samplers, clock: time.Now}
}

func (s *Service) Setup() error { return nil }

func (s *Service) Service() {
	now := s.clock().UnixMilli()
	for _, sm := range s.samplers {
		v, err := sm.Sample()
		if err != nil {
			println("[sensors]", sm.Name(), "sample failed:", err.Error())
			continue
		}
		s.conn.Publish(s.conn.NewMessage(
			bus.T("sensors", sm.Name(), "value"),
			types.Reading{Value: v, TSms: now},
			true,
		))
	}
}
