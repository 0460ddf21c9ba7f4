package sched

import (
	"context"
	"sync"
)

// Registry tracks the device's runners and lets the UI switch off every
// peripheral sensor task in one call when the battery runs out.
type Registry struct {
	mu      sync.Mutex
	runners []*Runner
}

func NewRegistry() *Registry { return &Registry{} }

// Add registers a runner. Duplicate names are not checked; the last addition
// simply wins on Lookup.
func (g *Registry) Add(r *Runner) {
	g.mu.Lock()
	g.runners = append(g.runners, r)
	g.mu.Unlock()
}

// Lookup returns the runner with the given name, or nil.
func (g *Registry) Lookup(name string) *Runner {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := len(g.runners) - 1; i >= 0; i-- {
		if g.runners[i].name == name {
			return g.runners[i]
		}
	}
	return nil
}

// DisablePeripherals disables every runner registered as peripheral.
// Non-peripheral runners (the UI itself) keep servicing.
func (g *Registry) DisablePeripherals() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.runners {
		if r.peripheral {
			r.Disable()
		}
	}
}

// StartAll launches every registered runner.
func (g *Registry) StartAll(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.runners {
		r.Start(ctx)
	}
}
