// Package gate bounds how many units of work run at once and settles fan-outs
package gate

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Gate is a counting admission gate
// a permit is held only for the duration of the function passed to Do
type Gate struct {
	sem      *semaphore.Weighted
	size     int
	inFlight atomic.Int64
	peak     atomic.Int64
	admitted atomic.Int64
}

// New returns a gate admitting at most size concurrent holders, minimum 1
func New(size int) *Gate {
	if size < 1 {
		size = 1
	}
	return &Gate{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Do waits for a permit, runs fn, and releases the permit when fn returns or panics
// it fails without running fn only when ctx ends before a permit is granted
func (g *Gate) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)

	n := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	g.admitted.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}

	return fn(ctx)
}

// Size is the configured permit count
func (g *Gate) Size() int { return g.size }

// InFlight is the number of holders right now
func (g *Gate) InFlight() int { return int(g.inFlight.Load()) }

// Peak is the highest InFlight value observed
func (g *Gate) Peak() int { return int(g.peak.Load()) }

// Admitted is the total number of permits granted
func (g *Gate) Admitted() int { return int(g.admitted.Load()) }
