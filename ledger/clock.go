// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"sync/atomic"
	"time"
)

// Clock supplies the logical time (block height) used by every start, end
// and deadline comparison. Implementations must never go backwards.
type Clock interface {
	Height() uint64
}

// ManualClock is advanced explicitly by an external height source.
type ManualClock struct {
	height atomic.Uint64
}

func NewManualClock(start uint64) *ManualClock {
	c := &ManualClock{}
	c.height.Store(start)
	return c
}

func (c *ManualClock) Height() uint64 {
	return c.height.Load()
}

// Advance moves the clock to height. Moving to the current height is a no-op.
// Heights above math.MaxInt64 cannot be stored and are rejected.
func (c *ManualClock) Advance(height uint64) error {
	for {
		cur := c.height.Load()
		if height < cur {
			return ErrClockRegression
		}
		if height > maxStored {
			return ErrClockRange
		}
		if c.height.CompareAndSwap(cur, height) {
			return nil
		}
	}
}

// WallClock reports unix seconds.
type WallClock struct{}

func (WallClock) Height() uint64 {
	return uint64(time.Now().Unix())
}
