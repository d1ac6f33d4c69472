package gameclock

import "time"

// Side identifies one of the two player clocks
type Side int

const (
	SideNone Side = -1
	Side1    Side = 0
	Side2    Side = 1
)

// Other returns the opposing side
func (s Side) Other() Side {
	if s == Side1 {
		return Side2
	}
	return Side1
}

// DefaultTimePerPlayer is the fixed per-game budget for each side. It is set
// at creation and never replenished.
const DefaultTimePerPlayer = 15 * time.Minute

// SyncInterval is the cadence at which callers are expected to tick the clock
// and broadcast snapshots
const SyncInterval = 5 * time.Second

// Snapshot is a read-only view of both counters
type Snapshot struct {
	Side1Ms int64
	Side2Ms int64
	Running Side
	Paused  bool
}

// GameClock is a per-room pair of countdown counters. Counters are integer
// milliseconds; elapsed wall time is subtracted from the running side on every
// Tick or state change, clamped at zero. Reaching zero is terminal for that
// side and is reported exactly once.
//
// GameClock is not safe for concurrent use; the owning room serializes all
// access.
type GameClock struct {
	remaining [2]int64 // milliseconds
	running   Side
	paused    bool
	lastTick  time.Time
	expired   bool
}

// New creates a clock with the given per-side budget, paused with no running
// side until Start.
func New(perPlayer time.Duration) *GameClock {
	ms := perPlayer.Milliseconds()
	return &GameClock{
		remaining: [2]int64{ms, ms},
		running:   SideNone,
		paused:    true,
	}
}

// Start begins the countdown for the given side
func (c *GameClock) Start(side Side, now time.Time) {
	c.running = side
	c.paused = false
	c.lastTick = now
}

// Tick applies elapsed time to the running side. It returns the side whose
// counter just reached zero, or SideNone. A side's expiry is reported only on
// the tick that observes it; later ticks return SideNone.
func (c *GameClock) Tick(now time.Time) Side {
	if c.paused || c.running == SideNone || c.expired {
		return SideNone
	}
	c.applyElapsed(now)
	if c.remaining[c.running] == 0 {
		c.expired = true
		c.paused = true
		return c.running
	}
	return SideNone
}

// Switch finalizes elapsed time for the outgoing side and flips the countdown
// to the other side. It returns the outgoing side's expiry, if the final
// elapsed application reached zero.
func (c *GameClock) Switch(now time.Time) Side {
	if expired := c.Tick(now); expired != SideNone {
		return expired
	}
	if c.running == SideNone {
		return SideNone
	}
	c.running = c.running.Other()
	c.lastTick = now
	return SideNone
}

// Pause freezes both counters after applying elapsed time
func (c *GameClock) Pause(now time.Time) Side {
	if expired := c.Tick(now); expired != SideNone {
		return expired
	}
	c.paused = true
	return SideNone
}

// Resume restarts the running side's countdown
func (c *GameClock) Resume(now time.Time) {
	if c.expired || c.running == SideNone {
		return
	}
	c.paused = false
	c.lastTick = now
}

// Expired reports whether either side has run out of time
func (c *GameClock) Expired() bool {
	return c.expired
}

// Running returns the side currently counting down, or SideNone
func (c *GameClock) Running() Side {
	if c.paused {
		return SideNone
	}
	return c.running
}

// Remaining returns the given side's counter in milliseconds
func (c *GameClock) Remaining(side Side) int64 {
	if side != Side1 && side != Side2 {
		return 0
	}
	return c.remaining[side]
}

// Snapshot returns both counters as they stand at now, without consuming an
// expiry. Callers broadcast this on the sync cadence.
func (c *GameClock) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Side1Ms: c.remaining[Side1],
		Side2Ms: c.remaining[Side2],
		Running: c.running,
		Paused:  c.paused,
	}
	if !c.paused && c.running != SideNone {
		elapsed := now.Sub(c.lastTick).Milliseconds()
		if elapsed > 0 {
			switch c.running {
			case Side1:
				s.Side1Ms = max64(0, s.Side1Ms-elapsed)
			case Side2:
				s.Side2Ms = max64(0, s.Side2Ms-elapsed)
			}
		}
	}
	return s
}

func (c *GameClock) applyElapsed(now time.Time) {
	elapsed := now.Sub(c.lastTick).Milliseconds()
	if elapsed <= 0 {
		return
	}
	c.remaining[c.running] = max64(0, c.remaining[c.running]-elapsed)
	// Advance by the whole milliseconds actually charged. Snapping to now
	// would drop the sub-millisecond remainder on every application and
	// under-charge the running side.
	c.lastTick = c.lastTick.Add(time.Duration(elapsed) * time.Millisecond)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
