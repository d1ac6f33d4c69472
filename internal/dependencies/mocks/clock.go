package mocks

import (
	"time"

	"github.com/HannanLK/code-red-server/internal/dependencies/clock"
)

// MockClock is a manually advanced clock for tests. Time only moves when a
// test calls Advance, which makes clock budgets and grace windows exact.
type MockClock struct {
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a clock frozen at t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
