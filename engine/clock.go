// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "time"

// Clock is the time oracle read once per transition
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall-clock time
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// UnixClock returns a FixedClock at unix second ts
func UnixClock(ts int64) FixedClock {
	return FixedClock(time.Unix(ts, 0))
}
