package config

import "time"

// LockDelayMillis is how long a resting piece waits before it locks.
const LockDelayMillis = 500

// Timings holds the configured durations converted to simulation ticks.
type Timings struct {
	LockDelay    int
	DASDelay     int
	AutoRepeat   int
	SoftDropRate int

	// Release is wall-clock time, since key repeat is measured outside
	// the simulation.
	Release time.Duration
}

// MillisToTicks converts a duration to the nearest whole number of ticks,
// never less than one.
func MillisToTicks(ms, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := (ms*tickRate + 500) / 1000
	return max(ticks, 1)
}

// Timings converts the handling settings for the given tick rate.
func (c TetrisConfig) Timings(tickRate int) Timings {
	return Timings{
		LockDelay:    MillisToTicks(LockDelayMillis, tickRate),
		DASDelay:     MillisToTicks(c.Handling.DASMillis, tickRate),
		AutoRepeat:   max(c.Handling.ARRTicks, 1),
		SoftDropRate: max(c.Handling.SoftDropTicks, 1),
		Release:      time.Duration(c.Input.ReleaseMillis) * time.Millisecond,
	}
}
