// Package core is the platform-neutral firmware layer: system time and the timer
// scheduler, digital signals and the display contract, the line command
// registry and debug logging with its event ring.
package core

import "sync/atomic"

// Timer frequency of the RP2040/RP2350 hardware timer
const (
	TimerFreq = 1000000 // 1MHz, one tick per microsecond
)

var (
	systemTicks uint32 // atomic, written by the platform clock
	bootTime    uint32 // Time at boot for uptime calculation
)

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return atomic.LoadUint32(&systemTicks)
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	atomic.StoreUint32(&systemTicks, ticks)
}

// GetUptime returns ticks elapsed since TimerInit
func GetUptime() uint32 {
	return GetTime() - bootTime
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return uint32(uint64(ms) * TimerFreq / 1000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// TimerToMS converts timer ticks to milliseconds
func TimerToMS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000 / TimerFreq)
}

// Elapsed reports whether at least d ticks have passed between since and now.
// Correct across a single counter wrap.
func Elapsed(since, now, d uint32) bool {
	return now-since >= d
}

// TimerInit initializes the system timer
func TimerInit() {
	bootTime = GetTime()
}

// ProcessTimers processes scheduled timers
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}
