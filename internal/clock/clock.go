// Package clock provides the time source used for run and event timestamps.
package clock

import "time"

// NowFunc returns current time; tests replace it to freeze timestamps.
var NowFunc = time.Now

// Now returns NowFunc()
func Now() time.Time { return NowFunc() }

// Since returns elapsed time measured with NowFunc
func Since(t time.Time) time.Duration { return NowFunc().Sub(t) }
