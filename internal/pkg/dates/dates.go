package dates

import "time"

// AddDays shifts t by n whole calendar days, preserving the clock time in
// t's location. Around DST transitions this is not the same as adding
// n*24h, which is exactly why campaign triggers must not use Duration math.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
