package models

import "time"

const day = 24 * time.Hour

// Threshold is the minimum elapsed time between two automatic syncs.
func (f Frequency) Threshold() time.Duration {
	switch f {
	case FrequencyDaily:
		return day
	case FrequencyWeekly:
		return 7 * day
	case FrequencyMonthly:
		return 30 * day
	default:
		return 0
	}
}

// Next returns the calendar date of the next sync after from.
// Monthly adds one calendar month, so the gap follows month length.
func (f Frequency) Next(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	default:
		return from
	}
}

// CalculateNextSync works on millisecond timestamps in local time.
func CalculateNextSync(f Frequency, fromMillis int64) int64 {
	return f.Next(time.UnixMilli(fromMillis)).UnixMilli()
}

// ShouldSyncNow reports whether at least one frequency threshold has elapsed
// since lastMillis. A zero lastMillis (never synced) is never due.
func ShouldSyncNow(lastMillis int64, f Frequency, nowMillis int64) bool {
	if lastMillis == 0 {
		return false
	}
	threshold := f.Threshold()
	if threshold == 0 {
		return false
	}
	return nowMillis-lastMillis >= threshold.Milliseconds()
}
