// Package bucket maps clock times onto the 288 fixed five-minute-of-day
// intervals used as the aggregation key for daily profiles.
package bucket

import "fmt"

// Width is the bucket size in minutes.
const Width = 5

// Count is the number of buckets in a day.
const Count = 24 * 60 / Width

// ToBucket maps a clock time to its bucket index in [0, Count).
// Valid only for hour in [0,24) and minute in [0,60); callers guarantee the
// range because both values come from validated timestamps upstream.
func ToBucket(hour, minute int) int {
	return (hour*60 + minute) / Width
}

// FromBucket returns the clock time at which bucket idx starts.
// Inverse of ToBucket for every idx in [0, Count).
func FromBucket(idx int) (hour, minute int) {
	return (idx * Width) / 60, (idx * Width) % 60
}

// Label formats the bucket start as HH:MM, for chart axes and reports.
func Label(idx int) string {
	h, m := FromBucket(idx)
	return fmt.Sprintf("%02d:%02d", h, m)
}
