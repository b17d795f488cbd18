// Package domain holds the value types shared by the aggregation pipelines.
// All of them are constructed by one pass and consumed by the caller; nothing
// here carries shared mutable state across pipeline runs.
package domain

import "energy-value-lab/internal/bucket"

// TimestampLayout is the local date-time layout used by both canonical series.
// It is fixed-width, so lexicographic comparison of timestamp strings is
// chronological comparison.
const TimestampLayout = "2006-01-02 15:04:05"

// PriceRecord is one canonical locational price sample.
type PriceRecord struct {
	Timestamp string  // local date-time, join key
	Hour      int
	Minute    int
	LMPAvg    float64 // $/MWh, mean across the reported zones
}

// GenRecord is one canonical generation sample: signed MWh per source over a
// five-minute interval. Sources is keyed by the canonical source ordering;
// index 0 is the total.
type GenRecord struct {
	Timestamp string // interval start, join key
	Hour      int
	Minute    int
	Sources   [NumSources]float64
}

// AlignedPair couples a price and a generation record sampled at exactly the
// same timestamp.
type AlignedPair struct {
	Price *PriceRecord
	Gen   *GenRecord
}

// PriceProfile is the canonical daily price curve: one mean $/MWh per
// five-minute bucket, bucket 0 at 00:00.
type PriceProfile [bucket.Count]float64

// GenProfile is the daily generation curve: one mean source vector per bucket.
type GenProfile [bucket.Count][NumSources]float64

// ValueProfile holds, per source category, the quantity-weighted average
// price and the total absolute quantity that produced it.
type ValueProfile struct {
	AvgPrice [NumSources]float64 // $/MWh, 0 when TotalQty is 0
	TotalQty [NumSources]float64 // MWh, sum of absolute interval quantities
}
