// Package aggregate reduces timestamped records to per-bucket daily means.
//
// Accumulation is a single forward pass: each record lands in one of the 288
// five-minute buckets, a per-bucket sum and count advance, and finalization
// divides. Per-bucket accumulation is associative and commutative, so partial
// accumulators from independent inputs may be combined with Combine before
// finalizing.
package aggregate

import (
	"fmt"

	"energy-value-lab/internal/bucket"
	"energy-value-lab/internal/domain"
)

// Uniformity tolerances: the largest allowed difference between any bucket's
// sample count and bucket 0's. Assumes every bucket should receive roughly one
// sample per day of input.
const (
	PriceTolerance = 8
	GenTolerance   = 12
)

// NonUniformError reports a bucket whose sample count diverges from bucket 0's
// beyond the tolerance. It aborts finalization before any mean is computed.
type NonUniformError struct {
	Bucket    int
	Reference int // bucket 0's count
	Count     int
	Tolerance int
}

func (e *NonUniformError) Error() string {
	return fmt.Sprintf("non-uniform distribution: bucket %d (%s) has %d samples, reference bucket has %d, tolerance %d",
		e.Bucket, bucket.Label(e.Bucket), e.Count, e.Reference, e.Tolerance)
}

// checkUniformity compares every bucket's count against bucket 0's.
// This is a heuristic sanity check, not a correctness guarantee: it flags
// gross under- or over-sampling of any single time of day.
func checkUniformity(counts *[bucket.Count]int, tolerance int) error {
	ref := counts[0]
	for i, ct := range counts {
		diff := ct - ref
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			return &NonUniformError{Bucket: i, Reference: ref, Count: ct, Tolerance: tolerance}
		}
	}
	return nil
}

// ScalarAccumulator builds a per-bucket mean price profile.
// One accumulator owns its state for the duration of a single pass; it is not
// safe for concurrent use.
type ScalarAccumulator struct {
	sums      [bucket.Count]float64
	counts    [bucket.Count]int
	tolerance int
}

// NewScalarAccumulator creates an accumulator with the given uniformity
// tolerance (PriceTolerance for price data).
func NewScalarAccumulator(tolerance int) *ScalarAccumulator {
	return &ScalarAccumulator{tolerance: tolerance}
}

// Add folds one sample into its bucket.
func (a *ScalarAccumulator) Add(hour, minute int, v float64) {
	idx := bucket.ToBucket(hour, minute)
	a.sums[idx] += v
	a.counts[idx]++
}

// AddRecord folds one price record into its bucket.
func (a *ScalarAccumulator) AddRecord(rec *domain.PriceRecord) {
	a.Add(rec.Hour, rec.Minute, rec.LMPAvg)
}

// Combine adds another accumulator's sums and counts into this one.
func (a *ScalarAccumulator) Combine(other *ScalarAccumulator) {
	for i := range a.sums {
		a.sums[i] += other.sums[i]
		a.counts[i] += other.counts[i]
	}
}

// Finalize runs the uniformity check and divides sums by counts.
// Division is unguarded: a bucket that received no samples yields NaN in the
// profile. The uniformity check rejects such inputs first whenever bucket 0
// holds more than tolerance samples, which is the normal multi-day case.
func (a *ScalarAccumulator) Finalize() (*domain.PriceProfile, error) {
	if err := checkUniformity(&a.counts, a.tolerance); err != nil {
		return nil, err
	}
	var p domain.PriceProfile
	for i := range p {
		p[i] = a.sums[i] / float64(a.counts[i])
	}
	return &p, nil
}

// VectorAccumulator builds a per-bucket mean generation profile. The source
// vector is summed and divided element-wise as a unit; the uniformity check
// operates on the scalar per-bucket record count, not per source.
type VectorAccumulator struct {
	sums      [bucket.Count][domain.NumSources]float64
	counts    [bucket.Count]int
	tolerance int
	merge     *domain.CategoryMerge
}

// NewVectorAccumulator creates an accumulator with the given uniformity
// tolerance (GenTolerance for generation data). A non-nil merge is applied to
// each record's source vector before accumulation.
func NewVectorAccumulator(tolerance int, merge *domain.CategoryMerge) *VectorAccumulator {
	return &VectorAccumulator{tolerance: tolerance, merge: merge}
}

// AddRecord folds one generation record into its bucket. The record itself is
// not mutated; the merge transform runs on a copy of the source vector.
func (a *VectorAccumulator) AddRecord(rec *domain.GenRecord) {
	src := rec.Sources
	if a.merge != nil {
		a.merge.ApplyVector(&src)
	}
	idx := bucket.ToBucket(rec.Hour, rec.Minute)
	for s := range src {
		a.sums[idx][s] += src[s]
	}
	a.counts[idx]++
}

// Combine adds another accumulator's sums and counts into this one.
func (a *VectorAccumulator) Combine(other *VectorAccumulator) {
	for i := range a.sums {
		for s := range a.sums[i] {
			a.sums[i][s] += other.sums[i][s]
		}
		a.counts[i] += other.counts[i]
	}
}

// Finalize runs the uniformity check and divides sums by counts.
// Empty-bucket semantics match ScalarAccumulator.Finalize: NaN, unguarded.
func (a *VectorAccumulator) Finalize() (*domain.GenProfile, error) {
	if err := checkUniformity(&a.counts, a.tolerance); err != nil {
		return nil, err
	}
	var p domain.GenProfile
	for i := range p {
		ct := float64(a.counts[i])
		for s := range p[i] {
			p[i][s] = a.sums[i][s] / ct
		}
	}
	return &p, nil
}

// PriceProfileOf reduces a complete price series to its daily profile.
func PriceProfileOf(recs []domain.PriceRecord) (*domain.PriceProfile, error) {
	acc := NewScalarAccumulator(PriceTolerance)
	for i := range recs {
		acc.AddRecord(&recs[i])
	}
	return acc.Finalize()
}

// GenProfileOf reduces a complete generation series to its daily profile,
// applying merge (if non-nil) per record before bucketing.
func GenProfileOf(recs []domain.GenRecord, merge *domain.CategoryMerge) (*domain.GenProfile, error) {
	acc := NewVectorAccumulator(GenTolerance, merge)
	for i := range recs {
		acc.AddRecord(&recs[i])
	}
	return acc.Finalize()
}
