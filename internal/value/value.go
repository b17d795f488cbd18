// Package value computes the quantity-weighted economic value of each
// generation source from aligned (price, generation) pairs.
package value

import (
	"math"

	"energy-value-lab/internal/domain"
)

// Aggregator accumulates quantity-weighted price sums and quantity totals per
// source. One aggregator owns its state for a single pass; it is not safe for
// concurrent use.
type Aggregator struct {
	valueTotals [domain.NumSources]float64 // sum of |qty| * price
	qtyTotals   [domain.NumSources]float64 // sum of |qty|
	merge       *domain.CategoryMerge
}

// NewAggregator creates an aggregator. A non-nil merge is applied to each
// pair's source vector before weighting, so merged categories are priced as
// one combined source.
func NewAggregator(merge *domain.CategoryMerge) *Aggregator {
	return &Aggregator{merge: merge}
}

// Add folds one aligned pair into the running totals. The weight of each
// source is the absolute quantity delivered in the interval: batteries count
// their charge as well as their discharge. The pair's record is not mutated;
// the merge runs on a copy of the source vector.
func (a *Aggregator) Add(pair domain.AlignedPair) {
	src := pair.Gen.Sources
	if a.merge != nil {
		a.merge.ApplyVector(&src)
	}
	price := pair.Price.LMPAvg
	for s, qty := range src {
		w := math.Abs(qty)
		a.qtyTotals[s] += w
		a.valueTotals[s] += w * price
	}
}

// Finalize divides value totals by quantity totals. A source whose total
// quantity is exactly zero reports average 0 — its value total is necessarily
// zero too, so the division is skipped rather than producing NaN.
func (a *Aggregator) Finalize() *domain.ValueProfile {
	var p domain.ValueProfile
	for s := range a.qtyTotals {
		p.TotalQty[s] = a.qtyTotals[s]
		if a.qtyTotals[s] != 0 {
			p.AvgPrice[s] = a.valueTotals[s] / a.qtyTotals[s]
		}
	}
	return &p
}

// PairSource is any producer of aligned pairs; join.Iterator satisfies it.
type PairSource interface {
	Next() (domain.AlignedPair, bool)
}

// Compute drains a pair source into a fresh aggregator and finalizes.
func Compute(pairs PairSource, merge *domain.CategoryMerge) *domain.ValueProfile {
	agg := NewAggregator(merge)
	for {
		pair, ok := pairs.Next()
		if !ok {
			break
		}
		agg.Add(pair)
	}
	return agg.Finalize()
}
