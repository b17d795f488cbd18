package aggregate

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"energy-value-lab/internal/bucket"
	"energy-value-lab/internal/domain"
)

// fullDayPrices yields days complete daily sweeps of price records, one per
// five-minute interval, with LMP equal to the bucket index plus an offset per
// day.
func fullDayPrices(days int) []domain.PriceRecord {
	recs := make([]domain.PriceRecord, 0, days*bucket.Count)
	for d := 0; d < days; d++ {
		for idx := 0; idx < bucket.Count; idx++ {
			h, m := bucket.FromBucket(idx)
			recs = append(recs, domain.PriceRecord{
				Timestamp: fmt.Sprintf("2024-01-%02d %02d:%02d:00", d+1, h, m),
				Hour:      h,
				Minute:    m,
				LMPAvg:    float64(idx + d),
			})
		}
	}
	return recs
}

func TestPriceProfileOf_Means(t *testing.T) {
	// Two full days: bucket idx holds idx and idx+1, mean idx+0.5.
	profile, err := PriceProfileOf(fullDayPrices(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for idx, got := range profile {
		want := float64(idx) + 0.5
		if got != want {
			t.Fatalf("bucket %d mean = %f, want %f", idx, got, want)
		}
	}
}

func TestScalarAccumulator_PerMinuteCoverage(t *testing.T) {
	// One record per minute of a day: every bucket collects exactly 12
	// samples and the uniformity check passes.
	acc := NewScalarAccumulator(PriceTolerance)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			acc.Add(h, m, 7)
		}
	}

	profile, err := acc.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for idx, got := range profile {
		if got != 7 {
			t.Fatalf("bucket %d mean = %f, want 7", idx, got)
		}
	}
}

func TestScalarAccumulator_NonUniform(t *testing.T) {
	acc := NewScalarAccumulator(PriceTolerance)
	// Bucket 0 gets 12 samples, every other bucket none: diff 12 > 8.
	for i := 0; i < 12; i++ {
		acc.Add(0, 0, 50)
	}

	_, err := acc.Finalize()
	var nonUniform *NonUniformError
	if !errors.As(err, &nonUniform) {
		t.Fatalf("expected NonUniformError, got %v", err)
	}
	if nonUniform.Reference != 12 {
		t.Errorf("reference count = %d, want 12", nonUniform.Reference)
	}
}

func TestScalarAccumulator_EmptyBucketWithinTolerance(t *testing.T) {
	acc := NewScalarAccumulator(PriceTolerance)
	// A single day with one missing interval stays within tolerance, and the
	// empty bucket's mean is NaN.
	for idx := 1; idx < bucket.Count; idx++ {
		h, m := bucket.FromBucket(idx)
		acc.Add(h, m, 10)
	}

	profile, err := acc.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(profile[0]) {
		t.Errorf("empty bucket mean = %f, want NaN", profile[0])
	}
	if profile[1] != 10 {
		t.Errorf("bucket 1 mean = %f, want 10", profile[1])
	}
}

func TestScalarAccumulator_Combine(t *testing.T) {
	recs := fullDayPrices(2)
	half := len(recs) / 2

	a := NewScalarAccumulator(PriceTolerance)
	b := NewScalarAccumulator(PriceTolerance)
	for i := range recs[:half] {
		a.AddRecord(&recs[i])
	}
	for i := range recs[half:] {
		b.AddRecord(&recs[half+i])
	}
	a.Combine(b)

	profile, err := a.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := PriceProfileOf(recs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *profile != *want {
		t.Error("combined profile differs from single-pass profile")
	}
}

func fullDayGen(days int) []domain.GenRecord {
	recs := make([]domain.GenRecord, 0, days*bucket.Count)
	for d := 0; d < days; d++ {
		for idx := 0; idx < bucket.Count; idx++ {
			h, m := bucket.FromBucket(idx)
			rec := domain.GenRecord{
				Timestamp: fmt.Sprintf("2024-01-%02d %02d:%02d:00", d+1, h, m),
				Hour:      h,
				Minute:    m,
			}
			rec.Sources[domain.SourceSolar] = 100
			rec.Sources[domain.SourceBatteries] = float64(d) // 0 then 1
			rec.Sources[domain.SourceWind] = float64(idx)
			recs = append(recs, rec)
		}
	}
	return recs
}

func TestGenProfileOf_ElementWiseMeans(t *testing.T) {
	profile, err := GenProfileOf(fullDayGen(2), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for idx := range profile {
		if got := profile[idx][domain.SourceSolar]; got != 100 {
			t.Fatalf("bucket %d solar mean = %f, want 100", idx, got)
		}
		if got := profile[idx][domain.SourceBatteries]; got != 0.5 {
			t.Fatalf("bucket %d battery mean = %f, want 0.5", idx, got)
		}
		if got := profile[idx][domain.SourceWind]; got != float64(idx) {
			t.Fatalf("bucket %d wind mean = %f, want %d", idx, got, idx)
		}
	}
}

func TestGenProfileOf_MergeBeforeBucketing(t *testing.T) {
	merge := domain.SolarBatteryMerge()
	recs := fullDayGen(1)

	profile, err := GenProfileOf(recs, &merge)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for idx := range profile {
		if got := profile[idx][domain.SourceSolar]; got != 0 {
			t.Fatalf("bucket %d solar mean = %f, want 0 after merge", idx, got)
		}
		if got := profile[idx][domain.SourceBatteries]; got != 100 {
			t.Fatalf("bucket %d battery mean = %f, want 100 after merge", idx, got)
		}
	}

	// The input records themselves must be untouched.
	if recs[0].Sources[domain.SourceSolar] != 100 {
		t.Error("merge mutated the input record")
	}
}

func TestVectorAccumulator_NonUniform(t *testing.T) {
	acc := NewVectorAccumulator(GenTolerance, nil)
	rec := domain.GenRecord{Hour: 0, Minute: 0}
	// 13 samples in bucket 0 only: diff 13 > 12.
	for i := 0; i < 13; i++ {
		acc.AddRecord(&rec)
	}

	_, err := acc.Finalize()
	var nonUniform *NonUniformError
	if !errors.As(err, &nonUniform) {
		t.Fatalf("expected NonUniformError, got %v", err)
	}
	if nonUniform.Tolerance != GenTolerance {
		t.Errorf("tolerance = %d, want %d", nonUniform.Tolerance, GenTolerance)
	}
}
