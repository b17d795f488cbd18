package domain

import "testing"

func TestSolarBatteryMerge(t *testing.T) {
	m := SolarBatteryMerge()
	if m.Donor != SourceSolar {
		t.Errorf("donor = %d, want %d", m.Donor, SourceSolar)
	}
	if m.Receiver != SourceBatteries {
		t.Errorf("receiver = %d, want %d", m.Receiver, SourceBatteries)
	}
}

func TestCategoryMerge_ApplyVector(t *testing.T) {
	m := SolarBatteryMerge()
	var v [NumSources]float64
	v[SourceSolar] = 120.5
	v[SourceBatteries] = -30.5
	v[SourceWind] = 42

	m.ApplyVector(&v)

	if v[SourceSolar] != 0 {
		t.Errorf("donor not zeroed: %f", v[SourceSolar])
	}
	if v[SourceBatteries] != 90 {
		t.Errorf("receiver = %f, want 90", v[SourceBatteries])
	}
	if v[SourceWind] != 42 {
		t.Errorf("unrelated column changed: %f", v[SourceWind])
	}
}

func TestCategoryMerge_Apply(t *testing.T) {
	m := SolarBatteryMerge()
	rec := GenRecord{Timestamp: "2024-01-15 12:00:00", Hour: 12}
	rec.Sources[SourceSolar] = 10
	rec.Sources[SourceBatteries] = 5

	m.Apply(&rec)

	if rec.Sources[SourceSolar] != 0 || rec.Sources[SourceBatteries] != 15 {
		t.Errorf("got solar=%f batteries=%f, want 0 and 15",
			rec.Sources[SourceSolar], rec.Sources[SourceBatteries])
	}
}
