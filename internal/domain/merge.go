package domain

// CategoryMerge folds one source category's quantity into another:
// receiver += donor, donor = 0. It is applied uniformly wherever a generation
// source vector is about to be bucketed or value-weighted, so the merged
// categories are averaged and priced as a single combined source.
type CategoryMerge struct {
	Donor    int
	Receiver int
}

// NewCategoryMerge resolves both categories by name against the canonical
// source table, asserting the expected indices.
func NewCategoryMerge(donor string, expectedDonor int, receiver string, expectedReceiver int) CategoryMerge {
	return CategoryMerge{
		Donor:    MustSourceIndex(donor, expectedDonor),
		Receiver: MustSourceIndex(receiver, expectedReceiver),
	}
}

// SolarBatteryMerge folds solar output into the battery column, modelling the
// hypothetical where solar generation is delivered through storage.
func SolarBatteryMerge() CategoryMerge {
	return NewCategoryMerge("Solar", SourceSolar, "Batteries", SourceBatteries)
}

// ApplyVector mutates a source vector in place.
func (m CategoryMerge) ApplyVector(v *[NumSources]float64) {
	v[m.Receiver] += v[m.Donor]
	v[m.Donor] = 0
}

// Apply mutates the record's source vector in place.
func (m CategoryMerge) Apply(rec *GenRecord) {
	m.ApplyVector(&rec.Sources)
}
