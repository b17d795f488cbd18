package domain

import (
	"errors"
	"fmt"
)

// NumSources is the width of the generation source vector, including the
// synthetic total at index 0.
const NumSources = 14

// Source indices into GenRecord.Sources, in canonical column order.
const (
	SourceTotal = iota
	SourceBatteries
	SourceBiogas
	SourceBiomass
	SourceCoal
	SourceGeothermal
	SourceImports
	SourceLargeHydro
	SourceNaturalGas
	SourceNuclear
	SourceOther
	SourceSmallHydro
	SourceSolar
	SourceWind
)

// SourceNames lists the generation source categories in canonical order.
// The ordering is load-bearing: it matches the raw CAISO column layout and
// every profile and value vector is keyed by it.
var SourceNames = [NumSources]string{
	"Total",
	"Batteries",
	"Biogas",
	"Biomass",
	"Coal",
	"Geothermal",
	"Imports",
	"Large Hydro",
	"Natural Gas",
	"Nuclear",
	"Other",
	"Small Hydro",
	"Solar",
	"Wind",
}

// ErrUnknownSource is returned when a source name is not in the canonical table.
var ErrUnknownSource = errors.New("unknown source category")

// SourceIndex resolves a source name to its canonical index.
func SourceIndex(name string) (int, error) {
	for i, n := range SourceNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSource, name)
}

// MustSourceIndex resolves name and panics unless the resolved index equals
// expected. Transforms that hardcode indices resolve them through this so a
// reordering of the source table fails loudly instead of silently merging the
// wrong categories.
func MustSourceIndex(name string, expected int) int {
	idx, err := SourceIndex(name)
	if err != nil {
		panic(err)
	}
	if idx != expected {
		panic(fmt.Sprintf("source %q resolved to index %d, expected %d", name, idx, expected))
	}
	return idx
}
