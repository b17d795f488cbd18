// Package main computes daily five-minute profiles from canonical CSVs.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"energy-value-lab/internal/aggregate"
	"energy-value-lab/internal/domain"
	"energy-value-lab/internal/ingest"
	"energy-value-lab/internal/observability"
	"energy-value-lab/internal/reporting"
)

func main() {
	kind := flag.String("kind", "", "Profile kind: 'price' or 'gen'")
	in := flag.String("in", "", "Canonical input CSV")
	out := flag.String("out", "", "Output profile CSV")
	mergeName := flag.String("merge", "", "Category merge to apply ('solar-battery'), gen only")
	flag.Parse()

	if *kind == "" || *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: profile -kind price|gen -in <canonical.csv> -out <profile.csv> [-merge solar-battery]")
		os.Exit(1)
	}

	switch *kind {
	case "price":
		if *mergeName != "" {
			fmt.Fprintln(os.Stderr, "Error: -merge only applies to generation profiles")
			os.Exit(1)
		}
		runPrice(*in, *out)
	case "gen":
		merge, err := parseMerge(*mergeName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		runGen(*in, *out, merge)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown kind %q (want 'price' or 'gen')\n", *kind)
		os.Exit(1)
	}
}

func parseMerge(name string) (*domain.CategoryMerge, error) {
	switch name {
	case "":
		return nil, nil
	case "solar-battery":
		m := domain.SolarBatteryMerge()
		return &m, nil
	default:
		return nil, fmt.Errorf("unknown merge %q", name)
	}
}

func runPrice(in, out string) {
	recs, err := ingest.ReadAllPrices(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading prices: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	profile, err := aggregate.PriceProfileOf(recs)
	observability.RecordProfile("price", time.Since(start).Seconds(), err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aggregating prices: %v\n", err)
		os.Exit(1)
	}

	if err := reporting.WritePriceProfileFile(out, profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing profile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Price profile written to %s (%d records)\n", out, len(recs))
}

func runGen(in, out string, merge *domain.CategoryMerge) {
	recs, err := ingest.ReadAllGen(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading generation: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	profile, err := aggregate.GenProfileOf(recs, merge)
	observability.RecordProfile("generation", time.Since(start).Seconds(), err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aggregating generation: %v\n", err)
		os.Exit(1)
	}

	if err := reporting.WriteGenProfileFile(out, profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing profile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generation profile written to %s (%d records)\n", out, len(recs))
}
