// Package main computes the quantity-weighted value of each generation source
// by joining the price and generation series on exact timestamps.
package main

import (
	"flag"
	"fmt"
	"os"

	"energy-value-lab/internal/domain"
	"energy-value-lab/internal/ingest"
	"energy-value-lab/internal/join"
	"energy-value-lab/internal/logging"
	"energy-value-lab/internal/reporting"
	"energy-value-lab/internal/value"
)

func main() {
	pricePath := flag.String("prices", "", "Canonical price CSV")
	genPath := flag.String("gen", "", "Canonical generation CSV")
	out := flag.String("out", "", "Output value CSV")
	mergeName := flag.String("merge", "", "Category merge to apply ('solar-battery')")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	if *pricePath == "" || *genPath == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: value -prices <prices.csv> -gen <gen.csv> -out <values.csv> [-merge solar-battery]")
		os.Exit(1)
	}

	var merge *domain.CategoryMerge
	switch *mergeName {
	case "":
	case "solar-battery":
		m := domain.SolarBatteryMerge()
		merge = &m
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown merge %q\n", *mergeName)
		os.Exit(1)
	}

	log, err := logging.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prices, err := ingest.OpenPriceCursor(*pricePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening prices: %v\n", err)
		os.Exit(1)
	}
	defer prices.Close()
	gens, err := ingest.OpenGenCursor(*genPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening generation: %v\n", err)
		os.Exit(1)
	}
	defer gens.Close()

	it := join.New(prices, gens).WithLogger(log)
	profile := value.Compute(it, merge)
	if err := it.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error joining series: %v\n", err)
		os.Exit(1)
	}

	if err := reporting.WriteValueProfileFile(*out, profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing values: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Value profile written to %s (%d aligned pairs)\n", *out, it.Pairs())
}
