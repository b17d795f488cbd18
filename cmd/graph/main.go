// Package main renders daily profiles as PNG charts.
package main

import (
	"flag"
	"fmt"
	"os"

	"energy-value-lab/internal/aggregate"
	"energy-value-lab/internal/domain"
	"energy-value-lab/internal/graph"
	"energy-value-lab/internal/ingest"
	"energy-value-lab/internal/join"
	"energy-value-lab/internal/logging"
	"energy-value-lab/internal/value"
)

func main() {
	kind := flag.String("kind", "", "Chart kind: 'price', 'gen' or 'value'")
	pricePath := flag.String("prices", "", "Canonical price CSV (price and value charts)")
	genPath := flag.String("gen", "", "Canonical generation CSV (gen and value charts)")
	out := flag.String("out", "", "Output PNG path")
	mergeName := flag.String("merge", "", "Category merge to apply ('solar-battery')")
	title := flag.String("title", "", "Chart title (defaults per kind)")
	flag.Parse()

	if *kind == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: graph -kind price|gen|value -out <chart.png> [-prices <prices.csv>] [-gen <gen.csv>] [-merge solar-battery]")
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

	var err error
	switch *kind {
	case "price":
		err = graphPrice(*pricePath, *out, defaultTitle(*title, "Daily average price"))
	case "gen":
		t := "Daily average generation by source"
		if merge != nil {
			t = "Daily average Solar + Battery"
		}
		err = graphGen(*genPath, *out, merge, defaultTitle(*title, t))
	case "value":
		t := "Daily average price/MWh"
		if merge != nil {
			t = "Solar + Battery price/MWh"
		}
		err = graphValue(*pricePath, *genPath, *out, merge, defaultTitle(*title, t))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown kind %q\n", *kind)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering %s chart: %v\n", *kind, err)
		os.Exit(1)
	}
	fmt.Printf("Chart written to %s\n", *out)
}

func defaultTitle(given, fallback string) string {
	if given != "" {
		return given
	}
	return fallback
}

func graphPrice(in, out, title string) error {
	if in == "" {
		return fmt.Errorf("-prices is required")
	}
	recs, err := ingest.ReadAllPrices(in)
	if err != nil {
		return err
	}
	profile, err := aggregate.PriceProfileOf(recs)
	if err != nil {
		return err
	}
	return graph.Price(out, profile, title)
}

func graphGen(in, out string, merge *domain.CategoryMerge, title string) error {
	if in == "" {
		return fmt.Errorf("-gen is required")
	}
	recs, err := ingest.ReadAllGen(in)
	if err != nil {
		return err
	}
	profile, err := aggregate.GenProfileOf(recs, merge)
	if err != nil {
		return err
	}
	return graph.Gen(out, profile, title)
}

func graphValue(pricePath, genPath, out string, merge *domain.CategoryMerge, title string) error {
	if pricePath == "" || genPath == "" {
		return fmt.Errorf("-prices and -gen are required")
	}
	log, err := logging.New("info", "console")
	if err != nil {
		return err
	}

	prices, err := ingest.OpenPriceCursor(pricePath)
	if err != nil {
		return err
	}
	defer prices.Close()
	gens, err := ingest.OpenGenCursor(genPath)
	if err != nil {
		return err
	}
	defer gens.Close()

	it := join.New(prices, gens).WithLogger(log)
	profile := value.Compute(it, merge)
	if err := it.Err(); err != nil {
		return err
	}
	return graph.Value(out, profile, title)
}
