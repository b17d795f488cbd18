// Package main converts raw CAISO exports into the canonical CSVs.
package main

import (
	"flag"
	"fmt"
	"os"

	"energy-value-lab/internal/convert"
	"energy-value-lab/internal/logging"
)

func main() {
	dataset := flag.String("dataset", "", "Dataset to convert: 'price' or 'gen'")
	out := flag.String("out", "", "Output path for the canonical CSV")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()
	inputs := flag.Args()

	if *dataset == "" || *out == "" || len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: convert -dataset price|gen -out <canonical.csv> <raw.csv>...")
		os.Exit(1)
	}

	log, err := logging.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch *dataset {
	case "price":
		err = convert.Price(inputs, *out, log)
	case "gen":
		err = convert.Gen(inputs, *out, log)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown dataset %q (want 'price' or 'gen')\n", *dataset)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %s data: %v\n", *dataset, err)
		os.Exit(1)
	}

	fmt.Printf("Converted %d file(s) into %s\n", len(inputs), *out)
}
