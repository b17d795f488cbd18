// Package reporting writes the computed profiles in their persisted text
// forms. Bucket index is the implicit row key of the profile tables; bucket 0
// is 00:00.
package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"energy-value-lab/internal/domain"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WritePriceProfile renders a price profile as a single-column table of 288
// numeric rows in bucket order.
func WritePriceProfile(w io.Writer, p *domain.PriceProfile) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"prices"}); err != nil {
		return err
	}
	for _, v := range p {
		if err := cw.Write([]string{formatFloat(v)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGenProfile renders a generation profile as a table with one named
// column per source category and 288 rows.
func WriteGenProfile(w io.Writer, p *domain.GenProfile) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(domain.SourceNames[:]); err != nil {
		return err
	}
	row := make([]string, domain.NumSources)
	for _, vec := range p {
		for s, v := range vec {
			row[s] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteValueProfile renders a value profile as a three-column table with one
// row per source category, excluding the synthetic total. Average prices are
// formatted to two decimal places.
func WriteValueProfile(w io.Writer, v *domain.ValueProfile) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"source", "avg_price", "net_mwh"}); err != nil {
		return err
	}
	for s := 1; s < domain.NumSources; s++ {
		if err := cw.Write([]string{
			domain.SourceNames[s],
			fmt.Sprintf("%.2f", v.AvgPrice[s]),
			formatFloat(v.TotalQty[s]),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePriceProfileFile writes a price profile to path.
func WritePriceProfileFile(path string, p *domain.PriceProfile) error {
	return writeFile(path, func(w io.Writer) error { return WritePriceProfile(w, p) })
}

// WriteGenProfileFile writes a generation profile to path.
func WriteGenProfileFile(path string, p *domain.GenProfile) error {
	return writeFile(path, func(w io.Writer) error { return WriteGenProfile(w, p) })
}

// WriteValueProfileFile writes a value profile to path.
func WriteValueProfileFile(path string, v *domain.ValueProfile) error {
	return writeFile(path, func(w io.Writer) error { return WriteValueProfile(w, v) })
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
