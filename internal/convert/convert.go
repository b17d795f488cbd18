// Package convert validates raw CAISO five-minute CSV exports and simplifies
// them into the canonical price and generation files the pipelines consume.
// Multiple quarterly inputs concatenate into one output in argument order.
package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"energy-value-lab/internal/domain"
	"energy-value-lab/internal/ingest"
	"energy-value-lab/internal/observability"
)

// Raw price file layout (caiso_lmp_rt_5min_zones_*.csv).
const (
	rawPricePreambleRows = 3
	rawPriceColumns      = 17
	rawPriceTimestampCol = 1
	rawPriceZoneFirstCol = 5
	rawPriceZones        = 3
)

// Raw generation file layout (caiso_gen_all_5min_*.csv).
const (
	rawGenHeaderRow      = 3 // rows 0..2 are preamble
	rawGenColumns        = 19
	rawGenTimestampCol   = 1 // local interval start
	rawGenSourceFirstCol = 5
)

// genHeaderKeywords must each appear in the corresponding raw header column.
// Guards against CAISO reordering or renaming columns between quarters.
var genHeaderKeywords = [rawGenColumns]string{
	"Timestamp", "Beginning", "Ending", "Date", "Hour",
	"Total", "Batteries", "Biogas", "Biomass", "Coal", "Geothermal",
	"Imports", "Large Hydro", "Natural Gas", "Nuclear", "Other",
	"Small Hydro", "Solar", "Wind",
}

// ErrRowFormat is returned when a raw row does not match the expected layout.
var ErrRowFormat = errors.New("unexpected raw csv row format")

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Price converts raw zone price files into the canonical price CSV.
// The canonical LMP is the arithmetic mean of the three reported zones.
// Any malformed row aborts the conversion; price exports are expected clean.
func Price(inputs []string, output string, log zerolog.Logger) error {
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write(ingest.PriceHeader); err != nil {
		return err
	}

	for _, input := range inputs {
		n, err := convertPriceFile(input, w)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		observability.RecordRowsConverted("price", n)
		log.Info().Str("file", input).Int("rows", n).Msg("converted price file")
	}
	if err := w.Error(); err != nil {
		return err
	}
	return nil
}

func convertPriceFile(input string, w *csv.Writer) (int, error) {
	f, err := os.Open(input)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // raw exports mix preamble widths

	rows := 0
	for line := 0; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		if line < rawPricePreambleRows {
			continue
		}
		if len(row) != rawPriceColumns {
			return rows, fmt.Errorf("%w: line %d has %d columns, want %d",
				ErrRowFormat, line+1, len(row), rawPriceColumns)
		}

		sum := 0.0
		for z := 0; z < rawPriceZones; z++ {
			v, err := strconv.ParseFloat(row[rawPriceZoneFirstCol+z], 64)
			if err != nil {
				return rows, fmt.Errorf("line %d: zone price %q: %w", line+1, row[rawPriceZoneFirstCol+z], err)
			}
			sum += v
		}

		ts := row[rawPriceTimestampCol]
		t, err := time.Parse(domain.TimestampLayout, ts)
		if err != nil {
			return rows, fmt.Errorf("line %d: timestamp %q: %w", line+1, ts, err)
		}

		if err := w.Write([]string{
			ts,
			strconv.Itoa(t.Hour()),
			strconv.Itoa(t.Minute()),
			formatFloat(sum / rawPriceZones),
		}); err != nil {
			return rows, err
		}
		rows++
	}
}

// Gen converts raw generation files into the canonical generation CSV.
// The header row of every input is validated keyword-by-keyword before any
// data row is trusted. Rows that fail to decode are skipped and counted
// rather than aborting; CAISO generation exports routinely carry a few
// malformed lines.
func Gen(inputs []string, output string, log zerolog.Logger) error {
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write(ingest.GenHeader); err != nil {
		return err
	}

	for _, input := range inputs {
		rows, skipped, err := convertGenFile(input, w)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		observability.RecordRowsConverted("generation", rows)
		observability.RecordRowsSkipped("generation", skipped)
		log.Info().Str("file", input).Int("rows", rows).Int("skipped", skipped).
			Msg("converted generation file")
	}
	if err := w.Error(); err != nil {
		return err
	}
	return nil
}

func convertGenFile(input string, w *csv.Writer) (rows, skipped int, err error) {
	f, err := os.Open(input)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	for line := 0; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			if line <= rawGenHeaderRow {
				return rows, skipped, fmt.Errorf("%w: no header row", ErrRowFormat)
			}
			return rows, skipped, nil
		}
		if err != nil {
			// Reader-level errors (bare quotes etc.) count as skipped lines.
			skipped++
			continue
		}
		if line < rawGenHeaderRow {
			continue
		}
		if line == rawGenHeaderRow {
			if err := validateGenHeader(row); err != nil {
				return rows, skipped, err
			}
			continue
		}

		rec, ok := decodeGenRow(row)
		if !ok {
			skipped++
			continue
		}
		if err := w.Write(rec); err != nil {
			return rows, skipped, err
		}
		rows++
	}
}

func validateGenHeader(header []string) error {
	if len(header) != rawGenColumns {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrRowFormat, len(header), rawGenColumns)
	}
	for i, keyword := range genHeaderKeywords {
		if !strings.Contains(header[i], keyword) {
			return fmt.Errorf("%w: column %d %q missing keyword %q", ErrRowFormat, i, header[i], keyword)
		}
	}
	return nil
}

// decodeGenRow turns one raw row into a canonical row, recomputing hour and
// minute from the interval start timestamp for consistency with the price
// conversion. ok is false when the row is undecodable.
func decodeGenRow(row []string) ([]string, bool) {
	if len(row) != rawGenColumns {
		return nil, false
	}

	ts := row[rawGenTimestampCol]
	t, err := time.Parse(domain.TimestampLayout, ts)
	if err != nil {
		return nil, false
	}

	out := make([]string, 0, len(ingest.GenHeader))
	out = append(out, ts, strconv.Itoa(t.Hour()), strconv.Itoa(t.Minute()))
	for s := 0; s < domain.NumSources; s++ {
		v, err := strconv.ParseFloat(row[rawGenSourceFirstCol+s], 64)
		if err != nil {
			return nil, false
		}
		out = append(out, formatFloat(v))
	}
	return out, true
}
