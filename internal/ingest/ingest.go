// Package ingest decodes the canonical price and generation CSVs into domain
// records. Decode failures surface immediately on Next; whether a failure
// aborts the run (aggregation) or soft-terminates a stream (join) is the
// consumer's policy, not this package's.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"energy-value-lab/internal/domain"
	"energy-value-lab/internal/observability"
)

// Canonical column layouts, written by internal/convert and read back here.
var (
	PriceHeader = []string{"timestamp", "hour", "minute", "lmp_avg"}
	GenHeader   = []string{
		"timestamp", "hour", "minute",
		"total", "batteries", "biogas", "biomass", "coal", "geothermal",
		"imports", "large_hydro", "natural_gas", "nuclear", "other",
		"small_hydro", "solar", "wind",
	}
)

// Errors returned while decoding canonical rows.
var (
	ErrBadHeader  = errors.New("unexpected canonical CSV header")
	ErrClockRange = errors.New("hour or minute out of range")
	ErrFieldParse = errors.New("field failed to parse")
	ErrTimestamp  = errors.New("timestamp failed to parse")
)

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrBadHeader, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i, got[i], want[i])
		}
	}
	return nil
}

// decodeCommon parses the shared timestamp/hour/minute prefix of both record
// kinds and validates the clock range the bucket indexer relies on.
func decodeCommon(row []string) (ts string, hour, minute int, err error) {
	ts = row[0]
	if _, err = time.Parse(domain.TimestampLayout, ts); err != nil {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrTimestamp, ts)
	}
	hour, err = strconv.Atoi(row[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: hour %q", ErrFieldParse, row[1])
	}
	minute, err = strconv.Atoi(row[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: minute %q", ErrFieldParse, row[2])
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", 0, 0, fmt.Errorf("%w: %02d:%02d", ErrClockRange, hour, minute)
	}
	return ts, hour, minute, nil
}

// PriceCursor streams PriceRecords from a canonical price CSV.
type PriceCursor struct {
	r *csv.Reader
	c io.Closer
}

// NewPriceCursor wraps a reader positioned at the header row.
func NewPriceCursor(r io.Reader) (*PriceCursor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(PriceHeader)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read price header: %w", err)
	}
	if err := checkHeader(header, PriceHeader); err != nil {
		return nil, err
	}
	return &PriceCursor{r: cr}, nil
}

// OpenPriceCursor opens a canonical price CSV file.
func OpenPriceCursor(path string) (*PriceCursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	cur, err := NewPriceCursor(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cur.c = f
	return cur, nil
}

// Next returns the next record, or io.EOF after the last one.
func (c *PriceCursor) Next() (*domain.PriceRecord, error) {
	row, err := c.r.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			observability.RecordDecodeError("price")
		}
		return nil, err
	}
	ts, hour, minute, err := decodeCommon(row)
	if err != nil {
		observability.RecordDecodeError("price")
		return nil, err
	}
	lmp, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		observability.RecordDecodeError("price")
		return nil, fmt.Errorf("%w: lmp_avg %q", ErrFieldParse, row[3])
	}
	observability.RecordRecordDecoded("price")
	return &domain.PriceRecord{Timestamp: ts, Hour: hour, Minute: minute, LMPAvg: lmp}, nil
}

// Close releases the underlying file, if the cursor owns one.
func (c *PriceCursor) Close() error {
	if c.c != nil {
		return c.c.Close()
	}
	return nil
}

// GenCursor streams GenRecords from a canonical generation CSV.
type GenCursor struct {
	r *csv.Reader
	c io.Closer
}

// NewGenCursor wraps a reader positioned at the header row.
func NewGenCursor(r io.Reader) (*GenCursor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(GenHeader)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read generation header: %w", err)
	}
	if err := checkHeader(header, GenHeader); err != nil {
		return nil, err
	}
	return &GenCursor{r: cr}, nil
}

// OpenGenCursor opens a canonical generation CSV file.
func OpenGenCursor(path string) (*GenCursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	cur, err := NewGenCursor(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cur.c = f
	return cur, nil
}

// Next returns the next record, or io.EOF after the last one.
func (c *GenCursor) Next() (*domain.GenRecord, error) {
	row, err := c.r.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			observability.RecordDecodeError("generation")
		}
		return nil, err
	}
	ts, hour, minute, err := decodeCommon(row)
	if err != nil {
		observability.RecordDecodeError("generation")
		return nil, err
	}
	rec := &domain.GenRecord{Timestamp: ts, Hour: hour, Minute: minute}
	for s := 0; s < domain.NumSources; s++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[3+s]), 64)
		if err != nil {
			observability.RecordDecodeError("generation")
			return nil, fmt.Errorf("%w: %s %q", ErrFieldParse, GenHeader[3+s], row[3+s])
		}
		rec.Sources[s] = v
	}
	observability.RecordRecordDecoded("generation")
	return rec, nil
}

// Close releases the underlying file, if the cursor owns one.
func (c *GenCursor) Close() error {
	if c.c != nil {
		return c.c.Close()
	}
	return nil
}

// ReadAllPrices loads a whole canonical price CSV. Any decode error aborts.
func ReadAllPrices(path string) ([]domain.PriceRecord, error) {
	cur, err := OpenPriceCursor(path)
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	var recs []domain.PriceRecord
	for {
		rec, err := cur.Next()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		recs = append(recs, *rec)
	}
}

// ReadAllGen loads a whole canonical generation CSV. Any decode error aborts.
func ReadAllGen(path string) ([]domain.GenRecord, error) {
	cur, err := OpenGenCursor(path)
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	var recs []domain.GenRecord
	for {
		rec, err := cur.Next()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		recs = append(recs, *rec)
	}
}
