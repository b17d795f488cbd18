package ingest

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy-value-lab/internal/domain"
)

const priceCSV = `timestamp,hour,minute,lmp_avg
2024-01-15 00:00:00,0,0,25.5
2024-01-15 00:05:00,0,5,-3.25
`

const genCSV = `timestamp,hour,minute,total,batteries,biogas,biomass,coal,geothermal,imports,large_hydro,natural_gas,nuclear,other,small_hydro,solar,wind
2024-01-15 00:00:00,0,0,100,1,2,3,4,5,6,7,8,9,10,11,12,13
`

func TestPriceCursor_Decode(t *testing.T) {
	cur, err := NewPriceCursor(strings.NewReader(priceCSV))
	require.NoError(t, err)

	rec, err := cur.Next()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 00:00:00", rec.Timestamp)
	assert.Equal(t, 0, rec.Hour)
	assert.Equal(t, 0, rec.Minute)
	assert.Equal(t, 25.5, rec.LMPAvg)

	rec, err = cur.Next()
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Minute)
	assert.Equal(t, -3.25, rec.LMPAvg)

	_, err = cur.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestPriceCursor_BadHeader(t *testing.T) {
	_, err := NewPriceCursor(strings.NewReader("time,hour,minute,lmp_avg\n"))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestPriceCursor_BadTimestamp(t *testing.T) {
	csv := "timestamp,hour,minute,lmp_avg\n15/01/2024 00:00,0,0,25.5\n"
	cur, err := NewPriceCursor(strings.NewReader(csv))
	require.NoError(t, err)

	_, err = cur.Next()
	assert.ErrorIs(t, err, ErrTimestamp)
}

func TestPriceCursor_ClockRange(t *testing.T) {
	csv := "timestamp,hour,minute,lmp_avg\n2024-01-15 00:00:00,24,0,25.5\n"
	cur, err := NewPriceCursor(strings.NewReader(csv))
	require.NoError(t, err)

	_, err = cur.Next()
	assert.ErrorIs(t, err, ErrClockRange)
}

func TestPriceCursor_BadField(t *testing.T) {
	csv := "timestamp,hour,minute,lmp_avg\n2024-01-15 00:00:00,0,0,not-a-number\n"
	cur, err := NewPriceCursor(strings.NewReader(csv))
	require.NoError(t, err)

	_, err = cur.Next()
	assert.ErrorIs(t, err, ErrFieldParse)
}

func TestGenCursor_Decode(t *testing.T) {
	cur, err := NewGenCursor(strings.NewReader(genCSV))
	require.NoError(t, err)

	rec, err := cur.Next()
	require.NoError(t, err)
	assert.Equal(t, 100.0, rec.Sources[domain.SourceTotal])
	assert.Equal(t, 1.0, rec.Sources[domain.SourceBatteries])
	assert.Equal(t, 12.0, rec.Sources[domain.SourceSolar])
	assert.Equal(t, 13.0, rec.Sources[domain.SourceWind])

	_, err = cur.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestGenCursor_BadHeader(t *testing.T) {
	bad := strings.Replace(genCSV, "batteries", "battery", 1)
	_, err := NewGenCursor(strings.NewReader(bad))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestGenCursor_ColumnCountEnforced(t *testing.T) {
	csv := genCSV + "2024-01-15 00:05:00,0,5,100\n"
	cur, err := NewGenCursor(strings.NewReader(csv))
	require.NoError(t, err)

	_, err = cur.Next()
	require.NoError(t, err)
	_, err = cur.Next()
	assert.Error(t, err)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadAllPrices(t *testing.T) {
	recs, err := ReadAllPrices(writeTemp(t, priceCSV))
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestReadAllPrices_AbortsOnBadRow(t *testing.T) {
	bad := priceCSV + "2024-01-15 00:10:00,0,10,oops\n"
	_, err := ReadAllPrices(writeTemp(t, bad))
	assert.ErrorIs(t, err, ErrFieldParse)
}

func TestReadAllGen(t *testing.T) {
	recs, err := ReadAllGen(writeTemp(t, genCSV))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "2024-01-15 00:00:00", recs[0].Timestamp)
}

func TestOpenPriceCursor_MissingFile(t *testing.T) {
	_, err := OpenPriceCursor(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
