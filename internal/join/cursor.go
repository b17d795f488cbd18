package join

import (
	"io"

	"energy-value-lab/internal/domain"
)

// SlicePriceCursor adapts an in-memory record slice to the cursor interface.
type SlicePriceCursor struct {
	recs []domain.PriceRecord
	pos  int
}

// NewSlicePriceCursor wraps recs without copying; callers must not mutate the
// slice while iterating.
func NewSlicePriceCursor(recs []domain.PriceRecord) *SlicePriceCursor {
	return &SlicePriceCursor{recs: recs}
}

func (c *SlicePriceCursor) Next() (*domain.PriceRecord, error) {
	if c.pos >= len(c.recs) {
		return nil, io.EOF
	}
	rec := &c.recs[c.pos]
	c.pos++
	return rec, nil
}

// SliceGenCursor adapts an in-memory record slice to the cursor interface.
type SliceGenCursor struct {
	recs []domain.GenRecord
	pos  int
}

// NewSliceGenCursor wraps recs without copying; callers must not mutate the
// slice while iterating.
func NewSliceGenCursor(recs []domain.GenRecord) *SliceGenCursor {
	return &SliceGenCursor{recs: recs}
}

func (c *SliceGenCursor) Next() (*domain.GenRecord, error) {
	if c.pos >= len(c.recs) {
		return nil, io.EOF
	}
	rec := &c.recs[c.pos]
	c.pos++
	return rec, nil
}
