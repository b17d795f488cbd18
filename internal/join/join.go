// Package join aligns the price and generation series on exact timestamp
// equality using a single forward merge pass over two sorted cursors.
package join

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"energy-value-lab/internal/domain"
	"energy-value-lab/internal/observability"
)

// ErrNotAscending is returned through Err when a cursor yields a timestamp
// earlier than the one before it. The merge pass requires both inputs sorted
// ascending; a regression terminates iteration instead of producing a
// silently wrong join.
var ErrNotAscending = errors.New("timestamps are not ascending")

// PriceCursor streams price records in ascending timestamp order.
// Next returns io.EOF after the last record.
type PriceCursor interface {
	Next() (*domain.PriceRecord, error)
}

// GenCursor streams generation records in ascending timestamp order.
type GenCursor interface {
	Next() (*domain.GenRecord, error)
}

// Iterator lazily produces (price, generation) pairs whose timestamps are
// exactly equal, in shared ascending order. Records with no counterpart on
// the other side are skipped silently, as is the unmatched tail once either
// side is exhausted.
//
// A decode error on either cursor ends the iteration rather than failing it:
// a truncated or trailing-garbage file degrades to a shorter join. The error
// is retained and reported through Err so the caller can still surface it.
//
// An Iterator is single-use. Restart by constructing a new one over fresh
// cursors.
type Iterator struct {
	prices PriceCursor
	gens   GenCursor
	log    zerolog.Logger

	price   *domain.PriceRecord // read-ahead
	gen     *domain.GenRecord
	lastPTS string
	lastGTS string
	pairs   int
	done    bool
	err     error
}

// New creates an iterator over the two cursors.
func New(prices PriceCursor, gens GenCursor) *Iterator {
	return &Iterator{prices: prices, gens: gens, log: zerolog.Nop()}
}

// WithLogger sets the logger used to report soft terminations.
func (it *Iterator) WithLogger(log zerolog.Logger) *Iterator {
	it.log = log
	return it
}

// Next returns the next aligned pair. ok is false once either input is
// exhausted or the iteration was terminated by an error; check Err to tell
// the two apart.
func (it *Iterator) Next() (pair domain.AlignedPair, ok bool) {
	if it.done {
		return domain.AlignedPair{}, false
	}
	if it.price == nil && !it.advancePrice() {
		return domain.AlignedPair{}, false
	}
	if it.gen == nil && !it.advanceGen() {
		return domain.AlignedPair{}, false
	}

	for {
		switch {
		case it.price.Timestamp == it.gen.Timestamp:
			pair = domain.AlignedPair{Price: it.price, Gen: it.gen}
			it.price, it.gen = nil, nil
			it.pairs++
			observability.RecordPairAligned()
			return pair, true

		case it.price.Timestamp > it.gen.Timestamp:
			// Generation record has no price counterpart.
			observability.RecordUnmatched("generation")
			if !it.advanceGen() {
				return domain.AlignedPair{}, false
			}

		default:
			// Price record has no generation counterpart.
			observability.RecordUnmatched("price")
			if !it.advancePrice() {
				return domain.AlignedPair{}, false
			}
		}
	}
}

// Err reports the decode or ordering error that ended iteration early, if
// any. nil means the join ran to a clean end of one input.
func (it *Iterator) Err() error {
	return it.err
}

// Pairs reports how many aligned pairs have been emitted so far.
func (it *Iterator) Pairs() int {
	return it.pairs
}

func (it *Iterator) advancePrice() bool {
	rec, err := it.prices.Next()
	if err != nil {
		it.terminate("price", err)
		return false
	}
	// TimestampLayout is fixed-width, so string order is time order.
	if it.lastPTS != "" && rec.Timestamp < it.lastPTS {
		it.terminate("price", fmt.Errorf("%w: %q after %q", ErrNotAscending, rec.Timestamp, it.lastPTS))
		return false
	}
	it.lastPTS = rec.Timestamp
	it.price = rec
	return true
}

func (it *Iterator) advanceGen() bool {
	rec, err := it.gens.Next()
	if err != nil {
		it.terminate("generation", err)
		return false
	}
	if it.lastGTS != "" && rec.Timestamp < it.lastGTS {
		it.terminate("generation", fmt.Errorf("%w: %q after %q", ErrNotAscending, rec.Timestamp, it.lastGTS))
		return false
	}
	it.lastGTS = rec.Timestamp
	it.gen = rec
	return true
}

// terminate ends the iteration. io.EOF is the clean end of an input; anything
// else is retained for Err and logged.
func (it *Iterator) terminate(side string, err error) {
	it.done = true
	if errors.Is(err, io.EOF) {
		return
	}
	it.err = err
	observability.RecordJoinTerminated(side)
	it.log.Warn().Str("side", side).Int("pairs", it.pairs).Err(err).
		Msg("join terminated early")
}
