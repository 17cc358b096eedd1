package lhe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go-hep.org/x/hep/lhef"
)

// ErrMalformed wraps every failure reported by the LHE decoder.
var ErrMalformed = errors.New("malformed LHE file")

// Reader iterates over the events of an LHE stream.
//
//	r, err := lhe.Open(path)
//	...
//	defer r.Close()
//	for r.Next() {
//		evt := r.Event()
//	}
//	if err := r.Err(); err != nil { ... }
type Reader struct {
	dec *lhef.Decoder
	c   io.Closer
	run Run
	evt *Event
	n   int
	err error
}

// Open opens the LHE file at path and decodes its <init> block.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r.c = f
	return r, nil
}

// NewReader decodes the <init> block from src. The caller keeps ownership
// of src. Event records are checked before they reach the decoder, and a
// root tag without a version is read as version 1.0.
func NewReader(src io.Reader) (*Reader, error) {
	var dec *lhef.Decoder
	err := guard(func() error {
		var err error
		dec, err = lhef.NewDecoder(newRecordReader(src))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &Reader{
		dec: dec,
		run: newRun(&dec.Run),
	}, nil
}

// Next decodes the next event. It returns false at the end of the stream or
// on the first error, which Err then reports.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	var evt *lhef.HEPEUP
	err := guard(func() error {
		var err error
		evt, err = r.dec.Decode()
		return err
	})
	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.err = fmt.Errorf("%w: event %d: %v", ErrMalformed, r.n+1, err)
		}
		r.evt = nil
		return false
	}

	r.n++
	r.evt = newEvent(evt)
	return true
}

// Event returns the event decoded by the last call to Next.
func (r *Reader) Event() *Event { return r.evt }

// Index returns the 1-based number of the current event.
func (r *Reader) Index() int { return r.n }

// Run returns the decoded <init> block.
func (r *Reader) Run() Run { return r.run }

// Err returns the first non-EOF decoding error.
func (r *Reader) Err() error { return r.err }

// Close releases the underlying file, if the reader owns one.
func (r *Reader) Close() error {
	if r.c == nil {
		return nil
	}
	err := r.c.Close()
	r.c = nil
	return err
}

// ReadEvent returns the n-th (1-based) event of the file at path. Decoding
// stops as soon as the event is reached. found is false when the file holds
// fewer than n events or n < 1.
func ReadEvent(ctx context.Context, path string, n int) (evt *Event, found bool, err error) {
	r, err := Open(path)
	if err != nil {
		return nil, false, err
	}
	defer r.Close()

	if n < 1 {
		return nil, false, nil
	}

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		if r.Index() == n {
			return r.Event(), true, nil
		}
	}

	return nil, false, r.Err()
}

// CountEvents decodes the whole file at path and returns its number of
// events.
func CountEvents(ctx context.Context, path string) (int, error) {
	r, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return r.Index(), err
		}
	}
	return r.Index(), r.Err()
}
