// Package memory provides a source type whose records are embedded directly in the source
// spec. Useful for small inline datasets and as the reference implementation of a reader
// which supports both position restoration and dynamic splitting.
package memory

import (
	"bytes"
	"fmt"
	"math"

	beam "github.com/kkarthikpsgtech/beam"
	errors "github.com/kkarthikpsgtech/beam/errors"
)

// SourceTypeTag is the type tag under which the in-memory reader factory registers itself
const SourceTypeTag = "InMemorySource"

// PropertyElements is the key within an in-memory source spec which holds its records
const PropertyElements = "elements"

// CreateReaderFactory returns the ReaderFactory for in-memory sources
func CreateReaderFactory() beam.ReaderFactory {
	return beam.ReaderFactoryFunc(createReader)
}

func createReader(spec beam.SpecObject, coder beam.Coder, opts beam.PipelineOptions, ec *beam.ExecutionContext, counters beam.CounterSink, operationName string) (beam.Reader, error) {
	if coder == nil {
		return nil, fmt.Errorf("in-memory sources require a coder")
	}
	elements, _, err := spec.OptionalList(PropertyElements)
	if err != nil {
		return nil, err
	}
	encoded := make([][]byte, len(elements))
	for i, element := range elements {
		encoded[i] = []byte(element.Raw())
	}
	return &Reader{elements: encoded, coder: coder}, nil
}

// Reader produces decoded records from elements embedded in the source spec
type Reader struct {
	elements [][]byte
	coder    beam.Coder
	index    int64
	closed   bool
}

// HasNext returns true iff an unread element remains
func (r *Reader) HasNext() bool {
	return !r.closed && r.index < int64(len(r.elements))
}

// NextRecord decodes and returns the next element
func (r *Reader) NextRecord() (interface{}, error) {
	if !r.HasNext() {
		return nil, errors.NoMoreRecordsError{}
	}
	record, err := r.coder.Decode(bytes.NewReader(r.elements[r.index]))
	if err != nil {
		return nil, err
	}
	r.index++
	return record, nil
}

// Progress returns the index of the next unread element
func (r *Reader) Progress() beam.Position {
	return r.index
}

// RestorePosition begins iteration at a previously-issued element index. Restoration must
// happen before the first record is read.
func (r *Reader) RestorePosition(pos beam.Position) error {
	index, err := indexFromPosition(pos)
	if err != nil {
		return err
	}
	if r.index != 0 {
		return fmt.Errorf("position restore must happen before iteration begins")
	}
	if index < 0 || index > int64(len(r.elements)) {
		return errors.PositionMismatchError{}
	}
	r.index = index
	return nil
}

// RequestSplit gives up the elements at and beyond the accepted boundary. The boundary
// must fall strictly between the next unread element and the end of the source.
func (r *Reader) RequestSplit(req beam.SplitRequest) (beam.Position, error) {
	total := int64(len(r.elements))
	var boundary int64
	if req.Position != nil {
		index, err := indexFromPosition(req.Position)
		if err != nil {
			return nil, err
		}
		boundary = index
	} else {
		if req.Fraction <= 0 || req.Fraction >= 1 {
			return nil, errors.UnsplittableReaderError{Reason: "split fraction must be in (0, 1)"}
		}
		boundary = int64(math.Ceil(req.Fraction * float64(total)))
	}
	if boundary <= r.index {
		return nil, errors.UnsplittableReaderError{Reason: "split index falls within already-read elements"}
	}
	if boundary >= total {
		return nil, errors.UnsplittableReaderError{Reason: "split index leaves no residual work"}
	}
	r.elements = r.elements[:boundary]
	return boundary, nil
}

// Close releases this Reader. In-memory readers hold no external resources.
func (r *Reader) Close() error {
	r.closed = true
	return nil
}

// indexFromPosition coerces the shapes an element index may arrive in, including the
// float64 it becomes after a JSON round-trip inside a composite position token
func indexFromPosition(pos beam.Position) (int64, error) {
	switch v := pos.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unsupported position token type %T", pos)
	}
}

func init() {
	beam.MustRegisterReaderFactory(SourceTypeTag, CreateReaderFactory())
}
