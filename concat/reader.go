package concat

import (
	"fmt"
	"math"

	multierror "github.com/hashicorp/go-multierror"

	beam "github.com/kkarthikpsgtech/beam"
	errors "github.com/kkarthikpsgtech/beam/errors"
)

type readerState int

const (
	stateNotStarted readerState = iota
	stateReading
	stateExhausted
)

// A Reader presents an ordered list of sub-sources as one logical record stream. Record
// order equals source list order, concatenated in-order within each sub-reader's own
// emission order. At most one sub-reader is open at a time; it is closed on exhaustion and
// on error exit. A single goroutine drives a Reader; there is no parallelism across
// sub-sources, by contract.
type Reader struct {
	registry      *beam.ReaderRegistry
	resolveCoder  CoderResolver
	sources       []*beam.Source
	coder         beam.Coder
	opts          beam.PipelineOptions
	ec            *beam.ExecutionContext
	counters      beam.CounterSink
	operationName string

	state       readerState
	index       int
	current     beam.Reader
	pendingErr  error
	restore     *Position
	fingerprint uint64
}

// CreateReader instantiates a Reader over sources, constructing each sub-reader on demand
// through registry with the shared context forwarded to every sub-reader it builds
func CreateReader(registry *beam.ReaderRegistry, sources []*beam.Source, coder beam.Coder, opts beam.PipelineOptions, ec *beam.ExecutionContext, counters beam.CounterSink, operationName string) *Reader {
	return createReader(registry, nil, sources, coder, opts, ec, counters, operationName)
}

func createReader(registry *beam.ReaderRegistry, resolveCoder CoderResolver, sources []*beam.Source, coder beam.Coder, opts beam.PipelineOptions, ec *beam.ExecutionContext, counters beam.CounterSink, operationName string) *Reader {
	return &Reader{
		registry:      registry,
		resolveCoder:  resolveCoder,
		sources:       sources,
		coder:         coder,
		opts:          opts,
		ec:            ec,
		counters:      counters,
		operationName: operationName,
		state:         stateNotStarted,
		fingerprint:   fingerprintSources(sources),
	}
}

// HasNext returns true iff a record, or a deferred iteration error, is pending. Advancing
// past an exhausted sub-reader constructs the next one, so HasNext may open a sub-source;
// construction failure is reported by the following NextRecord call.
func (r *Reader) HasNext() bool {
	if r.pendingErr != nil {
		return true
	}
	for {
		switch r.state {
		case stateExhausted:
			return false
		case stateNotStarted:
			start := 0
			if r.restore != nil {
				start = r.restore.Index
			}
			if start >= len(r.sources) {
				r.restore = nil
				r.state = stateExhausted
				return false
			}
			if err := r.open(start); err != nil {
				r.pendingErr = err
				r.state = stateExhausted
				return true
			}
		case stateReading:
			if r.current.HasNext() {
				return true
			}
			// the exhausted sub-reader is closed before its successor is constructed
			err := r.current.Close()
			r.current = nil
			if err != nil {
				r.pendingErr = errors.SubReaderIOError{Index: r.index, Cause: err}
				r.state = stateExhausted
				return true
			}
			next := r.index + 1
			if next >= len(r.sources) {
				r.state = stateExhausted
				return false
			}
			if err := r.open(next); err != nil {
				r.pendingErr = err
				r.state = stateExhausted
				return true
			}
		}
	}
}

// NextRecord returns the next record of the concatenated stream. A failure during
// iteration aborts the stream but does not retract records already delivered; the open
// sub-reader is closed before the error surfaces.
func (r *Reader) NextRecord() (interface{}, error) {
	if r.pendingErr != nil {
		err := r.pendingErr
		r.pendingErr = nil
		return nil, err
	}
	if !r.HasNext() {
		return nil, errors.NoMoreRecordsError{}
	}
	if r.pendingErr != nil {
		err := r.pendingErr
		r.pendingErr = nil
		return nil, err
	}
	record, err := r.current.NextRecord()
	if err != nil {
		result := error(errors.SubReaderIOError{Index: r.index, Cause: err})
		if closeErr := r.current.Close(); closeErr != nil {
			result = multierror.Append(result, closeErr)
		}
		r.current = nil
		r.state = stateExhausted
		return nil, result
	}
	if r.counters != nil {
		r.counters.Inc(r.counterName("records-read"), 1)
	}
	return record, nil
}

// open constructs the sub-reader for the source at index i and makes it current
func (r *Reader) open(i int) error {
	source := r.sources[i]
	tag, err := source.Spec.Type()
	if err != nil {
		return err
	}
	factory, err := r.registry.LookupFactory(tag)
	if err != nil {
		return err
	}
	coder := r.coder
	if source.Codec != nil && r.resolveCoder != nil {
		coder, err = r.resolveCoder(*source.Codec)
		if err != nil {
			return errors.SubReaderConstructionError{Index: i, Type: tag, Cause: err}
		}
	}
	sub, err := factory.CreateReader(source.Spec, coder, r.opts, r.ec, r.counters, r.operationName)
	if err != nil {
		return errors.SubReaderConstructionError{Index: i, Type: tag, Cause: err}
	}
	if r.restore != nil && r.restore.Index == i && r.restore.SubPosition != nil {
		restorer, ok := sub.(beam.PositionRestorer)
		if !ok {
			result := error(errors.UnrestorableReaderError{Type: tag})
			if closeErr := sub.Close(); closeErr != nil {
				result = multierror.Append(result, closeErr)
			}
			return result
		}
		if err := restorer.RestorePosition(r.restore.SubPosition); err != nil {
			result := error(errors.SubReaderConstructionError{Index: i, Type: tag, Cause: err})
			if closeErr := sub.Close(); closeErr != nil {
				result = multierror.Append(result, closeErr)
			}
			return result
		}
	}
	r.restore = nil
	r.current = sub
	r.index = i
	r.state = stateReading
	if r.counters != nil {
		r.counters.Inc(r.counterName("subreaders-opened"), 1)
	}
	return nil
}

// Progress returns a Position for the next unread record of the concatenated stream
func (r *Reader) Progress() beam.Position {
	position := &Position{Fingerprint: fingerprintHex(r.fingerprint)}
	switch r.state {
	case stateNotStarted:
		if r.restore != nil {
			position.Index = r.restore.Index
			position.SubPosition = r.restore.SubPosition
		}
	case stateReading:
		position.Index = r.index
		position.SubPosition = r.current.Progress()
	case stateExhausted:
		position.Index = len(r.sources)
	}
	return position
}

// RestoreTo positions this Reader at pos before iteration begins. The sub-reader at the
// restored index is still constructed lazily; if pos carries a sub-position, that
// sub-reader must implement PositionRestorer.
func (r *Reader) RestoreTo(pos *Position) error {
	if r.state != stateNotStarted {
		return fmt.Errorf("position restore must happen before iteration begins")
	}
	if pos.Fingerprint != fingerprintHex(r.fingerprint) {
		return errors.PositionMismatchError{}
	}
	if pos.Index < 0 || pos.Index > len(r.sources) {
		return errors.PositionMismatchError{}
	}
	r.restore = pos
	return nil
}

// RestorePosition implements PositionRestorer, so a concatenation can itself be a
// sub-source of an enclosing concatenation
func (r *Reader) RestorePosition(pos beam.Position) error {
	parsed, err := parsePosition(pos)
	if err != nil {
		return err
	}
	return r.RestoreTo(parsed)
}

// RequestSplit gives up a portion of the remaining unread work. Splits are honored at
// whole-sub-source granularity among the not-yet-started sub-sources; a proposed position
// inside the currently active sub-source is delegated to that sub-reader if it supports
// splitting. The returned Position is the new end of this Reader's work; the residual
// sub-sources beyond it belong to the caller.
func (r *Reader) RequestSplit(req beam.SplitRequest) (beam.Position, error) {
	total := len(r.sources)
	if r.state == stateExhausted || total == 0 {
		return nil, errors.UnsplittableReaderError{Reason: "no remaining work"}
	}
	started := 0
	if r.state == stateReading {
		started = r.index
	}
	if req.Position != nil {
		proposed, err := parsePosition(req.Position)
		if err != nil {
			return nil, err
		}
		if proposed.Fingerprint != "" && proposed.Fingerprint != fingerprintHex(r.fingerprint) {
			return nil, errors.PositionMismatchError{}
		}
		if proposed.SubPosition != nil {
			if r.state != stateReading || proposed.Index != r.index {
				return nil, errors.UnsplittableReaderError{Reason: "proposed position falls within an inactive sub-source"}
			}
			subStop, err := r.current.RequestSplit(beam.SplitRequest{Position: proposed.SubPosition})
			if err != nil {
				return nil, err
			}
			r.truncate(r.index + 1)
			return &Position{Index: r.index, SubPosition: subStop, Fingerprint: fingerprintHex(r.fingerprint)}, nil
		}
		return r.splitAtIndex(proposed.Index, started, total)
	}
	if req.Fraction <= 0 || req.Fraction >= 1 {
		return nil, errors.UnsplittableReaderError{Reason: "split fraction must be in (0, 1)"}
	}
	boundary := int(math.Ceil(req.Fraction * float64(total)))
	return r.splitAtIndex(boundary, started, total)
}

// splitAtIndex keeps sub-sources [0, boundary) and gives the rest away
func (r *Reader) splitAtIndex(boundary, started, total int) (beam.Position, error) {
	if boundary <= started {
		return nil, errors.UnsplittableReaderError{Reason: "split index falls within already-started work"}
	}
	if boundary >= total {
		return nil, errors.UnsplittableReaderError{Reason: "split index leaves no residual work"}
	}
	r.truncate(boundary)
	return &Position{Index: boundary, Fingerprint: fingerprintHex(r.fingerprint)}, nil
}

// truncate shortens the source list; positions issued afterwards fingerprint the new shape
func (r *Reader) truncate(boundary int) {
	r.sources = r.sources[:boundary]
	r.fingerprint = fingerprintSources(r.sources)
}

// Metadata derives the composite metadata of this Reader's remaining sub-sources
func (r *Reader) Metadata() *beam.SourceMetadata {
	return CompositeMetadata(r.sources)
}

// Close tears down the currently open sub-reader, if any. The Reader is exhausted afterwards.
func (r *Reader) Close() error {
	r.pendingErr = nil
	if r.state == stateReading && r.current != nil {
		err := r.current.Close()
		r.current = nil
		r.state = stateExhausted
		return err
	}
	r.state = stateExhausted
	return nil
}

// counterName namespaces a counter under this Reader's operation name
func (r *Reader) counterName(suffix string) string {
	operation := r.operationName
	if operation == "" {
		operation = "read"
	}
	return operation + "." + suffix
}
