// Package text provides a source type which reads newline-delimited records from a file on
// disk, optionally through an lz4 decompression layer. Each line is decoded through the
// supplied Coder; without one, lines are delivered as raw strings.
package text

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	lz4 "github.com/pierrec/lz4"

	beam "github.com/kkarthikpsgtech/beam"
	"github.com/kkarthikpsgtech/beam/coder"
	errors "github.com/kkarthikpsgtech/beam/errors"
)

// SourceTypeTag is the type tag under which the text reader factory registers itself
const SourceTypeTag = "TextSource"

// Keys within a text source spec
const (
	// PropertyFilename is the key holding the path of the file to read
	PropertyFilename = "filename"
	// PropertyCompression is the key holding the transport compression of the file
	PropertyCompression = "compression"
	// PropertyMaxLineBytes is the key holding the maximum line length in bytes
	PropertyMaxLineBytes = "max_line_bytes"
)

// CompressionLZ4 is the supported value of the compression property
const CompressionLZ4 = "lz4"

// CreateReaderFactory returns the ReaderFactory for text file sources
func CreateReaderFactory() beam.ReaderFactory {
	return beam.ReaderFactoryFunc(createReader)
}

func createReader(spec beam.SpecObject, recordCoder beam.Coder, opts beam.PipelineOptions, ec *beam.ExecutionContext, counters beam.CounterSink, operationName string) (beam.Reader, error) {
	filename, err := spec.OptionalString(PropertyFilename)
	if err != nil {
		return nil, err
	}
	if filename == nil {
		return nil, errors.MalformedSpecError{Field: PropertyFilename}
	}
	compression, err := spec.OptionalString(PropertyCompression)
	if err != nil {
		return nil, err
	}
	maxLineBytes, err := spec.OptionalSize(PropertyMaxLineBytes)
	if err != nil {
		return nil, err
	}
	if recordCoder == nil {
		// text lines self-describe as strings
		recordCoder = coder.CreateStringCoder()
	}

	f, err := os.Open(*filename)
	if err != nil {
		return nil, err
	}
	var stream io.Reader = f
	if compression != nil {
		switch *compression {
		case CompressionLZ4:
			stream = lz4.NewReader(f)
		default:
			f.Close()
			return nil, fmt.Errorf("unsupported compression %q for file %s", *compression, *filename)
		}
	}
	scanner := bufio.NewScanner(stream)
	if maxLineBytes != nil {
		scanner.Buffer(make([]byte, 0, 4096), int(*maxLineBytes))
	}
	return &Reader{file: f, scanner: scanner, coder: recordCoder}, nil
}

// Reader produces one decoded record per line of a text file
type Reader struct {
	file    *os.File
	scanner *bufio.Scanner
	coder   beam.Coder
	line    int64
	pending []byte
	peeked  bool
	err     error
	closed  bool
}

// HasNext returns true iff another line, or a deferred scan error, is pending
func (r *Reader) HasNext() bool {
	if r.closed {
		return false
	}
	if r.err != nil || r.peeked {
		return true
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.err = err
			return true
		}
		return false
	}
	r.pending = append(r.pending[:0], r.scanner.Bytes()...)
	r.peeked = true
	return true
}

// NextRecord decodes and returns the next line
func (r *Reader) NextRecord() (interface{}, error) {
	if !r.HasNext() {
		return nil, errors.NoMoreRecordsError{}
	}
	if r.err != nil {
		err := r.err
		r.err = nil
		r.closed = true
		return nil, err
	}
	r.peeked = false
	r.line++
	record, err := r.coder.Decode(bytes.NewReader(r.pending))
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Progress returns the index of the next unread line
func (r *Reader) Progress() beam.Position {
	return r.line
}

// RestorePosition begins iteration at a previously-issued line index by skipping the lines
// before it. Restoration must happen before the first record is read.
func (r *Reader) RestorePosition(pos beam.Position) error {
	index, err := lineFromPosition(pos)
	if err != nil {
		return err
	}
	if r.line != 0 || r.peeked {
		return fmt.Errorf("position restore must happen before iteration begins")
	}
	if index < 0 {
		return errors.PositionMismatchError{}
	}
	for skipped := int64(0); skipped < index; skipped++ {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return err
			}
			return errors.PositionMismatchError{}
		}
	}
	r.line = index
	return nil
}

// RequestSplit rejects dynamic splitting; text files are assigned to readers in their entirety
func (r *Reader) RequestSplit(req beam.SplitRequest) (beam.Position, error) {
	return nil, errors.UnsplittableReaderError{Reason: "text sources are read at whole-file granularity"}
}

// Close releases the underlying file
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// lineFromPosition coerces the shapes a line index may arrive in, including the float64 it
// becomes after a JSON round-trip inside a composite position token
func lineFromPosition(pos beam.Position) (int64, error) {
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
