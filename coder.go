package beam

import "io"

// A Coder encodes and decodes single records of a source's element type against byte
// streams. Coders are supplied by the execution engine alongside the source configuration;
// the source layer forwards them to readers uninterpreted.
type Coder interface {
	Encode(w io.Writer, record interface{}) error
	Decode(r io.Reader) (interface{}, error)
}
