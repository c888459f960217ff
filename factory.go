package beam

// A ReaderFactory constructs a Reader from a serialized source spec. Source-type packages
// implement this capability and register it with a ReaderRegistry under their type tag.
// Every argument other than the spec may be its zero value: coder is nil for source types
// which self-describe their encoding, and the remaining collaborators are forwarded
// uninterpreted when present.
type ReaderFactory interface {
	CreateReader(spec SpecObject, coder Coder, opts PipelineOptions, ec *ExecutionContext, counters CounterSink, operationName string) (Reader, error)
}

// ReaderFactoryFunc adapts an ordinary function to the ReaderFactory capability
type ReaderFactoryFunc func(spec SpecObject, coder Coder, opts PipelineOptions, ec *ExecutionContext, counters CounterSink, operationName string) (Reader, error)

// CreateReader calls f
func (f ReaderFactoryFunc) CreateReader(spec SpecObject, coder Coder, opts PipelineOptions, ec *ExecutionContext, counters CounterSink, operationName string) (Reader, error) {
	return f(spec, coder, opts, ec, counters, operationName)
}
