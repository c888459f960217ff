package concat

import (
	beam "github.com/kkarthikpsgtech/beam"
)

// SourceTypeTag is the type tag under which the concatenation reader factory registers itself
const SourceTypeTag = "ConcatSource"

// A CoderResolver turns a codec spec into the Coder it describes. A factory equipped with
// one builds sub-readers whose source entry carries its own encoding with that codec;
// without one, the caller's Coder is forwarded to every sub-reader.
type CoderResolver func(encoding beam.SpecObject) (beam.Coder, error)

// ReaderFactory constructs concatenation Readers from serialized source configuration
type ReaderFactory struct {
	registry     *beam.ReaderRegistry
	resolveCoder CoderResolver
}

// WithDefaultRegistry returns a ReaderFactory which uses the process-wide default registry
// to construct sub-readers
func WithDefaultRegistry() *ReaderFactory {
	return WithRegistry(beam.DefaultRegistry())
}

// WithRegistry returns a ReaderFactory which uses registry to construct sub-readers
func WithRegistry(registry *beam.ReaderRegistry) *ReaderFactory {
	return &ReaderFactory{registry: registry}
}

// WithCoderResolver returns a copy of this ReaderFactory which resolves per-sub-source
// codec specs through resolve
func (f *ReaderFactory) WithCoderResolver(resolve CoderResolver) *ReaderFactory {
	return &ReaderFactory{registry: f.registry, resolveCoder: resolve}
}

// CreateReader constructs a concatenation Reader over the sub-sources listed in spec under
// the "sources" key. An absent key yields a reader over zero sub-sources, which reports
// exhaustion immediately. No sub-reader is constructed here; each is built on demand
// during iteration, so a malformed spec fails fast but the cost and risk of opening a
// sub-source is only paid if iteration reaches it.
func (f *ReaderFactory) CreateReader(spec beam.SpecObject, coder beam.Coder, opts beam.PipelineOptions, ec *beam.ExecutionContext, counters beam.CounterSink, operationName string) (beam.Reader, error) {
	sources, err := beam.ParseSourceList(spec, beam.PropertySources)
	if err != nil {
		return nil, err
	}
	return createReader(f.registry, f.resolveCoder, sources, coder, opts, ec, counters, operationName), nil
}

func init() {
	beam.MustRegisterReaderFactory(SourceTypeTag, WithDefaultRegistry())
}
