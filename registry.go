package beam

import (
	"sync"

	errors "github.com/kkarthikpsgtech/beam/errors"
)

// A ReaderRegistry maps source-type tags to the ReaderFactory capable of constructing
// readers of that type. A registry has a two-phase lifecycle: factories are registered
// during process initialization, the registry is frozen, and all subsequent use is
// read-only lookup. Lookup of an unregistered tag fails without side effects.
type ReaderRegistry struct {
	lock      sync.RWMutex
	factories map[string]ReaderFactory
	frozen    bool
}

// CreateReaderRegistry instantiates a new, empty ReaderRegistry
func CreateReaderRegistry() *ReaderRegistry {
	return &ReaderRegistry{
		factories: make(map[string]ReaderFactory),
	}
}

// RegisterReaderFactory associates a source-type tag with a ReaderFactory. Registering a
// tag twice, or registering after Freeze, returns an error rather than silently replacing
// or dropping a factory.
func (r *ReaderRegistry) RegisterReaderFactory(tag string, factory ReaderFactory) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.frozen {
		return errors.RegistryFrozenError{Type: tag}
	}
	if _, ok := r.factories[tag]; ok {
		return errors.DuplicateFactoryError{Type: tag}
	}
	r.factories[tag] = factory
	return nil
}

// Freeze ends the registration phase. After Freeze, the registry is read-only.
func (r *ReaderRegistry) Freeze() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.frozen = true
}

// LookupFactory returns the ReaderFactory registered under tag, failing with
// UnknownSourceTypeError if no factory is registered for it
func (r *ReaderRegistry) LookupFactory(tag string) (ReaderFactory, error) {
	r.lock.RLock()
	factory, ok := r.factories[tag]
	r.lock.RUnlock()
	if !ok {
		return nil, errors.UnknownSourceTypeError{Type: tag}
	}
	return factory, nil
}

// CreateReader constructs a Reader for spec by dispatching on its source-type tag
func (r *ReaderRegistry) CreateReader(spec SpecObject, coder Coder, opts PipelineOptions, ec *ExecutionContext, counters CounterSink, operationName string) (Reader, error) {
	tag, err := spec.Type()
	if err != nil {
		return nil, err
	}
	factory, err := r.LookupFactory(tag)
	if err != nil {
		return nil, err
	}
	return factory.CreateReader(spec, coder, opts, ec, counters, operationName)
}

// Clone returns a new, unfrozen ReaderRegistry containing the same registrations as this
// one. Useful for tests which extend the default registry without mutating process state.
func (r *ReaderRegistry) Clone() *ReaderRegistry {
	r.lock.RLock()
	defer r.lock.RUnlock()
	clone := CreateReaderRegistry()
	for tag, factory := range r.factories {
		clone.factories[tag] = factory
	}
	return clone
}

var defaultRegistry = CreateReaderRegistry()

// DefaultRegistry returns the process-wide ReaderRegistry, populated by source-type
// packages at init time
func DefaultRegistry() *ReaderRegistry {
	return defaultRegistry
}

// MustRegisterReaderFactory registers factory with the default registry, panicking on
// failure. Intended to be called from init() within the package implementing a source type.
func MustRegisterReaderFactory(tag string, factory ReaderFactory) {
	if err := defaultRegistry.RegisterReaderFactory(tag, factory); err != nil {
		panic(err)
	}
}
