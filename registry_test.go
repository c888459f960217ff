package beam

import (
	"testing"

	"github.com/stretchr/testify/require"

	errors "github.com/kkarthikpsgtech/beam/errors"
)

// stubReader yields no records; registry tests only need construction to succeed
type stubReader struct{ closed bool }

func (r *stubReader) HasNext() bool                      { return false }
func (r *stubReader) NextRecord() (interface{}, error)   { return nil, errors.NoMoreRecordsError{} }
func (r *stubReader) Progress() Position                 { return nil }
func (r *stubReader) Close() error                       { r.closed = true; return nil }
func (r *stubReader) RequestSplit(req SplitRequest) (Position, error) {
	return nil, errors.UnsplittableReaderError{Reason: "stub"}
}

func stubFactory() ReaderFactory {
	return ReaderFactoryFunc(func(spec SpecObject, coder Coder, opts PipelineOptions, ec *ExecutionContext, counters CounterSink, operationName string) (Reader, error) {
		return &stubReader{}, nil
	})
}

func TestRegistryDispatch(t *testing.T) {
	registry := CreateReaderRegistry()
	require.Nil(t, registry.RegisterReaderFactory("StubSource", stubFactory()))
	registry.Freeze()

	spec := mustSpecObject(t, `{"@type": "StubSource"}`)
	reader, err := registry.CreateReader(spec, nil, nil, nil, nil, "read-stub")
	require.Nil(t, err)
	require.False(t, reader.HasNext())
	require.Nil(t, reader.Close())
}

func TestRegistryUnknownSourceType(t *testing.T) {
	registry := CreateReaderRegistry()
	require.Nil(t, registry.RegisterReaderFactory("StubSource", stubFactory()))
	registry.Freeze()

	_, err := registry.LookupFactory("MysterySource")
	require.NotNil(t, err)
	require.IsType(t, errors.UnknownSourceTypeError{}, err)

	// a failed lookup has no side effects on subsequent lookups
	_, err = registry.LookupFactory("MysterySource")
	require.IsType(t, errors.UnknownSourceTypeError{}, err)
	_, err = registry.LookupFactory("StubSource")
	require.Nil(t, err)
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	registry := CreateReaderRegistry()
	require.Nil(t, registry.RegisterReaderFactory("StubSource", stubFactory()))
	err := registry.RegisterReaderFactory("StubSource", stubFactory())
	require.NotNil(t, err)
	require.IsType(t, errors.DuplicateFactoryError{}, err)

	// the original registration survives
	_, err = registry.LookupFactory("StubSource")
	require.Nil(t, err)
}

func TestRegistryFrozen(t *testing.T) {
	registry := CreateReaderRegistry()
	registry.Freeze()
	err := registry.RegisterReaderFactory("StubSource", stubFactory())
	require.NotNil(t, err)
	require.IsType(t, errors.RegistryFrozenError{}, err)
}

func TestRegistryClone(t *testing.T) {
	registry := CreateReaderRegistry()
	require.Nil(t, registry.RegisterReaderFactory("StubSource", stubFactory()))
	registry.Freeze()

	clone := registry.Clone()
	require.Nil(t, clone.RegisterReaderFactory("OtherSource", stubFactory()))
	_, err := clone.LookupFactory("StubSource")
	require.Nil(t, err)

	// the original registry is unaffected by the clone's registrations
	_, err = registry.LookupFactory("OtherSource")
	require.IsType(t, errors.UnknownSourceTypeError{}, err)
}

func TestDefaultRegistryBuiltins(t *testing.T) {
	// source-type packages register themselves at init time
	require.NotNil(t, DefaultRegistry())
}

func TestExecutionContextValues(t *testing.T) {
	ec, err := CreateExecutionContext()
	require.Nil(t, err)
	require.NotEqual(t, "", ec.ID())
	ec.Set("work-item", "w-17")
	v, ok := ec.Value("work-item")
	require.True(t, ok)
	require.Equal(t, "w-17", v)
	_, ok = ec.Value("missing")
	require.False(t, ok)
}
