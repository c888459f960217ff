// Package beam contains the core components of the worker-side source layer: the contracts
// which Readers and ReaderFactories implement, the registry which maps serialized source
// types to the factories capable of constructing readers for them, and the descriptor model
// for serialized source configuration. This root package defines types which are employed
// when embedding the source layer in an execution engine, as well as in the extension of the
// layer with new source types, and is an excellent overview of its key concepts.
package beam
