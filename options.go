package beam

// PipelineOptions is an opaque configuration bag forwarded uninterpreted to every reader a
// factory constructs
type PipelineOptions map[string]interface{}
