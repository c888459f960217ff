package beam

import (
	uuid "github.com/gofrs/uuid"
)

// An ExecutionContext is a per-work-item handle forwarded uninterpreted to every reader
// constructed for that work item. It carries a generated instance id for logging and an
// opaque key/value bag owned by the execution engine.
type ExecutionContext struct {
	id     string
	values map[string]interface{}
}

// CreateExecutionContext instantiates a new ExecutionContext with a fresh instance id
func CreateExecutionContext() (*ExecutionContext, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &ExecutionContext{
		id:     id.String(),
		values: make(map[string]interface{}),
	}, nil
}

// ID returns the instance id of this ExecutionContext
func (ec *ExecutionContext) ID() string {
	return ec.id
}

// Set stores an engine-owned value under key
func (ec *ExecutionContext) Set(key string, value interface{}) {
	ec.values[key] = value
}

// Value retrieves an engine-owned value stored under key
func (ec *ExecutionContext) Value(key string) (interface{}, bool) {
	v, ok := ec.values[key]
	return v, ok
}
