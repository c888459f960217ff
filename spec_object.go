package beam

import (
	"math"

	"github.com/tidwall/gjson"

	errors "github.com/kkarthikpsgtech/beam/errors"
)

// PropertyType is the key within a source spec which identifies its source type
const PropertyType = "@type"

// Keys within serialized source configuration
const (
	// PropertySources is the key under which a concatenation stores its sub-source list
	PropertySources = "sources"
	// PropertySpec is the key under which a sub-source entry stores its source spec
	PropertySpec = "spec"
	// PropertyEncoding is the key under which a sub-source entry stores its codec spec
	PropertyEncoding = "encoding"
	// PropertyBaseSpecs is the key under which a sub-source entry stores inherited spec fragments
	PropertyBaseSpecs = "base_specs"
	// PropertyProducesSortedKeys is the key for the sorted-keys metadata flag
	PropertyProducesSortedKeys = "produces_sorted_keys"
	// PropertyIsInfinite is the key for the unbounded-source metadata flag
	PropertyIsInfinite = "is_infinite"
	// PropertyEstimatedSizeBytes is the key for the estimated-size metadata field
	PropertyEstimatedSizeBytes = "estimated_size_bytes"
	// PropertyDoesNotNeedSplitting is the key for the splitting hint
	PropertyDoesNotNeedSplitting = "does_not_need_splitting"
)

// A SpecObject is an opaque nested configuration tree describing a source, a codec, or a
// fragment of either. SpecObjects are produced by the execution engine from serialized work
// descriptions and are navigated, never mutated. Accessors distinguish absent fields from
// present ones, so that optional configuration round-trips as absent rather than as a zero value.
type SpecObject struct {
	root gjson.Result
}

// SpecObjectFromJSON produces a SpecObject from raw JSON describing a configuration tree
func SpecObjectFromJSON(data []byte) (SpecObject, error) {
	if !gjson.ValidBytes(data) {
		return SpecObject{}, errors.TypeMismatchError{Field: "(root)", Expected: "valid JSON object", Actual: "malformed JSON"}
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return SpecObject{}, errors.TypeMismatchError{Field: "(root)", Expected: "object", Actual: jsonTypeName(res)}
	}
	return SpecObject{root: res}, nil
}

// specObjectFromResult wraps an already-validated gjson subtree
func specObjectFromResult(res gjson.Result) SpecObject {
	return SpecObject{root: res}
}

// Raw returns the serialized form of this SpecObject
func (o SpecObject) Raw() string {
	return o.root.Raw
}

// Type returns the source-type tag of this SpecObject, stored under the "@type" key
func (o SpecObject) Type() (string, error) {
	v := o.root.Get(PropertyType)
	if !v.Exists() {
		return "", errors.MalformedSpecError{Field: PropertyType}
	}
	if v.Type != gjson.String {
		return "", errors.TypeMismatchError{Field: PropertyType, Expected: "string", Actual: jsonTypeName(v)}
	}
	return v.String(), nil
}

// Exists returns true iff key is present in this SpecObject
func (o SpecObject) Exists(key string) bool {
	return o.root.Get(key).Exists()
}

// Object returns the nested SpecObject stored under key, failing if key is absent
func (o SpecObject) Object(key string) (SpecObject, error) {
	sub, ok, err := o.OptionalObject(key)
	if err != nil {
		return SpecObject{}, err
	}
	if !ok {
		return SpecObject{}, errors.MalformedSpecError{Field: key}
	}
	return sub, nil
}

// OptionalObject returns the nested SpecObject stored under key, along with whether key was present
func (o SpecObject) OptionalObject(key string) (SpecObject, bool, error) {
	v := o.root.Get(key)
	if !v.Exists() {
		return SpecObject{}, false, nil
	}
	if !v.IsObject() {
		return SpecObject{}, false, errors.TypeMismatchError{Field: key, Expected: "object", Actual: jsonTypeName(v)}
	}
	return specObjectFromResult(v), true, nil
}

// OptionalObjectList returns the list of SpecObjects stored under key, along with whether key
// was present. Every element of a present list must itself be an object.
func (o SpecObject) OptionalObjectList(key string) ([]SpecObject, bool, error) {
	v := o.root.Get(key)
	if !v.Exists() {
		return nil, false, nil
	}
	if !v.IsArray() {
		return nil, false, errors.TypeMismatchError{Field: key, Expected: "list", Actual: jsonTypeName(v)}
	}
	elems := v.Array()
	objects := make([]SpecObject, 0, len(elems))
	for _, elem := range elems {
		if !elem.IsObject() {
			return nil, false, errors.TypeMismatchError{Field: key, Expected: "list of objects", Actual: jsonTypeName(elem)}
		}
		objects = append(objects, specObjectFromResult(elem))
	}
	return objects, true, nil
}

// OptionalList returns the elements stored under key without constraining their shape, along
// with whether key was present. Elements are exposed as SpecObjects so their raw serialized
// form can be forwarded to a Coder.
func (o SpecObject) OptionalList(key string) ([]SpecObject, bool, error) {
	v := o.root.Get(key)
	if !v.Exists() {
		return nil, false, nil
	}
	if !v.IsArray() {
		return nil, false, errors.TypeMismatchError{Field: key, Expected: "list", Actual: jsonTypeName(v)}
	}
	elems := v.Array()
	values := make([]SpecObject, 0, len(elems))
	for _, elem := range elems {
		values = append(values, specObjectFromResult(elem))
	}
	return values, true, nil
}

// OptionalString returns the string stored under key, or nil if key is absent
func (o SpecObject) OptionalString(key string) (*string, error) {
	v := o.root.Get(key)
	if !v.Exists() {
		return nil, nil
	}
	if v.Type != gjson.String {
		return nil, errors.TypeMismatchError{Field: key, Expected: "string", Actual: jsonTypeName(v)}
	}
	s := v.String()
	return &s, nil
}

// OptionalBool returns the boolean stored under key, or nil if key is absent
func (o SpecObject) OptionalBool(key string) (*bool, error) {
	v := o.root.Get(key)
	if !v.Exists() {
		return nil, nil
	}
	if v.Type != gjson.True && v.Type != gjson.False {
		return nil, errors.TypeMismatchError{Field: key, Expected: "boolean", Actual: jsonTypeName(v)}
	}
	b := v.Bool()
	return &b, nil
}

// OptionalSize returns the non-negative integer stored under key, or nil if key is absent
func (o SpecObject) OptionalSize(key string) (*int64, error) {
	v := o.root.Get(key)
	if !v.Exists() {
		return nil, nil
	}
	if v.Type != gjson.Number || math.Trunc(v.Num) != v.Num {
		return nil, errors.TypeMismatchError{Field: key, Expected: "integer", Actual: jsonTypeName(v)}
	}
	if v.Num < 0 {
		return nil, errors.TypeMismatchError{Field: key, Expected: "non-negative integer", Actual: "negative integer"}
	}
	n := v.Int()
	return &n, nil
}

// jsonTypeName describes the shape of a gjson value for TypeMismatchErrors
func jsonTypeName(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "list"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True || v.Type == gjson.False:
		return "boolean"
	case v.Type == gjson.Null:
		return "null"
	default:
		return "unknown"
	}
}
