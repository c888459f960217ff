package coder

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

// JSONCoder decodes each record from JSON text and encodes records back to JSON. Decoded
// records follow the usual dynamic mapping: objects become map[string]interface{}, lists
// become []interface{}, numbers become float64.
type JSONCoder struct{}

// CreateJSONCoder instantiates a new JSONCoder
func CreateJSONCoder() *JSONCoder {
	return &JSONCoder{}
}

// Encode serializes record as JSON to w
func (c *JSONCoder) Encode(w io.Writer, record interface{}) error {
	return jsoniter.NewEncoder(w).Encode(record)
}

// Decode deserializes one JSON value from r
func (c *JSONCoder) Decode(r io.Reader) (interface{}, error) {
	var record interface{}
	if err := jsoniter.NewDecoder(r).Decode(&record); err != nil {
		return nil, err
	}
	return record, nil
}
