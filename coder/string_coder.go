package coder

import (
	"fmt"
	"io"
	"io/ioutil"
)

// StringCoder treats each record as raw text: the full contents of the stream become one
// string record. Suitable for line-oriented sources whose records need no further decoding.
type StringCoder struct{}

// CreateStringCoder instantiates a new StringCoder
func CreateStringCoder() *StringCoder {
	return &StringCoder{}
}

// Encode writes record, which must be a string, to w
func (c *StringCoder) Encode(w io.Writer, record interface{}) error {
	s, ok := record.(string)
	if !ok {
		return fmt.Errorf("StringCoder can only encode strings, not %T", record)
	}
	_, err := w.Write([]byte(s))
	return err
}

// Decode reads all of r as one string record
func (c *StringCoder) Decode(r io.Reader) (interface{}, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
