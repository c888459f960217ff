// Package coder provides Coder implementations for the bundled source types. A Coder
// decodes one record of a source's element type from a byte stream and encodes it back.
package coder
