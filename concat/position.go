package concat

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"

	beam "github.com/kkarthikpsgtech/beam"
)

// A Position locates a record within a concatenated stream: the index of the sub-source
// being read, the active sub-reader's own position token, and a fingerprint of the source
// list the token was issued against. A checkpoint restored from a Position resumes exactly
// where iteration paused, without re-reading prior sub-sources.
type Position struct {
	Index       int           `json:"index"`
	SubPosition beam.Position `json:"sub_position,omitempty"`
	// Fingerprint is the hex-encoded digest of the source list, so a token applied to a
	// different source list fails fast instead of silently reading the wrong data
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Token serializes this Position for storage in a checkpoint
func (p *Position) Token() ([]byte, error) {
	return jsoniter.Marshal(p)
}

// PositionFromToken deserializes a Position previously serialized with Token
func PositionFromToken(token []byte) (*Position, error) {
	var p Position
	if err := jsoniter.Unmarshal(token, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// fingerprintSources digests the ordered source specs of a concatenation
func fingerprintSources(sources []*beam.Source) uint64 {
	digest := xxhash.New()
	for _, source := range sources {
		digest.WriteString(source.Spec.Raw())
		digest.Write([]byte{0})
	}
	return digest.Sum64()
}

// fingerprintHex renders a source-list digest the way Position carries it
func fingerprintHex(fingerprint uint64) string {
	return strconv.FormatUint(fingerprint, 16)
}

// parsePosition coerces the token shapes a Position may arrive in: a *Position, a Position
// value, serialized token bytes, or the generic map a Position becomes after a JSON
// round-trip inside an enclosing token.
func parsePosition(pos beam.Position) (*Position, error) {
	switch v := pos.(type) {
	case *Position:
		return v, nil
	case Position:
		return &v, nil
	case []byte:
		return PositionFromToken(v)
	case map[string]interface{}:
		p := &Position{}
		idx, ok := v["index"].(float64)
		if !ok {
			return nil, fmt.Errorf("position token has no numeric index: %#v", pos)
		}
		p.Index = int(idx)
		p.SubPosition = v["sub_position"]
		if fp, ok := v["fingerprint"].(string); ok {
			p.Fingerprint = fp
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported position token type %T", pos)
	}
}
