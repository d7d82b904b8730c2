package types

import (
	"bytes"

	"github.com/spacemeshos/go-scale"
)

// scaleEncodable is implemented by Block, Ballot and every other wire type in
// this package that carries a hand-rolled EncodeScale method.
type scaleEncodable interface {
	EncodeScale(enc *scale.Encoder) (int, error)
}

// MustEncode encodes v with go-scale and panics on error, mirroring
// go-spacemesh's codec.MustEncode: every caller here builds a fixed,
// well-formed struct, so an encode failure means a bug in this package, not
// a recoverable runtime condition.
func MustEncode(v scaleEncodable) []byte {
	var buf bytes.Buffer
	enc := scale.NewEncoder(&buf)
	if _, err := v.EncodeScale(enc); err != nil {
		panic("types: scale encode: " + err.Error())
	}
	return buf.Bytes()
}
