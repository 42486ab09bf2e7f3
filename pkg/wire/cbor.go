package wire

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/semantics"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer encoding,
// no indefinite-length items. The same update batch always produces
// identical bytes, so platform consumers can hash or diff frames.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
// Unknown fields are silently ignored for forward compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// When the decoder's target is any (diagnostic tooling walking a
		// frame generically), pick map[string]any over the CBOR default
		// map[any]any so the result stays compatible with encoding/json.
		// Struct field decoding is unaffected.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("wire: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import only
// this package, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder. Type alias so consumers import only
// this package, not fxamacker/cbor directly.
type Decoder = cbor.Decoder

// NewEncoder returns a CBOR encoder that writes to w using the standard
// Core Deterministic Encoding configuration.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads from r using the
// standard decoding configuration.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// EncodeBatch serializes one flush's update batch as a single CBOR
// item. Absent scroll metrics travel as canonical NaN.
func EncodeBatch(batch semantics.UpdateBatch) ([]byte, error) {
	data, err := Marshal(batch)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode update batch")
	}
	return data, nil
}

// DecodeBatch deserializes an update batch encoded by [EncodeBatch].
func DecodeBatch(data []byte) (semantics.UpdateBatch, error) {
	var batch semantics.UpdateBatch
	if err := Unmarshal(data, &batch); err != nil {
		return semantics.UpdateBatch{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode update batch")
	}
	return batch, nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
