package format

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Canonical mode keeps the output byte-identical across runs.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("format: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// CBOREncoder writes the Class view as a single CBOR map. Field names follow
// the json tags.
type CBOREncoder struct {
	w     io.Writer
	class *Class
}

func NewCBOREncoder(w io.Writer) *CBOREncoder {
	return &CBOREncoder{w: w}
}

func (e *CBOREncoder) Encode(class *Class) error {
	e.class = class
	data, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

// MarshalText returns binary CBOR, not text.
func (e *CBOREncoder) MarshalText() ([]byte, error) {
	return cborEncMode.Marshal(e.class)
}

// DecodeCBOR reads back a Class written by CBOREncoder.
func DecodeCBOR(data []byte) (*Class, error) {
	var c Class
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cbor class: %w", err)
	}
	return &c, nil
}
