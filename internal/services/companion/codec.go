package companion

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Deterministic encoding so identical messages produce identical bytes
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("companion: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxMapPairs:      1024,
		MaxArrayElements: 1024,
	}.DecMode()
	if err != nil {
		panic("companion: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v as a single CBOR item
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes one CBOR item into v
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

func newEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

func newDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
