package encoding

import (
	"io"
)

// Interface for defining a content encoder.
type Encoder interface {
	// To be implemented by content encoder. Implementation is expected to write
	// content to writer. The content engine which is calling Encode is made available
	// through engine, allowing encoders to access engine-level settings.
	Encode(engine ContentEngine, writer io.Writer, content interface{}) error
}

// Interface for defining a content decoder.
type Decoder interface {
	// To be implemented by content decoder. Implementation is expected to read
	// content from reader and unmarshal it into contentReceiver. The content engine
	// which is calling Decode is made available through engine, allowing decoders to
	// access engine-level settings.
	Decode(engine ContentEngine, reader io.Reader, contentReceiver interface{}) error
}

// Serializers that accept a per-format option bag from a TypeMap Registration
// implement Configurable. Options are applied once, when the Registration is applied
// to an engine.
type Configurable interface {
	Configure(engine ContentEngine, options map[string]interface{}) error
}

// Serializer bundles both halves for formats that can encode AND decode.
type Serializer interface {
	Encoder
	Decoder
}

// NewJSONSerializer returns the stock json serializer, so a TypeMap Registration can
// re-register it with an option bag (e.g. "indent").
func NewJSONSerializer() Serializer {
	return &jsonSerializer{}
}

// NewYAMLSerializer returns the stock yaml serializer.
func NewYAMLSerializer() Serializer {
	return &yamlSerializer{}
}

// NewBSONSerializer returns the stock bson serializer.
func NewBSONSerializer() Serializer {
	return &bsonSerializer{}
}

// NewTextSerializer returns the stock plain-text serializer.
func NewTextSerializer() Serializer {
	return &textSerializer{}
}
