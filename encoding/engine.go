package encoding

import (
	"bytes"
	"io"
	"reflect"

	"github.com/ugorji/go/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/resttools-go/mimetype"
)

// Type helpers
type encoderMapping map[mimetype.MimeType]Encoder
type decoderMapping map[mimetype.MimeType]Decoder

/*
ContentEngine details the contract for a content encoding engine. The goal of the
content engine is to allow a common decoding and encoding methodology for any
supported mimetype, so that a request pipeline can pick a wire format from message
headers and invoke the matching serializer without format-specific code in handlers.
*/
type ContentEngine interface {
	// Registers an encoder for a given mimetype.
	SetEncoder(mimeType mimetype.MimeType, encoder Encoder)

	// Registers a decoder for a given mimetype.
	SetDecoder(mimeType mimetype.MimeType, decoder Decoder)

	// Returns true if the engine has a registered encoder for the mimetype.
	HandlesEncode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered decoder for the mimetype.
	HandlesDecode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered encoder AND decoder for the
	// mimetype.
	Handles(mimeType mimetype.MimeType) bool

	// Whether the engine will attempt to decode unknown mimetypes.
	SniffType() bool

	// Decode mimeType content from reader using the decoder for mimeType. Decoded
	// content is stored in contentReceiver.
	Decode(
		mimeType mimetype.MimeType,
		contentReceiver interface{},
		reader io.Reader,
	) error

	// Encode content as mimeType to writer using the encoder for mimeType.
	Encode(
		mimeType mimetype.MimeType,
		content interface{},
		writer io.Writer,
	) error
}

/*
RestEngine is the default implementation of the ContentEngine interface.
Implementation is done through an Interface so that the Engine can be extended
through type wrapping.

# Instantiation

Use NewContentEngine() to create a new RestEngine, or build one from a TypeMap via
TypeMap.Apply().

# Default Mimetypes

• text/plain

• application/json

• application/yaml

• application/bson

# Default JSON Extensions

RestEngine uses the codec library to encode/decode json
(https://godoc.org/github.com/ugorji/go/codec), which allows the definition of
extensions. RestEngine ships with the following types handled:

• UUIDs from "github.com/satori/go.uuid"

• Binary blob data as the named BinData type from the "resttypes" package,
represented as a hex string.

• BSON primitive.Binary data is encoded as a UUID for the 0x3 subtype and a hex
string for the 0x0 subtype. Other subtypes are not supported and will surface as
encode errors.

• BSON raw documents are converted to a map and THEN encoded as a json object.

Additional json extensions can be registered through AddJSONExtensions() by passing
a slice of JSONExtensionOpts objects.

# Default BSON Codecs

Bson data is handled through the official bson driver
(https://godoc.org/go.mongodb.org/mongo-driver), with UUID and BinData codecs
registered on the engine's bsoncodec registry. See AddBSONCodecs().

# Type Sniffing

If created with "sniffMimeType" set to true, when decoding an UNKNOWN mimetype the
engine will attempt each registered decoder until one does not return an error or
panic. Because decoders are internally stored in a map, the order of these attempts
is not guaranteed to be consistent.

# Panics

If an encoder or decoder panics during execution, that panic is caught and returned
as an error.
*/
type RestEngine struct {
	// MimeType:Encoder mapping
	encoders encoderMapping
	// MimeType:Decoder mapping
	decoders decoderMapping
	// List of all registered decoders. Used for sniffing mimetype.
	decoderList []Decoder
	// Whether to attempt decoding when no explicit mimetype is known.
	sniffMimeType bool

	// JSON handle for default JSON encoder
	jsonHandle *codec.JsonHandle
	// BSON registry for default BSON encoder
	bsonRegistry *bsoncodec.Registry
	// BSON codecs
	bsonCodecs []*BsonCodecOpts
	// Engine to pass to Encoder.Encode() and Decoder.Decode() methods.
	passedEngine ContentEngine
}

// Change the engine passed into Encoder.Encode() and Decoder.Decode()
func (engine *RestEngine) SetPassedEngine(newEngine ContentEngine) {
	engine.passedEngine = newEngine
}

// Register an encoder for a given mimeType
func (engine *RestEngine) SetEncoder(mimeType mimetype.MimeType, encoder Encoder) {
	engine.encoders[mimeType] = encoder
}

// Register a decoder for a given mimeType
func (engine *RestEngine) SetDecoder(mimeType mimetype.MimeType, decoder Decoder) {
	engine.decoders[mimeType] = decoder

	// Cache a list of all the decoders we can use when mimetype sniffing. Because of
	// this SNIFF ORDER IS NOT GUARANTEED.
	engine.decoderList = make([]Decoder, len(engine.decoders))
	index := 0

	for _, decoder := range engine.decoders {
		engine.decoderList[index] = decoder
		index++
	}
}

// Whether RestEngine will attempt to decode UNKNOWN content.
func (engine *RestEngine) SniffType() bool {
	return engine.sniffMimeType
}

// Whether the RestEngine has a registered encoder for mimeType.
func (engine *RestEngine) HandlesEncode(mimeType mimetype.MimeType) bool {
	_, ok := engine.encoders[mimeType]
	return ok
}

// Whether the RestEngine has a registered decoder for mimeType.
func (engine *RestEngine) HandlesDecode(mimeType mimetype.MimeType) bool {
	_, ok := engine.decoders[mimeType]
	return ok
}

// Whether the RestEngine has a registered decoder AND encoder for mimeType.
func (engine *RestEngine) Handles(mimeType mimetype.MimeType) bool {
	return engine.HandlesEncode(mimeType) && engine.HandlesDecode(mimeType)
}

// Select what engine to pass into the encoder / decoder in case we are extending
// the engine type.
func (engine *RestEngine) getEngine() (passEngine ContentEngine) {
	if engine.passedEngine != nil {
		passEngine = engine.passedEngine
	} else {
		passEngine = engine
	}

	return passEngine
}

// Uses an encoder while catching panics to return as errors
func (engine *RestEngine) safeEncode(
	encoder Encoder, writer io.Writer, content interface{},
) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during encode: %w", recovered)
		}
	}()

	passEngine := engine.getEngine()
	err = encoder.Encode(passEngine, writer, content)
	return err
}

// Uses a decoder while catching panics to return as errors
func (engine *RestEngine) safeDecode(
	decoder Decoder, reader io.Reader, contentReceiver interface{},
) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during decode: %w", recovered)
		}
	}()

	passEngine := engine.getEngine()
	err = decoder.Decode(passEngine, reader, contentReceiver)

	return err
}

// Attempts to decode content with all registered decoders until one succeeds or all
// fail.
func (engine *RestEngine) sniffContent(
	contentReceiver interface{}, reader io.Reader,
) error {
	// We need to read the content multiple times, so lets load the bytes into a var.
	// This will cause a slight performance hit, which is why this is a separate
	// process from loading a KNOWN mimetype.
	contentBuffer := bytes.NewBuffer(make([]byte, 0))
	if _, err := contentBuffer.ReadFrom(reader); err != nil {
		return xerrors.Errorf("error reading contentBytes: %w", err)
	}

	var decoderErr error
	var decoded bool

	for _, decoder := range engine.decoderList {
		// Make a buffer for this attempt, otherwise we'll run out of bytes.
		thisReader := bytes.NewBuffer(contentBuffer.Bytes())
		thisErr := engine.safeDecode(decoder, thisReader, contentReceiver)

		if thisErr != nil {
			if decoderErr == nil {
				decoderErr = thisErr
			} else {
				decoderErr = xerrors.Errorf(
					"decoding error: %w after: %w", thisErr, decoderErr,
				)
			}
		} else {
			decoded = true
			break
		}
	}

	if decoded {
		decoderErr = nil
	}

	return decoderErr
}

// Picks the mimetype for encoding / decoding objects when source or target mimetype
// is unknown.
func pickContentMimeType(
	mimeType mimetype.MimeType, content interface{}, encoding bool,
) mimetype.MimeType {
	if mimeType == mimetype.UNKNOWN {
		var useType mimetype.MimeType

		switch content.(type) {
		case string:
			useType = mimetype.TEXT
		case *string:
			useType = mimetype.TEXT
		default:
			useType = mimetype.JSON
		}

		// If we are decoding, we only want to force a text decoding if the receiver
		// is a string.
		if encoding || useType == mimetype.TEXT {
			mimeType = useType
		}
	}
	return mimeType
}

func (engine *RestEngine) Decode(
	mimeType mimetype.MimeType,
	contentReceiver interface{},
	reader io.Reader,
) error {
	mimeType = pickContentMimeType(mimeType, contentReceiver, false)

	// Close the reader if it's a closer.
	if readCloser, ok := reader.(io.ReadCloser); ok {
		defer func() {
			_ = readCloser.Close()
		}()
	}

	// If we want to sniff
	if mimeType == mimetype.UNKNOWN {
		if !engine.SniffType() {
			return xerrors.New("mimetype is unknown and sniffing is disabled")
		}
		return engine.sniffContent(contentReceiver, reader)
	}

	decoder, ok := engine.decoders[mimeType]
	if !ok {
		return xerrors.New("no decoder for " + string(mimeType))
	}

	err := engine.safeDecode(decoder, reader, contentReceiver)
	if err != nil {
		return xerrors.Errorf("decode err: %w", err)
	}

	return nil
}

func (engine *RestEngine) Encode(
	mimeType mimetype.MimeType,
	content interface{},
	writer io.Writer,
) error {
	mimeType = pickContentMimeType(mimeType, content, true)

	encoder, ok := engine.encoders[mimeType]
	if !ok {
		return xerrors.New("no encoder for " + string(mimeType))
	}

	err := engine.safeEncode(encoder, writer, content)
	if err != nil {
		return xerrors.Errorf(
			"encode err: %w", err,
		)
	}
	return nil
}

func (engine *RestEngine) JSONHandle() *codec.JsonHandle {
	return engine.jsonHandle
}

// Returns the internal bsoncodec.Registry used by the bson encoder/decoder.
func (engine *RestEngine) BSONRegistry() *bsoncodec.Registry {
	return engine.bsonRegistry
}

// Adds JSON extensions to handle.
func (engine *RestEngine) AddJSONExtensions(extensions []*JSONExtensionOpts) error {
	for _, extOpts := range extensions {
		err := engine.jsonHandle.SetInterfaceExt(
			extOpts.ValueType, 1, extOpts.ExtInterface,
		)
		if err != nil {
			return xerrors.Errorf(
				"error adding json extension to content engine: %w", err,
			)
		}
	}
	return nil
}

// Adds BSON codecs to engine for use when encoding/decoding bson data.
func (engine *RestEngine) AddBSONCodecs(codecs []*BsonCodecOpts) error {
	// Store these codecs for later in case more are added by the end user and we
	// need to declare a new registry.
	engine.bsonCodecs = append(engine.bsonCodecs, codecs...)

	builder := bsoncodec.NewRegistryBuilder()
	bsoncodec.DefaultValueEncoders{}.RegisterDefaultEncoders(builder)
	bsoncodec.DefaultValueDecoders{}.RegisterDefaultDecoders(builder)

	for _, codecOpts := range codecs {
		builder.RegisterCodec(codecOpts.ValueType, codecOpts.Codec)
	}

	// Build the bson registry.
	engine.bsonRegistry = builder.Build()

	// Now redeclare the json extension for bson raw with this registry so it has
	// access to any additional codecs
	err := engine.jsonHandle.SetInterfaceExt(
		reflect.TypeOf(bson.Raw{}),
		1,
		&jsonExtBsonRaw{engine.bsonRegistry},
	)
	if err != nil {
		return xerrors.Errorf(
			"error building bson extension for json handle: %w", err,
		)
	}

	return nil
}

func NewContentEngine(allowSniff bool) (*RestEngine, error) {
	// Create the json handle. Generic receivers get string-keyed maps so decoded
	// request bodies are usable without casting every key.
	jsonHandle := &codec.JsonHandle{}
	jsonHandle.MapType = reflect.TypeOf(map[string]interface{}(nil))

	// Create the content engine.
	engine := &RestEngine{
		encoders:      make(encoderMapping),
		decoders:      make(decoderMapping),
		sniffMimeType: allowSniff,
		jsonHandle:    jsonHandle,
		bsonRegistry:  nil,
	}

	// Add the default encoders.
	engine.SetEncoder(mimetype.JSON, &jsonSerializer{})
	engine.SetEncoder(mimetype.YAML, &yamlSerializer{})
	engine.SetEncoder(mimetype.BSON, &bsonSerializer{})
	engine.SetEncoder(mimetype.TEXT, &textSerializer{})

	// Add the default decoders.
	engine.SetDecoder(mimetype.JSON, &jsonSerializer{})
	engine.SetDecoder(mimetype.YAML, &yamlSerializer{})
	engine.SetDecoder(mimetype.BSON, &bsonSerializer{})
	engine.SetDecoder(mimetype.TEXT, &textSerializer{})

	// Add the default json extensions to the engine.
	if err := engine.AddJSONExtensions(defaultJSONExtensions); err != nil {
		err = xerrors.Errorf("error adding default json extensions: %w", err)
		return nil, err
	}

	// Add the default bson codecs to the engine.
	if err := engine.AddBSONCodecs(defaultBsonCodecs); err != nil {
		err = xerrors.Errorf("error adding default bson codecs: %w", err)
		return nil, err
	}

	return engine, nil
}
