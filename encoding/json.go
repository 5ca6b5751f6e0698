package encoding

import (
	"encoding/hex"
	"io"
	"reflect"

	uuid "github.com/satori/go.uuid"
	"github.com/ugorji/go/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/resttools-go/resttypes"
)

// JSONExtensionOpts holds options for a JsonHandle extension to add to the handle on
// engine setup.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	ExtInterface codec.InterfaceExt
}

// defaultJSONExtensions holds all the JSONExtensionOpts to add to the JSONHandle on
// engine setup
var defaultJSONExtensions = []*JSONExtensionOpts{
	{
		ValueType:    reflect.TypeOf(primitive.Binary{}),
		ExtInterface: &jsonExtBsonBinary{},
	},
	{
		ValueType:    reflect.TypeOf(resttypes.BinData(nil)),
		ExtInterface: &jsonExtBinData{},
	},
}

// Represents BinData blobs as hex strings in json payloads.
type jsonExtBinData struct{}

func (ext *jsonExtBinData) ConvertExt(value interface{}) interface{} {
	switch valueBin := value.(type) {
	case resttypes.BinData:
		return hex.EncodeToString(valueBin)
	case *resttypes.BinData:
		return hex.EncodeToString(*valueBin)
	}

	panic(xerrors.New("value is not BinData"))
}

func (ext *jsonExtBinData) UpdateExt(dest interface{}, value interface{}) {
	hexString, ok := value.(string)
	if !ok {
		panic(xerrors.New("BinData fields must be hex strings"))
	}

	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		panic(xerrors.Errorf("could not decode hex: %w", err))
	}

	*(dest.(*resttypes.BinData)) = decoded
}

// Converts BSON binary fields to json. Currently supports Binary blobs and UUIDs.
type jsonExtBsonBinary struct{}

func (ext *jsonExtBsonBinary) ConvertExt(value interface{}) interface{} {
	valueBin := value.(*primitive.Binary)
	if valueBin.Subtype == 0x3 {
		valueUUID, err := uuid.FromBytes(valueBin.Data)
		if err != nil {
			panic(xerrors.Errorf("Error converting bson uuid: %w", err))
		}
		return valueUUID
	}

	if valueBin.Subtype == 0x0 {
		return resttypes.BinData(valueBin.Data)
	}

	panic(xerrors.New("unsupported Binary BSON format"))
}

func (ext *jsonExtBsonBinary) UpdateExt(dest interface{}, value interface{}) {
	panic(
		xerrors.New(
			"decoding to bson binary field not supported -- " +
				"use uuid or BinData type as intermediary",
		),
	)
}

// Converts BSON Raw document to json object.
type jsonExtBsonRaw struct {
	bsonRegistry *bsoncodec.Registry
}

func (ext *jsonExtBsonRaw) ConvertExt(value interface{}) interface{} {
	valueRaw := value.(bson.Raw)

	unmarshaled := make(map[string]interface{})

	if len(valueRaw) > 0 {
		err := bson.UnmarshalWithRegistry(
			ext.bsonRegistry, valueRaw, &unmarshaled,
		)
		if err != nil {
			panic(xerrors.Errorf(
				"error while unmarshalling bson for encoding: %w", err,
			))
		}
	}

	return unmarshaled
}

func (ext *jsonExtBsonRaw) UpdateExt(dest interface{}, value interface{}) {
	panic(xerrors.New("Decoding to BSON raw field not supported"))
}

// default JSON serializer for RestEngine.
type jsonSerializer struct{}

func (serializer *jsonSerializer) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	restEngine := engine.(*RestEngine)
	jsonEncoder := codec.NewEncoder(writer, restEngine.jsonHandle)
	return jsonEncoder.Encode(content)
}

func (serializer *jsonSerializer) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	restEngine := engine.(*RestEngine)
	jsonDecoder := codec.NewDecoder(reader, restEngine.jsonHandle)
	return jsonDecoder.Decode(contentReceiver)
}

// The "indent" option from a Registration option bag sets pretty-printing on the
// engine's json handle. Applied once, at TypeMap.Apply time.
func (serializer *jsonSerializer) Configure(
	engine ContentEngine, options map[string]interface{},
) error {
	indent, ok := options["indent"]
	if !ok {
		return nil
	}

	indentInt, ok := indent.(int)
	if !ok {
		return xerrors.New("json 'indent' option must be an int")
	}

	restEngine, ok := engine.(*RestEngine)
	if !ok {
		return xerrors.New("json 'indent' option requires a RestEngine")
	}
	restEngine.jsonHandle.Indent = int8(indentInt)

	return nil
}
