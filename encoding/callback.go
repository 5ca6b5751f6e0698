package encoding

import (
	"io"

	"golang.org/x/xerrors"
)

/*
CallbackSerializer adapts caller-supplied encode / decode functions to the Encoder
and Decoder interfaces, so one-off formats can be registered without declaring a new
serializer type:

	cfg.Map[mimetype.MimeType("text/csv")] = encoding.Registration{
		Encoder: &encoding.CallbackSerializer{EncodeFunc: encodeCSV},
	}

Errors returned by either callback are failed through unchanged; panics inside a
callback are caught by the engine like any other serializer panic. A
CallbackSerializer with a nil DecodeFunc is encode-only: register it as an Encoder
and decode resolution for its mimetype will fail the same way as any unregistered
type.
*/
type CallbackSerializer struct {
	EncodeFunc func(writer io.Writer, content interface{}) error
	DecodeFunc func(reader io.Reader, contentReceiver interface{}) error
}

func (serializer *CallbackSerializer) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	if serializer.EncodeFunc == nil {
		return xerrors.New("callback serializer has no encode function")
	}
	return serializer.EncodeFunc(writer, content)
}

func (serializer *CallbackSerializer) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	if serializer.DecodeFunc == nil {
		return xerrors.New("callback serializer has no decode function")
	}
	return serializer.DecodeFunc(reader, contentReceiver)
}
