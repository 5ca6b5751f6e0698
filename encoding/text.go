package encoding

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// Handles encoding to / decoding from text/plain
type textSerializer struct{}

func (serializer *textSerializer) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	contentString := fmt.Sprint(content)
	_, err := io.WriteString(writer, contentString)

	return err
}

func (serializer *textSerializer) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	stringPointer, ok := contentReceiver.(*string)
	if !ok {
		return xerrors.New(
			"content receiver must be a string pointer to receive a string.",
		)
	}

	buffer := new(bytes.Buffer)
	if _, err := buffer.ReadFrom(reader); err != nil {
		return err
	}

	*stringPointer = buffer.String()

	return nil
}
