package encoding

import (
	"io"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// YAML serializer for RestEngine, backed by gopkg.in/yaml.v2.
type yamlSerializer struct{}

func (serializer *yamlSerializer) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	yamlEncoder := yaml.NewEncoder(writer)
	if err := yamlEncoder.Encode(content); err != nil {
		return err
	}
	return yamlEncoder.Close()
}

func (serializer *yamlSerializer) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	err := yaml.NewDecoder(reader).Decode(contentReceiver)
	// A fully empty stream is not an error for the pipeline; callers treat empty
	// bodies before the codec is ever invoked, so an EOF here means a body of pure
	// whitespace / comments.
	if err == io.EOF {
		return xerrors.New("yaml payload contains no documents")
	}
	return err
}
