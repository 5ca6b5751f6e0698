package encoding

import (
	"io"

	"golang.org/x/xerrors"
)

// ViewRenderer is the collaborator interface for an external, name-addressed view
// rendering system. Render errors are forwarded to the caller verbatim.
type ViewRenderer interface {
	Render(kind string, name string, content interface{}, writer io.Writer) error
}

/*
ViewSerializer delegates encoding to a ViewRenderer identified by a (Kind, Name)
pair -- for instance ("template", "user_page"). It is encode-only by construction:
it implements the Encoder interface but not Decoder, so registering one never makes
its mimetype decodable and decode attempts fail as an unsupported type.
*/
type ViewSerializer struct {
	Renderer ViewRenderer
	Kind     string
	Name     string
}

func (serializer *ViewSerializer) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	if serializer.Renderer == nil {
		return xerrors.New("view serializer has no renderer")
	}
	return serializer.Renderer.Render(
		serializer.Kind, serializer.Name, content, writer,
	)
}
