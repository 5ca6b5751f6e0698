package encoding

import (
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/resttools-go/mimetype"
)

/*
Registration describes one content type's serializer pairing for a TypeMap: an
Encoder, an optional Decoder (nil for encode-only formats such as view-delegated
rendering) and a per-format option bag handed to Configurable serializers when the
map is applied to an engine.

Registrations are looked up and applied, never mutated after setup.
*/
type Registration struct {
	Encoder Encoder
	Decoder Decoder
	Options map[string]interface{}
}

/*
TypeMap is the content-type -> Registration configuration consumed at controller
setup. Maps may be layered across a controller hierarchy: a child map's Merge
replaces the parent's entry for a content type wholesale. Option bags are never
deep-merged.
*/
type TypeMap map[mimetype.MimeType]Registration

// Merge returns a new TypeMap with overrides replacing entries of the receiver by
// content-type key. Neither input map is modified.
func (typeMap TypeMap) Merge(overrides TypeMap) TypeMap {
	merged := make(TypeMap, len(typeMap)+len(overrides))

	for mimeType, registration := range typeMap {
		merged[mimeType] = registration
	}
	for mimeType, registration := range overrides {
		merged[mimeType] = registration
	}

	return merged
}

// Apply registers every entry of the TypeMap on engine, passing option bags to
// serializers that accept them. Meant to be called once, at setup.
func (typeMap TypeMap) Apply(engine ContentEngine) error {
	for mimeType, registration := range typeMap {
		if registration.Encoder == nil && registration.Decoder == nil {
			return xerrors.New(
				"registration for " + string(mimeType) +
					" has neither encoder nor decoder",
			)
		}

		if registration.Encoder != nil {
			engine.SetEncoder(mimeType, registration.Encoder)
		}
		if registration.Decoder != nil {
			engine.SetDecoder(mimeType, registration.Decoder)
		}

		if len(registration.Options) == 0 {
			continue
		}

		// Both halves may point at the same serializer value. Configure whichever
		// ones take options, once each.
		configured := make(map[Configurable]bool)
		for _, half := range []interface{}{
			registration.Encoder, registration.Decoder,
		} {
			configurable, ok := half.(Configurable)
			if !ok || configured[configurable] {
				continue
			}
			configured[configurable] = true

			if err := configurable.Configure(engine, registration.Options); err != nil {
				return xerrors.Errorf(
					"error configuring serializer for %v: %w", mimeType, err,
				)
			}
		}
	}

	return nil
}
