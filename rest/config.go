package rest

import (
	"net/http"

	"github.com/illuscio-dev/resttools-go/encoding"
	"github.com/illuscio-dev/resttools-go/mimetype"
)

// DefaultStashKey is where staged response entities live in the context stash when
// a controller does not pick its own key.
const DefaultStashKey = "rest"

/*
ControllerConfig is the configuration surface consumed once at controller setup.
Configs may be layered across a controller hierarchy: base defaults, merged with
per-controller overrides via Merge. The effective config a Controller ends up with
is immutable and safe for concurrent reads from many simultaneous requests.
*/
type ControllerConfig struct {
	// Key under which staged entities are stored in the context stash.
	StashKey string

	// Content type used when resolution yields no usable candidate, and as the
	// fallback encode type when no Accept candidate maps to a serializer.
	Default mimetype.MimeType

	// Drops the inherited default type entirely, so resolution with no usable
	// candidate fails instead of falling back. Wins over Default when both are set
	// in a merge.
	NoDefault bool

	// Per-content-type serializer registrations layered on top of the engine
	// defaults. Entries replace engine defaults by content-type key.
	Map encoding.TypeMap

	// Methods whose request bodies are deserialized. Defaults to POST, PUT and
	// OPTIONS; GET, DELETE and HEAD conventionally carry no body.
	DeserializeMethods []string
}

// DefaultConfig returns the base configuration layer: "rest" stash key, JSON
// default type, engine-default serializers, POST/PUT/OPTIONS deserialization.
func DefaultConfig() ControllerConfig {
	return ControllerConfig{
		StashKey: DefaultStashKey,
		Default:  mimetype.JSON,
		DeserializeMethods: []string{
			http.MethodPost, http.MethodPut, http.MethodOptions,
		},
	}
}

// Merge layers overrides on top of the receiver and returns the effective config.
// Scalar fields replace when set; TypeMaps merge by content-type key with override
// entries replacing parent entries wholesale. Neither input is modified.
func (config ControllerConfig) Merge(overrides ControllerConfig) ControllerConfig {
	merged := config

	if overrides.StashKey != "" {
		merged.StashKey = overrides.StashKey
	}
	if overrides.Default != mimetype.UNKNOWN {
		merged.Default = overrides.Default
	}
	if overrides.NoDefault {
		merged.Default = mimetype.UNKNOWN
		merged.NoDefault = true
	}
	if overrides.DeserializeMethods != nil {
		merged.DeserializeMethods = overrides.DeserializeMethods
	}
	if overrides.Map != nil {
		if merged.Map == nil {
			merged.Map = overrides.Map
		} else {
			merged.Map = merged.Map.Merge(overrides.Map)
		}
	}

	return merged
}
