package rest

import (
	"net/http"

	"github.com/illuscio-dev/resttools-go/mimetype"
	"github.com/illuscio-dev/resttools-go/resterrors"
)

/*
ResponseCandidates produces the ordered content-type preference list for
serializing a response. Resolution order:

1. A non-empty Content-Type header is the sole candidate.

2. Otherwise, on GET requests, a "content-type" query parameter is the sole
candidate.

3. Otherwise the Accept header is parsed into quality-ranked candidates. Wildcard
ranges map to the configured default type; an absent Accept header (or one that
yields nothing usable) falls back to the default as a sole low-priority candidate.

The list encodes preference only -- candidates are not checked against the engine
here, since a type present in Accept but absent from the registry is merely skipped
during selection.
*/
func ResponseCandidates(
	config ControllerConfig, request *http.Request,
) []mimetype.Candidate {
	// An explicit Content-Type wins outright, regardless of Accept or query
	// parameters.
	if headerType := mimetype.FromHeader(request.Header); headerType != mimetype.UNKNOWN {
		return []mimetype.Candidate{{Type: headerType, Quality: 1.0}}
	}

	if request.Method == http.MethodGet {
		if queryType := request.URL.Query().Get("content-type"); queryType != "" {
			return []mimetype.Candidate{
				{Type: mimetype.FromString(queryType), Quality: 1.0},
			}
		}
	}

	parsed := mimetype.ParseAccept(request.Header.Get("Accept"))

	candidates := make([]mimetype.Candidate, 0, len(parsed))
	seen := make(map[mimetype.MimeType]bool)

	for _, candidate := range parsed {
		// "anything" means the configured default.
		if candidate.Type == mimetype.WILDCARD {
			if config.Default == mimetype.UNKNOWN {
				continue
			}
			candidate.Type = config.Default
		}

		if seen[candidate.Type] {
			continue
		}
		seen[candidate.Type] = true

		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 && config.Default != mimetype.UNKNOWN {
		candidates = append(
			candidates, mimetype.Candidate{Type: config.Default, Quality: 0},
		)
	}

	return candidates
}

// RequestCandidates is the deserialize-side restriction of resolution: only the
// explicit Content-Type header is considered (query-parameter and Accept-based
// resolution do not apply to request bodies), with the configured default standing
// in when no header is present.
func RequestCandidates(
	config ControllerConfig, request *http.Request,
) []mimetype.Candidate {
	if headerType := mimetype.FromHeader(request.Header); headerType != mimetype.UNKNOWN {
		return []mimetype.Candidate{{Type: headerType, Quality: 1.0}}
	}

	if config.Default != mimetype.UNKNOWN {
		return []mimetype.Candidate{{Type: config.Default, Quality: 0}}
	}

	return nil
}

// Picks the encode type for a response: the first candidate with a registered
// encoder wins; failing that the configured default is retried; failing that the
// request is not serveable.
func (controller *Controller) selectEncodeType(
	request *http.Request,
) (mimetype.MimeType, *resterrors.RestError) {
	candidates := ResponseCandidates(controller.config, request)

	for _, candidate := range candidates {
		if controller.engine.HandlesEncode(candidate.Type) {
			return candidate.Type, nil
		}
	}

	if controller.config.Default != mimetype.UNKNOWN &&
		controller.engine.HandlesEncode(controller.config.Default) {
		return controller.config.Default, nil
	}

	if len(candidates) == 0 {
		return mimetype.UNKNOWN, resterrors.NoAcceptableType.New(
			"no acceptable content type and no default configured",
			nil,
			nil,
		)
	}

	return mimetype.UNKNOWN, resterrors.UnsupportedMediaType.New(
		"no serializer for any acceptable content type",
		map[string]interface{}{"candidates": candidateTypes(candidates)},
		nil,
	)
}

// Picks the decode type for a request body, 415 when nothing matches.
func (controller *Controller) selectDecodeType(
	request *http.Request,
) (mimetype.MimeType, *resterrors.RestError) {
	candidates := RequestCandidates(controller.config, request)

	for _, candidate := range candidates {
		if controller.engine.HandlesDecode(candidate.Type) {
			return candidate.Type, nil
		}
	}

	return mimetype.UNKNOWN, resterrors.UnsupportedMediaType.New(
		"content type '"+request.Header.Get("Content-Type")+"' is not supported",
		map[string]interface{}{"candidates": candidateTypes(candidates)},
		nil,
	)
}

// Flattens a candidate list for error data.
func candidateTypes(candidates []mimetype.Candidate) []string {
	types := make([]string, len(candidates))
	for index, candidate := range candidates {
		types[index] = string(candidate.Type)
	}
	return types
}
