package resterrors

// No serializer resolves for the content type required to read or write a payload.
// Surfaced as HTTP 415, never retried.
var UnsupportedMediaType = NewRestErrorType(
	"UnsupportedMediaType",
	2000,
	415,
)

// Accept-header resolution found no match and no default type is configured.
// Treated identically to UnsupportedMediaType.
var NoAcceptableType = NewRestErrorType(
	"NoAcceptableType",
	2001,
	415,
)

// A serializer raised an internal failure (malformed payload, shape mismatch).
var SerializationError = NewRestErrorType(
	"SerializationError",
	2002,
	500,
)

// A status helper was invoked with missing or invalid-typed arguments. This is a
// programming error, not a runtime client error: it is panicked, not converted to
// an HTTP response by the helpers.
var ContractViolation = NewRestErrorType(
	"ContractViolation",
	2003,
	-1,
)

// Action does not implement the request's HTTP method (GET, POST, PUT, etc.)
var MethodNotAllowed = NewRestErrorType(
	"MethodNotAllowed",
	2004,
	405,
)

// List of default RestError definitions.
var ErrorList = [5]*RestErrorType{
	UnsupportedMediaType,
	NoAcceptableType,
	SerializationError,
	ContractViolation,
	MethodNotAllowed,
}

// Used to make ErrorTypeCodeIndex.
func makeDefaultErrorCodeIndex() map[int]*RestErrorType {
	index := make(map[int]*RestErrorType)
	for _, errorType := range ErrorList {
		index[errorType.apiCode] = errorType
	}
	return index
}

// APICode:*RestErrorType indexing of default errors.
var ErrorTypeCodeIndex = makeDefaultErrorCodeIndex()
