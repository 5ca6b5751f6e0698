package models

import "github.com/illuscio-dev/resttools-go/resterrors"

// Alias to resterrors.RestErrorType
type RestErrorType = resterrors.RestErrorType

// Alias to resterrors.RestError
type RestError = resterrors.RestError

// Error is the wire body staged by the message-based status helpers (bad_request,
// forbidden, not_found, gone). It serializes as {"error": <message>} in every
// object format.
type Error struct {
	Message string `json:"error" codec:"error" yaml:"error" bson:"error"`
}
