package resterrors

import (
	"bytes"
	"fmt"
	"runtime/debug"
	"strconv"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/resttools-go/encoding"
	"github.com/illuscio-dev/resttools-go/mimetype"
)

// Interface for object that can set header information.
type headerSetter interface {
	Set(key string, value string)
}

/*
RestErrorType defines a TYPE of error that CAN be returned by the pipeline or by app
code built on it. Each RestErrorType should have a unique Name and APICode.

Codes 2000-2999 are reserved for the pipeline's default error definitions.

Since types are declared as pointers, to protect against accidental mutation of the
error type by other packages, the underlying fields of this struct are private and
accessed through functions. Define new error types using NewRestErrorType().
*/
type RestErrorType struct {
	// Unique human-readable name of the error type.
	name string

	// Unique number to identify the error type.
	apiCode int

	// HTTP code that should be returned when this error type is returned. Set to -1
	// if the http code is determined dynamically.
	httpCode int
}

// Returns a new error instance to be returned by a handler or panicked.
func (errorType *RestErrorType) New(
	message string,
	errorData map[string]interface{},
	source error,
) *RestError {
	restError := RestError{
		RestErrorType: errorType,
		Message:       message,
		ID:            uuid.NewV4(),
		ErrorData:     errorData,
		sourceErr:     source,
		sourceStack:   debug.Stack(),
		frame:         xerrors.Caller(0),
	}
	return &restError
}

/*
Creates a new error that is immediately passed to a panic. Expected to be recovered
by the pipeline's error translation. Allows errors to be generated from anywhere
inside a handler without explicitly passing them up a chain of nested function
returns.
*/
func (errorType *RestErrorType) Panic(
	message string,
	errorData map[string]interface{},
	source error,
) {
	restError := errorType.New(message, errorData, source)
	panic(restError)
}

// Unique human-readable name of the error type.
func (errorType *RestErrorType) Name() string {
	return errorType.name
}

// Unique number to identify the error type.
func (errorType *RestErrorType) APICode() int {
	return errorType.apiCode
}

// HTTP code that should be returned when this error type is returned. Set to -1
// if the http code is determined dynamically.
func (errorType *RestErrorType) HTTPCode() int {
	return errorType.httpCode
}

// Returns a copy of the error type with the given http code replaced.
func (errorType *RestErrorType) WithHTTPCode(newHTTPCode int) *RestErrorType {
	return &RestErrorType{
		name:     errorType.name,
		apiCode:  errorType.apiCode,
		httpCode: newHTTPCode,
	}
}

// Allows the error type definition itself to also be a valid error for things like
// testing error equality.
func (errorType *RestErrorType) Error() string {
	return errorType.name +
		" (" + strconv.Itoa(errorType.apiCode) + ")"
}

// Used to return a specific error instance.
type RestError struct {
	// The type of error we are returning.
	*RestErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error being returned.
	ID uuid.UUID

	// A string / any mapping of data related to the error.
	ErrorData map[string]interface{}

	// If this error was returned because of another error, the original error is
	// stored here.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType. Some
// errors may have multiple http codes possible, so we can't just compare type field
// equality directly.
func (restError *RestError) IsType(errorType *RestErrorType) bool {
	return restError.RestErrorType.Error() == errorType.Error()
}

// Error string to conform to builtin error interface.
func (restError *RestError) Error() string {
	return restError.RestErrorType.Error() + " - " + restError.Message
}

// Implements xerrors.Wrapper interface.
func (restError *RestError) Unwrap() error {
	return restError.sourceErr
}

// More verbose error message that includes a debug.Stack() and source error
// information. This is not part of the Error(), Message, or ErrorData by default
// since it may contain sensitive information that is not desirable to return to the
// client.
func (restError *RestError) LogMessage() string {
	loggerMessage := fmt.Sprint(
		"\nMESSAGE: ",
		restError.Error(),
		"\nORIGINAL: ",
		restError.sourceErr,
		"\nPANIC STACK:\n",
		string(restError.sourceStack),
	)
	return loggerMessage
}

// Writes error to an object which implements a Set(key string, value string) method
// like http.Header.
func (restError *RestError) ToHeader(
	setter headerSetter, dataEngine encoding.ContentEngine,
) error {
	setter.Set("error-name", restError.name)
	setter.Set("error-code", strconv.Itoa(restError.apiCode))
	setter.Set("error-message", restError.Message)
	setter.Set("error-id", restError.ID.String())

	if restError.ErrorData != nil {
		dataBytes := bytes.Buffer{}
		err := dataEngine.Encode(mimetype.JSON, restError.ErrorData, &dataBytes)
		if err != nil {
			return err
		}
		setter.Set("error-data", dataBytes.String())
	}

	return nil
}
