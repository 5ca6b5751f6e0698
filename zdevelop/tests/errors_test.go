package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which
// is the preferred method of using multiple asserts in a test.

import (
	"net/http"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/resttools-go/resterrors"
)

func TestNewErrorType(test *testing.T) {
	assert := assert.New(test)

	errorType := resterrors.NewRestErrorType("WidgetMissing", 3000, 404)

	assert.Equal("WidgetMissing", errorType.Name())
	assert.Equal(3000, errorType.APICode())
	assert.Equal(404, errorType.HTTPCode())
	assert.Equal("WidgetMissing (3000)", errorType.Error())
}

func TestWithHTTPCode(test *testing.T) {
	assert := assert.New(test)

	errorType := resterrors.NewRestErrorType("WidgetMissing", 3000, 404)
	altered := errorType.WithHTTPCode(410)

	assert.Equal(410, altered.HTTPCode())
	assert.Equal(errorType.Name(), altered.Name())
	assert.Equal(errorType.APICode(), altered.APICode())

	// The original is untouched.
	assert.Equal(404, errorType.HTTPCode())
}

func TestNewRestError(test *testing.T) {
	assert := assert.New(test)

	sourceErr := xerrors.New("db connection lost")
	restErr := resterrors.SerializationError.New(
		"could not encode widget",
		map[string]interface{}{"widget": "11"},
		sourceErr,
	)

	assert.Equal(
		"SerializationError (2002) - could not encode widget", restErr.Error(),
	)
	assert.Equal("could not encode widget", restErr.Message)
	assert.Equal("11", restErr.ErrorData["widget"])
	assert.NotEqual(uuid.Nil, restErr.ID)

	assert.True(restErr.Unwrap() == sourceErr)
	assert.True(xerrors.Is(restErr, sourceErr))
}

func TestIsType(test *testing.T) {
	assert := assert.New(test)

	restErr := resterrors.UnsupportedMediaType.New("bad type", nil, nil)

	assert.True(restErr.IsType(resterrors.UnsupportedMediaType))
	assert.False(restErr.IsType(resterrors.SerializationError))

	// Same type with a swapped http code still matches.
	assert.True(restErr.IsType(resterrors.UnsupportedMediaType.WithHTTPCode(400)))
}

func TestPanic(test *testing.T) {
	defer func() {
		recovered := recover()

		restErr, ok := recovered.(*resterrors.RestError)
		if !ok {
			test.Error("recovered value was not a RestError")
			return
		}

		assert.True(test, restErr.IsType(resterrors.MethodNotAllowed))
		assert.Equal(test, "no DELETE here", restErr.Message)
	}()

	resterrors.MethodNotAllowed.Panic("no DELETE here", nil, nil)
	test.Error("panic did not fire")
}

func TestLogMessage(test *testing.T) {
	assert := assert.New(test)

	sourceErr := xerrors.New("db connection lost")
	restErr := resterrors.SerializationError.New(
		"could not encode widget", nil, sourceErr,
	)

	logMessage := restErr.LogMessage()

	assert.Contains(logMessage, "could not encode widget")
	assert.Contains(logMessage, "db connection lost")
	assert.Contains(logMessage, "PANIC STACK")
}

func TestErrorHeadersRoundTrip(test *testing.T) {
	assert := assert.New(test)

	engine := createEngine(test)

	restErr := resterrors.UnsupportedMediaType.New(
		"content type 'text/csv' is not supported",
		map[string]interface{}{"candidates": "text/csv"},
		nil,
	)

	headers := make(http.Header)
	err := restErr.ToHeader(headers, engine)
	assert.Nil(err)

	assert.Equal("UnsupportedMediaType", headers.Get("error-name"))
	assert.Equal("2000", headers.Get("error-code"))
	assert.Equal(restErr.ID.String(), headers.Get("error-id"))

	loaded, hasError, err := resterrors.ErrorFromHeaders(
		headers, engine, resterrors.ErrorTypeCodeIndex,
	)

	assert.True(hasError)
	assert.Nil(err)
	assert.True(loaded.IsType(resterrors.UnsupportedMediaType))
	assert.Equal(restErr.Message, loaded.Message)
	assert.Equal(restErr.ID, loaded.ID)
	assert.Equal("text/csv", loaded.ErrorData["candidates"])
}

func TestErrorFromHeadersNoError(test *testing.T) {
	assert := assert.New(test)

	engine := createEngine(test)

	loaded, hasError, err := resterrors.ErrorFromHeaders(
		make(http.Header), engine, resterrors.ErrorTypeCodeIndex,
	)

	assert.Nil(loaded)
	assert.False(hasError)
	assert.EqualError(err, "no error in headers")
}

func TestErrorFromHeadersUnknownCode(test *testing.T) {
	assert := assert.New(test)

	engine := createEngine(test)

	headers := make(http.Header)
	headers.Set("error-code", "9999")

	loaded, hasError, err := resterrors.ErrorFromHeaders(
		headers, engine, resterrors.ErrorTypeCodeIndex,
	)

	assert.Nil(loaded)
	assert.True(hasError)
	assert.EqualError(err, "no known error for code 9999")
}

func TestErrorFromHeadersBadID(test *testing.T) {
	assert := assert.New(test)

	engine := createEngine(test)

	restErr := resterrors.SerializationError.New("boom", nil, nil)

	headers := make(http.Header)
	err := restErr.ToHeader(headers, engine)
	assert.Nil(err)

	headers.Set("error-id", "not-a-uuid")

	loaded, hasError, err := resterrors.ErrorFromHeaders(
		headers, engine, resterrors.ErrorTypeCodeIndex,
	)

	assert.Nil(loaded)
	assert.True(hasError)
	assert.EqualError(err, "error ID is not valid UUID")
}

func TestDefaultErrorIndex(test *testing.T) {
	assert := assert.New(test)

	assert.Len(resterrors.ErrorTypeCodeIndex, len(resterrors.ErrorList))
	for _, errorType := range resterrors.ErrorList {
		indexed, ok := resterrors.ErrorTypeCodeIndex[errorType.APICode()]
		assert.True(ok)
		assert.True(indexed == errorType)
	}
}
