package rest

import (
	"bytes"
	"io"
	"net/http"

	"github.com/illuscio-dev/resttools-go/mimetype"
	"github.com/illuscio-dev/resttools-go/models"
	"github.com/illuscio-dev/resttools-go/resterrors"
)

// Pre-dispatch stage: decodes the request body into Context.Data for methods that
// conventionally carry one. Returns nil both on success and on skip.
func (ctx *Context) deserialize() *resterrors.RestError {
	controller := ctx.controller

	if !controller.deserializeMethods[ctx.Request.Method] {
		return nil
	}

	decodeType, restErr := controller.selectDecodeType(ctx.Request)
	if restErr != nil {
		return restErr
	}

	if ctx.Request.Body == nil {
		return nil
	}

	bodyBytes, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return resterrors.SerializationError.New(
			"error reading request body", nil, err,
		)
	}

	// Empty bodies never reach the serializer; Data stays absent.
	if len(bodyBytes) == 0 {
		return nil
	}

	var receiver interface{}
	err = controller.engine.Decode(decodeType, &receiver, bytes.NewReader(bodyBytes))
	if err != nil {
		return resterrors.SerializationError.New(
			"error decoding request body",
			map[string]interface{}{"content-type": string(decodeType)},
			err,
		)
	}

	ctx.data = receiver
	ctx.hasData = true

	return nil
}

// Post-dispatch stage: encodes the staged entity, if any, with a freshly resolved
// content type -- the response format may legitimately differ from the request's.
// With no staged entity the stage only flushes a pending status; a handler that
// wrote the response directly is left alone.
func (ctx *Context) serialize() *resterrors.RestError {
	entity, staged := ctx.Entity()
	if !staged {
		if ctx.status != 0 {
			ctx.Writer.WriteHeader(ctx.status)
		}
		return nil
	}

	encodeType, restErr := ctx.controller.selectEncodeType(ctx.Request)
	if restErr != nil {
		return restErr
	}

	// Encode to a buffer first so a serializer failure can still become a clean
	// error response.
	body := &bytes.Buffer{}
	if err := ctx.controller.engine.Encode(encodeType, entity, body); err != nil {
		return resterrors.SerializationError.New(
			"error encoding response entity",
			map[string]interface{}{"content-type": string(encodeType)},
			err,
		)
	}

	status := ctx.status
	if status == 0 {
		status = http.StatusOK
	}

	ctx.Writer.Header().Set("Content-Type", string(encodeType))
	ctx.Writer.WriteHeader(status)
	if _, err := ctx.Writer.Write(body.Bytes()); err != nil {
		return resterrors.SerializationError.New(
			"error writing response body", nil, err,
		)
	}

	return nil
}

// Terminal error translation: maps a RestError onto the response. Dynamic-status
// types fall back to 500. The error's identifying fields ride along as headers so
// clients can recover the full error object.
func (ctx *Context) writeError(restErr *resterrors.RestError) {
	status := restErr.HTTPCode()
	if status < 100 {
		status = http.StatusInternalServerError
	}

	_ = restErr.ToHeader(ctx.Writer.Header(), ctx.controller.engine)

	// Best-effort encoded body; a broken engine still gets a plain-text message
	// out.
	bodyType := ctx.controller.config.Default
	if bodyType == mimetype.UNKNOWN ||
		!ctx.controller.engine.HandlesEncode(bodyType) {
		bodyType = mimetype.JSON
	}

	body := &bytes.Buffer{}
	err := ctx.controller.engine.Encode(
		bodyType, &models.Error{Message: restErr.Message}, body,
	)
	if err != nil {
		ctx.Writer.Header().Set("Content-Type", string(mimetype.TEXT))
		ctx.Writer.WriteHeader(status)
		_, _ = io.WriteString(ctx.Writer, restErr.Message)
		return
	}

	ctx.Writer.Header().Set("Content-Type", string(bodyType))
	ctx.Writer.WriteHeader(status)
	_, _ = ctx.Writer.Write(body.Bytes())
}
