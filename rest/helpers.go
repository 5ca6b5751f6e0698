package rest

import (
	"fmt"
	"net/http"

	"github.com/illuscio-dev/resttools-go/models"
	"github.com/illuscio-dev/resttools-go/resterrors"
)

/*
Status helpers. Each helper validates its arguments strictly, sets the response
status, optionally sets a Location header, and stages an entity for the serialize
stage. Helpers return true for well-formed arguments and never fail at runtime;
missing or invalid-typed arguments are caller contract violations and panic a
resterrors.ContractViolation error immediately rather than being converted into an
HTTP response -- they mean the server-side code itself is broken.

Entity-and-location helpers take their optional argument variadically:

	ctx.Created("/widgets/11", widget)
	ctx.Created(locationURL)

Location values may be strings or anything implementing fmt.Stringer, such as a
*url.URL.
*/

// OK stages entity with a 200 status.
func (ctx *Context) OK(entity interface{}) bool {
	requireEntity("ok", entity)

	ctx.status = http.StatusOK
	ctx.stageEntity(entity)
	return true
}

// Created sets a 201 status and the Location header; entity is optional.
func (ctx *Context) Created(location interface{}, entity ...interface{}) bool {
	ctx.setLocation("created", location)
	ctx.status = http.StatusCreated
	ctx.stageOptional("created", entity)
	return true
}

// Accepted stages entity with a 202 status; location is optional.
func (ctx *Context) Accepted(entity interface{}, location ...interface{}) bool {
	requireEntity("accepted", entity)
	ctx.setOptionalLocation("accepted", location)

	ctx.status = http.StatusAccepted
	ctx.stageEntity(entity)
	return true
}

// NoContent sets a 204 status and clears any staged entity.
func (ctx *Context) NoContent() bool {
	ctx.status = http.StatusNoContent
	ctx.clearEntity()
	return true
}

// MultipleChoices stages entity with a 300 status; location is optional.
func (ctx *Context) MultipleChoices(
	entity interface{}, location ...interface{},
) bool {
	requireEntity("multiple_choices", entity)
	ctx.setOptionalLocation("multiple_choices", location)

	ctx.status = http.StatusMultipleChoices
	ctx.stageEntity(entity)
	return true
}

// Moved sets a 301 status and the Location header; entity is optional.
func (ctx *Context) Moved(location interface{}, entity ...interface{}) bool {
	ctx.setLocation("moved", location)
	ctx.status = http.StatusMovedPermanently
	ctx.stageOptional("moved", entity)
	return true
}

// Found stages entity with a 302 status; location is optional.
func (ctx *Context) Found(entity interface{}, location ...interface{}) bool {
	requireEntity("found", entity)
	ctx.setOptionalLocation("found", location)

	ctx.status = http.StatusFound
	ctx.stageEntity(entity)
	return true
}

// SeeOther sets a 303 status and the Location header; entity is optional.
func (ctx *Context) SeeOther(location interface{}, entity ...interface{}) bool {
	ctx.setLocation("see_other", location)
	ctx.status = http.StatusSeeOther
	ctx.stageOptional("see_other", entity)
	return true
}

// BadRequest stages an {error: message} entity with a 400 status.
func (ctx *Context) BadRequest(message string) bool {
	return ctx.stageMessage("bad_request", http.StatusBadRequest, message)
}

// Forbidden stages an {error: message} entity with a 403 status.
func (ctx *Context) Forbidden(message string) bool {
	return ctx.stageMessage("forbidden", http.StatusForbidden, message)
}

// NotFound stages an {error: message} entity with a 404 status.
func (ctx *Context) NotFound(message string) bool {
	return ctx.stageMessage("not_found", http.StatusNotFound, message)
}

// Gone stages an {error: message} entity with a 410 status.
func (ctx *Context) Gone(message string) bool {
	return ctx.stageMessage("gone", http.StatusGone, message)
}

// Shared tail of the message-based helpers.
func (ctx *Context) stageMessage(operation string, status int, message string) bool {
	if message == "" {
		resterrors.ContractViolation.Panic(
			operation+" requires a non-empty message",
			map[string]interface{}{"operation": operation},
			nil,
		)
	}

	ctx.status = status
	ctx.stageEntity(&models.Error{Message: message})
	return true
}

// Stages the optional trailing entity argument of a location-first helper. More
// than one entity is a contract violation.
func (ctx *Context) stageOptional(operation string, entity []interface{}) {
	switch len(entity) {
	case 0:
	case 1:
		requireEntity(operation, entity[0])
		ctx.stageEntity(entity[0])
	default:
		resterrors.ContractViolation.Panic(
			operation+" accepts at most one entity",
			map[string]interface{}{"operation": operation, "count": len(entity)},
			nil,
		)
	}
}

// Sets the optional trailing location argument of an entity-first helper.
func (ctx *Context) setOptionalLocation(operation string, location []interface{}) {
	switch len(location) {
	case 0:
	case 1:
		ctx.setLocation(operation, location[0])
	default:
		resterrors.ContractViolation.Panic(
			operation+" accepts at most one location",
			map[string]interface{}{"operation": operation, "count": len(location)},
			nil,
		)
	}
}

// Coerces location to its string form and sets the Location header.
func (ctx *Context) setLocation(operation string, location interface{}) {
	ctx.Writer.Header().Set("Location", coerceLocation(operation, location))
}

// A location may be a plain string or a structured URI value with a string form
// (fmt.Stringer, e.g. *url.URL). Anything else is a contract violation.
func coerceLocation(operation string, location interface{}) string {
	var locationStr string

	switch value := location.(type) {
	case string:
		locationStr = value
	case fmt.Stringer:
		locationStr = value.String()
	default:
		resterrors.ContractViolation.Panic(
			operation+" location must be a string or fmt.Stringer",
			map[string]interface{}{"operation": operation},
			nil,
		)
	}

	if locationStr == "" {
		resterrors.ContractViolation.Panic(
			operation+" requires a non-empty location",
			map[string]interface{}{"operation": operation},
			nil,
		)
	}

	return locationStr
}

// Nil entities are contract violations for helpers whose entity is required.
func requireEntity(operation string, entity interface{}) {
	if entity == nil {
		resterrors.ContractViolation.Panic(
			operation+" requires an entity",
			map[string]interface{}{"operation": operation},
			nil,
		)
	}
}
