package rest

import (
	"net/http"
)

/*
Context is the request-scoped state threaded through the pipeline stages and
handlers. It owns the stash (where status helpers stage the response entity under
the controller's stash key), the deserialized request body, and the pending response
status.

A Context lives for exactly one request and is never shared between requests; the
only state it reads concurrently is the controller's immutable configuration. At
most one staged entity exists per request -- if several status helpers run, the last
write wins.
*/
type Context struct {
	Request *http.Request
	Writer  http.ResponseWriter

	controller *Controller

	stash   map[string]interface{}
	data    interface{}
	hasData bool
	status  int
}

func newContext(
	controller *Controller, writer http.ResponseWriter, request *http.Request,
) *Context {
	return &Context{
		Request:    request,
		Writer:     writer,
		controller: controller,
		stash:      make(map[string]interface{}),
	}
}

// The controller this request is being served by.
func (ctx *Context) Controller() *Controller {
	return ctx.controller
}

// Stash is the request-scoped scratch space. The staged response entity lives here
// under the controller's stash key; handlers are free to use other keys.
func (ctx *Context) Stash() map[string]interface{} {
	return ctx.stash
}

// Entity returns the currently staged response entity, if any.
func (ctx *Context) Entity() (entity interface{}, staged bool) {
	entity, staged = ctx.stash[ctx.controller.config.StashKey]
	return entity, staged
}

// Data returns the deserialized request body. present is false when the
// deserialize stage was skipped or the body was empty.
func (ctx *Context) Data() (data interface{}, present bool) {
	return ctx.data, ctx.hasData
}

// SetStatus sets the response status written by the serialize stage. Status helpers
// call this; handlers writing the response directly may too.
func (ctx *Context) SetStatus(status int) {
	ctx.status = status
}

// The pending response status, 0 if none has been set.
func (ctx *Context) Status() int {
	return ctx.status
}

// Stages entity for the serialize stage. Last write wins.
func (ctx *Context) stageEntity(entity interface{}) {
	ctx.stash[ctx.controller.config.StashKey] = entity
}

// Removes any staged entity, for no-content responses.
func (ctx *Context) clearEntity() {
	delete(ctx.stash, ctx.controller.config.StashKey)
}
