package rest

import (
	"net/http"
	"sort"
	"strings"

	"github.com/illuscio-dev/resttools-go/resterrors"
)

// HandlerFunc is a per-method action handler. Handlers respond through the status
// helpers on Context (or by writing to Context.Writer directly, in which case the
// serialize stage stays out of the way).
type HandlerFunc func(ctx *Context)

/*
Action maps HTTP methods to handlers: handlers are registered per method in a static
table at setup time, and dispatch is a pure function of the request method and that
table. When no handler matches:

• OPTIONS requests get a 200 with an Allow header listing implemented methods and
an empty body.

• Any other method invokes the NotImplemented handler when one is registered, and
otherwise gets a 405 with the same Allow header.

Action implements http.Handler, so it can be mounted on any router.
*/
type Action struct {
	controller *Controller
	name       string

	handlers       map[string]HandlerFunc
	notImplemented HandlerFunc
}

// The action's name, as used for routing and error messages.
func (action *Action) Name() string {
	return action.name
}

// Method registers handler for an HTTP method. Registration is setup-time only.
func (action *Action) Method(method string, handler HandlerFunc) *Action {
	action.handlers[strings.ToUpper(method)] = handler
	return action
}

func (action *Action) GET(handler HandlerFunc) *Action {
	return action.Method(http.MethodGet, handler)
}

func (action *Action) POST(handler HandlerFunc) *Action {
	return action.Method(http.MethodPost, handler)
}

func (action *Action) PUT(handler HandlerFunc) *Action {
	return action.Method(http.MethodPut, handler)
}

func (action *Action) DELETE(handler HandlerFunc) *Action {
	return action.Method(http.MethodDelete, handler)
}

func (action *Action) PATCH(handler HandlerFunc) *Action {
	return action.Method(http.MethodPatch, handler)
}

func (action *Action) HEAD(handler HandlerFunc) *Action {
	return action.Method(http.MethodHead, handler)
}

func (action *Action) OPTIONS(handler HandlerFunc) *Action {
	return action.Method(http.MethodOptions, handler)
}

// NotImplemented registers the fallback handler invoked for methods with no
// registered handler (other than OPTIONS, which has fixed fallback behavior).
func (action *Action) NotImplemented(handler HandlerFunc) *Action {
	action.notImplemented = handler
	return action
}

// Allowed lists the methods this action implements, sorted for deterministic Allow
// headers.
func (action *Action) Allowed() []string {
	allowed := make([]string, 0, len(action.handlers))
	for method := range action.handlers {
		allowed = append(allowed, method)
	}
	sort.Strings(allowed)
	return allowed
}

/*
ServeHTTP runs the full pipeline for one request: deserialize stage, method
dispatch, serialize stage. Pipeline failures are translated onto the response
through the resterrors types. RestErrors panicked by handlers (the
RestErrorType.Panic idiom) are recovered and translated the same way -- except
ContractViolation, which marks broken server code and is re-panicked for the
transport layer to surface.
*/
func (action *Action) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	ctx := newContext(action.controller, writer, request)

	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		restErr, ok := recovered.(*resterrors.RestError)
		if !ok || restErr.IsType(resterrors.ContractViolation) {
			panic(recovered)
		}

		ctx.writeError(restErr)
	}()

	if restErr := ctx.deserialize(); restErr != nil {
		ctx.writeError(restErr)
		return
	}

	action.dispatch(ctx)

	if restErr := ctx.serialize(); restErr != nil {
		ctx.writeError(restErr)
	}
}

// One-shot method resolution: invoke the matching handler, or produce the
// OPTIONS / 405 fallback.
func (action *Action) dispatch(ctx *Context) {
	handler, ok := action.handlers[ctx.Request.Method]
	if ok {
		handler(ctx)
		return
	}

	allowHeader := strings.Join(action.Allowed(), ", ")

	if ctx.Request.Method == http.MethodOptions {
		ctx.Writer.Header().Set("Allow", allowHeader)
		ctx.SetStatus(http.StatusOK)
		ctx.clearEntity()
		return
	}

	if action.notImplemented != nil {
		action.notImplemented(ctx)
		return
	}

	ctx.Writer.Header().Set("Allow", allowHeader)
	ctx.writeError(resterrors.MethodNotAllowed.New(
		"method "+ctx.Request.Method+" not implemented for action "+action.name,
		map[string]interface{}{"allowed": action.Allowed()},
		nil,
	))
}
