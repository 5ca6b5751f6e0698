package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which
// is the preferred method of using multiple asserts in a test.

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/resttools-go/mimetype"
	"github.com/illuscio-dev/resttools-go/rest"
)

// Serves a GET through a one-off action whose handler is the function under test.
func serveHelper(
	test *testing.T, handler rest.HandlerFunc,
) (*rest.Controller, *httptest.ResponseRecorder) {
	controller := testController(test, rest.ControllerConfig{})
	action := controller.Action("helper").GET(handler)

	req := httptest.NewRequest(http.MethodGet, "/helper", nil)
	return controller, serveAction(action, req)
}

func TestHelperOK(test *testing.T) {
	assert := assert.New(test)

	controller, recorder := serveHelper(test, func(ctx *rest.Context) {
		assert.True(ctx.OK(map[string]interface{}{"name": "sprocket"}))
	})

	assert.Equal(http.StatusOK, recorder.Code)

	loaded := make(map[string]interface{})
	decodeBody(test, controller, recorder, mimetype.JSON, &loaded)
	assert.Equal("sprocket", loaded["name"])
}

func TestHelperCreated(test *testing.T) {
	assert := assert.New(test)

	controller, recorder := serveHelper(test, func(ctx *rest.Context) {
		ctx.Created("/widgets/11", map[string]interface{}{"id": "11"})
	})

	assert.Equal(http.StatusCreated, recorder.Code)
	assert.Equal("/widgets/11", recorder.Header().Get("Location"))

	loaded := make(map[string]interface{})
	decodeBody(test, controller, recorder, mimetype.JSON, &loaded)
	assert.Equal("11", loaded["id"])
}

// Locations may be structured URI values with a string form, not just strings.
func TestHelperCreatedStringerLocation(test *testing.T) {
	assert := assert.New(test)

	location := &url.URL{Path: "/widgets/11"}

	_, recorder := serveHelper(test, func(ctx *rest.Context) {
		ctx.Created(location)
	})

	assert.Equal(http.StatusCreated, recorder.Code)
	assert.Equal("/widgets/11", recorder.Header().Get("Location"))
	// No entity staged, so no body.
	assert.Equal(0, recorder.Body.Len())
}

func TestHelperAccepted(test *testing.T) {
	assert := assert.New(test)

	controller, recorder := serveHelper(test, func(ctx *rest.Context) {
		ctx.Accepted(map[string]interface{}{"state": "queued"}, "/jobs/3")
	})

	assert.Equal(http.StatusAccepted, recorder.Code)
	assert.Equal("/jobs/3", recorder.Header().Get("Location"))

	loaded := make(map[string]interface{})
	decodeBody(test, controller, recorder, mimetype.JSON, &loaded)
	assert.Equal("queued", loaded["state"])
}

// NoContent discards anything staged earlier in the handler.
func TestHelperNoContent(test *testing.T) {
	assert := assert.New(test)

	_, recorder := serveHelper(test, func(ctx *rest.Context) {
		ctx.OK(map[string]interface{}{"name": "sprocket"})
		ctx.NoContent()
	})

	assert.Equal(http.StatusNoContent, recorder.Code)
	assert.Equal(0, recorder.Body.Len())
}

func TestHelperRedirects(test *testing.T) {
	type redirectCase struct {
		name   string
		invoke rest.HandlerFunc
		status int
	}

	entity := map[string]interface{}{"name": "sprocket"}

	cases := []redirectCase{
		{
			name: "multiple_choices",
			invoke: func(ctx *rest.Context) {
				ctx.MultipleChoices(entity, "/widgets/11")
			},
			status: http.StatusMultipleChoices,
		},
		{
			name: "moved",
			invoke: func(ctx *rest.Context) {
				ctx.Moved("/widgets/11")
			},
			status: http.StatusMovedPermanently,
		},
		{
			name: "found",
			invoke: func(ctx *rest.Context) {
				ctx.Found(entity, "/widgets/11")
			},
			status: http.StatusFound,
		},
		{
			name: "see_other",
			invoke: func(ctx *rest.Context) {
				ctx.SeeOther("/widgets/11", entity)
			},
			status: http.StatusSeeOther,
		},
	}

	for _, thisCase := range cases {
		runner := func(subTest *testing.T) {
			_, recorder := serveHelper(subTest, thisCase.invoke)

			assert.Equal(subTest, thisCase.status, recorder.Code)
			assert.Equal(
				subTest, "/widgets/11", recorder.Header().Get("Location"),
			)
		}
		test.Run(thisCase.name, runner)
	}
}

func TestHelperErrorMessages(test *testing.T) {
	type messageCase struct {
		name   string
		invoke func(ctx *rest.Context) bool
		status int
	}

	cases := []messageCase{
		{
			name: "bad_request",
			invoke: func(ctx *rest.Context) bool {
				return ctx.BadRequest("name is required")
			},
			status: http.StatusBadRequest,
		},
		{
			name: "forbidden",
			invoke: func(ctx *rest.Context) bool {
				return ctx.Forbidden("name is required")
			},
			status: http.StatusForbidden,
		},
		{
			name: "not_found",
			invoke: func(ctx *rest.Context) bool {
				return ctx.NotFound("name is required")
			},
			status: http.StatusNotFound,
		},
		{
			name: "gone",
			invoke: func(ctx *rest.Context) bool {
				return ctx.Gone("name is required")
			},
			status: http.StatusGone,
		},
	}

	for _, thisCase := range cases {
		runner := func(subTest *testing.T) {
			controller, recorder := serveHelper(
				subTest,
				func(ctx *rest.Context) {
					assert.True(subTest, thisCase.invoke(ctx))
				},
			)

			assert.Equal(subTest, thisCase.status, recorder.Code)

			loaded := make(map[string]interface{})
			decodeBody(subTest, controller, recorder, mimetype.JSON, &loaded)
			assert.Equal(subTest, "name is required", loaded["error"])
		}
		test.Run(thisCase.name, runner)
	}
}

// If several helpers stage an entity, the last one wins.
func TestHelperLastWriteWins(test *testing.T) {
	assert := assert.New(test)

	controller, recorder := serveHelper(test, func(ctx *rest.Context) {
		ctx.OK(map[string]interface{}{"name": "first"})
		ctx.OK(map[string]interface{}{"name": "second"})
	})

	assert.Equal(http.StatusOK, recorder.Code)

	loaded := make(map[string]interface{})
	decodeBody(test, controller, recorder, mimetype.JSON, &loaded)
	assert.Equal("second", loaded["name"])
}

// Misused helpers are programming errors and panic rather than producing an HTTP
// error response.
func TestHelperContractViolations(test *testing.T) {
	type violationCase struct {
		name   string
		invoke rest.HandlerFunc
	}

	entity := map[string]interface{}{"name": "sprocket"}

	cases := []violationCase{
		{
			name:   "nil entity",
			invoke: func(ctx *rest.Context) { ctx.OK(nil) },
		},
		{
			name:   "empty message",
			invoke: func(ctx *rest.Context) { ctx.BadRequest("") },
		},
		{
			name:   "empty location",
			invoke: func(ctx *rest.Context) { ctx.Created("") },
		},
		{
			name:   "bad location type",
			invoke: func(ctx *rest.Context) { ctx.Moved(11) },
		},
		{
			name: "too many entities",
			invoke: func(ctx *rest.Context) {
				ctx.Created("/widgets/11", entity, entity)
			},
		},
		{
			name: "too many locations",
			invoke: func(ctx *rest.Context) {
				ctx.Accepted(entity, "/jobs/3", "/jobs/4")
			},
		},
	}

	for _, thisCase := range cases {
		runner := func(subTest *testing.T) {
			controller := testController(subTest, rest.ControllerConfig{})
			action := controller.Action("helper").GET(thisCase.invoke)

			req := httptest.NewRequest(http.MethodGet, "/helper", nil)

			assert.Panics(subTest, func() {
				action.ServeHTTP(httptest.NewRecorder(), req)
			})
		}
		test.Run(thisCase.name, runner)
	}
}
