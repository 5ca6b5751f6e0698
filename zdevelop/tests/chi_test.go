package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which
// is the preferred method of using multiple asserts in a test.

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/resttools-go/mimetype"
	"github.com/illuscio-dev/resttools-go/rest"
	"github.com/illuscio-dev/resttools-go/restchi"
)

func widgetController(test *testing.T) *rest.Controller {
	controller := testController(test, rest.ControllerConfig{})

	controller.Action("widgets").GET(func(ctx *rest.Context) {
		ctx.OK(map[string]interface{}{"name": "sprocket"})
	})
	controller.Action("gears").GET(func(ctx *rest.Context) {
		ctx.OK(map[string]interface{}{"name": "gear"})
	})

	return controller
}

func TestNewRouterServesActions(test *testing.T) {
	assert := assert.New(test)

	controller := widgetController(test)
	router := restchi.NewRouter(controller, "/api")

	req := httptest.NewRequest(http.MethodGet, "/api/widgets", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(http.StatusOK, recorder.Code)

	loaded := make(map[string]interface{})
	decodeBody(test, controller, recorder, mimetype.JSON, &loaded)
	assert.Equal("sprocket", loaded["name"])
}

// Trailing slashes are stripped before routing.
func TestNewRouterStripsSlashes(test *testing.T) {
	assert := assert.New(test)

	controller := widgetController(test)
	router := restchi.NewRouter(controller, "/api")

	req := httptest.NewRequest(http.MethodGet, "/api/gears/", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(http.StatusOK, recorder.Code)
}

// Method fallbacks stay with the action, not the router: an unimplemented method
// reaches the action and comes back 405 with an Allow header.
func TestMountedActionMethodFallback(test *testing.T) {
	assert := assert.New(test)

	controller := widgetController(test)
	router := restchi.NewRouter(controller, "/api")

	req := httptest.NewRequest(http.MethodDelete, "/api/widgets", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(http.StatusMethodNotAllowed, recorder.Code)
	assert.Equal("GET", recorder.Header().Get("Allow"))
}

func TestMountSingleAction(test *testing.T) {
	assert := assert.New(test)

	controller := widgetController(test)

	router := chi.NewRouter()
	restchi.Mount(router, "/standalone", controller.Action("widgets"))

	req := httptest.NewRequest(http.MethodGet, "/standalone", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(http.StatusOK, recorder.Code)
}

func TestMountControllerUnknownPathMisses(test *testing.T) {
	controller := widgetController(test)
	router := restchi.NewRouter(controller, "/api")

	req := httptest.NewRequest(http.MethodGet, "/api/bolts", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(test, http.StatusNotFound, recorder.Code)
}
