// Mounting helpers for serving rest controllers from a go-chi router.
package restchi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/illuscio-dev/resttools-go/rest"
)

// Mount registers an action at pattern for all HTTP methods, leaving method
// dispatch (including the 405 / 200-OPTIONS fallbacks) to the action itself rather
// than the router.
func Mount(router chi.Router, pattern string, action *rest.Action) {
	router.Handle(pattern, action)
}

// MountController mounts every named action of controller under base, at
// base/<action-name>.
func MountController(router chi.Router, base string, controller *rest.Controller) {
	router.Route(base, func(sub chi.Router) {
		for name, action := range controller.Actions() {
			sub.Handle("/"+name, action)
		}
	})
}

// NewRouter builds a chi router with controller mounted under base.
func NewRouter(controller *rest.Controller, base string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	MountController(router, base, controller)
	return router
}
