package rest

import (
	"strings"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/resttools-go/encoding"
)

/*
Controller binds an effective ControllerConfig to a content engine and owns a set of
named Actions. Configuration is frozen at construction: after NewController returns,
the controller holds no mutable state shared between requests, so one controller
serves any number of concurrent requests.
*/
type Controller struct {
	config ControllerConfig
	engine encoding.ContentEngine

	// Uppercased set built from config.DeserializeMethods.
	deserializeMethods map[string]bool

	actions map[string]*Action
}

// NewController layers config over DefaultConfig, builds a content engine with the
// effective TypeMap applied, and returns the frozen controller.
func NewController(config ControllerConfig) (*Controller, error) {
	effective := DefaultConfig().Merge(config)

	engine, err := encoding.NewContentEngine(false)
	if err != nil {
		return nil, xerrors.Errorf("error creating content engine: %w", err)
	}

	if effective.Map != nil {
		if err := effective.Map.Apply(engine); err != nil {
			return nil, xerrors.Errorf("error applying type map: %w", err)
		}
	}

	deserializeMethods := make(map[string]bool, len(effective.DeserializeMethods))
	for _, method := range effective.DeserializeMethods {
		deserializeMethods[strings.ToUpper(method)] = true
	}

	controller := &Controller{
		config:             effective,
		engine:             engine,
		deserializeMethods: deserializeMethods,
		actions:            make(map[string]*Action),
	}

	return controller, nil
}

// The effective configuration this controller was built with.
func (controller *Controller) Config() ControllerConfig {
	return controller.config
}

// The content engine serializers are resolved against.
func (controller *Controller) Engine() encoding.ContentEngine {
	return controller.engine
}

// Action returns the named action, creating it on first use. Handler registration
// on actions is expected to happen at setup time, before requests are served.
func (controller *Controller) Action(name string) *Action {
	action, ok := controller.actions[name]
	if !ok {
		action = &Action{
			controller: controller,
			name:       name,
			handlers:   make(map[string]HandlerFunc),
		}
		controller.actions[name] = action
	}
	return action
}

// Actions returns a snapshot of the controller's named actions, for mounting on a
// router.
func (controller *Controller) Actions() map[string]*Action {
	snapshot := make(map[string]*Action, len(controller.actions))
	for name, action := range controller.actions {
		snapshot[name] = action
	}
	return snapshot
}
