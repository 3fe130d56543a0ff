// Package zenlog wires github.com/zenecs/zenecs/internal/ecs.Logger to
// go.uber.org/zap's SugaredLogger. The core's Logger interface is shaped to
// match SugaredLogger's *w methods exactly, so no adapter type is needed
// here; this package only owns construction and process-level config
// (development vs. production encoding, log level), keeping ecs-package
// internals free of any concrete third-party logging import.
package zenlog

import "go.uber.org/zap"

// New builds a zap.SugaredLogger suitable for the ecs.Logger interface.
// development selects zap's human-readable console encoding and debug
// level; false selects the JSON production encoder.
func New(development bool) (*zap.SugaredLogger, func() error, error) {
	var base *zap.Logger
	var err error
	if development {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, err
	}
	sugared := base.Sugar()
	return sugared, base.Sync, nil
}

// NewNop returns a logger that discards everything, for tests and other
// call sites that want the real zap method set without configuring an
// actual sink.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
