package ecs

// Logger is the minimal structured-logging surface the core needs. Its
// shape matches zap.SugaredLogger's *w (Debugw/Infow/Warnw/Errorw) exactly
// on purpose, so a *zap.SugaredLogger satisfies it directly with no
// adapter; see internal/zenlog for the concrete wiring. Keeping the
// interface here (rather than importing zap in this package) avoids tying
// the core to a specific logging library.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// NopLogger discards everything; used as the default when no logger is
// supplied to NewWorld/NewKernel.
type NopLogger struct{}

func (NopLogger) Debugw(string, ...any) {}
func (NopLogger) Infow(string, ...any)  {}
func (NopLogger) Warnw(string, ...any)  {}
func (NopLogger) Errorw(string, ...any) {}
