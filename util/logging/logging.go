package logging

import "github.com/rs/zerolog"

type SetLogging interface {
	SetLogging(*Logging) *Logging
}

// Logging is embedded into services. The context function is applied every
// time a new logger is set, so the module fields survive SetLogger.
type Logging struct {
	l    zerolog.Logger
	orig zerolog.Logger
	f    func(zerolog.Context) zerolog.Context
}

func NewLogging(f func(zerolog.Context) zerolog.Context) *Logging {
	nop := zerolog.Nop()
	return &Logging{
		l:    nop,
		orig: nop,
		f:    f,
	}
}

// NewModuleLogging is the usual shortcut, it sets "module" field.
func NewModuleLogging(module string) *Logging {
	return NewLogging(func(c zerolog.Context) zerolog.Context {
		return c.Str("module", module)
	})
}

func (lg *Logging) Log() *zerolog.Logger {
	return &lg.l
}

func (lg *Logging) SetLogger(l zerolog.Logger) *Logging {
	lg.orig = l
	if lg.f != nil {
		lg.l = lg.f(lg.orig.With()).Logger()
	} else {
		lg.l = l
	}

	return lg
}

func (lg *Logging) SetLogging(l *Logging) *Logging {
	return lg.SetLogger(l.orig)
}

func (lg *Logging) IsTraceLog() bool {
	return lg.l.GetLevel() == zerolog.TraceLevel
}
