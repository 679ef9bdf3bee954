package util

import (
	"github.com/rs/zerolog"
)

// DevEnv carries the developer mode switch. It is passed to each component at
// construction instead of being read from a global.
type DevEnv struct {
	devMode bool
}

func NewDevEnv(devMode bool) DevEnv {
	return DevEnv{devMode: devMode}
}

func (de DevEnv) IsDevMode() bool {
	return de.devMode
}

// ProtocolViolation logs the violation and, only in developer mode, returns it
// as error. In production the anomaly is logged and ignored.
func (de DevEnv) ProtocolViolation(l *zerolog.Logger, s string, a ...interface{}) error {
	err := ProtocolViolationError.Errorf(s, a...)

	l.Error().Err(err).Bool("dev_mode", de.devMode).Msg("protocol violation")

	if de.devMode {
		return err
	}

	return nil
}
