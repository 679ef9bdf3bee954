package util

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/util/logging"
)

var (
	DaemonAlreadyStartedError = NewError("daemon already started")
	DaemonAlreadyStoppedError = NewError("daemon already stopped")
)

type Daemon interface {
	Start() error
	Stop() error
}

// FunctionDaemon runs fn in background; fn must return when stop channel is
// closed.
type FunctionDaemon struct {
	sync.RWMutex
	*logging.Logging
	fn       func(chan struct{}) error
	stopChan chan struct{}
	done     chan struct{}
}

func NewFunctionDaemon(fn func(chan struct{}) error) *FunctionDaemon {
	return &FunctionDaemon{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "function-daemon")
		}),
		fn: fn,
	}
}

func (dm *FunctionDaemon) IsStarted() bool {
	dm.RLock()
	defer dm.RUnlock()

	return dm.stopChan != nil
}

// Done is closed when fn returns. It is nil when the daemon is not running.
func (dm *FunctionDaemon) Done() <-chan struct{} {
	dm.RLock()
	defer dm.RUnlock()

	if dm.done == nil {
		return nil
	}

	return dm.done
}

func (dm *FunctionDaemon) Start() error {
	dm.Lock()
	defer dm.Unlock()

	if dm.stopChan != nil {
		return DaemonAlreadyStartedError.Call()
	}

	dm.stopChan = make(chan struct{})
	dm.done = make(chan struct{})

	go func(stopChan, done chan struct{}) {
		defer close(done)

		if err := dm.fn(stopChan); err != nil {
			dm.Log().Error().Err(err).Msg("occurred in daemon function")
		}
	}(dm.stopChan, dm.done)

	return nil
}

// Stop waits until fn returns.
func (dm *FunctionDaemon) Stop() error {
	dm.Lock()
	defer dm.Unlock()

	if dm.stopChan == nil {
		return DaemonAlreadyStoppedError.Call()
	}

	close(dm.stopChan)
	<-dm.done

	dm.stopChan = nil
	dm.done = nil

	return nil
}
