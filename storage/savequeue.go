package storage

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/logging"
)

// SaveQueue writes the snapshot of state in background. QueueSave never
// blocks; the queued requests are coalesced into one write of the latest
// snapshot.
type SaveQueue struct {
	*logging.Logging
	*util.FunctionDaemon
	db         Database
	name       string
	maxBackups int
	snapshot   func() interface{}
	queued     chan struct{}
	flushing   chan chan error
}

func NewSaveQueue(db Database, name string, maxBackups int, snapshot func() interface{}) *SaveQueue {
	sq := &SaveQueue{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "save-queue").Str("name", name)
		}),
		db:         db,
		name:       name,
		maxBackups: maxBackups,
		snapshot:   snapshot,
		queued:     make(chan struct{}, 1),
		flushing:   make(chan chan error),
	}

	sq.FunctionDaemon = util.NewFunctionDaemon(sq.start)

	return sq
}

func (sq *SaveQueue) SetLogging(l *logging.Logging) *logging.Logging {
	_ = sq.FunctionDaemon.SetLogging(l)

	return sq.Logging.SetLogging(l)
}

func (sq *SaveQueue) Name() string {
	return sq.name
}

func (sq *SaveQueue) QueueSave() {
	select {
	case sq.queued <- struct{}{}:
	default:
	}
}

// Flush writes the current snapshot and waits for it. Flush returns
// util.DaemonAlreadyStoppedError when the queue is stopped before the flush is
// handled.
func (sq *SaveQueue) Flush() error {
	done := sq.FunctionDaemon.Done()
	if done == nil {
		return util.DaemonAlreadyStoppedError.Errorf("save queue not running")
	}

	ch := make(chan error, 1)

	select {
	case <-done:
		return util.DaemonAlreadyStoppedError.Errorf("save queue stopped")
	case sq.flushing <- ch:
	}

	select {
	case err := <-ch:
		return err
	case <-done:
		select {
		case err := <-ch:
			return err
		default:
			return util.DaemonAlreadyStoppedError.Errorf("save queue stopped")
		}
	}
}

// Stop writes the pending snapshot before stopping.
func (sq *SaveQueue) Stop() error {
	return sq.FunctionDaemon.Stop()
}

func (sq *SaveQueue) start(stopChan chan struct{}) error {
	for {
		select {
		case <-stopChan:
			select {
			case <-sq.queued:
				return sq.save()
			default:
				return nil
			}
		case <-sq.queued:
			if err := sq.save(); err != nil {
				sq.Log().Error().Err(err).Msg("failed to save")
			}
		case ch := <-sq.flushing:
			select {
			case <-sq.queued:
			default:
			}

			ch <- sq.save()
		}
	}
}

func (sq *SaveQueue) save() error {
	b, err := Encode(sq.snapshot())
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}

	if err := sq.db.Save(sq.name, b, sq.maxBackups); err != nil {
		return WrapStorageError(err)
	}

	sq.Log().Trace().Int("size", len(b)).Msg("saved")

	return nil
}
