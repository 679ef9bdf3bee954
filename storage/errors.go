package storage

import (
	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/util"
)

var (
	NotFoundError = util.NewError("not found")
	StorageError  = util.NewError("storage error")
	TimeoutError  = util.NewError("timeout")
)

func WrapStorageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, NotFoundError),
		errors.Is(err, TimeoutError),
		errors.Is(err, StorageError):
		return err
	default:
		return StorageError.Wrap(err)
	}
}
