package leveldbstorage

import (
	"encoding/binary"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/storage"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/logging"
	"github.com/syndtr/goleveldb/leveldb"
	leveldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbutil "github.com/syndtr/goleveldb/leveldb/util"
)

var keyPrefixRecord = []byte{0x00, 0x01}

// Database stores the records of name under the keys of
// "<prefix><name>0x00<8 bytes sequence>"; the bigger sequence is the newer.
type Database struct {
	sync.Mutex
	*logging.Logging
	db *leveldb.DB
}

func NewDatabase(db *leveldb.DB) *Database {
	return &Database{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "leveldb-database")
		}),
		db: db,
	}
}

func NewDatabaseFromPath(p string) (*Database, error) {
	db, err := leveldb.OpenFile(p, nil)
	if err != nil {
		return nil, wrapError(err)
	}

	return NewDatabase(db), nil
}

func NewMemDatabase() *Database {
	db, _ := leveldb.Open(leveldbStorage.NewMemStorage(), nil)

	return NewDatabase(db)
}

func (st *Database) Close() error {
	return wrapError(st.db.Close())
}

func (st *Database) Records(name string) ([][]byte, error) {
	var records [][]byte
	if err := st.iter(recordPrefix(name), func(_, value []byte) (bool, error) {
		records = append(records, value)

		return true, nil
	}, false); err != nil {
		return nil, err
	}

	return records, nil
}

func (st *Database) Save(name string, b []byte, maxBackups int) error {
	st.Lock()
	defer st.Unlock()

	var keys [][]byte
	if err := st.iter(recordPrefix(name), func(key, _ []byte) (bool, error) {
		keys = append(keys, key)

		return true, nil
	}, false); err != nil {
		return err
	}

	var seq uint64
	if len(keys) > 0 {
		last, err := sequenceFromKey(name, keys[0])
		if err != nil {
			return err
		}

		seq = last + 1
	}

	batch := &leveldb.Batch{}
	batch.Put(recordKey(name, seq), b)

	if maxBackups < 0 {
		maxBackups = 0
	}

	for i := maxBackups; i < len(keys); i++ {
		batch.Delete(keys[i])
	}

	return wrapError(st.db.Write(batch, nil))
}

func (st *Database) iter(
	prefix []byte,
	callback func([]byte /* key */, []byte /* value */) (bool, error),
	sort bool,
) error {
	iter := st.db.NewIterator(leveldbutil.BytesPrefix(prefix), nil)
	defer iter.Release()

	var seek func() bool
	var next func() bool
	if sort {
		seek = iter.First
		next = iter.Next
	} else {
		seek = iter.Last
		next = iter.Prev
	}

	if !seek() {
		return wrapError(iter.Error())
	}

	for {
		if keep, err := callback(util.CopyBytes(iter.Key()), util.CopyBytes(iter.Value())); err != nil {
			return err
		} else if !keep {
			break
		}

		if !next() {
			break
		}
	}

	return wrapError(iter.Error())
}

func recordPrefix(name string) []byte {
	return util.ConcatBytesSlice(keyPrefixRecord, []byte(name), []byte{0x00})
}

func recordKey(name string, seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)

	return util.ConcatBytesSlice(recordPrefix(name), b)
}

func sequenceFromKey(name string, key []byte) (uint64, error) {
	prefix := recordPrefix(name)
	if len(key) != len(prefix)+8 {
		return 0, storage.StorageError.Errorf("wrong record key, %q", key)
	}

	return binary.BigEndian.Uint64(key[len(prefix):]), nil
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if err == leveldbErrors.ErrNotFound { // nolint:errorlint
		return storage.NotFoundError.Wrap(err)
	}

	return storage.WrapStorageError(err)
}
