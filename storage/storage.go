package storage

import (
	"reflect"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// Database keeps the named records with their backups. The governance state
// can be derived again from the chain and the gossip network, so Database is
// not the source of truth; it makes the restart faster.
type Database interface {
	// Records returns the stored records of name, the newest first.
	Records(name string) ([][]byte, error)
	// Save stores new record of name and keeps maxBackups older records.
	Save(name string, b []byte, maxBackups int) error
	Close() error
}

func Encode(v interface{}) ([]byte, error) {
	return bson.Marshal(v)
}

// LoadOrDefault decodes the newest readable record of name into v; if the
// newest is broken, the backups are tried. v should be pointer. If nothing is
// readable, v is not touched and false is returned.
func LoadOrDefault(db Database, name string, v interface{}) (bool, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false, errors.Errorf("LoadOrDefault needs non-nil pointer, not %T", v)
	}

	records, err := db.Records(name)
	if err != nil {
		return false, WrapStorageError(err)
	}

	for i := range records {
		n := reflect.New(rv.Elem().Type())
		if err := bson.Unmarshal(records[i], n.Interface()); err != nil {
			continue
		}

		rv.Elem().Set(n.Elem())

		return true, nil
	}

	return false, nil
}
