package dao

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/storage"
	leveldbstorage "github.com/spikeekips/mitum-dao/storage/leveldb"
	mongodbstorage "github.com/spikeekips/mitum-dao/storage/mongodb"
)

// NewDatabaseFromURI opens the database by the scheme of uri; "memory://",
// "leveldb://<path>" and "mongodb://..." are supported.
func NewDatabaseFromURI(uri string) (storage.Database, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid storage uri, %q", uri)
	}

	switch strings.ToLower(u.Scheme) {
	case "memory":
		return leveldbstorage.NewMemDatabase(), nil
	case "leveldb":
		p := strings.TrimPrefix(strings.TrimSpace(uri), u.Scheme+"://")
		if len(p) < 1 {
			return nil, errors.Errorf("empty path of leveldb storage uri, %q", uri)
		}

		db, err := leveldbstorage.NewDatabaseFromPath(p)
		if err != nil {
			return nil, err
		}

		return db, nil
	case "mongodb", "mongodb+srv":
		db, err := mongodbstorage.NewDatabaseFromURI(uri)
		if err != nil {
			return nil, err
		}

		return db, nil
	default:
		return nil, errors.Errorf("not supported storage uri, %q", uri)
	}
}
