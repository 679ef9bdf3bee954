package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/util/cache"
)

var (
	DefaultStorageURI = "leveldb://./dao-data"
	DefaultHashCache  = fmt.Sprintf(
		"gcache:?type=%s&size=%d&expire=%s",
		cache.DefaultGCacheType,
		cache.DefaultGCacheSize,
		cache.DefaultCacheExpire.String(),
	)
	DefaultMaxBackups = 20
)

// Storage keeps the uris as given; url.URL.String() of "memory://" drops the
// slashes.
type Storage struct {
	uri        string
	hashCache  string
	maxBackups int
}

func (no Storage) URI() string {
	return no.uri
}

func (no *Storage) SetURI(s string) error {
	s = strings.TrimSpace(s)
	if _, err := ParseURLString(s, false); err != nil {
		return err
	}

	no.uri = s

	return nil
}

func (no Storage) HashCache() string {
	return no.hashCache
}

func (no *Storage) SetHashCache(s string) error {
	s = strings.TrimSpace(s)
	if _, err := ParseURLString(s, false); err != nil {
		return err
	}

	if _, err := cache.NewCacheFromURI(s); err != nil {
		return err
	}

	no.hashCache = s

	return nil
}

func (no Storage) MaxBackups() int {
	return no.maxBackups
}

func (no *Storage) SetMaxBackups(i int) error {
	if i < 1 {
		return errors.Errorf("max backups should be over 0, %d", i)
	}

	no.maxBackups = i

	return nil
}
