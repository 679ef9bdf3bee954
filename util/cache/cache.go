package cache

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
)

var DefaultCacheExpire = time.Hour

// Cache only memoises values derivable from immutable inputs; a miss must
// always be recoverable by recomputation.
type Cache interface {
	Get(interface{}) (interface{}, bool)
	Set(interface{}, interface{}) error
	Purge()
}

func NewCacheFromURI(uri string) (Cache, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid uri of cache, %q", uri)
	}

	switch {
	case u.Scheme == "gcache":
		return NewGCacheWithQuery(u.Query())
	case u.Scheme == "dummy":
		return Dummy{}, nil
	default:
		return nil, errors.Errorf("not supported uri of cache, %q", uri)
	}
}
