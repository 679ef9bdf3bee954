package cache

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testGCache struct {
	suite.Suite
}

func (t *testGCache) TestNew() {
	ca, err := NewGCacheWithQuery(nil)
	t.NoError(err)

	t.Implements((*Cache)(nil), ca)

	t.Equal(DefaultGCacheSize, ca.size)
	t.Equal(DefaultCacheExpire, ca.expire)
	t.Equal(DefaultGCacheType, ca.tp)
}

func (t *testGCache) TestWithSize() {
	{
		query := url.Values{}
		query.Set("size", "a3333")
		_, err := NewGCacheWithQuery(query)
		t.Contains(err.Error(), "invalid size")
	}

	{
		query := url.Values{}
		query.Set("size", "3333")
		ca, err := NewGCacheWithQuery(query)
		t.NoError(err)

		t.Equal(3333, ca.size)
	}
}

func (t *testGCache) TestWithExpire() {
	query := url.Values{}
	query.Set("expire", "showme")
	_, err := NewGCacheWithQuery(query)
	t.Contains(err.Error(), "invalid expire")

	expire := time.Second * 3333
	query.Set("expire", expire.String())
	ca, err := NewGCacheWithQuery(query)
	t.NoError(err)
	t.Equal(expire, ca.expire)
}

func (t *testGCache) TestSetGet() {
	ca, err := NewGCache("lru", 10, time.Minute)
	t.NoError(err)

	_, found := ca.Get("a")
	t.False(found)

	t.NoError(ca.Set("a", 1))

	i, found := ca.Get("a")
	t.True(found)
	t.Equal(1, i)

	ca.Purge()
	_, found = ca.Get("a")
	t.False(found)
}

func (t *testGCache) TestFromURI() {
	ca, err := NewCacheFromURI("gcache:?type=arc&size=9")
	t.NoError(err)
	t.IsType(&GCache{}, ca)
	t.Equal("arc", ca.(*GCache).tp)

	ca, err = NewCacheFromURI("dummy://")
	t.NoError(err)
	t.IsType(Dummy{}, ca)

	_, err = NewCacheFromURI("redis://")
	t.Error(err)
}

func TestGCache(t *testing.T) {
	suite.Run(t, new(testGCache))
}
