package config

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func ParseURLString(s string, allowEmpty bool) (*url.URL, error) {
	s = strings.TrimSpace(s)
	if len(s) < 1 {
		if !allowEmpty {
			return nil, errors.Errorf("empty url string")
		}

		return nil, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid url, %q", s)
	}

	if len(u.Scheme) < 1 {
		return nil, errors.Errorf("empty scheme of url, %q", s)
	}

	return u, nil
}

func parseInt64(s string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number, %q", s)
	}

	return i, nil
}
