package cache

import "errors"

var (
	ErrBackend      = errors.New("cache: backend failure")
	ErrEncode       = errors.New("cache: cannot encode value")
	ErrCorruptEntry = errors.New("cache: stored value cannot be decoded")
)
