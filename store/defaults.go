package store

import (
	"github.com/unkn0wn-root/typedjson"
)

var (
	defaultCodec  = typedjson.New(typedjson.Options{})
	defaultLogger = typedjson.Logger(typedjson.NopLogger{})
	defaultHooks  = Hooks(NopHooks{})
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
