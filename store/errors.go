package store

import "errors"

var (
	// ErrNilProvider is returned by New when Options.Provider is nil.
	ErrNilProvider = errors.New("store: nil provider")

	// ErrNotFound is returned by Load when no snapshot exists under the key.
	ErrNotFound = errors.New("store: snapshot not found")

	// ErrEmptyKey is returned for an empty snapshot key.
	ErrEmptyKey = errors.New("store: empty key")

	// ErrRejected is returned by Save when the provider refused the write.
	ErrRejected = errors.New("store: provider rejected write")

	// ErrUnknownFormat is returned by Load for a frame naming an unregistered format.
	ErrUnknownFormat = errors.New("store: frame names unknown format")
)
