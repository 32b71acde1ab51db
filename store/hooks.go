package store

import "time"

// Hooks lightweight callbacks for high-signal store events.
// Implementations MUST be cheap and non-blocking; wrap slow sinks in
// hooks/async.
type Hooks interface {
	// A snapshot was written. size is the stored blob length.
	Saved(storageKey, format string, size int, took time.Duration)

	// A snapshot was read and restored.
	Loaded(storageKey, format string, size int, took time.Duration)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// A payload exceeded Options.MaxBlob. op ∈ {"save", "load"}.
	BlobTooLarge(storageKey, op string, size, limit int)

	// A stored blob could not be turned back into a value.
	// reason ∈ {"frame", "format", "decode", "shape"}
	LoadFailed(storageKey, reason string, err error)

	// A blob without a frame was decoded with the store's own format.
	UnframedBlob(storageKey, format string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Saved(string, string, int, time.Duration)  {}
func (NopHooks) Loaded(string, string, int, time.Duration) {}
func (NopHooks) ProviderSetRejected(string)                {}
func (NopHooks) BlobTooLarge(string, string, int, int)     {}
func (NopHooks) LoadFailed(string, string, error)          {}
func (NopHooks) UnframedBlob(string, string)               {}
