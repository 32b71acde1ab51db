// Package signals publishes store events as capitan signals.
package signals

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"

	"github.com/unkn0wn-root/typedjson/store"
)

// Signals for store events.
var (
	SignalSaved        = capitan.NewSignal("typedjson.store.saved", "Snapshot written")
	SignalLoaded       = capitan.NewSignal("typedjson.store.loaded", "Snapshot read and restored")
	SignalSetRejected  = capitan.NewSignal("typedjson.store.set_rejected", "Provider refused a write")
	SignalBlobTooLarge = capitan.NewSignal("typedjson.store.blob_too_large", "Payload exceeded the size cap")
	SignalLoadFailed   = capitan.NewSignal("typedjson.store.load_failed", "Stored blob could not be restored")
	SignalUnframed     = capitan.NewSignal("typedjson.store.unframed", "Blob without a frame decoded with the store format")
)

// Keys for typed event data.
var (
	KeyStorageKey = capitan.NewStringKey("storage_key")
	KeyFormat     = capitan.NewStringKey("format")
	KeyOp         = capitan.NewStringKey("op")
	KeyReason     = capitan.NewStringKey("reason")
	KeySize       = capitan.NewIntKey("size")
	KeyLimit      = capitan.NewIntKey("limit")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// Hooks emits one signal per store event on the context given to New.
type Hooks struct {
	ctx context.Context
}

var _ store.Hooks = (*Hooks)(nil)

func New(ctx context.Context) *Hooks {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Hooks{ctx: ctx}
}

func (h *Hooks) Saved(storageKey, format string, size int, took time.Duration) {
	capitan.Emit(h.ctx, SignalSaved,
		KeyStorageKey.Field(storageKey),
		KeyFormat.Field(format),
		KeySize.Field(size),
		KeyDuration.Field(took),
	)
}

func (h *Hooks) Loaded(storageKey, format string, size int, took time.Duration) {
	capitan.Emit(h.ctx, SignalLoaded,
		KeyStorageKey.Field(storageKey),
		KeyFormat.Field(format),
		KeySize.Field(size),
		KeyDuration.Field(took),
	)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	capitan.Emit(h.ctx, SignalSetRejected, KeyStorageKey.Field(storageKey))
}

func (h *Hooks) BlobTooLarge(storageKey, op string, size, limit int) {
	capitan.Emit(h.ctx, SignalBlobTooLarge,
		KeyStorageKey.Field(storageKey),
		KeyOp.Field(op),
		KeySize.Field(size),
		KeyLimit.Field(limit),
	)
}

func (h *Hooks) LoadFailed(storageKey, reason string, err error) {
	fields := []capitan.Field{
		KeyStorageKey.Field(storageKey),
		KeyReason.Field(reason),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
	}
	capitan.Error(h.ctx, SignalLoadFailed, fields...)
}

func (h *Hooks) UnframedBlob(storageKey, format string) {
	capitan.Emit(h.ctx, SignalUnframed,
		KeyStorageKey.Field(storageKey),
		KeyFormat.Field(format),
	)
}
