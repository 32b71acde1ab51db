// Package sloghooks logs store events with log/slog.
package sloghooks

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/typedjson/internal/util"
	"github.com/unkn0wn-root/typedjson/store"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SavedEvery  uint64
	LoadedEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	savedCtr  atomic.Uint64
	loadedCtr atomic.Uint64
}

var _ store.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	return util.ShortHash(k)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Saved(storageKey, format string, size int, took time.Duration) {
	if h.l == nil || !sample(h.opts.SavedEvery, &h.savedCtr) {
		return
	}
	h.l.Debug("typedjson.saved",
		"key", h.redact(storageKey),
		"format", format,
		"size", size,
		"took", took)
}

func (h *Hooks) Loaded(storageKey, format string, size int, took time.Duration) {
	if h.l == nil || !sample(h.opts.LoadedEvery, &h.loadedCtr) {
		return
	}
	h.l.Debug("typedjson.loaded",
		"key", h.redact(storageKey),
		"format", format,
		"size", size,
		"took", took)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("typedjson.provider_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) BlobTooLarge(storageKey, op string, size, limit int) {
	if h.l == nil {
		return
	}
	h.l.Warn("typedjson.blob_too_large",
		"key", h.redact(storageKey),
		"op", op,
		"size", size,
		"limit", limit)
}

func (h *Hooks) LoadFailed(storageKey, reason string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("typedjson.load_failed",
		"key", h.redact(storageKey),
		"reason", reason,
		"err", err)
}

func (h *Hooks) UnframedBlob(storageKey, format string) {
	if h.l == nil {
		return
	}
	h.l.Info("typedjson.unframed_blob",
		"key", h.redact(storageKey),
		"format", format)
}
