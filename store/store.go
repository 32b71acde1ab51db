// Package store saves and loads attribute snapshots through a blob provider.
//
// A snapshot is one blob per key: the object's attributes as an ordered list
// of [name, value] pairs, serialized with a typedjson.Codec. Each Save and Load
// is a single provider call; there are no transactions and no partial-write
// recovery.
//
// Blobs are framed (internal/wire) so a blob records the carrier format it
// was written with; Load decodes a framed blob with that format even when the
// store is configured with another. In Raw mode the bare payload is written,
// which with the default JSON format leaves plain JSON text in the provider.
//
// Keys:
//
//	<ns>:<key>   - when Options.Namespace is set
//	<key>        - otherwise
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/typedjson"
	"github.com/unkn0wn-root/typedjson/attrs"
	"github.com/unkn0wn-root/typedjson/codec"
	"github.com/unkn0wn-root/typedjson/internal/util"
	"github.com/unkn0wn-root/typedjson/internal/wire"
	"github.com/unkn0wn-root/typedjson/provider"
)

type Options struct {
	// Namespace prefixes every storage key. Optional.
	Namespace string
	// Provider holds the blobs. Required.
	Provider provider.Provider
	// Codec serializes snapshots. Defaults to compact JSON with the default
	// record registry.
	Codec *typedjson.Codec
	// Logger receives store diagnostics. Defaults to NopLogger.
	Logger typedjson.Logger
	// Hooks receives high-signal events. Defaults to NopHooks.
	Hooks Hooks
	// TTL passed to the provider on Save. 0 means no expiry.
	TTL time.Duration
	// MaxBlob caps the payload size on Save and Load. 0 disables the check.
	MaxBlob int
	// Raw writes the bare payload without a frame.
	Raw bool
}

type Store struct {
	ns      string
	p       provider.Provider
	c       *typedjson.Codec
	log     typedjson.Logger
	hooks   Hooks
	ttl     time.Duration
	maxBlob int
	raw     bool
}

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, ErrNilProvider
	}
	return &Store{
		ns:      opts.Namespace,
		p:       opts.Provider,
		c:       coalesce(opts.Codec, defaultCodec),
		log:     coalesce(opts.Logger, defaultLogger),
		hooks:   coalesce(opts.Hooks, defaultHooks),
		ttl:     opts.TTL,
		maxBlob: opts.MaxBlob,
		raw:     opts.Raw,
	}, nil
}

// Codec returns the codec snapshots are written with.
func (s *Store) Codec() *typedjson.Codec { return s.c }

// Save writes obj's attributes under key, replacing any previous snapshot.
func (s *Store) Save(ctx context.Context, key string, obj attrs.Object) error {
	return s.SaveValue(ctx, key, attrs.Pairs(obj))
}

// SaveValue writes any supported value under key.
func (s *Store) SaveValue(ctx context.Context, key string, v any) error {
	if key == "" {
		return ErrEmptyKey
	}
	start := time.Now()
	sk := util.StorageKey(s.ns, key)
	format := s.c.Format().Name()

	payload, err := s.c.Encode(v)
	if err != nil {
		return err
	}
	if s.maxBlob > 0 && len(payload) > s.maxBlob {
		s.hooks.BlobTooLarge(sk, "save", len(payload), s.maxBlob)
		return fmt.Errorf("%w: %d > %d", codec.ErrPayloadTooLarge, len(payload), s.maxBlob)
	}

	blob := payload
	if !s.raw {
		blob = wire.Encode(format, payload)
	}
	ok, err := s.p.Set(ctx, sk, blob, int64(len(blob)), s.ttl)
	if err != nil {
		s.log.Warn("typedjson.store.save_failed", typedjson.Fields{
			"key_hash": util.ShortHash(sk),
			"format":   format,
			"err":      err,
		})
		return fmt.Errorf("store: save %q: %w", key, err)
	}
	if !ok {
		s.hooks.ProviderSetRejected(sk)
		return fmt.Errorf("%w: %q", ErrRejected, key)
	}

	took := time.Since(start)
	s.hooks.Saved(sk, format, len(blob), took)
	s.log.Debug("typedjson.store.saved", typedjson.Fields{
		"key_hash": util.ShortHash(sk),
		"format":   format,
		"size":     len(blob),
		"took":     took,
	})
	return nil
}

// Load reads the snapshot under key and sets each attribute on dst in order.
func (s *Store) Load(ctx context.Context, key string, dst attrs.Setter) error {
	as, err := s.loadAttrs(ctx, key)
	if err != nil {
		return err
	}
	return attrs.Apply(dst, as)
}

// LoadBag reads the snapshot under key into a new attrs.Bag.
func (s *Store) LoadBag(ctx context.Context, key string) (*attrs.Bag, error) {
	as, err := s.loadAttrs(ctx, key)
	if err != nil {
		return nil, err
	}
	return attrs.NewBag(as...), nil
}

func (s *Store) loadAttrs(ctx context.Context, key string) ([]attrs.Attr, error) {
	v, err := s.LoadValue(ctx, key)
	if err != nil {
		return nil, err
	}
	as, err := attrs.FromPairs(v)
	if err != nil {
		s.hooks.LoadFailed(util.StorageKey(s.ns, key), "shape", err)
		return nil, err
	}
	return as, nil
}

// LoadValue reads and restores whatever value is stored under key.
func (s *Store) LoadValue(ctx context.Context, key string) (any, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	start := time.Now()
	sk := util.StorageKey(s.ns, key)

	blob, ok, err := s.p.Get(ctx, sk)
	if err != nil {
		s.log.Warn("typedjson.store.load_failed", typedjson.Fields{
			"key_hash": util.ShortHash(sk),
			"err":      err,
		})
		return nil, fmt.Errorf("store: load %q: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	c, payload, err := s.unframe(sk, blob)
	if err != nil {
		return nil, err
	}
	format := c.Format().Name()

	v, err := codec.Limit[any]{Inner: c, MaxDecode: s.maxBlob}.Decode(payload)
	if err != nil {
		if errors.Is(err, codec.ErrPayloadTooLarge) {
			s.hooks.BlobTooLarge(sk, "load", len(payload), s.maxBlob)
		} else {
			s.hooks.LoadFailed(sk, "decode", err)
		}
		s.log.Warn("typedjson.store.decode_failed", typedjson.Fields{
			"key_hash": util.ShortHash(sk),
			"format":   format,
			"err":      err,
		})
		return nil, err
	}

	took := time.Since(start)
	s.hooks.Loaded(sk, format, len(blob), took)
	s.log.Debug("typedjson.store.loaded", typedjson.Fields{
		"key_hash": util.ShortHash(sk),
		"format":   format,
		"size":     len(blob),
		"took":     took,
	})
	return v, nil
}

// unframe picks the codec for blob: the frame's format when framed, the
// store's own otherwise.
func (s *Store) unframe(sk string, blob []byte) (*typedjson.Codec, []byte, error) {
	if !wire.IsFrame(blob) {
		if !s.raw {
			s.hooks.UnframedBlob(sk, s.c.Format().Name())
		}
		return s.c, blob, nil
	}
	name, payload, err := wire.Decode(blob)
	if err != nil {
		s.hooks.LoadFailed(sk, "frame", err)
		return nil, nil, err
	}
	if name == s.c.Format().Name() {
		return s.c, payload, nil
	}
	f, err := codec.Lookup(name)
	if err != nil {
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, name)
		s.hooks.LoadFailed(sk, "format", err)
		return nil, nil, err
	}
	return s.c.WithFormat(f), payload, nil
}

// Delete removes the snapshot under key. A missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.p.Del(ctx, util.StorageKey(s.ns, key))
}

// Close closes the provider.
func (s *Store) Close(ctx context.Context) error {
	return s.p.Close(ctx)
}
