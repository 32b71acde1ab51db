// Package file stores one blob per key as a file under a root directory.
// Keys are slash-separated relative paths; blobs are written verbatim, so a
// store in Raw mode leaves plain JSON text on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	pr "github.com/unkn0wn-root/typedjson/provider"
)

var (
	// ErrInvalidKey is returned for keys that would escape the root directory.
	ErrInvalidKey = errors.New("file provider: invalid key")

	ErrNoDir = errors.New("file provider: empty directory")
)

const (
	defaultFilePerm = 0o644
	defaultDirPerm  = 0o755
)

type Config struct {
	Dir      string
	FilePerm fs.FileMode // default 0644
	DirPerm  fs.FileMode // default 0755; used when creating Dir and key subdirectories
}

type Provider struct {
	dir      string
	filePerm fs.FileMode
	dirPerm  fs.FileMode
}

var _ pr.Provider = (*Provider)(nil)

func New(cfg Config) (*Provider, error) {
	if cfg.Dir == "" {
		return nil, ErrNoDir
	}
	p := &Provider{dir: cfg.Dir, filePerm: cfg.FilePerm, dirPerm: cfg.DirPerm}
	if p.filePerm == 0 {
		p.filePerm = defaultFilePerm
	}
	if p.dirPerm == 0 {
		p.dirPerm = defaultDirPerm
	}
	if err := os.MkdirAll(p.dir, p.dirPerm); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider) path(key string) (string, error) {
	local := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(p.dir, local), nil
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path, err := p.path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set writes value to the key's file, replacing it. TTL and cost are ignored.
func (p *Provider) Set(ctx context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := p.path(key)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), p.dirPerm); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, value, p.filePerm); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := p.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (p *Provider) Close(context.Context) error { return nil }

// Dir returns the root directory.
func (p *Provider) Dir() string { return p.dir }
