package store

import (
	"context"
	"path/filepath"

	"github.com/unkn0wn-root/typedjson/attrs"
	"github.com/unkn0wn-root/typedjson/provider/file"
)

// SaveFile writes obj's attributes to path as plain JSON text.
func SaveFile(path string, obj attrs.Object) error {
	s, key, err := fileStore(path)
	if err != nil {
		return err
	}
	return s.Save(context.Background(), key, obj)
}

// LoadFile reads a file written by SaveFile and sets each attribute on dst.
func LoadFile(path string, dst attrs.Setter) error {
	s, key, err := fileStore(path)
	if err != nil {
		return err
	}
	return s.Load(context.Background(), key, dst)
}

// LoadBagFile reads a file written by SaveFile into a new attrs.Bag.
func LoadBagFile(path string) (*attrs.Bag, error) {
	s, key, err := fileStore(path)
	if err != nil {
		return nil, err
	}
	return s.LoadBag(context.Background(), key)
}

func fileStore(path string) (*Store, string, error) {
	p, err := file.New(file.Config{Dir: filepath.Dir(path)})
	if err != nil {
		return nil, "", err
	}
	s, err := New(Options{Provider: p, Raw: true})
	if err != nil {
		return nil, "", err
	}
	return s, filepath.Base(path), nil
}
