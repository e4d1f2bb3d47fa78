package asset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/assetsync/pkg/errors"
)

// Asset is the on-disk description of a single asset.
type Asset struct {
	Name         string   `toml:"name"`
	Description  string   `toml:"description"`
	Link         string   `toml:"link"`
	BevyVersions []string `toml:"bevy_versions,omitempty"`
	Licenses     []string `toml:"licenses,omitempty"`
}

// Equal reports whether a and b describe the same asset field by field.
func (a *Asset) Equal(b *Asset) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name &&
		a.Description == b.Description &&
		a.Link == b.Link &&
		slices.Equal(a.BevyVersions, b.BevyVersions) &&
		slices.Equal(a.Licenses, b.Licenses)
}

// Clone returns a deep copy of a.
func (a *Asset) Clone() *Asset {
	c := *a
	c.BevyVersions = slices.Clone(a.BevyVersions)
	c.Licenses = slices.Clone(a.Licenses)
	return &c
}

// Parse decodes an asset description from TOML.
func Parse(data []byte) (*Asset, error) {
	var a Asset
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "parse asset")
	}
	return &a, nil
}

// Load reads and parses the asset description at path.
func Load(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "read asset")
	}
	return Parse(data)
}

// Marshal encodes a as TOML.
func Marshal(a *Asset) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(a); err != nil {
		return nil, fmt.Errorf("encode asset: %w", err)
	}
	return buf.Bytes(), nil
}

// Save marshals a and atomically replaces the file at path with the result.
// The file keeps its existing permissions; new files get 0644.
func Save(path string, a *Asset) error {
	data, err := Marshal(a)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "marshal %s", path)
	}
	return WriteFile(path, data)
}

// WriteFile writes data to a temporary file in the directory of path,
// syncs it and renames it over path.
func WriteFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeWrite, err, "write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeWrite, err, "sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "rename into %s", path)
	}
	return nil
}
