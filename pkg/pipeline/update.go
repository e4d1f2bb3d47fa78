package pipeline

import (
	"github.com/matzehuels/assetsync/pkg/asset"
	"github.com/matzehuels/assetsync/pkg/deps/rust"
)

// Update describes what a manifest contributes to an asset.
type Update struct {
	// Licenses is nil when the manifest declares no license expression.
	Licenses []string
	// Dependency is the name of the dependency the version came from.
	Dependency string
	// Version is empty when no version could be derived.
	Version string
}

// Extract reads the fields an asset tracks from a parsed manifest.
func Extract(m *rust.Manifest, prefix string) Update {
	u := Update{Licenses: m.Licenses()}
	if name, version, ok := m.DependencyVersion(prefix); ok {
		u.Dependency = name
		u.Version = version
	}
	return u
}

// Apply returns a copy of a with the update merged in. Licenses replace
// the existing list when the manifest declares any. A derived version
// replaces the whole version list.
func (u Update) Apply(a *asset.Asset) *asset.Asset {
	out := a.Clone()
	if u.Licenses != nil {
		out.Licenses = u.Licenses
	}
	if u.Version != "" {
		out.BevyVersions = []string{u.Version}
	}
	return out
}
