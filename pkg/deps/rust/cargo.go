package rust

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/assetsync/pkg/errors"
)

// ManifestName is the file name of a Cargo manifest.
const ManifestName = "Cargo.toml"

// MainBranch is reported as the version of git dependencies tracking main.
const MainBranch = "main"

// Manifest is the subset of Cargo.toml that assetsync reads.
type Manifest struct {
	Package           *Package              `toml:"package"`
	Dependencies      map[string]Dependency `toml:"dependencies"`
	DevDependencies   map[string]Dependency `toml:"dev-dependencies"`
	BuildDependencies map[string]Dependency `toml:"build-dependencies"`
	Workspace         *Workspace            `toml:"workspace"`
}

// Package is the [package] table.
type Package struct {
	Name        string `toml:"name"`
	Version     Field  `toml:"version"`
	License     Field  `toml:"license"`
	LicenseFile Field  `toml:"license-file"`
	Repository  Field  `toml:"repository"`
	Description Field  `toml:"description"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Members      []string              `toml:"members"`
	Package      *WorkspacePackage     `toml:"package"`
	Dependencies map[string]Dependency `toml:"dependencies"`
}

// WorkspacePackage is the [workspace.package] table that member packages
// inherit fields from.
type WorkspacePackage struct {
	Version     string `toml:"version"`
	License     string `toml:"license"`
	LicenseFile string `toml:"license-file"`
	Repository  string `toml:"repository"`
	Description string `toml:"description"`
}

// Field is a [package] value that is either set inline or inherited from
// [workspace.package] with `field.workspace = true`.
type Field struct {
	Value     string
	Workspace bool
}

// UnmarshalTOML implements toml.Unmarshaler.
func (f *Field) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*f = Field{Value: v}
		return nil
	case map[string]any:
		ws, err := boolField(v, "workspace")
		if err != nil {
			return err
		}
		*f = Field{Workspace: ws}
		return nil
	default:
		return fmt.Errorf("package field: expected string or table, got %T", v)
	}
}

// Resolve returns the inline value, or inherited when the field is taken
// from the workspace.
func (f Field) Resolve(inherited string) string {
	if f.Workspace {
		return inherited
	}
	return f.Value
}

// Parse decodes Cargo.toml text.
func Parse(text string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(text, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", ManifestName)
	}
	return &m, nil
}

// License returns the package license expression, following
// `license.workspace = true` into [workspace.package].
func (m *Manifest) License() string {
	if m.Package == nil {
		return ""
	}
	var inherited string
	if m.Workspace != nil && m.Workspace.Package != nil {
		inherited = m.Workspace.Package.License
	}
	return strings.TrimSpace(m.Package.License.Resolve(inherited))
}

// Licenses returns the package license expression split into its OR
// alternatives, or nil when the manifest declares no license expression.
func (m *Manifest) Licenses() []string {
	expr := m.License()
	if expr == "" {
		return nil
	}
	return SplitLicense(expr)
}

// FindDependency returns the lexicographically first [dependencies] entry
// whose name starts with prefix. When none matches, [workspace.dependencies]
// is searched the same way.
func (m *Manifest) FindDependency(prefix string) (string, Dependency, bool) {
	if name, dep, ok := findPrefixed(m.Dependencies, prefix); ok {
		return name, m.resolveWorkspace(name, dep), true
	}
	if m.Workspace != nil {
		return findPrefixed(m.Workspace.Dependencies, prefix)
	}
	return "", Dependency{}, false
}

// DependencyVersion derives the version of the first dependency matching
// prefix. ok is false when no dependency matches or none yields a version.
func (m *Manifest) DependencyVersion(prefix string) (name, version string, ok bool) {
	name, dep, found := m.FindDependency(prefix)
	if !found {
		return "", "", false
	}
	version, ok = dep.Version()
	return name, version, ok
}

// resolveWorkspace replaces a `workspace = true` dependency with the entry
// of the same name from [workspace.dependencies], if the manifest has one.
func (m *Manifest) resolveWorkspace(name string, dep Dependency) Dependency {
	if dep.Detail == nil || !dep.Detail.Workspace || m.Workspace == nil {
		return dep
	}
	if ws, ok := m.Workspace.Dependencies[name]; ok {
		return ws
	}
	return dep
}

func findPrefixed(deps map[string]Dependency, prefix string) (string, Dependency, bool) {
	names := make([]string, 0, len(deps))
	for name := range deps {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", Dependency{}, false
	}
	slices.Sort(names)
	return names[0], deps[names[0]], true
}

var orOperator = regexp.MustCompile(`(?:^|\s)OR(?:\s|$)`)

// SplitLicense splits an SPDX license expression on the OR operator and
// trims each alternative. Empty alternatives are dropped.
func SplitLicense(expr string) []string {
	var out []string
	for _, part := range orOperator.Split(expr, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DependencyKind tags the two forms of a Cargo dependency.
type DependencyKind int

const (
	// Simple is a bare version requirement: `serde = "1.0"`.
	Simple DependencyKind = iota + 1
	// Detailed is a table: `serde = { version = "1.0", features = [...] }`.
	Detailed
)

func (k DependencyKind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Detailed:
		return "detailed"
	default:
		return "unknown"
	}
}

// Dependency is a declared Cargo dependency.
// Exactly one of Req or Detail is meaningful, selected by Kind.
type Dependency struct {
	Kind   DependencyKind
	Req    string
	Detail *DependencyDetail
}

// DependencyDetail holds the fields of a table-form dependency.
type DependencyDetail struct {
	Version   string
	Git       string
	Branch    string
	Tag       string
	Rev       string
	Path      string
	Package   string
	Features  []string
	Optional  bool
	Workspace bool
}

// SimpleDependency returns a bare version dependency.
func SimpleDependency(req string) Dependency {
	return Dependency{Kind: Simple, Req: req}
}

// DetailedDependency returns a table-form dependency.
func DetailedDependency(d DependencyDetail) Dependency {
	return Dependency{Kind: Detailed, Detail: &d}
}

// Version derives a version string from the dependency:
//   - simple: the requirement verbatim
//   - detailed with a version: that version
//   - detailed git dependency on the main branch: "main"
//
// Anything else yields no version.
func (d Dependency) Version() (string, bool) {
	switch d.Kind {
	case Simple:
		return d.Req, true
	case Detailed:
		if d.Detail == nil {
			return "", false
		}
		if d.Detail.Version != "" {
			return d.Detail.Version, true
		}
		if d.Detail.Git != "" && d.Detail.Branch == MainBranch {
			return MainBranch, true
		}
	}
	return "", false
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Dependency) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*d = SimpleDependency(v)
		return nil
	case map[string]any:
		var detail DependencyDetail
		var err error
		fields := []struct {
			key string
			dst *string
		}{
			{"version", &detail.Version},
			{"git", &detail.Git},
			{"branch", &detail.Branch},
			{"tag", &detail.Tag},
			{"rev", &detail.Rev},
			{"path", &detail.Path},
			{"package", &detail.Package},
		}
		for _, f := range fields {
			if *f.dst, err = stringField(v, f.key); err != nil {
				return err
			}
		}
		if detail.Optional, err = boolField(v, "optional"); err != nil {
			return err
		}
		if detail.Workspace, err = boolField(v, "workspace"); err != nil {
			return err
		}
		if raw, ok := v["features"]; ok {
			list, ok := raw.([]any)
			if !ok {
				return fmt.Errorf("dependency features: expected array, got %T", raw)
			}
			for _, f := range list {
				s, ok := f.(string)
				if !ok {
					return fmt.Errorf("dependency features: expected string, got %T", f)
				}
				detail.Features = append(detail.Features, s)
			}
		}
		*d = DetailedDependency(detail)
		return nil
	default:
		return fmt.Errorf("dependency: expected string or table, got %T", v)
	}
}

func stringField(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("dependency %s: expected string, got %T", key, raw)
	}
	return s, nil
}

func boolField(m map[string]any, key string) (bool, error) {
	raw, ok := m[key]
	if !ok {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("dependency %s: expected bool, got %T", key, raw)
	}
	return b, nil
}
