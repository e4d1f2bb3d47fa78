// Package pipeline runs the asset sync loop.
//
// For every asset file under a root directory the [Runner] walks one file
// at a time through a fixed sequence of steps:
//
//  1. Parse the asset description
//  2. Classify its link (only github.com repositories are synced)
//  3. Fetch and decode the repository's Cargo.toml
//  4. Extract licenses and the version of the first matching dependency
//  5. Write the updated description back in place
//
// A problem with one file never stops the run: the file is left untouched,
// the problem is logged and recorded in the [Report], and the next file is
// processed. Only configuration problems, traversal errors and
// cancellation abort the run.
//
// # Usage
//
//	client := github.NewContentClient(token)
//	runner := pipeline.NewRunner(client, logger)
//	report, err := runner.Run(ctx, pipeline.Options{Root: "assets"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Summary().Updated, "files updated")
package pipeline

import (
	"github.com/matzehuels/assetsync/pkg/asset"
	"github.com/matzehuels/assetsync/pkg/deps/rust"
	"github.com/matzehuels/assetsync/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultPrefix selects the dependency whose version is tracked.
	DefaultPrefix = "bevy"

	// DefaultManifestPath is the repository file fetched for each asset.
	DefaultManifestPath = rust.ManifestName
)

// Format constants for report output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats is the set of supported report formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatYAML: true,
}

// ValidateFormat checks that format is a supported report format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid output format %q (valid: text, json, yaml)", format)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures a sync run.
type Options struct {
	// Root is the directory scanned for asset files.
	Root string
	// Prefix selects the dependency whose version is recorded.
	Prefix string
	// ManifestPath is the repository file fetched for each asset.
	ManifestPath string
	// Exclude holds doublestar patterns of files and directories to skip.
	Exclude []string
	// DryRun computes updates without writing them.
	DryRun bool
}

// ValidateAndSetDefaults fills in defaults and validates the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.ManifestPath == "" {
		o.ManifestPath = DefaultManifestPath
	}
	if err := errors.ValidateRoot(o.Root); err != nil {
		return err
	}
	if err := errors.ValidateCratePrefix(o.Prefix); err != nil {
		return err
	}
	if err := errors.ValidateRepoPath(o.ManifestPath); err != nil {
		return err
	}
	return o.walkOptions().Validate()
}

func (o *Options) walkOptions() asset.WalkOptions {
	return asset.WalkOptions{Exclude: o.Exclude}
}
