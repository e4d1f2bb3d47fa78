// Package rust reads the fields assetsync needs from a Cargo.toml manifest.
//
// # Overview
//
// [Parse] decodes a manifest into a [Manifest]. Two things are extracted
// from it:
//
//   - the license list, from package.license, split on the SPDX OR operator
//     by [SplitLicense]
//   - the version of the first dependency whose name starts with a prefix
//     such as "bevy", through [Manifest.DependencyVersion]
//
// # Dependencies
//
// A Cargo dependency is either a bare version string or a table:
//
//	[dependencies]
//	bevy = "0.12"
//	bevy_egui = { git = "https://github.com/mvlabat/bevy_egui", branch = "main" }
//
// [Dependency] models both forms as a tagged variant. [Dependency.Version]
// returns the explicit version when there is one, "main" for a git
// dependency that tracks the main branch, and nothing otherwise.
//
// Dependency names are searched in lexicographic order, so the same
// manifest always yields the same version.
//
// # License Splitting
//
// [SplitLicense] is naive: "MIT OR Apache-2.0" becomes
// ["MIT", "Apache-2.0"], while AND, WITH and parentheses are kept verbatim
// inside the resulting parts.
package rust
