// Package pkg provides the libraries behind assetsync.
//
// # Overview
//
// assetsync keeps a directory of asset descriptions in step with the
// crates they describe. The pkg directory is organized into these areas:
//
//  1. [asset] - Asset description model, atomic writer and tree walker
//  2. [deps/rust] - Cargo.toml model, license split, dependency versions
//  3. [integrations] - HTTP client and the GitHub contents API
//  4. [pipeline] - Per-file sync loop and run report
//  5. [errors] - Coded errors and the fatal/recoverable split
//  6. [observability] - Optional hooks for sync and HTTP events
//
// # Architecture
//
//	asset directory
//	       ↓
//	  [asset] Walk + Load
//	       ↓
//	  [integrations/github] ParseRepoURL + FetchFile
//	       ↓
//	  [deps/rust] Parse + Licenses + DependencyVersion
//	       ↓
//	  [asset] WriteFile
//
// # Quick Start
//
//	client := github.NewContentClient(os.Getenv("GITHUB_TOKEN"))
//	runner := pipeline.NewRunner(client, nil)
//	report, err := runner.Run(ctx, pipeline.Options{Root: "assets"})
package pkg
