// Package asset reads, updates and writes asset-description files.
//
// An asset description is a small TOML document kept next to other assets
// in a directory tree:
//
//	name = "bevy_egui"
//	description = "A plugin for Egui integration into Bevy"
//	link = "https://github.com/mvlabat/bevy_egui"
//	bevy_versions = ["0.12"]
//	licenses = ["MIT"]
//
// [Walk] finds the files, [Load] and [Parse] decode them into an [Asset],
// and [Save] writes an updated Asset back to the same path. Writes go to a
// temporary file first and are renamed into place, so an interrupted run
// never leaves a half-written file behind.
//
// Field order and comments are not preserved: a saved file is a plain
// serialization of the in-memory [Asset].
package asset
