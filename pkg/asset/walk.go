package asset

import (
	stderrors "errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/assetsync/pkg/errors"
)

// Ext is the file extension of asset descriptions.
const Ext = ".toml"

// WalkOptions configures [Walk].
type WalkOptions struct {
	// Exclude holds doublestar patterns matched against the slash-separated
	// path relative to the root. Matching directories are pruned.
	Exclude []string
}

// Validate checks that every exclude pattern is well formed.
func (o WalkOptions) Validate() error {
	for _, p := range o.Exclude {
		if !doublestar.ValidatePattern(p) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid exclude pattern %q", p)
		}
	}
	return nil
}

var errStop = stderrors.New("walk stopped")

// Walk returns a lazy sequence of asset file paths under root, in lexical
// order. Each range over the sequence starts a fresh traversal.
//
// A traversal error is yielded once as a TRAVERSAL error with an empty
// path, after which the sequence ends.
func Walk(root string, opts WalkOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && excluded(root, path, opts.Exclude) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || filepath.Ext(path) != Ext || isDirLink(path, d) {
				return nil
			}
			if !yield(path, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !stderrors.Is(err, errStop) {
			yield("", errors.Wrap(errors.ErrCodeTraversal, err, "walk %s", root))
		}
	}
}

// isDirLink reports whether d is a symlink whose target is a directory.
// Links are not followed into, so a linked directory is never walked.
func isDirLink(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
