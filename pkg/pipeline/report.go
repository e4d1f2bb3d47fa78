package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/assetsync/pkg/buildinfo"
	"github.com/matzehuels/assetsync/pkg/errors"
)

// Status is the final state of one asset file.
type Status string

const (
	// StatusUpdated means the file was (or, in a dry run, would be) rewritten.
	StatusUpdated Status = "updated"
	// StatusUnchanged means the file already matched the remote manifest.
	StatusUnchanged Status = "unchanged"
	// StatusSkipped means the asset does not link to a GitHub repository.
	StatusSkipped Status = "skipped"
	// StatusFailed means a step failed and the file was left untouched.
	StatusFailed Status = "failed"
)

// FileResult records what happened to one asset file.
type FileResult struct {
	Path       string        `json:"path" yaml:"path"`
	Status     Status        `json:"status" yaml:"status"`
	Reason     string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Code       errors.Code   `json:"code,omitempty" yaml:"code,omitempty"`
	Owner      string        `json:"owner,omitempty" yaml:"owner,omitempty"`
	Repo       string        `json:"repo,omitempty" yaml:"repo,omitempty"`
	Dependency string        `json:"dependency,omitempty" yaml:"dependency,omitempty"`
	Licenses   []string      `json:"licenses,omitempty" yaml:"licenses,omitempty"`
	Versions   []string      `json:"bevy_versions,omitempty" yaml:"bevy_versions,omitempty"`
	Duration   time.Duration `json:"duration_ns" yaml:"duration"`
	Err        error         `json:"-" yaml:"-"`
}

// Summary counts files per status.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Updated   int `json:"updated" yaml:"updated"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Report is the outcome of one sync run.
type Report struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Tool       buildinfo.Info `json:"tool" yaml:"tool"`
	Root       string         `json:"root" yaml:"root"`
	DryRun     bool           `json:"dry_run" yaml:"dry_run"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
	Files      []FileResult   `json:"files" yaml:"files"`
}

func newReport(opts Options) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Tool:      buildinfo.Get(),
		Root:      opts.Root,
		DryRun:    opts.DryRun,
		StartedAt: time.Now(),
		Files:     []FileResult{},
	}
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary counts the files of the report per status.
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Files)}
	for _, f := range r.Files {
		switch f.Status {
		case StatusUpdated:
			s.Updated++
		case StatusUnchanged:
			s.Unchanged++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Failed returns the results of files that failed.
func (r *Report) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Status == StatusFailed {
			out = append(out, f)
		}
	}
	return out
}

type encodedReport struct {
	Report  `yaml:",inline"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// Encode writes the report to w as JSON or YAML.
func (r *Report) Encode(w io.Writer, format string) error {
	out := encodedReport{Report: *r, Summary: r.Summary()}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("encode report: unsupported format %q", format)
	}
}
