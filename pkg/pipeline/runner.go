package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetsync/pkg/asset"
	"github.com/matzehuels/assetsync/pkg/deps/rust"
	"github.com/matzehuels/assetsync/pkg/errors"
	"github.com/matzehuels/assetsync/pkg/integrations"
	"github.com/matzehuels/assetsync/pkg/integrations/github"
	"github.com/matzehuels/assetsync/pkg/observability"
)

// Fetcher retrieves a file from a GitHub repository.
// [*github.ContentClient] is the production implementation.
type Fetcher interface {
	FetchFile(ctx context.Context, owner, repo, path string) (*github.FileContent, error)
}

// Runner executes sync runs.
type Runner struct {
	Fetcher Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner that fetches manifests through f.
// A nil logger falls back to the default logger.
func NewRunner(f Fetcher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fetcher: f, Logger: logger}
}

// Run syncs every asset file under opts.Root, in walk order, one file at a
// time. The returned report is non-nil whenever the options are valid,
// including when the run is aborted. A non-nil error means the run was
// aborted by a fatal condition: traversal failure or cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	report := newReport(opts)
	logger := r.Logger.With("run", report.RunID[:8])
	hooks := observability.Sync()
	hooks.OnRunStart(ctx, opts.Root)
	logger.Debug("sync started", "root", opts.Root, "prefix", opts.Prefix, "dry_run", opts.DryRun)

	var runErr error
	for path, err := range asset.Walk(opts.Root, opts.walkOptions()) {
		if err != nil {
			runErr = err
			break
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		hooks.OnFileStart(ctx, path)
		res := r.syncFile(ctx, logger, path, opts)
		hooks.OnFileComplete(ctx, path, string(res.Status), res.Duration, res.Err)
		report.Files = append(report.Files, res)

		if res.Err != nil && errors.IsFatal(res.Err) {
			runErr = res.Err
			break
		}
	}

	report.FinishedAt = time.Now()
	hooks.OnRunComplete(ctx, opts.Root, len(report.Files), report.Duration(), runErr)

	s := report.Summary()
	logger.Info("sync finished",
		"files", s.Total,
		"updated", s.Updated,
		"unchanged", s.Unchanged,
		"skipped", s.Skipped,
		"failed", s.Failed,
		"duration", report.Duration().Round(time.Millisecond),
	)
	return report, runErr
}

// syncFile walks one asset file through parse, classify, fetch, extract
// and write. Every failure leaves the file on disk untouched.
func (r *Runner) syncFile(ctx context.Context, logger *log.Logger, path string, opts Options) (res FileResult) {
	start := time.Now()
	res.Path = path
	logger = logger.With("file", path)
	defer func() { res.Duration = time.Since(start) }()

	logger.Debug("processing")

	a, err := asset.Load(path)
	if err != nil {
		return failed(logger, res, "parse asset", err)
	}

	owner, repo, err := github.ParseRepoURL(a.Link)
	if stderrors.Is(err, github.ErrNotGitHub) {
		logger.Debug("skipped", "link", a.Link)
		res.Status = StatusSkipped
		res.Reason = "link is not a GitHub repository"
		return res
	}
	if err != nil {
		return failed(logger, res, "classify link", err)
	}
	res.Owner, res.Repo = owner, repo

	file, err := r.Fetcher.FetchFile(ctx, owner, repo, opts.ManifestPath)
	if integrations.IsNotFound(err) {
		err = errors.Wrap(errors.ErrCodeNotFound, err, "%s/%s has no %s", owner, repo, opts.ManifestPath)
	}
	if err != nil {
		return failed(logger, res, "fetch manifest", err)
	}

	manifest, err := rust.Parse(file.Content)
	if err != nil {
		return failed(logger, res, "parse manifest", err)
	}

	update := Extract(manifest, opts.Prefix)
	updated := update.Apply(a)
	res.Dependency = update.Dependency
	res.Licenses = updated.Licenses
	res.Versions = updated.BevyVersions

	if updated.Equal(a) {
		logger.Debug("unchanged")
		res.Status = StatusUnchanged
		return res
	}

	if !opts.DryRun {
		if err := asset.Save(path, updated); err != nil {
			return failed(logger, res, "write asset", err)
		}
	}
	logger.Info("updated", "repo", owner+"/"+repo, "licenses", updated.Licenses, "versions", updated.BevyVersions, "dry_run", opts.DryRun)
	res.Status = StatusUpdated
	return res
}

func failed(logger *log.Logger, res FileResult, step string, err error) FileResult {
	res.Status = StatusFailed
	res.Err = err
	res.Code = errors.GetCode(err)
	res.Reason = step + ": " + errors.UserMessage(err)
	logger.Warn(step+" failed", "error", err)
	return res
}
