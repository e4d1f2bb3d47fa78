package github

import (
	stderrors "errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/matzehuels/assetsync/pkg/errors"
	"github.com/matzehuels/assetsync/pkg/integrations"
)

// Host is the only link host treated as a GitHub repository.
const Host = "github.com"

// ErrNotGitHub is returned by [ParseRepoURL] for links to other hosts.
var ErrNotGitHub = stderrors.New("link is not a GitHub repository")

// Regex patterns for GitHub resource validation.
var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ParseRepoURL extracts the owner and repository from a GitHub link.
//
// The first two path segments are owner and repository; anything after
// them (tree/main, blob paths, fragments) is ignored. Links that cannot be
// parsed or have fewer than two segments return an INVALID_LINK error.
func ParseRepoURL(link string) (owner, repo string, err error) {
	u, err := url.Parse(integrations.NormalizeRepoURL(link))
	if err != nil {
		return "", "", errors.Wrap(errors.ErrCodeInvalidLink, err, "parse link %q", link)
	}
	if u.Scheme == "" && u.Host == "" {
		return "", "", errors.New(errors.ErrCodeInvalidLink, "link %q is not an absolute URL", link)
	}
	if !strings.EqualFold(u.Hostname(), Host) {
		return "", "", ErrNotGitHub
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return "", "", errors.New(errors.ErrCodeInvalidLink, "link %q does not name a repository", link)
	}

	owner, repo = segments[0], strings.TrimSuffix(segments[1], ".git")
	if err := ValidateRepoRef(owner, repo); err != nil {
		return "", "", err
	}
	return owner, repo, nil
}

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New(errors.ErrCodeInvalidLink, "owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New(errors.ErrCodeInvalidLink, "invalid owner %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", owner)
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New(errors.ErrCodeInvalidLink, "repo is required")
	}
	if repo == "." || repo == ".." || !validRepo.MatchString(repo) {
		return errors.New(errors.ErrCodeInvalidLink, "invalid repo %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", repo)
	}
	return nil
}

// ValidateRepoRef validates both owner and repo parameters.
func ValidateRepoRef(owner, repo string) error {
	if err := ValidateOwner(owner); err != nil {
		return err
	}
	return ValidateRepo(repo)
}
