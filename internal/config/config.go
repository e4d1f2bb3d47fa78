// Package config resolves runtime settings from a dotenv file and the
// process environment.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/matzehuels/assetsync/pkg/errors"
	"github.com/matzehuels/assetsync/pkg/integrations"
	"github.com/matzehuels/assetsync/pkg/integrations/github"
)

// Environment variables read by [Load].
const (
	EnvToken       = "GITHUB_TOKEN"
	EnvAPIURL      = "GITHUB_API_URL"
	EnvUserAgent   = "ASSETSYNC_USER_AGENT"
	EnvHTTPTimeout = "ASSETSYNC_HTTP_TIMEOUT"
)

// DefaultEnvFile is the dotenv file loaded when none is given.
const DefaultEnvFile = ".env"

// Config holds the settings needed to talk to the GitHub API.
type Config struct {
	Token       string
	APIURL      string
	UserAgent   string
	HTTPTimeout time.Duration
}

// Load reads envFile into the process environment and resolves the
// configuration from it. A missing envFile is not an error, and variables
// already present in the environment are never overridden.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", envFile)
		}
	}
	return FromEnv()
}

// FromEnv resolves the configuration from the process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Token:     strings.TrimSpace(os.Getenv(EnvToken)),
		APIURL:    firstNonEmpty(strings.TrimSpace(os.Getenv(EnvAPIURL)), github.DefaultBaseURL),
		UserAgent: firstNonEmpty(strings.TrimSpace(os.Getenv(EnvUserAgent)), github.DefaultUserAgent),
	}
	if cfg.Token == "" {
		return nil, errors.New(errors.ErrCodeMissingToken, "%s is not set", EnvToken)
	}
	if err := errors.ValidateURL(cfg.APIURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", EnvAPIURL)
	}

	cfg.HTTPTimeout = integrations.DefaultTimeout
	if raw := strings.TrimSpace(os.Getenv(EnvHTTPTimeout)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: invalid duration %q", EnvHTTPTimeout, raw)
		}
		cfg.HTTPTimeout = d
	}
	return cfg, nil
}

// ClientOptions returns the options that configure a content client for cfg.
func (c *Config) ClientOptions() []github.Option {
	return []github.Option{
		github.WithBaseURL(c.APIURL),
		github.WithUserAgent(c.UserAgent),
		github.WithTimeout(c.HTTPTimeout),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
