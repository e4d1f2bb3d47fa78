package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/assetsync/pkg/errors"
	"github.com/matzehuels/assetsync/pkg/pipeline"
)

const testManifest = `[package]
name = "foo"
license = "MIT OR Apache-2.0"

[dependencies]
bevy = "0.12"
`

type testEnv struct {
	root     string
	requests *atomic.Int32
}

func setup(t *testing.T) testEnv {
	t.Helper()
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/repos/acme/foo/contents/Cargo.toml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"path":     "Cargo.toml",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(testManifest)),
		})
	}))
	t.Cleanup(server.Close)

	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("GITHUB_API_URL", server.URL)
	t.Setenv("ASSETSYNC_USER_AGENT", "")
	t.Setenv("ASSETSYNC_HTTP_TIMEOUT", "")

	root := t.TempDir()
	writeAsset(t, root, "foo.toml", "https://github.com/acme/foo")
	writeAsset(t, root, "other.toml", "https://gitlab.com/acme/other")
	return testEnv{root: root, requests: &requests}
}

func writeAsset(t *testing.T, root, name, link string) {
	t.Helper()
	content := "name = \"" + strings.TrimSuffix(name, ".toml") + "\"\ndescription = \"test\"\nlink = \"" + link + "\"\n"
	if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &out
	cmd := c.RootCommand()
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func TestRootCommandJSON(t *testing.T) {
	env := setup(t)

	stdout, _, err := execute(t, "-o", "json", env.root)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	var report struct {
		Summary pipeline.Summary      `json:"summary"`
		Files   []pipeline.FileResult `json:"files"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	want := pipeline.Summary{Total: 2, Updated: 1, Skipped: 1}
	if report.Summary != want {
		t.Errorf("summary = %+v, want %+v", report.Summary, want)
	}
	if n := env.requests.Load(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}

	data, err := os.ReadFile(filepath.Join(env.root, "foo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{`"0.12"`, `"MIT"`, `"Apache-2.0"`} {
		if !strings.Contains(string(data), s) {
			t.Errorf("foo.toml missing %s:\n%s", s, data)
		}
	}
}

func TestRootCommandTextDryRun(t *testing.T) {
	env := setup(t)
	before, _ := os.ReadFile(filepath.Join(env.root, "foo.toml"))

	stdout, _, err := execute(t, "--dry-run", env.root)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, s := range []string{"foo.toml", "other.toml", "skipped", "dry run", "acme/foo", "bevy 0.12"} {
		if !strings.Contains(stdout, s) {
			t.Errorf("output missing %q:\n%s", s, stdout)
		}
	}

	after, _ := os.ReadFile(filepath.Join(env.root, "foo.toml"))
	if !bytes.Equal(before, after) {
		t.Error("dry run modified foo.toml")
	}
}

func TestRootCommandMissingToken(t *testing.T) {
	env := setup(t)
	t.Setenv("GITHUB_TOKEN", "")

	_, _, err := execute(t, env.root)
	if !errors.Is(err, errors.ErrCodeMissingToken) {
		t.Fatalf("error = %v, want MISSING_TOKEN", err)
	}
	if n := env.requests.Load(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestRootCommandInvalidRoot(t *testing.T) {
	env := setup(t)

	_, _, err := execute(t, filepath.Join(env.root, "missing"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Fatalf("error = %v, want INVALID_PATH", err)
	}
}

func TestRootCommandArgs(t *testing.T) {
	env := setup(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no root", nil},
		{"two roots", []string{env.root, env.root}},
		{"bad output", []string{"-o", "xml", env.root}},
		{"bad prefix", []string{"--prefix", "1bevy", env.root}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
	if n := env.requests.Load(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestRootCommandCanceled(t *testing.T) {
	env := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &out
	cmd := c.RootCommand()
	cmd.SetArgs([]string{"--env-file", "", env.root})
	err := cmd.ExecuteContext(ctx)
	if err != context.Canceled {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if n := env.requests.Load(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestRootCommandVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(stdout, "commit:") {
		t.Errorf("version output = %q", stdout)
	}
}

func TestWriteReportYAML(t *testing.T) {
	r := &pipeline.Report{
		RunID: "run",
		Root:  "assets",
		Files: []pipeline.FileResult{{Path: "assets/a.toml", Status: pipeline.StatusFailed, Reason: "fetch manifest: not found"}},
	}
	var buf bytes.Buffer
	if err := writeReport(&buf, r, pipeline.FormatYAML); err != nil {
		t.Fatalf("writeReport() error: %v", err)
	}
	if !strings.Contains(buf.String(), "status: failed") {
		t.Errorf("yaml output:\n%s", buf.String())
	}
}

func TestPrintReportFailures(t *testing.T) {
	r := &pipeline.Report{
		RunID: "run",
		Root:  "assets",
		Files: []pipeline.FileResult{
			{Path: "assets/a.toml", Status: pipeline.StatusFailed, Reason: "parse asset: bad toml", Code: "INVALID_ASSET"},
			{Path: "assets/b.toml", Status: pipeline.StatusUnchanged},
		},
	}
	var buf bytes.Buffer
	printReport(&buf, r)
	out := buf.String()
	for _, s := range []string{"assets/a.toml", "parse asset: bad toml", "assets/b.toml", "unchanged", "1 failed", "1 files left untouched", "assets/a.toml (INVALID_ASSET)"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "dry run") {
		t.Errorf("unexpected dry run notice:\n%s", out)
	}
}
