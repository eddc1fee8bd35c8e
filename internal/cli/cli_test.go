package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowbasis/pkg/cache"
	"github.com/matzehuels/flowbasis/pkg/errors"
)

const network = "1 0 1\n0 1 1\n"

// run executes the root command with args against isolated config and cache
// directories and returns what it wrote to its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func writeNetwork(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.txt")
	if err := os.WriteFile(path, []byte(network), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeText(t *testing.T) {
	out, err := run(t, writeNetwork(t))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.HasPrefix(out, "Number Feasible: 3\n") {
		t.Errorf("unexpected report:\n%s", out)
	}
	if !strings.Contains(out, "Node Feasible") {
		t.Errorf("report is missing the column table:\n%s", out)
	}
	if strings.Contains(out, "Number of repeats") {
		t.Errorf("details should only print at debug level:\n%s", out)
	}
}

func TestAnalyzeJSON(t *testing.T) {
	out, err := run(t, writeNetwork(t), "--format", "json", "--no-cache")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got struct {
		Rows          int  `json:"rows"`
		Columns       int  `json:"columns"`
		TotalFeasible int  `json:"total_feasible"`
		Cached        bool `json:"cached"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Rows != 2 || got.Columns != 3 || got.TotalFeasible != 3 || got.Cached {
		t.Errorf("report = %+v", got)
	}
}

func TestAnalyzeOutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "report.yaml")
	out, err := run(t, writeNetwork(t), "-f", "yaml", "-o", dest)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "Analyzed") || !strings.Contains(out, "3 feasible") || !strings.Contains(out, dest) {
		t.Errorf("status output = %q", out)
	}
	if strings.Contains(out, "Number Feasible") {
		t.Errorf("report should go to the file only, got %q", out)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "total_feasible: 3") {
		t.Errorf("yaml report:\n%s", data)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"x.txt", "--format", "xml"}, errors.ErrCodeInvalidFormat},
		{"missing file", []string{filepath.Join(os.TempDir(), "flowbasis-missing.txt")}, errors.ErrCodeFileNotFound},
		{"bad registry", []string{"", "--registry", "hash"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if args[0] == "" {
				args = append([]string{writeNetwork(t)}, args[1:]...)
			}
			_, err := run(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestAnalyzeWithoutArgsPrintsUsage(t *testing.T) {
	out, err := run(t)
	if !stderrors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("usage not printed:\n%s", out)
	}
}

func TestTrieDOT(t *testing.T) {
	out, err := run(t, "trie", writeNetwork(t), "--dot")
	if err != nil {
		t.Fatalf("trie: %v", err)
	}
	if !strings.HasPrefix(out, "digraph Trie {") {
		t.Errorf("not DOT output:\n%s", out)
	}
	if !strings.Contains(out, "c0") {
		t.Errorf("column labels missing:\n%s", out)
	}
}

func TestCachePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(cacheHome, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCompletionBash(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "bash completion") {
		t.Errorf("unexpected completion script:\n%.200s", out)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "flowbasis version") {
		t.Errorf("version output = %q", out)
	}
}

func TestNewRunnerKeyPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"default", "", "analysis:trie:1:abc"},
		{"scoped", "staging:", "staging:analysis:trie:1:abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.Config.Cache.KeyPrefix = tt.prefix
			r, err := c.newRunner(context.Background(), true)
			if err != nil {
				t.Fatalf("newRunner: %v", err)
			}
			defer r.Close()
			got := r.Keyer.AnalysisKey("abc", cache.AnalysisKeyOpts{Registry: "trie", Version: "1"})
			if got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
		})
	}
}
