package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/internal/linkcheck"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).RunContext(context.Background(), append([]string{"serwer-docs"}, args...))
	return stdout.String(), err
}

func TestBuildAndClean(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")

	stdout, err := run(t, "--log-level", "error", "build", "--out", out, "--gzip")
	if err != nil {
		t.Fatalf("build failed: %s", err)
	}
	if !strings.Contains(stdout, "Built 7 pages and 2 assets") {
		t.Errorf("unexpected output %q", stdout)
	}
	for _, name := range []string{"index.html", "index.html.gz", "404.html", "sitemap.xml", "docs/guides/params/index.html"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(name))); err != nil {
			t.Errorf("expected %s to be written: %s", name, err)
		}
	}

	_, err = run(t, "clean", "--out", out)
	if err != nil {
		t.Fatalf("clean failed: %s", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed, got %v", out, err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "serwer-docs.yml")
	err := os.WriteFile(file, []byte(`
themeConfig:
  navbar:
    items:
      - label: Blog
        to: /blog
`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	_, err = run(t, "check", "--config", file)
	if !errors.Is(err, linkcheck.ErrBrokenLinks) {
		t.Fatalf("expected broken links, got %v", err)
	}

	stdout, err := run(t, "check")
	if err != nil {
		t.Fatalf("check failed: %s", err)
	}
	if stdout != "Checked 7 pages\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if _, err := os.Stat(defaultOutDir); !os.IsNotExist(err) {
		t.Errorf("expected check to write nothing, got %v", err)
	}
}

func TestInvalidInput(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "check")
	if err == nil || !strings.Contains(err.Error(), `invalid log level "loud"`) {
		t.Errorf("expected an invalid log level error, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "serwer-docs.yml")
	err = os.WriteFile(file, []byte("baseUrl: serwer\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	_, err = run(t, "build", "--config", file, "--out", t.TempDir())
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected an invalid configuration error, got %v", err)
	}

	_, err = run(t, "check", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a missing file error, got %v", err)
	}
}
