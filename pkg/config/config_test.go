package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
)

const sample = `
[profiles.tcgaloader]
datadir = "networks"
loadplan = "/etc/tcga/loadplan.json"
include = ["*.txt"]
redis_addr = "localhost:6379"

[profiles.dev]
outdir = "out"
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample), "/home/u/conf/config.toml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	p, err := c.Profile("")
	if err != nil {
		t.Fatalf("Profile(\"\"): %v", err)
	}
	if p.DataDir != filepath.Join("/home/u/conf", "networks") {
		t.Errorf("DataDir = %q", p.DataDir)
	}
	if p.LoadPlan != "/etc/tcga/loadplan.json" {
		t.Errorf("LoadPlan = %q, absolute paths must be kept", p.LoadPlan)
	}
	if !slices.Equal(p.Include, []string{"*.txt"}) || p.RedisAddr != "localhost:6379" {
		t.Errorf("profile = %+v", p)
	}

	dev, err := c.Profile("dev")
	if err != nil || dev.OutDir != filepath.Join("/home/u/conf", "out") {
		t.Errorf("Profile(dev) = %+v, %v", dev, err)
	}

	if _, err := c.Profile("prod"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Profile(prod) error = %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Syntax", "[profiles.x\ndatadir = 1"},
		{"UnknownKey", "[profiles.x]\nusername = \"bob\""},
		{"WrongType", "[profiles.x]\ninclude = \"*.txt\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input), "c.toml"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(default, missing) = %v", err)
	}
	if p, err := c.Profile("anything"); err != nil || p.DataDir != "" {
		t.Errorf("empty config profile = %+v, %v", p, err)
	}

	if _, err := Load(filepath.Join(dir, "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing explicit) error = %v", err)
	}

	path := filepath.Join(dir, AppName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	c, err = Load("")
	if err != nil {
		t.Fatalf("Load(default) = %v", err)
	}
	if c.Path() != path {
		t.Errorf("Path() = %q, want %q", c.Path(), path)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(p, filepath.Join(".config", AppName, FileName)) {
		t.Errorf("DefaultPath() = %q", p)
	}
}
