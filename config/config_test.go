package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/jclass/classfile"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[decode]
resolve = true
min-major = 45
max-major = 69

[output]
format = "json"

[log]
verbosity = 2
file = "jclass.log"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !c.Decode.Resolve {
		t.Error("decode.resolve = false, want true")
	}
	if c.Decode.MinMajor != 45 || c.Decode.MaxMajor != 69 {
		t.Errorf("decode version range = %d..%d, want 45..69", c.Decode.MinMajor, c.Decode.MaxMajor)
	}
	if c.Output.Format != "json" {
		t.Errorf("output format = %q, want json", c.Output.Format)
	}
	if c.Log.Verbosity != 2 || c.Log.File != "jclass.log" {
		t.Errorf("log = %+v, want verbosity 2, file jclass.log", c.Log)
	}
	if c.Path != path {
		t.Errorf("path = %q, want %q", c.Path, path)
	}
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, t.TempDir(), "[decode]\nresolve = true\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Output.Format != "line" {
		t.Errorf("output format = %q, want line", c.Output.Format)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[decode\n", "parse error"},
		{"unknown key", "[decode]\nresolv = true\n", "unknown key"},
		{"format", "[output]\nformat = \"xml\"\n", "unknown output format"},
		{"range", "[decode]\nmin-major = 60\nmax-major = 50\n", "greater than"},
		{"verbosity", "[log]\nverbosity = -5\n", "below -4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\nformat = \"cbor\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c.Output.Format != "cbor" {
		t.Errorf("output format = %q, want cbor", c.Output.Format)
	}
}

func TestFindAndLoadMissing(t *testing.T) {
	c, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c.Path != "" || c.Output.Format != "line" {
		t.Errorf("FindAndLoad() = %+v, want defaults", c)
	}
}

// emptyClass is a class file with an empty pool and no body content.
func emptyClass(major byte) []byte {
	data := []byte{0xCA, 0xFE, 0xBA, 0xBE, 0, 0, 0, major, 0, 1}
	return append(data, make([]byte, 14)...)
}

func TestDecodeOptions(t *testing.T) {
	tests := []struct {
		name   string
		decode Decode
		major  byte
		ok     bool
	}{
		{"no range", Decode{}, 99, true},
		{"inside", Decode{MinMajor: 45, MaxMajor: 69}, 61, true},
		{"above", Decode{MinMajor: 45, MaxMajor: 69}, 70, false},
		{"below open max", Decode{MinMajor: 52}, 50, false},
		{"open max", Decode{MinMajor: 52}, 200, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Decode = tt.decode
			_, err := classfile.Parse(emptyClass(tt.major), c.DecodeOptions()...)
			if tt.ok && err != nil {
				t.Errorf("Parse() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, classfile.ErrUnsupportedVersion) {
				t.Errorf("Parse() error = %v, want ErrUnsupportedVersion", err)
			}
		})
	}
}
