package resource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `version: 1
resources:
  - name: database.json
    path: _up_/public/database.json
    aliases:
      - ../public/database.json
`

func TestLoadManifest_ResolvesNamesAndAliases(t *testing.T) {
	dir := t.TempDir()
	seed := touch(t, dir, "_up_/public/database.json")
	path := filepath.Join(dir, DefaultManifestName)
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	loc, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error: %v", err)
	}
	if loc.Names() != 2 {
		t.Errorf("Names() = %d, want 2", loc.Names())
	}

	for _, name := range []string{"database.json", "../public/database.json", "./database.json"} {
		got, ok := loc.Resolve(name)
		if !ok || got != seed {
			t.Errorf("Resolve(%q) = %q, %v; want %q", name, got, ok, seed)
		}
	}
	if _, ok := loc.Resolve("users.json"); ok {
		t.Error("unmapped name resolved")
	}
}

func TestParseManifest_Base(t *testing.T) {
	dir := t.TempDir()
	seed := touch(t, dir, "payload/seed/database.json")

	loc, err := ParseManifest([]byte("base: payload\nresources:\n  - name: database.json\n    path: seed/database.json\n"), dir)
	if err != nil {
		t.Fatalf("ParseManifest() error: %v", err)
	}
	if got, ok := loc.Resolve("database.json"); !ok || got != seed {
		t.Errorf("Resolve() = %q, %v; want %q", got, ok, seed)
	}
}

func TestParseManifest_MappedFileMissing(t *testing.T) {
	loc, err := ParseManifest([]byte(sampleManifest), t.TempDir())
	if err != nil {
		t.Fatalf("ParseManifest() error: %v", err)
	}
	if _, ok := loc.Resolve("database.json"); ok {
		t.Error("a mapping to a missing file must not resolve")
	}
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"not yaml", "resources: [", "invalid manifest"},
		{"unknown key", "resources:\n  - name: a\n    file: b\n", "invalid manifest"},
		{"future version", "version: 2\nresources: []\n", "unsupported manifest version"},
		{"negative version", "version: -1\nresources: []\n", "unsupported manifest version"},
		{"missing name", "resources:\n  - path: a.json\n", "name is required"},
		{"missing path", "resources:\n  - name: a.json\n", "path is required"},
		{"duplicate alias", "resources:\n  - name: a.json\n    path: a.json\n    aliases: [a.json]\n", "declared twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data), t.TempDir())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}
