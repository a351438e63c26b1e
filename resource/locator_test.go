package resource

import (
	"os"
	"path/filepath"
	"testing"
)

// touch creates a file (and parents) under root and returns its absolute path.
func touch(t *testing.T, root string, rel string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		t.Fatal(err)
	}
	return abs
}

func TestDirLocator_DevelopmentTree(t *testing.T) {
	project := t.TempDir()
	seed := touch(t, project, "public/database.json")
	shellDir := filepath.Join(project, "desktop")
	if err := os.Mkdir(shellDir, 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		root   string
		lookup string
		want   string
		ok     bool
	}{
		{"path-qualified from desktop shell dir", shellDir, "../public/database.json", seed, true},
		{"bare name from public", filepath.Join(project, "public"), "database.json", seed, true},
		{"bare name from project root misses", project, "database.json", "", false},
		{"directory is not a resource", project, "public", "", false},
		{"absolute name rejected", project, seed, "", false},
		{"empty name", project, "", "", false},
		{"dot name", project, ".", "", false},
		{"empty root", "", "database.json", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewDirLocator(tt.root).Resolve(tt.lookup)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tt.lookup, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDirLocator_RelativeRootYieldsAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "database.json")
	chdir(t, dir)

	got, ok := NewDirLocator(".").Resolve("database.json")
	if !ok {
		t.Fatal("Resolve() missed")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Resolve() = %q, want absolute path", got)
	}
}

func TestBundleLocator_UpDirRewrite(t *testing.T) {
	install := t.TempDir()
	seed := touch(t, install, "_up_/public/database.json")
	bare := touch(t, install, "database.json")

	loc := NewBundleLocator(install)

	if got, ok := loc.Resolve("../public/database.json"); !ok || got != seed {
		t.Errorf("Resolve(path-qualified) = %q, %v; want %q", got, ok, seed)
	}
	if got, ok := loc.Resolve("database.json"); !ok || got != bare {
		t.Errorf("Resolve(bare) = %q, %v; want %q", got, ok, bare)
	}
	if _, ok := loc.Resolve("../../elsewhere/database.json"); ok {
		t.Error("unbundled path should not resolve")
	}
}

func TestBundlePath(t *testing.T) {
	tests := map[string]string{
		"../public/database.json":   "_up_/public/database.json",
		"../../a/b.json":            "_up_/_up_/a/b.json",
		"database.json":             "database.json",
		"assets/seed/database.json": "assets/seed/database.json",
	}
	for in, want := range tests {
		if got := filepath.ToSlash(BundlePath(filepath.FromSlash(in))); got != want {
			t.Errorf("BundlePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestChain(t *testing.T) {
	first := Func(func(name string) (string, bool) {
		if name == "a" {
			return "/first/a", true
		}
		return "", false
	})
	second := Func(func(name string) (string, bool) {
		return "/second/" + name, true
	})

	c := Chain{nil, first, second}
	if got, _ := c.Resolve("a"); got != "/first/a" {
		t.Errorf("Resolve(a) = %q, want first locator's answer", got)
	}
	if got, _ := c.Resolve("b"); got != "/second/b" {
		t.Errorf("Resolve(b) = %q, want fallthrough to second", got)
	}
	if _, ok := (Chain{}).Resolve("a"); ok {
		t.Error("empty chain should not resolve")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
