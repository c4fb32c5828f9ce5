package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()

	project := filepath.Join(root, "project")
	nested := filepath.Join(project, "a", "b")
	if err := os.MkdirAll(filepath.Join(project, DirName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok := findProjectRoot(nested)
	if !ok {
		t.Fatal("expected to find project root")
	}
	if got != project {
		t.Errorf("expected %s, got %s", project, got)
	}
}

func TestFindProjectRoot_NotFound(t *testing.T) {
	root := t.TempDir()
	if _, ok := findProjectRoot(root); ok {
		t.Error("expected no project root in an empty temp dir")
	}
}

func TestFindProjectRoot_IgnoresFile(t *testing.T) {
	root := t.TempDir()
	// A regular file named .placetree is not a project marker.
	if err := os.WriteFile(filepath.Join(root, DirName), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, ok := findProjectRoot(root); ok && got == root {
		t.Error("expected a .placetree file to be ignored")
	}
}

func TestResolveExplicitWins(t *testing.T) {
	if got := Resolve("/etc/placetree.yaml"); got != "/etc/placetree.yaml" {
		t.Errorf("expected explicit path, got %s", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/x.yaml"); got != filepath.Join(home, "x.yaml") {
		t.Errorf("unexpected expansion %s", got)
	}
	if got := expandHome("rel/x.yaml"); got != "rel/x.yaml" {
		t.Errorf("expected relative path untouched, got %s", got)
	}
}

func TestResolveStateDir(t *testing.T) {
	cfgPath := filepath.Join("/work", "proj", DirName, FileName)

	tests := []struct {
		name     string
		stateDir string
		path     string
		want     string
	}{
		{"disabled", "", cfgPath, ""},
		{"absolute", "/var/state", cfgPath, "/var/state"},
		{"relative to project", DirName, cfgPath, filepath.Join("/work", "proj", DirName)},
		{"relative without project", "state", "/home/u/.config/placetree/config.yaml", "state"},
	}

	for _, tt := range tests {
		got := ResolveStateDir(Config{StateDir: tt.stateDir}, tt.path)
		if got != tt.want {
			t.Errorf("%s: ResolveStateDir(%q) = %q, want %q", tt.name, tt.stateDir, got, tt.want)
		}
	}
}
