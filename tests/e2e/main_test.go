package main_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

// buildPlacetreeBinary compiles cmd/placetree into a temp dir.
func buildPlacetreeBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e build in -short mode")
	}
	binPath := filepath.Join(t.TempDir(), "placetree")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/placetree")
	cmd.Dir = filepath.Join("..", "..")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

// isolatedEnv keeps the user's own config out of the run.
func isolatedEnv(t *testing.T) []string {
	return append(os.Environ(), "XDG_CONFIG_HOME="+t.TempDir(), "PLACETREE_LOG=")
}

func TestEndToEndBuildAndRun(t *testing.T) {
	binPath := buildPlacetreeBinary(t)
	envDir := t.TempDir()

	runCmd := exec.Command(binPath, "--version")
	runCmd.Dir = envDir
	runCmd.Env = isolatedEnv(t)
	out, err := runCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Execution failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(string(out), "placetree ") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestEndToEndRowsJSON(t *testing.T) {
	binPath := buildPlacetreeBinary(t)
	envDir := t.TempDir()

	// A project config in the working directory is picked up.
	if err := os.MkdirAll(filepath.Join(envDir, ".placetree"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(envDir, ".placetree", "config.yaml"), []byte("state_dir: \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	runCmd := exec.Command(binPath, "--rows-json", "--select", "Brazil")
	runCmd.Dir = envDir
	runCmd.Env = isolatedEnv(t)
	out, err := runCmd.Output()
	if err != nil {
		t.Fatalf("--rows-json failed: %v", err)
	}

	var doc struct {
		Total    int `json:"total"`
		Selected int `json:"selected"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc.Total != 20 || doc.Selected != 3 {
		t.Errorf("expected 20 rows with 3 selected, got %+v", doc)
	}
}

func TestEndToEndExportMarkdown(t *testing.T) {
	binPath := buildPlacetreeBinary(t)
	envDir := t.TempDir()
	report := filepath.Join(envDir, "places.md")

	runCmd := exec.Command(binPath, "--select", "Toronto", "--export-md", report)
	runCmd.Dir = envDir
	runCmd.Env = isolatedEnv(t)
	if out, err := runCmd.CombinedOutput(); err != nil {
		t.Fatalf("--export-md failed: %v\n%s", err, out)
	}
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Selected places", "- [-] Canada", "- [x] Toronto"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report missing %q:\n%s", want, data)
		}
	}
}

func TestEndToEndUnknownSelection(t *testing.T) {
	binPath := buildPlacetreeBinary(t)

	runCmd := exec.Command(binPath, "--rows-json", "--select", "Atlantis")
	runCmd.Dir = t.TempDir()
	runCmd.Env = isolatedEnv(t)
	out, err := runCmd.CombinedOutput()
	var exitErr *exec.ExitError
	if err == nil || !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "Atlantis") {
		t.Errorf("expected error to name the label, got %s", out)
	}
}
