package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/widgethost/internal/config"
	"github.com/watchfire-io/widgethost/internal/models"
)

// setupBaseDir creates a base directory with Clock and Notes widgets and
// points the --dir flag at it.
func setupBaseDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for folder, meta := range map[string]string{
		"clock": `{"name": "Clock", "width": 200, "height": 100}`,
		"notes": `{"name": "Notes", "width": 300, "height": 300}`,
	} {
		widgetDir := filepath.Join(dir, "widgets", folder)
		if err := os.MkdirAll(widgetDir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(widgetDir, "metadata.json"), []byte(meta), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(widgetDir, "index.html"), []byte("<html></html>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	old := baseDir
	baseDir = dir
	t.Cleanup(func() { baseDir = old })
	return dir
}

func runCommand(t *testing.T, run func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	err := run(cmd, args)
	return out.String(), err
}

func TestList(t *testing.T) {
	dir := setupBaseDir(t)
	if err := os.WriteFile(filepath.Join(dir, "enabled.json"), []byte(`{"Notes": false}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "positions.json"), []byte(`[{"name": "Clock", "position": [100, 200]}]`), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, runList)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var clock, notes string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "Clock"):
			clock = line
		case strings.Contains(line, "Notes"):
			notes = line
		}
	}
	if !strings.Contains(clock, "shown") || !strings.Contains(clock, "(100, 200)") || !strings.Contains(clock, "200x100") {
		t.Errorf("unexpected Clock line: %q", clock)
	}
	if !strings.Contains(notes, "hidden") || !strings.Contains(notes, "(0, 0)") {
		t.Errorf("unexpected Notes line: %q", notes)
	}
}

func TestListInvalidState(t *testing.T) {
	dir := setupBaseDir(t)
	if err := os.WriteFile(filepath.Join(dir, "enabled.json"), []byte(`{"Notes": "no"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, runList); err == nil {
		t.Error("expected error for non-boolean enabled value")
	}
}

func TestStatusNotRunning(t *testing.T) {
	setupBaseDir(t)

	out, err := runCommand(t, runStatus)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "not running") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestStatusRunning(t *testing.T) {
	dir := setupBaseDir(t)
	paths, _ := config.NewPaths(dir)
	if err := config.SaveHostInfo(paths, models.NewHostInfo(os.Getpid(), dir, 2)); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, runStatus)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "is running") || !strings.Contains(out, dir) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestReset(t *testing.T) {
	dir := setupBaseDir(t)
	if err := os.WriteFile(filepath.Join(dir, "enabled.json"), []byte(`{"Clock": false, "Notes": false}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, runReset, "Clock"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "enabled.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Clock") || !strings.Contains(string(data), "Notes") {
		t.Errorf("unexpected enabled.json after reset: %s", data)
	}
}

func TestResetAll(t *testing.T) {
	dir := setupBaseDir(t)
	if err := os.WriteFile(filepath.Join(dir, "enabled.json"), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, runReset); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if config.FileExists(filepath.Join(dir, "enabled.json")) {
		t.Error("enabled.json should be removed")
	}
}

func TestResetRefusedWhileRunning(t *testing.T) {
	dir := setupBaseDir(t)
	paths, _ := config.NewPaths(dir)
	if err := config.SaveHostInfo(paths, models.NewHostInfo(os.Getpid(), dir, 2)); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, runReset); err == nil {
		t.Error("expected reset to be refused while a host is running")
	}
}
