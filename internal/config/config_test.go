package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/watchfire-io/widgethost/internal/models"
)

func TestLoadSettingsDefaults(t *testing.T) {
	p := Paths{Base: t.TempDir()}

	settings, err := LoadSettings(p)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if settings.WidgetsDir != "widgets" {
		t.Errorf("WidgetsDir = %q, want widgets", settings.WidgetsDir)
	}
	if !settings.Blur || !settings.WatchWidgets {
		t.Errorf("Blur = %v, WatchWidgets = %v, want both true", settings.Blur, settings.WatchWidgets)
	}
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	p := Paths{Base: t.TempDir()}
	if err := os.WriteFile(p.SettingsFile(), []byte("blur: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(p)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if settings.Blur {
		t.Error("Blur = true, want false from file")
	}
	if settings.WidgetsDir != "widgets" {
		t.Errorf("WidgetsDir = %q, want default widgets", settings.WidgetsDir)
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "blur: [\n"},
		{name: "empty widgets dir", content: "widgets_dir: \"\"\n"},
		{name: "future version", content: "version: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paths{Base: t.TempDir()}
			if err := os.WriteFile(p.SettingsFile(), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSettings(p); err == nil {
				t.Error("LoadSettings() error = nil, want error")
			}
		})
	}
}

func TestSaveJSONReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "enabled.json")

	if err := SaveJSON(path, map[string]bool{"Clock": true, "Notes": false}); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}
	if err := SaveJSON(path, map[string]bool{"Clock": false}); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"Clock\": false\n}\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestWidgetsDir(t *testing.T) {
	p := Paths{Base: "/opt/widgethost"}

	tests := []struct {
		configured string
		want       string
	}{
		{configured: "", want: "/opt/widgethost/widgets"},
		{configured: "widgets", want: "/opt/widgethost/widgets"},
		{configured: "extra/widgets", want: "/opt/widgethost/extra/widgets"},
		{configured: "/srv/widgets", want: "/srv/widgets"},
	}

	for _, tt := range tests {
		t.Run(tt.configured, func(t *testing.T) {
			if got := p.WidgetsDir(tt.configured); got != tt.want {
				t.Errorf("WidgetsDir(%q) = %q, want %q", tt.configured, got, tt.want)
			}
		})
	}
}

func TestNewPathsAbsolute(t *testing.T) {
	dir := t.TempDir()
	p, err := NewPaths(dir)
	if err != nil {
		t.Fatalf("NewPaths() error: %v", err)
	}
	if !filepath.IsAbs(p.Base) {
		t.Errorf("Base = %q, want absolute", p.Base)
	}
	if !strings.HasSuffix(p.EnabledFile(), EnabledFileName) {
		t.Errorf("EnabledFile() = %q", p.EnabledFile())
	}
}

func TestIsHostRunning(t *testing.T) {
	t.Run("no host file", func(t *testing.T) {
		p := Paths{Base: t.TempDir()}
		running, info, err := IsHostRunning(p)
		if err != nil {
			t.Fatalf("IsHostRunning() error: %v", err)
		}
		if running || info != nil {
			t.Errorf("IsHostRunning() = %v, %v, want false, nil", running, info)
		}
	})

	t.Run("live process", func(t *testing.T) {
		p := Paths{Base: t.TempDir()}
		if err := SaveHostInfo(p, models.NewHostInfo(os.Getpid(), p.Base, 2)); err != nil {
			t.Fatal(err)
		}
		running, info, err := IsHostRunning(p)
		if err != nil {
			t.Fatalf("IsHostRunning() error: %v", err)
		}
		if !running {
			t.Error("running = false, want true")
		}
		if info == nil || info.WidgetCount != 2 {
			t.Errorf("info = %+v, want widget count 2", info)
		}
	})

	t.Run("stale file is removed", func(t *testing.T) {
		p := Paths{Base: t.TempDir()}
		if err := SaveHostInfo(p, models.NewHostInfo(99999999, p.Base, 0)); err != nil {
			t.Fatal(err)
		}
		running, _, err := IsHostRunning(p)
		if err != nil {
			t.Fatalf("IsHostRunning() error: %v", err)
		}
		if running {
			t.Error("running = true, want false")
		}
		if FileExists(p.HostFile()) {
			t.Error("stale host file was not removed")
		}
	})
}
