package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paneweave/paneweave/internal/identity"
)

func TestLoaderBuiltins(t *testing.T) {
	l := NewLoader("", "")
	if err := l.LoadAll(); err != nil {
		t.Fatalf("load: %v", err)
	}

	preset, source, err := l.Get("")
	if err != nil {
		t.Fatalf("default preset: %v", err)
	}
	if source != "builtin" || preset.Name != DefaultPresetName {
		t.Fatalf("expected builtin %q, got %q from %q", DefaultPresetName, preset.Name, source)
	}

	preset, _, err = l.Get("grid-2x2")
	if err != nil {
		t.Fatalf("grid-2x2: %v", err)
	}
	built, err := BuildLayout(preset, "layout-grid")
	if err != nil {
		t.Fatalf("build grid-2x2: %v", err)
	}
	if CountLeaves(built.Root) != 4 {
		t.Fatalf("expected 4 leaves from grid-2x2")
	}

	if _, _, err := l.Get("no-such-preset"); err == nil {
		t.Fatalf("expected an error for an unknown preset")
	}
}

func TestLoaderEveryBuiltinBuilds(t *testing.T) {
	l := NewLoader("", "")
	if err := l.LoadAll(); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, info := range l.List() {
		preset, _, err := l.Get(info.Name)
		if err != nil {
			t.Fatalf("get %q: %v", info.Name, err)
		}
		built, err := BuildLayout(preset, "layout-"+info.Name)
		if err != nil {
			t.Fatalf("build %q: %v", info.Name, err)
		}
		mustValidate(t, built)
	}
}

func TestLoaderGlobalOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	yml := "name: single\ndescription: overridden\ngrid: 1x2\n"
	if err := os.WriteFile(filepath.Join(dir, "single.yml"), []byte(yml), 0o600); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	l := NewLoader(dir, "")
	if err := l.LoadAll(); err != nil {
		t.Fatalf("load: %v", err)
	}
	preset, source, err := l.Get("single")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if source != "global" || preset.Description != "overridden" {
		t.Fatalf("expected the global override, got %q from %q", preset.Description, source)
	}
}

func TestLoaderProjectPresetWins(t *testing.T) {
	project := t.TempDir()
	yml := "name: project-layout\ngrid: 2x1\n"
	path := filepath.Join(project, identity.ProjectConfigFileYML)
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write project preset: %v", err)
	}

	l := NewLoader("", project)
	if err := l.LoadAll(); err != nil {
		t.Fatalf("load: %v", err)
	}

	preset, source, err := l.Get("")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if source != "project" || preset.Name != "project-layout" {
		t.Fatalf("expected the project preset, got %q from %q", preset.Name, source)
	}

	infos := l.List()
	if len(infos) == 0 || infos[0].Source == "" {
		t.Fatalf("expected listed presets with sources")
	}
	found := false
	for _, info := range infos {
		if info.Name == "project-layout" && info.Source == "project" {
			found = true
		}
	}
	if !found {
		t.Fatalf("project preset missing from list: %+v", infos)
	}
}

func TestLoaderSkipsUnreadableGlobalFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte(":\n\t- not yaml"), 0o600); err != nil {
		t.Fatalf("write broken preset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	l := NewLoader(dir, "")
	if err := l.LoadAll(); err != nil {
		t.Fatalf("load should skip broken files, got %v", err)
	}
	if _, _, err := l.Get(DefaultPresetName); err != nil {
		t.Fatalf("builtins must still resolve: %v", err)
	}
}
