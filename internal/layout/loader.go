package layout

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/paneweave/paneweave/internal/identity"
)

//go:embed defaults/*.yml
var embeddedPresets embed.FS

// DefaultPresetName is the builtin preset used when no name is given.
const DefaultPresetName = "single"

// PresetInfo provides metadata about an available preset.
type PresetInfo struct {
	Name        string
	Description string
	Source      string // "builtin", "global", "project"
	Path        string // empty for builtin
}

// Loader loads presets from builtin, global, and project sources.
// Precedence when names collide: project, then global, then builtin.
type Loader struct {
	globalPresetsDir string
	projectDir       string

	builtin map[string]*Preset
	global  map[string]*Preset
	project *Preset
}

// NewLoader creates a loader reading globals from presetsDir and the
// project preset from projectDir. Either may be empty.
func NewLoader(presetsDir, projectDir string) *Loader {
	return &Loader{
		globalPresetsDir: presetsDir,
		projectDir:       projectDir,
		builtin:          make(map[string]*Preset),
		global:           make(map[string]*Preset),
	}
}

// LoadAll loads presets from all sources. Individual unreadable files are
// skipped; only structural failures are reported.
func (l *Loader) LoadAll() error {
	if err := l.loadBuiltins(); err != nil {
		return err
	}
	if err := l.loadGlobals(); err != nil {
		return err
	}
	return l.loadProject()
}

func (l *Loader) loadBuiltins() error {
	entries, err := embeddedPresets.ReadDir("defaults")
	if err != nil {
		return fmt.Errorf("layout: read embedded presets: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		data, err := embeddedPresets.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return fmt.Errorf("layout: read embedded %s: %w", entry.Name(), err)
		}
		preset, err := parsePreset(data, entry.Name())
		if err != nil {
			return err
		}
		l.builtin[preset.Name] = preset
	}
	return nil
}

func (l *Loader) loadGlobals() error {
	if l.globalPresetsDir == "" {
		return nil
	}
	info, err := os.Stat(l.globalPresetsDir)
	if err != nil || !info.IsDir() {
		return nil
	}
	entries, err := os.ReadDir(l.globalPresetsDir)
	if err != nil {
		return fmt.Errorf("layout: read presets dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isPresetFileName(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(l.globalPresetsDir, entry.Name()))
		if err != nil {
			continue
		}
		preset, err := parsePreset(data, entry.Name())
		if err != nil {
			continue
		}
		l.global[preset.Name] = preset
	}
	return nil
}

func (l *Loader) loadProject() error {
	if l.projectDir == "" {
		return nil
	}
	path := filepath.Join(l.projectDir, identity.ProjectConfigFileYML)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("layout: read project preset: %w", err)
	}
	preset, err := parsePreset(data, identity.ProjectConfigFileYML)
	if err != nil {
		return err
	}
	l.project = preset
	return nil
}

// Get retrieves a preset by name together with its source. The empty name
// resolves to the project preset when present, else the builtin default.
func (l *Loader) Get(name string) (*Preset, string, error) {
	if name == "" {
		if l.project != nil {
			return l.project, "project", nil
		}
		name = DefaultPresetName
	}
	if l.project != nil && l.project.Name == name {
		return l.project, "project", nil
	}
	if preset, ok := l.global[name]; ok {
		return preset, "global", nil
	}
	if preset, ok := l.builtin[name]; ok {
		return preset, "builtin", nil
	}
	return nil, "", fmt.Errorf("layout: preset %q not found", name)
}

// List returns info about all available presets, sorted by name.
func (l *Loader) List() []PresetInfo {
	seen := make(map[string]bool)
	var infos []PresetInfo

	if l.project != nil {
		infos = append(infos, PresetInfo{
			Name:        l.project.Name,
			Description: l.project.Description,
			Source:      "project",
			Path:        filepath.Join(l.projectDir, identity.ProjectConfigFileYML),
		})
		seen[l.project.Name] = true
	}
	for name, preset := range l.global {
		if seen[name] {
			continue
		}
		infos = append(infos, PresetInfo{
			Name:        name,
			Description: preset.Description,
			Source:      "global",
			Path:        filepath.Join(l.globalPresetsDir, name+".yml"),
		})
		seen[name] = true
	}
	for name, preset := range l.builtin {
		if seen[name] {
			continue
		}
		infos = append(infos, PresetInfo{
			Name:        name,
			Description: preset.Description,
			Source:      "builtin",
		})
		seen[name] = true
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func parsePreset(data []byte, filename string) (*Preset, error) {
	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("layout: parse preset %s: %w", filename, err)
	}
	if preset.Name == "" {
		preset.Name = strings.TrimSuffix(strings.TrimSuffix(filename, ".yml"), ".yaml")
	}
	return &preset, nil
}

func isPresetFileName(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}
