// Package driver holds the project plumbing around the interpreter: the
// meow.yml manifest, the meow.lock lockfile, configuration, the git dependency
// fetcher and the library source loader.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const (
	ManifestFileName = "meow.yml"
	LockfileFileName = "meow.lock"
)

var ErrManifestNotFound = errors.New("manifest: " + ManifestFileName + " not found")

// Manifest represents the parsed contents of meow.yml.
type Manifest struct {
	Path         string
	Dir          string
	Name         string
	Version      string
	Entry        string
	Libraries    []string
	Dependencies map[string]*DependencySpec
	Settings     Config
}

// DependencySpec describes where a dependency's libraries come from: a git
// repository pinned by rev, tag or branch, or a local path.
type DependencySpec struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
	Path   string `yaml:"path"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// FindManifest walks from dir towards the filesystem root looking for meow.yml.
func FindManifest(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrManifestNotFound
		}
		abs = parent
	}
}

// LoadManifest parses meow.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, absPath)
		}
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeManifest(file, absPath)
}

func decodeManifest(r io.Reader, absPath string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// DependencyNames returns the dependency names in sorted order.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LibraryDirs returns the extra library search directories as absolute paths.
func (m *Manifest) LibraryDirs() []string {
	dirs := make([]string, 0, len(m.Libraries))
	for _, lib := range m.Libraries {
		if filepath.IsAbs(lib) {
			dirs = append(dirs, lib)
			continue
		}
		dirs = append(dirs, filepath.Join(m.Dir, lib))
	}
	return dirs
}

// EntryPath resolves the entry script against the manifest directory. It is
// empty when the manifest names no entry.
func (m *Manifest) EntryPath() string {
	if m.Entry == "" || filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(m.Dir, m.Entry)
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Version != "" && !semver.IsValid(canonicalVersion(m.Version)) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("version %q is not a semantic version", m.Version))
	}
	if m.Entry != "" {
		ext := m.Settings.Extension
		if ext == "" {
			ext = DefaultExtension
		}
		if filepath.Ext(m.Entry) != ext {
			errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must have the extension %s", m.Entry, ext))
		}
	}
	for i, lib := range m.Libraries {
		if lib == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("libraries[%d] must be a non-empty path", i))
		}
	}
	for _, name := range m.DependencyNames() {
		if sanitizeSegment(name) != name {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: name may only contain letters, digits, '-', '_' and '.'", name))
		}
		for _, issue := range m.Dependencies[name].validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: %s", name, issue))
		}
	}
	if m.Settings.MaxCachedLibraries < 0 {
		errs.Issues = append(errs.Issues, "settings.max_cached_libraries must not be negative")
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (d *DependencySpec) validate() []string {
	var errs []string
	if d == nil {
		return []string{"must specify git or path"}
	}
	switch {
	case d.Git == "" && d.Path == "":
		errs = append(errs, "must specify git or path")
	case d.Git != "" && d.Path != "":
		errs = append(errs, "cannot specify both git and path")
	case d.Path != "" && (d.Rev != "" || d.Tag != "" || d.Branch != ""):
		errs = append(errs, "path dependencies cannot specify rev, tag or branch")
	case d.Git != "":
		pins := 0
		for _, pin := range []string{d.Rev, d.Tag, d.Branch} {
			if pin != "" {
				pins++
			}
		}
		if pins != 1 {
			errs = append(errs, "git dependencies require exactly one of rev, tag or branch")
		}
	}
	return errs
}

// canonicalVersion accepts versions with or without the leading v.
func canonicalVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

type manifestFile struct {
	Name         string                     `yaml:"name"`
	Version      string                     `yaml:"version"`
	Entry        string                     `yaml:"entry"`
	Libraries    []string                   `yaml:"libraries"`
	Dependencies map[string]*DependencySpec `yaml:"dependencies"`
	Settings     settingsFile               `yaml:"settings"`
}

type settingsFile struct {
	Extension          string `yaml:"extension"`
	CacheDir           string `yaml:"cache_dir"`
	HistoryFile        string `yaml:"history_file"`
	Prompt             string `yaml:"prompt"`
	MaxCachedLibraries int    `yaml:"max_cached_libraries"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:         path,
		Dir:          filepath.Dir(path),
		Name:         strings.TrimSpace(mf.Name),
		Version:      strings.TrimSpace(mf.Version),
		Entry:        strings.TrimSpace(mf.Entry),
		Dependencies: make(map[string]*DependencySpec, len(mf.Dependencies)),
		Settings: Config{
			Extension:          strings.TrimSpace(mf.Settings.Extension),
			CacheDir:           strings.TrimSpace(mf.Settings.CacheDir),
			HistoryFile:        strings.TrimSpace(mf.Settings.HistoryFile),
			Prompt:             mf.Settings.Prompt,
			MaxCachedLibraries: mf.Settings.MaxCachedLibraries,
		},
	}
	for _, lib := range mf.Libraries {
		result.Libraries = append(result.Libraries, strings.TrimSpace(lib))
	}
	for name, dep := range mf.Dependencies {
		name = strings.TrimSpace(name)
		if dep == nil {
			result.Dependencies[name] = nil
			continue
		}
		result.Dependencies[name] = &DependencySpec{
			Git:    strings.TrimSpace(dep.Git),
			Rev:    strings.TrimSpace(dep.Rev),
			Tag:    strings.TrimSpace(dep.Tag),
			Branch: strings.TrimSpace(dep.Branch),
			Path:   strings.TrimSpace(dep.Path),
		}
	}
	return result
}

// sanitizeSegment keeps a name usable as a single path segment.
func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
