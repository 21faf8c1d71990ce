package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Lockfile captures the resolved dependency set for a project.
type Lockfile struct {
	Path      string
	Root      string
	Generated time.Time
	Tool      string
	Packages  []*LockedPackage
}

// LockedPackage records one resolved dependency. Path is the directory its
// libraries are loaded from.
type LockedPackage struct {
	Name     string
	Version  string
	Source   string
	Commit   string
	Checksum string
	Path     string
}

// NewLockfile creates an empty lockfile for the given project root.
func NewLockfile(root, tool string) *Lockfile {
	return &Lockfile{
		Root:      root,
		Tool:      tool,
		Generated: time.Now().UTC(),
	}
}

// Package returns the locked entry for name, if present.
func (l *Lockfile) Package(name string) *LockedPackage {
	if l == nil {
		return nil
	}
	for _, pkg := range l.Packages {
		if pkg != nil && pkg.Name == name {
			return pkg
		}
	}
	return nil
}

// LoadLockfile parses meow.lock from disk.
func LoadLockfile(path string) (*Lockfile, error) {
	if path == "" {
		return nil, fmt.Errorf("lockfile: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("lockfile: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var disk lockfileDisk
	if err := decoder.Decode(&disk); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("lockfile: %s is empty", absPath)
		}
		return nil, fmt.Errorf("lockfile: parse %s: %w", absPath, err)
	}
	lock := disk.toLockfile(absPath)
	if err := lock.validate(); err != nil {
		return nil, err
	}
	return lock, nil
}

// WriteLockfile serialises the lockfile to disk, creating parent directories as needed.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		return fmt.Errorf("lockfile: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	lock.normalize()
	if err := lock.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("lockfile: mkdir %s: %w", filepath.Dir(absPath), err)
	}
	file, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("lockfile: create %s: %w", absPath, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(lock.toDisk()); err != nil {
		return fmt.Errorf("lockfile: encode %s: %w", absPath, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("lockfile: flush %s: %w", absPath, err)
	}
	lock.Path = absPath
	return nil
}

func (l *Lockfile) normalize() {
	l.Root = strings.TrimSpace(l.Root)
	l.Tool = strings.TrimSpace(l.Tool)
	pkgs := l.Packages[:0]
	for _, pkg := range l.Packages {
		if pkg != nil {
			pkgs = append(pkgs, pkg)
		}
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	l.Packages = pkgs
}

func (l *Lockfile) validate() error {
	seen := make(map[string]bool, len(l.Packages))
	for i, pkg := range l.Packages {
		if pkg == nil || pkg.Name == "" {
			return fmt.Errorf("lockfile: packages[%d] missing name", i)
		}
		if seen[pkg.Name] {
			return fmt.Errorf("lockfile: duplicate package %s", pkg.Name)
		}
		seen[pkg.Name] = true
		if pkg.Source == "" {
			return fmt.Errorf("lockfile: package %s missing source", pkg.Name)
		}
	}
	return nil
}

type lockfileDisk struct {
	Root      string              `yaml:"root"`
	Generated string              `yaml:"generated,omitempty"`
	Tool      string              `yaml:"tool,omitempty"`
	Packages  []lockedPackageDisk `yaml:"packages"`
}

type lockedPackageDisk struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version,omitempty"`
	Source   string `yaml:"source"`
	Commit   string `yaml:"commit,omitempty"`
	Checksum string `yaml:"checksum,omitempty"`
	Path     string `yaml:"path,omitempty"`
}

func (l *Lockfile) toDisk() lockfileDisk {
	disk := lockfileDisk{
		Root: l.Root,
		Tool: l.Tool,
	}
	if !l.Generated.IsZero() {
		disk.Generated = l.Generated.UTC().Format(time.RFC3339)
	}
	for _, pkg := range l.Packages {
		disk.Packages = append(disk.Packages, lockedPackageDisk{
			Name:     pkg.Name,
			Version:  pkg.Version,
			Source:   pkg.Source,
			Commit:   pkg.Commit,
			Checksum: pkg.Checksum,
			Path:     pkg.Path,
		})
	}
	return disk
}

func (d lockfileDisk) toLockfile(path string) *Lockfile {
	lock := &Lockfile{
		Path: path,
		Root: strings.TrimSpace(d.Root),
		Tool: strings.TrimSpace(d.Tool),
	}
	if d.Generated != "" {
		if ts, err := time.Parse(time.RFC3339, d.Generated); err == nil {
			lock.Generated = ts
		}
	}
	for _, pkg := range d.Packages {
		lock.Packages = append(lock.Packages, &LockedPackage{
			Name:     strings.TrimSpace(pkg.Name),
			Version:  strings.TrimSpace(pkg.Version),
			Source:   strings.TrimSpace(pkg.Source),
			Commit:   strings.TrimSpace(pkg.Commit),
			Checksum: strings.TrimSpace(pkg.Checksum),
			Path:     strings.TrimSpace(pkg.Path),
		})
	}
	return lock
}
