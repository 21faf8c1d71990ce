package driver

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fetcher resolves a git dependency into a locked package.
type Fetcher interface {
	Fetch(name string, spec *DependencySpec) (*LockedPackage, error)
}

// Install resolves every dependency declared in the manifest and returns the
// resulting lockfile. Path dependencies are resolved relative to the manifest
// directory and are never copied.
func Install(m *Manifest, fetcher Fetcher, tool string) (*Lockfile, error) {
	lock := NewLockfile(m.Dir, tool)
	for _, name := range m.DependencyNames() {
		spec := m.Dependencies[name]
		var (
			pkg *LockedPackage
			err error
		)
		if spec.Path != "" {
			pkg, err = lockPathDependency(m.Dir, name, spec.Path)
		} else {
			if fetcher == nil {
				return nil, fmt.Errorf("dependency %q: no git fetcher configured", name)
			}
			pkg, err = fetcher.Fetch(name, spec)
		}
		if err != nil {
			return nil, err
		}
		lock.Packages = append(lock.Packages, pkg)
	}
	lock.normalize()
	return lock, nil
}

func lockPathDependency(root, name, path string) (*LockedPackage, error) {
	dir := path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dependency %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dependency %q: %s is not a directory", name, dir)
	}
	checksum, err := dirChecksum(dir)
	if err != nil {
		return nil, fmt.Errorf("dependency %q: checksum: %w", name, err)
	}
	return &LockedPackage{
		Name:     name,
		Source:   "path+" + filepath.ToSlash(path),
		Checksum: checksum,
		Path:     dir,
	}, nil
}
