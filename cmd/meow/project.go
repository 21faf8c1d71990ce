package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/AlenVelocity/MeowScript/pkg/driver"
	"github.com/AlenVelocity/MeowScript/pkg/interpreter"
)

// project is the resolved context a script or REPL session runs in. The
// manifest and lockfile are optional.
type project struct {
	workDir  string
	manifest *driver.Manifest
	lock     *driver.Lockfile
	config   driver.Config
}

func loadProject(dir string) (*project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	p := &project{workDir: abs}

	var settings driver.Config
	manifestPath, err := driver.FindManifest(abs)
	switch {
	case err == nil:
		manifest, err := driver.LoadManifest(manifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		p.manifest = manifest
		settings = manifest.Settings
	case !errors.Is(err, driver.ErrManifestNotFound):
		return nil, err
	}

	if p.config, err = driver.ResolveConfig(settings); err != nil {
		return nil, err
	}

	if p.manifest != nil {
		lockPath := filepath.Join(p.manifest.Dir, driver.LockfileFileName)
		if _, statErr := os.Stat(lockPath); statErr == nil {
			lock, err := driver.LoadLockfile(lockPath)
			if err != nil {
				return nil, err
			}
			p.lock = lock
		}
	}
	return p, nil
}

// libraryRoots puts the working directory ahead of the project roots.
func (p *project) libraryRoots() []billy.Filesystem {
	roots := []billy.Filesystem{osfs.New(p.workDir)}
	return append(roots, driver.ProjectRoots(p.manifest, p.lock)...)
}

func (p *project) newInterpreter(s streams, extra ...interpreter.Option) *interpreter.Interpreter {
	loader := driver.NewLoader(driver.LoaderOptions{
		Roots:     p.libraryRoots(),
		Extension: p.config.Extension,
		CacheSize: p.config.MaxCachedLibraries,
	})
	opts := []interpreter.Option{
		interpreter.WithStdin(s.stdin),
		interpreter.WithStdout(s.stdout),
		interpreter.WithFilesystem(osfs.New(p.workDir)),
		interpreter.WithLoader(loader),
	}
	return interpreter.New(append(opts, extra...)...)
}
