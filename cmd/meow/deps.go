package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AlenVelocity/MeowScript/pkg/driver"
)

func runDeps(args []string, s streams) int {
	if len(args) == 0 {
		fmt.Fprintln(s.stderr, "meow deps expects a subcommand (install)")
		return 1
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			fmt.Fprintf(s.stderr, "meow deps install does not take arguments (received %s)\n", strings.Join(args[1:], " "))
			return 1
		}
		return runDepsInstall(s)
	default:
		fmt.Fprintf(s.stderr, "unknown deps subcommand %q\n", args[0])
		return 1
	}
}

func runDepsInstall(s streams) int {
	p, err := loadProject(".")
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return 1
	}
	if p.manifest == nil {
		fmt.Fprintf(s.stderr, "meow deps install: %v\n", driver.ErrManifestNotFound)
		return 1
	}

	lock, err := driver.Install(p.manifest, driver.NewGitFetcher(p.config.CacheDir), cliToolVersion)
	if err != nil {
		fmt.Fprintf(s.stderr, "meow deps install: %v\n", err)
		return 1
	}
	lockPath := filepath.Join(p.manifest.Dir, driver.LockfileFileName)
	if err := driver.WriteLockfile(lock, lockPath); err != nil {
		fmt.Fprintf(s.stderr, "meow deps install: %v\n", err)
		return 1
	}

	for _, pkg := range lock.Packages {
		ref := pkg.Commit
		if ref == "" {
			ref = pkg.Source
		}
		fmt.Fprintf(s.stdout, "locked %s %s\n", pkg.Name, ref)
	}
	fmt.Fprintf(s.stdout, "wrote %s (%d %s)\n", lockPath, len(lock.Packages), plural(len(lock.Packages), "dependency", "dependencies"))
	return 0
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
