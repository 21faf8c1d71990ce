package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AlenVelocity/MeowScript/pkg/driver"
	"github.com/AlenVelocity/MeowScript/pkg/interpreter"
	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

func runFile(path string, s streams) int {
	p, err := loadProject(".")
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return 1
	}
	if filepath.Ext(path) != p.config.Extension {
		fmt.Fprintf(s.stderr, "File must have the extension %s\n", p.config.Extension)
		return 1
	}
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(s.stderr, "Could not read file: %v\n", err)
		return 1
	}

	interp := p.newInterpreter(s)
	val, err := interp.Run(string(source))
	if err != nil {
		reportError(s.stderr, err)
		return 1
	}
	if val != nil && val.Kind() != runtime.KindNull {
		fmt.Fprintln(s.stdout, val.String())
	}
	return 0
}

// runEntry runs the script named by the manifest's entry field.
func runEntry(s streams) int {
	p, err := loadProject(".")
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return 1
	}
	if p.manifest == nil || p.manifest.Entry == "" {
		fmt.Fprintf(s.stderr, "meow run: no file given and no entry in %s\n", driver.ManifestFileName)
		return 1
	}
	return runFile(p.manifest.EntryPath(), s)
}

// reportError prints parse errors one per tab-indented line and anything else
// on a single line.
func reportError(w io.Writer, err error) {
	var parseErr *interpreter.ParseError
	if errors.As(err, &parseErr) {
		for _, msg := range parseErr.Messages {
			fmt.Fprintf(w, "\t%s\n", msg)
		}
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
