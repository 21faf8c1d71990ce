package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/AlenVelocity/MeowScript/pkg/interpreter"
	"github.com/AlenVelocity/MeowScript/pkg/lexer"
	"github.com/AlenVelocity/MeowScript/pkg/parser"
)

const (
	replBanner         = "Welcome to the MeowScript REPL. Type in commands to get started."
	continuationPrompt = ".. "
)

func runRepl(args []string, s streams) int {
	if len(args) > 0 {
		fmt.Fprintf(s.stderr, "meow repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}
	p, err := loadProject(".")
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	history := p.config.HistoryFile
	if f, err := os.Open(history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(s.stdout, replBanner)
	// kibble reads through liner, never through a second buffer on stdin.
	interp := p.newInterpreter(s, interpreter.WithLineReader(ln.Prompt))
	session := &replSession{interp: interp, stdout: s.stdout, stderr: s.stderr}
	for {
		src, ok := readInput(ln.Prompt, p.config.Prompt, continuationPrompt)
		if !ok {
			fmt.Fprintln(s.stdout)
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		session.eval(src)
	}
}

// replSession evaluates inputs against one persistent global environment.
type replSession struct {
	interp *interpreter.Interpreter
	stdout io.Writer
	stderr io.Writer
}

func (r *replSession) eval(src string) {
	val, err := r.interp.Run(src)
	if err != nil {
		reportError(r.stderr, err)
		return
	}
	if val != nil {
		fmt.Fprintln(r.stdout, val.String())
	}
}

// readInput collects lines until they form a program that is not cut short by
// the end of input. It reports false once the input stream is closed.
func readInput(prompt func(string) (string, error), main, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := main
		if b.Len() > 0 {
			p = cont
		}
		line, err := prompt(p)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !needsMore(b.String()) {
			return b.String(), true
		}
	}
}

func needsMore(src string) bool {
	p := parser.New(lexer.New(src))
	p.ParseProgram()
	return len(p.Errors()) > 0 && p.Incomplete()
}
