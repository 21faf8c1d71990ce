// Package interpreter evaluates MeowScript programs by walking the AST.
package interpreter

import (
	"bufio"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
	"github.com/AlenVelocity/MeowScript/pkg/driver"
	"github.com/AlenVelocity/MeowScript/pkg/parser"
	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// LibraryLoader resolves a non built-in library name to a parsed program.
// Implementations return an error wrapping driver.ErrLibraryNotFound when no
// search root holds the library.
type LibraryLoader interface {
	Load(name string) (*ast.Program, error)
}

// Interpreter drives evaluation of MeowScript AST nodes.
type Interpreter struct {
	prelude *runtime.Environment
	global  *runtime.Environment

	stdout io.Writer
	stdin  *bufio.Reader
	prompt func(string) (string, error)
	fs     billy.Filesystem
	loader LibraryLoader
	rand   *rand.Rand
	sleep  func(time.Duration)

	loading map[string]bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

func WithStdin(r io.Reader) Option {
	return func(i *Interpreter) { i.stdin = bufio.NewReader(r) }
}

// WithLineReader routes kibble through an external line editor, which is then
// responsible for showing the prompt. It takes precedence over the stdin reader.
func WithLineReader(prompt func(string) (string, error)) Option {
	return func(i *Interpreter) { i.prompt = prompt }
}

// WithFilesystem sets the filesystem used by the scratchpad natives.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(i *Interpreter) { i.fs = fs }
}

// WithLoader sets the resolver for file libraries.
func WithLoader(loader LibraryLoader) Option {
	return func(i *Interpreter) { i.loader = loader }
}

// WithRandSource seeds the random natives, mainly for reproducible tests.
func WithRandSource(src rand.Source) Option {
	return func(i *Interpreter) { i.rand = rand.New(src) }
}

// WithSleep replaces the function used by nap.
func WithSleep(sleep func(time.Duration)) Option {
	return func(i *Interpreter) { i.sleep = sleep }
}

// New returns an interpreter whose global environment sits on top of the
// prelude of global natives.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		stdout:  os.Stdout,
		stdin:   bufio.NewReader(os.Stdin),
		sleep:   time.Sleep,
		loading: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.fs == nil {
		i.fs = osfs.New(workingDir())
	}
	if i.loader == nil {
		i.loader = driver.NewLoader(driver.LoaderOptions{Roots: []billy.Filesystem{i.fs}})
	}
	if i.rand == nil {
		i.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	i.prelude = runtime.NewEnvironment(nil)
	for name, fn := range i.preludeNatives() {
		i.prelude.Define(name, fn)
	}
	i.global = i.prelude.Extend()
	return i
}

func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// GlobalEnvironment returns the environment top-level statements run in. It
// changes when a top-level include layers a library over it.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// ParseError aggregates the messages of a failed parse.
type ParseError struct {
	Messages []string
}

func (e *ParseError) Error() string {
	return "parse error: " + strings.Join(e.Messages, "; ")
}

// Run parses and evaluates source in the persistent global environment.
func (i *Interpreter) Run(source string) (runtime.Value, error) {
	program, errs := parser.Parse(source)
	if len(errs) > 0 {
		return nil, &ParseError{Messages: errs}
	}
	return i.EvaluateProgram(program)
}

// EvaluateProgram executes statements top to bottom and returns the value of
// the last one. A nil value means the last statement produced nothing
// observable. Evaluation errors are returned as *runtime.ErrorValue.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	val, env, err := i.evaluateStatements(program.Statements, i.global)
	i.global = env
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, escapedSignalError(err)
	}
	return val, nil
}

// escapedSignalError converts a loop signal that escaped its function, library
// or program into an evaluation error.
func escapedSignalError(err error) error {
	switch err.(type) {
	case breakSignal:
		return runtime.NewError("break outside of loop")
	case continueSignal:
		return runtime.NewError("continue outside of loop")
	}
	return err
}
