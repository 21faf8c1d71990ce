package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
	"github.com/AlenVelocity/MeowScript/pkg/driver"
	"github.com/AlenVelocity/MeowScript/pkg/parser"
	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// BuiltinPrefix marks libraries shipped with the interpreter.
const BuiltinPrefix = "nya:"

// builtinLibrary pairs Go natives with an optional MeowScript fragment that is
// evaluated on top of them.
type builtinLibrary struct {
	natives func(i *Interpreter) map[string]runtime.Value
	source  string
}

var builtinLibraries = map[string]builtinLibrary{
	"clawtility": {natives: (*Interpreter).clawtilityNatives},
	"furrball":   {natives: (*Interpreter).furrballNatives, source: furrballSource},
	"whiskers":   {natives: (*Interpreter).whiskersNatives},
	"scratchpad": {natives: (*Interpreter).scratchpadNatives},
	"catculator": {natives: (*Interpreter).catculatorNatives},
	"yarnball":   {natives: (*Interpreter).yarnballNatives},
}

// BuiltinLibraries lists the names accepted after the nya: prefix.
func BuiltinLibraries() []string {
	names := make([]string, 0, len(builtinLibraries))
	for name := range builtinLibraries {
		names = append(names, BuiltinPrefix+name)
	}
	return names
}

func (i *Interpreter) evaluateInclude(inc *ast.IncludeStatement, env *runtime.Environment) (*runtime.Environment, error) {
	exports, err := i.loadLibrary(inc.Library)
	if err != nil {
		return nil, err
	}
	layer := env.Extend()
	for name, val := range exports {
		layer.Define(name, val)
	}
	return layer, nil
}

// loadLibrary returns the bindings a library exports.
func (i *Interpreter) loadLibrary(name string) (map[string]runtime.Value, error) {
	if i.loading[name] {
		return nil, runtime.NewError("cyclic include: %s", name)
	}
	i.loading[name] = true
	defer delete(i.loading, name)

	if lib, ok := strings.CutPrefix(name, BuiltinPrefix); ok {
		builtin, found := builtinLibraries[lib]
		if !found {
			return nil, runtime.NewError("could not load library: %s", name)
		}
		return i.loadBuiltin(name, builtin)
	}

	program, err := i.loader.Load(name)
	if err != nil {
		if errors.Is(err, driver.ErrLibraryNotFound) {
			return nil, runtime.NewError("could not load library: %s", name)
		}
		return nil, runtime.NewError("could not load library: %s: %v", name, err)
	}
	return i.evaluateLibrary(program, i.prelude.Extend())
}

func (i *Interpreter) loadBuiltin(name string, lib builtinLibrary) (map[string]runtime.Value, error) {
	env := i.prelude.Extend()
	for fnName, fn := range lib.natives(i) {
		env.Define(fnName, fn)
	}
	if lib.source == "" {
		return env.Snapshot(), nil
	}
	program, errs := parser.Parse(lib.source)
	if len(errs) > 0 {
		return nil, fmt.Errorf("library %s: %w", name, &ParseError{Messages: errs})
	}
	return i.evaluateLibrary(program, env)
}

// evaluateLibrary runs a library body and collects its top-level bindings,
// including those of libraries it includes itself.
func (i *Interpreter) evaluateLibrary(program *ast.Program, env *runtime.Environment) (map[string]runtime.Value, error) {
	_, final, err := i.evaluateStatements(program.Statements, env)
	if err != nil {
		if _, ok := err.(returnSignal); !ok {
			return nil, escapedSignalError(err)
		}
	}

	exports := make(map[string]runtime.Value)
	for scope := final; scope != nil && scope != i.prelude; scope = scope.Parent() {
		for _, name := range scope.Keys() {
			if _, shadowed := exports[name]; !shadowed {
				exports[name], _ = scope.Get(name)
			}
		}
	}
	return exports, nil
}
