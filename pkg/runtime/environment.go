package runtime

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUndefinedBinding is returned by Assign when no scope holds the name.
var ErrUndefinedBinding = errors.New("undefined variable")

// Environment provides lexical scoping for MeowScript runtime values.
// Environments are shared by pointer between closures and call frames.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil at the root).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Snapshot returns a copy of the bindings held directly in this scope.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the nearest scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w '%s'", ErrUndefinedBinding, name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Keys returns the local bindings in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend opens a new child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
