package runtime

import (
	"errors"
	"math"
	"testing"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
)

func TestEnvironmentScoping(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NumberValue{Val: 1})

	child := global.Extend()
	child.Define("x", NumberValue{Val: 2})
	if v, _ := child.Get("x"); !Equal(v, NumberValue{Val: 2}) {
		t.Fatalf("expected shadowed x=2, got %v", v)
	}
	if v, _ := global.Get("x"); !Equal(v, NumberValue{Val: 1}) {
		t.Fatalf("shadowing leaked into parent: %v", v)
	}

	global.Define("y", NumberValue{Val: 1})
	if err := child.Assign("y", NumberValue{Val: 5}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if v, _ := global.Get("y"); !Equal(v, NumberValue{Val: 5}) {
		t.Fatalf("assign should update the defining scope, got %v", v)
	}
	if _, ok := child.Snapshot()["y"]; ok {
		t.Fatalf("assign must not create a local binding")
	}

	err := child.Assign("missing", Null)
	if !errors.Is(err, ErrUndefinedBinding) {
		t.Fatalf("expected ErrUndefinedBinding, got %v", err)
	}
	if _, ok := child.Get("missing"); ok {
		t.Fatalf("failed assign must not define a binding")
	}
	if child.Parent() != global {
		t.Fatalf("unexpected parent")
	}
}

func TestEnvironmentKeysSorted(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", Null)
	env.Define("a", Null)
	keys := env.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestRendering(t *testing.T) {
	m := NewMap()
	_ = m.Set(StringValue{Val: "b"}, NumberValue{Val: 2})
	_ = m.Set(StringValue{Val: "a"}, NumberValue{Val: 1})
	_ = m.Set(StringValue{Val: "b"}, NumberValue{Val: 3})

	cases := []struct {
		value Value
		want  string
	}{
		{NumberValue{Val: 7}, "7"},
		{NumberValue{Val: 0.1}, "0.1"},
		{NumberValue{Val: -2.5}, "-2.5"},
		{NumberValue{Val: math.Inf(1)}, "inf"},
		{NumberValue{Val: math.Inf(-1)}, "-inf"},
		{NumberValue{Val: math.NaN()}, "NaN"},
		{StringValue{Val: "purr"}, "purr"},
		{True, "true"},
		{False, "false"},
		{Null, "null"},
		{NewArray([]Value{NumberValue{Val: 1}, StringValue{Val: "x"}}), "[1, x]"},
		{m, "{b: 3, a: 1}"},
		{&FunctionValue{Parameters: []*ast.Identifier{ast.ID("a"), ast.ID("b")}}, "fn(a, b) { ... }"},
		{NewNative("meow", nil), "[inbuilt fn]"},
		{NewError("boom"), "boom"},
	}
	for _, tc := range cases {
		if got := tc.value.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestEqualAndTruthy(t *testing.T) {
	a := NewArray([]Value{NumberValue{Val: 1}, NewArray([]Value{StringValue{Val: "x"}})})
	b := NewArray([]Value{NumberValue{Val: 1}, NewArray([]Value{StringValue{Val: "x"}})})
	if !Equal(a, b) {
		t.Fatalf("arrays should compare structurally")
	}
	if Equal(NumberValue{Val: 1}, StringValue{Val: "1"}) {
		t.Fatalf("different kinds must not be equal")
	}
	fn := NewNative("x", nil)
	if !Equal(fn, fn) || Equal(fn, NewNative("x", nil)) {
		t.Fatalf("natives compare by identity")
	}

	m1, m2 := NewMap(), NewMap()
	_ = m1.Set(StringValue{Val: "a"}, NumberValue{Val: 1})
	_ = m1.Set(True, Null)
	_ = m2.Set(True, Null)
	_ = m2.Set(StringValue{Val: "a"}, NumberValue{Val: 1})
	if !Equal(m1, m2) {
		t.Fatalf("maps with the same entries should be equal regardless of order")
	}

	for _, v := range []Value{NumberValue{Val: 0}, StringValue{Val: ""}, NewArray(nil), True} {
		if !Truthy(v) {
			t.Fatalf("%v should be truthy", v)
		}
	}
	for _, v := range []Value{Null, False} {
		if Truthy(v) {
			t.Fatalf("%v should be falsy", v)
		}
	}
}

func TestMapKeys(t *testing.T) {
	m := NewMap()
	if err := m.Set(NumberValue{Val: 1}, StringValue{Val: "one"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := m.Get(NumberValue{Val: 1}); !ok || v.String() != "one" {
		t.Fatalf("expected one, got %v", v)
	}
	if _, ok := m.Get(StringValue{Val: "1"}); ok {
		t.Fatalf("number and string keys must not collide")
	}
	err := m.Set(NewArray(nil), Null)
	if err == nil || err.Error() != "unusable as hash key: array" {
		t.Fatalf("expected unusable key error, got %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected one entry, got %d", m.Len())
	}
}
