package runtime

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// HashKey is the structural identity of a value usable as a map key.
type HashKey struct {
	Kind   Kind
	Number float64
	Text   string
	Bool   bool
}

// HashKeyOf returns the key for v. Only numbers, strings and booleans hash.
func HashKeyOf(v Value) (HashKey, bool) {
	switch val := v.(type) {
	case NumberValue:
		return HashKey{Kind: KindNumber, Number: val.Val}, true
	case StringValue:
		return HashKey{Kind: KindString, Text: val.Val}, true
	case BoolValue:
		return HashKey{Kind: KindBool, Bool: val.Val}, true
	default:
		return HashKey{}, false
	}
}

// UnusableKeyError is returned when a non-hashable value is used as a key.
func UnusableKeyError(v Value) *ErrorValue {
	return NewError("unusable as hash key: %s", v.Kind())
}

// MapEntry is a single key/value pair in insertion order.
type MapEntry struct {
	Key   Value
	Value Value
}

// MapValue is an insertion-ordered map. Re-setting an existing key keeps its
// original position.
type MapValue struct {
	entries *linkedhashmap.Map
}

func NewMap() *MapValue {
	return &MapValue{entries: linkedhashmap.New()}
}

func (m *MapValue) Kind() Kind { return KindMap }

// Set stores value under key, failing when key is not hashable.
func (m *MapValue) Set(key, value Value) error {
	hk, ok := HashKeyOf(key)
	if !ok {
		return UnusableKeyError(key)
	}
	m.entries.Put(hk, MapEntry{Key: key, Value: value})
	return nil
}

// Get looks up key. Unhashable keys are simply absent.
func (m *MapValue) Get(key Value) (Value, bool) {
	hk, ok := HashKeyOf(key)
	if !ok {
		return nil, false
	}
	raw, found := m.entries.Get(hk)
	if !found {
		return nil, false
	}
	return raw.(MapEntry).Value, true
}

func (m *MapValue) Has(key Value) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *MapValue) Len() int {
	return m.entries.Size()
}

// Entries returns the pairs in insertion order.
func (m *MapValue) Entries() []MapEntry {
	out := make([]MapEntry, 0, m.entries.Size())
	it := m.entries.Iterator()
	for it.Next() {
		out = append(out, it.Value().(MapEntry))
	}
	return out
}

func (m *MapValue) Keys() []Value {
	entries := m.Entries()
	keys := make([]Value, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

func (m *MapValue) String() string {
	entries := m.Entries()
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m *MapValue) equal(other *MapValue) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, e := range m.Entries() {
		v, ok := other.Get(e.Key)
		if !ok || !Equal(e.Value, v) {
			return false
		}
	}
	return true
}
