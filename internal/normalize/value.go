// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package normalize

// Kind tags the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMap
	KindConvertible
)

var kindNames = [...]string{
	KindNull:        "null",
	KindBool:        "bool",
	KindInt:         "int",
	KindFloat:       "float",
	KindString:      "string",
	KindSequence:    "sequence",
	KindMap:         "map",
	KindConvertible: "convertible",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Arrayable is implemented by results that know how to present themselves
// as a map or sequence. The conversion happens before normalization and
// redaction.
type Arrayable interface {
	ToArray() Value
}

// Pair is one entry of an ordered map.
type Pair struct {
	Key   string
	Value Value
}

// P is shorthand for constructing a [Pair].
func P(key string, v Value) Pair {
	return Pair{Key: key, Value: v}
}

// Value is a JSON-like value. The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	items []Value
	pairs []Pair
	conv  Arrayable
}

func Null() Value              { return Value{} }
func Bool(b bool) Value        { return Value{kind: KindBool, b: b} }
func Int(i int64) Value        { return Value{kind: KindInt, i: i} }
func Float(f float64) Value    { return Value{kind: KindFloat, f: f} }
func String(s string) Value    { return Value{kind: KindString, s: s} }
func Seq(items ...Value) Value { return Value{kind: KindSequence, items: items} }
func Map(pairs ...Pair) Value  { return Value{kind: KindMap, pairs: pairs} }

// Convertible wraps a value that is converted with ToArray on normalization.
// A nil converter yields null.
func Convertible(a Arrayable) Value {
	if a == nil {
		return Null()
	}
	return Value{kind: KindConvertible, conv: a}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload and whether v is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload and whether v is an int.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsString returns the string payload and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Pairs returns the entries of a map in order, or nil.
func (v Value) Pairs() []Pair {
	if v.kind != KindMap {
		return nil
	}
	return v.pairs
}

// Get looks up key in a map. The first matching entry wins.
func (v Value) Get(key string) (Value, bool) {
	for _, p := range v.Pairs() {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of elements of a sequence or map, the byte length
// of a string, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMap:
		return len(v.pairs)
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

// IsEmpty reports whether v carries nothing worth logging: null, the empty
// string, or an empty map or sequence.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString, KindSequence, KindMap:
		return v.Len() == 0
	default:
		return false
	}
}

// Convert resolves a convertible value. Other values are returned as is.
// Chains of converters are followed up to a fixed bound.
func (v Value) Convert() Value {
	for i := 0; v.kind == KindConvertible && i < maxConversions; i++ {
		v = v.conv.ToArray()
	}
	if v.kind == KindConvertible {
		return Null()
	}
	return v
}

const maxConversions = 8
