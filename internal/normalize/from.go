// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// From converts an arbitrary Go value into a [Value].
//
// Scalars map onto their variant, slices and arrays onto sequences and maps
// with string keys onto maps with sorted keys. Unsigned integers that do not
// fit into int64 become decimal strings. Any other value, structs included,
// is encoded with encoding/json and decoded back, so json struct tags and
// custom marshalers are honoured. Containers nested deeper than maxDepth,
// cyclic ones included, are cut off with the string "<recursion>".
func From(x any) Value {
	return from(x, 0)
}

const (
	maxDepth        = 64
	recursionMarker = "<recursion>"
)

func from(x any, depth int) Value {
	if depth > maxDepth {
		return String(recursionMarker)
	}

	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Value:
		if t == nil {
			return Null()
		}
		return *t
	case Arrayable:
		return Convertible(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return fromUint(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return String(t)
	case json.Number:
		return fromNumber(t)
	case json.RawMessage:
		v, err := Parse(t)
		if err != nil {
			return String(string(t))
		}
		return v
	case []byte:
		return String(string(t))
	case error:
		return String(t.Error())
	case []any:
		items := make([]Value, 0, len(t))
		for _, e := range t {
			items = append(items, from(e, depth+1))
		}
		return Seq(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		pairs := make([]Pair, 0, len(t))
		for _, k := range keys {
			pairs = append(pairs, P(k, from(t[k], depth+1)))
		}
		return Map(pairs...)
	}

	return fromReflect(reflect.ValueOf(x), depth)
}

func fromReflect(rv reflect.Value, depth int) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return from(rv.Elem().Interface(), depth+1)
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, from(rv.Index(i).Interface(), depth+1))
		}
		return Seq(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return Null()
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		pairs := make([]Pair, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, P(k, from(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface(), depth+1)))
		}
		return Map(pairs...)
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	}

	data, err := json.Marshal(rv.Interface())
	if err != nil {
		return String(fmt.Sprint(rv.Interface()))
	}
	v, err := Parse(data)
	if err != nil {
		return String(string(data))
	}
	return v
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return String(strconv.FormatUint(u, 10))
	}
	return Int(int64(u))
}

func fromNumber(n json.Number) Value {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return Int(i)
	}
	if isIntegerLiteral(string(n)) {
		// Integer literal beyond int64: keep every digit.
		return String(string(n))
	}
	if f, err := strconv.ParseFloat(string(n), 64); err == nil {
		return Float(f)
	}
	return String(string(n))
}

func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ErrTrailingData is returned by [Parse] when the input holds more than one
// JSON document.
var ErrTrailingData = errors.New("normalize: trailing data after JSON value")

// Parse decodes a single JSON document into a [Value], keeping object keys
// in document order. Integers are decoded exactly.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("normalize: parse JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, ErrTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return fromNumber(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Seq(items...), nil
		case '{':
			var pairs []Pair
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				pairs = append(pairs, P(key, item))
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Map(pairs...), nil
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
