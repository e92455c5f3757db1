// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type account struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (a account) ToArray() Value {
	return Map(P("name", String(a.Name)), P("password", String(a.Password)))
}

func mustJSON(t *testing.T, v Value) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{name: "max int32 stays int", in: Int(math.MaxInt32), want: `2147483647`},
		{name: "above int32 becomes string", in: Int(math.MaxInt32 + 1), want: `"2147483648"`},
		{name: "min int32 stays int", in: Int(math.MinInt32), want: `-2147483648`},
		{name: "below int32 becomes string", in: Int(math.MinInt32 - 1), want: `"-2147483649"`},
		{name: "null", in: Null(), want: `null`},
		{name: "bool", in: Bool(true), want: `true`},
		{name: "float untouched", in: Float(1.5), want: `1.5`},
		{
			name: "nested containers keep order",
			in:   Map(P("z", Int(1)), P("a", Seq(Int(5000000000), String("x")))),
			want: `{"z":1,"a":["5000000000","x"]}`,
		},
		{
			name: "convertible converted first",
			in:   Convertible(account{Name: "n", Password: "p"}),
			want: `{"name":"n","password":"p"}`,
		},
		{name: "empty map", in: Map(), want: `{}`},
		{name: "empty sequence", in: Seq(), want: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustJSON(t, Normalize(tt.in)))
		})
	}
}

func TestNormalize_IntegerRangeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		i := rapid.Int64().Draw(t, "i")

		got := Normalize(Int(i))

		if i > math.MaxInt32 || i < math.MinInt32 {
			s, ok := got.AsString()
			if !ok || s != strconv.FormatInt(i, 10) {
				t.Fatalf("expected decimal string for %d, got %v", i, got)
			}
			return
		}
		n, ok := got.AsInt()
		if !ok || n != i {
			t.Fatalf("expected int %d unchanged, got %v", i, got)
		}
	})
}

func TestRedact(t *testing.T) {
	in := Map(
		P("user", Map(
			P("name", String("alice")),
			P("password", String("secret")),
			P("tokens", Seq(Map(P("password", Int(1))))),
		)),
		P("password", String("top")),
		P("note", String("password")),
	)

	got := Redact(in, []string{"password"})

	assert.Equal(t,
		`{"user":{"name":"alice","password":"<hidden>","tokens":[{"password":"<hidden>"}]},"password":"<hidden>","note":"password"}`,
		mustJSON(t, got))
}

func TestRedact_ConvertsBeforeInspecting(t *testing.T) {
	got := Redact(Seq(Convertible(account{Name: "n", Password: "p"})), []string{"password"})

	assert.Equal(t, `[{"name":"n","password":"<hidden>"}]`, mustJSON(t, got))
}

func TestRedact_NoHiddenKeys(t *testing.T) {
	in := Map(P("password", String("p")))
	assert.Equal(t, in, Redact(in, nil))
}

func TestFrom(t *testing.T) {
	type payload struct {
		ID    uint64 `json:"id"`
		Label string `json:"label"`
	}

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: `null`},
		{name: "int", in: 7, want: `7`},
		{name: "huge uint", in: uint64(math.MaxUint64), want: `"18446744073709551615"`},
		{name: "string slice", in: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map sorted", in: map[string]int{"b": 2, "a": 1}, want: `{"a":1,"b":2}`},
		{name: "struct via json tags", in: payload{ID: 3, Label: "x"}, want: `{"id":3,"label":"x"}`},
		{name: "nil pointer", in: (*payload)(nil), want: `null`},
		{name: "raw json keeps order", in: json.RawMessage(`{"b":1,"a":2}`), want: `{"b":1,"a":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustJSON(t, From(tt.in)))
		})
	}
}

func TestFrom_CyclicMapIsCutOff(t *testing.T) {
	m := map[string]any{"name": "loop"}
	m["self"] = m

	v := From(m)

	levels := 0
	for v.Kind() == KindMap {
		name, ok := v.Get("name")
		require.True(t, ok)
		assert.Equal(t, String("loop"), name)

		v, ok = v.Get("self")
		require.True(t, ok)
		levels++
	}
	assert.Equal(t, maxDepth+1, levels)
	assert.Equal(t, String(recursionMarker), v)

	_, err := json.Marshal(v)
	require.NoError(t, err)
}

func TestFrom_DeepSliceIsCutOff(t *testing.T) {
	var nested any = "leaf"
	for range maxDepth * 2 {
		nested = []any{nested}
	}

	v := From(nested)
	for v.Kind() == KindSequence {
		require.Equal(t, 1, v.Len())
		v = v.items[0]
	}
	assert.Equal(t, String(recursionMarker), v)
}

func TestFrom_Arrayable(t *testing.T) {
	v := From(account{Name: "n"})
	assert.Equal(t, KindConvertible, v.Kind())
	assert.Equal(t, KindMap, v.Convert().Kind())
}

func TestParse(t *testing.T) {
	v, err := Parse([]byte(`{"z":[1,2.5,"s",null,true],"a":{"big":12345678901234567890123}}`))
	require.NoError(t, err)

	assert.Equal(t, KindMap, v.Kind())
	assert.Equal(t, "z", v.Pairs()[0].Key)

	a, ok := v.Get("a")
	require.True(t, ok)
	big, ok := a.Get("big")
	require.True(t, ok)
	s, ok := big.AsString()
	assert.True(t, ok)
	assert.Equal(t, "12345678901234567890123", s)

	assert.Equal(t, `{"z":[1,2.5,"s",null,true],"a":{"big":"12345678901234567890123"}}`, mustJSON(t, v))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{} {}`))
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"k":"v"}`), &v))
	got, ok := v.Get("k")
	require.True(t, ok)
	s, _ := got.AsString()
	assert.Equal(t, "v", s)
}

func TestValue_IsEmpty(t *testing.T) {
	assert.True(t, Null().IsEmpty())
	assert.True(t, String("").IsEmpty())
	assert.True(t, Map().IsEmpty())
	assert.True(t, Seq().IsEmpty())
	assert.False(t, Int(0).IsEmpty())
	assert.False(t, Bool(false).IsEmpty())
	assert.False(t, Seq(Null()).IsEmpty())
}

func TestMarshalJSON_DoesNotEscapeHTML(t *testing.T) {
	b, err := String("<a>&").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"<a>&"`, string(b))
}
