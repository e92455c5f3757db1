// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package normalize

import (
	"math"
	"strconv"
)

// HiddenPlaceholder replaces redacted values.
const HiddenPlaceholder = "<hidden>"

// Normalize makes v safe for JSON clients. Convertible values are converted
// first, integers outside the signed 32-bit range are rendered as decimal
// strings, and maps and sequences are normalized element-wise in order.
// Other scalars are returned unchanged.
func Normalize(v Value) Value {
	v = v.Convert()

	switch v.kind {
	case KindInt:
		if v.i > math.MaxInt32 || v.i < math.MinInt32 {
			return String(strconv.FormatInt(v.i, 10))
		}
		return v
	case KindSequence:
		if len(v.items) == 0 {
			return v
		}
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = Normalize(item)
		}
		return Seq(items...)
	case KindMap:
		if len(v.pairs) == 0 {
			return v
		}
		pairs := make([]Pair, len(v.pairs))
		for i, p := range v.pairs {
			pairs[i] = P(p.Key, Normalize(p.Value))
		}
		return Map(pairs...)
	default:
		return v
	}
}

// Any is Normalize(From(x)).
func Any(x any) Value {
	return Normalize(From(x))
}

// Redact replaces the value of every map entry whose key is listed in hidden
// with [HiddenPlaceholder], at any nesting depth. Convertible values are
// converted before they are inspected. Keys are matched exactly.
func Redact(v Value, hidden []string) Value {
	if len(hidden) == 0 {
		return v.Convert()
	}
	set := make(map[string]struct{}, len(hidden))
	for _, k := range hidden {
		set[k] = struct{}{}
	}
	return redact(v, set)
}

func redact(v Value, hidden map[string]struct{}) Value {
	v = v.Convert()

	switch v.kind {
	case KindSequence:
		if len(v.items) == 0 {
			return v
		}
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = redact(item, hidden)
		}
		return Seq(items...)
	case KindMap:
		if len(v.pairs) == 0 {
			return v
		}
		pairs := make([]Pair, len(v.pairs))
		for i, p := range v.pairs {
			if _, ok := hidden[p.Key]; ok {
				pairs[i] = P(p.Key, String(HiddenPlaceholder))
				continue
			}
			pairs[i] = P(p.Key, redact(p.Value, hidden))
		}
		return Map(pairs...)
	default:
		return v
	}
}
