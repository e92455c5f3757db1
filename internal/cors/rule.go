// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cors

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule admits header values. It is either the wildcard or a list of
// accepted values; a single accepted value is an exact rule.
//
// In JSON and YAML a rule is written as "*", a plain string, or a list of
// strings.
type Rule struct {
	Any    bool     `json:"-" yaml:"-"`
	Values []string `json:"-" yaml:"-"`
}

const wildcard = "*"

// Wildcard admits everything.
func Wildcard() Rule { return Rule{Any: true} }

// Exact admits only v.
func Exact(v string) Rule { return Rule{Values: []string{v}} }

// OneOf admits any of vs.
func OneOf(vs ...string) Rule { return Rule{Values: vs} }

func (r Rule) String() string {
	if r.Any {
		return wildcard
	}
	return strings.Join(r.Values, ",")
}

func (r Rule) matches(v string, fold bool) bool {
	for _, allowed := range r.Values {
		if allowed == v || (fold && strings.EqualFold(allowed, v)) {
			return true
		}
	}
	return false
}

func (r *Rule) set(scalar *string, list []string) {
	if scalar != nil {
		if *scalar == wildcard {
			*r = Wildcard()
			return
		}
		*r = Exact(*scalar)
		return
	}
	*r = OneOf(list...)
}

func (r Rule) MarshalJSON() ([]byte, error) {
	if r.Any {
		return json.Marshal(wildcard)
	}
	if len(r.Values) == 1 {
		return json.Marshal(r.Values[0])
	}
	if r.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Values)
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.set(&s, nil)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRule, data)
	}
	r.set(nil, list)
	return nil
}

func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		r.set(&s, nil)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		r.set(nil, list)
		return nil
	default:
		return fmt.Errorf("%w: line %d", ErrInvalidRule, node.Line)
	}
}
