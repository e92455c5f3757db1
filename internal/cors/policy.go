// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cors

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// DefaultMaxAge is the preflight cache lifetime used when nothing else is
// configured.
const DefaultMaxAge = 86400

// Policy is a fully resolved CORS policy.
type Policy struct {
	Origin        Rule
	Methods       Rule
	Headers       Rule
	ExposeHeaders Rule
	Credentials   bool
	// MaxAge is in seconds. Zero disables Access-Control-Max-Age.
	MaxAge int
}

// Defaults returns the built-in policy: everything allowed, credentials
// allowed, preflight cached for a day.
func Defaults() Policy {
	return Policy{
		Origin:        Wildcard(),
		Methods:       Wildcard(),
		Headers:       Wildcard(),
		ExposeHeaders: Wildcard(),
		Credentials:   true,
		MaxAge:        DefaultMaxAge,
	}
}

// PolicyConfig is a partial policy as written in configuration. Nil fields
// fall back to the enclosing default.
type PolicyConfig struct {
	Origin        *Rule `json:"origin,omitempty" yaml:"origin"`
	Methods       *Rule `json:"methods,omitempty" yaml:"methods"`
	Headers       *Rule `json:"headers,omitempty" yaml:"headers"`
	ExposeHeaders *Rule `json:"exposeHeaders,omitempty" yaml:"exposeHeaders"`
	Credentials   *bool `json:"credentials,omitempty" yaml:"credentials"`
	MaxAge        *int  `json:"maxAge,omitempty" yaml:"maxAge"`
}

// Over resolves c field by field on top of base.
func (c PolicyConfig) Over(base Policy) Policy {
	p := base
	if c.Origin != nil {
		p.Origin = *c.Origin
	}
	if c.Methods != nil {
		p.Methods = *c.Methods
	}
	if c.Headers != nil {
		p.Headers = *c.Headers
	}
	if c.ExposeHeaders != nil {
		p.ExposeHeaders = *c.ExposeHeaders
	}
	if c.Credentials != nil {
		p.Credentials = *c.Credentials
	}
	if c.MaxAge != nil {
		p.MaxAge = *c.MaxAge
	}
	return p
}

// Validate rejects settings no browser could act on.
func (c PolicyConfig) Validate() error {
	if c.MaxAge != nil && *c.MaxAge < 0 {
		return ErrNegativeMaxAge
	}
	return nil
}

// PolicySet holds the global default and the per-group overrides.
type PolicySet struct {
	Default Policy
	Groups  map[string]PolicyConfig
}

// NewPolicySet resolves def over [Defaults] and keeps groups as overrides
// of the result.
func NewPolicySet(def PolicyConfig, groups map[string]PolicyConfig) PolicySet {
	return PolicySet{Default: def.Over(Defaults()), Groups: groups}
}

// Resolve returns the policy for group. Unknown and empty groups get the
// default policy; known groups inherit every field they leave unset.
func (s PolicySet) Resolve(group string) Policy {
	if group == "" {
		return s.Default
	}
	cfg, ok := s.Groups[group]
	if !ok {
		return s.Default
	}
	return cfg.Over(s.Default)
}

// Validate checks the default and every group.
func (s PolicySet) Validate() error {
	if s.Default.MaxAge < 0 {
		return ErrNegativeMaxAge
	}
	for name, cfg := range s.Groups {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
	}
	return nil
}

// PolicyFile is the on-disk layout of a policy file.
//
//	default:
//	  origin: ["https://app.example.com"]
//	groups:
//	  admin:
//	    credentials: false
type PolicyFile struct {
	Default PolicyConfig            `json:"default" yaml:"default"`
	Groups  map[string]PolicyConfig `json:"groups" yaml:"groups"`
}

// LoadPolicyFile reads and validates a policy file. JSON files parse as
// YAML, so one decoder serves both formats.
func LoadPolicyFile(path string) (PolicySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PolicySet{}, fmt.Errorf("read cors policy file: %w", err)
	}

	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return PolicySet{}, fmt.Errorf("parse cors policy file %s: %w", path, err)
	}

	if err := file.Default.Validate(); err != nil {
		return PolicySet{}, err
	}
	set := NewPolicySet(file.Default, file.Groups)
	if err := set.Validate(); err != nil {
		return PolicySet{}, err
	}
	return set, nil
}

// Policies is the live policy set. It is replaced atomically when the
// policy file changes and read once per request.
type Policies struct {
	current atomic.Pointer[PolicySet]
}

func NewPolicies(set PolicySet) *Policies {
	p := &Policies{}
	p.Store(set)
	return p
}

// Store replaces the live set.
func (p *Policies) Store(set PolicySet) {
	p.current.Store(&set)
}

// Load returns the live set.
func (p *Policies) Load() PolicySet {
	return *p.current.Load()
}

// Resolve returns the live policy for group.
func (p *Policies) Resolve(group string) Policy {
	return p.Load().Resolve(group)
}
