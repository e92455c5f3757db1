// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scope

import (
	"sync"

	"github.com/MKhiriev/go-http-core/internal/utils"
)

// Handle identifies one request scope.
type Handle string

type bucket struct {
	mu     sync.RWMutex
	values map[string]any
}

// Store is a registry of request scopes. It is safe for concurrent use;
// requests only contend on the registry itself while a scope is created or
// destroyed.
type Store struct {
	mu      sync.RWMutex
	buckets map[Handle]*bucket
	ids     *utils.UUIDGenerator
}

func NewStore() *Store {
	return &Store{
		buckets: make(map[Handle]*bucket),
		ids:     utils.NewUUIDGenerator(),
	}
}

// Create opens a new, empty scope.
func (s *Store) Create() Handle {
	h := Handle(s.ids.Generate())

	s.mu.Lock()
	s.buckets[h] = &bucket{values: make(map[string]any)}
	s.mu.Unlock()

	return h
}

func (s *Store) bucket(h Handle) (*bucket, error) {
	s.mu.RLock()
	b, ok := s.buckets[h]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownScope
	}
	return b, nil
}

// Set stores v under key in scope h, replacing any previous value.
func (s *Store) Set(h Handle, key string, v any) error {
	b, err := s.bucket(h)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.values[key] = v
	b.mu.Unlock()
	return nil
}

// Get returns the value stored under key in scope h.
func (s *Store) Get(h Handle, key string) (any, bool) {
	b, err := s.bucket(h)
	if err != nil {
		return nil, false
	}

	b.mu.RLock()
	v, ok := b.values[key]
	b.mu.RUnlock()
	return v, ok
}

// Destroy drops scope h and everything stored in it. Destroying an unknown
// or already destroyed scope returns ErrUnknownScope.
func (s *Store) Destroy(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[h]; !ok {
		return ErrUnknownScope
	}
	delete(s.buckets, h)
	return nil
}

// Len returns the number of live scopes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets)
}
