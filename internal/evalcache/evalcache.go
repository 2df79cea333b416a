// Copyright 2025 Interview Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package evalcache is a bounded, optionally expiring cache for code
// evaluation results. Keys are derived deterministically from the request
// fields, so identical evaluations across requests hit the same entry.
package evalcache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMaxEntries bounds the cache when no size is configured.
const DefaultMaxEntries = 1024

// Cache wraps an expirable LRU. The zero value is not usable; construct
// with New. All methods are safe for concurrent use.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// New builds a cache holding at most maxEntries values. ttl of zero keeps
// entries until they are evicted by size.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache[V]{lru: expirable.NewLRU[string, V](maxEntries, nil, ttl)}
}

// Get returns the cached value for the key.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Put stores the value under the key, evicting the oldest entry when full.
func (c *Cache[V]) Put(key string, value V) {
	c.lru.Add(key, value)
}

// Len reports the number of live entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Key derives the cache key for one evaluation request. The hash covers the
// five fields pipe-delimited in fixed order; reordering them changes every
// key and must be treated as a breaking change. Language defaults to
// "python" when empty.
func Key(sessionID, recentContext, code, problem, language string) string {
	if language == "" {
		language = "python"
	}
	h := sha256.New()
	h.Write([]byte(sessionID))
	h.Write([]byte("|"))
	h.Write([]byte(recentContext))
	h.Write([]byte("|"))
	h.Write([]byte(strings.TrimSpace(code)))
	h.Write([]byte("|"))
	h.Write([]byte(problem))
	h.Write([]byte("|"))
	h.Write([]byte(language))
	return hex.EncodeToString(h.Sum(nil))
}
