/*
 * Cadence - The resource-oriented smart contract programming language
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sema

import (
	"github.com/onflow/cadence-conformance/errors"
)

type ConformanceCacheKey struct {
	TypeID   TypeID
	Protocol *ProtocolDecl
}

// ConformanceCacheEntry is the cached answer to a conformance query.
//
// A valid entry holds a proven conformance.
// An invalid entry with a conformance is a known implicit conformance:
// the type satisfies the protocol, but does not declare it.
// An invalid entry without a conformance is a known non-conformance,
// or a recursion sentinel while the conformance is being checked.
type ConformanceCacheEntry struct {
	Conformance ProtocolConformance
	Valid       bool
}

func (e ConformanceCacheEntry) IsNegative() bool {
	return e.Conformance == nil && !e.Valid
}

func (e ConformanceCacheEntry) IsImplicit() bool {
	return e.Conformance != nil && !e.Valid
}

// ConformanceCache memoizes conformance queries of a session,
// keyed by canonical type and protocol.
type ConformanceCache struct {
	entries   map[ConformanceCacheKey]ConformanceCacheEntry
	sentinels map[ConformanceCacheKey]struct{}
}

func NewConformanceCache() *ConformanceCache {
	return &ConformanceCache{
		entries:   map[ConformanceCacheKey]ConformanceCacheEntry{},
		sentinels: map[ConformanceCacheKey]struct{}{},
	}
}

func (c *ConformanceCache) Get(key ConformanceCacheKey) (ConformanceCacheEntry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

func (c *ConformanceCache) Len() int {
	return len(c.entries)
}

// IsPending returns true if a recursion sentinel is installed for the key.
func (c *ConformanceCache) IsPending(key ConformanceCacheKey) bool {
	_, ok := c.sentinels[key]
	return ok
}

// installSentinel records that the key is assumed to not conform
// while its conformance is being checked.
func (c *ConformanceCache) installSentinel(key ConformanceCacheKey) {
	c.checkOverwrite(key, ConformanceCacheEntry{})
	c.entries[key] = ConformanceCacheEntry{}
	c.sentinels[key] = struct{}{}
}

// store records the final entry for the key.
// Replacing a differing final entry is a consistency violation.
func (c *ConformanceCache) store(key ConformanceCacheKey, entry ConformanceCacheEntry) {
	c.checkOverwrite(key, entry)
	c.entries[key] = entry
	delete(c.sentinels, key)
}

func (c *ConformanceCache) checkOverwrite(key ConformanceCacheKey, entry ConformanceCacheEntry) {
	if c.IsPending(key) {
		return
	}
	existing, ok := c.entries[key]
	if !ok || existing == entry {
		return
	}
	panic(errors.NewUnexpectedError(
		"conformance of `%s` to `%s` is already known",
		key.TypeID,
		key.Protocol.Identifier,
	))
}

// discard removes the entry for the key,
// so an explicit conformance can be verified again.
func (c *ConformanceCache) discard(key ConformanceCacheKey) {
	delete(c.entries, key)
	delete(c.sentinels, key)
}

func (c *ConformanceCache) Foreach(f func(key ConformanceCacheKey, entry ConformanceCacheEntry)) {
	for key, entry := range c.entries { //nolint:maprangecheck
		f(key, entry)
	}
}
