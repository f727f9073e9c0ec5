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
	"github.com/bits-and-blooms/bitset"
)

type selfConformanceState uint8

const (
	selfConformanceUnknown selfConformanceState = iota
	selfConformanceConforms
	selfConformanceDoesNotConform
)

// Session holds the state of one compilation:
// the conformance cache, the memoized existential self-conformance
// results of protocols, and the allocator for type variables.
//
// A session is not safe for concurrent use.
// Concurrent drivers use one session per worker.
type Session struct {
	cache              *ConformanceCache
	selfConformance    map[*ProtocolDecl]selfConformanceState
	protocolIndices    map[*ProtocolDecl]uint
	nextTypeVariableID uint64
}

func NewSession() *Session {
	return &Session{
		cache:           NewConformanceCache(),
		selfConformance: map[*ProtocolDecl]selfConformanceState{},
		protocolIndices: map[*ProtocolDecl]uint{},
	}
}

func (s *Session) Cache() *ConformanceCache {
	return s.cache
}

// NewTypeVariable returns a fresh unification variable.
func (s *Session) NewTypeVariable() *TypeVariable {
	s.nextTypeVariableID++
	return &TypeVariable{
		Number: s.nextTypeVariableID,
	}
}

// protocolIndex returns the dense index of the given protocol,
// which is used to track protocols in bit sets.
func (s *Session) protocolIndex(protocol *ProtocolDecl) uint {
	index, ok := s.protocolIndices[protocol]
	if !ok {
		index = uint(len(s.protocolIndices))
		s.protocolIndices[protocol] = index
	}
	return index
}

// ProtocolSet is a set of protocols of a session.
type ProtocolSet struct {
	session *Session
	bits    *bitset.BitSet
}

func (s *Session) NewProtocolSet() ProtocolSet {
	return ProtocolSet{
		session: s,
		bits:    bitset.New(uint(len(s.protocolIndices))),
	}
}

// Insert adds the protocol to the set,
// and returns false if it was already contained.
func (set ProtocolSet) Insert(protocol *ProtocolDecl) bool {
	index := set.session.protocolIndex(protocol)
	if set.bits.Test(index) {
		return false
	}
	set.bits.Set(index)
	return true
}

func (set ProtocolSet) Contains(protocol *ProtocolDecl) bool {
	index, ok := set.session.protocolIndices[protocol]
	return ok && set.bits.Test(index)
}

func (set ProtocolSet) Len() int {
	return int(set.bits.Count())
}

// ExistentialConformsToSelf returns the memoized result
// of the existential self-conformance check of the given protocol.
// The first result is false if the check was not performed yet.
func (s *Session) ExistentialConformsToSelf(protocol *ProtocolDecl) (known bool, conforms bool) {
	switch s.selfConformance[protocol] {
	case selfConformanceConforms:
		return true, true
	case selfConformanceDoesNotConform:
		return true, false
	default:
		return false, false
	}
}

func (s *Session) setExistentialConformsToSelf(protocol *ProtocolDecl, conforms bool) {
	if conforms {
		s.selfConformance[protocol] = selfConformanceConforms
	} else {
		s.selfConformance[protocol] = selfConformanceDoesNotConform
	}
}
