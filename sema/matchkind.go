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

//go:generate stringer -type=MatchKind -trimprefix=MatchKind

// MatchKind is the outcome of matching a witness against a requirement.
// Kinds are ordered: lower kinds are better matches.
type MatchKind uint8

const (
	// MatchKindExact: the witness matched the requirement exactly
	MatchKindExact MatchKind = iota
	// MatchKindRenamed: the witness matched the requirement with some renaming
	MatchKindRenamed
	// MatchKindWitnessInvalid: the witness is invalid or has an invalid type
	MatchKindWitnessInvalid
	// MatchKindKindConflict: the witness is a different kind of declaration,
	// e.g. a property for a function requirement
	MatchKindKindConflict
	// MatchKindTypeConflict: the types conflict
	MatchKindTypeConflict
	// MatchKindStaticNonStaticConflict: static-ness differs
	MatchKindStaticNonStaticConflict
	// MatchKindPrefixNonPrefixConflict: a prefix operator is required
	MatchKindPrefixNonPrefixConflict
	// MatchKindPostfixNonPostfixConflict: a postfix operator is required
	MatchKindPostfixNonPostfixConflict
)

// IsViable returns true if a match of this kind may satisfy the requirement.
func (k MatchKind) IsViable() bool {
	switch k {
	case MatchKindExact,
		MatchKindRenamed:

		return true

	default:
		return false
	}
}

// HasWitnessType returns true if a match of this kind carries the witness type.
func (k MatchKind) HasWitnessType() bool {
	switch k {
	case MatchKindExact,
		MatchKindRenamed,
		MatchKindTypeConflict:

		return true

	default:
		return false
	}
}

// IsBetterThan returns true if the kind is strictly preferred over the other kind.
func (k MatchKind) IsBetterThan(other MatchKind) bool {
	return k < other
}
