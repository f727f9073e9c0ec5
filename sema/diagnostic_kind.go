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

//go:generate stringer -type=DiagnosticKind -trimprefix=DiagnosticKind

type DiagnosticKind uint8

const (
	DiagnosticKindUnknown DiagnosticKind = iota
	DiagnosticKindTypeDoesNotConform
	DiagnosticKindInheritedProtocolDoesNotConform
	DiagnosticKindNonClassConformsToClassProtocol
	DiagnosticKindMissingExplicitConformance
	DiagnosticKindNoWitness
	DiagnosticKindAmbiguousWitness
	DiagnosticKindNoTypeWitness
	DiagnosticKindAmbiguousTypeWitness
	DiagnosticKindExistentialAssociatedType
	DiagnosticKindExistentialSelfReference
	DiagnosticKindInvalidTypeArguments
)

// DiagnosticCategory groups diagnostics by the kind of failure.
type DiagnosticCategory uint8

const (
	DiagnosticCategoryUnknown DiagnosticCategory = iota
	// DiagnosticCategoryConformance: the type does not (explicitly) conform
	DiagnosticCategoryConformance
	// DiagnosticCategoryStructuralMismatch: a candidate witness does not match structurally
	DiagnosticCategoryStructuralMismatch
	// DiagnosticCategoryInvalidWitness: a candidate witness is invalid
	DiagnosticCategoryInvalidWitness
	DiagnosticCategoryAmbiguousWitness
	DiagnosticCategoryNoWitness
	DiagnosticCategoryAssociatedTypeUnresolved
	DiagnosticCategoryAssociatedTypeAmbiguous
	// DiagnosticCategorySelfConformanceViolation: an existential does not conform to its own protocol
	DiagnosticCategorySelfConformanceViolation
)

func (c DiagnosticCategory) String() string {
	switch c {
	case DiagnosticCategoryConformance:
		return "conformance"
	case DiagnosticCategoryStructuralMismatch:
		return "structural mismatch"
	case DiagnosticCategoryInvalidWitness:
		return "invalid witness"
	case DiagnosticCategoryAmbiguousWitness:
		return "ambiguous witness"
	case DiagnosticCategoryNoWitness:
		return "no witness"
	case DiagnosticCategoryAssociatedTypeUnresolved:
		return "associated type unresolved"
	case DiagnosticCategoryAssociatedTypeAmbiguous:
		return "associated type ambiguous"
	case DiagnosticCategorySelfConformanceViolation:
		return "self-conformance violation"
	default:
		return "unknown"
	}
}
