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
	"strings"

	"github.com/onflow/cadence-conformance/errors"
)

// AssociatedTypeDeduction is an associated type deduced while matching a witness.
type AssociatedTypeDeduction struct {
	AssociatedType *AssociatedTypeDecl
	Type           Type
}

// RequirementMatch is the outcome of matching a witness against a requirement.
type RequirementMatch struct {
	Witness ValueDecl
	Kind    MatchKind
	// WitnessType is the type of the witness when referenced on the conforming type.
	// It is only set for exact and renamed matches, and for type conflicts
	WitnessType Type
	// AssociatedTypeDeductions are the associated types determined by the match
	AssociatedTypeDeductions []AssociatedTypeDeduction
	// WitnessSubstitutions are the substitutions of the witness' own generic parameters
	WitnessSubstitutions []Substitution
}

func newRequirementMatch(witness ValueDecl, kind MatchKind, witnessType Type) RequirementMatch {
	if kind.HasWitnessType() != (witnessType != nil) {
		panic(errors.NewUnexpectedError(
			"invalid witness type for match of kind %s",
			kind,
		))
	}

	return RequirementMatch{
		Witness:     witness,
		Kind:        kind,
		WitnessType: witnessType,
	}
}

func (m RequirementMatch) IsViable() bool {
	return m.Kind.IsViable()
}

// IsBetterThan returns true if the match is strictly better than the other match.
// Only the match kinds are compared.
func (m RequirementMatch) IsBetterThan(other RequirementMatch) bool {
	return m.Kind.IsBetterThan(other.Kind)
}

// selectBestMatch selects the best of the given matches.
//
// If there are multiple viable matches, the non-viable matches are dropped.
// The selected match must be strictly better than every other remaining match,
// otherwise the selection is ambiguous and ok is false.
func selectBestMatch(matches []RequirementMatch) (
	remaining []RequirementMatch,
	best RequirementMatch,
	numViable int,
	ok bool,
) {
	bestIndex := -1
	for i, match := range matches {
		if match.IsViable() {
			numViable++
			bestIndex = i
		}
	}

	switch numViable {
	case 0:
		return matches, RequirementMatch{}, 0, false

	case 1:
		return matches, matches[bestIndex], 1, true
	}

	remaining = make([]RequirementMatch, 0, numViable)
	for _, match := range matches {
		if match.IsViable() {
			remaining = append(remaining, match)
		}
	}

	bestIndex = 0
	for i := 1; i < len(remaining); i++ {
		if remaining[i].IsBetterThan(remaining[bestIndex]) {
			bestIndex = i
		}
	}

	for i, match := range remaining {
		if i == bestIndex {
			continue
		}
		if !remaining[bestIndex].IsBetterThan(match) {
			return remaining, RequirementMatch{}, numViable, false
		}
	}

	return remaining, remaining[bestIndex], numViable, true
}

// associatedTypeDeductionsString describes the associated type deductions,
// e.g. ` [with Item = Int]`.
func associatedTypeDeductionsString(deductionLists ...[]AssociatedTypeDeduction) string {
	var builder strings.Builder
	for _, deductions := range deductionLists {
		for _, deduction := range deductions {
			if builder.Len() == 0 {
				builder.WriteString(" [with ")
			} else {
				builder.WriteString(", ")
			}
			builder.WriteString(deduction.AssociatedType.Identifier)
			builder.WriteString(" = ")
			builder.WriteString(deduction.Type.String())
		}
	}
	if builder.Len() > 0 {
		builder.WriteByte(']')
	}
	return builder.String()
}
