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
	"github.com/onflow/cadence-conformance/ast"
)

// conformanceReporter reports the diagnostics of one conformance check.
// The leading "does not conform" diagnostic is reported at most once.
// Nothing is reported if there is no diagnostic location.
type conformanceReporter struct {
	checker    *ConformanceChecker
	ty         Type
	protocol   *ProtocolDecl
	location   *ast.Range
	complained bool
}

func (r *conformanceReporter) enabled() bool {
	return r.location != nil
}

func (r *conformanceReporter) complain() {
	if r.complained || !r.enabled() {
		return
	}
	r.complained = true

	r.checker.report(&TypeDoesNotConformError{
		Type:     r.ty,
		Protocol: r.protocol,
		Range:    *r.location,
	})
}

func (r *conformanceReporter) report(diagnostic Diagnostic) {
	if !r.enabled() {
		return
	}
	r.complain()
	r.checker.report(diagnostic)
}

// typeWitnessResolution is the state of the resolution of the associated types
// of a protocol for a conforming type.
type typeWitnessResolution struct {
	// typeMapping maps the placeholders of the protocol to their known replacements
	typeMapping      TypeSubstitutionMap
	typeWitnesses    *TypeWitnessMap
	typeWitnessDecls map[*AssociatedTypeDecl]TypeDecl
	// unresolved are the associated types which have to be deduced from witnesses
	unresolved []*AssociatedTypeDecl
	deduced    []AssociatedTypeDeduction
}

func newTypeWitnessResolution(ty Type, protocol *ProtocolDecl) *typeWitnessResolution {
	return &typeWitnessResolution{
		typeMapping: TypeSubstitutionMap{
			protocol.Self: ty,
		},
		typeWitnesses:    &TypeWitnessMap{},
		typeWitnessDecls: map[*AssociatedTypeDecl]TypeDecl{},
	}
}

// addInherited makes the type witnesses of an inherited conformance known.
func (r *typeWitnessResolution) addInherited(ty Type, conformance ProtocolConformance) {
	r.typeMapping[conformance.Protocol().Self] = ty

	conformance.TypeWitnesses().Foreach(func(associatedType *AssociatedTypeDecl, witness Substitution) {
		r.typeMapping[associatedType.Archetype] = witness.Replacement
	})
}

func (r *typeWitnessResolution) bind(
	associatedType *AssociatedTypeDecl,
	substitution Substitution,
	decl TypeDecl,
) {
	r.typeMapping[associatedType.Archetype] = substitution.Replacement
	r.typeWitnesses.Set(associatedType, substitution)
	if decl != nil {
		r.typeWitnessDecls[associatedType] = decl
	}
	r.markResolved(associatedType)
}

func (r *typeWitnessResolution) markInvalid(associatedType *AssociatedTypeDecl) {
	r.typeMapping[associatedType.Archetype] = InvalidType
	r.markResolved(associatedType)
}

func (r *typeWitnessResolution) markResolved(associatedType *AssociatedTypeDecl) {
	for i, unresolved := range r.unresolved {
		if unresolved == associatedType {
			r.unresolved = append(r.unresolved[:i:i], r.unresolved[i+1:]...)
			return
		}
	}
}

func (r *typeWitnessResolution) defaultedDefinitions() []*AssociatedTypeDecl {
	if len(r.deduced) == 0 {
		return nil
	}
	result := make([]*AssociatedTypeDecl, len(r.deduced))
	for i, deduction := range r.deduced {
		result[i] = deduction.AssociatedType
	}
	return result
}

// resolveTypeWitnesses looks up the type witnesses of the protocol's associated types
// on the conforming type.
//
// Associated types without a same-named type member are left unresolved,
// to be deduced from the witnesses of the requirements.
// A type member must satisfy the constraints of the associated type,
// and exactly one member must do so.
//
// The result is false if the conformance fails.
func (c *ConformanceChecker) resolveTypeWitnesses(
	resolution *typeWitnessResolution,
	reporter *conformanceReporter,
) bool {
	ty := reporter.ty
	protocol := reporter.protocol

	for _, associatedType := range protocol.AssociatedTypes {

		candidates := c.config.MemberLookup.LookupMemberType(ty, associatedType.Identifier)

		if len(candidates) == 0 {
			resolution.unresolved = append(resolution.unresolved, associatedType)
			continue
		}

		var viable []MemberType
		var nonViable []TypeWitnessCandidateNote

		for _, candidate := range candidates {
			satisfiesRequirements := true

			for _, requiredProtocol := range associatedType.Protocols {
				conforms, _ := c.conformsToProtocol(candidate.Type, requiredProtocol, false, nil, nil)
				if !conforms {
					satisfiesRequirements = false
					nonViable = append(
						nonViable,
						typeWitnessCandidateNote(candidate.Decl, candidate.Type, requiredProtocol),
					)
					break
				}
			}

			if satisfiesRequirements {
				viable = append(viable, candidate)
			}
		}

		if len(viable) == 1 {
			candidate := viable[0]
			substitution, failedProtocol := c.archetypeSubstitution(associatedType.Archetype, candidate.Type)
			if failedProtocol == nil {
				resolution.bind(associatedType, substitution, candidate.Decl)
				continue
			}

			// The candidate conforms, but no conformance can be produced
			viable = nil
			nonViable = append(
				nonViable,
				typeWitnessCandidateNote(candidate.Decl, candidate.Type, failedProtocol),
			)
		}

		if !reporter.enabled() {
			return false
		}

		if len(viable) > 1 {
			notes := make([]TypeWitnessCandidateNote, len(viable))
			for i, candidate := range viable {
				notes[i] = typeWitnessCandidateNote(candidate.Decl, candidate.Type, nil)
			}

			reporter.report(&AmbiguousTypeWitnessError{
				Type:           ty,
				Protocol:       protocol,
				AssociatedType: associatedType,
				Candidates:     notes,
				Range:          associatedType.Range,
			})
		} else {
			reporter.report(&NoTypeWitnessError{
				Type:           ty,
				Protocol:       protocol,
				AssociatedType: associatedType,
				Candidates:     nonViable,
				Range:          associatedType.Range,
			})
		}

		resolution.markInvalid(associatedType)
	}

	return !reporter.complained
}

// recordDeductions records the associated types deduced by an accepted witness.
// A deduced type must satisfy the constraints of its associated type.
//
// The result is false if the conformance fails.
func (c *ConformanceChecker) recordDeductions(
	resolution *typeWitnessResolution,
	deductions []AssociatedTypeDeduction,
	reporter *conformanceReporter,
) bool {
	for _, deduction := range deductions {
		associatedType := deduction.AssociatedType

		substitution, failedProtocol := c.archetypeSubstitution(associatedType.Archetype, deduction.Type)
		if failedProtocol != nil {
			if !reporter.enabled() {
				return false
			}

			reporter.report(&NoTypeWitnessError{
				Type:           reporter.ty,
				Protocol:       reporter.protocol,
				AssociatedType: associatedType,
				Candidates: []TypeWitnessCandidateNote{
					typeWitnessCandidateNote(nil, deduction.Type, failedProtocol),
				},
				Range: associatedType.Range,
			})
			resolution.markInvalid(associatedType)
			continue
		}

		resolution.bind(associatedType, substitution, nil)
		resolution.deduced = append(resolution.deduced, deduction)
	}

	return true
}
