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
	"time"
)

// MatchWitness matches the given witness against the given requirement of the protocol.
//
// The requirement type must already have the known type witnesses substituted.
// The placeholders of the unresolved associated types are opened,
// and their bindings are recorded as associated type deductions.
//
// Failures are returned as the kind of the match.
func (c *ConformanceChecker) MatchWitness(
	protocol *ProtocolDecl,
	requirement ValueDecl,
	requirementType Type,
	model Type,
	witness ValueDecl,
	unresolvedAssociatedTypes []*AssociatedTypeDecl,
) (match RequirementMatch) {

	if c.config.TracingEnabled {
		startTime := time.Now()
		defer func() {
			c.reportMatchWitnessTrace(requirement, match.Kind, time.Since(startTime))
		}()
	}

	if requirement.DeclarationKind() != witness.DeclarationKind() {
		return newRequirementMatch(witness, MatchKindKindConflict, nil)
	}

	if witness.IsInvalid() {
		return newRequirementMatch(witness, MatchKindWitnessInvalid, nil)
	}

	decomposeFunctionType := false

	switch requirement := requirement.(type) {
	case *FunctionDecl:
		functionWitness := witness.(*FunctionDecl)

		if requirement.Static != functionWitness.Static {
			return newRequirementMatch(witness, MatchKindStaticNonStaticConflict, nil)
		}

		if requirement.IsPrefix() && !functionWitness.IsPrefix() {
			return newRequirementMatch(witness, MatchKindPrefixNonPrefixConflict, nil)
		}

		if requirement.IsPostfix() && !functionWitness.IsPostfix() {
			return newRequirementMatch(witness, MatchKindPostfixNonPostfixConflict, nil)
		}

		decomposeFunctionType = true

	case *SubscriptDecl:
		decomposeFunctionType = true
	}

	witnessType := memberTypeWithBase(witness, model)

	// Open the requirement type and the witness type,
	// replacing the unresolved associated types of the requirement,
	// and the generic parameters of the witness, with type variables

	requirementReplacements := map[*GenericParameterType]*TypeVariable{}
	if len(unresolvedAssociatedTypes) > 0 {
		archetypes := make([]*GenericParameterType, 0, len(unresolvedAssociatedTypes))
		for _, associatedType := range unresolvedAssociatedTypes {
			archetypes = append(archetypes, associatedType.Archetype)
		}
		requirementType = c.openType(requirementType, archetypes, requirementReplacements)
	}

	var witnessArchetypes []*GenericParameterType
	if functionWitness, ok := witness.(*FunctionDecl); ok {
		witnessArchetypes = functionWitness.GenericParameters
	}
	witnessReplacements := map[*GenericParameterType]*TypeVariable{}
	openWitnessType := c.openType(witnessType, witnessArchetypes, witnessReplacements)

	var constraints []TypeEqualityConstraint
	anyRenaming := false

	if decomposeFunctionType {
		requirementFunctionType, ok := requirementType.(*FunctionType)
		if !ok {
			return newRequirementMatch(witness, MatchKindTypeConflict, witnessType)
		}
		witnessFunctionType, ok := openWitnessType.(*FunctionType)
		if !ok {
			return newRequirementMatch(witness, MatchKindTypeConflict, witnessType)
		}

		// Result types must match

		constraints = append(
			constraints,
			TypeEqualityConstraint{
				Left:  witnessFunctionType.ReturnType,
				Right: requirementFunctionType.ReturnType,
			},
		)

		requirementParameters := requirementFunctionType.Parameters
		witnessParameters := witnessFunctionType.Parameters

		if len(requirementParameters) != len(witnessParameters) {
			return newRequirementMatch(witness, MatchKindTypeConflict, witnessType)
		}

		for i, requirementParameter := range requirementParameters {
			witnessParameter := witnessParameters[i]

			if requirementParameter.Variadic != witnessParameter.Variadic {
				return newRequirementMatch(witness, MatchKindTypeConflict, witnessType)
			}

			if requirementParameter.Label != witnessParameter.Label {
				if protocol.PositionalParameterNames {
					// Only the first parameter name may differ
					if i > 0 {
						return newRequirementMatch(witness, MatchKindTypeConflict, witnessType)
					}
				} else {
					anyRenaming = true
				}
			}

			constraints = append(
				constraints,
				TypeEqualityConstraint{
					Left:  witnessParameter.Type,
					Right: requirementParameter.Type,
				},
			)
		}
	} else {
		constraints = append(
			constraints,
			TypeEqualityConstraint{
				Left:  openWitnessType,
				Right: requirementType,
			},
		)
	}

	solutions, err := c.config.TypeEqualityOracle.Solve(constraints, true)
	if err != nil || len(solutions) == 0 {
		return newRequirementMatch(witness, MatchKindTypeConflict, witnessType)
	}
	solution := solutions[0]

	kind := MatchKindExact
	if anyRenaming {
		kind = MatchKindRenamed
	}
	match = newRequirementMatch(witness, kind, witnessType)

	for _, associatedType := range unresolvedAssociatedTypes {
		typeVariable, ok := requirementReplacements[associatedType.Archetype]
		if !ok {
			continue
		}

		replacement := solution.Simplify(typeVariable)

		// Not deduced, if the binding is not concrete
		if replacement.ContainsTypeVariable() {
			continue
		}

		match.AssociatedTypeDeductions = append(
			match.AssociatedTypeDeductions,
			AssociatedTypeDeduction{
				AssociatedType: associatedType,
				Type:           replacement,
			},
		)
	}

	for _, archetype := range witnessArchetypes {
		typeVariable := witnessReplacements[archetype]

		replacement := solution.Simplify(typeVariable)

		if replacement.ContainsTypeVariable() {
			// An unconstrained generic parameter which is not determined by the requirement
			// can be bound to anything
			if len(archetype.Protocols) > 0 {
				return newRequirementMatch(witness, MatchKindTypeConflict, witnessType)
			}
			continue
		}

		substitution, failedProtocol := c.archetypeSubstitution(archetype, replacement)
		if failedProtocol != nil {
			return newRequirementMatch(witness, MatchKindTypeConflict, witnessType)
		}

		match.WitnessSubstitutions = append(match.WitnessSubstitutions, substitution)
	}

	return match
}

// openType replaces the given placeholders in the type with fresh type variables,
// and records the replacements.
func (c *ConformanceChecker) openType(
	ty Type,
	archetypes []*GenericParameterType,
	replacements map[*GenericParameterType]*TypeVariable,
) Type {
	if len(archetypes) == 0 {
		return ty
	}

	substitutions := make(TypeSubstitutionMap, len(archetypes))
	for _, archetype := range archetypes {
		typeVariable, ok := replacements[archetype]
		if !ok {
			typeVariable = c.session.NewTypeVariable()
			replacements[archetype] = typeVariable
		}
		substitutions[archetype] = typeVariable
	}

	return Substitute(ty, substitutions)
}
