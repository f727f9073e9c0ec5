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

	"github.com/onflow/cadence-conformance/errors"
)

// contextSubstitutions returns the substitutions of the generic parameters
// of the given type's declaration, and of its enclosing declarations,
// for the type's type arguments.
func contextSubstitutions(ty *NominalType) TypeSubstitutionMap {
	var substitutions TypeSubstitutionMap

	for current := ty; current != nil; current = current.Parent {
		parameters := current.Decl.GenericParameters
		if len(current.TypeArguments) != len(parameters) {
			continue
		}
		for i, parameter := range parameters {
			if substitutions == nil {
				substitutions = TypeSubstitutionMap{}
			}
			substitutions[parameter] = current.TypeArguments[i]
		}
	}

	return substitutions
}

// baseTypeForDecl returns the type of the given declaration
// as seen from the given type, walking up the superclass chain.
// It returns nil if the declaration is not the type's declaration
// or the declaration of one of its superclasses.
func baseTypeForDecl(ty Type, decl *NominalTypeDecl) *NominalType {
	nominal, ok := ty.(*NominalType)
	if !ok {
		return nil
	}

	visited := map[*NominalTypeDecl]struct{}{}

	for nominal != nil {
		if nominal.Decl == decl {
			return nominal
		}

		if _, ok := visited[nominal.Decl]; ok {
			return nil
		}
		visited[nominal.Decl] = struct{}{}

		nominal = superclassOf(nominal)
	}

	return nil
}

// superclassOf returns the superclass of the given class type,
// with the class' type arguments substituted.
func superclassOf(ty *NominalType) *NominalType {
	superclass := ty.Decl.Superclass
	if superclass == nil {
		return nil
	}

	substituted, ok := Substitute(superclass, contextSubstitutions(ty)).(*NominalType)
	if !ok {
		return nil
	}
	return substituted
}

// memberTypeWithBase returns the type of the given member,
// when referenced on the given base type.
func memberTypeWithBase(member ValueDecl, base Type) Type {
	memberType := member.DeclaredType()

	switch owner := member.Owner().(type) {
	case *ProtocolDecl:
		return Substitute(
			memberType,
			TypeSubstitutionMap{
				owner.Self: base,
			},
		)

	case ConformanceSite:
		ownerType := baseTypeForDecl(base, owner.NominalDecl())
		if ownerType == nil {
			return memberType
		}
		return Substitute(memberType, contextSubstitutions(ownerType))

	default:
		return memberType
	}
}

// SuperclassType returns the superclass of the given class type,
// with the class' type arguments substituted, or nil if it has none.
func SuperclassType(ty *NominalType) *NominalType {
	return superclassOf(ty)
}

// MemberTypeWithBase returns the type of the given value member,
// when referenced on the given base type.
func MemberTypeWithBase(member ValueDecl, base Type) Type {
	return memberTypeWithBase(member, base)
}

// TypeMemberTypeWithBase returns the type declared by the given type member,
// when referenced on the given base type.
func TypeMemberTypeWithBase(member TypeDecl, base Type) Type {
	memberType := member.DeclaredType()

	site := ConformanceSiteOf(member.Owner())
	if site == nil {
		return memberType
	}

	ownerType := baseTypeForDecl(base, site.NominalDecl())
	if ownerType == nil {
		return memberType
	}
	return Substitute(memberType, contextSubstitutions(ownerType))
}

// archetypeSubstitution returns the substitution of the given placeholder
// for the given replacement, proving the replacement conforms
// to the protocols the placeholder requires.
// The result is false if the replacement does not conform to one of the protocols.
func (c *ConformanceChecker) archetypeSubstitution(
	archetype *GenericParameterType,
	replacement Type,
) (
	substitution Substitution,
	failedProtocol *ProtocolDecl,
) {
	conformances := make([]ProtocolConformance, 0, len(archetype.Protocols))

	for _, protocol := range archetype.Protocols {
		conforms, conformance := c.conformsToProtocol(replacement, protocol, true, nil, nil)
		if !conforms {
			return Substitution{}, protocol
		}
		conformances = append(conformances, conformance)
	}

	return Substitution{
		Archetype:    archetype,
		Replacement:  replacement,
		Conformances: conformances,
	}, nil
}

// GatherSubstitutions returns the substitutions which map the generic form
// of the given specialized type to the type.
// The substitutions of all enclosing generic types are included,
// ordered from the outermost to the innermost type.
//
// It panics if the type is not specialized.
func (c *ConformanceChecker) GatherSubstitutions(ty Type) ([]Substitution, error) {
	nominal, ok := ty.(*NominalType)
	if !ok || !nominal.IsSpecialized() {
		panic(errors.NewUnexpectedError("type `%s` is not specialized", ty))
	}

	var levels [][]Substitution

	for current := nominal; current != nil; current = current.Parent {
		if len(current.TypeArguments) == 0 {
			continue
		}

		parameters := current.Decl.GenericParameters
		if len(parameters) != len(current.TypeArguments) {
			return nil, &TypeArgumentCountError{
				Type:          current,
				ExpectedCount: len(parameters),
				ActualCount:   len(current.TypeArguments),
			}
		}

		level := make([]Substitution, 0, len(parameters))
		for i, parameter := range parameters {
			argument := current.TypeArguments[i]
			substitution, failedProtocol := c.archetypeSubstitution(parameter, argument)
			if failedProtocol != nil {
				return nil, &TypeArgumentConformanceError{
					Type:      current,
					Parameter: parameter,
					Argument:  argument,
					Protocol:  failedProtocol,
				}
			}
			level = append(level, substitution)
		}

		levels = append(levels, level)
	}

	if len(levels) == 1 {
		return levels[0], nil
	}

	var substitutions []Substitution
	for i := len(levels) - 1; i >= 0; i-- {
		substitutions = append(substitutions, levels[i]...)
	}
	return substitutions, nil
}

// SpecializeTypeWitnesses applies the substitutions to each of the given type witnesses.
//
// Type witnesses which are unaffected by the substitutions are copied.
// For the others, the conformances of the new replacement are proven again.
// A replacement that no longer conforms is a consistency violation and panics.
func (c *ConformanceChecker) SpecializeTypeWitnesses(
	typeWitnesses *TypeWitnessMap,
	substitutions []Substitution,
) *TypeWitnessMap {

	substitutionMap := make(TypeSubstitutionMap, len(substitutions))
	for _, substitution := range substitutions {
		substitutionMap[substitution.Archetype] = substitution.Replacement
	}

	result := &TypeWitnessMap{}

	typeWitnesses.Foreach(func(associatedType *AssociatedTypeDecl, genericWitness Substitution) {
		specializedType := Substitute(genericWitness.Replacement, substitutionMap)

		if specializedType.Equal(genericWitness.Replacement) {
			result.Set(associatedType, genericWitness)
			return
		}

		specializedWitness, failedProtocol := c.archetypeSubstitution(
			genericWitness.Archetype,
			specializedType,
		)
		if failedProtocol != nil {
			panic(errors.NewUnexpectedError(
				"specialized type witness `%s` for `%s` does not conform to `%s`",
				specializedType,
				associatedType.Identifier,
				failedProtocol.Identifier,
			))
		}

		result.Set(associatedType, specializedWitness)
	})

	return result
}

func (c *ConformanceChecker) specializeConformance(
	ty Type,
	genericConformance ProtocolConformance,
	substitutions []Substitution,
) *SpecializedConformance {

	if c.config.TracingEnabled {
		startTime := time.Now()
		defer func() {
			c.reportSpecializeTrace(ty, len(substitutions), time.Since(startTime))
		}()
	}

	return &SpecializedConformance{
		typ:           ty,
		generic:       genericConformance,
		substitutions: substitutions,
		typeWitnesses: c.SpecializeTypeWitnesses(
			genericConformance.TypeWitnesses(),
			substitutions,
		),
	}
}
