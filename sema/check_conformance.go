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

	"github.com/onflow/cadence-conformance/ast"
)

// checkConformsToProtocol determines whether the type conforms to the protocol,
// and builds the complete witness table if it does.
//
// The explicit site is the declaration declaring the conformance, if any.
// Diagnostics are only reported if a location is given.
// No partial conformance is ever returned: the result is nil on failure.
func (c *ConformanceChecker) checkConformsToProtocol(
	ty Type,
	protocol *ProtocolDecl,
	explicitSite ConformanceSite,
	location *ast.Range,
) (result *NormalConformance) {

	if c.config.TracingEnabled {
		startTime := time.Now()
		defer func() {
			c.reportConformanceTrace(
				tracingCheckPostfix,
				ty,
				protocol,
				result != nil,
				time.Since(startTime),
			)
		}()
	}

	reporter := &conformanceReporter{
		checker:  c,
		ty:       ty,
		protocol: protocol,
		location: location,
	}

	resolution := newTypeWitnessResolution(ty, protocol)

	// The type must conform to all inherited protocols

	inheritedConformances := &InheritedConformanceMap{}

	for _, inheritedProtocol := range protocol.Inherited {
		conforms, inheritedConformance := c.conformsToProtocol(ty, inheritedProtocol, true, nil, location)
		if !conforms || inheritedConformance == nil {
			// The recursive check already reported the problem,
			// only establish the relationship
			if location != nil {
				c.report(&InheritedProtocolDoesNotConformError{
					Type:              ty,
					Protocol:          protocol,
					InheritedProtocol: inheritedProtocol,
					Range:             protocol.Range,
				})
			}
			return nil
		}

		inheritedConformances.Set(inheritedProtocol, inheritedConformance)
		resolution.addInherited(ty, inheritedConformance)
	}

	if protocol.ClassOnly && !isClassType(ty) {
		if location != nil {
			c.report(&NonClassConformsToClassProtocolError{
				Type:     ty,
				Protocol: protocol,
				Range:    *location,
			})
		}
		return nil
	}

	// Resolve the associated types which have type members.
	// The others are deduced from the witnesses below

	if !c.resolveTypeWitnesses(resolution, reporter) {
		return nil
	}

	witnesses := &WitnessMap{}

	for _, requirement := range protocol.Requirements {

		requirementType := Substitute(requirement.DeclaredType(), resolution.typeMapping)

		candidates := c.lookupWitnessCandidates(ty, requirement)

		matches := make([]RequirementMatch, 0, len(candidates))

		for _, candidate := range candidates {
			// Protocol members are never witnesses
			if _, ok := candidate.Owner().(*ProtocolDecl); ok {
				continue
			}

			match := c.MatchWitness(
				protocol,
				requirement,
				requirementType,
				ty,
				candidate,
				resolution.unresolved,
			)
			matches = append(matches, match)
		}

		remaining, best, numViable, ok := selectBestMatch(matches)
		if ok {
			c.logger.Debug().
				Str("type", ty.String()).
				Str("protocol", protocol.Identifier).
				Str("requirement", requirement.DeclarationIdentifier()).
				Stringer("match", best.Kind).
				Msg("requirement satisfied")

			witnesses.Set(requirement, Witness{
				Decl:          best.Witness,
				Substitutions: best.WitnessSubstitutions,
			})

			if !c.recordDeductions(resolution, best.AssociatedTypeDeductions, reporter) {
				return nil
			}

			continue
		}

		if !reporter.enabled() {
			return nil
		}

		notes := witnessCandidateNotes(requirement, remaining, resolution.deduced)

		if numViable > 0 {
			reporter.report(&AmbiguousWitnessError{
				Type:            ty,
				Protocol:        protocol,
				Requirement:     requirement,
				RequirementType: requirementType,
				Candidates:      notes,
				Range:           ast.NewRangeFromPositioned(requirement),
			})
		} else {
			var memberNames []string
			if len(matches) == 0 {
				memberNames = c.memberNames(ty)
			}

			reporter.report(&NoWitnessError{
				Type:            ty,
				Protocol:        protocol,
				Requirement:     requirement,
				RequirementType: requirementType,
				Candidates:      notes,
				MemberNames:     memberNames,
				Range:           ast.NewRangeFromPositioned(requirement),
			})
		}
	}

	if reporter.complained {
		return nil
	}

	// All associated types must be resolved by now

	if len(resolution.unresolved) > 0 {
		if !reporter.enabled() {
			return nil
		}

		for _, associatedType := range resolution.unresolved {
			reporter.report(&NoTypeWitnessError{
				Type:           ty,
				Protocol:       protocol,
				AssociatedType: associatedType,
				Range:          associatedType.Range,
			})
		}

		return nil
	}

	return &NormalConformance{
		typ:                   ty,
		protocol:              protocol,
		explicitSite:          explicitSite,
		witnesses:             witnesses,
		typeWitnesses:         resolution.typeWitnesses,
		typeWitnessDecls:      resolution.typeWitnessDecls,
		inheritedConformances: inheritedConformances,
		defaultedDefinitions:  resolution.defaultedDefinitions(),
	}
}

// lookupWitnessCandidates returns the declarations which may witness the requirement.
// Operators are looked up globally, all other requirements are looked up as members.
func (c *ConformanceChecker) lookupWitnessCandidates(ty Type, requirement ValueDecl) []ValueDecl {
	lookup := c.config.MemberLookup

	name := requirement.DeclarationIdentifier()
	if IsOperatorName(name) {
		return lookup.LookupOperator(name)
	}

	return lookup.LookupMember(ty, name)
}

func (c *ConformanceChecker) memberNames(ty Type) []string {
	lister, ok := c.config.MemberLookup.(MemberNameLister)
	if !ok {
		return nil
	}
	return lister.MemberNames(ty)
}

func isClassType(ty Type) bool {
	nominal, ok := ty.(*NominalType)
	return ok && nominal.IsClass()
}
