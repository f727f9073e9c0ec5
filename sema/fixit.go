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
	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/errors"
)

// FixItSuggester suggests how to declare an implicit conformance explicitly.
type FixItSuggester interface {
	// SuggestExplicitConformance returns the suggested fix,
	// or nil if no suitable declaration was found
	SuggestExplicitConformance(
		conformance *NormalConformance,
		ty Type,
		location ast.Range,
	) *errors.SuggestedFix[ast.TextEdit]
}

// DefaultFixItSuggester adds the protocol to the inheritance clause
// of the earliest declaration providing a witness of the conformance.
type DefaultFixItSuggester struct {
	// Location restricts the candidate declarations to the given location.
	// If nil, the location of the conforming type's declaration is used
	Location common.Location
}

var _ FixItSuggester = DefaultFixItSuggester{}

func (s DefaultFixItSuggester) SuggestExplicitConformance(
	conformance *NormalConformance,
	ty Type,
	_ ast.Range,
) *errors.SuggestedFix[ast.TextEdit] {

	nominal, ok := ty.(*NominalType)
	if !ok {
		return nil
	}

	location := s.Location
	if location == nil {
		location = nominal.Decl.Location
	}

	var owner ConformanceSite

	consider := func(context DeclContext) {
		site := ConformanceSiteOf(context)
		if site == nil ||
			site.NominalDecl() != nominal.Decl ||
			!sameLocation(site.DeclarationLocation(), location) {

			return
		}

		if owner == nil ||
			site.StartPosition().Compare(owner.StartPosition()) < 0 {

			owner = site
		}
	}

	conformance.TypeWitnesses().Foreach(func(associatedType *AssociatedTypeDecl, _ Substitution) {
		if conformance.UsesDefaultDefinition(associatedType) {
			return
		}
		decl := conformance.TypeWitnessDecl(associatedType)
		if decl == nil {
			return
		}
		consider(decl.Owner())
	})

	conformance.Witnesses().Foreach(func(_ ValueDecl, witness Witness) {
		consider(witness.Decl.Owner())
	})

	if owner == nil {
		return nil
	}

	protocolName := conformance.Protocol().Identifier

	var edit ast.TextEdit
	clause := owner.InheritanceClause()
	if len(clause) == 0 {
		position := owner.EndPosition().Shifted(1)
		edit = ast.TextEdit{
			Insertion: ": " + protocolName,
			Range:     ast.NewRange(position, position),
		}
	} else {
		position := clause[len(clause)-1].EndPos.Shifted(1)
		edit = ast.TextEdit{
			Insertion: ", " + protocolName,
			Range:     ast.NewRange(position, position),
		}
	}

	return &errors.SuggestedFix[ast.TextEdit]{
		Message:   "declare conformance to `" + protocolName + "`",
		TextEdits: []ast.TextEdit{edit},
	}
}

func sameLocation(a, b common.Location) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// suggestExplicitConformance reports that the type satisfies the protocol
// of the conformance without declaring it.
func (c *ConformanceChecker) suggestExplicitConformance(
	ty Type,
	conformance ProtocolConformance,
	location ast.Range,
) {
	var fix *errors.SuggestedFix[ast.TextEdit]
	if normalConformance, ok := conformance.(*NormalConformance); ok {
		fix = c.fixItSuggester().SuggestExplicitConformance(normalConformance, ty, location)
	}

	c.report(&MissingExplicitConformanceError{
		Type:        ty,
		Protocol:    conformance.Protocol(),
		Conformance: conformance,
		Fix:         fix,
		Range:       location,
	})
}
