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
	"fmt"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/errors"
)

// Diagnostic is a problem found while resolving a conformance.
// Diagnostics carry structured payload, the message is only a default rendering.
type Diagnostic interface {
	errors.UserError
	ast.HasPosition
	isDiagnostic()
	DiagnosticKind() DiagnosticKind
	Category() DiagnosticCategory
}

// DiagnosticSink receives the diagnostics of a conformance checker.
type DiagnosticSink interface {
	Report(diagnostic Diagnostic)
}

// DiagnosticSinkFunc is a function that receives diagnostics.
type DiagnosticSinkFunc func(diagnostic Diagnostic)

var _ DiagnosticSink = DiagnosticSinkFunc(nil)

func (f DiagnosticSinkFunc) Report(diagnostic Diagnostic) {
	f(diagnostic)
}

// DiagnosticCollector collects all reported diagnostics.
type DiagnosticCollector struct {
	Diagnostics []Diagnostic
}

var _ DiagnosticSink = &DiagnosticCollector{}

func (c *DiagnosticCollector) Report(diagnostic Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, diagnostic)
}

func (c *DiagnosticCollector) Reset() {
	c.Diagnostics = nil
}

// TypeDoesNotConformError

type TypeDoesNotConformError struct {
	Type     Type
	Protocol *ProtocolDecl
	ast.Range
}

var _ Diagnostic = &TypeDoesNotConformError{}
var _ errors.HasDocumentationLink = &TypeDoesNotConformError{}

func (*TypeDoesNotConformError) isDiagnostic() {}

func (*TypeDoesNotConformError) IsUserError() {}

func (*TypeDoesNotConformError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindTypeDoesNotConform
}

func (*TypeDoesNotConformError) Category() DiagnosticCategory {
	return DiagnosticCategoryConformance
}

func (e *TypeDoesNotConformError) Error() string {
	return fmt.Sprintf(
		"type `%s` does not conform to protocol `%s`",
		e.Type,
		e.Protocol.Identifier,
	)
}

func (*TypeDoesNotConformError) DocumentationLink() string {
	return "https://docs.swift.org/swift-book/documentation/the-swift-programming-language/protocols"
}

// InheritedProtocolDoesNotConformError

type InheritedProtocolDoesNotConformError struct {
	Type              Type
	Protocol          *ProtocolDecl
	InheritedProtocol *ProtocolDecl
	ast.Range
}

var _ Diagnostic = &InheritedProtocolDoesNotConformError{}
var _ errors.SecondaryError = &InheritedProtocolDoesNotConformError{}

func (*InheritedProtocolDoesNotConformError) isDiagnostic() {}

func (*InheritedProtocolDoesNotConformError) IsUserError() {}

func (*InheritedProtocolDoesNotConformError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindInheritedProtocolDoesNotConform
}

func (*InheritedProtocolDoesNotConformError) Category() DiagnosticCategory {
	return DiagnosticCategoryConformance
}

func (e *InheritedProtocolDoesNotConformError) Error() string {
	return fmt.Sprintf(
		"type `%s` does not conform to inherited protocol `%s`",
		e.Type,
		e.InheritedProtocol.Identifier,
	)
}

func (e *InheritedProtocolDoesNotConformError) SecondaryError() string {
	return fmt.Sprintf(
		"`%s` inherits from `%s`",
		e.Protocol.Identifier,
		e.InheritedProtocol.Identifier,
	)
}

// NonClassConformsToClassProtocolError

type NonClassConformsToClassProtocolError struct {
	Type     Type
	Protocol *ProtocolDecl
	ast.Range
}

var _ Diagnostic = &NonClassConformsToClassProtocolError{}

func (*NonClassConformsToClassProtocolError) isDiagnostic() {}

func (*NonClassConformsToClassProtocolError) IsUserError() {}

func (*NonClassConformsToClassProtocolError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindNonClassConformsToClassProtocol
}

func (*NonClassConformsToClassProtocolError) Category() DiagnosticCategory {
	return DiagnosticCategoryConformance
}

func (e *NonClassConformsToClassProtocolError) Error() string {
	return fmt.Sprintf(
		"non-class type `%s` cannot conform to class protocol `%s`",
		e.Type,
		e.Protocol.Identifier,
	)
}

// MissingExplicitConformanceError is reported when a type satisfies a protocol,
// but does not declare the conformance.
type MissingExplicitConformanceError struct {
	Type        Type
	Protocol    *ProtocolDecl
	Conformance ProtocolConformance
	// Fix is the suggested explicit conformance declaration, if any
	Fix *errors.SuggestedFix[ast.TextEdit]
	ast.Range
}

var _ Diagnostic = &MissingExplicitConformanceError{}
var _ errors.HasSuggestedFixes[ast.TextEdit] = &MissingExplicitConformanceError{}

func (*MissingExplicitConformanceError) isDiagnostic() {}

func (*MissingExplicitConformanceError) IsUserError() {}

func (*MissingExplicitConformanceError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindMissingExplicitConformance
}

func (*MissingExplicitConformanceError) Category() DiagnosticCategory {
	return DiagnosticCategoryConformance
}

func (e *MissingExplicitConformanceError) Error() string {
	return fmt.Sprintf(
		"type `%s` does not explicitly conform to protocol `%s`",
		e.Type,
		e.Protocol.Identifier,
	)
}

func (e *MissingExplicitConformanceError) SuggestFixes(_ string) []errors.SuggestedFix[ast.TextEdit] {
	if e.Fix == nil {
		return nil
	}
	return []errors.SuggestedFix[ast.TextEdit]{
		*e.Fix,
	}
}

// WitnessCandidateNote describes how a candidate witness matched a requirement.
type WitnessCandidateNote struct {
	Requirement ValueDecl
	Match       RequirementMatch
	// Deductions describes the associated types deduced so far, e.g. ` [with Item = Int]`
	Deductions string
	ast.Range
}

var _ errors.ErrorNote = WitnessCandidateNote{}

func (n WitnessCandidateNote) Category() DiagnosticCategory {
	switch n.Match.Kind {
	case MatchKindExact, MatchKindRenamed:
		return DiagnosticCategoryUnknown
	case MatchKindWitnessInvalid:
		return DiagnosticCategoryInvalidWitness
	default:
		return DiagnosticCategoryStructuralMismatch
	}
}

func (n WitnessCandidateNote) Message() string {
	match := n.Match

	switch match.Kind {
	case MatchKindExact:
		return "candidate exactly matches" + n.Deductions

	case MatchKindRenamed:
		return "candidate matches (with renaming)" + n.Deductions

	case MatchKindKindConflict:
		return fmt.Sprintf(
			"candidate is not a %s",
			n.Requirement.DeclarationKind().Name(),
		)

	case MatchKindTypeConflict:
		return fmt.Sprintf(
			"candidate has non-matching type `%s`%s",
			match.WitnessType,
			n.Deductions,
		)

	case MatchKindStaticNonStaticConflict:
		if n.Requirement.IsStatic() {
			return "candidate operates on an instance, not a type as required"
		}
		return "candidate operates on a type, not an instance as required"

	case MatchKindPrefixNonPrefixConflict:
		if function, ok := match.Witness.(*FunctionDecl); ok && function.IsPostfix() {
			return "candidate is postfix, not prefix as required"
		}
		return "candidate is not a prefix operator"

	case MatchKindPostfixNonPostfixConflict:
		if function, ok := match.Witness.(*FunctionDecl); ok && function.IsPrefix() {
			return "candidate is prefix, not postfix as required"
		}
		return "candidate is not a postfix operator"
	}

	return "invalid candidate"
}

func witnessCandidateNotes(
	requirement ValueDecl,
	matches []RequirementMatch,
	deduced []AssociatedTypeDeduction,
) []WitnessCandidateNote {
	notes := make([]WitnessCandidateNote, 0, len(matches))
	for _, match := range matches {
		// Invalid witnesses were already reported
		if match.Kind == MatchKindWitnessInvalid {
			continue
		}

		notes = append(notes, WitnessCandidateNote{
			Requirement: requirement,
			Match:       match,
			Deductions:  associatedTypeDeductionsString(deduced, match.AssociatedTypeDeductions),
			Range:       ast.NewRangeFromPositioned(match.Witness),
		})
	}
	return notes
}

// NoWitnessError is reported when no candidate satisfies a requirement.
type NoWitnessError struct {
	Type            Type
	Protocol        *ProtocolDecl
	Requirement     ValueDecl
	RequirementType Type
	Candidates      []WitnessCandidateNote
	// MemberNames are the names of the members of the type,
	// used to suggest a close name when there are no candidates
	MemberNames []string
	ast.Range
}

var _ Diagnostic = &NoWitnessError{}
var _ errors.SecondaryError = &NoWitnessError{}
var _ errors.ErrorNotes = &NoWitnessError{}

func (*NoWitnessError) isDiagnostic() {}

func (*NoWitnessError) IsUserError() {}

func (*NoWitnessError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindNoWitness
}

func (*NoWitnessError) Category() DiagnosticCategory {
	return DiagnosticCategoryNoWitness
}

func (e *NoWitnessError) Error() string {
	return fmt.Sprintf(
		"protocol requires %s `%s` with type `%s`",
		e.Requirement.DeclarationKind().Name(),
		e.Requirement.DeclarationIdentifier(),
		e.RequirementType,
	)
}

func (e *NoWitnessError) SecondaryError() string {
	if len(e.Candidates) > 0 {
		return "no candidate matches"
	}

	closestMember := e.findClosestMember()
	if closestMember != "" {
		return fmt.Sprintf("did you mean `%s`?", closestMember)
	}

	return fmt.Sprintf(
		"`%s` has no member `%s`",
		e.Type,
		e.Requirement.DeclarationIdentifier(),
	)
}

// findClosestMember searches the names of the members of the conforming type,
// and finds the name with the smallest edit distance from the requirement's name.
func (e *NoWitnessError) findClosestMember() (closestMember string) {
	name := e.Requirement.DeclarationIdentifier()
	nameRunes := []rune(name)

	closestDistance := len(name)

	sortedMemberNames := append([]string(nil), e.MemberNames...)
	sort.Strings(sortedMemberNames)

	for _, memberName := range sortedMemberNames {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(memberName),
			levenshtein.DefaultOptions,
		)

		// Don't update the closest member if the distance is greater than one already found,
		// or if the edits required would involve a complete replacement of the member's text
		if distance < closestDistance && distance < len(memberName) {
			closestMember = memberName
			closestDistance = distance
		}
	}

	return
}

func (e *NoWitnessError) ErrorNotes() []errors.ErrorNote {
	return candidateErrorNotes(e.Candidates)
}

func candidateErrorNotes(candidates []WitnessCandidateNote) []errors.ErrorNote {
	notes := make([]errors.ErrorNote, len(candidates))
	for i, candidate := range candidates {
		notes[i] = candidate
	}
	return notes
}

// AmbiguousWitnessError is reported when multiple candidates
// satisfy a requirement equally well.
type AmbiguousWitnessError struct {
	Type            Type
	Protocol        *ProtocolDecl
	Requirement     ValueDecl
	RequirementType Type
	Candidates      []WitnessCandidateNote
	ast.Range
}

var _ Diagnostic = &AmbiguousWitnessError{}
var _ errors.ErrorNotes = &AmbiguousWitnessError{}

func (*AmbiguousWitnessError) isDiagnostic() {}

func (*AmbiguousWitnessError) IsUserError() {}

func (*AmbiguousWitnessError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindAmbiguousWitness
}

func (*AmbiguousWitnessError) Category() DiagnosticCategory {
	return DiagnosticCategoryAmbiguousWitness
}

func (e *AmbiguousWitnessError) Error() string {
	return fmt.Sprintf(
		"multiple matching %ss named `%s` with type `%s`",
		e.Requirement.DeclarationKind().Name(),
		e.Requirement.DeclarationIdentifier(),
		e.RequirementType,
	)
}

func (e *AmbiguousWitnessError) ErrorNotes() []errors.ErrorNote {
	return candidateErrorNotes(e.Candidates)
}

// TypeWitnessCandidateNote describes a candidate type witness.
type TypeWitnessCandidateNote struct {
	Decl TypeDecl
	Type Type
	// NonConformingProtocol is the constraint the candidate fails, if any
	NonConformingProtocol *ProtocolDecl
	ast.Range
}

var _ errors.ErrorNote = TypeWitnessCandidateNote{}

func (n TypeWitnessCandidateNote) Message() string {
	if n.NonConformingProtocol != nil {
		return fmt.Sprintf(
			"candidate `%s` does not conform to protocol `%s`",
			n.Type,
			n.NonConformingProtocol.Identifier,
		)
	}
	return fmt.Sprintf("possibly intended match `%s`", n.Type)
}

func typeWitnessCandidateNote(decl TypeDecl, ty Type, protocol *ProtocolDecl) TypeWitnessCandidateNote {
	var noteRange ast.Range
	if decl != nil {
		noteRange = ast.NewRangeFromPositioned(decl)
	}
	return TypeWitnessCandidateNote{
		Decl:                  decl,
		Type:                  ty,
		NonConformingProtocol: protocol,
		Range:                 noteRange,
	}
}

// NoTypeWitnessError is reported when no type witness
// can be found or deduced for an associated type.
type NoTypeWitnessError struct {
	Type           Type
	Protocol       *ProtocolDecl
	AssociatedType *AssociatedTypeDecl
	// Candidates are the rejected candidates, if any
	Candidates []TypeWitnessCandidateNote
	ast.Range
}

var _ Diagnostic = &NoTypeWitnessError{}
var _ errors.ErrorNotes = &NoTypeWitnessError{}

func (*NoTypeWitnessError) isDiagnostic() {}

func (*NoTypeWitnessError) IsUserError() {}

func (*NoTypeWitnessError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindNoTypeWitness
}

func (*NoTypeWitnessError) Category() DiagnosticCategory {
	return DiagnosticCategoryAssociatedTypeUnresolved
}

func (e *NoTypeWitnessError) Error() string {
	return fmt.Sprintf(
		"protocol requires nested type `%s`",
		e.AssociatedType.Identifier,
	)
}

func (e *NoTypeWitnessError) ErrorNotes() []errors.ErrorNote {
	notes := make([]errors.ErrorNote, len(e.Candidates))
	for i, candidate := range e.Candidates {
		notes[i] = candidate
	}
	return notes
}

// AmbiguousTypeWitnessError is reported when multiple type members
// could serve as the type witness for an associated type.
type AmbiguousTypeWitnessError struct {
	Type           Type
	Protocol       *ProtocolDecl
	AssociatedType *AssociatedTypeDecl
	Candidates     []TypeWitnessCandidateNote
	ast.Range
}

var _ Diagnostic = &AmbiguousTypeWitnessError{}
var _ errors.ErrorNotes = &AmbiguousTypeWitnessError{}

func (*AmbiguousTypeWitnessError) isDiagnostic() {}

func (*AmbiguousTypeWitnessError) IsUserError() {}

func (*AmbiguousTypeWitnessError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindAmbiguousTypeWitness
}

func (*AmbiguousTypeWitnessError) Category() DiagnosticCategory {
	return DiagnosticCategoryAssociatedTypeAmbiguous
}

func (e *AmbiguousTypeWitnessError) Error() string {
	return fmt.Sprintf(
		"multiple possible types for associated type `%s`",
		e.AssociatedType.Identifier,
	)
}

func (e *AmbiguousTypeWitnessError) ErrorNotes() []errors.ErrorNote {
	notes := make([]errors.ErrorNote, len(e.Candidates))
	for i, candidate := range e.Candidates {
		notes[i] = candidate
	}
	return notes
}

// ExistentialAssociatedTypeError is reported when an existential
// is used as a conforming type, but its protocol has an associated type.
type ExistentialAssociatedTypeError struct {
	Type           Type
	Protocol       *ProtocolDecl
	AssociatedType *AssociatedTypeDecl
	ast.Range
}

var _ Diagnostic = &ExistentialAssociatedTypeError{}

func (*ExistentialAssociatedTypeError) isDiagnostic() {}

func (*ExistentialAssociatedTypeError) IsUserError() {}

func (*ExistentialAssociatedTypeError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindExistentialAssociatedType
}

func (*ExistentialAssociatedTypeError) Category() DiagnosticCategory {
	return DiagnosticCategorySelfConformanceViolation
}

func (e *ExistentialAssociatedTypeError) Error() string {
	return fmt.Sprintf(
		"protocol `%s` does not conform to itself, because it has associated type `%s`",
		e.Protocol.Identifier,
		e.AssociatedType.Identifier,
	)
}

// ExistentialSelfReferenceError is reported when an existential
// is used as a conforming type, but a requirement of its protocol refers to Self.
type ExistentialSelfReferenceError struct {
	Type     Type
	Protocol *ProtocolDecl
	Member   ValueDecl
	ast.Range
}

var _ Diagnostic = &ExistentialSelfReferenceError{}

func (*ExistentialSelfReferenceError) isDiagnostic() {}

func (*ExistentialSelfReferenceError) IsUserError() {}

func (*ExistentialSelfReferenceError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindExistentialSelfReference
}

func (*ExistentialSelfReferenceError) Category() DiagnosticCategory {
	return DiagnosticCategorySelfConformanceViolation
}

func (e *ExistentialSelfReferenceError) Error() string {
	return fmt.Sprintf(
		"protocol `%s` does not conform to itself, because %s `%s` refers to `Self`",
		e.Protocol.Identifier,
		e.Member.DeclarationKind().Name(),
		e.Member.DeclarationIdentifier(),
	)
}

// TypeArgumentCountError

type TypeArgumentCountError struct {
	Type          *NominalType
	ExpectedCount int
	ActualCount   int
	ast.Range
}

var _ Diagnostic = &TypeArgumentCountError{}

func (*TypeArgumentCountError) isDiagnostic() {}

func (*TypeArgumentCountError) IsUserError() {}

func (*TypeArgumentCountError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindInvalidTypeArguments
}

func (*TypeArgumentCountError) Category() DiagnosticCategory {
	return DiagnosticCategoryConformance
}

func (e *TypeArgumentCountError) Error() string {
	return fmt.Sprintf(
		"incorrect number of type arguments for `%s`: expected %d, got %d",
		e.Type.Decl.QualifiedIdentifier(),
		e.ExpectedCount,
		e.ActualCount,
	)
}

// TypeArgumentConformanceError

type TypeArgumentConformanceError struct {
	Type      *NominalType
	Parameter *GenericParameterType
	Argument  Type
	Protocol  *ProtocolDecl
	ast.Range
}

var _ Diagnostic = &TypeArgumentConformanceError{}

func (*TypeArgumentConformanceError) isDiagnostic() {}

func (*TypeArgumentConformanceError) IsUserError() {}

func (*TypeArgumentConformanceError) DiagnosticKind() DiagnosticKind {
	return DiagnosticKindInvalidTypeArguments
}

func (*TypeArgumentConformanceError) Category() DiagnosticCategory {
	return DiagnosticCategoryConformance
}

func (e *TypeArgumentConformanceError) Error() string {
	return fmt.Sprintf(
		"type argument `%s` for `%s` of `%s` does not conform to protocol `%s`",
		e.Argument,
		e.Parameter.Identifier,
		e.Type,
		e.Protocol.Identifier,
	)
}

// DiagnosticsString renders the given diagnostics, one per line, with their notes.
func DiagnosticsString(diagnostics []Diagnostic) string {
	var builder strings.Builder
	for _, diagnostic := range diagnostics {
		builder.WriteString(diagnostic.Error())
		builder.WriteByte('\n')

		if hasNotes, ok := diagnostic.(errors.ErrorNotes); ok {
			for _, note := range hasNotes.ErrorNotes() {
				builder.WriteString("  note: ")
				builder.WriteString(note.Message())
				builder.WriteByte('\n')
			}
		}
	}
	return builder.String()
}
