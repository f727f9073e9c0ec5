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
	"sort"
	"unicode"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/common"
)

// Declaration

type Declaration interface {
	ast.HasPosition
	DeclarationKind() common.DeclarationKind
	DeclarationIdentifier() string
}

// DeclContext is a declaration which may contain other declarations:
// a module, a protocol, a nominal type, or an extension.
type DeclContext interface {
	isDeclContext()
}

// ConformanceSite is a declaration which may declare conformances:
// a nominal type declaration or an extension.
type ConformanceSite interface {
	DeclContext
	Declaration
	isConformanceSite()
	DeclaredConformances() []*ProtocolDecl
	DeclaredTypeInContext() *NominalType
	NominalDecl() *NominalTypeDecl
	DeclarationLocation() common.Location
	// InheritanceClause returns the ranges of the entries of the inheritance clause,
	// in source order.
	InheritanceClause() []ast.Range
}

// Module

type Module struct {
	Location   common.Location
	Protocols  []*ProtocolDecl
	Types      []*NominalTypeDecl
	Extensions []*ExtensionDecl
	Functions  []*FunctionDecl
}

var _ DeclContext = &Module{}

func (*Module) isDeclContext() {}

func (m *Module) Protocol(identifier string) *ProtocolDecl {
	for _, protocol := range m.Protocols {
		if protocol.Identifier == identifier {
			return protocol
		}
	}
	return nil
}

func (m *Module) NominalType(identifier string) *NominalTypeDecl {
	for _, nominal := range m.Types {
		if nominal.Identifier == identifier {
			return nominal
		}
	}
	return nil
}

// ProtocolDecl

type ProtocolDecl struct {
	Identifier      string
	Location        common.Location
	Inherited       []*ProtocolDecl
	Requirements    []ValueDecl
	AssociatedTypes []*AssociatedTypeDecl
	// Self is the placeholder for the conforming type
	Self *GenericParameterType
	// ClassOnly protocols can only be adopted by classes
	ClassOnly bool
	// PositionalParameterNames protocols match requirements by position:
	// only the first parameter name of a requirement may differ in a witness
	PositionalParameterNames bool
	ast.Range
}

var _ Declaration = &ProtocolDecl{}
var _ DeclContext = &ProtocolDecl{}

func NewProtocolDecl(location common.Location, identifier string, declRange ast.Range) *ProtocolDecl {
	protocol := &ProtocolDecl{
		Identifier: identifier,
		Location:   location,
		Range:      declRange,
	}
	protocol.Self = &GenericParameterType{
		Identifier: "Self",
		Scope:      identifier,
		Kind:       GenericParameterKindProtocolSelf,
		Protocols:  []*ProtocolDecl{protocol},
	}
	return protocol
}

func (*ProtocolDecl) isDeclContext() {}

func (*ProtocolDecl) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindProtocol
}

func (p *ProtocolDecl) DeclarationIdentifier() string {
	return p.Identifier
}

func (p *ProtocolDecl) ID() TypeID {
	if p.Location == nil {
		return TypeID(p.Identifier)
	}
	return p.Location.TypeID(p.Identifier)
}

func (p *ProtocolDecl) String() string {
	return p.Identifier
}

// AddAssociatedType declares a new associated type in the protocol.
func (p *ProtocolDecl) AddAssociatedType(
	identifier string,
	protocols []*ProtocolDecl,
	declRange ast.Range,
) *AssociatedTypeDecl {
	associatedType := &AssociatedTypeDecl{
		Identifier: identifier,
		Protocol:   p,
		Protocols:  protocols,
		Archetype: &GenericParameterType{
			Identifier: identifier,
			Scope:      p.Identifier,
			Kind:       GenericParameterKindAssociatedType,
			Protocols:  protocols,
		},
		Range: declRange,
	}
	p.AssociatedTypes = append(p.AssociatedTypes, associatedType)
	return associatedType
}

// AssociatedType returns the associated type with the given name, if any.
func (p *ProtocolDecl) AssociatedType(identifier string) *AssociatedTypeDecl {
	for _, associatedType := range p.AssociatedTypes {
		if associatedType.Identifier == identifier {
			return associatedType
		}
	}
	return nil
}

// InheritsFrom returns true if the protocol inherits from the given protocol,
// directly or indirectly. The inheritance graph may be cyclic.
func (p *ProtocolDecl) InheritsFrom(other *ProtocolDecl) bool {
	visited := map[*ProtocolDecl]struct{}{
		p: {},
	}
	worklist := append([]*ProtocolDecl(nil), p.Inherited...)

	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		if current == other {
			return true
		}

		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}

		worklist = append(worklist, current.Inherited...)
	}

	return false
}

func containsProtocol(protocols []*ProtocolDecl, protocol *ProtocolDecl) bool {
	for _, candidate := range protocols {
		if candidate == protocol {
			return true
		}
	}
	return false
}

func sortProtocols(protocols []*ProtocolDecl) {
	sort.SliceStable(protocols, func(i, j int) bool {
		return protocols[i].ID() < protocols[j].ID()
	})
}

// AssociatedTypeDecl

type AssociatedTypeDecl struct {
	Identifier string
	Protocol   *ProtocolDecl
	// Protocols are the protocols a type witness must conform to
	Protocols []*ProtocolDecl
	Archetype *GenericParameterType
	ast.Range
}

var _ Declaration = &AssociatedTypeDecl{}

func (*AssociatedTypeDecl) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindAssociatedType
}

func (d *AssociatedTypeDecl) DeclarationIdentifier() string {
	return d.Identifier
}

// TypeDecl is a declaration of a type member: a type alias or a nested nominal type.
type TypeDecl interface {
	Declaration
	isTypeDecl()
	DeclaredType() Type
	Owner() DeclContext
}

// NominalTypeDecl

type NominalTypeDecl struct {
	Identifier string
	// Kind is one of structure, class, or enumeration
	Kind              common.DeclarationKind
	Location          common.Location
	Parent            *NominalTypeDecl
	GenericParameters []*GenericParameterType
	// Superclass is only set for classes,
	// and is expressed in terms of the class' generic parameters
	Superclass        *NominalType
	Conformances      []*ProtocolDecl
	InheritanceRanges []ast.Range
	Extensions        []*ExtensionDecl
	Members           []ValueDecl
	TypeMembers       []TypeDecl
	ast.Range
}

var _ ConformanceSite = &NominalTypeDecl{}
var _ TypeDecl = &NominalTypeDecl{}

func (*NominalTypeDecl) isDeclContext() {}

func (*NominalTypeDecl) isConformanceSite() {}

func (*NominalTypeDecl) isTypeDecl() {}

func (d *NominalTypeDecl) DeclarationKind() common.DeclarationKind {
	return d.Kind
}

func (d *NominalTypeDecl) DeclarationIdentifier() string {
	return d.Identifier
}

func (d *NominalTypeDecl) DeclaredConformances() []*ProtocolDecl {
	return d.Conformances
}

func (d *NominalTypeDecl) NominalDecl() *NominalTypeDecl {
	return d
}

func (d *NominalTypeDecl) DeclarationLocation() common.Location {
	return d.Location
}

func (d *NominalTypeDecl) InheritanceClause() []ast.Range {
	return d.InheritanceRanges
}

func (d *NominalTypeDecl) Owner() DeclContext {
	if d.Parent == nil {
		return nil
	}
	return d.Parent
}

// QualifiedIdentifier returns the identifier of the declaration,
// prefixed with the identifiers of the enclosing declarations.
func (d *NominalTypeDecl) QualifiedIdentifier() string {
	if d.Parent == nil {
		return d.Identifier
	}
	return d.Parent.QualifiedIdentifier() + "." + d.Identifier
}

func (d *NominalTypeDecl) IsGeneric() bool {
	for current := d; current != nil; current = current.Parent {
		if len(current.GenericParameters) > 0 {
			return true
		}
	}
	return false
}

// DeclaredTypeInContext returns the type of the declaration
// as seen from inside of it, i.e. instantiated with its own generic parameters.
func (d *NominalTypeDecl) DeclaredTypeInContext() *NominalType {
	var parent *NominalType
	if d.Parent != nil {
		parent = d.Parent.DeclaredTypeInContext()
	}

	var arguments []Type
	if len(d.GenericParameters) > 0 {
		arguments = make([]Type, len(d.GenericParameters))
		for i, parameter := range d.GenericParameters {
			arguments[i] = parameter
		}
	}

	return &NominalType{
		Decl:          d,
		Parent:        parent,
		TypeArguments: arguments,
	}
}

func (d *NominalTypeDecl) DeclaredType() Type {
	return d.DeclaredTypeInContext()
}

// ExtensionDecl

type ExtensionDecl struct {
	Extended          *NominalTypeDecl
	Location          common.Location
	Conformances      []*ProtocolDecl
	InheritanceRanges []ast.Range
	Members           []ValueDecl
	TypeMembers       []TypeDecl
	ast.Range
}

var _ ConformanceSite = &ExtensionDecl{}

func (*ExtensionDecl) isDeclContext() {}

func (*ExtensionDecl) isConformanceSite() {}

func (*ExtensionDecl) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindExtension
}

func (d *ExtensionDecl) DeclarationIdentifier() string {
	return d.Extended.Identifier
}

func (d *ExtensionDecl) DeclaredConformances() []*ProtocolDecl {
	return d.Conformances
}

func (d *ExtensionDecl) DeclaredTypeInContext() *NominalType {
	return d.Extended.DeclaredTypeInContext()
}

func (d *ExtensionDecl) NominalDecl() *NominalTypeDecl {
	return d.Extended
}

func (d *ExtensionDecl) DeclarationLocation() common.Location {
	return d.Location
}

func (d *ExtensionDecl) InheritanceClause() []ast.Range {
	return d.InheritanceRanges
}

// TypeAliasDecl

type TypeAliasDecl struct {
	Identifier string
	Context    DeclContext
	Type       Type
	ast.Range
}

var _ TypeDecl = &TypeAliasDecl{}

func (*TypeAliasDecl) isTypeDecl() {}

func (*TypeAliasDecl) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindTypeAlias
}

func (d *TypeAliasDecl) DeclarationIdentifier() string {
	return d.Identifier
}

func (d *TypeAliasDecl) DeclaredType() Type {
	return d.Type
}

func (d *TypeAliasDecl) Owner() DeclContext {
	return d.Context
}

// ValueDecl is a declaration of a value member:
// a function, a property, or a subscript.
type ValueDecl interface {
	Declaration
	isValueDecl()
	// DeclaredType returns the type of the declaration.
	// For functions it does not include the implicit receiver parameter.
	DeclaredType() Type
	Owner() DeclContext
	IsInvalid() bool
	IsStatic() bool
}

// OperatorFixity

type OperatorFixity uint8

const (
	OperatorFixityNone OperatorFixity = iota
	OperatorFixityPrefix
	OperatorFixityPostfix
	OperatorFixityInfix
)

// IsOperatorName returns true if the given name is the name of an operator,
// e.g. `==` or `+`.
func IsOperatorName(name string) bool {
	for _, r := range name {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	return false
}

// FunctionDecl

type FunctionDecl struct {
	Identifier string
	Context    DeclContext
	Type       *FunctionType
	// GenericParameters are the function's own type parameters
	GenericParameters []*GenericParameterType
	Static            bool
	Fixity            OperatorFixity
	Invalid           bool
	ast.Range
}

var _ ValueDecl = &FunctionDecl{}

func (*FunctionDecl) isValueDecl() {}

func (*FunctionDecl) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindFunction
}

func (d *FunctionDecl) DeclarationIdentifier() string {
	return d.Identifier
}

func (d *FunctionDecl) DeclaredType() Type {
	if d.Type == nil {
		return InvalidType
	}
	return d.Type
}

func (d *FunctionDecl) Owner() DeclContext {
	return d.Context
}

func (d *FunctionDecl) IsInvalid() bool {
	return d.Invalid || d.Type == nil || d.Type.IsInvalidType()
}

func (d *FunctionDecl) IsStatic() bool {
	return d.Static
}

func (d *FunctionDecl) IsPrefix() bool {
	return d.Fixity == OperatorFixityPrefix
}

func (d *FunctionDecl) IsPostfix() bool {
	return d.Fixity == OperatorFixityPostfix
}

// PropertyDecl

type PropertyDecl struct {
	Identifier string
	Context    DeclContext
	Type       Type
	Static     bool
	Invalid    bool
	ast.Range
}

var _ ValueDecl = &PropertyDecl{}

func (*PropertyDecl) isValueDecl() {}

func (*PropertyDecl) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindProperty
}

func (d *PropertyDecl) DeclarationIdentifier() string {
	return d.Identifier
}

func (d *PropertyDecl) DeclaredType() Type {
	if d.Type == nil {
		return InvalidType
	}
	return d.Type
}

func (d *PropertyDecl) Owner() DeclContext {
	return d.Context
}

func (d *PropertyDecl) IsInvalid() bool {
	return d.Invalid || d.Type == nil || d.Type.IsInvalidType()
}

func (d *PropertyDecl) IsStatic() bool {
	return d.Static
}

// SubscriptDecl

const SubscriptIdentifier = "subscript"

type SubscriptDecl struct {
	Context DeclContext
	// Type maps the index parameters to the element type
	Type    *FunctionType
	Invalid bool
	ast.Range
}

var _ ValueDecl = &SubscriptDecl{}

func (*SubscriptDecl) isValueDecl() {}

func (*SubscriptDecl) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindSubscript
}

func (*SubscriptDecl) DeclarationIdentifier() string {
	return SubscriptIdentifier
}

func (d *SubscriptDecl) DeclaredType() Type {
	if d.Type == nil {
		return InvalidType
	}
	return d.Type
}

func (d *SubscriptDecl) Owner() DeclContext {
	return d.Context
}

func (d *SubscriptDecl) IsInvalid() bool {
	return d.Invalid || d.Type == nil || d.Type.IsInvalidType()
}

func (*SubscriptDecl) IsStatic() bool {
	return false
}

// ConformanceSiteOf returns the nominal type or extension
// in which the given declaration context is nested, if any.
func ConformanceSiteOf(context DeclContext) ConformanceSite {
	site, ok := context.(ConformanceSite)
	if !ok {
		return nil
	}
	return site
}
