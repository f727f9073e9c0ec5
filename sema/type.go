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
	"strconv"
	"strings"

	"github.com/onflow/cadence-conformance/common"
)

type TypeID = common.TypeID

// Type is the type of a value or a declaration.
//
// Types are immutable. Structurally equal types have equal IDs,
// which makes the ID suitable as a canonical key, e.g. for the conformance cache.
type Type interface {
	isType()
	ID() TypeID
	String() string
	Equal(other Type) bool
	IsInvalidType() bool
	ContainsTypeVariable() bool
	// Map returns the result of f applied to the type,
	// after its component types were rewritten with Map.
	Map(f func(Type) Type) Type
}

// InvalidType represents a type that is invalid.
// It is the result of type checking failing and
// can't be expressed in programs.
var InvalidType Type = invalidType{}

type invalidType struct{}

var _ Type = invalidType{}

func (invalidType) isType() {}

func (invalidType) ID() TypeID {
	return "<<invalid>>"
}

func (invalidType) String() string {
	return "<<invalid>>"
}

func (invalidType) Equal(other Type) bool {
	_, ok := other.(invalidType)
	return ok
}

func (invalidType) IsInvalidType() bool {
	return true
}

func (invalidType) ContainsTypeVariable() bool {
	return false
}

func (t invalidType) Map(f func(Type) Type) Type {
	return f(t)
}

// NominalType is the type of a structure, class or enumeration,
// possibly nested in another nominal type,
// and possibly specialized with type arguments at any level.
type NominalType struct {
	Decl          *NominalTypeDecl
	Parent        *NominalType
	TypeArguments []Type
}

var _ Type = &NominalType{}

func (*NominalType) isType() {}

func (t *NominalType) ID() TypeID {
	var builder strings.Builder
	if t.Parent != nil {
		builder.WriteString(string(t.Parent.ID()))
		builder.WriteByte('.')
		builder.WriteString(t.Decl.Identifier)
	} else if t.Decl.Location != nil {
		builder.WriteString(string(t.Decl.Location.TypeID(t.Decl.Identifier)))
	} else {
		builder.WriteString(t.Decl.Identifier)
	}
	writeTypeArguments(&builder, t.TypeArguments, Type.ID)
	return TypeID(builder.String())
}

func (t *NominalType) String() string {
	var builder strings.Builder
	if t.Parent != nil {
		builder.WriteString(t.Parent.String())
		builder.WriteByte('.')
	}
	builder.WriteString(t.Decl.Identifier)
	writeTypeArguments(&builder, t.TypeArguments, func(t Type) TypeID {
		return TypeID(t.String())
	})
	return builder.String()
}

func writeTypeArguments(builder *strings.Builder, arguments []Type, f func(Type) TypeID) {
	if len(arguments) == 0 {
		return
	}
	builder.WriteByte('<')
	for i, argument := range arguments {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(string(f(argument)))
	}
	builder.WriteByte('>')
}

func (t *NominalType) Equal(other Type) bool {
	otherNominal, ok := other.(*NominalType)
	if !ok {
		return false
	}

	if t.Decl != otherNominal.Decl {
		return false
	}

	if (t.Parent == nil) != (otherNominal.Parent == nil) {
		return false
	}
	if t.Parent != nil && !t.Parent.Equal(otherNominal.Parent) {
		return false
	}

	return typesEqual(t.TypeArguments, otherNominal.TypeArguments)
}

func typesEqual(types, otherTypes []Type) bool {
	if len(types) != len(otherTypes) {
		return false
	}
	for i, ty := range types {
		if !ty.Equal(otherTypes[i]) {
			return false
		}
	}
	return true
}

func (t *NominalType) IsInvalidType() bool {
	if t.Parent != nil && t.Parent.IsInvalidType() {
		return true
	}
	for _, argument := range t.TypeArguments {
		if argument.IsInvalidType() {
			return true
		}
	}
	return false
}

func (t *NominalType) ContainsTypeVariable() bool {
	if t.Parent != nil && t.Parent.ContainsTypeVariable() {
		return true
	}
	for _, argument := range t.TypeArguments {
		if argument.ContainsTypeVariable() {
			return true
		}
	}
	return false
}

func (t *NominalType) Map(f func(Type) Type) Type {
	return f(t.mapNominal(f))
}

func (t *NominalType) mapNominal(f func(Type) Type) *NominalType {
	var parent *NominalType
	if t.Parent != nil {
		parent = t.Parent.mapNominal(f)
	}

	var arguments []Type
	if t.TypeArguments != nil {
		arguments = make([]Type, len(t.TypeArguments))
		for i, argument := range t.TypeArguments {
			arguments[i] = argument.Map(f)
		}
	}

	return &NominalType{
		Decl:          t.Decl,
		Parent:        parent,
		TypeArguments: arguments,
	}
}

// IsSpecialized returns true if the type, or any of its enclosing types,
// is instantiated with type arguments.
func (t *NominalType) IsSpecialized() bool {
	for current := t; current != nil; current = current.Parent {
		if len(current.TypeArguments) > 0 {
			return true
		}
	}
	return false
}

// IsClass returns true if the type is a class type.
func (t *NominalType) IsClass() bool {
	return t.Decl.Kind == common.DeclarationKindClass
}

// GenericParameterKind

type GenericParameterKind uint8

const (
	GenericParameterKindTypeParameter GenericParameterKind = iota
	GenericParameterKindProtocolSelf
	GenericParameterKindAssociatedType
)

// GenericParameterType is a generic placeholder ("archetype"):
// a type parameter of a nominal type or function,
// the Self placeholder of a protocol,
// or an associated type of a protocol.
type GenericParameterType struct {
	Identifier string
	// Scope is the qualified name of the declaration introducing the placeholder
	Scope string
	Kind  GenericParameterKind
	// Protocols are the protocols the placeholder is declared to conform to
	Protocols []*ProtocolDecl
	// Superclass is an optional superclass bound. It is only kept for display.
	Superclass Type
}

var _ Type = &GenericParameterType{}

func (*GenericParameterType) isType() {}

func (t *GenericParameterType) ID() TypeID {
	if t.Scope == "" {
		return TypeID(t.Identifier)
	}
	return TypeID(t.Scope + "." + t.Identifier)
}

func (t *GenericParameterType) String() string {
	return t.Identifier
}

func (t *GenericParameterType) Equal(other Type) bool {
	otherParameter, ok := other.(*GenericParameterType)
	return ok && otherParameter == t
}

func (*GenericParameterType) IsInvalidType() bool {
	return false
}

func (*GenericParameterType) ContainsTypeVariable() bool {
	return false
}

func (t *GenericParameterType) Map(f func(Type) Type) Type {
	return f(t)
}

// ConformsToProtocol returns true if the placeholder is declared to conform
// to the given protocol, directly or through protocol inheritance.
func (t *GenericParameterType) ConformsToProtocol(protocol *ProtocolDecl) bool {
	for _, constraint := range t.Protocols {
		if constraint == protocol || constraint.InheritsFrom(protocol) {
			return true
		}
	}
	return false
}

// ExistentialType is the type of a value of some type
// conforming to all the given protocols, e.g. `any P & Q`.
// The existential type of no protocols is `Any`.
type ExistentialType struct {
	Protocols []*ProtocolDecl
}

var _ Type = &ExistentialType{}

// NewExistentialType returns the existential type of the given protocols,
// in a canonical order and without duplicates.
func NewExistentialType(protocols []*ProtocolDecl) *ExistentialType {
	canonical := make([]*ProtocolDecl, 0, len(protocols))
	for _, protocol := range protocols {
		if !containsProtocol(canonical, protocol) {
			canonical = append(canonical, protocol)
		}
	}
	sortProtocols(canonical)
	return &ExistentialType{
		Protocols: canonical,
	}
}

func (*ExistentialType) isType() {}

func (t *ExistentialType) ID() TypeID {
	return TypeID(t.string(func(protocol *ProtocolDecl) string {
		return string(protocol.ID())
	}))
}

func (t *ExistentialType) String() string {
	return t.string(func(protocol *ProtocolDecl) string {
		return protocol.Identifier
	})
}

func (t *ExistentialType) string(protocolString func(*ProtocolDecl) string) string {
	if len(t.Protocols) == 0 {
		return "Any"
	}

	var builder strings.Builder
	builder.WriteString("any ")
	for i, protocol := range t.Protocols {
		if i > 0 {
			builder.WriteString(" & ")
		}
		builder.WriteString(protocolString(protocol))
	}
	return builder.String()
}

func (t *ExistentialType) Equal(other Type) bool {
	otherExistential, ok := other.(*ExistentialType)
	if !ok || len(t.Protocols) != len(otherExistential.Protocols) {
		return false
	}
	for _, protocol := range t.Protocols {
		if !containsProtocol(otherExistential.Protocols, protocol) {
			return false
		}
	}
	return true
}

func (*ExistentialType) IsInvalidType() bool {
	return false
}

func (*ExistentialType) ContainsTypeVariable() bool {
	return false
}

func (t *ExistentialType) Map(f func(Type) Type) Type {
	return f(t)
}

// Parameter is a parameter of a function type.
// An empty label means the parameter has no argument label.
type Parameter struct {
	Label    string
	Type     Type
	Variadic bool
}

// FunctionType is the type of a function or subscript,
// not including the implicit receiver parameter of members.
type FunctionType struct {
	Parameters []Parameter
	ReturnType Type
}

var _ Type = &FunctionType{}

func (*FunctionType) isType() {}

func (t *FunctionType) ID() TypeID {
	return TypeID(t.string(Type.ID))
}

func (t *FunctionType) String() string {
	return t.string(func(t Type) TypeID {
		return TypeID(t.String())
	})
}

func (t *FunctionType) string(typeString func(Type) TypeID) string {
	var builder strings.Builder
	builder.WriteByte('(')
	for i, parameter := range t.Parameters {
		if i > 0 {
			builder.WriteString(", ")
		}
		if parameter.Label != "" {
			builder.WriteString(parameter.Label)
			builder.WriteString(": ")
		}
		builder.WriteString(string(typeString(parameter.Type)))
		if parameter.Variadic {
			builder.WriteString("...")
		}
	}
	builder.WriteString(") -> ")
	builder.WriteString(string(typeString(t.ReturnType)))
	return builder.String()
}

func (t *FunctionType) Equal(other Type) bool {
	otherFunction, ok := other.(*FunctionType)
	if !ok || len(t.Parameters) != len(otherFunction.Parameters) {
		return false
	}
	for i, parameter := range t.Parameters {
		otherParameter := otherFunction.Parameters[i]
		if parameter.Label != otherParameter.Label ||
			parameter.Variadic != otherParameter.Variadic ||
			!parameter.Type.Equal(otherParameter.Type) {

			return false
		}
	}
	return t.ReturnType.Equal(otherFunction.ReturnType)
}

func (t *FunctionType) IsInvalidType() bool {
	for _, parameter := range t.Parameters {
		if parameter.Type.IsInvalidType() {
			return true
		}
	}
	return t.ReturnType.IsInvalidType()
}

func (t *FunctionType) ContainsTypeVariable() bool {
	for _, parameter := range t.Parameters {
		if parameter.Type.ContainsTypeVariable() {
			return true
		}
	}
	return t.ReturnType.ContainsTypeVariable()
}

func (t *FunctionType) Map(f func(Type) Type) Type {
	return f(t.mapFunction(f))
}

func (t *FunctionType) mapFunction(f func(Type) Type) *FunctionType {
	parameters := make([]Parameter, len(t.Parameters))
	for i, parameter := range t.Parameters {
		parameters[i] = Parameter{
			Label:    parameter.Label,
			Type:     parameter.Type.Map(f),
			Variadic: parameter.Variadic,
		}
	}
	return &FunctionType{
		Parameters: parameters,
		ReturnType: t.ReturnType.Map(f),
	}
}

// TypeVariable is a unification variable,
// introduced when a type is opened for matching.
type TypeVariable struct {
	Number uint64
}

var _ Type = &TypeVariable{}

func (*TypeVariable) isType() {}

func (t *TypeVariable) ID() TypeID {
	return TypeID(t.String())
}

func (t *TypeVariable) String() string {
	return "$T" + strconv.FormatUint(t.Number, 10)
}

func (t *TypeVariable) Equal(other Type) bool {
	otherVariable, ok := other.(*TypeVariable)
	return ok && otherVariable.Number == t.Number
}

func (*TypeVariable) IsInvalidType() bool {
	return false
}

func (*TypeVariable) ContainsTypeVariable() bool {
	return true
}

func (t *TypeVariable) Map(f func(Type) Type) Type {
	return f(t)
}

// TypeSubstitutionMap maps placeholders to their replacements.
type TypeSubstitutionMap map[*GenericParameterType]Type

// Substitute replaces the placeholders in the given type.
// Placeholders without an entry in the map are left in place.
func Substitute(ty Type, substitutions TypeSubstitutionMap) Type {
	if len(substitutions) == 0 {
		return ty
	}

	return ty.Map(func(ty Type) Type {
		parameter, ok := ty.(*GenericParameterType)
		if !ok {
			return ty
		}
		replacement, ok := substitutions[parameter]
		if !ok {
			return ty
		}
		return replacement
	})
}

// ReferencesType returns true if the given type
// mentions the given placeholder anywhere in its structure.
func ReferencesType(ty Type, parameter *GenericParameterType) (found bool) {
	ty.Map(func(ty Type) Type {
		if ty == Type(parameter) {
			found = true
		}
		return ty
	})
	return
}
