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

// Package loader reads program descriptions:
// protocols, nominal types, extensions, and conformance queries,
// declared in YAML.
package loader

import (
	"fmt"

	"github.com/goccy/go-yaml"
	yamlast "github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/token"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/sema"
)

// Check is a query whether a type conforms to a protocol.
type Check struct {
	Type     sema.Type
	Protocol *sema.ProtocolDecl
	ast.Range
}

// Program is a loaded program description.
type Program struct {
	Location common.Location
	Code     []byte
	Module   *sema.Module
	Builtins *sema.Module
	Checks   []Check
}

// Modules returns the declared module and the builtin module.
func (p *Program) Modules() []*sema.Module {
	return []*sema.Module{p.Module, p.Builtins}
}

// Protocol returns the declared protocol with the given name, if any.
func (p *Program) Protocol(name string) *sema.ProtocolDecl {
	return p.Module.Protocol(name)
}

// NominalType returns the declared or builtin nominal type with the given name, if any.
func (p *Program) NominalType(name string) *sema.NominalTypeDecl {
	decl := p.Module.NominalType(name)
	if decl != nil {
		return decl
	}
	return p.Builtins.NominalType(name)
}

// ParseType parses the given type expression in the top-level scope of the program.
func (p *Program) ParseType(source string) (sema.Type, error) {
	l := &loader{
		program: p,
	}
	l.index()

	ty, err := l.parseType(source, nil, ast.EmptyRange, &scope{})
	if err != nil {
		return nil, err
	}
	return ty, nil
}

type loader struct {
	program     *Program
	lineOffsets []int
	protocols   map[string]*sema.ProtocolDecl
	nominals    map[string]*sema.NominalTypeDecl
	errors      []error
}

// Load reads the program description in the given code.
func Load(location common.Location, code []byte) (*Program, error) {

	var description programDescription
	if err := yaml.Unmarshal(code, &description); err != nil {
		return nil, &LoadError{
			Location: location,
			Code:     code,
			Errors: []error{
				&ParsingError{
					Message: yaml.FormatError(err, false, false),
				},
			},
		}
	}

	program := &Program{
		Location: location,
		Code:     code,
		Module: &sema.Module{
			Location: location,
		},
		Builtins: newBuiltins(),
	}

	l := &loader{
		program:     program,
		lineOffsets: lineOffsets(code),
		protocols:   map[string]*sema.ProtocolDecl{},
		nominals:    map[string]*sema.NominalTypeDecl{},
	}

	l.load(&description)

	if len(l.errors) > 0 {
		return nil, &LoadError{
			Location: location,
			Code:     code,
			Errors:   l.errors,
		}
	}

	return program, nil
}

func (l *loader) report(err error) {
	l.errors = append(l.errors, err)
}

// index registers the declarations of an already loaded program.
func (l *loader) index() {
	l.protocols = map[string]*sema.ProtocolDecl{}
	l.nominals = map[string]*sema.NominalTypeDecl{}
	for _, protocol := range l.program.Module.Protocols {
		l.protocols[protocol.Identifier] = protocol
	}
	for _, nominal := range l.program.Module.Types {
		l.nominals[nominal.Identifier] = nominal
	}
}

func (l *loader) load(description *programDescription) {

	// Declare all protocols and types first,
	// so declarations can refer to each other independent of their order

	for _, protocolDescription := range description.Protocols {
		l.declareProtocol(protocolDescription)
	}

	for _, typeDescription := range description.Types {
		decl := l.declareNominal(typeDescription, nil)
		if decl != nil {
			l.program.Module.Types = append(l.program.Module.Types, decl)
		}
	}

	if len(l.errors) > 0 {
		return
	}

	// Requirements may refer to associated types of inherited protocols,
	// so the inheritance of all protocols is known first

	for i, protocolDescription := range description.Protocols {
		l.program.Module.Protocols[i].Inherited, _ = l.protocolList(protocolDescription.Inherits)
	}

	for i, protocolDescription := range description.Protocols {
		l.defineProtocol(l.program.Module.Protocols[i], protocolDescription)
	}

	for i, typeDescription := range description.Types {
		l.defineNominal(l.program.Module.Types[i], typeDescription)
	}

	for _, extensionDescription := range description.Extensions {
		l.defineExtension(extensionDescription)
	}

	for _, functionDescription := range description.Functions {
		if functionDescription.Function == nil {
			l.report(&ParsingError{
				Message: "global declarations must be functions",
				Range:   l.nodeRange(functionDescription.Type),
			})
			continue
		}
		function, ok := l.member(functionDescription, l.program.Module, &scope{}).(*sema.FunctionDecl)
		if !ok {
			continue
		}
		l.program.Module.Functions = append(l.program.Module.Functions, function)
	}

	for _, checkDescription := range description.Checks {
		l.defineCheck(checkDescription)
	}
}

// Protocols

func (l *loader) declareProtocol(description protocolDescription) {
	name, nameRange, ok := l.name(description.Name, "protocol name")
	if !ok {
		return
	}

	if _, ok := l.protocols[name]; ok {
		l.report(&RedeclarationError{
			Kind:  common.DeclarationKindProtocol,
			Name:  name,
			Range: nameRange,
		})
		return
	}

	protocol := sema.NewProtocolDecl(l.program.Location, name, nameRange)
	protocol.ClassOnly = description.ClassOnly
	protocol.PositionalParameterNames = description.PositionalNames

	for _, associatedTypeDescription := range description.AssociatedTypes {
		associatedTypeName, associatedTypeRange, ok := l.name(associatedTypeDescription.Name, "associated type name")
		if !ok {
			continue
		}
		if protocol.AssociatedType(associatedTypeName) != nil {
			l.report(&RedeclarationError{
				Kind:  common.DeclarationKindAssociatedType,
				Name:  associatedTypeName,
				Range: associatedTypeRange,
			})
			continue
		}
		protocol.AddAssociatedType(associatedTypeName, nil, associatedTypeRange)
	}

	l.protocols[name] = protocol
	l.program.Module.Protocols = append(l.program.Module.Protocols, protocol)
}

func (l *loader) defineProtocol(protocol *sema.ProtocolDecl, description protocolDescription) {
	for i, associatedTypeDescription := range description.AssociatedTypes {
		if i >= len(protocol.AssociatedTypes) {
			break
		}
		associatedType := protocol.AssociatedTypes[i]
		protocols, _ := l.protocolList(associatedTypeDescription.ConformsTo)
		associatedType.Protocols = protocols
		associatedType.Archetype.Protocols = protocols
	}

	protocolScope := &scope{
		protocol: protocol,
	}

	for _, requirementDescription := range description.Requirements {
		requirement := l.member(requirementDescription, protocol, protocolScope)
		if requirement != nil {
			protocol.Requirements = append(protocol.Requirements, requirement)
		}
	}
}

// Nominal types

func (l *loader) declarationKind(kind string, node yamlast.Node) common.DeclarationKind {
	if kind == "" {
		return common.DeclarationKindStructure
	}

	for _, declarationKind := range []common.DeclarationKind{
		common.DeclarationKindStructure,
		common.DeclarationKindClass,
		common.DeclarationKindEnum,
	} {
		if declarationKind.Keywords() == kind {
			return declarationKind
		}
	}

	l.report(&ParsingError{
		Message: fmt.Sprintf("invalid kind `%s`, expected `struct`, `class`, or `enum`", kind),
		Range:   l.nodeRange(node),
	})
	return common.DeclarationKindUnknown
}

func (l *loader) declareNominal(description typeDescription, parent *sema.NominalTypeDecl) *sema.NominalTypeDecl {
	name, nameRange, ok := l.name(description.Name, "type name")
	if !ok {
		return nil
	}

	if parent == nil {
		if _, ok := l.nominals[name]; ok {
			l.report(&RedeclarationError{
				Kind:  common.DeclarationKindStructure,
				Name:  name,
				Range: nameRange,
			})
			return nil
		}
	}

	decl := &sema.NominalTypeDecl{
		Identifier: name,
		Kind:       l.declarationKind(description.Kind, description.Name),
		Location:   l.program.Location,
		Parent:     parent,
		Range:      nameRange,
	}

	for _, parameterDescription := range description.GenericParameters {
		parameterName, _, ok := l.name(parameterDescription.Name, "generic parameter name")
		if !ok {
			continue
		}
		decl.GenericParameters = append(
			decl.GenericParameters,
			&sema.GenericParameterType{
				Identifier: parameterName,
				Scope:      decl.QualifiedIdentifier(),
				Kind:       sema.GenericParameterKindTypeParameter,
			},
		)
	}

	for _, nestedDescription := range description.Types {
		nested := l.declareNominal(nestedDescription, decl)
		if nested == nil {
			continue
		}
		if nestedNominal(decl, nested.Identifier) != nil {
			l.report(&RedeclarationError{
				Kind:  common.DeclarationKindStructure,
				Name:  nested.Identifier,
				Range: nested.Range,
			})
			continue
		}
		decl.TypeMembers = append(decl.TypeMembers, nested)
	}

	if parent == nil {
		l.nominals[name] = decl
	}

	return decl
}

func (l *loader) defineNominal(decl *sema.NominalTypeDecl, description typeDescription) {
	nominalScope := &scope{
		nominal: decl,
	}

	for i, parameterDescription := range description.GenericParameters {
		if i >= len(decl.GenericParameters) {
			break
		}
		decl.GenericParameters[i].Protocols, _ = l.protocolList(parameterDescription.ConformsTo)
	}

	if description.Superclass != nil {
		superclassType, err := l.parseTypeNode(description.Superclass, nominalScope)
		if err == nil {
			superclass, ok := superclassType.(*sema.NominalType)
			if !ok || !superclass.IsClass() || decl.Kind != common.DeclarationKindClass {

				l.report(&ParsingError{
					Message: fmt.Sprintf("invalid superclass `%s`", superclassType),
					Range:   l.nodeRange(description.Superclass),
				})
			} else {
				decl.Superclass = superclass
			}
		}
	}

	decl.Conformances, decl.InheritanceRanges = l.protocolList(description.ConformsTo)

	for _, memberDescription := range description.Members {
		member := l.member(memberDescription, decl, nominalScope)
		if member != nil {
			decl.Members = append(decl.Members, member)
		}
	}

	for _, aliasDescription := range description.TypeAliases {
		alias := l.typeAlias(aliasDescription, decl, nominalScope)
		if alias != nil {
			decl.TypeMembers = append(decl.TypeMembers, alias)
		}
	}

	for _, nestedDescription := range description.Types {
		name, _, ok := l.name(nestedDescription.Name, "type name")
		if !ok {
			continue
		}
		nested := nestedNominal(decl, name)
		if nested == nil {
			continue
		}
		l.defineNominal(nested, nestedDescription)
	}
}

// Extensions

func (l *loader) defineExtension(description extensionDescription) {
	extendedType, err := l.parseTypeNode(description.Extends, &scope{})
	if err != nil {
		return
	}

	extended, ok := extendedType.(*sema.NominalType)
	if !ok || extended.IsSpecialized() {
		l.report(&ParsingError{
			Message: fmt.Sprintf("cannot extend `%s`", extendedType),
			Range:   l.nodeRange(description.Extends),
		})
		return
	}

	extension := &sema.ExtensionDecl{
		Extended: extended.Decl,
		Location: l.program.Location,
		Range:    l.nodeRange(description.Extends),
	}

	extension.Conformances, extension.InheritanceRanges = l.protocolList(description.ConformsTo)

	extensionScope := &scope{
		nominal: extended.Decl,
	}

	for _, memberDescription := range description.Members {
		member := l.member(memberDescription, extension, extensionScope)
		if member != nil {
			extension.Members = append(extension.Members, member)
		}
	}

	for _, aliasDescription := range description.TypeAliases {
		alias := l.typeAlias(aliasDescription, extension, extensionScope)
		if alias != nil {
			extension.TypeMembers = append(extension.TypeMembers, alias)
		}
	}

	extended.Decl.Extensions = append(extended.Decl.Extensions, extension)
	l.program.Module.Extensions = append(l.program.Module.Extensions, extension)
}

// Members

func (l *loader) typeAlias(
	description typeAliasDescription,
	context sema.DeclContext,
	scope *scope,
) *sema.TypeAliasDecl {
	name, nameRange, ok := l.name(description.Name, "type alias name")
	if !ok {
		return nil
	}

	aliasedType, err := l.parseTypeNode(description.Type, scope)
	if err != nil {
		return nil
	}

	return &sema.TypeAliasDecl{
		Identifier: name,
		Context:    context,
		Type:       aliasedType,
		Range:      nameRange,
	}
}

func contextIdentifier(context sema.DeclContext) string {
	switch context := context.(type) {
	case *sema.ProtocolDecl:
		return context.Identifier
	case *sema.NominalTypeDecl:
		return context.QualifiedIdentifier()
	case *sema.ExtensionDecl:
		return context.Extended.QualifiedIdentifier()
	default:
		return ""
	}
}

func (l *loader) member(
	description memberDescription,
	context sema.DeclContext,
	parentScope *scope,
) sema.ValueDecl {

	memberScope := parentScope.nested()

	switch {
	case description.Function != nil:
		name, nameRange, ok := l.name(description.Function, "function name")
		if !ok {
			return nil
		}

		function := &sema.FunctionDecl{
			Identifier: name,
			Context:    context,
			Static:     description.Static,
			Invalid:    description.Invalid,
			Range:      nameRange,
		}

		switch {
		case description.Prefix:
			function.Fixity = sema.OperatorFixityPrefix
		case description.Postfix:
			function.Fixity = sema.OperatorFixityPostfix
		case sema.IsOperatorName(name):
			function.Fixity = sema.OperatorFixityInfix
		}

		scopeIdentifier := name
		if identifier := contextIdentifier(context); identifier != "" {
			scopeIdentifier = identifier + "." + name
		}

		for _, parameterDescription := range description.GenericParameters {
			parameterName, _, ok := l.name(parameterDescription.Name, "generic parameter name")
			if !ok {
				continue
			}
			protocols, _ := l.protocolList(parameterDescription.ConformsTo)
			function.GenericParameters = append(
				function.GenericParameters,
				&sema.GenericParameterType{
					Identifier: parameterName,
					Scope:      scopeIdentifier,
					Kind:       sema.GenericParameterKindTypeParameter,
					Protocols:  protocols,
				},
			)
		}
		memberScope.genericParameters = function.GenericParameters

		function.Type = l.functionType(description.Type, memberScope)

		return function

	case description.Property != nil:
		name, nameRange, ok := l.name(description.Property, "property name")
		if !ok {
			return nil
		}

		property := &sema.PropertyDecl{
			Identifier: name,
			Context:    context,
			Static:     description.Static,
			Invalid:    description.Invalid,
			Range:      nameRange,
		}

		if description.Type != nil {
			propertyType, err := l.parseTypeNode(description.Type, memberScope)
			if err == nil {
				property.Type = propertyType
			}
		}

		return property

	case description.Subscript:
		return &sema.SubscriptDecl{
			Context: context,
			Type:    l.functionType(description.Type, memberScope),
			Invalid: description.Invalid,
			Range:   l.nodeRange(description.Type),
		}

	default:
		l.report(&ParsingError{
			Message: "member must be a function, a property, or a subscript",
			Range:   l.nodeRange(description.Type),
		})
		return nil
	}
}

func (l *loader) functionType(node yamlast.Node, scope *scope) *sema.FunctionType {
	if node == nil {
		return nil
	}

	ty, err := l.parseTypeNode(node, scope)
	if err != nil {
		return nil
	}

	functionType, ok := ty.(*sema.FunctionType)
	if !ok {
		l.report(&ParsingError{
			Message: fmt.Sprintf("expected function type, got `%s`", ty),
			Range:   l.nodeRange(node),
		})
		return nil
	}

	return functionType
}

// Checks

func (l *loader) defineCheck(description checkDescription) {
	ty, err := l.parseTypeNode(description.Type, &scope{})
	if err != nil {
		return
	}

	protocols, _ := l.protocolList([]yamlast.Node{description.Protocol})
	if len(protocols) == 0 {
		return
	}

	l.program.Checks = append(
		l.program.Checks,
		Check{
			Type:     ty,
			Protocol: protocols[0],
			Range:    l.nodeRange(description.Type),
		},
	)
}

// Lookup

func (l *loader) lookupProtocol(name string) *sema.ProtocolDecl {
	return l.protocols[name]
}

// lookupNominal returns the nominal type declaration with the given name:
// a type nested in one of the enclosing types, a top-level type, or a builtin type.
func (l *loader) lookupNominal(name string, scope *scope) *sema.NominalTypeDecl {
	for decl := scope.enclosingNominal(); decl != nil; decl = decl.Parent {
		if decl.Identifier == name && decl.Parent != nil {
			return decl
		}
		if nested := nestedNominal(decl, name); nested != nil {
			return nested
		}
	}

	if decl, ok := l.nominals[name]; ok {
		return decl
	}

	return l.program.Builtins.NominalType(name)
}

func (l *loader) protocolList(nodes []yamlast.Node) ([]*sema.ProtocolDecl, []ast.Range) {
	var protocols []*sema.ProtocolDecl
	var ranges []ast.Range

	for _, node := range nodes {
		name, nameRange, ok := l.name(node, "protocol name")
		if !ok {
			continue
		}

		protocol := l.lookupProtocol(name)
		if protocol == nil {
			l.report(&UnknownDeclarationError{
				Kind:  common.DeclarationKindProtocol,
				Name:  name,
				Range: nameRange,
			})
			continue
		}

		protocols = append(protocols, protocol)
		ranges = append(ranges, nameRange)
	}

	return protocols, ranges
}

// Types

func (l *loader) parseTypeNode(node yamlast.Node, scope *scope) (sema.Type, error) {
	source, sourceRange, ok := l.name(node, "type")
	if !ok {
		return nil, fmt.Errorf("missing type")
	}

	return l.parseType(source, node, sourceRange, scope)
}

func (l *loader) parseType(source string, node yamlast.Node, sourceRange ast.Range, scope *scope) (sema.Type, error) {
	var path string
	if node != nil {
		path = node.GetPath()
	}

	tokens, err := tokenizeType(source)
	if err != nil {
		syntaxErr := &TypeSyntaxError{
			Source:  source,
			Message: err.Error(),
			Range:   sourceRange,
		}
		l.report(syntaxErr)
		return nil, syntaxErr
	}

	parser := &typeParser{
		loader: l,
		scope:  scope,
		tokens: tokens,
	}

	ty, err := parser.parse()
	if err != nil {
		var reported error
		if unknown, ok := err.(unknownDeclaration); ok {
			reported = &UnknownDeclarationError{
				Kind:  unknown.kind,
				Name:  unknown.name,
				Range: sourceRange,
			}
		} else {
			reported = &TypeSyntaxError{
				Source:  source,
				Message: fmt.Sprintf("%s (at %s)", err.Error(), path),
				Range:   sourceRange,
			}
		}
		l.report(reported)
		return nil, reported
	}

	return ty, nil
}

// Positions

func lineOffsets(code []byte) []int {
	offsets := []int{0}
	offset := 0
	for _, r := range string(code) {
		offset++
		if r == '\n' {
			offsets = append(offsets, offset)
		}
	}
	return offsets
}

// nodeRange returns the range of the given scalar node.
// Positions are counted in runes.
func (l *loader) nodeRange(node yamlast.Node) ast.Range {
	if node == nil {
		return ast.EmptyRange
	}

	tok := node.GetToken()
	if tok == nil || tok.Position == nil {
		return ast.EmptyRange
	}

	line := tok.Position.Line
	column := tok.Position.Column - 1
	if tok.Type == token.DoubleQuoteType || tok.Type == token.SingleQuoteType {
		column++
	}
	if column < 0 {
		column = 0
	}

	offset := column
	if line >= 1 && line <= len(l.lineOffsets) {
		offset += l.lineOffsets[line-1]
	}

	start := ast.NewPosition(offset, line, column)

	length := len([]rune(tok.Value))
	if length == 0 {
		length = 1
	}

	return ast.NewRange(start, start.Shifted(length-1))
}

// name returns the value of the given string node and its range.
func (l *loader) name(node yamlast.Node, description string) (string, ast.Range, bool) {
	if node == nil {
		l.report(&ParsingError{
			Message: fmt.Sprintf("missing %s", description),
		})
		return "", ast.EmptyRange, false
	}

	nodeRange := l.nodeRange(node)

	stringNode, ok := node.(*yamlast.StringNode)
	if !ok || stringNode.Value == "" {
		l.report(&ParsingError{
			Message: fmt.Sprintf("invalid %s, expected a string", description),
			Path:    node.GetPath(),
			Range:   nodeRange,
		})
		return "", ast.EmptyRange, false
	}

	return stringNode.Value, nodeRange, true
}
