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

package loader

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/sema"
)

// scope is the context a type expression is resolved in.
type scope struct {
	parent            *scope
	protocol          *sema.ProtocolDecl
	nominal           *sema.NominalTypeDecl
	genericParameters []*sema.GenericParameterType
}

func (s *scope) nested() *scope {
	return &scope{parent: s}
}

func (s *scope) lookupGenericParameter(name string) *sema.GenericParameterType {
	for current := s; current != nil; current = current.parent {
		for _, parameter := range current.genericParameters {
			if parameter.Identifier == name {
				return parameter
			}
		}
		if current.nominal != nil {
			for decl := current.nominal; decl != nil; decl = decl.Parent {
				for _, parameter := range decl.GenericParameters {
					if parameter.Identifier == name {
						return parameter
					}
				}
			}
		}
	}
	return nil
}

func (s *scope) enclosingProtocol() *sema.ProtocolDecl {
	for current := s; current != nil; current = current.parent {
		if current.protocol != nil {
			return current.protocol
		}
	}
	return nil
}

func (s *scope) enclosingNominal() *sema.NominalTypeDecl {
	for current := s; current != nil; current = current.parent {
		if current.nominal != nil {
			return current.nominal
		}
	}
	return nil
}

// encloses returns true if the given declaration is the enclosing nominal type declaration,
// or one of its parents.
func (s *scope) encloses(decl *sema.NominalTypeDecl) bool {
	for current := s.enclosingNominal(); current != nil; current = current.Parent {
		if current == decl {
			return true
		}
	}
	return false
}

type typeToken struct {
	kind rune
	text string
}

const arrowToken = -100

// tokenizeType splits a type expression into identifiers and punctuation.
func tokenizeType(source string) ([]typeToken, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(source))
	s.Mode = scanner.ScanIdents
	s.Whitespace = 1<<'\t' | 1<<'\n' | 1<<'\r' | 1<<' '

	var scanErr error
	s.Error = func(_ *scanner.Scanner, message string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("%s", message)
		}
	}

	var tokens []typeToken
	for {
		kind := s.Scan()
		if scanErr != nil {
			return nil, scanErr
		}

		switch kind {
		case scanner.EOF:
			tokens = append(tokens, typeToken{kind: scanner.EOF})
			return tokens, nil

		case scanner.Ident:
			tokens = append(tokens, typeToken{kind: kind, text: s.TokenText()})

		case '(', ')', '<', '>', ',', ':', '.', '&':
			tokens = append(tokens, typeToken{kind: kind, text: string(kind)})

		case '-':
			if s.Peek() != '>' {
				return nil, fmt.Errorf("expected `->`")
			}
			s.Next()
			tokens = append(tokens, typeToken{kind: arrowToken, text: "->"})

		default:
			return nil, fmt.Errorf("unexpected token `%s`", s.TokenText())
		}
	}
}

// typeParser parses type expressions, e.g. `Box<Int>`, `(other: Self) -> Bool`,
// `Outer<Int>.Inner`, or `any P & Q`.
type typeParser struct {
	loader *loader
	scope  *scope
	tokens []typeToken
	index  int
}

// unknownDeclaration is returned by the parser for references to undeclared names.
type unknownDeclaration struct {
	kind common.DeclarationKind
	name string
}

func (e unknownDeclaration) Error() string {
	return fmt.Sprintf("cannot find %s `%s`", e.kind.Name(), e.name)
}

func (p *typeParser) current() typeToken {
	return p.tokens[p.index]
}

func (p *typeParser) peek(offset int) typeToken {
	index := p.index + offset
	if index >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[index]
}

func (p *typeParser) advance() typeToken {
	token := p.current()
	if token.kind != scanner.EOF {
		p.index++
	}
	return token
}

func (p *typeParser) expect(kind rune, description string) error {
	token := p.current()
	if token.kind != kind {
		return p.unexpected(description)
	}
	p.advance()
	return nil
}

func (p *typeParser) unexpected(expected string) error {
	token := p.current()
	if token.kind == scanner.EOF {
		return fmt.Errorf("expected %s, got end of type", expected)
	}
	return fmt.Errorf("expected %s, got `%s`", expected, token.text)
}

func (p *typeParser) parse() (sema.Type, error) {
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.current().kind != scanner.EOF {
		return nil, p.unexpected("end of type")
	}
	return ty, nil
}

func (p *typeParser) parseType() (sema.Type, error) {
	token := p.current()

	switch token.kind {
	case '(':
		return p.parseFunctionType()

	case scanner.Ident:
		switch token.text {
		case "Any":
			p.advance()
			return sema.NewExistentialType(nil), nil

		case "any":
			return p.parseExistentialType()
		}
		return p.parseNominalPath()

	default:
		return nil, p.unexpected("type")
	}
}

func (p *typeParser) parseFunctionType() (sema.Type, error) {
	if err := p.expect('(', "`(`"); err != nil {
		return nil, err
	}

	var parameters []sema.Parameter

	for p.current().kind != ')' {
		if len(parameters) > 0 {
			if err := p.expect(',', "`,` or `)`"); err != nil {
				return nil, err
			}
		}

		parameter, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, parameter)
	}
	p.advance()

	if err := p.expect(arrowToken, "`->`"); err != nil {
		return nil, err
	}

	returnType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	return &sema.FunctionType{
		Parameters: parameters,
		ReturnType: returnType,
	}, nil
}

// parseParameter parses a parameter of a function type:
// `T`, `label: T`, `_ name: T`, or `label name: T`, optionally followed by `...`.
func (p *typeParser) parseParameter() (sema.Parameter, error) {
	var label string

	switch {
	case p.current().kind == scanner.Ident && p.peek(1).kind == ':':
		label = p.advance().text
		p.advance()

	case p.current().kind == scanner.Ident &&
		p.peek(1).kind == scanner.Ident &&
		p.peek(2).kind == ':':

		label = p.advance().text
		p.advance()
		p.advance()
	}

	if label == "_" {
		label = ""
	}

	ty, err := p.parseType()
	if err != nil {
		return sema.Parameter{}, err
	}

	variadic := false
	if p.current().kind == '.' &&
		p.peek(1).kind == '.' &&
		p.peek(2).kind == '.' {

		p.advance()
		p.advance()
		p.advance()
		variadic = true
	}

	return sema.Parameter{
		Label:    label,
		Type:     ty,
		Variadic: variadic,
	}, nil
}

func (p *typeParser) parseExistentialType() (sema.Type, error) {
	// any
	p.advance()

	var protocols []*sema.ProtocolDecl

	for {
		token := p.current()
		if token.kind != scanner.Ident {
			return nil, p.unexpected("protocol name")
		}
		p.advance()

		protocol := p.loader.lookupProtocol(token.text)
		if protocol == nil {
			return nil, unknownDeclaration{
				kind: common.DeclarationKindProtocol,
				name: token.text,
			}
		}
		protocols = append(protocols, protocol)

		if p.current().kind != '&' {
			break
		}
		p.advance()
	}

	return sema.NewExistentialType(protocols), nil
}

func (p *typeParser) parseTypeArguments() ([]sema.Type, error) {
	if p.current().kind != '<' {
		return nil, nil
	}
	p.advance()

	var arguments []sema.Type

	for p.current().kind != '>' {
		if len(arguments) > 0 {
			if err := p.expect(',', "`,` or `>`"); err != nil {
				return nil, err
			}
		}

		argument, err := p.parseType()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)
	}
	p.advance()

	return arguments, nil
}

// isMemberAccess returns true if the current token starts a member access, i.e. `.Name`.
// `...` of variadic parameters is not a member access.
func (p *typeParser) isMemberAccess() bool {
	return p.current().kind == '.' &&
		p.peek(1).kind == scanner.Ident
}

func (p *typeParser) parseNominalPath() (sema.Type, error) {
	name := p.advance().text

	arguments, err := p.parseTypeArguments()
	if err != nil {
		return nil, err
	}

	ty, err := p.resolveFirst(name, arguments)
	if err != nil {
		return nil, err
	}

	for p.isMemberAccess() {
		p.advance()
		memberName := p.advance().text

		memberArguments, err := p.parseTypeArguments()
		if err != nil {
			return nil, err
		}

		ty, err = p.resolveMember(ty, memberName, memberArguments)
		if err != nil {
			return nil, err
		}
	}

	return ty, nil
}

func (p *typeParser) resolveFirst(name string, arguments []sema.Type) (sema.Type, error) {
	noArguments := func(ty sema.Type) (sema.Type, error) {
		if len(arguments) > 0 {
			return nil, fmt.Errorf("`%s` cannot be specialized", name)
		}
		return ty, nil
	}

	if name == "Self" {
		if protocol := p.scope.enclosingProtocol(); protocol != nil {
			return noArguments(protocol.Self)
		}
		if nominal := p.scope.enclosingNominal(); nominal != nil {
			return noArguments(nominal.DeclaredTypeInContext())
		}
		return nil, fmt.Errorf("`Self` is only available in protocols and types")
	}

	if parameter := p.scope.lookupGenericParameter(name); parameter != nil {
		return noArguments(parameter)
	}

	if protocol := p.scope.enclosingProtocol(); protocol != nil {
		if associatedType := lookupAssociatedType(protocol, name); associatedType != nil {
			return noArguments(associatedType.Archetype)
		}
	}

	decl := p.loader.lookupNominal(name, p.scope)
	if decl == nil {
		return nil, unknownDeclaration{
			kind: common.DeclarationKindStructure,
			name: name,
		}
	}

	if len(arguments) == 0 && p.scope.encloses(decl) {
		return decl.DeclaredTypeInContext(), nil
	}

	var parent *sema.NominalType
	if decl.Parent != nil {
		parent = decl.Parent.DeclaredTypeInContext()
	}

	return &sema.NominalType{
		Decl:          decl,
		Parent:        parent,
		TypeArguments: arguments,
	}, nil
}

func (p *typeParser) resolveMember(base sema.Type, name string, arguments []sema.Type) (sema.Type, error) {
	switch base := base.(type) {
	case *sema.GenericParameterType:
		if base.Kind == sema.GenericParameterKindProtocolSelf && len(arguments) == 0 {
			protocol := p.scope.enclosingProtocol()
			if protocol != nil && protocol.Self == base {
				if associatedType := lookupAssociatedType(protocol, name); associatedType != nil {
					return associatedType.Archetype, nil
				}
			}
		}

	case *sema.NominalType:
		if nested := nestedNominal(base.Decl, name); nested != nil {
			return &sema.NominalType{
				Decl:          nested,
				Parent:        base,
				TypeArguments: arguments,
			}, nil
		}
	}

	return nil, unknownDeclaration{
		kind: common.DeclarationKindStructure,
		name: fmt.Sprintf("%s.%s", base, name),
	}
}

// lookupAssociatedType finds the associated type with the given name
// in the protocol or the protocols it inherits from.
func lookupAssociatedType(protocol *sema.ProtocolDecl, name string) *sema.AssociatedTypeDecl {
	visited := map[*sema.ProtocolDecl]struct{}{}
	queue := []*sema.ProtocolDecl{protocol}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}

		if associatedType := current.AssociatedType(name); associatedType != nil {
			return associatedType
		}

		queue = append(queue, current.Inherited...)
	}

	return nil
}

func nestedNominal(decl *sema.NominalTypeDecl, name string) *sema.NominalTypeDecl {
	for _, member := range decl.TypeMembers {
		nested, ok := member.(*sema.NominalTypeDecl)
		if ok && nested.Identifier == name {
			return nested
		}
	}
	return nil
}
