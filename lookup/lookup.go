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

// Package lookup implements member and operator lookup
// over the declarations of modules.
package lookup

import (
	"sort"

	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/sema"
)

// DeclarationLookup finds members in the declarations of the given modules.
type DeclarationLookup struct {
	Modules []*sema.Module
}

var _ sema.MemberLookup = &DeclarationLookup{}
var _ sema.MemberNameLister = &DeclarationLookup{}

func NewDeclarationLookup(modules ...*sema.Module) *DeclarationLookup {
	return &DeclarationLookup{
		Modules: modules,
	}
}

// LookupMember returns the value members with the given name.
//
// For nominal types, these are the members of the declaration, its extensions,
// its superclasses, and the requirements of the protocols it declares conformance to.
// A superclass member overridden by a subclass is not included.
// For placeholders and existentials, these are the requirements
// of their protocols.
func (l *DeclarationLookup) LookupMember(ty sema.Type, name string) []sema.ValueDecl {
	var result []sema.ValueDecl

	l.foreachValueMember(ty, func(member sema.ValueDecl) {
		if member.DeclarationIdentifier() == name {
			result = appendUnique(result, member)
		}
	})

	return result
}

// LookupMemberType returns the type members with the given name,
// i.e. type aliases and nested types, of nominal types.
// Type members of a subclass shadow the type members of its superclasses.
func (l *DeclarationLookup) LookupMemberType(ty sema.Type, name string) []sema.MemberType {
	nominal, ok := ty.(*sema.NominalType)
	if !ok {
		return nil
	}

	var result []sema.MemberType

	foreachNominalDecl(nominal, func(decl *sema.NominalTypeDecl) {
		if len(result) > 0 {
			return
		}

		foreachSite(decl, func(typeMembers []sema.TypeDecl, _ []sema.ValueDecl, _ []*sema.ProtocolDecl) {
			for _, member := range typeMembers {
				if member.DeclarationIdentifier() != name {
					continue
				}
				result = append(
					result,
					sema.MemberType{
						Decl: member,
						Type: sema.TypeMemberTypeWithBase(member, nominal),
					},
				)
			}
		})
	})

	return result
}

// LookupOperator returns the global functions with the given name.
func (l *DeclarationLookup) LookupOperator(name string) []sema.ValueDecl {
	var result []sema.ValueDecl

	for _, module := range l.Modules {
		for _, function := range module.Functions {
			if function.Identifier == name {
				result = append(result, function)
			}
		}
	}

	return result
}

// MemberNames returns the sorted names of the value members of the given type.
// Protocol requirements are not included.
func (l *DeclarationLookup) MemberNames(ty sema.Type) []string {
	names := map[string]struct{}{}

	l.foreachValueMember(ty, func(member sema.ValueDecl) {
		if _, ok := member.Owner().(*sema.ProtocolDecl); ok {
			return
		}
		names[member.DeclarationIdentifier()] = struct{}{}
	})

	result := make([]string, 0, len(names))
	for name := range names { //nolint:maprangecheck
		result = append(result, name)
	}
	sort.Strings(result)

	return result
}

func (l *DeclarationLookup) foreachValueMember(ty sema.Type, f func(member sema.ValueDecl)) {
	switch ty := ty.(type) {
	case *sema.NominalType:
		var protocols []*sema.ProtocolDecl
		overridden := map[memberSignature]struct{}{}

		foreachNominalDecl(ty, func(decl *sema.NominalTypeDecl) {
			var declared []memberSignature

			foreachSite(decl, func(_ []sema.TypeDecl, members []sema.ValueDecl, conformances []*sema.ProtocolDecl) {
				for _, member := range members {
					signature := newMemberSignature(member, ty)
					if _, ok := overridden[signature]; ok {
						continue
					}
					declared = append(declared, signature)
					f(member)
				}
				protocols = append(protocols, conformances...)
			})

			for _, signature := range declared {
				overridden[signature] = struct{}{}
			}
		})

		foreachRequirement(protocols, f)

	case *sema.GenericParameterType:
		foreachRequirement(ty.Protocols, f)

	case *sema.ExistentialType:
		foreachRequirement(ty.Protocols, f)
	}
}

// memberSignature identifies the members which override each other:
// members with the same name, kind, and type, as seen from the same type.
type memberSignature struct {
	identifier string
	kind       common.DeclarationKind
	static     bool
	typ        string
}

func newMemberSignature(member sema.ValueDecl, base sema.Type) memberSignature {
	return memberSignature{
		identifier: member.DeclarationIdentifier(),
		kind:       member.DeclarationKind(),
		static:     member.IsStatic(),
		typ:        sema.MemberTypeWithBase(member, base).String(),
	}
}

// foreachNominalDecl calls the given function for the declaration of the type,
// and the declarations of its superclasses.
func foreachNominalDecl(ty *sema.NominalType, f func(decl *sema.NominalTypeDecl)) {
	visited := map[*sema.NominalTypeDecl]struct{}{}

	for current := ty; current != nil; current = sema.SuperclassType(current) {
		if _, ok := visited[current.Decl]; ok {
			return
		}
		visited[current.Decl] = struct{}{}

		f(current.Decl)
	}
}

// foreachSite calls the given function for the declaration and its extensions.
func foreachSite(
	decl *sema.NominalTypeDecl,
	f func(typeMembers []sema.TypeDecl, members []sema.ValueDecl, conformances []*sema.ProtocolDecl),
) {
	f(decl.TypeMembers, decl.Members, decl.Conformances)

	for _, extension := range decl.Extensions {
		f(extension.TypeMembers, extension.Members, extension.Conformances)
	}
}

// foreachRequirement calls the given function for the requirements
// of the given protocols and the protocols they inherit from.
func foreachRequirement(protocols []*sema.ProtocolDecl, f func(requirement sema.ValueDecl)) {
	visited := map[*sema.ProtocolDecl]struct{}{}

	queue := append([]*sema.ProtocolDecl(nil), protocols...)

	for len(queue) > 0 {
		protocol := queue[0]
		queue = queue[1:]

		if _, ok := visited[protocol]; ok {
			continue
		}
		visited[protocol] = struct{}{}

		for _, requirement := range protocol.Requirements {
			f(requirement)
		}

		queue = append(queue, protocol.Inherited...)
	}
}

func appendUnique(members []sema.ValueDecl, member sema.ValueDecl) []sema.ValueDecl {
	for _, existing := range members {
		if existing == member {
			return members
		}
	}
	return append(members, member)
}
