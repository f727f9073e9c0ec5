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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/sema"
)

const testLocation = common.StringLocation("test")

func TestLoad(t *testing.T) {

	t.Parallel()

	t.Run("protocols and types", func(t *testing.T) {

		t.Parallel()

		const code = `
module: test
protocols:
  - name: Equatable
    requirements:
      - function: isEqual
        type: "(other: Self) -> Bool"
  - name: Container
    inherits: [Equatable]
    associatedTypes:
      - name: Item
        conformsTo: [Equatable]
    requirements:
      - function: get
        type: "() -> Item"
      - property: count
        type: Int
      - subscript: true
        type: "(index: Int) -> Self.Item"
types:
  - name: Point
    conformsTo: [Equatable]
    members:
      - function: isEqual
        type: "(other: Point) -> Bool"
checks:
  - type: Point
    protocol: Equatable
`

		program, err := Load(testLocation, []byte(code))
		require.NoError(t, err)

		equatable := program.Protocol("Equatable")
		require.NotNil(t, equatable)
		require.Len(t, equatable.Requirements, 1)

		isEqual := equatable.Requirements[0].(*sema.FunctionDecl)
		assert.Equal(t, "isEqual", isEqual.Identifier)
		assert.Equal(t, equatable, isEqual.Context)
		require.Len(t, isEqual.Type.Parameters, 1)
		assert.Equal(t, "other", isEqual.Type.Parameters[0].Label)
		assert.Same(t, equatable.Self, isEqual.Type.Parameters[0].Type)
		assert.Equal(t, "Bool", isEqual.Type.ReturnType.String())

		container := program.Protocol("Container")
		require.NotNil(t, container)
		assert.Equal(t, []*sema.ProtocolDecl{equatable}, container.Inherited)

		item := container.AssociatedType("Item")
		require.NotNil(t, item)
		assert.Equal(t, []*sema.ProtocolDecl{equatable}, item.Protocols)
		assert.Equal(t, []*sema.ProtocolDecl{equatable}, item.Archetype.Protocols)

		require.Len(t, container.Requirements, 3)

		get := container.Requirements[0].(*sema.FunctionDecl)
		assert.Same(t, item.Archetype, get.Type.ReturnType)

		count := container.Requirements[1].(*sema.PropertyDecl)
		assert.Equal(t, "Int", count.Type.String())

		subscript := container.Requirements[2].(*sema.SubscriptDecl)
		assert.Same(t, item.Archetype, subscript.Type.ReturnType)

		point := program.NominalType("Point")
		require.NotNil(t, point)
		assert.Equal(t, common.DeclarationKindStructure, point.Kind)
		assert.Equal(t, []*sema.ProtocolDecl{equatable}, point.Conformances)
		require.Len(t, point.InheritanceRanges, 1)

		require.Len(t, program.Checks, 1)
		assert.Equal(t, point, program.Checks[0].Type.(*sema.NominalType).Decl)
		assert.Equal(t, equatable, program.Checks[0].Protocol)
	})

	t.Run("positions", func(t *testing.T) {

		t.Parallel()

		const code = "types:\n  - name: Point\n"

		program, err := Load(testLocation, []byte(code))
		require.NoError(t, err)

		point := program.NominalType("Point")
		require.NotNil(t, point)

		assert.Equal(t,
			ast.NewRange(
				ast.NewPosition(17, 2, 10),
				ast.NewPosition(21, 2, 14),
			),
			point.Range,
		)
	})

	t.Run("generic and nested types", func(t *testing.T) {

		t.Parallel()

		const code = `
protocols:
  - name: P
types:
  - name: Outer
    genericParameters:
      - name: T
        conformsTo: [P]
    types:
      - name: Inner
        members:
          - property: value
            type: T
    members:
      - function: make
        type: "() -> Inner"
      - function: map
        genericParameters:
          - name: U
        type: "(_ transform: (T) -> U) -> Outer<U>"
checks:
  - type: Outer<Int>.Inner
    protocol: P
`

		program, err := Load(testLocation, []byte(code))
		require.NoError(t, err)

		outer := program.NominalType("Outer")
		require.NotNil(t, outer)
		require.Len(t, outer.GenericParameters, 1)

		parameter := outer.GenericParameters[0]
		assert.Equal(t, "Outer", parameter.Scope)
		assert.Equal(t, []*sema.ProtocolDecl{program.Protocol("P")}, parameter.Protocols)

		require.Len(t, outer.TypeMembers, 1)
		inner := outer.TypeMembers[0].(*sema.NominalTypeDecl)
		assert.Equal(t, outer, inner.Parent)
		assert.Equal(t, "Outer.Inner", inner.QualifiedIdentifier())

		value := inner.Members[0].(*sema.PropertyDecl)
		assert.Same(t, parameter, value.Type)

		makeFunction := outer.Members[0].(*sema.FunctionDecl)
		assert.Equal(t, "Outer<T>.Inner", makeFunction.Type.ReturnType.String())

		mapFunction := outer.Members[1].(*sema.FunctionDecl)
		require.Len(t, mapFunction.GenericParameters, 1)
		assert.Equal(t, "Outer.map", mapFunction.GenericParameters[0].Scope)
		assert.Equal(t, "((T) -> U) -> Outer<U>", mapFunction.Type.String())

		require.Len(t, program.Checks, 1)
		checked := program.Checks[0].Type.(*sema.NominalType)
		assert.Equal(t, "Outer<Int>.Inner", checked.String())
		assert.True(t, checked.IsSpecialized())
	})

	t.Run("extensions and operators", func(t *testing.T) {

		t.Parallel()

		const code = `
protocols:
  - name: Equatable
    requirements:
      - function: "=="
        type: "(lhs: Self, rhs: Self) -> Bool"
types:
  - name: Base
    kind: class
  - name: Derived
    kind: class
    superclass: Base
extensions:
  - extends: Derived
    conformsTo: [Equatable]
    typeAliases:
      - name: Element
        type: Int
functions:
  - function: "=="
    type: "(lhs: Derived, rhs: Derived) -> Bool"
  - function: "-"
    prefix: true
    type: "(x: Derived) -> Derived"
`

		program, err := Load(testLocation, []byte(code))
		require.NoError(t, err)

		derived := program.NominalType("Derived")
		require.NotNil(t, derived)
		assert.Equal(t, common.DeclarationKindClass, derived.Kind)
		require.NotNil(t, derived.Superclass)
		assert.Equal(t, "Base", derived.Superclass.String())

		require.Len(t, derived.Extensions, 1)
		extension := derived.Extensions[0]
		assert.Equal(t, derived, extension.Extended)
		assert.Equal(t, []*sema.ProtocolDecl{program.Protocol("Equatable")}, extension.Conformances)
		require.Len(t, extension.TypeMembers, 1)

		require.Len(t, program.Module.Functions, 2)
		equal := program.Module.Functions[0]
		assert.Equal(t, sema.OperatorFixityInfix, equal.Fixity)
		assert.Equal(t, program.Module, equal.Context)
		assert.True(t, program.Module.Functions[1].IsPrefix())
	})

	t.Run("existentials and variadics", func(t *testing.T) {

		t.Parallel()

		const code = `
protocols:
  - name: P
  - name: Q
types:
  - name: S
    members:
      - function: combine
        type: "(_ values: any Q & P..., other label: Any) -> Void"
`

		program, err := Load(testLocation, []byte(code))
		require.NoError(t, err)

		combine := program.NominalType("S").Members[0].(*sema.FunctionDecl)
		require.Len(t, combine.Type.Parameters, 2)

		first := combine.Type.Parameters[0]
		assert.Equal(t, "", first.Label)
		assert.True(t, first.Variadic)
		assert.Equal(t, "any P & Q", first.Type.String())

		second := combine.Type.Parameters[1]
		assert.Equal(t, "other", second.Label)
		assert.Equal(t, "Any", second.Type.String())
	})
}

func TestLoadErrors(t *testing.T) {

	t.Parallel()

	requireLoadErrors := func(t *testing.T, code string, count int) []error {
		_, err := Load(testLocation, []byte(code))
		require.Error(t, err)

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		require.Len(t, loadErr.Errors, count)

		// The message must be printable
		assert.NotEmpty(t, err.Error())

		return loadErr.Errors
	}

	t.Run("unknown protocol", func(t *testing.T) {

		t.Parallel()

		errs := requireLoadErrors(t, `
types:
  - name: Point
    conformsTo: [Hashable]
`, 1)

		require.IsType(t, &UnknownDeclarationError{}, errs[0])
		assert.Equal(t, "cannot find protocol `Hashable` in this scope", errs[0].Error())
	})

	t.Run("unknown type", func(t *testing.T) {

		t.Parallel()

		errs := requireLoadErrors(t, `
types:
  - name: Point
    members:
      - property: x
        type: Float
`, 1)

		require.IsType(t, &UnknownDeclarationError{}, errs[0])
	})

	t.Run("syntax", func(t *testing.T) {

		t.Parallel()

		errs := requireLoadErrors(t, `
types:
  - name: Point
    members:
      - function: f
        type: "(Int -> Int"
`, 1)

		require.IsType(t, &TypeSyntaxError{}, errs[0])
	})

	t.Run("redeclaration", func(t *testing.T) {

		t.Parallel()

		errs := requireLoadErrors(t, `
protocols:
  - name: P
  - name: P
`, 1)

		require.IsType(t, &RedeclarationError{}, errs[0])
	})

	t.Run("invalid kind", func(t *testing.T) {

		t.Parallel()

		errs := requireLoadErrors(t, `
types:
  - name: Point
    kind: interface
`, 1)

		require.IsType(t, &ParsingError{}, errs[0])
	})

	t.Run("invalid YAML", func(t *testing.T) {

		t.Parallel()

		errs := requireLoadErrors(t, "types: [", 1)

		require.IsType(t, &ParsingError{}, errs[0])
	})
}

func TestProgramParseType(t *testing.T) {

	t.Parallel()

	program, err := Load(testLocation, []byte(`
protocols:
  - name: P
types:
  - name: Box
    genericParameters:
      - name: T
`))
	require.NoError(t, err)

	for source, expected := range map[string]string{
		"Int":                 "Int",
		"Box<Int>":            "Box<Int>",
		"Box<Box<String>>":    "Box<Box<String>>",
		"(Int, Bool) -> Void": "(Int, Bool) -> Void",
		"any P":               "any P",
	} {
		ty, err := program.ParseType(source)
		require.NoError(t, err, source)
		assert.Equal(t, expected, ty.String(), source)
	}

	_, err = program.ParseType("Box<")
	require.Error(t, err)

	_, err = program.ParseType("T")
	require.IsType(t, &UnknownDeclarationError{}, err)
}
