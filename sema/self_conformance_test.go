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

package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/sema"
	. "github.com/onflow/cadence-conformance/test_utils/sema_utils"
)

const existentialProtocols = `
protocols:
  - name: Showable
    requirements:
      - function: describe
        type: "() -> String"
  - name: Equatable
    requirements:
      - function: isEqual
        type: "(other: Self) -> Bool"
  - name: Comparable
    inherits: [Equatable]
    requirements:
      - function: compare
        type: "(other: Self) -> Int"
  - name: Container
    associatedTypes:
      - name: Item
    requirements:
      - function: get
        type: "(i: Int) -> Item"
  - name: PrettyShowable
    inherits: [Showable]
`

func TestExistentialConformsToItself(t *testing.T) {

	t.Parallel()

	t.Run("no self references", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		assert.True(t, fixture.Checker.ExistentialConformsToItself(fixture.Protocol(t, "Showable"), nil))
		assert.True(t, fixture.Checker.ExistentialConformsToItself(fixture.Protocol(t, "PrettyShowable"), nil))

		known, conforms := fixture.Session.ExistentialConformsToSelf(fixture.Protocol(t, "Showable"))
		assert.True(t, known)
		assert.True(t, conforms)
	})

	t.Run("self reference", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		equatable := fixture.Protocol(t, "Equatable")

		assert.False(t, fixture.Checker.ExistentialConformsToItself(equatable, nil))
		RequireDiagnostics(t, fixture.Diagnostics, 0)

		// The memoized negative result is computed again for diagnostics

		location := ast.EmptyRange
		assert.False(t, fixture.Checker.ExistentialConformsToItself(equatable, &location))

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 2)

		require.IsType(t, &sema.TypeDoesNotConformError{}, diagnostics[0])

		require.IsType(t, &sema.ExistentialSelfReferenceError{}, diagnostics[1])
		selfReferenceErr := diagnostics[1].(*sema.ExistentialSelfReferenceError)
		assert.Same(t, equatable.Requirements[0], selfReferenceErr.Member)
	})

	t.Run("associated type", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		container := fixture.Protocol(t, "Container")

		location := ast.EmptyRange
		assert.False(t, fixture.Checker.ExistentialConformsToItself(container, &location))

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 2)

		require.IsType(t, &sema.ExistentialAssociatedTypeError{}, diagnostics[1])
		associatedTypeErr := diagnostics[1].(*sema.ExistentialAssociatedTypeError)
		assert.Same(t, container.AssociatedType("Item"), associatedTypeErr.AssociatedType)
		assert.Equal(t, container.AssociatedType("Item").Range, associatedTypeErr.Range)
	})

	t.Run("inherited self reference", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		comparable := fixture.Protocol(t, "Comparable")

		location := ast.EmptyRange
		assert.False(t, fixture.Checker.ExistentialConformsToItself(comparable, &location))

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 3)

		require.IsType(t, &sema.ExistentialSelfReferenceError{}, diagnostics[1])
		assert.Same(t,
			fixture.Protocol(t, "Equatable"),
			diagnostics[1].(*sema.ExistentialSelfReferenceError).Protocol,
		)

		require.IsType(t, &sema.InheritedProtocolDoesNotConformError{}, diagnostics[2])
	})

	t.Run("cyclic inheritance", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, `
protocols:
  - name: P
    inherits: [Q]
  - name: Q
    inherits: [P]
  - name: R
    inherits: [Q]
    requirements:
      - function: combine
        type: "(other: Self) -> Self"
`)

		assert.True(t, fixture.Checker.ExistentialConformsToItself(fixture.Protocol(t, "P"), nil))
		assert.True(t, fixture.Checker.ExistentialConformsToItself(fixture.Protocol(t, "Q"), nil))
		assert.False(t, fixture.Checker.ExistentialConformsToItself(fixture.Protocol(t, "R"), nil))
	})
}

func TestExistentialConformsToProtocol(t *testing.T) {

	t.Parallel()

	t.Run("protocol", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		conforms, conformance := fixture.Check(t, "any Showable", "Showable")
		assert.True(t, conforms)
		assert.Nil(t, conformance)
		RequireDiagnostics(t, fixture.Diagnostics, 0)
	})

	t.Run("inherited protocol", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		conforms, _ := fixture.Check(t, "any PrettyShowable", "Showable")
		assert.True(t, conforms)

		conforms, _ = fixture.Check(t, "any Showable & Equatable", "Showable")
		assert.True(t, conforms)

		RequireDiagnostics(t, fixture.Diagnostics, 0)
	})

	t.Run("self conformance violation", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		conforms, _ := fixture.ConformsTo(t, "any Comparable", "Comparable")
		assert.False(t, conforms)
		RequireDiagnostics(t, fixture.Diagnostics, 0)

		conforms, _ = fixture.Check(t, "any Comparable", "Comparable")
		assert.False(t, conforms)

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 3)
		assert.Equal(t,
			"type `any Comparable` does not conform to protocol `Equatable`",
			diagnostics[0].Error(),
		)
		require.IsType(t, &sema.ExistentialSelfReferenceError{}, diagnostics[1])
		require.IsType(t, &sema.InheritedProtocolDoesNotConformError{}, diagnostics[2])
	})

	t.Run("unrelated protocol", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		conforms, _ := fixture.Check(t, "any Showable", "Equatable")
		assert.False(t, conforms)

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 1)
		require.IsType(t, &sema.TypeDoesNotConformError{}, diagnostics[0])
	})

	t.Run("existential types are not cached", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, existentialProtocols)

		conforms, _ := fixture.ConformsTo(t, "any Showable", "Showable")
		assert.True(t, conforms)

		assert.Equal(t, 0, fixture.Session.Cache().Len())
	})
}

func TestArchetypeConformsToProtocol(t *testing.T) {

	t.Parallel()

	fixture := LoadAndPrepare(t, existentialProtocols+`
types:
  - name: Box
    genericParameters:
      - name: T
        conformsTo: [Comparable]
`)

	parameter := fixture.NominalType(t, "Box").GenericParameters[0]

	location := ast.EmptyRange

	for _, name := range []string{"Comparable", "Equatable"} {
		conforms, conformance := fixture.Checker.ConformsToProtocol(sema.ConformanceRequest{
			Type:            parameter,
			Protocol:        fixture.Protocol(t, name),
			WantConformance: true,
			DiagnosticRange: &location,
		})
		assert.True(t, conforms, name)
		assert.Nil(t, conformance)
	}
	RequireDiagnostics(t, fixture.Diagnostics, 0)

	conforms, _ := fixture.Checker.ConformsToProtocol(sema.ConformanceRequest{
		Type:            parameter,
		Protocol:        fixture.Protocol(t, "Showable"),
		WantConformance: true,
		DiagnosticRange: &location,
	})
	assert.False(t, conforms)

	diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 1)
	assert.Equal(t,
		"type `T` does not conform to protocol `Showable`",
		diagnostics[0].Error(),
	)
}
