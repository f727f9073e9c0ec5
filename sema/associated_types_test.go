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

	"github.com/onflow/cadence-conformance/sema"
	. "github.com/onflow/cadence-conformance/test_utils/sema_utils"
)

const containerProtocol = `
protocols:
  - name: Equatable
    requirements:
      - function: isEqual
        type: "(other: Self) -> Bool"
  - name: Container
    associatedTypes:
      - name: Item
    requirements:
      - function: get
        type: "(i: Int) -> Item"
`

func TestCheckAssociatedTypes(t *testing.T) {

	t.Parallel()

	t.Run("type alias", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, containerProtocol+`
types:
  - name: IntBox
    conformsTo: [Container]
    typeAliases:
      - name: Item
        type: Int
    members:
      - function: get
        type: "(i: Int) -> Int"
`)

		conforms, conformance := fixture.Check(t, "IntBox", "Container")
		require.True(t, conforms)
		RequireDiagnostics(t, fixture.Diagnostics, 0)

		item := fixture.Protocol(t, "Container").AssociatedType("Item")

		typeWitness, ok := conformance.TypeWitness(item)
		require.True(t, ok)
		assert.Equal(t, "Int", typeWitness.Replacement.String())
		assert.Same(t, item.Archetype, typeWitness.Archetype)
		assert.False(t, conformance.UsesDefaultDefinition(item))

		normalConformance := conformance.(*sema.NormalConformance)
		assert.Same(t,
			fixture.NominalType(t, "IntBox").TypeMembers[0],
			normalConformance.TypeWitnessDecl(item),
		)
	})

	t.Run("deduced", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, containerProtocol+`
types:
  - name: IntBox
    conformsTo: [Container]
    members:
      - function: get
        type: "(i: Int) -> Int"
`)

		conforms, conformance := fixture.Check(t, "IntBox", "Container")
		require.True(t, conforms)
		RequireDiagnostics(t, fixture.Diagnostics, 0)

		container := fixture.Protocol(t, "Container")
		item := container.AssociatedType("Item")

		typeWitness, ok := conformance.TypeWitness(item)
		require.True(t, ok)
		assert.Equal(t, "Int", typeWitness.Replacement.String())
		assert.True(t, conformance.UsesDefaultDefinition(item))

		witness, ok := conformance.Witness(container.Requirements[0])
		require.True(t, ok)
		assert.Same(t, fixture.NominalType(t, "IntBox").Members[0], witness.Decl)
	})

	t.Run("deduced consistently", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, containerProtocol+`
      - function: first
        type: "() -> Item"
types:
  - name: IntBox
    conformsTo: [Container]
    members:
      - function: get
        type: "(i: Int) -> Int"
      - function: first
        type: "() -> Int"
`)

		conforms, conformance := fixture.Check(t, "IntBox", "Container")
		require.True(t, conforms)
		RequireDiagnostics(t, fixture.Diagnostics, 0)

		assert.Equal(t, 2, conformance.Witnesses().Len())
		assert.Equal(t, 1, conformance.TypeWitnesses().Len())
	})

	t.Run("deduced inconsistently", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, containerProtocol+`
      - function: first
        type: "() -> Item"
types:
  - name: IntBox
    conformsTo: [Container]
    members:
      - function: get
        type: "(i: Int) -> Int"
      - function: first
        type: "() -> String"
`)

		conforms, _ := fixture.Check(t, "IntBox", "Container")
		assert.False(t, conforms)

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 2)

		require.IsType(t, &sema.NoWitnessError{}, diagnostics[1])
		noWitnessErr := diagnostics[1].(*sema.NoWitnessError)
		assert.Equal(t, "() -> Int", noWitnessErr.RequirementType.String())
		require.Len(t, noWitnessErr.Candidates, 1)
		assert.Equal(t,
			"candidate has non-matching type `() -> String` [with Item = Int]",
			noWitnessErr.Candidates[0].Message(),
		)
	})

	t.Run("not deducible", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, `
protocols:
  - name: Producer
    associatedTypes:
      - name: Output
types:
  - name: Factory
    conformsTo: [Producer]
`)

		conforms, _ := fixture.Check(t, "Factory", "Producer")
		assert.False(t, conforms)

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 2)

		require.IsType(t, &sema.NoTypeWitnessError{}, diagnostics[1])
		assert.Equal(t,
			"Output",
			diagnostics[1].(*sema.NoTypeWitnessError).AssociatedType.Identifier,
		)
	})

	t.Run("constrained, deduced type does not conform", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, `
protocols:
  - name: Equatable
    requirements:
      - function: isEqual
        type: "(other: Self) -> Bool"
  - name: Container
    associatedTypes:
      - name: Item
        conformsTo: [Equatable]
    requirements:
      - function: get
        type: "(i: Int) -> Item"
types:
  - name: IntBox
    conformsTo: [Container]
    members:
      - function: get
        type: "(i: Int) -> Int"
`)

		conforms, _ := fixture.Check(t, "IntBox", "Container")
		assert.False(t, conforms)

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 2)

		require.IsType(t, &sema.NoTypeWitnessError{}, diagnostics[1])
		noTypeWitnessErr := diagnostics[1].(*sema.NoTypeWitnessError)
		require.Len(t, noTypeWitnessErr.Candidates, 1)
		assert.Same(t, fixture.Protocol(t, "Equatable"), noTypeWitnessErr.Candidates[0].NonConformingProtocol)
	})

	t.Run("constrained, type alias conforms", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, `
protocols:
  - name: Equatable
    requirements:
      - function: isEqual
        type: "(other: Self) -> Bool"
  - name: Container
    associatedTypes:
      - name: Item
        conformsTo: [Equatable]
    requirements:
      - function: get
        type: "(i: Int) -> Item"
types:
  - name: Point
    conformsTo: [Equatable]
    members:
      - function: isEqual
        type: "(other: Point) -> Bool"
  - name: PointBox
    conformsTo: [Container]
    typeAliases:
      - name: Item
        type: Point
    members:
      - function: get
        type: "(i: Int) -> Point"
`)

		conforms, conformance := fixture.Check(t, "PointBox", "Container")
		require.True(t, conforms)
		RequireDiagnostics(t, fixture.Diagnostics, 0)

		item := fixture.Protocol(t, "Container").AssociatedType("Item")
		typeWitness, ok := conformance.TypeWitness(item)
		require.True(t, ok)
		require.Len(t, typeWitness.Conformances, 1)
		assert.Same(t, fixture.Protocol(t, "Equatable"), typeWitness.Conformances[0].Protocol())
	})

	t.Run("ambiguous type members", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, containerProtocol+`
types:
  - name: IntBox
    conformsTo: [Container]
    typeAliases:
      - name: Item
        type: Int
    members:
      - function: get
        type: "(i: Int) -> Int"
extensions:
  - extends: IntBox
    typeAliases:
      - name: Item
        type: String
`)

		conforms, _ := fixture.Check(t, "IntBox", "Container")
		assert.False(t, conforms)

		diagnostics := RequireDiagnostics(t, fixture.Diagnostics, 2)

		require.IsType(t, &sema.AmbiguousTypeWitnessError{}, diagnostics[1])
		ambiguousErr := diagnostics[1].(*sema.AmbiguousTypeWitnessError)
		assert.Len(t, ambiguousErr.Candidates, 2)
	})

	t.Run("inherited associated type", func(t *testing.T) {

		t.Parallel()

		fixture := LoadAndPrepare(t, containerProtocol+`
  - name: MutableContainer
    inherits: [Container]
    requirements:
      - function: set
        type: "(i: Int, item: Self.Item) -> Void"
types:
  - name: IntBox
    conformsTo: [MutableContainer]
    members:
      - function: get
        type: "(i: Int) -> Int"
      - function: set
        type: "(i: Int, item: Int) -> Void"
`)

		conforms, conformance := fixture.Check(t, "IntBox", "MutableContainer")
		require.True(t, conforms)
		RequireDiagnostics(t, fixture.Diagnostics, 0)

		container := fixture.Protocol(t, "Container")
		inherited, ok := conformance.InheritedConformance(container)
		require.True(t, ok)

		typeWitness, ok := inherited.TypeWitness(container.AssociatedType("Item"))
		require.True(t, ok)
		assert.Equal(t, "Int", typeWitness.Replacement.String())
	})
}
