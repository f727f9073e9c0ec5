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

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/sema"
)

func newNominal(identifier string, parameters ...string) *sema.NominalTypeDecl {
	decl := &sema.NominalTypeDecl{
		Identifier: identifier,
		Kind:       common.DeclarationKindStructure,
		Location:   common.StringLocation("test"),
	}
	for _, parameter := range parameters {
		decl.GenericParameters = append(
			decl.GenericParameters,
			&sema.GenericParameterType{
				Identifier: parameter,
				Scope:      identifier,
				Kind:       sema.GenericParameterKindTypeParameter,
			},
		)
	}
	return decl
}

func TestSolve(t *testing.T) {

	t.Parallel()

	intDecl := newNominal("Int")
	stringDecl := newNominal("String")
	boxDecl := newNominal("Box", "T")

	intType := &sema.NominalType{Decl: intDecl}
	stringType := &sema.NominalType{Decl: stringDecl}

	boxOf := func(argument sema.Type) *sema.NominalType {
		return &sema.NominalType{
			Decl:          boxDecl,
			TypeArguments: []sema.Type{argument},
		}
	}

	t.Run("binds variable", func(t *testing.T) {

		t.Parallel()

		variable := &sema.TypeVariable{Number: 1}

		solutions, err := Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{Left: boxOf(variable), Right: boxOf(intType)},
			},
			false,
		)
		require.NoError(t, err)
		require.Len(t, solutions, 1)

		assert.Equal(t, intType, solutions[0].Simplify(variable))
	})

	t.Run("transitive bindings", func(t *testing.T) {

		t.Parallel()

		first := &sema.TypeVariable{Number: 1}
		second := &sema.TypeVariable{Number: 2}

		solutions, err := Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{Left: first, Right: boxOf(second)},
				{Left: second, Right: stringType},
			},
			false,
		)
		require.NoError(t, err)

		assert.True(t, boxOf(stringType).Equal(solutions[0].Simplify(first)))
	})

	t.Run("mismatch", func(t *testing.T) {

		t.Parallel()

		_, err := Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{Left: intType, Right: stringType},
			},
			true,
		)
		require.Error(t, err)

		var mismatchErr *TypeMismatchError
		require.ErrorAs(t, err, &mismatchErr)
		assert.Equal(t, "cannot unify `Int` with `String`", err.Error())
	})

	t.Run("occurs check", func(t *testing.T) {

		t.Parallel()

		variable := &sema.TypeVariable{Number: 1}

		_, err := Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{Left: variable, Right: boxOf(variable)},
			},
			true,
		)
		require.IsType(t, &OccursCheckError{}, err)
	})

	t.Run("free variables", func(t *testing.T) {

		t.Parallel()

		variable := &sema.TypeVariable{Number: 1}
		constraints := []sema.TypeEqualityConstraint{
			{Left: boxOf(variable), Right: boxOf(variable)},
		}

		solutions, err := Solver{}.Solve(constraints, true)
		require.NoError(t, err)
		assert.Equal(t, variable, solutions[0].Simplify(variable))

		_, err = Solver{}.Solve(constraints, false)
		require.IsType(t, &FreeTypeVariableError{}, err)
	})

	t.Run("functions", func(t *testing.T) {

		t.Parallel()

		variable := &sema.TypeVariable{Number: 1}

		solutions, err := Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{
					Left: &sema.FunctionType{
						Parameters: []sema.Parameter{
							{Label: "other", Type: variable},
						},
						ReturnType: intType,
					},
					Right: &sema.FunctionType{
						Parameters: []sema.Parameter{
							{Label: "x", Type: stringType},
						},
						ReturnType: intType,
					},
				},
			},
			false,
		)
		require.NoError(t, err)
		assert.Equal(t, stringType, solutions[0].Simplify(variable))

		_, err = Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{
					Left: &sema.FunctionType{
						Parameters: []sema.Parameter{
							{Type: intType, Variadic: true},
						},
						ReturnType: intType,
					},
					Right: &sema.FunctionType{
						Parameters: []sema.Parameter{
							{Type: intType},
						},
						ReturnType: intType,
					},
				},
			},
			true,
		)
		require.IsType(t, &TypeMismatchError{}, err)
	})

	t.Run("placeholders", func(t *testing.T) {

		t.Parallel()

		parameter := boxDecl.GenericParameters[0]

		_, err := Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{Left: parameter, Right: parameter},
			},
			false,
		)
		require.NoError(t, err)

		_, err = Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{Left: parameter, Right: intType},
			},
			false,
		)
		require.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {

		t.Parallel()

		_, err := Solver{}.Solve(
			[]sema.TypeEqualityConstraint{
				{Left: sema.InvalidType, Right: intType},
			},
			true,
		)
		require.Error(t, err)
	})
}
