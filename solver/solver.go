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

// Package solver implements a type equality oracle
// based on first-order unification.
package solver

import (
	"fmt"

	"github.com/onflow/cadence-conformance/errors"
	"github.com/onflow/cadence-conformance/sema"
)

// Solver solves type equality constraints by unification.
type Solver struct{}

var _ sema.TypeEqualityOracle = Solver{}

// Solve unifies the constraints in order.
// The result is a single, most general solution.
func (Solver) Solve(
	constraints []sema.TypeEqualityConstraint,
	allowFreeVariables bool,
) ([]sema.Solution, error) {

	solution := &Solution{
		bindings: map[uint64]sema.Type{},
	}

	for _, constraint := range constraints {
		err := solution.unify(constraint.Left, constraint.Right)
		if err != nil {
			return nil, err
		}
	}

	if !allowFreeVariables {
		for _, constraint := range constraints {
			for _, ty := range []sema.Type{constraint.Left, constraint.Right} {
				simplified := solution.Simplify(ty)
				if simplified.ContainsTypeVariable() {
					return nil, &FreeTypeVariableError{
						Type: simplified,
					}
				}
			}
		}
	}

	return []sema.Solution{solution}, nil
}

// Solution binds type variables to types.
type Solution struct {
	bindings map[uint64]sema.Type
}

var _ sema.Solution = &Solution{}

// Simplify replaces all bound type variables in the given type, transitively.
// Unbound type variables are left in place.
func (s *Solution) Simplify(ty sema.Type) sema.Type {
	if !ty.ContainsTypeVariable() {
		return ty
	}

	return ty.Map(func(ty sema.Type) sema.Type {
		variable, ok := ty.(*sema.TypeVariable)
		if !ok {
			return ty
		}
		binding, ok := s.bindings[variable.Number]
		if !ok {
			return variable
		}
		return s.Simplify(binding)
	})
}

// Binding returns the type the given type variable is bound to, if any.
func (s *Solution) Binding(variable *sema.TypeVariable) (sema.Type, bool) {
	binding, ok := s.bindings[variable.Number]
	if !ok {
		return nil, false
	}
	return s.Simplify(binding), true
}

// resolve follows the bindings of the given type,
// if it is a bound type variable.
func (s *Solution) resolve(ty sema.Type) sema.Type {
	for {
		variable, ok := ty.(*sema.TypeVariable)
		if !ok {
			return ty
		}
		binding, ok := s.bindings[variable.Number]
		if !ok {
			return variable
		}
		ty = binding
	}
}

func (s *Solution) unify(left, right sema.Type) error {
	left = s.resolve(left)
	right = s.resolve(right)

	if leftVariable, ok := left.(*sema.TypeVariable); ok {
		return s.bind(leftVariable, right)
	}
	if rightVariable, ok := right.(*sema.TypeVariable); ok {
		return s.bind(rightVariable, left)
	}

	mismatch := func() error {
		return &TypeMismatchError{
			Left:  s.Simplify(left),
			Right: s.Simplify(right),
		}
	}

	switch left := left.(type) {
	case *sema.NominalType:
		rightNominal, ok := right.(*sema.NominalType)
		if !ok {
			return mismatch()
		}
		return s.unifyNominal(left, rightNominal, mismatch)

	case *sema.FunctionType:
		rightFunction, ok := right.(*sema.FunctionType)
		if !ok || len(left.Parameters) != len(rightFunction.Parameters) {
			return mismatch()
		}
		for i, parameter := range left.Parameters {
			rightParameter := rightFunction.Parameters[i]
			if parameter.Variadic != rightParameter.Variadic {
				return mismatch()
			}
			err := s.unify(parameter.Type, rightParameter.Type)
			if err != nil {
				return err
			}
		}
		return s.unify(left.ReturnType, rightFunction.ReturnType)

	case *sema.GenericParameterType,
		*sema.ExistentialType:

		if !left.Equal(right) {
			return mismatch()
		}
		return nil

	default:
		if left.IsInvalidType() || right.IsInvalidType() {
			return mismatch()
		}
		panic(errors.NewUnexpectedError("cannot unify type %s", left))
	}
}

func (s *Solution) unifyNominal(left, right *sema.NominalType, mismatch func() error) error {
	if left.Decl != right.Decl ||
		(left.Parent == nil) != (right.Parent == nil) ||
		len(left.TypeArguments) != len(right.TypeArguments) {

		return mismatch()
	}

	if left.Parent != nil {
		err := s.unifyNominal(left.Parent, right.Parent, mismatch)
		if err != nil {
			return err
		}
	}

	for i, argument := range left.TypeArguments {
		err := s.unify(argument, right.TypeArguments[i])
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Solution) bind(variable *sema.TypeVariable, ty sema.Type) error {
	if otherVariable, ok := ty.(*sema.TypeVariable); ok &&
		otherVariable.Number == variable.Number {

		return nil
	}

	if s.occurs(variable, ty) {
		return &OccursCheckError{
			Variable: variable,
			Type:     s.Simplify(ty),
		}
	}

	s.bindings[variable.Number] = ty
	return nil
}

// occurs returns true if the type variable occurs in the given type,
// following bindings.
func (s *Solution) occurs(variable *sema.TypeVariable, ty sema.Type) (found bool) {
	if !ty.ContainsTypeVariable() {
		return false
	}

	s.Simplify(ty).Map(func(ty sema.Type) sema.Type {
		if otherVariable, ok := ty.(*sema.TypeVariable); ok &&
			otherVariable.Number == variable.Number {

			found = true
		}
		return ty
	})
	return
}

// TypeMismatchError

type TypeMismatchError struct {
	Left  sema.Type
	Right sema.Type
}

var _ errors.UserError = &TypeMismatchError{}

func (*TypeMismatchError) IsUserError() {}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf(
		"cannot unify `%s` with `%s`",
		e.Left,
		e.Right,
	)
}

// OccursCheckError

type OccursCheckError struct {
	Variable *sema.TypeVariable
	Type     sema.Type
}

var _ errors.UserError = &OccursCheckError{}

func (*OccursCheckError) IsUserError() {}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf(
		"cannot construct infinite type: `%s` occurs in `%s`",
		e.Variable,
		e.Type,
	)
}

// FreeTypeVariableError

type FreeTypeVariableError struct {
	Type sema.Type
}

var _ errors.UserError = &FreeTypeVariableError{}

func (*FreeTypeVariableError) IsUserError() {}

func (e *FreeTypeVariableError) Error() string {
	return fmt.Sprintf(
		"type `%s` is not fully determined",
		e.Type,
	)
}
