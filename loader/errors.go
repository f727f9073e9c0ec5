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

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/errors"
	"github.com/onflow/cadence-conformance/pretty"
)

// LoadError is returned when a program description cannot be loaded.
// It prints the errors with an excerpt of the description.
type LoadError struct {
	Location common.Location
	Code     []byte
	Errors   []error
}

var _ errors.UserError = &LoadError{}
var _ errors.ParentError = &LoadError{}

func (*LoadError) IsUserError() {}

func (e *LoadError) ChildErrors() []error {
	return e.Errors
}

func (e *LoadError) Error() string {
	var sb strings.Builder
	sb.WriteString("Loading failed:\n")
	printErr := pretty.NewErrorPrettyPrinter(&sb, false).
		PrettyPrintError(
			e,
			e.Location,
			map[common.Location][]byte{
				e.Location: e.Code,
			},
		)
	if printErr != nil {
		panic(printErr)
	}
	return sb.String()
}

// ParsingError is reported for an invalid entry of a program description.
type ParsingError struct {
	Message string
	Path    string
	ast.Range
}

var _ errors.UserError = &ParsingError{}
var _ ast.HasPosition = &ParsingError{}

func (*ParsingError) IsUserError() {}

func (e *ParsingError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (at %s)", e.Message, e.Path)
}

// UnknownDeclarationError is reported for a reference to an undeclared protocol or type.
type UnknownDeclarationError struct {
	Kind common.DeclarationKind
	Name string
	ast.Range
}

var _ errors.UserError = &UnknownDeclarationError{}
var _ ast.HasPosition = &UnknownDeclarationError{}

func (*UnknownDeclarationError) IsUserError() {}

func (e *UnknownDeclarationError) Error() string {
	return fmt.Sprintf(
		"cannot find %s `%s` in this scope",
		e.Kind.Name(),
		e.Name,
	)
}

// RedeclarationError is reported for a declaration with the name of an existing one.
type RedeclarationError struct {
	Kind common.DeclarationKind
	Name string
	ast.Range
}

var _ errors.UserError = &RedeclarationError{}
var _ ast.HasPosition = &RedeclarationError{}

func (*RedeclarationError) IsUserError() {}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf(
		"invalid redeclaration of %s `%s`",
		e.Kind.Name(),
		e.Name,
	)
}

// TypeSyntaxError is reported for an invalid type expression.
type TypeSyntaxError struct {
	Source  string
	Message string
	ast.Range
}

var _ errors.UserError = &TypeSyntaxError{}
var _ ast.HasPosition = &TypeSyntaxError{}

func (*TypeSyntaxError) IsUserError() {}

func (e *TypeSyntaxError) Error() string {
	return fmt.Sprintf(
		"invalid type `%s`: %s",
		e.Source,
		e.Message,
	)
}
