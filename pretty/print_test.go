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

package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/errors"
)

type testError struct {
	ast.Range
}

func (testError) Error() string {
	return "test error"
}

func TestPrintBrokenCode(t *testing.T) {

	t.Parallel()

	const code = `struct Point {}`
	lineCount := len(strings.Split(code, "\n"))

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Range: ast.Range{
				StartPos: ast.Position{
					// NOTE: line number is after end of code
					Line:   lineCount + 2,
					Column: 0,
				},
				EndPos: ast.Position{
					Line:   lineCount,
					Column: 2,
				},
			},
		},
		location,
		map[common.Location][]byte{
			location: []byte(code),
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:3:0\n",
		sb.String(),
	)
}

func TestPrintTabs(t *testing.T) {

	t.Parallel()

	const code = "\t  \t   struct Point"

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Range: ast.Range{
				StartPos: ast.Position{
					Line:   1,
					Column: 7,
				},
				EndPos: ast.Position{
					Line:   1,
					Column: 9,
				},
			},
		},
		location,
		map[common.Location][]byte{
			location: []byte(code),
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:1:7\n"+
			"  |\n"+
			"1 | \t  \t   struct Point\n"+
			"  | \t  \t   ^^^\n",
		sb.String(),
	)
}

type testNote struct{}

func (testNote) Message() string {
	return "candidate has non-matching type"
}

type testDetailedError struct {
	ast.Range
}

var _ errors.SecondaryError = testDetailedError{}
var _ errors.ErrorNotes = testDetailedError{}

func (testDetailedError) Error() string {
	return "type `Point` does not conform to protocol `Equatable`"
}

func (testDetailedError) SecondaryError() string {
	return "did you mean `isEqual`?"
}

func (testDetailedError) ErrorNotes() []errors.ErrorNote {
	return []errors.ErrorNote{
		testNote{},
	}
}

type testParentError struct {
	errs []error
}

var _ errors.ParentError = testParentError{}

func (e testParentError) Error() string {
	return "checking failed"
}

func (e testParentError) ChildErrors() []error {
	return e.errs
}

func TestPrintDetails(t *testing.T) {

	t.Parallel()

	const code = "struct Point {}"

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testDetailedError{
			Range: ast.Range{
				StartPos: ast.Position{Offset: 7, Line: 1, Column: 7},
				EndPos:   ast.Position{Offset: 11, Line: 1, Column: 11},
			},
		},
		location,
		map[common.Location][]byte{
			location: []byte(code),
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: type `Point` does not conform to protocol `Equatable`\n"+
			" --> test:1:7\n"+
			"  |\n"+
			"1 | struct Point {}\n"+
			"  |        ^^^^^ did you mean `isEqual`?\n"+
			"  = note: candidate has non-matching type\n",
		sb.String(),
	)
}

func TestPrintChildErrors(t *testing.T) {

	t.Parallel()

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testParentError{
			errs: []error{
				testError{},
				testError{},
			},
		},
		nil,
		nil,
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> 0:0\n"+
			"\n"+
			"error: test error\n"+
			" --> 0:0\n",
		sb.String(),
	)
}
