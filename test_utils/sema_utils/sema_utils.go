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

package sema_utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/loader"
	"github.com/onflow/cadence-conformance/lookup"
	"github.com/onflow/cadence-conformance/sema"
	"github.com/onflow/cadence-conformance/solver"
	. "github.com/onflow/cadence-conformance/test_utils/common_utils"
)

// Fixture is a loaded program with a conformance checker for it.
type Fixture struct {
	Program     *loader.Program
	Session     *sema.Session
	Config      *sema.Config
	Checker     *sema.ConformanceChecker
	Diagnostics *sema.DiagnosticCollector
	Oracle      *CountingOracle
}

type Options struct {
	// Config is used as the base configuration.
	// The oracle, the member lookup, and the diagnostic sink are always set
	Config *sema.Config
}

// CountingOracle is a type equality oracle which counts the solved constraint systems.
type CountingOracle struct {
	Oracle sema.TypeEqualityOracle
	Calls  int
}

var _ sema.TypeEqualityOracle = &CountingOracle{}

func (o *CountingOracle) Solve(
	constraints []sema.TypeEqualityConstraint,
	allowFreeVariables bool,
) ([]sema.Solution, error) {
	o.Calls++
	return o.Oracle.Solve(constraints, allowFreeVariables)
}

func LoadAndPrepare(t testing.TB, code string) *Fixture {
	return LoadAndPrepareWithOptions(t, code, Options{})
}

func LoadAndPrepareWithOptions(t testing.TB, code string, options Options) *Fixture {
	t.Helper()

	program, err := loader.Load(TestLocation, []byte(code))
	require.NoError(t, err)

	config := &sema.Config{}
	if options.Config != nil {
		copied := *options.Config
		config = &copied
	}

	oracle := &CountingOracle{
		Oracle: solver.Solver{},
	}
	diagnostics := &sema.DiagnosticCollector{}

	config.TypeEqualityOracle = oracle
	config.MemberLookup = lookup.NewDeclarationLookup(program.Modules()...)
	config.DiagnosticSink = diagnostics
	if config.FixItSuggester == nil {
		config.FixItSuggester = sema.DefaultFixItSuggester{
			Location: program.Location,
		}
	}

	session := sema.NewSession()

	checker, err := sema.NewConformanceChecker(session, config)
	require.NoError(t, err)

	return &Fixture{
		Program:     program,
		Session:     session,
		Config:      config,
		Checker:     checker,
		Diagnostics: diagnostics,
		Oracle:      oracle,
	}
}

// Type parses the given type expression in the top-level scope of the program.
func (f *Fixture) Type(t testing.TB, source string) sema.Type {
	t.Helper()

	ty, err := f.Program.ParseType(source)
	require.NoError(t, err)
	return ty
}

func (f *Fixture) Protocol(t testing.TB, name string) *sema.ProtocolDecl {
	t.Helper()

	protocol := f.Program.Protocol(name)
	require.NotNil(t, protocol, "missing protocol %s", name)
	return protocol
}

func (f *Fixture) NominalType(t testing.TB, name string) *sema.NominalTypeDecl {
	t.Helper()

	decl := f.Program.NominalType(name)
	require.NotNil(t, decl, "missing type %s", name)
	return decl
}

// ConformsTo silently checks if the given type conforms to the given protocol.
func (f *Fixture) ConformsTo(t testing.TB, typeSource string, protocolName string) (bool, sema.ProtocolConformance) {
	t.Helper()

	return f.Checker.ConformsToProtocol(sema.ConformanceRequest{
		Type:            f.Type(t, typeSource),
		Protocol:        f.Protocol(t, protocolName),
		WantConformance: true,
	})
}

// Check checks if the given type conforms to the given protocol,
// and reports diagnostics.
func (f *Fixture) Check(t testing.TB, typeSource string, protocolName string) (bool, sema.ProtocolConformance) {
	t.Helper()

	location := ast.EmptyRange

	return f.Checker.ConformsToProtocol(sema.ConformanceRequest{
		Type:            f.Type(t, typeSource),
		Protocol:        f.Protocol(t, protocolName),
		WantConformance: true,
		DiagnosticRange: &location,
	})
}

// VerifyDeclaredConformances verifies all conformances declared by the program.
// The result is false if one of the conformances does not hold.
func (f *Fixture) VerifyDeclaredConformances() bool {
	return f.Checker.VerifyDeclaredConformances(f.Program.Module)
}

// RequireDiagnostics asserts the number of reported diagnostics,
// and that all of them can be printed.
func RequireDiagnostics(t testing.TB, diagnostics *sema.DiagnosticCollector, count int) []sema.Diagnostic {
	t.Helper()

	require.Len(t, diagnostics.Diagnostics, count,
		"diagnostics:\n%s",
		sema.DiagnosticsString(diagnostics.Diagnostics),
	)

	for _, diagnostic := range diagnostics.Diagnostics {
		RequireError(t, diagnostic)
	}

	return diagnostics.Diagnostics
}
