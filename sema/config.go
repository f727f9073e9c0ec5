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

package sema

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/cadence-conformance/errors"
)

// TypeEqualityConstraint requires two types to be equal.
type TypeEqualityConstraint struct {
	Left  Type
	Right Type
}

// Solution is a solution of a constraint system.
type Solution interface {
	// Simplify returns the given type with all bound type variables replaced.
	// Unbound type variables are left in place.
	Simplify(ty Type) Type
}

// TypeEqualityOracle solves type equality constraints.
type TypeEqualityOracle interface {
	// Solve returns the solutions of the given constraints,
	// or an error if the constraints can't be solved.
	// If free variables are not allowed,
	// solutions must bind every type variable.
	Solve(constraints []TypeEqualityConstraint, allowFreeVariables bool) ([]Solution, error)
}

// MemberType is a type member found by member lookup,
// with the type of the member as seen from the base type.
type MemberType struct {
	Decl TypeDecl
	Type Type
}

// MemberLookup finds the members of types.
type MemberLookup interface {
	LookupMember(ty Type, name string) []ValueDecl
	LookupMemberType(ty Type, name string) []MemberType
	// LookupOperator performs an unqualified, global lookup of the operator
	LookupOperator(name string) []ValueDecl
}

// MemberNameLister is optionally implemented by a MemberLookup
// to suggest a close member name when no candidate witness exists.
type MemberNameLister interface {
	MemberNames(ty Type) []string
}

// OnRecordTraceFunc is a function that records a trace.
type OnRecordTraceFunc func(
	checker *ConformanceChecker,
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

// Config contains the collaborators and handlers of a conformance checker.
type Config struct {
	// TypeEqualityOracle solves the type equality constraints of witness matching
	TypeEqualityOracle TypeEqualityOracle
	// MemberLookup finds candidate witnesses and type witnesses
	MemberLookup MemberLookup
	// DiagnosticSink receives diagnostics. It may be nil
	DiagnosticSink DiagnosticSink
	// FixItSuggester suggests explicit conformances for implicit ones.
	// If nil, DefaultFixItSuggester is used
	FixItSuggester FixItSuggester
	// Logger receives debug events. If nil, nothing is logged
	Logger *zerolog.Logger
	// TracingEnabled determines if tracing is enabled.
	// Tracing reports certain operations, e.g. conformance checks
	TracingEnabled bool
	// OnRecordTrace is triggered when a trace is recorded
	OnRecordTrace OnRecordTraceFunc
}

// ConformanceChecker resolves the conformances of types to protocols.
type ConformanceChecker struct {
	session *Session
	config  *Config
	logger  zerolog.Logger
}

func NewConformanceChecker(session *Session, config *Config) (*ConformanceChecker, error) {
	if session == nil {
		return nil, errors.NewDefaultUserError("missing session")
	}
	if config == nil {
		return nil, errors.NewDefaultUserError("missing configuration")
	}
	if config.TypeEqualityOracle == nil {
		return nil, errors.NewDefaultUserError("missing type equality oracle")
	}
	if config.MemberLookup == nil {
		return nil, errors.NewDefaultUserError("missing member lookup")
	}
	if config.TracingEnabled && config.OnRecordTrace == nil {
		return nil, errors.NewDefaultUserError("tracing is enabled, but no trace handler is set")
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &ConformanceChecker{
		session: session,
		config:  config,
		logger:  logger,
	}, nil
}

func (c *ConformanceChecker) Session() *Session {
	return c.session
}

func (c *ConformanceChecker) report(diagnostic Diagnostic) {
	sink := c.config.DiagnosticSink
	if sink == nil {
		return
	}
	sink.Report(diagnostic)
}

func (c *ConformanceChecker) fixItSuggester() FixItSuggester {
	suggester := c.config.FixItSuggester
	if suggester == nil {
		return DefaultFixItSuggester{}
	}
	return suggester
}
