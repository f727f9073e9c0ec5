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

package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/loader"
	"github.com/onflow/cadence-conformance/lookup"
	"github.com/onflow/cadence-conformance/pretty"
	"github.com/onflow/cadence-conformance/sema"
	"github.com/onflow/cadence-conformance/solver"
)

// environment is a loaded program with a conformance checker for it.
type environment struct {
	program     *loader.Program
	checker     *sema.ConformanceChecker
	diagnostics *sema.DiagnosticCollector
	printer     pretty.ErrorPrettyPrinter
	logger      zerolog.Logger
}

func newLogger(options *options, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(options.logLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !options.color,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func newEnvironment(path string, options *options, stderr io.Writer) (*environment, error) {
	logger, err := newLogger(options, stderr)
	if err != nil {
		return nil, err
	}

	printer := pretty.NewErrorPrettyPrinter(stderr, options.color)

	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	location := common.StringLocation(path)

	program, err := loader.Load(location, code)
	if err != nil {
		if loadErr, ok := err.(*loader.LoadError); ok {
			printErr := printer.PrettyPrintError(loadErr, location, map[common.Location][]byte{
				location: code,
			})
			if printErr != nil {
				return nil, printErr
			}
			return nil, errCheckFailed
		}
		return nil, err
	}

	diagnostics := &sema.DiagnosticCollector{}

	config := &sema.Config{
		TypeEqualityOracle: solver.Solver{},
		MemberLookup:       lookup.NewDeclarationLookup(program.Modules()...),
		DiagnosticSink:     diagnostics,
		FixItSuggester: sema.DefaultFixItSuggester{
			Location: location,
		},
		Logger: &logger,
	}

	if options.trace {
		config.TracingEnabled = true
		config.OnRecordTrace = func(
			_ *sema.ConformanceChecker,
			operationName string,
			duration time.Duration,
			attrs []attribute.KeyValue,
		) {
			event := logger.Info().
				Str("operation", operationName).
				Dur("duration", duration)
			for _, attr := range attrs {
				event = event.Str(string(attr.Key), attr.Value.Emit())
			}
			event.Msg("trace")
		}
	}

	checker, err := sema.NewConformanceChecker(sema.NewSession(), config)
	if err != nil {
		return nil, err
	}

	return &environment{
		program:     program,
		checker:     checker,
		diagnostics: diagnostics,
		printer:     printer,
		logger:      logger,
	}, nil
}

// verify verifies all declared conformances and runs the queries of the program.
// The result is false if a conformance does not hold,
// or a diagnostic was reported.
func (e *environment) verify() bool {
	result := e.checker.VerifyDeclaredConformances(e.program.Module)

	for _, check := range e.program.Checks {
		diagnosticRange := check.Range
		conforms, _ := e.checker.ConformsToProtocol(sema.ConformanceRequest{
			Type:            check.Type,
			Protocol:        check.Protocol,
			WantConformance: true,
			DiagnosticRange: &diagnosticRange,
		})
		if !conforms {
			result = false
		}
	}

	return result && len(e.diagnostics.Diagnostics) == 0
}

func (e *environment) codes() map[common.Location][]byte {
	return map[common.Location][]byte{
		e.program.Location: e.program.Code,
	}
}

// printDiagnostics prints and clears the reported diagnostics.
// Excerpts are only printed for the given codes.
func (e *environment) printDiagnostics(codes map[common.Location][]byte) error {
	defer e.diagnostics.Reset()

	for _, diagnostic := range e.diagnostics.Diagnostics {
		err := e.printer.PrettyPrintError(diagnostic, e.program.Location, codes)
		if err != nil {
			return err
		}
	}
	return nil
}
