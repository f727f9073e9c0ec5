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
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/logrusorgru/aurora/v4"
	"github.com/spf13/cobra"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/errors"
	"github.com/onflow/cadence-conformance/export"
	"github.com/onflow/cadence-conformance/sema"
)

const replHelpMessage = `
Enter a query of the form 'Type: Protocol' to check if the type conforms to the protocol.
Commands are prefixed with a dot. Valid commands are:

.dump     Print all known conformances
.exit     Exit the REPL
.help     Print this help message

Press ^D to exit`

const replAssistanceMessage = `Type '.help' for assistance.`

// InvalidQueryError is returned for a REPL input which is not a conformance query.
type InvalidQueryError struct {
	Query string
}

var _ errors.UserError = InvalidQueryError{}

func (InvalidQueryError) IsUserError() {}

func (e InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query `%s`, expected `Type: Protocol`", e.Query)
}

// UnknownProtocolError is returned for a REPL query of an undeclared protocol.
type UnknownProtocolError struct {
	Name string
}

var _ errors.UserError = UnknownProtocolError{}

func (UnknownProtocolError) IsUserError() {}

func (e UnknownProtocolError) Error() string {
	return fmt.Sprintf("cannot find protocol `%s`", e.Name)
}

func runREPL(cmd *cobra.Command, path string, options *options) error {
	env, err := newEnvironment(path, options, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Loaded %s.\n%s\n\n", env.program.Location, replAssistanceMessage)

	exit := false

	executor := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		if strings.HasPrefix(line, ".") {
			exit = env.handleCommand(out, line, options)
			return
		}

		err := env.query(out, line, options)
		if err != nil {
			_, _ = fmt.Fprintln(out, colorizeError(err.Error(), options.color))
		}
	}

	suggest := func(d prompt.Document) []prompt.Suggest {
		word := d.GetWordBeforeCursor()
		if len(word) == 0 {
			return nil
		}
		return prompt.FilterHasPrefix(env.suggestions(), word, false)
	}

	prompt.New(
		executor,
		suggest,
		prompt.OptionPrefix("> "),
		prompt.OptionSetExitCheckerOnInput(func(_ string, _ bool) bool {
			return exit
		}),
	).Run()

	return nil
}

func colorizeError(message string, useColor bool) string {
	if !useColor {
		return message
	}
	return aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

// handleCommand handles a REPL command.
// The result is true if the REPL should exit.
func (e *environment) handleCommand(out io.Writer, command string, options *options) bool {
	switch command {
	case ".exit":
		return true

	case ".help":
		_, _ = fmt.Fprintln(out, replHelpMessage)

	case ".dump":
		records := export.CacheRecords(e.checker.Session().Cache())
		err := export.Encode(out, records, export.Options{
			Format:       export.FormatText,
			MaxLineWidth: options.width,
		})
		if err != nil {
			_, _ = fmt.Fprintln(out, colorizeError(err.Error(), options.color))
		}

	default:
		_, _ = fmt.Fprintln(
			out,
			colorizeError(fmt.Sprintf("Unknown command. %s", replAssistanceMessage), options.color),
		)
	}

	return false
}

// query checks the conformance query `Type: Protocol`,
// printing the conformance record or the diagnostics.
func (e *environment) query(out io.Writer, line string, options *options) error {
	separatorIndex := strings.LastIndex(line, ":")
	if separatorIndex < 0 {
		return InvalidQueryError{Query: line}
	}

	typeSource := strings.TrimSpace(line[:separatorIndex])
	protocolName := strings.TrimSpace(line[separatorIndex+1:])
	if typeSource == "" || protocolName == "" {
		return InvalidQueryError{Query: line}
	}

	ty, err := e.program.ParseType(typeSource)
	if err != nil {
		return err
	}

	protocol := e.program.Protocol(protocolName)
	if protocol == nil {
		return UnknownProtocolError{Name: protocolName}
	}

	diagnosticRange := ast.EmptyRange

	conforms, conformance := e.checker.ConformsToProtocol(sema.ConformanceRequest{
		Type:            ty,
		Protocol:        protocol,
		WantConformance: true,
		DiagnosticRange: &diagnosticRange,
	})

	// Queries have no source to excerpt
	err = e.printDiagnostics(nil)
	if err != nil {
		return err
	}

	if !conforms {
		_, err = fmt.Fprintf(out, "`%s` does not conform to `%s`\n", ty, protocol.Identifier)
		return err
	}

	if conformance == nil {
		_, err = fmt.Fprintf(out, "`%s` conforms to `%s`\n", ty, protocol.Identifier)
		return err
	}

	_, err = fmt.Fprintln(out, export.NewRecord(conformance).Prettier(options.width))
	return err
}

// suggestions returns the names of the declared protocols and types.
func (e *environment) suggestions() []prompt.Suggest {
	var suggestions []prompt.Suggest

	for _, protocol := range e.program.Module.Protocols {
		suggestions = append(suggestions, prompt.Suggest{
			Text:        protocol.Identifier,
			Description: protocol.DeclarationKind().Name(),
		})
	}

	for _, module := range e.program.Modules() {
		for _, decl := range module.Types {
			suggestions = append(suggestions, prompt.Suggest{
				Text:        decl.Identifier,
				Description: decl.DeclarationKind().Name(),
			})
		}
	}

	return suggestions
}
