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
	"os"

	"github.com/spf13/cobra"

	"github.com/onflow/cadence-conformance/errors"
	"github.com/onflow/cadence-conformance/export"
)

type options struct {
	color    bool
	format   string
	trace    bool
	logLevel string
	width    int
}

var errCheckFailed = errors.NewDefaultUserError("conformance check failed")

func newRootCommand() *cobra.Command {
	options := &options{}

	rootCmd := &cobra.Command{
		Use:           "conformance",
		Short:         "Checks and inspects the protocol conformances of a program description",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&options.color, "color", true, "Colorize the output")
	flags.StringVar(&options.format, "format", string(export.FormatText), "Output format of conformance records (text, json, yaml, cbor)")
	flags.BoolVar(&options.trace, "trace", false, "Log traces of conformance checks")
	flags.StringVar(&options.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	flags.IntVar(&options.width, "width", export.DefaultMaxLineWidth, "Maximum line width of the text and JSON formats")

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Verifies all declared conformances and the queries of a program description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], options)
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Prints the conformance records of a program description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], options)
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl [file]",
		Short: "Interactively queries the conformances of types to protocols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, args[0], options)
		},
	}

	rootCmd.AddCommand(checkCmd, dumpCmd, replCmd)

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if err != errCheckFailed {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
