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

	"github.com/spf13/cobra"

	"github.com/onflow/cadence-conformance/export"
)

func runCheck(cmd *cobra.Command, path string, options *options) error {
	env, err := newEnvironment(path, options, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ok := env.verify()

	err = env.printDiagnostics(env.codes())
	if err != nil {
		return err
	}

	if !ok {
		return errCheckFailed
	}

	_, err = fmt.Fprintf(
		cmd.OutOrStdout(),
		"%s: all conformances hold\n",
		env.program.Location,
	)
	return err
}

func runDump(cmd *cobra.Command, path string, options *options) error {
	format, err := export.ParseFormat(options.format)
	if err != nil {
		return err
	}

	env, err := newEnvironment(path, options, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if !env.verify() {
		env.logger.Warn().
			Int("diagnostics", len(env.diagnostics.Diagnostics)).
			Msg("not all conformances hold")
	}
	env.diagnostics.Reset()

	records := export.CacheRecords(env.checker.Session().Cache())

	return export.Encode(
		cmd.OutOrStdout(),
		records,
		export.Options{
			Format:       format,
			MaxLineWidth: options.width,
			Color:        options.color && format == export.FormatJSON,
		},
	)
}
