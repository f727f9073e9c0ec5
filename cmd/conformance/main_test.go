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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-conformance/export"
)

const validProgram = `
protocols:
  - name: Equatable
    requirements:
      - function: isEqual
        type: "(other: Self) -> Bool"
types:
  - name: Point
    conformsTo: [Equatable]
    members:
      - function: isEqual
        type: "(other: Point) -> Bool"
checks:
  - type: Point
    protocol: Equatable
`

const invalidProgram = `
protocols:
  - name: Equatable
    requirements:
      - function: isEqual
        type: "(other: Self) -> Bool"
types:
  - name: Point
    conformsTo: [Equatable]
    members:
      - function: equals
        type: "(other: Point) -> Bool"
`

func writeProgram(t *testing.T, code string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "program.yaml")
	err := os.WriteFile(path, []byte(code), 0o600)
	require.NoError(t, err)
	return path
}

func execute(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color=false"}, args...))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheckCommand(t *testing.T) {

	t.Parallel()

	t.Run("valid", func(t *testing.T) {

		t.Parallel()

		path := writeProgram(t, validProgram)

		stdout, stderr, err := execute(t, "check", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "all conformances hold")
		assert.Empty(t, stderr)
	})

	t.Run("invalid", func(t *testing.T) {

		t.Parallel()

		path := writeProgram(t, invalidProgram)

		_, stderr, err := execute(t, "check", path)
		require.Equal(t, errCheckFailed, err)
		assert.Contains(t, stderr, "error: type `Point` does not conform to protocol `Equatable`")
		assert.Contains(t, stderr, "did you mean `equals`?")
	})

	t.Run("load error", func(t *testing.T) {

		t.Parallel()

		path := writeProgram(t, `
types:
  - name: Point
    conformsTo: [Equatable]
`)

		_, stderr, err := execute(t, "check", path)
		require.Equal(t, errCheckFailed, err)
		assert.Contains(t, stderr, "error: ")
	})

	t.Run("missing file", func(t *testing.T) {

		t.Parallel()

		_, _, err := execute(t, "check", filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid log level", func(t *testing.T) {

		t.Parallel()

		path := writeProgram(t, validProgram)

		_, _, err := execute(t, "--log-level", "loud", "check", path)
		require.Error(t, err)
	})

	t.Run("trace", func(t *testing.T) {

		t.Parallel()

		path := writeProgram(t, validProgram)

		_, stderr, err := execute(t, "--trace", "--log-level", "info", "check", path)
		require.NoError(t, err)
		assert.Contains(t, stderr, "conformance.resolve")
	})
}

func TestDumpCommand(t *testing.T) {

	t.Parallel()

	t.Run("text", func(t *testing.T) {

		t.Parallel()

		path := writeProgram(t, validProgram)

		stdout, _, err := execute(t, "dump", path)
		require.NoError(t, err)
		assert.Equal(t,
			"normal conformance Point: Equatable {\n"+
				"    func isEqual => Point.isEqual: (other: Point) -> Bool\n"+
				"}\n",
			stdout,
		)
	})

	t.Run("cbor", func(t *testing.T) {

		t.Parallel()

		path := writeProgram(t, validProgram)

		stdout, _, err := execute(t, "--format", "cbor", "dump", path)
		require.NoError(t, err)

		records, err := export.DecodeCBOR([]byte(stdout))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Point", records[0].Type)
	})

	t.Run("unsupported format", func(t *testing.T) {

		t.Parallel()

		path := writeProgram(t, validProgram)

		_, _, err := execute(t, "--format", "xml", "dump", path)
		require.ErrorAs(t, err, &export.UnsupportedFormatError{})
	})
}

func TestQuery(t *testing.T) {

	t.Parallel()

	path := writeProgram(t, invalidProgram)

	newTestEnvironment := func(t *testing.T) (*environment, *options) {
		options := &options{
			logLevel: "warn",
			width:    export.DefaultMaxLineWidth,
		}
		env, err := newEnvironment(path, options, &bytes.Buffer{})
		require.NoError(t, err)
		return env, options
	}

	t.Run("does not conform", func(t *testing.T) {

		t.Parallel()

		env, options := newTestEnvironment(t)

		var out bytes.Buffer
		err := env.query(&out, "Point: Equatable", options)
		require.NoError(t, err)
		assert.Equal(t, "`Point` does not conform to `Equatable`\n", out.String())
	})

	t.Run("invalid query", func(t *testing.T) {

		t.Parallel()

		env, options := newTestEnvironment(t)

		err := env.query(&bytes.Buffer{}, "Point", options)
		require.ErrorAs(t, err, &InvalidQueryError{})
	})

	t.Run("unknown protocol", func(t *testing.T) {

		t.Parallel()

		env, options := newTestEnvironment(t)

		err := env.query(&bytes.Buffer{}, "Point: Hashable", options)
		require.EqualError(t, err, "cannot find protocol `Hashable`")
	})

	t.Run("commands", func(t *testing.T) {

		t.Parallel()

		env, options := newTestEnvironment(t)

		var out bytes.Buffer
		assert.False(t, env.handleCommand(&out, ".help", options))
		assert.Contains(t, out.String(), ".exit")

		assert.True(t, env.handleCommand(&out, ".exit", options))
	})

	t.Run("suggestions", func(t *testing.T) {

		t.Parallel()

		env, _ := newTestEnvironment(t)

		var names []string
		for _, suggestion := range env.suggestions() {
			names = append(names, suggestion.Text)
		}
		assert.Contains(t, names, "Equatable")
		assert.Contains(t, names, "Point")
		assert.Contains(t, names, "Int")
	})
}
