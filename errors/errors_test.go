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

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUserError struct{}

func (testUserError) Error() string {
	return "user error"
}

func (testUserError) IsUserError() {}

func TestErrorClassification(t *testing.T) {

	t.Parallel()

	t.Run("unexpected error is internal", func(t *testing.T) {
		t.Parallel()

		err := NewUnexpectedError("broken: %d", 42)
		assert.True(t, IsInternalError(err))
		assert.False(t, IsUserError(err))
		assert.Contains(t, err.Error(), "internal error: broken: 42")
	})

	t.Run("wrapped user error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("checking: %w", testUserError{})
		assert.True(t, IsUserError(err))
		assert.False(t, IsInternalError(err))
	})

	t.Run("default user error unwraps", func(t *testing.T) {
		t.Parallel()

		err := NewDefaultUserError("type `%s` is invalid", "Point")
		require.Equal(t, "type `Point` is invalid", err.Error())
		assert.True(t, IsUserError(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		err := NewUnreachableError()
		assert.True(t, IsInternalError(*err))
		assert.NotEmpty(t, err.Stack)
	})
}
