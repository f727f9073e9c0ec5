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

package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMap(t *testing.T) {

	t.Parallel()

	t.Run("insertion order", func(t *testing.T) {
		t.Parallel()

		om := &OrderedMap[string, int]{}
		om.Set("c", 3)
		om.Set("a", 1)
		om.Set("b", 2)

		assert.Equal(t, []string{"c", "a", "b"}, om.Keys())

		oldValue, present := om.Set("a", 10)
		assert.True(t, present)
		assert.Equal(t, 1, oldValue)
		assert.Equal(t, []string{"c", "a", "b"}, om.Keys())

		value, present := om.Get("a")
		require.True(t, present)
		assert.Equal(t, 10, value)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		om := New[OrderedMap[string, int]](2)
		om.Set("a", 1)
		om.Set("b", 2)

		oldValue, present := om.Delete("a")
		assert.True(t, present)
		assert.Equal(t, 1, oldValue)
		assert.False(t, om.Contains("a"))
		assert.Equal(t, 1, om.Len())
		assert.Equal(t, "b", om.Oldest().Key)
		assert.Equal(t, "b", om.Newest().Key)

		_, present = om.Delete("x")
		assert.False(t, present)
	})

	t.Run("nil map", func(t *testing.T) {
		t.Parallel()

		var om *OrderedMap[string, int]
		assert.Equal(t, 0, om.Len())
		_, present := om.Get("a")
		assert.False(t, present)
		assert.Empty(t, om.Keys())
	})

	t.Run("foreach with error", func(t *testing.T) {
		t.Parallel()

		om := &OrderedMap[int, int]{}
		for i := 0; i < 5; i++ {
			om.Set(i, i*i)
		}

		var visited []int
		err := om.ForeachWithError(func(key int, value int) error {
			if key == 3 {
				return assert.AnError
			}
			visited = append(visited, value)
			return nil
		})
		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, []int{0, 1, 4}, visited)
	})
}
