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


package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values[T any](l *List[T]) []T {
	var result []T
	for e := l.Front(); e != nil; e = e.Next() {
		result = append(result, e.Value)
	}
	return result
}

func TestList(t *testing.T) {

	t.Parallel()

	t.Run("zero value", func(t *testing.T) {

		t.Parallel()

		var l List[int]
		assert.Equal(t, 0, l.Len())
		assert.Nil(t, l.Front())
		assert.Nil(t, l.Back())

		l.PushBack(1)
		assert.Equal(t, []int{1}, values(&l))
	})

	t.Run("push", func(t *testing.T) {

		t.Parallel()

		l := New[string]()
		l.PushBack("b")
		l.PushFront("a")
		l.PushBack("c")

		assert.Equal(t, 3, l.Len())
		assert.Equal(t, []string{"a", "b", "c"}, values(l))
		assert.Equal(t, "a", l.Front().Value)
		assert.Equal(t, "c", l.Back().Value)
		assert.Nil(t, l.Front().Prev())
		assert.Nil(t, l.Back().Next())
	})

	t.Run("remove", func(t *testing.T) {

		t.Parallel()

		l := New[int]()
		first := l.PushBack(1)
		second := l.PushBack(2)
		l.PushBack(3)

		assert.Equal(t, 2, l.Remove(second))
		assert.Equal(t, []int{1, 3}, values(l))
		assert.Nil(t, second.Next())

		// Removing again has no effect
		l.Remove(second)
		assert.Equal(t, 2, l.Len())

		// Elements of other lists are not removed
		other := New[int]()
		other.Remove(first)
		assert.Equal(t, []int{1, 3}, values(l))

		l.Remove(first)
		require.Equal(t, 1, l.Len())
		assert.Equal(t, 3, l.Front().Value)
	})

	t.Run("init", func(t *testing.T) {

		t.Parallel()

		l := New[int]()
		l.PushBack(1)
		l.Init()

		assert.Equal(t, 0, l.Len())
		assert.Empty(t, values(l))
	})
}
