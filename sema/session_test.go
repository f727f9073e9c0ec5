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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onflow/cadence-conformance/ast"
)

func TestProtocolSet(t *testing.T) {

	t.Parallel()

	session := NewSession()

	p := NewProtocolDecl(nil, "P", ast.EmptyRange)
	q := NewProtocolDecl(nil, "Q", ast.EmptyRange)

	set := session.NewProtocolSet()
	assert.False(t, set.Contains(p))

	assert.True(t, set.Insert(p))
	assert.False(t, set.Insert(p))
	assert.True(t, set.Contains(p))
	assert.False(t, set.Contains(q))
	assert.Equal(t, 1, set.Len())

	// Sets of the same session are independent

	other := session.NewProtocolSet()
	assert.True(t, other.Insert(q))
	assert.False(t, other.Contains(p))
	assert.False(t, set.Contains(q))
	assert.Equal(t, 1, other.Len())
}

func TestSessionTypeVariables(t *testing.T) {

	t.Parallel()

	session := NewSession()

	first := session.NewTypeVariable()
	second := session.NewTypeVariable()

	assert.NotEqual(t, first.Number, second.Number)
	assert.False(t, first.Equal(second))
	assert.True(t, first.Equal(first))
	assert.True(t, first.ContainsTypeVariable())
}

func TestSessionExistentialConformsToSelf(t *testing.T) {

	t.Parallel()

	session := NewSession()

	p := NewProtocolDecl(nil, "P", ast.EmptyRange)

	known, _ := session.ExistentialConformsToSelf(p)
	assert.False(t, known)

	session.setExistentialConformsToSelf(p, false)

	known, conforms := session.ExistentialConformsToSelf(p)
	assert.True(t, known)
	assert.False(t, conforms)

	session.setExistentialConformsToSelf(p, true)

	known, conforms = session.ExistentialConformsToSelf(p)
	assert.True(t, known)
	assert.True(t, conforms)
}
