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

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringLocation(t *testing.T) {

	t.Parallel()

	location := StringLocation("shapes")

	t.Run("type ID", func(t *testing.T) {
		t.Parallel()

		typeID := location.TypeID("Outer.Inner")
		assert.Equal(t, TypeID("S.shapes.Outer.Inner"), typeID)
		assert.Equal(t, "Outer.Inner", location.QualifiedIdentifier(typeID))
	})

	t.Run("invalid type ID", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", location.QualifiedIdentifier("S.shapes"))
	})

	t.Run("JSON", func(t *testing.T) {
		t.Parallel()

		data, err := location.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `{"Type":"StringLocation","String":"shapes"}`, string(data))
	})
}

func TestDeclarationKind(t *testing.T) {

	t.Parallel()

	for kind := DeclarationKindUnknown; kind <= DeclarationKindTypeParameter; kind++ {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			assert.NotPanics(t, func() {
				_ = kind.Name()
			})
		})
	}

	assert.True(t, DeclarationKindClass.IsNominalTypeDeclaration())
	assert.False(t, DeclarationKindProtocol.IsNominalTypeDeclaration())
	assert.True(t, DeclarationKindProtocol.IsTypeDeclaration())
	assert.Equal(t, "DeclarationKind(200)", DeclarationKind(200).String())
}
