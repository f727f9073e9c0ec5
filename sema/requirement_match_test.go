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

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-conformance/ast"
)

func TestMatchKind(t *testing.T) {

	t.Parallel()

	t.Run("order", func(t *testing.T) {

		t.Parallel()

		kinds := []MatchKind{
			MatchKindExact,
			MatchKindRenamed,
			MatchKindWitnessInvalid,
			MatchKindKindConflict,
			MatchKindTypeConflict,
			MatchKindStaticNonStaticConflict,
			MatchKindPrefixNonPrefixConflict,
			MatchKindPostfixNonPostfixConflict,
		}

		for i := 1; i < len(kinds); i++ {
			assert.True(t, kinds[i-1].IsBetterThan(kinds[i]))
			assert.False(t, kinds[i].IsBetterThan(kinds[i-1]))
			assert.False(t, kinds[i].IsBetterThan(kinds[i]))
		}
	})

	t.Run("viable", func(t *testing.T) {

		t.Parallel()

		assert.True(t, MatchKindExact.IsViable())
		assert.True(t, MatchKindRenamed.IsViable())
		assert.False(t, MatchKindWitnessInvalid.IsViable())
		assert.False(t, MatchKindTypeConflict.IsViable())
	})

	t.Run("witness type", func(t *testing.T) {

		t.Parallel()

		assert.True(t, MatchKindTypeConflict.HasWitnessType())
		assert.False(t, MatchKindKindConflict.HasWitnessType())

		assert.Panics(t, func() {
			newRequirementMatch(nil, MatchKindExact, nil)
		})
		assert.Panics(t, func() {
			newRequirementMatch(nil, MatchKindKindConflict, InvalidType)
		})
	})

	t.Run("string", func(t *testing.T) {

		t.Parallel()

		assert.Equal(t, "Renamed", MatchKindRenamed.String())
		assert.Equal(t, "StaticNonStaticConflict", MatchKindStaticNonStaticConflict.String())
	})
}

func matchesOfKinds(kinds []int) []RequirementMatch {
	matches := make([]RequirementMatch, len(kinds))
	for i, kind := range kinds {
		matches[i] = RequirementMatch{
			Kind: MatchKind(kind),
		}
	}
	return matches
}

func TestSelectBestMatch(t *testing.T) {

	t.Parallel()

	t.Run("no matches", func(t *testing.T) {

		t.Parallel()

		_, _, numViable, ok := selectBestMatch(nil)
		assert.False(t, ok)
		assert.Equal(t, 0, numViable)
	})

	t.Run("single viable match", func(t *testing.T) {

		t.Parallel()

		matches := matchesOfKinds([]int{
			int(MatchKindTypeConflict),
			int(MatchKindRenamed),
		})

		remaining, best, numViable, ok := selectBestMatch(matches)
		require.True(t, ok)
		assert.Equal(t, 1, numViable)
		assert.Equal(t, MatchKindRenamed, best.Kind)
		assert.Len(t, remaining, 2)
	})

	t.Run("exact is better than renamed", func(t *testing.T) {

		t.Parallel()

		matches := matchesOfKinds([]int{
			int(MatchKindRenamed),
			int(MatchKindExact),
			int(MatchKindKindConflict),
		})

		remaining, best, numViable, ok := selectBestMatch(matches)
		require.True(t, ok)
		assert.Equal(t, 2, numViable)
		assert.Equal(t, MatchKindExact, best.Kind)
		assert.Len(t, remaining, 2)
	})

	t.Run("two exact matches", func(t *testing.T) {

		t.Parallel()

		matches := matchesOfKinds([]int{
			int(MatchKindExact),
			int(MatchKindExact),
		})

		remaining, _, numViable, ok := selectBestMatch(matches)
		assert.False(t, ok)
		assert.Equal(t, 2, numViable)
		assert.Len(t, remaining, 2)
	})

	t.Run("strict best", func(t *testing.T) {

		t.Parallel()

		properties := gopter.NewProperties(nil)

		properties.Property("a selected match is strictly better than all other viable matches", prop.ForAll(
			func(kinds []int) bool {
				matches := matchesOfKinds(kinds)

				bestKind := MatchKindPostfixNonPostfixConflict
				bestCount := 0
				viableCount := 0
				for _, match := range matches {
					if !match.IsViable() {
						continue
					}
					viableCount++
					switch {
					case match.Kind < bestKind:
						bestKind = match.Kind
						bestCount = 1
					case match.Kind == bestKind:
						bestCount++
					}
				}

				_, best, numViable, ok := selectBestMatch(matches)
				if numViable != viableCount {
					return false
				}

				if viableCount == 0 || bestCount > 1 {
					return !ok
				}

				return ok && best.Kind == bestKind
			},
			gen.SliceOf(gen.IntRange(
				int(MatchKindExact),
				int(MatchKindPostfixNonPostfixConflict),
			)),
		))

		properties.TestingRun(t)
	})
}

func TestAssociatedTypeDeductionsString(t *testing.T) {

	t.Parallel()

	protocol := NewProtocolDecl(nil, "Container", ast.EmptyRange)
	item := protocol.AddAssociatedType("Item", nil, ast.EmptyRange)
	index := protocol.AddAssociatedType("Index", nil, ast.EmptyRange)

	intType := &NominalType{
		Decl: &NominalTypeDecl{Identifier: "Int"},
	}

	assert.Equal(t, "", associatedTypeDeductionsString())

	assert.Equal(t,
		" [with Item = Int, Index = Int]",
		associatedTypeDeductionsString(
			[]AssociatedTypeDeduction{
				{AssociatedType: item, Type: intType},
			},
			[]AssociatedTypeDeduction{
				{AssociatedType: index, Type: intType},
			},
		),
	)
}
