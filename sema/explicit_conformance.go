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

// explicitConformanceSearchItem is an entry of the explicit conformance search:
// a nominal type, or a protocol whose inherited protocols are visited,
// and the nominal type and declaration which introduced it.
type explicitConformanceSearchItem struct {
	nominal  *NominalTypeDecl
	protocol *ProtocolDecl
	// owningNominal is the nominal type declaring the conformance
	owningNominal *NominalTypeDecl
	// site is the declaration of the conformance, the nominal type or one of its extensions
	site ConformanceSite
}

// findExplicitConformance searches for the declaration of the conformance
// of the nominal type to the protocol.
//
// The declared conformances of the type, of its extensions,
// and of its superclasses are searched, depth-first.
// The protocols declared by a type, and the protocols they inherit from,
// are searched before its superclass.
// A declared protocol which inherits from the protocol also declares the conformance.
//
// It returns the nominal type declaring the conformance, which may be a superclass,
// and the declaration site. Both are nil if no declaration was found.
func (c *ConformanceChecker) findExplicitConformance(
	nominal *NominalTypeDecl,
	protocol *ProtocolDecl,
) (
	owningNominal *NominalTypeDecl,
	site ConformanceSite,
) {
	visitedProtocols := c.session.NewProtocolSet()
	visitedNominals := map[*NominalTypeDecl]struct{}{}

	stack := []explicitConformanceSearchItem{
		{
			nominal:       nominal,
			owningNominal: nominal,
			site:          nominal,
		},
	}

	// isProtocolInList checks for the protocol in the given protocols,
	// and pushes the other protocols, so their inherited protocols are checked
	isProtocolInList := func(
		currentNominal *NominalTypeDecl,
		currentSite ConformanceSite,
		protocols []*ProtocolDecl,
	) bool {
		for _, testProtocol := range protocols {
			if testProtocol == protocol {
				owningNominal = currentNominal
				site = currentSite
				return true
			}

			if visitedProtocols.Insert(testProtocol) {
				stack = append(stack, explicitConformanceSearchItem{
					protocol:      testProtocol,
					owningNominal: currentNominal,
					site:          currentSite,
				})
			}
		}
		return false
	}

	for len(stack) > 0 {
		lastIndex := len(stack) - 1
		current := stack[lastIndex]
		stack = stack[:lastIndex]

		if current.protocol != nil {
			if isProtocolInList(current.owningNominal, current.site, current.protocol.Inherited) {
				break
			}
			continue
		}

		currentNominal := current.nominal
		if _, ok := visitedNominals[currentNominal]; ok {
			continue
		}
		visitedNominals[currentNominal] = struct{}{}

		if superclass := currentNominal.Superclass; superclass != nil {
			stack = append(stack, explicitConformanceSearchItem{
				nominal:       superclass.Decl,
				owningNominal: superclass.Decl,
				site:          superclass.Decl,
			})
		}

		if isProtocolInList(currentNominal, currentNominal, currentNominal.Conformances) {
			break
		}

		found := false
		for _, extension := range currentNominal.Extensions {
			if isProtocolInList(currentNominal, extension, extension.Conformances) {
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	if site != nil {
		c.logger.Debug().
			Str("type", nominal.QualifiedIdentifier()).
			Str("protocol", protocol.Identifier).
			Str("owner", owningNominal.QualifiedIdentifier()).
			Msg("found explicit conformance")
	}

	return
}
