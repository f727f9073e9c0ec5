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
	"github.com/onflow/cadence-conformance/ast"
)

// VerifyDeclaredConformances verifies all conformances declared in the module,
// by nominal types, their nested types, and extensions.
// Diagnostics are reported at the inheritance clause entries.
//
// The result is false if one of the conformances does not hold.
func (c *ConformanceChecker) VerifyDeclaredConformances(module *Module) bool {
	result := true

	verify := func(site ConformanceSite) {
		ranges := site.InheritanceClause()
		for i, protocol := range site.DeclaredConformances() {
			diagnosticRange := ast.NewRangeFromPositioned(site)
			if i < len(ranges) {
				diagnosticRange = ranges[i]
			}

			conforms, _ := c.ConformsToProtocol(ConformanceRequest{
				Type:                site.DeclaredTypeInContext(),
				Protocol:            protocol,
				WantConformance:     true,
				ExplicitConformance: site,
				DiagnosticRange:     &diagnosticRange,
			})
			if !conforms {
				result = false
			}
		}
	}

	var verifyNominal func(decl *NominalTypeDecl)
	verifyNominal = func(decl *NominalTypeDecl) {
		verify(decl)
		for _, member := range decl.TypeMembers {
			if nested, ok := member.(*NominalTypeDecl); ok {
				verifyNominal(nested)
			}
		}
	}

	for _, decl := range module.Types {
		verifyNominal(decl)
	}
	for _, extension := range module.Extensions {
		verify(extension)
	}

	return result
}
