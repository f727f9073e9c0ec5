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
	"time"

	"github.com/onflow/cadence-conformance/ast"
)

// ExistentialConformsToItself returns true if the existential type of the protocol
// conforms to the protocol itself.
//
// The result is memoized per protocol for the session.
// A negative result is computed again if diagnostics are requested,
// so the reason can be reported.
func (c *ConformanceChecker) ExistentialConformsToItself(protocol *ProtocolDecl, location *ast.Range) bool {
	checking := c.session.NewProtocolSet()
	checking.Insert(protocol)

	return c.existentialConformsToItself(
		NewExistentialType([]*ProtocolDecl{protocol}),
		protocol,
		location,
		checking,
	)
}

// existentialConformsToItself checks the self-conformance of the protocol's existential.
// The checking set contains the protocols currently being checked:
// inherited protocols in the set are assumed to conform, which cuts cycles.
func (c *ConformanceChecker) existentialConformsToItself(
	ty Type,
	protocol *ProtocolDecl,
	location *ast.Range,
	checking ProtocolSet,
) (conforms bool) {

	if known, knownConforms := c.session.ExistentialConformsToSelf(protocol); known {
		if knownConforms || location == nil {
			return knownConforms
		}
	}

	if c.config.TracingEnabled {
		startTime := time.Now()
		defer func() {
			c.reportSelfConformanceTrace(protocol, conforms, time.Since(startTime))
		}()
	}

	for _, inheritedProtocol := range protocol.Inherited {
		if !checking.Insert(inheritedProtocol) {
			continue
		}

		if !c.existentialConformsToItself(ty, inheritedProtocol, location, checking) {
			if location != nil {
				c.report(&InheritedProtocolDoesNotConformError{
					Type:              ty,
					Protocol:          protocol,
					InheritedProtocol: inheritedProtocol,
					Range:             protocol.Range,
				})
			}

			c.session.setExistentialConformsToSelf(protocol, false)
			return false
		}
	}

	// A protocol with an associated type does not conform to itself

	if len(protocol.AssociatedTypes) > 0 {
		c.session.setExistentialConformsToSelf(protocol, false)

		if location != nil {
			associatedType := protocol.AssociatedTypes[0]

			c.report(&TypeDoesNotConformError{
				Type:     ty,
				Protocol: protocol,
				Range:    *location,
			})
			c.report(&ExistentialAssociatedTypeError{
				Type:           ty,
				Protocol:       protocol,
				AssociatedType: associatedType,
				Range:          associatedType.Range,
			})
		}
		return false
	}

	// A protocol with a requirement that refers to Self does not conform to itself

	for _, requirement := range protocol.Requirements {
		memberType := requirement.DeclaredType()
		if memberType.IsInvalidType() {
			continue
		}

		if !ReferencesType(memberType, protocol.Self) {
			continue
		}

		c.session.setExistentialConformsToSelf(protocol, false)

		if location != nil {
			c.report(&TypeDoesNotConformError{
				Type:     ty,
				Protocol: protocol,
				Range:    *location,
			})
			c.report(&ExistentialSelfReferenceError{
				Type:     ty,
				Protocol: protocol,
				Member:   requirement,
				Range:    ast.NewRangeFromPositioned(requirement),
			})
		}
		return false
	}

	c.session.setExistentialConformsToSelf(protocol, true)
	return true
}
