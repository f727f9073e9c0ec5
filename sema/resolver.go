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
	"github.com/onflow/cadence-conformance/errors"
)

// ConformanceRequest is a query whether a type conforms to a protocol.
type ConformanceRequest struct {
	Type     Type
	Protocol *ProtocolDecl
	// WantConformance requests the conformance record.
	// If false, the answer may be given without building one
	WantConformance bool
	// ExplicitConformance is the declaration stating the conformance.
	// If set, the conformance is verified again, even if it is already known
	ExplicitConformance ConformanceSite
	// DiagnosticRange is the location diagnostics are reported at.
	// If nil, the query is answered silently
	DiagnosticRange *ast.Range
}

// ConformsToProtocol determines whether the requested type conforms to the protocol.
//
// Placeholders conform if one of their constraints is or inherits from the protocol.
// Existentials conform if one of their protocols is or inherits from the protocol,
// and that protocol's existential conforms to itself.
// Answers for all other types are cached for the session.
//
// If the type satisfies the protocol without declaring the conformance,
// the result is false, unless a diagnostic range is given:
// then a missing explicit conformance is reported, and the result is true.
//
// For placeholders and existentials no conformance is returned.
func (c *ConformanceChecker) ConformsToProtocol(request ConformanceRequest) (bool, ProtocolConformance) {
	return c.conformsToProtocol(
		request.Type,
		request.Protocol,
		request.WantConformance,
		request.ExplicitConformance,
		request.DiagnosticRange,
	)
}

func (c *ConformanceChecker) conformsToProtocol(
	ty Type,
	protocol *ProtocolDecl,
	wantConformance bool,
	explicitSite ConformanceSite,
	location *ast.Range,
) (
	conforms bool,
	conformance ProtocolConformance,
) {
	if c.config.TracingEnabled {
		startTime := time.Now()
		defer func() {
			c.reportConformanceTrace(
				tracingResolvePostfix,
				ty,
				protocol,
				conforms,
				time.Since(startTime),
			)
		}()
	}

	switch ty := ty.(type) {
	case *GenericParameterType:
		return c.archetypeConformsToProtocol(ty, protocol, location), nil

	case *ExistentialType:
		return c.existentialConformsToProtocol(ty, protocol, location), nil
	}

	cache := c.session.cache
	key := ConformanceCacheKey{
		TypeID:   ty.ID(),
		Protocol: protocol,
	}

	if entry, ok := cache.Get(key); ok {

		if entry.Valid {
			c.logger.Debug().
				Str("type", ty.String()).
				Str("protocol", protocol.Identifier).
				Msg("conformance cache hit")

			return true, entry.Conformance
		}

		if explicitSite == nil {
			// Known implicit conformance
			if entry.Conformance != nil {
				if location == nil {
					return false, nil
				}

				// Continue as if the conformance was declared
				c.suggestExplicitConformance(ty, entry.Conformance, *location)
				return true, entry.Conformance
			}

			c.reportDoesNotConform(ty, protocol, location)
			return false, nil
		}

		// Failed explicit conformances are verified again, so the failures are reported
		cache.discard(key)
	}

	c.logger.Debug().
		Str("type", ty.String()).
		Str("protocol", protocol.Identifier).
		Msg("conformance cache miss")

	if explicitSite == nil {
		nominal, ok := ty.(*NominalType)
		if !ok {
			// Only nominal types conform to protocols
			c.reportDoesNotConform(ty, protocol, location)
			return false, nil
		}

		var owningNominal *NominalTypeDecl
		owningNominal, explicitSite = c.findExplicitConformance(nominal.Decl, protocol)

		if explicitSite == nil {
			return c.implicitConformsToProtocol(key, ty, protocol, location)
		}

		if !wantConformance {
			return true, nil
		}

		// The conformance is declared by a superclass

		if owningNominal != nominal.Decl {
			return c.inheritedConformsToProtocol(key, nominal, owningNominal, protocol, location)
		}

		// The conformance of a specialized type is the generic conformance,
		// projected onto the type

		if nominal.IsSpecialized() {
			explicitType := explicitSite.DeclaredTypeInContext()
			if !explicitType.Equal(nominal) {
				return c.specializedConformsToProtocol(key, nominal, explicitType, protocol, location)
			}
		}
	}

	// Assume the type does not conform while checking whether it does.
	// This terminates cyclic protocol hierarchies

	cache.installSentinel(key)

	result := c.checkConformsToProtocol(ty, protocol, explicitSite, location)
	if result == nil {
		cache.store(key, ConformanceCacheEntry{})
		return false, nil
	}

	cache.store(key, ConformanceCacheEntry{
		Conformance: result,
		Valid:       true,
	})

	c.logPublished(ty, protocol, result)

	return true, result
}

// implicitConformsToProtocol checks whether a type which does not declare
// the conformance satisfies the protocol anyway.
func (c *ConformanceChecker) implicitConformsToProtocol(
	key ConformanceCacheKey,
	ty Type,
	protocol *ProtocolDecl,
	location *ast.Range,
) (bool, ProtocolConformance) {

	// The answer for a type with type variables may change once they are bound
	if ty.ContainsTypeVariable() {
		return false, nil
	}

	cache := c.session.cache

	cache.installSentinel(key)

	result := c.checkConformsToProtocol(ty, protocol, nil, nil)
	if result == nil {
		cache.store(key, ConformanceCacheEntry{})
		c.reportDoesNotConform(ty, protocol, location)
		return false, nil
	}

	cache.store(key, ConformanceCacheEntry{
		Conformance: result,
		Valid:       false,
	})

	if location == nil {
		return false, nil
	}

	c.suggestExplicitConformance(ty, result, *location)
	return true, result
}

// inheritedConformsToProtocol produces the conformance of a class
// from the conformance of the superclass declaring it.
func (c *ConformanceChecker) inheritedConformsToProtocol(
	key ConformanceCacheKey,
	nominal *NominalType,
	owningNominal *NominalTypeDecl,
	protocol *ProtocolDecl,
	location *ast.Range,
) (bool, ProtocolConformance) {

	superclass := superclassOf(nominal)
	for superclass != nil && superclass.Decl != owningNominal {
		superclass = superclassOf(superclass)
	}
	if superclass == nil {
		panic(errors.NewUnexpectedError(
			"`%s` is not a superclass of `%s`",
			owningNominal.QualifiedIdentifier(),
			nominal,
		))
	}

	conforms, inheritedConformance := c.conformsToProtocol(superclass, protocol, true, nil, location)
	if !conforms || inheritedConformance == nil {
		c.storeNegativeIfAbsent(key)
		return false, nil
	}

	cache := c.session.cache

	if entry, ok := cache.Get(key); ok && entry.Valid {
		return true, entry.Conformance
	}

	cache.installSentinel(key)
	result := &InheritedConformance{
		typ:       nominal,
		inherited: inheritedConformance,
	}
	cache.store(key, ConformanceCacheEntry{
		Conformance: result,
		Valid:       true,
	})

	c.logPublished(nominal, protocol, result)

	return true, result
}

// specializedConformsToProtocol produces the conformance of a specialized type
// from the conformance of the generic type.
func (c *ConformanceChecker) specializedConformsToProtocol(
	key ConformanceCacheKey,
	nominal *NominalType,
	genericType *NominalType,
	protocol *ProtocolDecl,
	location *ast.Range,
) (bool, ProtocolConformance) {

	conforms, genericConformance := c.conformsToProtocol(genericType, protocol, true, nil, location)
	if !conforms {
		return false, nil
	}
	if genericConformance == nil {
		panic(errors.NewUnexpectedError(
			"missing generic conformance of `%s` to `%s`",
			genericType,
			protocol.Identifier,
		))
	}

	substitutions, err := c.GatherSubstitutions(nominal)
	if err != nil {
		if location != nil {
			c.reportDoesNotConform(nominal, protocol, location)
			if diagnostic, ok := err.(Diagnostic); ok {
				c.report(withRange(diagnostic, *location))
			}
		}
		c.storeNegativeIfAbsent(key)
		return false, nil
	}

	cache := c.session.cache

	if entry, ok := cache.Get(key); ok && entry.Valid {
		return true, entry.Conformance
	}

	cache.installSentinel(key)
	result := c.specializeConformance(nominal, genericConformance, substitutions)
	cache.store(key, ConformanceCacheEntry{
		Conformance: result,
		Valid:       true,
	})

	c.logPublished(nominal, protocol, result)

	return true, result
}

func (c *ConformanceChecker) storeNegativeIfAbsent(key ConformanceCacheKey) {
	cache := c.session.cache
	if _, ok := cache.Get(key); ok {
		return
	}
	cache.store(key, ConformanceCacheEntry{})
}

// archetypeConformsToProtocol checks whether one of the placeholder's constraints
// is or inherits from the protocol.
func (c *ConformanceChecker) archetypeConformsToProtocol(
	archetype *GenericParameterType,
	protocol *ProtocolDecl,
	location *ast.Range,
) bool {
	if archetype.ConformsToProtocol(protocol) {
		return true
	}

	c.reportDoesNotConform(archetype, protocol, location)
	return false
}

// existentialConformsToProtocol checks whether one of the existential's protocols
// is or inherits from the protocol, and conforms to itself.
func (c *ConformanceChecker) existentialConformsToProtocol(
	existential *ExistentialType,
	protocol *ProtocolDecl,
	location *ast.Range,
) bool {
	for _, existentialProtocol := range existential.Protocols {
		if existentialProtocol != protocol && !existentialProtocol.InheritsFrom(protocol) {
			continue
		}

		checking := c.session.NewProtocolSet()
		checking.Insert(existentialProtocol)

		return c.existentialConformsToItself(existential, existentialProtocol, location, checking)
	}

	c.reportDoesNotConform(existential, protocol, location)
	return false
}

func (c *ConformanceChecker) reportDoesNotConform(ty Type, protocol *ProtocolDecl, location *ast.Range) {
	if location == nil {
		return
	}

	c.report(&TypeDoesNotConformError{
		Type:     ty,
		Protocol: protocol,
		Range:    *location,
	})
}

func (c *ConformanceChecker) logPublished(ty Type, protocol *ProtocolDecl, conformance ProtocolConformance) {
	c.logger.Debug().
		Str("type", ty.String()).
		Str("protocol", protocol.Identifier).
		Int("witnesses", conformance.Witnesses().Len()).
		Int("typeWitnesses", conformance.TypeWitnesses().Len()).
		Msg("conformance published")
}

// withRange returns the diagnostic located at the given range.
func withRange(diagnostic Diagnostic, location ast.Range) Diagnostic {
	switch diagnostic := diagnostic.(type) {
	case *TypeArgumentCountError:
		copied := *diagnostic
		copied.Range = location
		return &copied

	case *TypeArgumentConformanceError:
		copied := *diagnostic
		copied.Range = location
		return &copied

	default:
		return diagnostic
	}
}
