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
	"github.com/onflow/cadence-conformance/common/orderedmap"
)

// Substitution binds a placeholder to its replacement,
// together with the proofs that the replacement conforms
// to each protocol the placeholder requires, in declaration order.
//
// A proof is nil if the replacement is itself a placeholder or an existential,
// for which conformances are proven but not witnessed.
type Substitution struct {
	Archetype    *GenericParameterType
	Replacement  Type
	Conformances []ProtocolConformance
}

// Witness is the declaration satisfying a requirement,
// and the substitutions of the witness' own generic parameters.
type Witness struct {
	Decl          ValueDecl
	Substitutions []Substitution
}

type WitnessMap = orderedmap.OrderedMap[ValueDecl, Witness]

type TypeWitnessMap = orderedmap.OrderedMap[*AssociatedTypeDecl, Substitution]

type InheritedConformanceMap = orderedmap.OrderedMap[*ProtocolDecl, ProtocolConformance]

// ProtocolConformance is the proof that a type conforms to a protocol.
type ProtocolConformance interface {
	isProtocolConformance()
	Type() Type
	Protocol() *ProtocolDecl
	// Witness returns the witness for the given requirement
	Witness(requirement ValueDecl) (Witness, bool)
	Witnesses() *WitnessMap
	// TypeWitness returns the type witness for the given associated type
	TypeWitness(associatedType *AssociatedTypeDecl) (Substitution, bool)
	TypeWitnesses() *TypeWitnessMap
	// InheritedConformance returns the conformance to the given inherited protocol
	InheritedConformance(protocol *ProtocolDecl) (ProtocolConformance, bool)
	InheritedConformances() *InheritedConformanceMap
	// UsesDefaultDefinition returns true if the associated type was deduced
	// rather than declared by the conforming type
	UsesDefaultDefinition(associatedType *AssociatedTypeDecl) bool
}

// NormalConformance is the conformance of a nominal type to a protocol,
// with the complete witness table.
type NormalConformance struct {
	typ      Type
	protocol *ProtocolDecl
	// explicitSite is the declaration which declares the conformance,
	// or nil if the conformance is implicit
	explicitSite          ConformanceSite
	witnesses             *WitnessMap
	typeWitnesses         *TypeWitnessMap
	typeWitnessDecls      map[*AssociatedTypeDecl]TypeDecl
	inheritedConformances *InheritedConformanceMap
	defaultedDefinitions  []*AssociatedTypeDecl
}

var _ ProtocolConformance = &NormalConformance{}

func (*NormalConformance) isProtocolConformance() {}

func (c *NormalConformance) Type() Type {
	return c.typ
}

func (c *NormalConformance) Protocol() *ProtocolDecl {
	return c.protocol
}

func (c *NormalConformance) ExplicitSite() ConformanceSite {
	return c.explicitSite
}

func (c *NormalConformance) Witness(requirement ValueDecl) (Witness, bool) {
	return c.witnesses.Get(requirement)
}

func (c *NormalConformance) Witnesses() *WitnessMap {
	return c.witnesses
}

func (c *NormalConformance) TypeWitness(associatedType *AssociatedTypeDecl) (Substitution, bool) {
	return c.typeWitnesses.Get(associatedType)
}

func (c *NormalConformance) TypeWitnesses() *TypeWitnessMap {
	return c.typeWitnesses
}

// TypeWitnessDecl returns the type member which was found
// as the type witness for the given associated type.
// It returns nil if the type witness was deduced.
func (c *NormalConformance) TypeWitnessDecl(associatedType *AssociatedTypeDecl) TypeDecl {
	return c.typeWitnessDecls[associatedType]
}

func (c *NormalConformance) InheritedConformance(protocol *ProtocolDecl) (ProtocolConformance, bool) {
	return c.inheritedConformances.Get(protocol)
}

func (c *NormalConformance) InheritedConformances() *InheritedConformanceMap {
	return c.inheritedConformances
}

func (c *NormalConformance) UsesDefaultDefinition(associatedType *AssociatedTypeDecl) bool {
	for _, defaulted := range c.defaultedDefinitions {
		if defaulted == associatedType {
			return true
		}
	}
	return false
}

func (c *NormalConformance) DefaultedDefinitions() []*AssociatedTypeDecl {
	return c.defaultedDefinitions
}

// InheritedConformance is the conformance of a subclass to a protocol,
// declared by one of its superclasses.
type InheritedConformance struct {
	typ       Type
	inherited ProtocolConformance
}

var _ ProtocolConformance = &InheritedConformance{}

func (*InheritedConformance) isProtocolConformance() {}

func (c *InheritedConformance) Type() Type {
	return c.typ
}

// InheritedFrom returns the superclass' conformance.
func (c *InheritedConformance) InheritedFrom() ProtocolConformance {
	return c.inherited
}

func (c *InheritedConformance) Protocol() *ProtocolDecl {
	return c.inherited.Protocol()
}

func (c *InheritedConformance) Witness(requirement ValueDecl) (Witness, bool) {
	return c.inherited.Witness(requirement)
}

func (c *InheritedConformance) Witnesses() *WitnessMap {
	return c.inherited.Witnesses()
}

func (c *InheritedConformance) TypeWitness(associatedType *AssociatedTypeDecl) (Substitution, bool) {
	return c.inherited.TypeWitness(associatedType)
}

func (c *InheritedConformance) TypeWitnesses() *TypeWitnessMap {
	return c.inherited.TypeWitnesses()
}

func (c *InheritedConformance) InheritedConformance(protocol *ProtocolDecl) (ProtocolConformance, bool) {
	return c.inherited.InheritedConformance(protocol)
}

func (c *InheritedConformance) InheritedConformances() *InheritedConformanceMap {
	return c.inherited.InheritedConformances()
}

func (c *InheritedConformance) UsesDefaultDefinition(associatedType *AssociatedTypeDecl) bool {
	return c.inherited.UsesDefaultDefinition(associatedType)
}

// SpecializedConformance is a generic conformance
// projected onto a specialization of the generic type.
//
// Witnesses and inherited conformances are the ones of the generic conformance.
// Type witnesses are re-derived under the substitutions.
type SpecializedConformance struct {
	typ           Type
	generic       ProtocolConformance
	substitutions []Substitution
	typeWitnesses *TypeWitnessMap
}

var _ ProtocolConformance = &SpecializedConformance{}

func (*SpecializedConformance) isProtocolConformance() {}

func (c *SpecializedConformance) Type() Type {
	return c.typ
}

func (c *SpecializedConformance) GenericConformance() ProtocolConformance {
	return c.generic
}

func (c *SpecializedConformance) Substitutions() []Substitution {
	return c.substitutions
}

func (c *SpecializedConformance) Protocol() *ProtocolDecl {
	return c.generic.Protocol()
}

func (c *SpecializedConformance) Witness(requirement ValueDecl) (Witness, bool) {
	return c.generic.Witness(requirement)
}

func (c *SpecializedConformance) Witnesses() *WitnessMap {
	return c.generic.Witnesses()
}

func (c *SpecializedConformance) TypeWitness(associatedType *AssociatedTypeDecl) (Substitution, bool) {
	return c.typeWitnesses.Get(associatedType)
}

func (c *SpecializedConformance) TypeWitnesses() *TypeWitnessMap {
	return c.typeWitnesses
}

func (c *SpecializedConformance) InheritedConformance(protocol *ProtocolDecl) (ProtocolConformance, bool) {
	return c.generic.InheritedConformance(protocol)
}

func (c *SpecializedConformance) InheritedConformances() *InheritedConformanceMap {
	return c.generic.InheritedConformances()
}

func (c *SpecializedConformance) UsesDefaultDefinition(associatedType *AssociatedTypeDecl) bool {
	return c.generic.UsesDefaultDefinition(associatedType)
}
