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

package export

import (
	"cmp"
	"slices"

	"github.com/onflow/cadence-conformance/errors"
	"github.com/onflow/cadence-conformance/sema"
)

// ConformanceKind

type ConformanceKind string

const (
	ConformanceKindNormal      ConformanceKind = "normal"
	ConformanceKindInherited   ConformanceKind = "inherited"
	ConformanceKindSpecialized ConformanceKind = "specialized"
)

// Record is the serialisable form of a conformance.
type Record struct {
	Type     string          `json:"type" yaml:"type" cbor:"type"`
	Protocol string          `json:"protocol" yaml:"protocol" cbor:"protocol"`
	Kind     ConformanceKind `json:"kind" yaml:"kind" cbor:"kind"`
	// Implicit is true if the type satisfies the protocol without declaring the conformance
	Implicit bool `json:"implicit,omitempty" yaml:"implicit,omitempty" cbor:"implicit,omitempty"`
	// InheritedFrom is the superclass declaring the conformance of an inherited conformance
	InheritedFrom string `json:"inheritedFrom,omitempty" yaml:"inheritedFrom,omitempty" cbor:"inheritedFrom,omitempty"`
	// GenericType is the generic type of a specialized conformance
	GenericType           string                 `json:"genericType,omitempty" yaml:"genericType,omitempty" cbor:"genericType,omitempty"`
	Substitutions         []SubstitutionRecord   `json:"substitutions,omitempty" yaml:"substitutions,omitempty" cbor:"substitutions,omitempty"`
	TypeWitnesses         []TypeWitnessRecord    `json:"typeWitnesses,omitempty" yaml:"typeWitnesses,omitempty" cbor:"typeWitnesses,omitempty"`
	Witnesses             []WitnessRecord        `json:"witnesses,omitempty" yaml:"witnesses,omitempty" cbor:"witnesses,omitempty"`
	InheritedConformances []InheritedRecord      `json:"inheritedConformances,omitempty" yaml:"inheritedConformances,omitempty" cbor:"inheritedConformances,omitempty"`
}

// WitnessRecord is an entry of a witness table.
type WitnessRecord struct {
	Requirement     string               `json:"requirement" yaml:"requirement" cbor:"requirement"`
	RequirementKind string               `json:"requirementKind" yaml:"requirementKind" cbor:"requirementKind"`
	Witness         string               `json:"witness" yaml:"witness" cbor:"witness"`
	WitnessType     string               `json:"witnessType" yaml:"witnessType" cbor:"witnessType"`
	Substitutions   []SubstitutionRecord `json:"substitutions,omitempty" yaml:"substitutions,omitempty" cbor:"substitutions,omitempty"`
}

// TypeWitnessRecord binds an associated type.
type TypeWitnessRecord struct {
	AssociatedType string `json:"associatedType" yaml:"associatedType" cbor:"associatedType"`
	Type           string `json:"type" yaml:"type" cbor:"type"`
	// Deduced is true if the type witness was deduced from the value witnesses
	Deduced bool `json:"deduced,omitempty" yaml:"deduced,omitempty" cbor:"deduced,omitempty"`
}

// SubstitutionRecord binds a generic parameter.
type SubstitutionRecord struct {
	Parameter   string `json:"parameter" yaml:"parameter" cbor:"parameter"`
	Replacement string `json:"replacement" yaml:"replacement" cbor:"replacement"`
	// Conformances are the protocols the replacement was proven to conform to
	Conformances []string `json:"conformances,omitempty" yaml:"conformances,omitempty" cbor:"conformances,omitempty"`
}

// InheritedRecord refers to the conformance to an inherited protocol.
type InheritedRecord struct {
	Protocol string `json:"protocol" yaml:"protocol" cbor:"protocol"`
	Type     string `json:"type" yaml:"type" cbor:"type"`
}

// NewRecord returns the record of the given conformance.
func NewRecord(conformance sema.ProtocolConformance) Record {
	record := Record{
		Type:     conformance.Type().String(),
		Protocol: conformance.Protocol().Identifier,
	}

	switch conformance := conformance.(type) {
	case *sema.NormalConformance:
		record.Kind = ConformanceKindNormal

	case *sema.InheritedConformance:
		record.Kind = ConformanceKindInherited
		record.InheritedFrom = conformance.InheritedFrom().Type().String()

	case *sema.SpecializedConformance:
		record.Kind = ConformanceKindSpecialized
		record.GenericType = conformance.GenericConformance().Type().String()
		record.Substitutions = substitutionRecords(conformance.Substitutions())

	default:
		panic(errors.NewUnreachableError())
	}

	conformance.TypeWitnesses().Foreach(func(associatedType *sema.AssociatedTypeDecl, substitution sema.Substitution) {
		record.TypeWitnesses = append(
			record.TypeWitnesses,
			TypeWitnessRecord{
				AssociatedType: associatedType.Identifier,
				Type:           substitution.Replacement.String(),
				Deduced:        conformance.UsesDefaultDefinition(associatedType),
			},
		)
	})

	conformance.Witnesses().Foreach(func(requirement sema.ValueDecl, witness sema.Witness) {
		record.Witnesses = append(
			record.Witnesses,
			WitnessRecord{
				Requirement:     requirement.DeclarationIdentifier(),
				RequirementKind: requirement.DeclarationKind().Keywords(),
				Witness:         QualifiedIdentifier(witness.Decl),
				WitnessType:     witness.Decl.DeclaredType().String(),
				Substitutions:   substitutionRecords(witness.Substitutions),
			},
		)
	})

	conformance.InheritedConformances().Foreach(func(protocol *sema.ProtocolDecl, inherited sema.ProtocolConformance) {
		record.InheritedConformances = append(
			record.InheritedConformances,
			InheritedRecord{
				Protocol: protocol.Identifier,
				Type:     inherited.Type().String(),
			},
		)
	})

	return record
}

func substitutionRecords(substitutions []sema.Substitution) []SubstitutionRecord {
	if len(substitutions) == 0 {
		return nil
	}

	records := make([]SubstitutionRecord, 0, len(substitutions))
	for _, substitution := range substitutions {
		var conformances []string
		for _, protocol := range substitution.Archetype.Protocols {
			conformances = append(conformances, protocol.Identifier)
		}

		records = append(
			records,
			SubstitutionRecord{
				Parameter:    substitution.Archetype.Identifier,
				Replacement:  substitution.Replacement.String(),
				Conformances: conformances,
			},
		)
	}
	return records
}

// QualifiedIdentifier returns the identifier of the declaration,
// qualified by the type declaring it.
// Members of extensions are qualified by the extended type.
func QualifiedIdentifier(decl sema.ValueDecl) string {
	identifier := decl.DeclarationIdentifier()

	switch owner := decl.Owner().(type) {
	case *sema.NominalTypeDecl:
		return owner.QualifiedIdentifier() + "." + identifier
	case *sema.ExtensionDecl:
		return owner.Extended.QualifiedIdentifier() + "." + identifier
	case *sema.ProtocolDecl:
		return owner.Identifier + "." + identifier
	default:
		return identifier
	}
}

// CacheRecords returns the records of all conformances known to the cache,
// ordered by type and protocol.
// Known non-conformances are skipped.
func CacheRecords(cache *sema.ConformanceCache) []Record {
	var records []Record

	cache.Foreach(func(_ sema.ConformanceCacheKey, entry sema.ConformanceCacheEntry) {
		if entry.Conformance == nil {
			return
		}

		record := NewRecord(entry.Conformance)
		record.Implicit = entry.IsImplicit()
		records = append(records, record)
	})

	slices.SortFunc(records, func(a, b Record) int {
		return cmp.Or(
			cmp.Compare(a.Type, b.Type),
			cmp.Compare(a.Protocol, b.Protocol),
		)
	})

	return records
}
