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
	"strings"

	"github.com/turbolent/prettier"
)

const recordConformanceKeywordDoc = prettier.Text(" conformance ")
const recordProtocolSeparatorDoc = prettier.Text(": ")
const recordImplicitDoc = prettier.Text(" (implicit)")
const recordInheritedFromDoc = prettier.Text(" from ")
const recordGenericTypeDoc = prettier.Text(" of ")
const recordEmptyBodyDoc = prettier.Text(" {}")
const recordWhereDoc = prettier.Text("where ")
const recordInheritsDoc = prettier.Text("inherits ")
const typeWitnessKeywordDoc = prettier.Text("typealias ")
const typeWitnessDeducedDoc = prettier.Text(" (deduced)")
const witnessArrowDoc = prettier.Text(" => ")
const substitutionEqualDoc = prettier.Text(" = ")
const witnessSubstitutionsStartDoc = prettier.Text(" [with")
const witnessSubstitutionsEndDoc = prettier.Text("]")

var substitutionSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

var recordSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.HardLine{},
	prettier.HardLine{},
}

func (r Record) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(r.Kind),
		recordConformanceKeywordDoc,
		prettier.Text(r.Type),
		recordProtocolSeparatorDoc,
		prettier.Text(r.Protocol),
	}

	if r.Implicit {
		doc = append(doc, recordImplicitDoc)
	}

	if r.InheritedFrom != "" {
		doc = append(
			doc,
			recordInheritedFromDoc,
			prettier.Text(r.InheritedFrom),
		)
	}

	if r.GenericType != "" {
		doc = append(
			doc,
			recordGenericTypeDoc,
			prettier.Text(r.GenericType),
		)
	}

	var entryDocs []prettier.Doc

	for _, substitution := range r.Substitutions {
		entryDocs = append(
			entryDocs,
			prettier.Concat{
				recordWhereDoc,
				substitution.Doc(),
			},
		)
	}

	for _, typeWitness := range r.TypeWitnesses {
		entryDocs = append(entryDocs, typeWitness.Doc())
	}

	for _, witness := range r.Witnesses {
		entryDocs = append(entryDocs, witness.Doc())
	}

	for _, inherited := range r.InheritedConformances {
		entryDocs = append(
			entryDocs,
			prettier.Concat{
				recordInheritsDoc,
				prettier.Text(inherited.Protocol),
				recordProtocolSeparatorDoc,
				prettier.Text(inherited.Type),
			},
		)
	}

	if len(entryDocs) == 0 {
		return append(doc, recordEmptyBodyDoc)
	}

	var bodyDoc prettier.Concat
	for _, entryDoc := range entryDocs {
		bodyDoc = append(
			bodyDoc,
			prettier.HardLine{},
			entryDoc,
		)
	}

	return append(
		doc,
		prettier.Text(" {"),
		prettier.Indent{
			Doc: bodyDoc,
		},
		prettier.HardLine{},
		prettier.Text("}"),
	)
}

func (w TypeWitnessRecord) Doc() prettier.Doc {
	doc := prettier.Concat{
		typeWitnessKeywordDoc,
		prettier.Text(w.AssociatedType),
		substitutionEqualDoc,
		prettier.Text(w.Type),
	}
	if w.Deduced {
		doc = append(doc, typeWitnessDeducedDoc)
	}
	return doc
}

func (w WitnessRecord) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(w.RequirementKind),
		prettier.Space,
		prettier.Text(w.Requirement),
		witnessArrowDoc,
		prettier.Text(w.Witness),
		recordProtocolSeparatorDoc,
		prettier.Text(w.WitnessType),
	}

	if len(w.Substitutions) == 0 {
		return doc
	}

	substitutionDocs := make([]prettier.Doc, len(w.Substitutions))
	for i, substitution := range w.Substitutions {
		substitutionDocs[i] = substitution.Doc()
	}

	return append(
		doc,
		prettier.Group{
			Doc: prettier.Concat{
				witnessSubstitutionsStartDoc,
				prettier.Indent{
					Doc: prettier.Concat{
						prettier.Line{},
						prettier.Join(substitutionSeparatorDoc, substitutionDocs...),
					},
				},
				witnessSubstitutionsEndDoc,
			},
		},
	)
}

func (s SubstitutionRecord) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text(s.Parameter),
		substitutionEqualDoc,
		prettier.Text(s.Replacement),
	}
}

// RecordsDoc returns the document of the given records, separated by empty lines.
func RecordsDoc(records []Record) prettier.Doc {
	docs := make([]prettier.Doc, len(records))
	for i, record := range records {
		docs[i] = record.Doc()
	}
	return prettier.Join(recordSeparatorDoc, docs...)
}

// Prettier returns the text form of the record, broken at the given line width.
func (r Record) Prettier(maxLineWidth int) string {
	var b strings.Builder
	prettier.Prettier(&b, r.Doc(), maxLineWidth, "    ")
	return b.String()
}
