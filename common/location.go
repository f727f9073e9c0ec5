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
	"encoding/json"
	"strings"
)

// LocationID is the canonical identifier of a location.
type LocationID string

// TypeID is the canonical identifier of a type.
// Structurally equal types have equal type IDs.
type TypeID string

// Location describes the origin of declarations,
// for example a module file.
type Location interface {
	ID() LocationID
	TypeID(qualifiedIdentifier string) TypeID
	QualifiedIdentifier(typeID TypeID) string
	String() string
}

const StringLocationPrefix = "S"

// StringLocation
type StringLocation string

var _ Location = StringLocation("")

func (l StringLocation) ID() LocationID {
	return LocationID(StringLocationPrefix + "." + string(l))
}

func (l StringLocation) TypeID(qualifiedIdentifier string) TypeID {
	var builder strings.Builder
	builder.WriteString(StringLocationPrefix)
	builder.WriteByte('.')
	builder.WriteString(string(l))
	builder.WriteByte('.')
	builder.WriteString(qualifiedIdentifier)
	return TypeID(builder.String())
}

func (l StringLocation) QualifiedIdentifier(typeID TypeID) string {
	pieces := strings.SplitN(string(typeID), ".", 3)

	if len(pieces) < 3 {
		return ""
	}

	return pieces[2]
}

func (l StringLocation) String() string {
	return string(l)
}

func (l StringLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type   string
		String string
	}{
		Type:   "StringLocation",
		String: string(l),
	})
}
