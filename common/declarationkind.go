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
	"github.com/onflow/cadence-conformance/errors"
)

//go:generate stringer -type=DeclarationKind

type DeclarationKind uint8

const (
	DeclarationKindUnknown DeclarationKind = iota
	DeclarationKindProtocol
	DeclarationKindAssociatedType
	DeclarationKindStructure
	DeclarationKindClass
	DeclarationKindEnum
	DeclarationKindExtension
	DeclarationKindFunction
	DeclarationKindProperty
	DeclarationKindSubscript
	DeclarationKindTypeAlias
	DeclarationKindTypeParameter
)

func (k DeclarationKind) IsTypeDeclaration() bool {
	switch k {
	case DeclarationKindProtocol,
		DeclarationKindAssociatedType,
		DeclarationKindStructure,
		DeclarationKindClass,
		DeclarationKindEnum,
		DeclarationKindTypeAlias,
		DeclarationKindTypeParameter:

		return true

	default:
		return false
	}
}

// IsNominalTypeDeclaration returns true for the kinds
// which may declare conformances to protocols.
func (k DeclarationKind) IsNominalTypeDeclaration() bool {
	switch k {
	case DeclarationKindStructure,
		DeclarationKindClass,
		DeclarationKindEnum:

		return true

	default:
		return false
	}
}

func (k DeclarationKind) Name() string {
	switch k {
	case DeclarationKindProtocol:
		return "protocol"
	case DeclarationKindAssociatedType:
		return "associated type"
	case DeclarationKindStructure:
		return "structure"
	case DeclarationKindClass:
		return "class"
	case DeclarationKindEnum:
		return "enum"
	case DeclarationKindExtension:
		return "extension"
	case DeclarationKindFunction:
		return "function"
	case DeclarationKindProperty:
		return "property"
	case DeclarationKindSubscript:
		return "subscript"
	case DeclarationKindTypeAlias:
		return "type alias"
	case DeclarationKindTypeParameter:
		return "type parameter"
	case DeclarationKindUnknown:
		return "unknown"
	}

	panic(errors.NewUnreachableError())
}

func (k DeclarationKind) Keywords() string {
	switch k {
	case DeclarationKindProtocol:
		return "protocol"
	case DeclarationKindAssociatedType:
		return "associatedtype"
	case DeclarationKindStructure:
		return "struct"
	case DeclarationKindClass:
		return "class"
	case DeclarationKindEnum:
		return "enum"
	case DeclarationKindExtension:
		return "extension"
	case DeclarationKindFunction:
		return "func"
	case DeclarationKindProperty:
		return "var"
	case DeclarationKindSubscript:
		return "subscript"
	case DeclarationKindTypeAlias:
		return "typealias"
	}

	return ""
}

func (k DeclarationKind) MarshalText() ([]byte, error) {
	return []byte(k.Name()), nil
}
