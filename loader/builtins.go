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

package loader

import (
	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/sema"
)

// BuiltinLocation is the location of the builtin types.
const BuiltinLocation = common.StringLocation("builtin")

var builtinTypeNames = []string{
	"Int",
	"Bool",
	"String",
	"Double",
	"Void",
}

// newBuiltins returns a new module with the builtin types.
// Builtin types may be extended by programs, so each program gets its own.
func newBuiltins() *sema.Module {
	module := &sema.Module{
		Location: BuiltinLocation,
	}

	for _, name := range builtinTypeNames {
		module.Types = append(
			module.Types,
			&sema.NominalTypeDecl{
				Identifier: name,
				Kind:       common.DeclarationKindStructure,
				Location:   BuiltinLocation,
			},
		)
	}

	return module
}
