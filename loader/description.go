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
	yamlast "github.com/goccy/go-yaml/ast"
)

// programDescription is the YAML description of a program.
// Names and type expressions are kept as nodes,
// so diagnostics can refer to their position.
type programDescription struct {
	Module     string                 `yaml:"module"`
	Protocols  []protocolDescription  `yaml:"protocols"`
	Types      []typeDescription      `yaml:"types"`
	Extensions []extensionDescription `yaml:"extensions"`
	Functions  []memberDescription    `yaml:"functions"`
	Checks     []checkDescription     `yaml:"checks"`
}

type protocolDescription struct {
	Name            yamlast.Node                `yaml:"name"`
	Inherits        []yamlast.Node              `yaml:"inherits"`
	ClassOnly       bool                        `yaml:"classOnly"`
	PositionalNames bool                        `yaml:"positionalNames"`
	AssociatedTypes []associatedTypeDescription `yaml:"associatedTypes"`
	Requirements    []memberDescription         `yaml:"requirements"`
}

type associatedTypeDescription struct {
	Name       yamlast.Node   `yaml:"name"`
	ConformsTo []yamlast.Node `yaml:"conformsTo"`
}

type genericParameterDescription struct {
	Name       yamlast.Node   `yaml:"name"`
	ConformsTo []yamlast.Node `yaml:"conformsTo"`
}

type typeDescription struct {
	Name              yamlast.Node                  `yaml:"name"`
	Kind              string                        `yaml:"kind"`
	GenericParameters []genericParameterDescription `yaml:"genericParameters"`
	Superclass        yamlast.Node                  `yaml:"superclass"`
	ConformsTo        []yamlast.Node                `yaml:"conformsTo"`
	Members           []memberDescription           `yaml:"members"`
	TypeAliases       []typeAliasDescription        `yaml:"typeAliases"`
	Types             []typeDescription             `yaml:"types"`
}

type extensionDescription struct {
	Extends     yamlast.Node           `yaml:"extends"`
	ConformsTo  []yamlast.Node         `yaml:"conformsTo"`
	Members     []memberDescription    `yaml:"members"`
	TypeAliases []typeAliasDescription `yaml:"typeAliases"`
}

type typeAliasDescription struct {
	Name yamlast.Node `yaml:"name"`
	Type yamlast.Node `yaml:"type"`
}

// memberDescription describes a function, a property, or a subscript.
// Exactly one of Function, Property, and Subscript must be set.
type memberDescription struct {
	Function          yamlast.Node                  `yaml:"function"`
	Property          yamlast.Node                  `yaml:"property"`
	Subscript         bool                          `yaml:"subscript"`
	Type              yamlast.Node                  `yaml:"type"`
	Static            bool                          `yaml:"static"`
	Prefix            bool                          `yaml:"prefix"`
	Postfix           bool                          `yaml:"postfix"`
	Invalid           bool                          `yaml:"invalid"`
	GenericParameters []genericParameterDescription `yaml:"genericParameters"`
}

type checkDescription struct {
	Type     yamlast.Node `yaml:"type"`
	Protocol yamlast.Node `yaml:"protocol"`
}
