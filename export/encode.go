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
	"encoding/json"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/pretty"
	"github.com/turbolent/prettier"

	"github.com/onflow/cadence-conformance/errors"
)

// Format

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

var Formats = []Format{
	FormatText,
	FormatJSON,
	FormatYAML,
	FormatCBOR,
}

// UnsupportedFormatError

type UnsupportedFormatError struct {
	Format string
}

var _ errors.UserError = UnsupportedFormatError{}

func (UnsupportedFormatError) IsUserError() {}

func (e UnsupportedFormatError) Error() string {
	return "unsupported format: " + e.Format
}

func ParseFormat(name string) (Format, error) {
	for _, format := range Formats {
		if string(format) == name {
			return format, nil
		}
	}
	return "", UnsupportedFormatError{Format: name}
}

const DefaultMaxLineWidth = 80

type Options struct {
	Format Format
	// MaxLineWidth is the line width of the text and JSON formats.
	// If zero, DefaultMaxLineWidth is used
	MaxLineWidth int
	// Color highlights the JSON format for terminals
	Color bool
}

// Encode writes the records in the requested format.
func Encode(w io.Writer, records []Record, options Options) error {
	maxLineWidth := options.MaxLineWidth
	if maxLineWidth <= 0 {
		maxLineWidth = DefaultMaxLineWidth
	}

	// Empty record lists are encoded as empty lists, not as null
	if records == nil {
		records = []Record{}
	}

	var data []byte
	var err error

	switch options.Format {
	case FormatText, "":
		prettier.Prettier(w, RecordsDoc(records), maxLineWidth, "    ")
		_, err = io.WriteString(w, "\n")
		return err

	case FormatJSON:
		data, err = EncodeJSON(records, maxLineWidth)
		if err == nil && options.Color {
			data = pretty.Color(data, pretty.TerminalStyle)
		}

	case FormatYAML:
		data, err = EncodeYAML(records)

	case FormatCBOR:
		data, err = EncodeCBOR(records)

	default:
		return UnsupportedFormatError{Format: string(options.Format)}
	}

	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// EncodeJSON returns the indented JSON encoding of the records.
// Short arrays and objects are kept on one line.
func EncodeJSON(records []Record, maxLineWidth int) ([]byte, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, errors.NewUnexpectedErrorFromCause(err)
	}
	return pretty.PrettyOptions(
		data,
		&pretty.Options{
			Width:  maxLineWidth,
			Indent: "  ",
		},
	), nil
}

func EncodeYAML(records []Record) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(records, yaml.Indent(2))
	if err != nil {
		return nil, errors.NewUnexpectedErrorFromCause(err)
	}
	return data, nil
}

var cborEncMode = func() cbor.EncMode {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

// EncodeCBOR returns the canonical CBOR encoding of the records.
func EncodeCBOR(records []Record) ([]byte, error) {
	data, err := cborEncMode.Marshal(records)
	if err != nil {
		return nil, errors.NewUnexpectedErrorFromCause(err)
	}
	return data, nil
}

// DecodeCBOR decodes records encoded by EncodeCBOR.
func DecodeCBOR(data []byte) ([]Record, error) {
	var records []Record
	err := cbor.Unmarshal(data, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}
