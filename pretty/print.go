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

package pretty

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora/v4"

	"github.com/onflow/cadence-conformance/ast"
	"github.com/onflow/cadence-conformance/common"
	"github.com/onflow/cadence-conformance/errors"
)

// ErrorPrettyPrinter prints errors with an excerpt of the source code
// they refer to.
type ErrorPrettyPrinter struct {
	writer   io.Writer
	useColor bool
}

func NewErrorPrettyPrinter(writer io.Writer, useColor bool) ErrorPrettyPrinter {
	return ErrorPrettyPrinter{
		writer:   writer,
		useColor: useColor,
	}
}

func (p ErrorPrettyPrinter) colorize(message string, color aurora.Color) string {
	if !p.useColor {
		return message
	}
	return aurora.Colorize(message, color).String()
}

// PrettyPrintError prints the given error.
// Child errors of parent errors are printed one after another.
func (p ErrorPrettyPrinter) PrettyPrintError(
	err error,
	location common.Location,
	codes map[common.Location][]byte,
) error {
	if parentError, ok := err.(errors.ParentError); ok {
		for i, childError := range parentError.ChildErrors() {
			if i > 0 {
				if _, err := io.WriteString(p.writer, "\n"); err != nil {
					return err
				}
			}
			err := p.PrettyPrintError(childError, location, codes)
			if err != nil {
				return err
			}
		}
		return nil
	}

	var sb strings.Builder
	p.writeError(&sb, err, location, codes)

	_, writeErr := io.WriteString(p.writer, sb.String())
	return writeErr
}

func (p ErrorPrettyPrinter) writeError(
	sb *strings.Builder,
	err error,
	location common.Location,
	codes map[common.Location][]byte,
) {
	sb.WriteString(p.colorize("error", aurora.RedFg|aurora.BrightFg|aurora.BoldFm))
	sb.WriteString(p.colorize(": "+err.Error(), aurora.BoldFm))
	sb.WriteString("\n")

	var secondaryMessage string
	if secondaryError, ok := err.(errors.SecondaryError); ok {
		secondaryMessage = secondaryError.SecondaryError()
	}

	if hasPosition, ok := err.(ast.HasPosition); ok {
		p.writeExcerpt(
			sb,
			hasPosition.StartPosition(),
			hasPosition.EndPosition(),
			location,
			codes[location],
			secondaryMessage,
		)
	} else if secondaryMessage != "" {
		sb.WriteString("  = ")
		sb.WriteString(secondaryMessage)
		sb.WriteString("\n")
	}

	if errorNotes, ok := err.(errors.ErrorNotes); ok {
		for _, note := range errorNotes.ErrorNotes() {
			sb.WriteString(p.colorize("  = note", aurora.BoldFm))
			sb.WriteString(": ")
			sb.WriteString(note.Message())
			sb.WriteString("\n")
		}
	}

	if hasSuggestedFixes, ok := err.(errors.HasSuggestedFixes[ast.TextEdit]); ok {
		code := string(codes[location])
		for _, fix := range hasSuggestedFixes.SuggestFixes(code) {
			sb.WriteString(p.colorize("  = help", aurora.CyanFg|aurora.BoldFm))
			sb.WriteString(": ")
			sb.WriteString(fix.Message)
			sb.WriteString("\n")
		}
	}

	if hasDocumentationLink, ok := err.(errors.HasDocumentationLink); ok {
		link := hasDocumentationLink.DocumentationLink()
		if link != "" {
			sb.WriteString("  = see: ")
			sb.WriteString(link)
			sb.WriteString("\n")
		}
	}
}

func (p ErrorPrettyPrinter) writeExcerpt(
	sb *strings.Builder,
	startPos ast.Position,
	endPos ast.Position,
	location common.Location,
	code []byte,
	message string,
) {
	sb.WriteString(p.colorize(" --> ", aurora.BlueFg|aurora.BoldFm))
	if location != nil {
		sb.WriteString(location.String())
		sb.WriteString(":")
	}
	sb.WriteString(startPos.String())
	sb.WriteString("\n")

	lines := strings.Split(string(code), "\n")

	lineIndex := startPos.Line - 1
	if code == nil || lineIndex < 0 || lineIndex >= len(lines) {
		return
	}

	line := lines[lineIndex]
	lineNumber := strconv.Itoa(startPos.Line)
	gutter := strings.Repeat(" ", len(lineNumber)+1) + p.colorize("|", aurora.BlueFg|aurora.BoldFm)

	sb.WriteString(gutter)
	sb.WriteString("\n")

	sb.WriteString(p.colorize(lineNumber+" |", aurora.BlueFg|aurora.BoldFm))
	sb.WriteString(" ")
	sb.WriteString(line)
	sb.WriteString("\n")

	runes := []rune(line)

	startColumn := startPos.Column
	if startColumn > len(runes) {
		startColumn = len(runes)
	}

	// Keep tabs, so the indicator lines up with the excerpt
	var indent strings.Builder
	for _, r := range runes[:startColumn] {
		if r == '\t' {
			indent.WriteRune('\t')
		} else {
			indent.WriteRune(' ')
		}
	}

	indicatorLength := 1
	if endPos.Line == startPos.Line && endPos.Column >= startPos.Column {
		indicatorLength = endPos.Column - startPos.Column + 1
	} else if endPos.Line > startPos.Line && len(runes) > startColumn {
		indicatorLength = len(runes) - startColumn
	}

	indicator := strings.Repeat("^", indicatorLength)
	if message != "" {
		indicator = fmt.Sprintf("%s %s", indicator, message)
	}

	sb.WriteString(gutter)
	sb.WriteString(" ")
	sb.WriteString(indent.String())
	sb.WriteString(p.colorize(indicator, aurora.RedFg|aurora.BrightFg|aurora.BoldFm))
	sb.WriteString("\n")
}
