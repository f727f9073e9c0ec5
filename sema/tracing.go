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

	"go.opentelemetry.io/otel/attribute"
)

const (
	tracingResolvePostfix         = "conformance.resolve"
	tracingCheckPostfix           = "conformance.check"
	tracingSpecializePostfix      = "conformance.specialize"
	tracingMatchWitnessPostfix    = "witness.match"
	tracingSelfConformancePostfix = "existential.selfConformance"
)

func (c *ConformanceChecker) reportConformanceTrace(
	operationName string,
	ty Type,
	protocol *ProtocolDecl,
	conforms bool,
	duration time.Duration,
) {
	c.config.OnRecordTrace(
		c,
		operationName,
		duration,
		[]attribute.KeyValue{
			attribute.String("Type", ty.String()),
			attribute.String("Protocol", protocol.Identifier),
			attribute.Bool("Conforms", conforms),
		},
	)
}

func (c *ConformanceChecker) reportMatchWitnessTrace(
	requirement ValueDecl,
	kind MatchKind,
	duration time.Duration,
) {
	c.config.OnRecordTrace(
		c,
		tracingMatchWitnessPostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("Requirement", requirement.DeclarationIdentifier()),
			attribute.String("Match kind", kind.String()),
		},
	)
}

func (c *ConformanceChecker) reportSpecializeTrace(
	ty Type,
	substitutionCount int,
	duration time.Duration,
) {
	c.config.OnRecordTrace(
		c,
		tracingSpecializePostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("Type", ty.String()),
			attribute.Int("Substitution count", substitutionCount),
		},
	)
}

func (c *ConformanceChecker) reportSelfConformanceTrace(
	protocol *ProtocolDecl,
	conforms bool,
	duration time.Duration,
) {
	c.config.OnRecordTrace(
		c,
		tracingSelfConformancePostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("Protocol", protocol.Identifier),
			attribute.Bool("Conforms", conforms),
		},
	)
}
