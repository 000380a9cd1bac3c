// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manifest

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// String renders the manifest in canonical textual form. Parsing the result
// yields an identical manifest.
func (m *Manifest) String() string {
	var sb strings.Builder
	for _, instruction := range m.Instructions {
		sb.WriteString(renderInstruction(instruction))
		sb.WriteString(";\n")
	}
	return sb.String()
}

func renderInstruction(instruction Instruction) string {
	parts := []string{instruction.Op().String()}
	switch i := instruction.(type) {
	case TakeFromWorktop:
		parts = append(parts, renderValue(i.ResourceAddress), renderValue(i.IntoBucket))
	case TakeFromWorktopByAmount:
		parts = append(
			parts,
			renderValue(i.Amount),
			renderValue(i.ResourceAddress),
			renderValue(i.IntoBucket),
		)
	case ReturnToWorktop:
		parts = append(parts, renderValue(i.Bucket))
	case AssertWorktopContains:
		parts = append(parts, renderValue(i.ResourceAddress))
	case PopFromAuthZone:
		parts = append(parts, renderValue(i.IntoProof))
	case PushToAuthZone:
		parts = append(parts, renderValue(i.Proof))
	case ClearAuthZone, DropAllProofs:
		// No operands
	case CreateProofFromAuthZone:
		parts = append(parts, renderValue(i.ResourceAddress), renderValue(i.IntoProof))
	case CreateProofFromBucket:
		parts = append(parts, renderValue(i.Bucket), renderValue(i.IntoProof))
	case CloneProof:
		parts = append(parts, renderValue(i.Proof), renderValue(i.IntoProof))
	case DropProof:
		parts = append(parts, renderValue(i.Proof))
	case CallFunction:
		parts = append(
			parts,
			renderValue(i.PackageAddress),
			renderValue(i.BlueprintName),
			renderValue(i.FunctionName),
		)
		for _, arg := range i.Arguments {
			parts = append(parts, renderValue(arg))
		}
	case CallMethod:
		parts = append(
			parts,
			renderValue(i.ComponentAddress),
			renderValue(i.MethodName),
		)
		for _, arg := range i.Arguments {
			parts = append(parts, renderValue(arg))
		}
	case CallMethodWithAllResources:
		parts = append(
			parts,
			renderValue(i.ComponentAddress),
			renderValue(i.MethodName),
		)
	case PublishPackage:
		parts = append(parts, renderValue(i.Code), renderValue(i.Abi))
	}
	return strings.Join(parts, " ")
}

func renderValue(value Value) string {
	switch v := value.(type) {
	case BoolValue:
		if v.Value {
			return "true"
		}
		return "false"
	case U8Value:
		return fmt.Sprintf("%du8", v.Value)
	case U16Value:
		return fmt.Sprintf("%du16", v.Value)
	case U32Value:
		return fmt.Sprintf("%du32", v.Value)
	case U64Value:
		return fmt.Sprintf("%du64", v.Value)
	case I8Value:
		return fmt.Sprintf("%di8", v.Value)
	case I16Value:
		return fmt.Sprintf("%di16", v.Value)
	case I32Value:
		return fmt.Sprintf("%di32", v.Value)
	case I64Value:
		return fmt.Sprintf("%di64", v.Value)
	case StringValue:
		return renderString(v.Value)
	case DecimalValue:
		return fmt.Sprintf("Decimal(%s)", renderString(v.String()))
	case BytesValue:
		return fmt.Sprintf(
			"Bytes(%s)",
			renderString(hex.EncodeToString(v.Value)),
		)
	case EnumValue:
		parts := []string{fmt.Sprintf("%du8", v.Variant)}
		for _, field := range v.Fields {
			parts = append(parts, renderValue(field))
		}
		return fmt.Sprintf("Enum(%s)", strings.Join(parts, ", "))
	case TupleValue:
		return fmt.Sprintf("Tuple(%s)", renderValueList(v.Elements))
	case ArrayValue:
		return fmt.Sprintf(
			"Array<%s>(%s)",
			v.ElementKind,
			renderValueList(v.Elements),
		)
	case ResourceAddressValue:
		return fmt.Sprintf("ResourceAddress(%s)", renderString(v.Address.String()))
	case ComponentAddressValue:
		return fmt.Sprintf("ComponentAddress(%s)", renderString(v.Address.String()))
	case PackageAddressValue:
		return fmt.Sprintf("PackageAddress(%s)", renderString(v.Address.String()))
	case SystemAddressValue:
		return fmt.Sprintf("SystemAddress(%s)", renderString(v.Address.String()))
	case BucketValue:
		return fmt.Sprintf("Bucket(%s)", renderString(v.Identifier))
	case ProofValue:
		return fmt.Sprintf("Proof(%s)", renderString(v.Identifier))
	default:
		return fmt.Sprintf("<%T>", value)
	}
}

func renderValueList(values []Value) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, renderValue(value))
	}
	return strings.Join(parts, ", ")
}

func renderString(s string) string {
	escaped := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\t", "\\t",
		"\r", "\\r",
	).Replace(s)
	return `"` + escaped + `"`
}
