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
	"encoding/json"
	"fmt"
)

func instructionToJson(instruction Instruction) any {
	op := instruction.Op().String()
	switch i := instruction.(type) {
	case TakeFromWorktop:
		return struct {
			Instruction     string `json:"instruction"`
			ResourceAddress any    `json:"resource_address"`
			IntoBucket      any    `json:"into_bucket"`
		}{op, valueToJson(i.ResourceAddress), valueToJson(i.IntoBucket)}
	case TakeFromWorktopByAmount:
		return struct {
			Instruction     string `json:"instruction"`
			Amount          any    `json:"amount"`
			ResourceAddress any    `json:"resource_address"`
			IntoBucket      any    `json:"into_bucket"`
		}{
			op,
			valueToJson(i.Amount),
			valueToJson(i.ResourceAddress),
			valueToJson(i.IntoBucket),
		}
	case ReturnToWorktop:
		return struct {
			Instruction string `json:"instruction"`
			Bucket      any    `json:"bucket"`
		}{op, valueToJson(i.Bucket)}
	case AssertWorktopContains:
		return struct {
			Instruction     string `json:"instruction"`
			ResourceAddress any    `json:"resource_address"`
		}{op, valueToJson(i.ResourceAddress)}
	case PopFromAuthZone:
		return struct {
			Instruction string `json:"instruction"`
			IntoProof   any    `json:"into_proof"`
		}{op, valueToJson(i.IntoProof)}
	case PushToAuthZone:
		return struct {
			Instruction string `json:"instruction"`
			Proof       any    `json:"proof"`
		}{op, valueToJson(i.Proof)}
	case ClearAuthZone:
		return struct {
			Instruction string `json:"instruction"`
		}{op}
	case CreateProofFromAuthZone:
		return struct {
			Instruction     string `json:"instruction"`
			ResourceAddress any    `json:"resource_address"`
			IntoProof       any    `json:"into_proof"`
		}{op, valueToJson(i.ResourceAddress), valueToJson(i.IntoProof)}
	case CreateProofFromBucket:
		return struct {
			Instruction string `json:"instruction"`
			Bucket      any    `json:"bucket"`
			IntoProof   any    `json:"into_proof"`
		}{op, valueToJson(i.Bucket), valueToJson(i.IntoProof)}
	case CloneProof:
		return struct {
			Instruction string `json:"instruction"`
			Proof       any    `json:"proof"`
			IntoProof   any    `json:"into_proof"`
		}{op, valueToJson(i.Proof), valueToJson(i.IntoProof)}
	case DropProof:
		return struct {
			Instruction string `json:"instruction"`
			Proof       any    `json:"proof"`
		}{op, valueToJson(i.Proof)}
	case DropAllProofs:
		return struct {
			Instruction string `json:"instruction"`
		}{op}
	case CallFunction:
		return struct {
			Instruction    string `json:"instruction"`
			PackageAddress any    `json:"package_address"`
			BlueprintName  any    `json:"blueprint_name"`
			FunctionName   any    `json:"function_name"`
			Arguments      []any  `json:"arguments,omitempty"`
		}{
			op,
			valueToJson(i.PackageAddress),
			valueToJson(i.BlueprintName),
			valueToJson(i.FunctionName),
			valuesToJson(i.Arguments),
		}
	case CallMethod:
		return struct {
			Instruction      string `json:"instruction"`
			ComponentAddress any    `json:"component_address"`
			MethodName       any    `json:"method_name"`
			Arguments        []any  `json:"arguments,omitempty"`
		}{
			op,
			valueToJson(i.ComponentAddress),
			valueToJson(i.MethodName),
			valuesToJson(i.Arguments),
		}
	case CallMethodWithAllResources:
		return struct {
			Instruction      string `json:"instruction"`
			ComponentAddress any    `json:"component_address"`
			MethodName       any    `json:"method_name"`
		}{op, valueToJson(i.ComponentAddress), valueToJson(i.MethodName)}
	case PublishPackage:
		return struct {
			Instruction string `json:"instruction"`
			Code        any    `json:"code"`
			Abi         any    `json:"abi"`
		}{op, valueToJson(i.Code), valueToJson(i.Abi)}
	default:
		return nil
	}
}

func unmarshalInstructionJson(data []byte) (Instruction, error) {
	var header struct {
		Instruction *string `json:"instruction"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, err
	}
	if header.Instruction == nil {
		return nil, &MissingRequiredFieldError{
			Type:  "Instruction",
			Field: "instruction",
		}
	}
	op, err := OpFromName(*header.Instruction)
	if err != nil {
		return nil, err
	}
	var fields struct {
		Amount           json.RawMessage   `json:"amount"`
		ResourceAddress  json.RawMessage   `json:"resource_address"`
		ComponentAddress json.RawMessage   `json:"component_address"`
		PackageAddress   json.RawMessage   `json:"package_address"`
		Bucket           json.RawMessage   `json:"bucket"`
		IntoBucket       json.RawMessage   `json:"into_bucket"`
		Proof            json.RawMessage   `json:"proof"`
		IntoProof        json.RawMessage   `json:"into_proof"`
		BlueprintName    json.RawMessage   `json:"blueprint_name"`
		FunctionName     json.RawMessage   `json:"function_name"`
		MethodName       json.RawMessage   `json:"method_name"`
		Code             json.RawMessage   `json:"code"`
		Abi              json.RawMessage   `json:"abi"`
		Arguments        []json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	opName := op.String()
	switch op {
	case OpTakeFromWorktop:
		var i TakeFromWorktop
		if err := assignJsonOperand(opName, "resource_address", fields.ResourceAddress, &i.ResourceAddress); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "into_bucket", fields.IntoBucket, &i.IntoBucket); err != nil {
			return nil, err
		}
		return i, nil
	case OpTakeFromWorktopByAmount:
		var i TakeFromWorktopByAmount
		if err := assignJsonOperand(opName, "amount", fields.Amount, &i.Amount); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "resource_address", fields.ResourceAddress, &i.ResourceAddress); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "into_bucket", fields.IntoBucket, &i.IntoBucket); err != nil {
			return nil, err
		}
		return i, nil
	case OpReturnToWorktop:
		var i ReturnToWorktop
		if err := assignJsonOperand(opName, "bucket", fields.Bucket, &i.Bucket); err != nil {
			return nil, err
		}
		return i, nil
	case OpAssertWorktopContains:
		var i AssertWorktopContains
		if err := assignJsonOperand(opName, "resource_address", fields.ResourceAddress, &i.ResourceAddress); err != nil {
			return nil, err
		}
		return i, nil
	case OpPopFromAuthZone:
		var i PopFromAuthZone
		if err := assignJsonOperand(opName, "into_proof", fields.IntoProof, &i.IntoProof); err != nil {
			return nil, err
		}
		return i, nil
	case OpPushToAuthZone:
		var i PushToAuthZone
		if err := assignJsonOperand(opName, "proof", fields.Proof, &i.Proof); err != nil {
			return nil, err
		}
		return i, nil
	case OpClearAuthZone:
		return ClearAuthZone{}, nil
	case OpCreateProofFromAuthZone:
		var i CreateProofFromAuthZone
		if err := assignJsonOperand(opName, "resource_address", fields.ResourceAddress, &i.ResourceAddress); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "into_proof", fields.IntoProof, &i.IntoProof); err != nil {
			return nil, err
		}
		return i, nil
	case OpCreateProofFromBucket:
		var i CreateProofFromBucket
		if err := assignJsonOperand(opName, "bucket", fields.Bucket, &i.Bucket); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "into_proof", fields.IntoProof, &i.IntoProof); err != nil {
			return nil, err
		}
		return i, nil
	case OpCloneProof:
		var i CloneProof
		if err := assignJsonOperand(opName, "proof", fields.Proof, &i.Proof); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "into_proof", fields.IntoProof, &i.IntoProof); err != nil {
			return nil, err
		}
		return i, nil
	case OpDropProof:
		var i DropProof
		if err := assignJsonOperand(opName, "proof", fields.Proof, &i.Proof); err != nil {
			return nil, err
		}
		return i, nil
	case OpDropAllProofs:
		return DropAllProofs{}, nil
	case OpCallFunction:
		var i CallFunction
		if err := assignJsonOperand(opName, "package_address", fields.PackageAddress, &i.PackageAddress); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "blueprint_name", fields.BlueprintName, &i.BlueprintName); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "function_name", fields.FunctionName, &i.FunctionName); err != nil {
			return nil, err
		}
		args, err := unmarshalJsonValues(fields.Arguments)
		if err != nil {
			return nil, err
		}
		i.Arguments = args
		return i, nil
	case OpCallMethod:
		var i CallMethod
		if err := assignJsonOperand(opName, "component_address", fields.ComponentAddress, &i.ComponentAddress); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "method_name", fields.MethodName, &i.MethodName); err != nil {
			return nil, err
		}
		args, err := unmarshalJsonValues(fields.Arguments)
		if err != nil {
			return nil, err
		}
		i.Arguments = args
		return i, nil
	case OpCallMethodWithAllResources:
		var i CallMethodWithAllResources
		if err := assignJsonOperand(opName, "component_address", fields.ComponentAddress, &i.ComponentAddress); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "method_name", fields.MethodName, &i.MethodName); err != nil {
			return nil, err
		}
		return i, nil
	case OpPublishPackage:
		var i PublishPackage
		if err := assignJsonOperand(opName, "code", fields.Code, &i.Code); err != nil {
			return nil, err
		}
		if err := assignJsonOperand(opName, "abi", fields.Abi, &i.Abi); err != nil {
			return nil, err
		}
		return i, nil
	default:
		return nil, &UnsupportedInstructionError{Op: opName}
	}
}

// assignJsonOperand decodes a single operand value and assigns it to the
// typed destination, failing if the field is absent or of the wrong kind
func assignJsonOperand(
	instructionType string,
	field string,
	raw json.RawMessage,
	dest any,
) error {
	if raw == nil {
		return &MissingRequiredFieldError{
			Type:  instructionType,
			Field: field,
		}
	}
	value, err := UnmarshalValueJSON(raw)
	if err != nil {
		return err
	}
	if err := assignOperand(dest, value); err != nil {
		return fmt.Errorf("%s field %q: %w", instructionType, field, err)
	}
	return nil
}
