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
	"fmt"
	"math/big"

	"github.com/radixtools/transactionlib/address"
	"github.com/radixtools/transactionlib/sbor"
)

// The binary form of an instruction is a list [opcodeTag, operand...]; the
// binary form of a value is a list [kindTag, payload...]. Addresses use
// their raw-byte form, never the human-readable form. Encoding is
// deterministic: the same manifest always produces byte-identical output.

// EncodeInstruction serializes a single instruction to its canonical binary
// form
func EncodeInstruction(instruction Instruction) ([]byte, error) {
	items, err := instructionToBinary(instruction)
	if err != nil {
		return nil, err
	}
	return sbor.Encode(items)
}

func instructionToBinary(instruction Instruction) ([]any, error) {
	items := []any{uint8(instruction.Op())}
	operands, err := instructionOperands(instruction)
	if err != nil {
		return nil, err
	}
	for _, operand := range operands {
		encoded, err := valueToBinary(operand)
		if err != nil {
			return nil, err
		}
		items = append(items, encoded)
	}
	return items, nil
}

// instructionOperands lists an instruction's operand values in their
// canonical order
func instructionOperands(instruction Instruction) ([]Value, error) {
	var operands []Value
	switch i := instruction.(type) {
	case TakeFromWorktop:
		operands = []Value{i.ResourceAddress, i.IntoBucket}
	case TakeFromWorktopByAmount:
		operands = []Value{i.Amount, i.ResourceAddress, i.IntoBucket}
	case ReturnToWorktop:
		operands = []Value{i.Bucket}
	case AssertWorktopContains:
		operands = []Value{i.ResourceAddress}
	case PopFromAuthZone:
		operands = []Value{i.IntoProof}
	case PushToAuthZone:
		operands = []Value{i.Proof}
	case ClearAuthZone, DropAllProofs:
		// No operands
	case CreateProofFromAuthZone:
		operands = []Value{i.ResourceAddress, i.IntoProof}
	case CreateProofFromBucket:
		operands = []Value{i.Bucket, i.IntoProof}
	case CloneProof:
		operands = []Value{i.Proof, i.IntoProof}
	case DropProof:
		operands = []Value{i.Proof}
	case CallFunction:
		operands = []Value{i.PackageAddress, i.BlueprintName, i.FunctionName}
		operands = append(operands, i.Arguments...)
	case CallMethod:
		operands = []Value{i.ComponentAddress, i.MethodName}
		operands = append(operands, i.Arguments...)
	case CallMethodWithAllResources:
		operands = []Value{i.ComponentAddress, i.MethodName}
	case PublishPackage:
		operands = []Value{i.Code, i.Abi}
	default:
		return nil, fmt.Errorf("unknown instruction type: %T", instruction)
	}
	return operands, nil
}

func valueToBinary(value Value) (any, error) {
	kind := uint8(value.ValueKind())
	switch v := value.(type) {
	case BoolValue:
		return []any{kind, v.Value}, nil
	case U8Value:
		return []any{kind, v.Value}, nil
	case U16Value:
		return []any{kind, v.Value}, nil
	case U32Value:
		return []any{kind, v.Value}, nil
	case U64Value:
		return []any{kind, v.Value}, nil
	case I8Value:
		return []any{kind, v.Value}, nil
	case I16Value:
		return []any{kind, v.Value}, nil
	case I32Value:
		return []any{kind, v.Value}, nil
	case I64Value:
		return []any{kind, v.Value}, nil
	case StringValue:
		return []any{kind, v.Value}, nil
	case DecimalValue:
		if v.Value == nil {
			return nil, &MissingRequiredFieldError{
				Type:  "Decimal",
				Field: "value",
			}
		}
		sign := uint8(0)
		if v.Value.Sign() < 0 {
			sign = 1
		}
		return []any{kind, sign, new(big.Int).Abs(v.Value).Bytes()}, nil
	case BytesValue:
		return []any{kind, v.Value}, nil
	case EnumValue:
		fields, err := valuesToBinary(v.Fields)
		if err != nil {
			return nil, err
		}
		return []any{kind, v.Variant, fields}, nil
	case TupleValue:
		elements, err := valuesToBinary(v.Elements)
		if err != nil {
			return nil, err
		}
		return []any{kind, elements}, nil
	case ArrayValue:
		elements, err := valuesToBinary(v.Elements)
		if err != nil {
			return nil, err
		}
		return []any{kind, uint8(v.ElementKind), elements}, nil
	case ResourceAddressValue:
		return []any{kind, v.Address.Bytes()}, nil
	case ComponentAddressValue:
		return []any{kind, v.Address.Bytes()}, nil
	case PackageAddressValue:
		return []any{kind, v.Address.Bytes()}, nil
	case SystemAddressValue:
		return []any{kind, v.Address.Bytes()}, nil
	case BucketValue:
		return []any{kind, v.Identifier}, nil
	case ProofValue:
		return []any{kind, v.Identifier}, nil
	default:
		return nil, fmt.Errorf("unknown value type: %T", value)
	}
}

func valuesToBinary(values []Value) ([]any, error) {
	ret := make([]any, 0, len(values))
	for _, value := range values {
		encoded, err := valueToBinary(value)
		if err != nil {
			return nil, err
		}
		ret = append(ret, encoded)
	}
	return ret, nil
}

// DecodeInstruction deserializes a single instruction from its canonical
// binary form. The network ID gives decoded addresses their human-readable
// form.
func DecodeInstruction(data []byte, networkId uint8) (Instruction, error) {
	var raws []sbor.RawMessage
	if _, err := sbor.Decode(data, &raws); err != nil {
		return nil, err
	}
	if len(raws) < 1 {
		return nil, fmt.Errorf("empty instruction list")
	}
	var tag uint8
	if _, err := sbor.Decode(raws[0], &tag); err != nil {
		return nil, fmt.Errorf("invalid instruction tag: %w", err)
	}
	op := Op(tag)
	if _, ok := opNames[op]; !ok {
		return nil, &UnsupportedInstructionError{
			Op: fmt.Sprintf("tag %d", tag),
		}
	}
	operands, err := decodeBinaryValues(raws[1:], networkId)
	if err != nil {
		return nil, err
	}
	return instructionFromOperands(op, operands)
}

func instructionFromOperands(op Op, operands []Value) (Instruction, error) {
	switch op {
	case OpTakeFromWorktop:
		var i TakeFromWorktop
		err := assignOperands(op, operands, &i.ResourceAddress, &i.IntoBucket)
		return i, err
	case OpTakeFromWorktopByAmount:
		var i TakeFromWorktopByAmount
		err := assignOperands(
			op,
			operands,
			&i.Amount,
			&i.ResourceAddress,
			&i.IntoBucket,
		)
		return i, err
	case OpReturnToWorktop:
		var i ReturnToWorktop
		err := assignOperands(op, operands, &i.Bucket)
		return i, err
	case OpAssertWorktopContains:
		var i AssertWorktopContains
		err := assignOperands(op, operands, &i.ResourceAddress)
		return i, err
	case OpPopFromAuthZone:
		var i PopFromAuthZone
		err := assignOperands(op, operands, &i.IntoProof)
		return i, err
	case OpPushToAuthZone:
		var i PushToAuthZone
		err := assignOperands(op, operands, &i.Proof)
		return i, err
	case OpClearAuthZone:
		return ClearAuthZone{}, expectOperandCount(op, operands, 0)
	case OpCreateProofFromAuthZone:
		var i CreateProofFromAuthZone
		err := assignOperands(op, operands, &i.ResourceAddress, &i.IntoProof)
		return i, err
	case OpCreateProofFromBucket:
		var i CreateProofFromBucket
		err := assignOperands(op, operands, &i.Bucket, &i.IntoProof)
		return i, err
	case OpCloneProof:
		var i CloneProof
		err := assignOperands(op, operands, &i.Proof, &i.IntoProof)
		return i, err
	case OpDropProof:
		var i DropProof
		err := assignOperands(op, operands, &i.Proof)
		return i, err
	case OpDropAllProofs:
		return DropAllProofs{}, expectOperandCount(op, operands, 0)
	case OpCallFunction:
		var i CallFunction
		if len(operands) < 3 {
			return nil, operandCountError(op, operands, 3)
		}
		if err := assignOperands(
			op,
			operands[:3],
			&i.PackageAddress,
			&i.BlueprintName,
			&i.FunctionName,
		); err != nil {
			return nil, err
		}
		if len(operands) > 3 {
			i.Arguments = operands[3:]
		}
		return i, nil
	case OpCallMethod:
		var i CallMethod
		if len(operands) < 2 {
			return nil, operandCountError(op, operands, 2)
		}
		if err := assignOperands(
			op,
			operands[:2],
			&i.ComponentAddress,
			&i.MethodName,
		); err != nil {
			return nil, err
		}
		if len(operands) > 2 {
			i.Arguments = operands[2:]
		}
		return i, nil
	case OpCallMethodWithAllResources:
		var i CallMethodWithAllResources
		err := assignOperands(op, operands, &i.ComponentAddress, &i.MethodName)
		return i, err
	case OpPublishPackage:
		var i PublishPackage
		err := assignOperands(op, operands, &i.Code, &i.Abi)
		return i, err
	default:
		return nil, &UnsupportedInstructionError{Op: op.String()}
	}
}

func assignOperands(op Op, operands []Value, dests ...any) error {
	if err := expectOperandCount(op, operands, len(dests)); err != nil {
		return err
	}
	for idx, dest := range dests {
		if err := assignOperand(dest, operands[idx]); err != nil {
			return err
		}
	}
	return nil
}

func expectOperandCount(op Op, operands []Value, expected int) error {
	if len(operands) != expected {
		return operandCountError(op, operands, expected)
	}
	return nil
}

func operandCountError(op Op, operands []Value, expected int) error {
	return fmt.Errorf(
		"%s expects %d operands, found %d",
		op,
		expected,
		len(operands),
	)
}

func decodeBinaryValues(
	raws []sbor.RawMessage,
	networkId uint8,
) ([]Value, error) {
	var ret []Value
	for _, raw := range raws {
		value, err := valueFromBinary(raw, networkId)
		if err != nil {
			return nil, err
		}
		ret = append(ret, value)
	}
	return ret, nil
}

func valueFromBinary(raw sbor.RawMessage, networkId uint8) (Value, error) {
	tag, err := sbor.DecodeIdFromList(raw)
	if err != nil {
		return nil, err
	}
	kind := ValueKind(tag)
	switch kind {
	case ValueKindBool:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value bool
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return BoolValue{Value: tmp.Value}, nil
	case ValueKindU8:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value uint8
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return U8Value{Value: tmp.Value}, nil
	case ValueKindU16:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value uint16
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return U16Value{Value: tmp.Value}, nil
	case ValueKindU32:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value uint32
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return U32Value{Value: tmp.Value}, nil
	case ValueKindU64:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value uint64
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return U64Value{Value: tmp.Value}, nil
	case ValueKindI8:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value int8
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return I8Value{Value: tmp.Value}, nil
	case ValueKindI16:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value int16
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return I16Value{Value: tmp.Value}, nil
	case ValueKindI32:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value int32
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return I32Value{Value: tmp.Value}, nil
	case ValueKindI64:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value int64
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return I64Value{Value: tmp.Value}, nil
	case ValueKindString:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value string
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return StringValue{Value: tmp.Value}, nil
	case ValueKindDecimal:
		var tmp struct {
			sbor.StructAsArray
			Kind      uint8
			Sign      uint8
			Magnitude []byte
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		value := new(big.Int).SetBytes(tmp.Magnitude)
		if tmp.Sign != 0 {
			value.Neg(value)
		}
		return DecimalValue{Value: value}, nil
	case ValueKindBytes:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Value []byte
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		return BytesValue{Value: tmp.Value}, nil
	case ValueKindEnum:
		var tmp struct {
			sbor.StructAsArray
			Kind    uint8
			Variant uint8
			Fields  []sbor.RawMessage
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		fields, err := decodeBinaryValues(tmp.Fields, networkId)
		if err != nil {
			return nil, err
		}
		return EnumValue{Variant: tmp.Variant, Fields: fields}, nil
	case ValueKindTuple:
		var tmp struct {
			sbor.StructAsArray
			Kind     uint8
			Elements []sbor.RawMessage
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		elements, err := decodeBinaryValues(tmp.Elements, networkId)
		if err != nil {
			return nil, err
		}
		return TupleValue{Elements: elements}, nil
	case ValueKindArray:
		var tmp struct {
			sbor.StructAsArray
			Kind        uint8
			ElementKind uint8
			Elements    []sbor.RawMessage
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		elements, err := decodeBinaryValues(tmp.Elements, networkId)
		if err != nil {
			return nil, err
		}
		ret := ArrayValue{
			ElementKind: ValueKind(tmp.ElementKind),
			Elements:    elements,
		}
		if err := ret.Validate(); err != nil {
			return nil, err
		}
		return ret, nil
	case ValueKindResourceAddress, ValueKindComponentAddress,
		ValueKindPackageAddress, ValueKindSystemAddress:
		var tmp struct {
			sbor.StructAsArray
			Kind  uint8
			Bytes []byte
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		addr, err := address.NewAddressFromBytes(networkId, tmp.Bytes)
		if err != nil {
			return nil, err
		}
		switch kind {
		case ValueKindResourceAddress:
			return ResourceAddressValue{Address: addr}, nil
		case ValueKindComponentAddress:
			return ComponentAddressValue{Address: addr}, nil
		case ValueKindPackageAddress:
			return PackageAddressValue{Address: addr}, nil
		default:
			return SystemAddressValue{Address: addr}, nil
		}
	case ValueKindBucket, ValueKindProof:
		var tmp struct {
			sbor.StructAsArray
			Kind       uint8
			Identifier string
		}
		if _, err := sbor.Decode(raw, &tmp); err != nil {
			return nil, err
		}
		if kind == ValueKindBucket {
			return BucketValue{Identifier: tmp.Identifier}, nil
		}
		return ProofValue{Identifier: tmp.Identifier}, nil
	default:
		return nil, fmt.Errorf("unknown value kind tag: %d", tag)
	}
}
