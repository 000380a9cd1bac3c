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
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/radixtools/transactionlib/address"
)

// The JSON form is a tagged union: every value carries a "type" field and
// every instruction carries an "instruction" field. Numeric values are JSON
// strings to avoid precision loss in consumers.

// MarshalValueJSON serializes a single manifest value
func MarshalValueJSON(value Value) ([]byte, error) {
	return json.Marshal(valueToJson(value))
}

func valueToJson(value Value) any {
	kind := value.ValueKind().String()
	switch v := value.(type) {
	case BoolValue:
		return struct {
			Type  string `json:"type"`
			Value bool   `json:"value"`
		}{kind, v.Value}
	case U8Value:
		return jsonStringValue(kind, strconv.FormatUint(uint64(v.Value), 10))
	case U16Value:
		return jsonStringValue(kind, strconv.FormatUint(uint64(v.Value), 10))
	case U32Value:
		return jsonStringValue(kind, strconv.FormatUint(uint64(v.Value), 10))
	case U64Value:
		return jsonStringValue(kind, strconv.FormatUint(v.Value, 10))
	case I8Value:
		return jsonStringValue(kind, strconv.FormatInt(int64(v.Value), 10))
	case I16Value:
		return jsonStringValue(kind, strconv.FormatInt(int64(v.Value), 10))
	case I32Value:
		return jsonStringValue(kind, strconv.FormatInt(int64(v.Value), 10))
	case I64Value:
		return jsonStringValue(kind, strconv.FormatInt(v.Value, 10))
	case StringValue:
		return jsonStringValue(kind, v.Value)
	case DecimalValue:
		return jsonStringValue(kind, v.String())
	case BytesValue:
		return jsonStringValue(kind, hex.EncodeToString(v.Value))
	case EnumValue:
		fields := make([]any, 0, len(v.Fields))
		for _, field := range v.Fields {
			fields = append(fields, valueToJson(field))
		}
		return struct {
			Type    string `json:"type"`
			Variant uint8  `json:"variant"`
			Fields  []any  `json:"fields,omitempty"`
		}{kind, v.Variant, fields}
	case TupleValue:
		return struct {
			Type     string `json:"type"`
			Elements []any  `json:"elements"`
		}{kind, valuesToJson(v.Elements)}
	case ArrayValue:
		return struct {
			Type        string `json:"type"`
			ElementType string `json:"element_type"`
			Elements    []any  `json:"elements"`
		}{kind, v.ElementKind.String(), valuesToJson(v.Elements)}
	case ResourceAddressValue:
		return jsonAddressValue(kind, v.Address)
	case ComponentAddressValue:
		return jsonAddressValue(kind, v.Address)
	case PackageAddressValue:
		return jsonAddressValue(kind, v.Address)
	case SystemAddressValue:
		return jsonAddressValue(kind, v.Address)
	case BucketValue:
		return struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		}{kind, v.Identifier}
	case ProofValue:
		return struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		}{kind, v.Identifier}
	default:
		return nil
	}
}

func valuesToJson(values []Value) []any {
	ret := make([]any, 0, len(values))
	for _, value := range values {
		ret = append(ret, valueToJson(value))
	}
	return ret
}

func jsonStringValue(kind string, value string) any {
	return struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{kind, value}
}

func jsonAddressValue(kind string, addr address.Address) any {
	return struct {
		Type    string `json:"type"`
		Address string `json:"address"`
	}{kind, addr.String()}
}

// UnmarshalValueJSON deserializes a single manifest value
func UnmarshalValueJSON(data []byte) (Value, error) {
	var header struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, err
	}
	if header.Type == nil {
		return nil, &MissingRequiredFieldError{Type: "Value", Field: "type"}
	}
	kind, err := ValueKindFromName(*header.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ValueKindBool:
		var tmp struct {
			Value *bool `json:"value"`
		}
		if err := json.Unmarshal(data, &tmp); err != nil {
			return nil, err
		}
		if tmp.Value == nil {
			return nil, &MissingRequiredFieldError{Type: "Bool", Field: "value"}
		}
		return BoolValue{Value: *tmp.Value}, nil
	case ValueKindU8, ValueKindU16, ValueKindU32, ValueKindU64,
		ValueKindI8, ValueKindI16, ValueKindI32, ValueKindI64:
		return unmarshalJsonNumber(kind, data)
	case ValueKindString:
		value, err := jsonValueField(kind, data)
		if err != nil {
			return nil, err
		}
		return StringValue{Value: value}, nil
	case ValueKindDecimal:
		value, err := jsonValueField(kind, data)
		if err != nil {
			return nil, err
		}
		return NewDecimalFromString(value)
	case ValueKindBytes:
		value, err := jsonValueField(kind, data)
		if err != nil {
			return nil, err
		}
		decoded, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid hex in Bytes value: %w", err)
		}
		return BytesValue{Value: decoded}, nil
	case ValueKindEnum:
		var tmp struct {
			Variant *uint8            `json:"variant"`
			Fields  []json.RawMessage `json:"fields"`
		}
		if err := json.Unmarshal(data, &tmp); err != nil {
			return nil, err
		}
		if tmp.Variant == nil {
			return nil, &MissingRequiredFieldError{Type: "Enum", Field: "variant"}
		}
		fields, err := unmarshalJsonValues(tmp.Fields)
		if err != nil {
			return nil, err
		}
		return EnumValue{Variant: *tmp.Variant, Fields: fields}, nil
	case ValueKindTuple:
		var tmp struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(data, &tmp); err != nil {
			return nil, err
		}
		elements, err := unmarshalJsonValues(tmp.Elements)
		if err != nil {
			return nil, err
		}
		return TupleValue{Elements: elements}, nil
	case ValueKindArray:
		var tmp struct {
			ElementType *string           `json:"element_type"`
			Elements    []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(data, &tmp); err != nil {
			return nil, err
		}
		if tmp.ElementType == nil {
			return nil, &MissingRequiredFieldError{
				Type:  "Array",
				Field: "element_type",
			}
		}
		elementKind, err := ValueKindFromName(*tmp.ElementType)
		if err != nil {
			return nil, err
		}
		elements, err := unmarshalJsonValues(tmp.Elements)
		if err != nil {
			return nil, err
		}
		ret := ArrayValue{ElementKind: elementKind, Elements: elements}
		if err := ret.Validate(); err != nil {
			return nil, err
		}
		return ret, nil
	case ValueKindResourceAddress, ValueKindComponentAddress,
		ValueKindPackageAddress, ValueKindSystemAddress:
		var tmp struct {
			Address *string `json:"address"`
		}
		if err := json.Unmarshal(data, &tmp); err != nil {
			return nil, err
		}
		if tmp.Address == nil {
			return nil, &MissingRequiredFieldError{
				Type:  kind.String(),
				Field: "address",
			}
		}
		addr, err := address.NewAddress(*tmp.Address)
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
			Identifier *string `json:"identifier"`
		}
		if err := json.Unmarshal(data, &tmp); err != nil {
			return nil, err
		}
		if tmp.Identifier == nil {
			return nil, &MissingRequiredFieldError{
				Type:  kind.String(),
				Field: "identifier",
			}
		}
		if kind == ValueKindBucket {
			return BucketValue{Identifier: *tmp.Identifier}, nil
		}
		return ProofValue{Identifier: *tmp.Identifier}, nil
	default:
		return nil, fmt.Errorf("unknown value kind: %s", kind)
	}
}

func unmarshalJsonValues(raws []json.RawMessage) ([]Value, error) {
	var ret []Value
	for _, raw := range raws {
		value, err := UnmarshalValueJSON(raw)
		if err != nil {
			return nil, err
		}
		ret = append(ret, value)
	}
	return ret, nil
}

func jsonValueField(kind ValueKind, data []byte) (string, error) {
	var tmp struct {
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return "", err
	}
	if tmp.Value == nil {
		return "", &MissingRequiredFieldError{
			Type:  kind.String(),
			Field: "value",
		}
	}
	return *tmp.Value, nil
}

func unmarshalJsonNumber(kind ValueKind, data []byte) (Value, error) {
	digits, err := jsonValueField(kind, data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ValueKindU8:
		value, err := parseUintBounded(digits, 8, "U8")
		if err != nil {
			return nil, err
		}
		return U8Value{Value: uint8(value)}, nil
	case ValueKindU16:
		value, err := parseUintBounded(digits, 16, "U16")
		if err != nil {
			return nil, err
		}
		return U16Value{Value: uint16(value)}, nil
	case ValueKindU32:
		value, err := parseUintBounded(digits, 32, "U32")
		if err != nil {
			return nil, err
		}
		return U32Value{Value: uint32(value)}, nil
	case ValueKindU64:
		value, err := parseUintBounded(digits, 64, "U64")
		if err != nil {
			return nil, err
		}
		return U64Value{Value: value}, nil
	case ValueKindI8:
		value, err := parseIntBounded(digits, 8, "I8")
		if err != nil {
			return nil, err
		}
		return I8Value{Value: int8(value)}, nil
	case ValueKindI16:
		value, err := parseIntBounded(digits, 16, "I16")
		if err != nil {
			return nil, err
		}
		return I16Value{Value: int16(value)}, nil
	case ValueKindI32:
		value, err := parseIntBounded(digits, 32, "I32")
		if err != nil {
			return nil, err
		}
		return I32Value{Value: int32(value)}, nil
	default:
		value, err := parseIntBounded(digits, 64, "I64")
		if err != nil {
			return nil, err
		}
		return I64Value{Value: value}, nil
	}
}

// MarshalJSON renders the manifest as a JSON array of instruction objects
func (m Manifest) MarshalJSON() ([]byte, error) {
	instructions := make([]any, 0, len(m.Instructions))
	for _, instruction := range m.Instructions {
		instructions = append(instructions, instructionToJson(instruction))
	}
	return json.Marshal(instructions)
}

// UnmarshalJSON parses a JSON array of instruction objects
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	instructions := make([]Instruction, 0, len(raws))
	for _, raw := range raws {
		instruction, err := unmarshalInstructionJson(raw)
		if err != nil {
			return err
		}
		instructions = append(instructions, instruction)
	}
	m.Instructions = instructions
	return nil
}
