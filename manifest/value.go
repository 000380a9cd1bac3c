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

	"github.com/radixtools/transactionlib/address"
)

// ValueKind identifies a variant of the manifest value union. The numeric
// value is also the tag used in the compiled binary form.
type ValueKind uint8

const (
	ValueKindBool ValueKind = iota
	ValueKindU8
	ValueKindU16
	ValueKindU32
	ValueKindU64
	ValueKindI8
	ValueKindI16
	ValueKindI32
	ValueKindI64
	ValueKindString
	ValueKindDecimal
	ValueKindBytes
	ValueKindEnum
	ValueKindTuple
	ValueKindArray
)

const (
	ValueKindResourceAddress ValueKind = iota + 0x20
	ValueKindComponentAddress
	ValueKindPackageAddress
	ValueKindSystemAddress
)

const (
	ValueKindBucket ValueKind = iota + 0x30
	ValueKindProof
)

var valueKindNames = map[ValueKind]string{
	ValueKindBool:             "Bool",
	ValueKindU8:               "U8",
	ValueKindU16:              "U16",
	ValueKindU32:              "U32",
	ValueKindU64:              "U64",
	ValueKindI8:               "I8",
	ValueKindI16:              "I16",
	ValueKindI32:              "I32",
	ValueKindI64:              "I64",
	ValueKindString:           "String",
	ValueKindDecimal:          "Decimal",
	ValueKindBytes:            "Bytes",
	ValueKindEnum:             "Enum",
	ValueKindTuple:            "Tuple",
	ValueKindArray:            "Array",
	ValueKindResourceAddress:  "ResourceAddress",
	ValueKindComponentAddress: "ComponentAddress",
	ValueKindPackageAddress:   "PackageAddress",
	ValueKindSystemAddress:    "SystemAddress",
	ValueKindBucket:           "Bucket",
	ValueKindProof:            "Proof",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// ValueKindFromName returns the ValueKind matching the provided wire name
func ValueKindFromName(name string) (ValueKind, error) {
	for kind, kindName := range valueKindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown value kind name: %s", name)
}

// Value is a single node in the manifest value tree. Implementations are
// immutable value types; equality between them is structural.
type Value interface {
	ValueKind() ValueKind
	// Validate checks required fields and numeric bounds for this value and
	// any nested values
	Validate() error
}

type BoolValue struct {
	Value bool
}

func (BoolValue) ValueKind() ValueKind { return ValueKindBool }
func (BoolValue) Validate() error      { return nil }

type U8Value struct {
	Value uint8
}

func (U8Value) ValueKind() ValueKind { return ValueKindU8 }
func (U8Value) Validate() error      { return nil }

type U16Value struct {
	Value uint16
}

func (U16Value) ValueKind() ValueKind { return ValueKindU16 }
func (U16Value) Validate() error      { return nil }

type U32Value struct {
	Value uint32
}

func (U32Value) ValueKind() ValueKind { return ValueKindU32 }
func (U32Value) Validate() error      { return nil }

type U64Value struct {
	Value uint64
}

func (U64Value) ValueKind() ValueKind { return ValueKindU64 }
func (U64Value) Validate() error      { return nil }

type I8Value struct {
	Value int8
}

func (I8Value) ValueKind() ValueKind { return ValueKindI8 }
func (I8Value) Validate() error      { return nil }

type I16Value struct {
	Value int16
}

func (I16Value) ValueKind() ValueKind { return ValueKindI16 }
func (I16Value) Validate() error      { return nil }

type I32Value struct {
	Value int32
}

func (I32Value) ValueKind() ValueKind { return ValueKindI32 }
func (I32Value) Validate() error      { return nil }

type I64Value struct {
	Value int64
}

func (I64Value) ValueKind() ValueKind { return ValueKindI64 }
func (I64Value) Validate() error      { return nil }

type StringValue struct {
	Value string
}

func (StringValue) ValueKind() ValueKind { return ValueKindString }
func (StringValue) Validate() error      { return nil }

type BytesValue struct {
	Value []byte
}

func (BytesValue) ValueKind() ValueKind { return ValueKindBytes }
func (v BytesValue) Validate() error {
	if v.Value == nil {
		return &MissingRequiredFieldError{Type: "Bytes", Field: "value"}
	}
	return nil
}

type EnumValue struct {
	Variant uint8
	Fields  []Value
}

func (EnumValue) ValueKind() ValueKind { return ValueKindEnum }
func (v EnumValue) Validate() error {
	for _, field := range v.Fields {
		if field == nil {
			return &MissingRequiredFieldError{Type: "Enum", Field: "fields"}
		}
		if err := field.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type TupleValue struct {
	Elements []Value
}

func (TupleValue) ValueKind() ValueKind { return ValueKindTuple }
func (v TupleValue) Validate() error {
	for _, elem := range v.Elements {
		if elem == nil {
			return &MissingRequiredFieldError{Type: "Tuple", Field: "elements"}
		}
		if err := elem.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ArrayValue struct {
	ElementKind ValueKind
	Elements    []Value
}

func (ArrayValue) ValueKind() ValueKind { return ValueKindArray }
func (v ArrayValue) Validate() error {
	if _, ok := valueKindNames[v.ElementKind]; !ok {
		return &MissingRequiredFieldError{Type: "Array", Field: "element_type"}
	}
	for _, elem := range v.Elements {
		if elem == nil {
			return &MissingRequiredFieldError{Type: "Array", Field: "elements"}
		}
		if elem.ValueKind() != v.ElementKind {
			return &UnexpectedValueKindError{
				Expected: v.ElementKind,
				Actual:   elem.ValueKind(),
			}
		}
		if err := elem.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ResourceAddressValue struct {
	Address address.Address
}

func (ResourceAddressValue) ValueKind() ValueKind { return ValueKindResourceAddress }
func (v ResourceAddressValue) Validate() error {
	return validateAddressKind(v.Address, address.KindResource)
}

type ComponentAddressValue struct {
	Address address.Address
}

func (ComponentAddressValue) ValueKind() ValueKind { return ValueKindComponentAddress }
func (v ComponentAddressValue) Validate() error {
	// Component addresses cover all component entity kinds
	switch v.Address.Kind() {
	case address.KindNormalComponent,
		address.KindAccountComponent,
		address.KindSystemComponent:
		return nil
	}
	return &address.KindMismatchError{
		HrpKind:    address.KindNormalComponent,
		EntityKind: v.Address.Kind(),
	}
}

type PackageAddressValue struct {
	Address address.Address
}

func (PackageAddressValue) ValueKind() ValueKind { return ValueKindPackageAddress }
func (v PackageAddressValue) Validate() error {
	return validateAddressKind(v.Address, address.KindPackage)
}

type SystemAddressValue struct {
	Address address.Address
}

func (SystemAddressValue) ValueKind() ValueKind { return ValueKindSystemAddress }
func (v SystemAddressValue) Validate() error {
	return validateAddressKind(v.Address, address.KindSystemComponent)
}

func validateAddressKind(
	addr address.Address,
	expected address.Kind,
) error {
	if addr.Kind() != expected {
		return &address.KindMismatchError{
			HrpKind:    expected,
			EntityKind: addr.Kind(),
		}
	}
	return nil
}

type BucketValue struct {
	Identifier string
}

func (BucketValue) ValueKind() ValueKind { return ValueKindBucket }
func (v BucketValue) Validate() error {
	if v.Identifier == "" {
		return &MissingRequiredFieldError{Type: "Bucket", Field: "identifier"}
	}
	return nil
}

type ProofValue struct {
	Identifier string
}

func (ProofValue) ValueKind() ValueKind { return ValueKindProof }
func (v ProofValue) Validate() error {
	if v.Identifier == "" {
		return &MissingRequiredFieldError{Type: "Proof", Field: "identifier"}
	}
	return nil
}
