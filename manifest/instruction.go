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
	"math"
)

// Op identifies a manifest instruction opcode. The numeric value is also the
// tag used in the compiled binary form; the string form appears in the
// textual and JSON representations.
type Op uint8

const (
	OpTakeFromWorktop Op = iota
	OpTakeFromWorktopByAmount
	OpReturnToWorktop
	OpAssertWorktopContains
	OpPopFromAuthZone
	OpPushToAuthZone
	OpClearAuthZone
	OpCreateProofFromAuthZone
	OpCreateProofFromBucket
	OpCloneProof
	OpDropProof
	OpDropAllProofs
	OpCallFunction
	OpCallMethod
	OpCallMethodWithAllResources
	OpPublishPackage
)

var opNames = map[Op]string{
	OpTakeFromWorktop:            "TAKE_FROM_WORKTOP",
	OpTakeFromWorktopByAmount:    "TAKE_FROM_WORKTOP_BY_AMOUNT",
	OpReturnToWorktop:            "RETURN_TO_WORKTOP",
	OpAssertWorktopContains:      "ASSERT_WORKTOP_CONTAINS",
	OpPopFromAuthZone:            "POP_FROM_AUTH_ZONE",
	OpPushToAuthZone:             "PUSH_TO_AUTH_ZONE",
	OpClearAuthZone:              "CLEAR_AUTH_ZONE",
	OpCreateProofFromAuthZone:    "CREATE_PROOF_FROM_AUTH_ZONE",
	OpCreateProofFromBucket:      "CREATE_PROOF_FROM_BUCKET",
	OpCloneProof:                 "CLONE_PROOF",
	OpDropProof:                  "DROP_PROOF",
	OpDropAllProofs:              "DROP_ALL_PROOFS",
	OpCallFunction:               "CALL_FUNCTION",
	OpCallMethod:                 "CALL_METHOD",
	OpCallMethodWithAllResources: "CALL_METHOD_WITH_ALL_RESOURCES",
	OpPublishPackage:             "PUBLISH_PACKAGE",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// OpFromName returns the Op matching the provided opcode name
func OpFromName(name string) (Op, error) {
	for op, opName := range opNames {
		if opName == name {
			return op, nil
		}
	}
	return 0, &UnsupportedInstructionError{Op: name}
}

// Instruction is a single manifest operation. Implementations exclusively
// own their operand values.
type Instruction interface {
	Op() Op
	// Validate checks the instruction's own operands. Cross-instruction
	// rules (bucket/proof scope) are checked by the manifest-level
	// validation pass.
	Validate() error
}

// TakeFromWorktop moves all of a resource from the worktop into a new bucket
type TakeFromWorktop struct {
	ResourceAddress ResourceAddressValue
	IntoBucket      BucketValue
}

func (TakeFromWorktop) Op() Op { return OpTakeFromWorktop }
func (i TakeFromWorktop) Validate() error {
	if err := i.ResourceAddress.Validate(); err != nil {
		return err
	}
	return i.IntoBucket.Validate()
}

// TakeFromWorktopByAmount moves a fixed amount of a resource from the
// worktop into a new bucket
type TakeFromWorktopByAmount struct {
	Amount          DecimalValue
	ResourceAddress ResourceAddressValue
	IntoBucket      BucketValue
}

func (TakeFromWorktopByAmount) Op() Op { return OpTakeFromWorktopByAmount }
func (i TakeFromWorktopByAmount) Validate() error {
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if i.Amount.Value.Sign() < 0 {
		return &OutOfRangeError{
			Field: "amount",
			Min:   0,
			Max:   math.MaxUint64,
			Value: i.Amount.String(),
		}
	}
	if err := i.ResourceAddress.Validate(); err != nil {
		return err
	}
	return i.IntoBucket.Validate()
}

// ReturnToWorktop returns the contents of a bucket to the worktop,
// consuming the bucket
type ReturnToWorktop struct {
	Bucket BucketValue
}

func (ReturnToWorktop) Op() Op { return OpReturnToWorktop }
func (i ReturnToWorktop) Validate() error {
	return i.Bucket.Validate()
}

// AssertWorktopContains asserts that the worktop holds some of a resource
type AssertWorktopContains struct {
	ResourceAddress ResourceAddressValue
}

func (AssertWorktopContains) Op() Op { return OpAssertWorktopContains }
func (i AssertWorktopContains) Validate() error {
	return i.ResourceAddress.Validate()
}

// PopFromAuthZone pops the most recent proof off the auth zone into a new
// local proof
type PopFromAuthZone struct {
	IntoProof ProofValue
}

func (PopFromAuthZone) Op() Op { return OpPopFromAuthZone }
func (i PopFromAuthZone) Validate() error {
	return i.IntoProof.Validate()
}

// PushToAuthZone pushes a locally held proof onto the auth zone, consuming
// the local reference
type PushToAuthZone struct {
	Proof ProofValue
}

func (PushToAuthZone) Op() Op { return OpPushToAuthZone }
func (i PushToAuthZone) Validate() error {
	return i.Proof.Validate()
}

// ClearAuthZone drops every proof currently on the auth zone
type ClearAuthZone struct{}

func (ClearAuthZone) Op() Op          { return OpClearAuthZone }
func (ClearAuthZone) Validate() error { return nil }

// CreateProofFromAuthZone creates a new local proof of a resource from the
// auth zone
type CreateProofFromAuthZone struct {
	ResourceAddress ResourceAddressValue
	IntoProof       ProofValue
}

func (CreateProofFromAuthZone) Op() Op { return OpCreateProofFromAuthZone }
func (i CreateProofFromAuthZone) Validate() error {
	if err := i.ResourceAddress.Validate(); err != nil {
		return err
	}
	return i.IntoProof.Validate()
}

// CreateProofFromBucket creates a new local proof of the contents of a
// bucket without consuming the bucket
type CreateProofFromBucket struct {
	Bucket    BucketValue
	IntoProof ProofValue
}

func (CreateProofFromBucket) Op() Op { return OpCreateProofFromBucket }
func (i CreateProofFromBucket) Validate() error {
	if err := i.Bucket.Validate(); err != nil {
		return err
	}
	return i.IntoProof.Validate()
}

// CloneProof duplicates a locally held proof under a fresh identifier
type CloneProof struct {
	Proof     ProofValue
	IntoProof ProofValue
}

func (CloneProof) Op() Op { return OpCloneProof }
func (i CloneProof) Validate() error {
	if err := i.Proof.Validate(); err != nil {
		return err
	}
	return i.IntoProof.Validate()
}

// DropProof drops a locally held proof, consuming the reference
type DropProof struct {
	Proof ProofValue
}

func (DropProof) Op() Op { return OpDropProof }
func (i DropProof) Validate() error {
	return i.Proof.Validate()
}

// DropAllProofs drops every locally held proof
type DropAllProofs struct{}

func (DropAllProofs) Op() Op          { return OpDropAllProofs }
func (DropAllProofs) Validate() error { return nil }

// CallFunction calls a function on a blueprint in a published package
type CallFunction struct {
	PackageAddress PackageAddressValue
	BlueprintName  StringValue
	FunctionName   StringValue
	Arguments      []Value
}

func (CallFunction) Op() Op { return OpCallFunction }
func (i CallFunction) Validate() error {
	if err := i.PackageAddress.Validate(); err != nil {
		return err
	}
	if i.BlueprintName.Value == "" {
		return &MissingRequiredFieldError{
			Type:  "CALL_FUNCTION",
			Field: "blueprint_name",
		}
	}
	if i.FunctionName.Value == "" {
		return &MissingRequiredFieldError{
			Type:  "CALL_FUNCTION",
			Field: "function_name",
		}
	}
	return validateArguments("CALL_FUNCTION", i.Arguments)
}

// CallMethod calls a method on a component
type CallMethod struct {
	ComponentAddress ComponentAddressValue
	MethodName       StringValue
	Arguments        []Value
}

func (CallMethod) Op() Op { return OpCallMethod }
func (i CallMethod) Validate() error {
	if err := i.ComponentAddress.Validate(); err != nil {
		return err
	}
	if i.MethodName.Value == "" {
		return &MissingRequiredFieldError{
			Type:  "CALL_METHOD",
			Field: "method_name",
		}
	}
	return validateArguments("CALL_METHOD", i.Arguments)
}

// CallMethodWithAllResources calls a method on a component, passing every
// resource held by the transaction worktop
type CallMethodWithAllResources struct {
	ComponentAddress ComponentAddressValue
	MethodName       StringValue
}

func (CallMethodWithAllResources) Op() Op { return OpCallMethodWithAllResources }
func (i CallMethodWithAllResources) Validate() error {
	if err := i.ComponentAddress.Validate(); err != nil {
		return err
	}
	if i.MethodName.Value == "" {
		return &MissingRequiredFieldError{
			Type:  "CALL_METHOD_WITH_ALL_RESOURCES",
			Field: "method_name",
		}
	}
	return nil
}

// PublishPackage publishes a package from its WASM code and ABI
type PublishPackage struct {
	Code BytesValue
	Abi  BytesValue
}

func (PublishPackage) Op() Op { return OpPublishPackage }
func (i PublishPackage) Validate() error {
	if i.Code.Value == nil {
		return &MissingRequiredFieldError{
			Type:  "PUBLISH_PACKAGE",
			Field: "code",
		}
	}
	if i.Abi.Value == nil {
		return &MissingRequiredFieldError{
			Type:  "PUBLISH_PACKAGE",
			Field: "abi",
		}
	}
	return nil
}

func validateArguments(instructionType string, args []Value) error {
	for _, arg := range args {
		if arg == nil {
			return &MissingRequiredFieldError{
				Type:  instructionType,
				Field: "arguments",
			}
		}
		if err := arg.Validate(); err != nil {
			return err
		}
	}
	return nil
}
