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

import "fmt"

// scope tracks bucket and proof identifiers that are live at a given point
// in a manifest. Identifiers stay bound after consumption so that rebinding
// a consumed name is still a duplicate binding.
type scope struct {
	boundBuckets map[string]bool
	liveBuckets  map[string]bool
	boundProofs  map[string]bool
	liveProofs   map[string]bool
}

func newScope() *scope {
	return &scope{
		boundBuckets: map[string]bool{},
		liveBuckets:  map[string]bool{},
		boundProofs:  map[string]bool{},
		liveProofs:   map[string]bool{},
	}
}

func (s *scope) bindBucket(bucket BucketValue) error {
	if s.boundBuckets[bucket.Identifier] {
		return &DuplicateBindingError{Identifier: bucket.Identifier}
	}
	s.boundBuckets[bucket.Identifier] = true
	s.liveBuckets[bucket.Identifier] = true
	return nil
}

func (s *scope) bindProof(proof ProofValue) error {
	if s.boundProofs[proof.Identifier] {
		return &DuplicateBindingError{Identifier: proof.Identifier}
	}
	s.boundProofs[proof.Identifier] = true
	s.liveProofs[proof.Identifier] = true
	return nil
}

func (s *scope) useBucket(bucket BucketValue, consume bool) error {
	if !s.boundBuckets[bucket.Identifier] {
		return &InvalidBucketStateError{
			Identifier: bucket.Identifier,
			Reason:     "not declared at this point in the manifest",
		}
	}
	if !s.liveBuckets[bucket.Identifier] {
		return &InvalidBucketStateError{
			Identifier: bucket.Identifier,
			Reason:     "already consumed",
		}
	}
	if consume {
		s.liveBuckets[bucket.Identifier] = false
	}
	return nil
}

func (s *scope) useProof(proof ProofValue, consume bool) error {
	if !s.boundProofs[proof.Identifier] {
		return &InvalidProofStateError{
			Identifier: proof.Identifier,
			Reason:     "not declared at this point in the manifest",
		}
	}
	if !s.liveProofs[proof.Identifier] {
		return &InvalidProofStateError{
			Identifier: proof.Identifier,
			Reason:     "already pushed or dropped",
		}
	}
	if consume {
		s.liveProofs[proof.Identifier] = false
	}
	return nil
}

// apply advances the scope over one instruction, enforcing its
// bucket/proof lifecycle rules
func (s *scope) apply(instruction Instruction) error {
	switch i := instruction.(type) {
	case TakeFromWorktop:
		return s.bindBucket(i.IntoBucket)
	case TakeFromWorktopByAmount:
		return s.bindBucket(i.IntoBucket)
	case ReturnToWorktop:
		return s.useBucket(i.Bucket, true)
	case AssertWorktopContains:
		return nil
	case PopFromAuthZone:
		return s.bindProof(i.IntoProof)
	case PushToAuthZone:
		return s.useProof(i.Proof, true)
	case ClearAuthZone:
		return nil
	case CreateProofFromAuthZone:
		return s.bindProof(i.IntoProof)
	case CreateProofFromBucket:
		if err := s.useBucket(i.Bucket, false); err != nil {
			return err
		}
		return s.bindProof(i.IntoProof)
	case CloneProof:
		if err := s.useProof(i.Proof, false); err != nil {
			return err
		}
		return s.bindProof(i.IntoProof)
	case DropProof:
		return s.useProof(i.Proof, true)
	case DropAllProofs:
		for identifier := range s.liveProofs {
			s.liveProofs[identifier] = false
		}
		return nil
	case CallFunction:
		return s.consumeArguments(i.Arguments)
	case CallMethod:
		return s.consumeArguments(i.Arguments)
	case CallMethodWithAllResources:
		// Every live bucket moves to the callee along with the worktop
		for identifier := range s.liveBuckets {
			s.liveBuckets[identifier] = false
		}
		return nil
	case PublishPackage:
		return nil
	default:
		return fmt.Errorf("unknown instruction type: %T", instruction)
	}
}

// ValidateNetwork checks that every address operand in the manifest belongs
// to the given network. Compiled addresses carry only their raw bytes, so an
// address on the wrong network would change meaning on decompile.
func (m *Manifest) ValidateNetwork(networkId uint8) error {
	for idx, instruction := range m.Instructions {
		operands, err := instructionOperands(instruction)
		if err != nil {
			return &ValidationError{InstructionIndex: idx, Err: err}
		}
		for _, operand := range operands {
			if err := checkValueNetwork(operand, networkId); err != nil {
				return &ValidationError{InstructionIndex: idx, Err: err}
			}
		}
	}
	return nil
}

func checkValueNetwork(value Value, networkId uint8) error {
	switch v := value.(type) {
	case ResourceAddressValue:
		return checkAddressNetwork(v.Address.NetworkId(), networkId)
	case ComponentAddressValue:
		return checkAddressNetwork(v.Address.NetworkId(), networkId)
	case PackageAddressValue:
		return checkAddressNetwork(v.Address.NetworkId(), networkId)
	case SystemAddressValue:
		return checkAddressNetwork(v.Address.NetworkId(), networkId)
	case EnumValue:
		return checkValuesNetwork(v.Fields, networkId)
	case TupleValue:
		return checkValuesNetwork(v.Elements, networkId)
	case ArrayValue:
		return checkValuesNetwork(v.Elements, networkId)
	}
	return nil
}

func checkValuesNetwork(values []Value, networkId uint8) error {
	for _, value := range values {
		if err := checkValueNetwork(value, networkId); err != nil {
			return err
		}
	}
	return nil
}

func checkAddressNetwork(actual uint8, expected uint8) error {
	if actual != expected {
		return &NetworkMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// consumeArguments walks call arguments, consuming any bucket or proof
// references they carry. Passing a bucket or proof to a callee transfers
// ownership.
func (s *scope) consumeArguments(args []Value) error {
	for _, arg := range args {
		if err := s.consumeArgument(arg); err != nil {
			return err
		}
	}
	return nil
}

func (s *scope) consumeArgument(arg Value) error {
	switch v := arg.(type) {
	case BucketValue:
		return s.useBucket(v, true)
	case ProofValue:
		return s.useProof(v, true)
	case EnumValue:
		return s.consumeArguments(v.Fields)
	case TupleValue:
		return s.consumeArguments(v.Elements)
	case ArrayValue:
		return s.consumeArguments(v.Elements)
	}
	return nil
}
