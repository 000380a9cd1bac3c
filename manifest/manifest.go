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

// Package manifest implements the transaction manifest model: a typed value
// tree, the instruction set operating on it, and conversions between the
// textual, JSON, and compiled binary representations. Conversions always go
// through the in-memory Manifest form so that all representations stay
// semantically equivalent.
package manifest

// Manifest is an ordered sequence of instructions for one transaction.
// Instruction order is execution order and is preserved through every
// format conversion.
type Manifest struct {
	Instructions []Instruction
}

// Validate walks the instructions in declaration order, checking per-opcode
// operand rules and maintaining a scope of live bucket and proof
// identifiers. It fails fast at the first violation with the offending
// instruction's index.
func (m *Manifest) Validate() error {
	scope := newScope()
	for idx, instruction := range m.Instructions {
		if instruction == nil {
			return &ValidationError{
				InstructionIndex: idx,
				Err: &MissingRequiredFieldError{
					Type:  "Manifest",
					Field: "instructions",
				},
			}
		}
		if err := instruction.Validate(); err != nil {
			return &ValidationError{InstructionIndex: idx, Err: err}
		}
		if err := scope.apply(instruction); err != nil {
			return &ValidationError{InstructionIndex: idx, Err: err}
		}
	}
	return nil
}
