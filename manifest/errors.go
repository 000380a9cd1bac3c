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

// MissingRequiredFieldError is returned when a value or instruction is
// missing a mandatory field
type MissingRequiredFieldError struct {
	Type  string
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf(
		"%s is missing required field %q",
		e.Type,
		e.Field,
	)
}

// OutOfRangeError is returned when a numeric field is outside its declared
// bounds. Value carries the offending literal verbatim, since it may not fit
// any machine integer.
type OutOfRangeError struct {
	Field string
	Min   int64
	Max   uint64
	Value string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"%s value %s is outside range [%d, %d]",
		e.Field,
		e.Value,
		e.Min,
		e.Max,
	)
}

// UnexpectedValueKindError is returned when a value of one kind appears where
// another kind is required
type UnexpectedValueKindError struct {
	Expected ValueKind
	Actual   ValueKind
}

func (e *UnexpectedValueKindError) Error() string {
	return fmt.Sprintf(
		"expected value of kind %s, found %s",
		e.Expected,
		e.Actual,
	)
}

// InvalidProofStateError is returned when an instruction references a proof
// that is not in the state its semantics require
type InvalidProofStateError struct {
	Identifier string
	Reason     string
}

func (e *InvalidProofStateError) Error() string {
	return fmt.Sprintf(
		"proof %q: %s",
		e.Identifier,
		e.Reason,
	)
}

// InvalidBucketStateError is returned when an instruction references a bucket
// that is not in the state its semantics require
type InvalidBucketStateError struct {
	Identifier string
	Reason     string
}

func (e *InvalidBucketStateError) Error() string {
	return fmt.Sprintf(
		"bucket %q: %s",
		e.Identifier,
		e.Reason,
	)
}

// DuplicateBindingError is returned when an instruction tries to bind a
// bucket or proof identifier that is already bound in scope
type DuplicateBindingError struct {
	Identifier string
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf(
		"identifier %q is already bound in scope",
		e.Identifier,
	)
}

// NetworkMismatchError is returned when an address operand belongs to a
// different network than the one the manifest is being compiled for
type NetworkMismatchError struct {
	Expected uint8
	Actual   uint8
}

func (e *NetworkMismatchError) Error() string {
	return fmt.Sprintf(
		"address network %d does not match network %d",
		e.Actual,
		e.Expected,
	)
}

// UnsupportedInstructionError is returned when decoding encounters an opcode
// that this library does not recognize
type UnsupportedInstructionError struct {
	Op string
}

func (e *UnsupportedInstructionError) Error() string {
	return fmt.Sprintf(
		"unsupported instruction: %s",
		e.Op,
	)
}

// CorruptIntentError is returned when a compiled intent byte stream cannot be
// decoded. Offset is the position in the stream where decoding broke down.
type CorruptIntentError struct {
	Offset int
	Err    error
}

func (e *CorruptIntentError) Error() string {
	return fmt.Sprintf(
		"corrupt intent at byte offset %d: %s",
		e.Offset,
		e.Err,
	)
}

func (e *CorruptIntentError) Unwrap() error {
	return e.Err
}

// SyntaxError is returned when a textual manifest cannot be tokenized or
// parsed
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf(
		"syntax error at %d:%d: %s",
		e.Line,
		e.Column,
		e.Message,
	)
}

// ValidationError wraps a validation failure with the index of the offending
// instruction within the manifest
type ValidationError struct {
	InstructionIndex int
	Err              error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"instruction %d: %s",
		e.InstructionIndex,
		e.Err,
	)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
