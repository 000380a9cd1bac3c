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

// Package abi extracts code and ABI segments from package publish blobs
package abi

import (
	"bytes"
	"context"
	"fmt"

	"github.com/radixtools/transactionlib/sbor"
	"github.com/tetratelabs/wazero"
)

// wasmPreamble is the magic plus version prefix every valid code segment
// must start with
var wasmPreamble = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// MalformedPackageError is returned when a package blob cannot be split into
// its code and ABI segments
type MalformedPackageError struct {
	Reason string
	Err    error
}

func (e *MalformedPackageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed package: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed package: %s", e.Reason)
}

func (e *MalformedPackageError) Unwrap() error {
	return e.Err
}

// PackageArtifact holds the two segments of a package publish blob. It
// retains the original blob bytes for re-serialization.
type PackageArtifact struct {
	sbor.StructAsArray
	sbor.DecodeStoreSbor
	Code []byte
	Abi  []byte
}

func (a *PackageArtifact) UnmarshalCBOR(data []byte) error {
	return a.UnmarshalSborGeneric(data, a)
}

// NewPackage builds a package blob from its code and ABI segments. The code
// segment must carry the standard preamble.
func NewPackage(code []byte, abiBytes []byte) ([]byte, error) {
	if !bytes.HasPrefix(code, wasmPreamble) {
		return nil, &MalformedPackageError{
			Reason: "code segment is missing the module preamble",
		}
	}
	return sbor.Encode([]any{code, abiBytes})
}

// Extract splits a package blob into its code and ABI segments. A blob whose
// declared segment lengths run past the end of the data is rejected rather
// than truncated.
func Extract(blob []byte) (*PackageArtifact, error) {
	var artifact PackageArtifact
	if _, err := sbor.Decode(blob, &artifact); err != nil {
		return nil, &MalformedPackageError{
			Reason: "cannot decode package blob",
			Err:    err,
		}
	}
	if !bytes.HasPrefix(artifact.Code, wasmPreamble) {
		return nil, &MalformedPackageError{
			Reason: "code segment is missing the module preamble",
		}
	}
	return &artifact, nil
}

// ValidateCode compiles the code segment in an isolated runtime to check
// that it is a well-formed module. Nothing is instantiated or executed.
func ValidateCode(ctx context.Context, code []byte) error {
	runtime := wazero.NewRuntime(ctx)
	defer runtime.Close(ctx)
	compiled, err := runtime.CompileModule(ctx, code)
	if err != nil {
		return &MalformedPackageError{
			Reason: "code segment does not compile",
			Err:    err,
		}
	}
	return compiled.Close(ctx)
}
