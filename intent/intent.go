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

// Package intent implements the compiled transaction intent: the canonical
// binary encoding of a manifest plus header, suitable for hashing and
// signing, and the signed-intent envelope that carries signatures over it.
package intent

import (
	"github.com/radixtools/transactionlib/address"
	"github.com/radixtools/transactionlib/manifest"
	"github.com/radixtools/transactionlib/sbor"
	"golang.org/x/crypto/blake2b"
)

// TransactionVersionV1 is the only compiled intent layout currently defined
const TransactionVersionV1 = 1

// Header carries the version and network for one transaction intent
type Header struct {
	Version   uint8
	NetworkId uint8
}

// TransactionIntent is a manifest bound to a header. Compiling it is
// deterministic: the same intent always produces byte-identical output.
// Decompiled intents retain their original encoded bytes for hashing.
type TransactionIntent struct {
	sbor.DecodeStoreSbor
	Header   Header
	Manifest manifest.Manifest
}

// Compile validates the manifest against the header and encodes the intent
// to its canonical binary form. Every address operand must belong to the
// header's network, and the network must be a registered one, or the
// decompiled form would not match.
func (i *TransactionIntent) Compile() ([]byte, error) {
	if address.NetworkById(i.Header.NetworkId) == address.NetworkInvalid {
		return nil, &address.UnknownNetworkError{NetworkId: i.Header.NetworkId}
	}
	if err := i.Manifest.Validate(); err != nil {
		return nil, err
	}
	if err := i.Manifest.ValidateNetwork(i.Header.NetworkId); err != nil {
		return nil, err
	}
	instructions := make([]any, 0, len(i.Manifest.Instructions))
	for _, instruction := range i.Manifest.Instructions {
		encoded, err := manifest.EncodeInstruction(instruction)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, sbor.RawMessage(encoded))
	}
	return sbor.Encode([]any{i.Header.Version, i.Header.NetworkId, instructions})
}

// Decompile decodes a compiled intent back into its header and manifest. It
// is the exact structural inverse of Compile.
func Decompile(compiled []byte) (*TransactionIntent, error) {
	var tmp struct {
		sbor.StructAsArray
		Version      uint8
		NetworkId    uint8
		Instructions []sbor.RawMessage
	}
	consumed, err := sbor.Decode(compiled, &tmp)
	if err != nil {
		return nil, &manifest.CorruptIntentError{Offset: consumed, Err: err}
	}
	ret := &TransactionIntent{
		Header: Header{
			Version:   tmp.Version,
			NetworkId: tmp.NetworkId,
		},
	}
	// The instruction list is the final element of the outer array, so each
	// instruction's position in the stream can be recovered from the
	// lengths of the raw messages that follow it
	tailLen := 0
	for _, raw := range tmp.Instructions {
		tailLen += len(raw)
	}
	offset := len(compiled) - tailLen
	for _, raw := range tmp.Instructions {
		instruction, err := manifest.DecodeInstruction(raw, tmp.NetworkId)
		if err != nil {
			if _, ok := err.(*manifest.UnsupportedInstructionError); ok {
				return nil, err
			}
			return nil, &manifest.CorruptIntentError{Offset: offset, Err: err}
		}
		ret.Manifest.Instructions = append(ret.Manifest.Instructions, instruction)
		offset += len(raw)
	}
	if err := ret.Manifest.Validate(); err != nil {
		return nil, err
	}
	ret.SetSbor(compiled)
	return ret, nil
}

// Hash returns the blake2b-256 hash of the compiled intent, which is the
// message that intent signatures cover
func Hash(compiled []byte) [32]byte {
	return blake2b.Sum256(compiled)
}
