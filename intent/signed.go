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

package intent

import (
	"github.com/radixtools/transactionlib/keys"
	"github.com/radixtools/transactionlib/manifest"
	"github.com/radixtools/transactionlib/sbor"
)

// SignedTransactionIntent pairs a transaction intent with the signatures
// collected over its compiled form
type SignedTransactionIntent struct {
	sbor.DecodeStoreSbor
	Intent     TransactionIntent
	Signatures []keys.SignatureWithPublicKey
}

// Sign compiles the intent and appends a signature over its hash from the
// given signer
func (s *SignedTransactionIntent) Sign(signer keys.Signer) error {
	compiled, err := s.Intent.Compile()
	if err != nil {
		return err
	}
	hash := Hash(compiled)
	sig, err := signer.Sign(hash[:])
	if err != nil {
		return err
	}
	s.Signatures = append(s.Signatures, sig)
	return nil
}

// Verify compiles the intent and checks every attached signature against its
// hash. It returns false as soon as any signature fails to verify.
func (s *SignedTransactionIntent) Verify(verifier keys.Verifier) (bool, error) {
	compiled, err := s.Intent.Compile()
	if err != nil {
		return false, err
	}
	hash := Hash(compiled)
	for _, sig := range s.Signatures {
		ok, err := verifier.Verify(sig.Signature, hash[:], sig.PublicKey)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Compile validates the signatures and encodes the signed intent to its
// canonical binary form: the compiled intent bytes followed by the
// signature list
func (s *SignedTransactionIntent) Compile() ([]byte, error) {
	compiled, err := s.Intent.Compile()
	if err != nil {
		return nil, err
	}
	sigs := make([]any, 0, len(s.Signatures))
	for _, sig := range s.Signatures {
		if err := sig.Validate(); err != nil {
			return nil, err
		}
		sigs = append(
			sigs,
			[]any{
				uint8(sig.PublicKey.Curve),
				sig.PublicKey.Bytes,
				sig.Signature.Bytes,
			},
		)
	}
	return sbor.Encode([]any{compiled, sigs})
}

// DecompileSigned decodes a compiled signed intent back into the intent and
// its signature list
func DecompileSigned(compiled []byte) (*SignedTransactionIntent, error) {
	var tmp struct {
		sbor.StructAsArray
		Intent     []byte
		Signatures []struct {
			sbor.StructAsArray
			Curve     uint8
			PublicKey []byte
			Signature []byte
		}
	}
	consumed, err := sbor.Decode(compiled, &tmp)
	if err != nil {
		return nil, &manifest.CorruptIntentError{Offset: consumed, Err: err}
	}
	inner, err := Decompile(tmp.Intent)
	if err != nil {
		return nil, err
	}
	ret := &SignedTransactionIntent{
		Intent: *inner,
	}
	for _, sig := range tmp.Signatures {
		entry := keys.SignatureWithPublicKey{
			PublicKey: keys.PublicKey{
				Curve: keys.Curve(sig.Curve),
				Bytes: sig.PublicKey,
			},
			Signature: keys.Signature{
				Curve: keys.Curve(sig.Curve),
				Bytes: sig.Signature,
			},
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		ret.Signatures = append(ret.Signatures, entry)
	}
	ret.SetSbor(compiled)
	return ret, nil
}
