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

package keys

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// StandardVerifier verifies signatures with the library's built-in scheme
// implementations
type StandardVerifier struct{}

// Verify checks the signature over the message for the matching curve
func (StandardVerifier) Verify(
	signature Signature,
	message []byte,
	publicKey PublicKey,
) (bool, error) {
	if err := signature.Validate(); err != nil {
		return false, err
	}
	if err := publicKey.Validate(); err != nil {
		return false, err
	}
	if signature.Curve != publicKey.Curve {
		return false, fmt.Errorf(
			"curve mismatch: public key is %s, signature is %s",
			publicKey.Curve,
			signature.Curve,
		)
	}
	switch signature.Curve {
	case CurveEcdsaSecp256k1:
		pubKey, err := btcec.ParsePubKey(publicKey.Bytes)
		if err != nil {
			return false, err
		}
		// Compact (r, s) signature form
		var r btcec.ModNScalar
		if overflow := r.SetByteSlice(signature.Bytes[:32]); overflow {
			return false, nil
		}
		var s btcec.ModNScalar
		if overflow := s.SetByteSlice(signature.Bytes[32:]); overflow {
			return false, nil
		}
		sig := ecdsa.NewSignature(&r, &s)
		return sig.Verify(message, pubKey), nil
	case CurveEddsaEd25519:
		return ed25519.Verify(
			ed25519.PublicKey(publicKey.Bytes),
			message,
			signature.Bytes,
		), nil
	default:
		return false, fmt.Errorf("unknown curve: %d", uint8(signature.Curve))
	}
}

func validateSecp256k1PublicKey(keyBytes []byte) error {
	if _, err := btcec.ParsePubKey(keyBytes); err != nil {
		return fmt.Errorf("invalid secp256k1 public key: %w", err)
	}
	return nil
}

func validateEd25519PublicKey(keyBytes []byte) error {
	// Reject encodings that are not canonical curve points
	if _, err := new(edwards25519.Point).SetBytes(keyBytes); err != nil {
		return fmt.Errorf("invalid ed25519 public key: %w", err)
	}
	return nil
}
