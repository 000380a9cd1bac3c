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

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Secp256k1Signer signs messages with an in-memory secp256k1 private key
type Secp256k1Signer struct {
	privKey *btcec.PrivateKey
}

func NewSecp256k1Signer(keyBytes []byte) (*Secp256k1Signer, error) {
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf(
			"invalid secp256k1 private key length: %d",
			len(keyBytes),
		)
	}
	privKey, _ := btcec.PrivKeyFromBytes(keyBytes)
	return &Secp256k1Signer{privKey: privKey}, nil
}

func (s *Secp256k1Signer) Sign(message []byte) (SignatureWithPublicKey, error) {
	compact := ecdsa.SignCompact(s.privKey, message, true)
	// Strip the recovery byte to get the 64-byte (r, s) form
	return SignatureWithPublicKey{
		PublicKey: PublicKey{
			Curve: CurveEcdsaSecp256k1,
			Bytes: s.privKey.PubKey().SerializeCompressed(),
		},
		Signature: Signature{
			Curve: CurveEcdsaSecp256k1,
			Bytes: compact[1:],
		},
	}, nil
}

// Ed25519Signer signs messages with an in-memory Ed25519 private key
type Ed25519Signer struct {
	privKey ed25519.PrivateKey
}

func NewEd25519Signer(seed []byte) (*Ed25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf(
			"invalid ed25519 seed length: %d",
			len(seed),
		)
	}
	return &Ed25519Signer{privKey: ed25519.NewKeyFromSeed(seed)}, nil
}

func (s *Ed25519Signer) Sign(message []byte) (SignatureWithPublicKey, error) {
	pubKey := s.privKey.Public().(ed25519.PublicKey)
	return SignatureWithPublicKey{
		PublicKey: PublicKey{
			Curve: CurveEddsaEd25519,
			Bytes: []byte(pubKey),
		},
		Signature: Signature{
			Curve: CurveEddsaEd25519,
			Bytes: ed25519.Sign(s.privKey, message),
		},
	}, nil
}
