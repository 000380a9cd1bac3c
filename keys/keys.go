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

// Package keys defines the signature schemes carried by signed transaction
// intents. Signing and verification are opaque capabilities: the core only
// consumes the Signer and Verifier interfaces, with scheme-specific
// implementations provided for convenience.
package keys

import (
	"fmt"
)

// Curve identifies a signature scheme. The numeric value is also the tag
// used in the compiled binary form.
type Curve uint8

const (
	CurveEcdsaSecp256k1 Curve = iota
	CurveEddsaEd25519
)

var curveNames = map[Curve]string{
	CurveEcdsaSecp256k1: "EcdsaSecp256k1",
	CurveEddsaEd25519:   "EddsaEd25519",
}

func (c Curve) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Curve(%d)", uint8(c))
}

// CurveFromName returns the Curve matching the provided wire name
func CurveFromName(name string) (Curve, error) {
	for curve, curveName := range curveNames {
		if curveName == name {
			return curve, nil
		}
	}
	return 0, fmt.Errorf("unknown curve name: %s", name)
}

// Expected byte lengths for key and signature blobs
const (
	EcdsaSecp256k1PublicKeySize = 33
	EcdsaSecp256k1SignatureSize = 64
	EddsaEd25519PublicKeySize   = 32
	EddsaEd25519SignatureSize   = 64
)

// PublicKey is a curve-tagged public key blob
type PublicKey struct {
	Curve Curve
	Bytes []byte
}

// Validate checks the key length and, where the curve allows it, that the
// bytes describe a valid curve point
func (k PublicKey) Validate() error {
	switch k.Curve {
	case CurveEcdsaSecp256k1:
		if len(k.Bytes) != EcdsaSecp256k1PublicKeySize {
			return fmt.Errorf(
				"invalid secp256k1 public key length: %d",
				len(k.Bytes),
			)
		}
		return validateSecp256k1PublicKey(k.Bytes)
	case CurveEddsaEd25519:
		if len(k.Bytes) != EddsaEd25519PublicKeySize {
			return fmt.Errorf(
				"invalid ed25519 public key length: %d",
				len(k.Bytes),
			)
		}
		return validateEd25519PublicKey(k.Bytes)
	default:
		return fmt.Errorf("unknown curve: %d", uint8(k.Curve))
	}
}

// Signature is a curve-tagged signature blob
type Signature struct {
	Curve Curve
	Bytes []byte
}

// Validate checks the signature length for the curve
func (s Signature) Validate() error {
	switch s.Curve {
	case CurveEcdsaSecp256k1:
		if len(s.Bytes) != EcdsaSecp256k1SignatureSize {
			return fmt.Errorf(
				"invalid secp256k1 signature length: %d",
				len(s.Bytes),
			)
		}
	case CurveEddsaEd25519:
		if len(s.Bytes) != EddsaEd25519SignatureSize {
			return fmt.Errorf(
				"invalid ed25519 signature length: %d",
				len(s.Bytes),
			)
		}
	default:
		return fmt.Errorf("unknown curve: %d", uint8(s.Curve))
	}
	return nil
}

// SignatureWithPublicKey pairs a signature with the public key that
// produced it
type SignatureWithPublicKey struct {
	PublicKey PublicKey
	Signature Signature
}

// Validate checks both halves and that they agree on the curve
func (s SignatureWithPublicKey) Validate() error {
	if err := s.PublicKey.Validate(); err != nil {
		return err
	}
	if err := s.Signature.Validate(); err != nil {
		return err
	}
	if s.PublicKey.Curve != s.Signature.Curve {
		return fmt.Errorf(
			"curve mismatch: public key is %s, signature is %s",
			s.PublicKey.Curve,
			s.Signature.Curve,
		)
	}
	return nil
}

// Signer produces a signature over a message using an externally held
// private key
type Signer interface {
	Sign(message []byte) (SignatureWithPublicKey, error)
}

// Verifier checks a signature over a message
type Verifier interface {
	Verify(signature Signature, message []byte, publicKey PublicKey) (bool, error)
}
