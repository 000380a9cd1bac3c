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

// Package address implements encoding and decoding of ledger entity
// addresses. The human-readable form is bech32m with an HRP derived from the
// entity kind and network; the binary form is an entity discriminant byte
// followed by the fixed-length address body.
package address

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	// AddressBodySize is the length of the raw address body, excluding the
	// entity discriminant byte
	AddressBodySize = 26

	// AddressSize is the length of the full binary form of an address
	AddressSize = AddressBodySize + 1
)

// Address is an immutable network-aware entity address
type Address struct {
	kind      Kind
	networkId uint8
	body      [AddressBodySize]byte
}

// NewAddress returns an Address based on the provided bech32m address string
func NewAddress(addr string) (Address, error) {
	hrp, data, version, err := bech32.DecodeGeneric(addr)
	if err != nil {
		return Address{}, &MalformedAddressError{
			Address: addr,
			Reason:  err.Error(),
		}
	}
	if version != bech32.VersionM {
		return Address{}, &MalformedAddressError{
			Address: addr,
			Reason:  "checksum variant is not bech32m",
		}
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, &MalformedAddressError{
			Address: addr,
			Reason:  err.Error(),
		}
	}
	hrpKind, network, err := resolveHrp(hrp)
	if err != nil {
		return Address{}, err
	}
	if len(decoded) != AddressSize {
		return Address{}, &MalformedAddressError{
			Address: addr,
			Reason:  fmt.Sprintf("invalid address length: %d", len(decoded)),
		}
	}
	entityKind, ok := kindFromEntityType(decoded[0])
	if !ok {
		return Address{}, &MalformedAddressError{
			Address: addr,
			Reason:  fmt.Sprintf("unknown entity type byte: 0x%02x", decoded[0]),
		}
	}
	if entityKind != hrpKind {
		return Address{}, &KindMismatchError{
			HrpKind:    hrpKind,
			EntityKind: entityKind,
		}
	}
	a := Address{
		kind:      hrpKind,
		networkId: network.Id,
	}
	copy(a.body[:], decoded[1:])
	return a, nil
}

// NewAddressFromParts returns an Address based on the individual parts of the
// address that are provided
func NewAddressFromParts(
	kind Kind,
	networkId uint8,
	body []byte,
) (Address, error) {
	if _, ok := kindEntityTypes[kind]; !ok {
		return Address{}, &UnknownNetworkOrKindError{
			Hrp: fmt.Sprintf("(kind %d)", uint8(kind)),
		}
	}
	if network := NetworkById(networkId); network == NetworkInvalid {
		return Address{}, &UnknownNetworkOrKindError{
			Hrp: fmt.Sprintf("(network %d)", networkId),
		}
	}
	if len(body) != AddressBodySize {
		return Address{}, &MalformedAddressError{
			Reason: fmt.Sprintf(
				"invalid address body length: %d",
				len(body),
			),
		}
	}
	a := Address{
		kind:      kind,
		networkId: networkId,
	}
	copy(a.body[:], body)
	return a, nil
}

// NewVirtualAccountAddress derives the virtual account component address
// owned by a public key on the given network. The body is the low 26 bytes
// of the blake2b-256 hash of the public key bytes.
func NewVirtualAccountAddress(
	networkId uint8,
	publicKey []byte,
) (Address, error) {
	if len(publicKey) == 0 {
		return Address{}, &MalformedAddressError{
			Reason: "empty public key",
		}
	}
	hash := blake2b.Sum256(publicKey)
	return NewAddressFromParts(
		KindAccountComponent,
		networkId,
		hash[len(hash)-AddressBodySize:],
	)
}

// NewAddressFromBytes returns an Address based on the full binary form,
// using the provided network ID for the human-readable form
func NewAddressFromBytes(networkId uint8, addrBytes []byte) (Address, error) {
	if len(addrBytes) != AddressSize {
		return Address{}, &MalformedAddressError{
			Reason: fmt.Sprintf("invalid address length: %d", len(addrBytes)),
		}
	}
	kind, ok := kindFromEntityType(addrBytes[0])
	if !ok {
		return Address{}, &MalformedAddressError{
			Reason: fmt.Sprintf(
				"unknown entity type byte: 0x%02x",
				addrBytes[0],
			),
		}
	}
	return NewAddressFromParts(kind, networkId, addrBytes[1:])
}

func resolveHrp(hrp string) (Kind, Network, error) {
	sepIdx := strings.LastIndex(hrp, "_")
	if sepIdx < 0 {
		return 0, NetworkInvalid, &UnknownNetworkOrKindError{Hrp: hrp}
	}
	kind, ok := kindFromHrpPrefix(hrp[:sepIdx])
	if !ok {
		return 0, NetworkInvalid, &UnknownNetworkOrKindError{Hrp: hrp}
	}
	network := networkByHrpSuffix(hrp[sepIdx+1:])
	if network == NetworkInvalid {
		return 0, NetworkInvalid, &UnknownNetworkOrKindError{Hrp: hrp}
	}
	return kind, network, nil
}

// Kind returns the entity kind of the address
func (a Address) Kind() Kind {
	return a.kind
}

// NetworkId returns the network ID of the address
func (a Address) NetworkId() uint8 {
	return a.networkId
}

// Body returns the raw address body, excluding the entity discriminant byte
func (a Address) Body() []byte {
	ret := make([]byte, AddressBodySize)
	copy(ret, a.body[:])
	return ret
}

// Bytes returns the full binary form of the address
func (a Address) Bytes() []byte {
	entityType := kindEntityTypes[a.kind]
	ret := make([]byte, 0, AddressSize)
	ret = append(ret, entityType)
	ret = append(ret, a.body[:]...)
	return ret
}

// Hrp returns the human-readable prefix for the address
func (a Address) Hrp() string {
	return kindHrpPrefixes[a.kind] + "_" + NetworkById(a.networkId).HrpSuffix
}

// String returns the bech32m-encoded version of the address
func (a Address) String() string {
	convData, err := bech32.ConvertBits(a.Bytes(), 8, 5, true)
	if err != nil {
		panic(fmt.Sprintf("unexpected error converting data to base32: %s", err))
	}
	encoded, err := bech32.EncodeM(a.Hrp(), convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32m: %s", err))
	}
	return encoded
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("address must be a string: %s", string(data))
	}
	addr, err := NewAddress(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Encode returns the human-readable form for the provided address parts
func Encode(kind Kind, networkId uint8, body []byte) (string, error) {
	addr, err := NewAddressFromParts(kind, networkId, body)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// Decode parses a human-readable address back into its parts
func Decode(addr string) (Kind, uint8, []byte, error) {
	a, err := NewAddress(addr)
	if err != nil {
		return 0, 0, nil, err
	}
	return a.kind, a.networkId, a.Body(), nil
}
