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

package address_test

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/radixtools/transactionlib/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBody() []byte {
	body := make([]byte, address.AddressBodySize)
	for i := range body {
		body[i] = byte(i)
	}
	return body
}

// encodeRaw builds a bech32m string directly, bypassing the codec's own
// validation, for tests that need malformed inputs with valid checksums
func encodeRaw(t *testing.T, hrp string, data []byte) string {
	t.Helper()
	convData, err := bech32.ConvertBits(data, 8, 5, true)
	require.NoError(t, err)
	encoded, err := bech32.EncodeM(hrp, convData)
	require.NoError(t, err)
	return encoded
}

func TestAddressRoundTrip(t *testing.T) {
	body := testBody()
	for _, kind := range []address.Kind{
		address.KindResource,
		address.KindPackage,
		address.KindNormalComponent,
		address.KindAccountComponent,
		address.KindSystemComponent,
	} {
		for _, network := range []address.Network{
			address.NetworkMainnet,
			address.NetworkStokenet,
			address.NetworkSimulator,
		} {
			encoded, err := address.Encode(kind, network.Id, body)
			require.NoError(t, err)
			decodedKind, networkId, decodedBody, err := address.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, kind, decodedKind)
			assert.Equal(t, network.Id, networkId)
			assert.Equal(t, body, decodedBody)
		}
	}
}

func TestAddressHrp(t *testing.T) {
	addr, err := address.NewAddressFromParts(
		address.KindResource,
		address.NetworkMainnet.Id,
		testBody(),
	)
	require.NoError(t, err)
	assert.Equal(t, "resource_rdx", addr.Hrp())
	assert.True(t, strings.HasPrefix(addr.String(), "resource_rdx1"))

	addr, err = address.NewAddressFromParts(
		address.KindAccountComponent,
		address.NetworkSimulator.Id,
		testBody(),
	)
	require.NoError(t, err)
	assert.Equal(t, "account_sim", addr.Hrp())
}

func TestAddressStringStable(t *testing.T) {
	addr, err := address.NewAddressFromParts(
		address.KindPackage,
		address.NetworkStokenet.Id,
		testBody(),
	)
	require.NoError(t, err)
	reparsed, err := address.NewAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, reparsed)
	assert.Equal(t, addr.String(), reparsed.String())
}

func TestAddressCorruptedChecksum(t *testing.T) {
	encoded, err := address.Encode(
		address.KindResource,
		address.NetworkSimulator.Id,
		testBody(),
	)
	require.NoError(t, err)
	// Flip the final checksum character to another charset character
	last := encoded[len(encoded)-1]
	replacement := byte('q')
	if last == replacement {
		replacement = 'p'
	}
	corrupted := encoded[:len(encoded)-1] + string(replacement)
	_, err = address.NewAddress(corrupted)
	var malformedErr *address.MalformedAddressError
	require.ErrorAs(t, err, &malformedErr)
}

func TestAddressUnknownHrp(t *testing.T) {
	data := append([]byte{0x00}, testBody()...)
	testDefs := []string{
		// Unknown entity prefix
		"foo_rdx",
		// Unknown network suffix
		"resource_zzz",
		// No separator at all
		"resource",
	}
	for _, hrp := range testDefs {
		encoded := encodeRaw(t, hrp, data)
		_, err := address.NewAddress(encoded)
		var unknownErr *address.UnknownNetworkOrKindError
		require.ErrorAs(t, err, &unknownErr, "hrp %q", hrp)
		assert.Equal(t, hrp, unknownErr.Hrp)
	}
}

func TestAddressKindMismatch(t *testing.T) {
	// Package entity byte under a resource prefix
	data := append([]byte{0x01}, testBody()...)
	encoded := encodeRaw(t, "resource_sim", data)
	_, err := address.NewAddress(encoded)
	var mismatchErr *address.KindMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, address.KindResource, mismatchErr.HrpKind)
	assert.Equal(t, address.KindPackage, mismatchErr.EntityKind)
}

func TestAddressWrongLength(t *testing.T) {
	// One byte short of a full address
	data := append([]byte{0x00}, testBody()[:address.AddressBodySize-1]...)
	encoded := encodeRaw(t, "resource_sim", data)
	_, err := address.NewAddress(encoded)
	var malformedErr *address.MalformedAddressError
	require.ErrorAs(t, err, &malformedErr)
}

func TestAddressUnknownEntityType(t *testing.T) {
	data := append([]byte{0x7f}, testBody()...)
	encoded := encodeRaw(t, "resource_sim", data)
	_, err := address.NewAddress(encoded)
	var malformedErr *address.MalformedAddressError
	require.ErrorAs(t, err, &malformedErr)
}

func TestAddressRejectsBech32Variant(t *testing.T) {
	data := append([]byte{0x00}, testBody()...)
	convData, err := bech32.ConvertBits(data, 8, 5, true)
	require.NoError(t, err)
	// Original bech32 checksum, not bech32m
	encoded, err := bech32.Encode("resource_sim", convData)
	require.NoError(t, err)
	_, err = address.NewAddress(encoded)
	var malformedErr *address.MalformedAddressError
	require.ErrorAs(t, err, &malformedErr)
	assert.Contains(t, malformedErr.Reason, "bech32m")
}

func TestNewAddressFromParts(t *testing.T) {
	_, err := address.NewAddressFromParts(
		address.Kind(99),
		address.NetworkMainnet.Id,
		testBody(),
	)
	var unknownErr *address.UnknownNetworkOrKindError
	require.ErrorAs(t, err, &unknownErr)

	_, err = address.NewAddressFromParts(
		address.KindResource,
		77,
		testBody(),
	)
	require.ErrorAs(t, err, &unknownErr)

	_, err = address.NewAddressFromParts(
		address.KindResource,
		address.NetworkMainnet.Id,
		testBody()[:10],
	)
	var malformedErr *address.MalformedAddressError
	require.ErrorAs(t, err, &malformedErr)
}

func TestNewAddressFromBytes(t *testing.T) {
	addr, err := address.NewAddressFromParts(
		address.KindAccountComponent,
		address.NetworkNebunet.Id,
		testBody(),
	)
	require.NoError(t, err)
	recovered, err := address.NewAddressFromBytes(
		address.NetworkNebunet.Id,
		addr.Bytes(),
	)
	require.NoError(t, err)
	assert.Equal(t, addr, recovered)

	_, err = address.NewAddressFromBytes(address.NetworkNebunet.Id, []byte{0x00})
	var malformedErr *address.MalformedAddressError
	require.True(t, errors.As(err, &malformedErr))
}

func TestAddressJson(t *testing.T) {
	addr, err := address.NewAddressFromParts(
		address.KindSystemComponent,
		address.NetworkLocalnet.Id,
		testBody(),
	)
	require.NoError(t, err)
	encoded, err := addr.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(encoded))
	var decoded address.Address
	require.NoError(t, decoded.UnmarshalJSON(encoded))
	assert.Equal(t, addr, decoded)
}

func TestVirtualAccountAddress(t *testing.T) {
	// secp256k1 generator point, compressed
	publicKey, err := hex.DecodeString(
		"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	)
	require.NoError(t, err)
	addr, err := address.NewVirtualAccountAddress(
		address.NetworkSimulator.Id,
		publicKey,
	)
	require.NoError(t, err)
	assert.Equal(t, address.KindAccountComponent, addr.Kind())
	assert.Equal(t, address.NetworkSimulator.Id, addr.NetworkId())
	// Low 26 bytes of the key's blake2b-256 digest
	expectedBody, err := hex.DecodeString(
		"b6e84499b83b0797ef5235553eeb7edaa0cea243c1128c2fe737",
	)
	require.NoError(t, err)
	assert.Equal(t, expectedBody, addr.Body())
	assert.True(t, strings.HasPrefix(addr.String(), "account_sim1"))

	// Deriving twice yields the same address
	again, err := address.NewVirtualAccountAddress(
		address.NetworkSimulator.Id,
		publicKey,
	)
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	_, err = address.NewVirtualAccountAddress(address.NetworkSimulator.Id, nil)
	var malformedErr *address.MalformedAddressError
	require.ErrorAs(t, err, &malformedErr)
}

func TestNetworkLookup(t *testing.T) {
	assert.Equal(t, address.NetworkMainnet, address.NetworkByName("mainnet"))
	assert.Equal(t, address.NetworkSimulator, address.NetworkById(242))
	assert.Equal(t, address.NetworkInvalid, address.NetworkByName("bogus"))
	assert.Equal(t, address.NetworkInvalid, address.NetworkById(99))
}
