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

package intent_test

import (
	"encoding/hex"
	"testing"

	"github.com/radixtools/transactionlib/address"
	"github.com/radixtools/transactionlib/intent"
	"github.com/radixtools/transactionlib/manifest"
	"github.com/radixtools/transactionlib/sbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNetworkId = 242 // simulator

func testAddress(t *testing.T, kind address.Kind, fill byte) address.Address {
	t.Helper()
	body := make([]byte, address.AddressBodySize)
	for i := range body {
		body[i] = fill
	}
	addr, err := address.NewAddressFromParts(kind, testNetworkId, body)
	require.NoError(t, err)
	return addr
}

func testIntent(t *testing.T) intent.TransactionIntent {
	t.Helper()
	amount, err := manifest.NewDecimalFromString("25.75")
	require.NoError(t, err)
	return intent.TransactionIntent{
		Header: intent.Header{
			Version:   intent.TransactionVersionV1,
			NetworkId: testNetworkId,
		},
		Manifest: manifest.Manifest{
			Instructions: []manifest.Instruction{
				manifest.TakeFromWorktopByAmount{
					Amount: manifest.DecimalValue{Value: amount.Value},
					ResourceAddress: manifest.ResourceAddressValue{
						Address: testAddress(t, address.KindResource, 0x01),
					},
					IntoBucket: manifest.BucketValue{Identifier: "xrd"},
				},
				manifest.CallMethod{
					ComponentAddress: manifest.ComponentAddressValue{
						Address: testAddress(t, address.KindAccountComponent, 0x02),
					},
					MethodName: manifest.StringValue{Value: "deposit"},
					Arguments: []manifest.Value{
						manifest.BucketValue{Identifier: "xrd"},
					},
				},
			},
		},
	}
}

func TestCompileGolden(t *testing.T) {
	// Version 1, network 242, single CLEAR_AUTH_ZONE. These bytes are the
	// wire format and must never change.
	txIntent := intent.TransactionIntent{
		Header: intent.Header{
			Version:   intent.TransactionVersionV1,
			NetworkId: testNetworkId,
		},
		Manifest: manifest.Manifest{
			Instructions: []manifest.Instruction{
				manifest.ClearAuthZone{},
			},
		},
	}
	compiled, err := txIntent.Compile()
	require.NoError(t, err)
	assert.Equal(t, "830118f2818106", hex.EncodeToString(compiled))

	hash := intent.Hash(compiled)
	assert.Equal(
		t,
		"7d98a6b54234a664fa18d514b641f17dd48172679744edcd2a716effe968c05d",
		hex.EncodeToString(hash[:]),
	)
}

func TestCompileDecompileRoundTrip(t *testing.T) {
	txIntent := testIntent(t)
	compiled, err := txIntent.Compile()
	require.NoError(t, err)
	decompiled, err := intent.Decompile(compiled)
	require.NoError(t, err)
	assert.Equal(t, txIntent.Header, decompiled.Header)
	assert.Equal(t, txIntent.Manifest.Instructions, decompiled.Manifest.Instructions)
	// Recompiling yields identical bytes
	recompiled, err := decompiled.Compile()
	require.NoError(t, err)
	assert.Equal(t, compiled, recompiled)
}

func TestCompileDeterministic(t *testing.T) {
	txIntent := testIntent(t)
	first, err := txIntent.Compile()
	require.NoError(t, err)
	second, err := txIntent.Compile()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompileInvalidManifest(t *testing.T) {
	txIntent := intent.TransactionIntent{
		Header: intent.Header{
			Version:   intent.TransactionVersionV1,
			NetworkId: testNetworkId,
		},
		Manifest: manifest.Manifest{
			Instructions: []manifest.Instruction{
				manifest.ReturnToWorktop{
					Bucket: manifest.BucketValue{Identifier: "b"},
				},
			},
		},
	}
	_, err := txIntent.Compile()
	var validationErr *manifest.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, validationErr.InstructionIndex)
}

func TestCompileRejectsAddressNetworkMismatch(t *testing.T) {
	txIntent := testIntent(t)
	mainnetBody := make([]byte, address.AddressBodySize)
	for i := range mainnetBody {
		mainnetBody[i] = 0x03
	}
	mainnetAddr, err := address.NewAddressFromParts(
		address.KindResource,
		address.NetworkMainnet.Id,
		mainnetBody,
	)
	require.NoError(t, err)
	take := txIntent.Manifest.Instructions[0].(manifest.TakeFromWorktopByAmount)
	take.ResourceAddress = manifest.ResourceAddressValue{Address: mainnetAddr}
	txIntent.Manifest.Instructions[0] = take

	_, err = txIntent.Compile()
	var networkErr *manifest.NetworkMismatchError
	require.ErrorAs(t, err, &networkErr)
	assert.Equal(t, uint8(testNetworkId), networkErr.Expected)
	assert.Equal(t, address.NetworkMainnet.Id, networkErr.Actual)
}

func TestCompileRejectsUnknownNetwork(t *testing.T) {
	txIntent := intent.TransactionIntent{
		Header: intent.Header{
			Version:   intent.TransactionVersionV1,
			NetworkId: 255,
		},
		Manifest: manifest.Manifest{
			Instructions: []manifest.Instruction{
				manifest.ClearAuthZone{},
			},
		},
	}
	_, err := txIntent.Compile()
	var unknownErr *address.UnknownNetworkError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, uint8(255), unknownErr.NetworkId)
}

func TestDecompileRetainsCompiledBytes(t *testing.T) {
	txIntent := testIntent(t)
	compiled, err := txIntent.Compile()
	require.NoError(t, err)
	decompiled, err := intent.Decompile(compiled)
	require.NoError(t, err)
	assert.Equal(t, compiled, decompiled.Sbor())
}

func TestDecompileTruncated(t *testing.T) {
	txIntent := testIntent(t)
	compiled, err := txIntent.Compile()
	require.NoError(t, err)
	_, err = intent.Decompile(compiled[:len(compiled)/2])
	var corruptErr *manifest.CorruptIntentError
	require.ErrorAs(t, err, &corruptErr)
}

func TestDecompileCorruptInstructionOffset(t *testing.T) {
	valid, err := manifest.EncodeInstruction(manifest.ClearAuthZone{})
	require.NoError(t, err)
	// A bare uint where an instruction list is expected
	bad, err := sbor.Encode(uint8(5))
	require.NoError(t, err)
	compiled, err := sbor.Encode([]any{
		uint8(intent.TransactionVersionV1),
		uint8(testNetworkId),
		[]any{sbor.RawMessage(valid), sbor.RawMessage(bad)},
	})
	require.NoError(t, err)
	_, err = intent.Decompile(compiled)
	var corruptErr *manifest.CorruptIntentError
	require.ErrorAs(t, err, &corruptErr)
	// The offset points at the corrupt instruction's first byte
	assert.Equal(t, len(compiled)-len(bad), corruptErr.Offset)
}

func TestDecompileUnsupportedInstruction(t *testing.T) {
	unknown, err := sbor.Encode([]any{uint8(99)})
	require.NoError(t, err)
	compiled, err := sbor.Encode([]any{
		uint8(intent.TransactionVersionV1),
		uint8(testNetworkId),
		[]any{sbor.RawMessage(unknown)},
	})
	require.NoError(t, err)
	_, err = intent.Decompile(compiled)
	var unsupportedErr *manifest.UnsupportedInstructionError
	require.ErrorAs(t, err, &unsupportedErr)
}

func TestDecompileGarbage(t *testing.T) {
	_, err := intent.Decompile([]byte{0xff, 0x00, 0x12})
	var corruptErr *manifest.CorruptIntentError
	require.ErrorAs(t, err, &corruptErr)
}

func TestHashLength(t *testing.T) {
	hash := intent.Hash([]byte("payload"))
	assert.Len(t, hash[:], 32)
}
