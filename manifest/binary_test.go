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

package manifest_test

import (
	"testing"

	"github.com/radixtools/transactionlib/manifest"
	"github.com/radixtools/transactionlib/sbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInstructions(t *testing.T) []manifest.Instruction {
	t.Helper()
	resourceAddr := testResourceAddress(t, 0x31)
	componentAddr := testComponentAddress(t, 0x32)
	packageAddr := testPackageAddress(t, 0x33)
	return []manifest.Instruction{
		manifest.TakeFromWorktop{
			ResourceAddress: resourceAddr,
			IntoBucket:      manifest.BucketValue{Identifier: "b1"},
		},
		manifest.TakeFromWorktopByAmount{
			Amount:          testDecimal(t, "123.456"),
			ResourceAddress: resourceAddr,
			IntoBucket:      manifest.BucketValue{Identifier: "b2"},
		},
		manifest.ReturnToWorktop{
			Bucket: manifest.BucketValue{Identifier: "b1"},
		},
		manifest.AssertWorktopContains{
			ResourceAddress: resourceAddr,
		},
		manifest.PopFromAuthZone{
			IntoProof: manifest.ProofValue{Identifier: "p1"},
		},
		manifest.PushToAuthZone{
			Proof: manifest.ProofValue{Identifier: "p1"},
		},
		manifest.ClearAuthZone{},
		manifest.CreateProofFromAuthZone{
			ResourceAddress: resourceAddr,
			IntoProof:       manifest.ProofValue{Identifier: "p2"},
		},
		manifest.CreateProofFromBucket{
			Bucket:    manifest.BucketValue{Identifier: "b2"},
			IntoProof: manifest.ProofValue{Identifier: "p3"},
		},
		manifest.CloneProof{
			Proof:     manifest.ProofValue{Identifier: "p2"},
			IntoProof: manifest.ProofValue{Identifier: "p4"},
		},
		manifest.DropProof{
			Proof: manifest.ProofValue{Identifier: "p4"},
		},
		manifest.DropAllProofs{},
		manifest.CallFunction{
			PackageAddress: packageAddr,
			BlueprintName:  manifest.StringValue{Value: "Token"},
			FunctionName:   manifest.StringValue{Value: "new"},
			Arguments: []manifest.Value{
				manifest.U64Value{Value: 1000000},
				manifest.EnumValue{
					Variant: 1,
					Fields: []manifest.Value{
						manifest.StringValue{Value: "inner"},
					},
				},
				manifest.ArrayValue{
					ElementKind: manifest.ValueKindI32,
					Elements: []manifest.Value{
						manifest.I32Value{Value: -1},
						manifest.I32Value{Value: 2},
					},
				},
			},
		},
		manifest.CallMethod{
			ComponentAddress: componentAddr,
			MethodName:       manifest.StringValue{Value: "deposit"},
			Arguments: []manifest.Value{
				manifest.BucketValue{Identifier: "b2"},
				manifest.BoolValue{Value: true},
				manifest.TupleValue{
					Elements: []manifest.Value{
						testDecimal(t, "-0.5"),
						manifest.BytesValue{Value: []byte{0x01, 0x02}},
					},
				},
			},
		},
		manifest.CallMethodWithAllResources{
			ComponentAddress: componentAddr,
			MethodName:       manifest.StringValue{Value: "deposit_batch"},
		},
		manifest.PublishPackage{
			Code: manifest.BytesValue{Value: []byte{0x00, 0x61, 0x73, 0x6d}},
			Abi:  manifest.BytesValue{Value: []byte{0xa0}},
		},
	}
}

func TestInstructionBinaryRoundTrip(t *testing.T) {
	for _, instruction := range testInstructions(t) {
		encoded, err := manifest.EncodeInstruction(instruction)
		require.NoError(t, err, "instruction %s", instruction.Op())
		decoded, err := manifest.DecodeInstruction(encoded, testNetworkId)
		require.NoError(t, err, "instruction %s", instruction.Op())
		assert.Equal(t, instruction, decoded, "instruction %s", instruction.Op())
	}
}

func TestInstructionBinaryDeterministic(t *testing.T) {
	for _, instruction := range testInstructions(t) {
		first, err := manifest.EncodeInstruction(instruction)
		require.NoError(t, err)
		second, err := manifest.EncodeInstruction(instruction)
		require.NoError(t, err)
		assert.Equal(t, first, second, "instruction %s", instruction.Op())
	}
}

func TestDecodeInstructionUnknownTag(t *testing.T) {
	encoded, err := sbor.Encode([]any{uint8(99)})
	require.NoError(t, err)
	_, err = manifest.DecodeInstruction(encoded, testNetworkId)
	var unsupportedErr *manifest.UnsupportedInstructionError
	require.ErrorAs(t, err, &unsupportedErr)
}

func TestDecodeInstructionWrongOperandCount(t *testing.T) {
	// RETURN_TO_WORKTOP with no operands
	encoded, err := sbor.Encode([]any{uint8(manifest.OpReturnToWorktop)})
	require.NoError(t, err)
	_, err = manifest.DecodeInstruction(encoded, testNetworkId)
	require.Error(t, err)
}

func TestDecodeInstructionGarbage(t *testing.T) {
	_, err := manifest.DecodeInstruction([]byte{0xff, 0xff}, testNetworkId)
	require.Error(t, err)
}

func TestValueKindTags(t *testing.T) {
	// The numeric tags are part of the wire format
	assert.Equal(t, uint8(0), uint8(manifest.ValueKindBool))
	assert.Equal(t, uint8(9), uint8(manifest.ValueKindString))
	assert.Equal(t, uint8(10), uint8(manifest.ValueKindDecimal))
	assert.Equal(t, uint8(14), uint8(manifest.ValueKindArray))
	assert.Equal(t, uint8(0x20), uint8(manifest.ValueKindResourceAddress))
	assert.Equal(t, uint8(0x23), uint8(manifest.ValueKindSystemAddress))
	assert.Equal(t, uint8(0x30), uint8(manifest.ValueKindBucket))
	assert.Equal(t, uint8(0x31), uint8(manifest.ValueKindProof))
}

func TestOpcodeTags(t *testing.T) {
	assert.Equal(t, uint8(0), uint8(manifest.OpTakeFromWorktop))
	assert.Equal(t, uint8(6), uint8(manifest.OpClearAuthZone))
	assert.Equal(t, uint8(12), uint8(manifest.OpCallFunction))
	assert.Equal(t, uint8(15), uint8(manifest.OpPublishPackage))
}
