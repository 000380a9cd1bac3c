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

	"github.com/radixtools/transactionlib/address"
	"github.com/radixtools/transactionlib/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(
	t *testing.T,
	err error,
	expectedIndex int,
) *manifest.ValidationError {
	t.Helper()
	var validationErr *manifest.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, expectedIndex, validationErr.InstructionIndex)
	return validationErr
}

func TestValidateBucketLifecycle(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x21)
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.TakeFromWorktop{
				ResourceAddress: resourceAddr,
				IntoBucket:      manifest.BucketValue{Identifier: "b"},
			},
			manifest.CreateProofFromBucket{
				Bucket:    manifest.BucketValue{Identifier: "b"},
				IntoProof: manifest.ProofValue{Identifier: "p"},
			},
			// Creating a proof does not consume the bucket
			manifest.ReturnToWorktop{
				Bucket: manifest.BucketValue{Identifier: "b"},
			},
			manifest.DropProof{
				Proof: manifest.ProofValue{Identifier: "p"},
			},
		},
	}
	require.NoError(t, m.Validate())
}

func TestValidateUndeclaredBucket(t *testing.T) {
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.ReturnToWorktop{
				Bucket: manifest.BucketValue{Identifier: "b"},
			},
		},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 0)
	var bucketErr *manifest.InvalidBucketStateError
	require.ErrorAs(t, validationErr, &bucketErr)
	assert.Equal(t, "b", bucketErr.Identifier)
}

func TestValidateBucketDoubleConsume(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x22)
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.TakeFromWorktop{
				ResourceAddress: resourceAddr,
				IntoBucket:      manifest.BucketValue{Identifier: "b"},
			},
			manifest.ReturnToWorktop{
				Bucket: manifest.BucketValue{Identifier: "b"},
			},
			manifest.ReturnToWorktop{
				Bucket: manifest.BucketValue{Identifier: "b"},
			},
		},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 2)
	var bucketErr *manifest.InvalidBucketStateError
	require.ErrorAs(t, validationErr, &bucketErr)
}

func TestValidateDuplicateBinding(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x23)
	take := manifest.TakeFromWorktop{
		ResourceAddress: resourceAddr,
		IntoBucket:      manifest.BucketValue{Identifier: "b"},
	}
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{take, take},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 1)
	var duplicateErr *manifest.DuplicateBindingError
	require.ErrorAs(t, validationErr, &duplicateErr)
	assert.Equal(t, "b", duplicateErr.Identifier)
}

func TestValidateRebindConsumedIdentifier(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x24)
	take := manifest.TakeFromWorktop{
		ResourceAddress: resourceAddr,
		IntoBucket:      manifest.BucketValue{Identifier: "b"},
	}
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			take,
			manifest.ReturnToWorktop{
				Bucket: manifest.BucketValue{Identifier: "b"},
			},
			// Identifiers stay bound after consumption
			take,
		},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 2)
	var duplicateErr *manifest.DuplicateBindingError
	require.ErrorAs(t, validationErr, &duplicateErr)
}

func TestValidateProofLifecycle(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x25)
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.CreateProofFromAuthZone{
				ResourceAddress: resourceAddr,
				IntoProof:       manifest.ProofValue{Identifier: "p"},
			},
			manifest.CloneProof{
				Proof:     manifest.ProofValue{Identifier: "p"},
				IntoProof: manifest.ProofValue{Identifier: "p2"},
			},
			manifest.PushToAuthZone{
				Proof: manifest.ProofValue{Identifier: "p"},
			},
			manifest.DropProof{
				Proof: manifest.ProofValue{Identifier: "p2"},
			},
		},
	}
	require.NoError(t, m.Validate())
}

func TestValidateProofDoublePush(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x26)
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.CreateProofFromAuthZone{
				ResourceAddress: resourceAddr,
				IntoProof:       manifest.ProofValue{Identifier: "p"},
			},
			manifest.PushToAuthZone{
				Proof: manifest.ProofValue{Identifier: "p"},
			},
			manifest.PushToAuthZone{
				Proof: manifest.ProofValue{Identifier: "p"},
			},
		},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 2)
	var proofErr *manifest.InvalidProofStateError
	require.ErrorAs(t, validationErr, &proofErr)
	assert.Equal(t, "p", proofErr.Identifier)
}

func TestValidateUndeclaredProof(t *testing.T) {
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.DropProof{
				Proof: manifest.ProofValue{Identifier: "nope"},
			},
		},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 0)
	var proofErr *manifest.InvalidProofStateError
	require.ErrorAs(t, validationErr, &proofErr)
}

func TestValidateDropAllProofs(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x27)
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.CreateProofFromAuthZone{
				ResourceAddress: resourceAddr,
				IntoProof:       manifest.ProofValue{Identifier: "p"},
			},
			manifest.DropAllProofs{},
			manifest.DropProof{
				Proof: manifest.ProofValue{Identifier: "p"},
			},
		},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 2)
	var proofErr *manifest.InvalidProofStateError
	require.ErrorAs(t, validationErr, &proofErr)
}

func TestValidateCallArgumentsConsume(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x28)
	componentAddr := testComponentAddress(t, 0x29)
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.TakeFromWorktop{
				ResourceAddress: resourceAddr,
				IntoBucket:      manifest.BucketValue{Identifier: "b"},
			},
			manifest.CallMethod{
				ComponentAddress: componentAddr,
				MethodName:       manifest.StringValue{Value: "deposit"},
				Arguments: []manifest.Value{
					// Bucket nested inside a tuple still transfers
					manifest.TupleValue{
						Elements: []manifest.Value{
							manifest.BucketValue{Identifier: "b"},
						},
					},
				},
			},
			manifest.ReturnToWorktop{
				Bucket: manifest.BucketValue{Identifier: "b"},
			},
		},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 2)
	var bucketErr *manifest.InvalidBucketStateError
	require.ErrorAs(t, validationErr, &bucketErr)
	assert.Equal(t, "already consumed", bucketErr.Reason)
}

func TestValidateCallMethodWithAllResources(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x2a)
	componentAddr := testComponentAddress(t, 0x2b)
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.TakeFromWorktop{
				ResourceAddress: resourceAddr,
				IntoBucket:      manifest.BucketValue{Identifier: "b"},
			},
			manifest.CallMethodWithAllResources{
				ComponentAddress: componentAddr,
				MethodName:       manifest.StringValue{Value: "deposit_batch"},
			},
			manifest.ReturnToWorktop{
				Bucket: manifest.BucketValue{Identifier: "b"},
			},
		},
	}
	err := m.Validate()
	requireValidationError(t, err, 2)
}

func TestValidateNetwork(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x31)
	componentAddr := testComponentAddress(t, 0x32)

	mainnetBody := make([]byte, address.AddressBodySize)
	for i := range mainnetBody {
		mainnetBody[i] = 0x33
	}
	mainnetAddr, err := address.NewAddressFromParts(
		address.KindResource,
		address.NetworkMainnet.Id,
		mainnetBody,
	)
	require.NoError(t, err)

	// All operands on the expected network
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.TakeFromWorktop{
				ResourceAddress: resourceAddr,
				IntoBucket:      manifest.BucketValue{Identifier: "b"},
			},
			manifest.CallMethod{
				ComponentAddress: componentAddr,
				MethodName:       manifest.StringValue{Value: "deposit"},
				Arguments: []manifest.Value{
					manifest.BucketValue{Identifier: "b"},
				},
			},
		},
	}
	require.NoError(t, m.ValidateNetwork(testNetworkId))

	// A mainnet address under a simulator manifest is rejected
	m = manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.AssertWorktopContains{
				ResourceAddress: manifest.ResourceAddressValue{
					Address: mainnetAddr,
				},
			},
		},
	}
	err = m.ValidateNetwork(testNetworkId)
	validationErr := requireValidationError(t, err, 0)
	var networkErr *manifest.NetworkMismatchError
	require.ErrorAs(t, validationErr, &networkErr)
	assert.Equal(t, uint8(testNetworkId), networkErr.Expected)
	assert.Equal(t, address.NetworkMainnet.Id, networkErr.Actual)

	// Foreign addresses nested inside call arguments are found too
	m = manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.CallMethod{
				ComponentAddress: componentAddr,
				MethodName:       manifest.StringValue{Value: "deposit"},
				Arguments: []manifest.Value{
					manifest.TupleValue{
						Elements: []manifest.Value{
							manifest.ResourceAddressValue{Address: mainnetAddr},
						},
					},
				},
			},
		},
	}
	err = m.ValidateNetwork(testNetworkId)
	validationErr = requireValidationError(t, err, 0)
	require.ErrorAs(t, validationErr, &networkErr)
}

func TestValidateOperandErrors(t *testing.T) {
	resourceAddr := testResourceAddress(t, 0x2c)

	// Negative amount
	m := manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.TakeFromWorktopByAmount{
				Amount:          testDecimal(t, "-1"),
				ResourceAddress: resourceAddr,
				IntoBucket:      manifest.BucketValue{Identifier: "b"},
			},
		},
	}
	err := m.Validate()
	validationErr := requireValidationError(t, err, 0)
	var rangeErr *manifest.OutOfRangeError
	require.ErrorAs(t, validationErr, &rangeErr)

	// Missing blueprint name
	m = manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.CallFunction{
				PackageAddress: testPackageAddress(t, 0x2d),
				FunctionName:   manifest.StringValue{Value: "new"},
			},
		},
	}
	err = m.Validate()
	validationErr = requireValidationError(t, err, 0)
	var missingErr *manifest.MissingRequiredFieldError
	require.ErrorAs(t, validationErr, &missingErr)

	// Resource operand holding a package address
	m = manifest.Manifest{
		Instructions: []manifest.Instruction{
			manifest.AssertWorktopContains{
				ResourceAddress: manifest.ResourceAddressValue{
					Address: testAddress(t, address.KindPackage, 0x2e),
				},
			},
		},
	}
	err = m.Validate()
	validationErr = requireValidationError(t, err, 0)
	var mismatchErr *address.KindMismatchError
	require.ErrorAs(t, validationErr, &mismatchErr)
}
