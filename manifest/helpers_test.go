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

func testDecimal(t *testing.T, s string) manifest.DecimalValue {
	t.Helper()
	value, err := manifest.NewDecimalFromString(s)
	require.NoError(t, err)
	return value
}

func testResourceAddress(t *testing.T, fill byte) manifest.ResourceAddressValue {
	t.Helper()
	return manifest.ResourceAddressValue{
		Address: testAddress(t, address.KindResource, fill),
	}
}

func testComponentAddress(t *testing.T, fill byte) manifest.ComponentAddressValue {
	t.Helper()
	return manifest.ComponentAddressValue{
		Address: testAddress(t, address.KindNormalComponent, fill),
	}
}

func testPackageAddress(t *testing.T, fill byte) manifest.PackageAddressValue {
	t.Helper()
	return manifest.PackageAddressValue{
		Address: testAddress(t, address.KindPackage, fill),
	}
}
