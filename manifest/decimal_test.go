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
	"math/big"
	"strings"
	"testing"

	"github.com/radixtools/transactionlib/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalParseRender(t *testing.T) {
	testDefs := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"1", "1"},
		{"+7", "7"},
		{"-1", "-1"},
		{"1.5", "1.5"},
		{"-1.5", "-1.5"},
		{".5", "0.5"},
		{"123.450000", "123.45"},
		{"0.000000000000000001", "0.000000000000000001"},
		{"-0.000000000000000001", "-0.000000000000000001"},
		{"123456789012345678901234567890.1", "123456789012345678901234567890.1"},
	}
	for _, testDef := range testDefs {
		value, err := manifest.NewDecimalFromString(testDef.input)
		require.NoError(t, err, "input %q", testDef.input)
		assert.Equal(t, testDef.expected, value.String(), "input %q", testDef.input)
	}
}

func TestDecimalScaledValue(t *testing.T) {
	value := testDecimal(t, "1")
	unit := new(big.Int).Exp(
		big.NewInt(10),
		big.NewInt(manifest.DecimalScale),
		nil,
	)
	assert.Zero(t, value.Value.Cmp(unit))

	value = testDecimal(t, "2.5")
	expected := new(big.Int).Mul(unit, big.NewInt(25))
	expected.Div(expected, big.NewInt(10))
	assert.Zero(t, value.Value.Cmp(expected))
}

func TestDecimalTooManyFractionalDigits(t *testing.T) {
	_, err := manifest.NewDecimalFromString(
		"0." + strings.Repeat("1", manifest.DecimalScale+1),
	)
	require.Error(t, err)
}

func TestDecimalInvalid(t *testing.T) {
	for _, input := range []string{"abc", ".", "-", "1.2.3", "1,5"} {
		_, err := manifest.NewDecimalFromString(input)
		require.Error(t, err, "input %q", input)
	}
	var missingErr *manifest.MissingRequiredFieldError
	_, err := manifest.NewDecimalFromString("")
	require.ErrorAs(t, err, &missingErr)
}

func TestDecimalValidate(t *testing.T) {
	var missingErr *manifest.MissingRequiredFieldError
	require.ErrorAs(t, manifest.DecimalValue{}.Validate(), &missingErr)
	require.NoError(t, testDecimal(t, "1").Validate())
}
