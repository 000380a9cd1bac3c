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

package manifest

import (
	"fmt"
	"math/big"
	"strings"
)

// DecimalScale is the number of fractional digits carried by Decimal values
const DecimalScale = 18

var decimalUnit = func() *big.Int {
	ret := big.NewInt(10)
	return ret.Exp(ret, big.NewInt(DecimalScale), nil)
}()

// DecimalValue is a fixed-point decimal with 18 fractional digits, stored as
// a scaled integer
type DecimalValue struct {
	Value *big.Int
}

func (DecimalValue) ValueKind() ValueKind { return ValueKindDecimal }
func (v DecimalValue) Validate() error {
	if v.Value == nil {
		return &MissingRequiredFieldError{Type: "Decimal", Field: "value"}
	}
	return nil
}

// NewDecimalFromString parses a decimal string such as "123.456" into a
// DecimalValue. At most DecimalScale fractional digits are allowed.
func NewDecimalFromString(s string) (DecimalValue, error) {
	if s == "" {
		return DecimalValue{}, &MissingRequiredFieldError{
			Type:  "Decimal",
			Field: "value",
		}
	}
	neg := false
	rest := s
	switch s[0] {
	case '-':
		neg = true
		rest = s[1:]
	case '+':
		rest = s[1:]
	}
	intPart := rest
	fracPart := ""
	if dotIdx := strings.IndexByte(rest, '.'); dotIdx >= 0 {
		intPart = rest[:dotIdx]
		fracPart = rest[dotIdx+1:]
	}
	if intPart == "" && fracPart == "" {
		return DecimalValue{}, fmt.Errorf("invalid decimal: %q", s)
	}
	if len(fracPart) > DecimalScale {
		return DecimalValue{}, fmt.Errorf(
			"decimal %q has more than %d fractional digits",
			s,
			DecimalScale,
		)
	}
	if intPart == "" {
		intPart = "0"
	}
	// Scale up by padding the fractional part to the full scale
	digits := intPart + fracPart + strings.Repeat("0", DecimalScale-len(fracPart))
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return DecimalValue{}, fmt.Errorf("invalid decimal: %q", s)
	}
	if neg {
		value.Neg(value)
	}
	return DecimalValue{Value: value}, nil
}

// String renders the decimal in canonical form with trailing fractional
// zeroes removed
func (v DecimalValue) String() string {
	if v.Value == nil {
		return "0"
	}
	quo, rem := new(big.Int).QuoRem(
		new(big.Int).Abs(v.Value),
		decimalUnit,
		new(big.Int),
	)
	sign := ""
	if v.Value.Sign() < 0 {
		sign = "-"
	}
	if rem.Sign() == 0 {
		return sign + quo.String()
	}
	frac := fmt.Sprintf("%0*s", DecimalScale, rem.String())
	frac = strings.TrimRight(frac, "0")
	return sign + quo.String() + "." + frac
}
