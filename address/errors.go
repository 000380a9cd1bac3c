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

package address

import "fmt"

// MalformedAddressError is returned when an address string fails checksum
// verification or has an invalid structure
type MalformedAddressError struct {
	Address string
	Reason  string
}

func (e *MalformedAddressError) Error() string {
	return fmt.Sprintf(
		"malformed address %q: %s",
		e.Address,
		e.Reason,
	)
}

// UnknownNetworkOrKindError is returned when an address HRP does not resolve
// to a registered (network, kind) pair
type UnknownNetworkOrKindError struct {
	Hrp string
}

func (e *UnknownNetworkOrKindError) Error() string {
	return fmt.Sprintf(
		"HRP %q does not match any known network or entity kind",
		e.Hrp,
	)
}

// UnknownNetworkError is returned when a network ID has no registered
// definition
type UnknownNetworkError struct {
	NetworkId uint8
}

func (e *UnknownNetworkError) Error() string {
	return fmt.Sprintf(
		"network ID %d has no registered definition",
		e.NetworkId,
	)
}

// KindMismatchError is returned when the entity discriminant byte inside an
// address does not match the kind indicated by its HRP
type KindMismatchError struct {
	HrpKind    Kind
	EntityKind Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf(
		"address kind mismatch: HRP indicates %s but entity byte indicates %s",
		e.HrpKind,
		e.EntityKind,
	)
}
