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

package transactionlib

import (
	"github.com/radixtools/transactionlib/address"
)

// Network definitions from the address package, re-exported for callers
// that only import the root package
type Network = address.Network

var (
	NetworkMainnet   = address.NetworkMainnet
	NetworkStokenet  = address.NetworkStokenet
	NetworkAdapanet  = address.NetworkAdapanet
	NetworkNebunet   = address.NetworkNebunet
	NetworkLocalnet  = address.NetworkLocalnet
	NetworkSimulator = address.NetworkSimulator
)

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	return address.NetworkByName(name)
}

// NetworkById returns a predefined network by ID
func NetworkById(id uint8) Network {
	return address.NetworkById(id)
}
