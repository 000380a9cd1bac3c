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

// Network definitions
var (
	NetworkMainnet = Network{
		Id:        1,
		Name:      "mainnet",
		HrpSuffix: "rdx",
	}
	NetworkStokenet = Network{
		Id:        2,
		Name:      "stokenet",
		HrpSuffix: "tdx",
	}
	NetworkAdapanet = Network{
		Id:        10,
		Name:      "adapanet",
		HrpSuffix: "adx",
	}
	NetworkNebunet = Network{
		Id:        11,
		Name:      "nebunet",
		HrpSuffix: "nbx",
	}
	NetworkLocalnet = Network{
		Id:        240,
		Name:      "localnet",
		HrpSuffix: "loc",
	}
	NetworkSimulator = Network{
		Id:        242,
		Name:      "simulator",
		HrpSuffix: "sim",
	}

	NetworkInvalid = Network{
		Id:        0,
		Name:      "invalid",
		HrpSuffix: "",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkStokenet,
	NetworkAdapanet,
	NetworkNebunet,
	NetworkLocalnet,
	NetworkSimulator,
}

// Network represents a network with a registered human-readable prefix
// namespace
type Network struct {
	Id        uint8
	Name      string
	HrpSuffix string
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkById returns a predefined network by ID
func NetworkById(id uint8) Network {
	for _, network := range networks {
		if network.Id == id {
			return network
		}
	}
	return NetworkInvalid
}

func networkByHrpSuffix(suffix string) Network {
	for _, network := range networks {
		if network.HrpSuffix == suffix {
			return network
		}
	}
	return NetworkInvalid
}
