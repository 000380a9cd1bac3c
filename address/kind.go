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

// Kind identifies the type of ledger entity an address refers to
type Kind uint8

const (
	KindResource Kind = iota
	KindPackage
	KindNormalComponent
	KindAccountComponent
	KindSystemComponent
)

// Entity type discriminant bytes prepended to the address body before
// checksummed encoding
const (
	entityTypeResource         = 0x00
	entityTypePackage          = 0x01
	entityTypeNormalComponent  = 0x02
	entityTypeAccountComponent = 0x03
	entityTypeSystemComponent  = 0x04
)

var kindEntityTypes = map[Kind]uint8{
	KindResource:         entityTypeResource,
	KindPackage:          entityTypePackage,
	KindNormalComponent:  entityTypeNormalComponent,
	KindAccountComponent: entityTypeAccountComponent,
	KindSystemComponent:  entityTypeSystemComponent,
}

var kindHrpPrefixes = map[Kind]string{
	KindResource:         "resource",
	KindPackage:          "package",
	KindNormalComponent:  "component",
	KindAccountComponent: "account",
	KindSystemComponent:  "system",
}

var kindNames = map[Kind]string{
	KindResource:         "Resource",
	KindPackage:          "Package",
	KindNormalComponent:  "NormalComponent",
	KindAccountComponent: "AccountComponent",
	KindSystemComponent:  "SystemComponent",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// EntityType returns the discriminant byte for the kind
func (k Kind) EntityType() (uint8, error) {
	entityType, ok := kindEntityTypes[k]
	if !ok {
		return 0, fmt.Errorf("unknown address kind: %d", uint8(k))
	}
	return entityType, nil
}

// KindFromName returns the Kind matching the provided wire name
func KindFromName(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown address kind name: %s", name)
}

func kindFromEntityType(entityType uint8) (Kind, bool) {
	for kind, tmpEntityType := range kindEntityTypes {
		if tmpEntityType == entityType {
			return kind, true
		}
	}
	return 0, false
}

func kindFromHrpPrefix(prefix string) (Kind, bool) {
	for kind, tmpPrefix := range kindHrpPrefixes {
		if tmpPrefix == prefix {
			return kind, true
		}
	}
	return 0, false
}

func (k Kind) MarshalJSON() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown address kind: %d", uint8(k))
	}
	return []byte(`"` + name + `"`), nil
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("address kind must be a string: %s", string(data))
	}
	kind, err := KindFromName(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
