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

// Package sbor implements the canonical binary encoding used for compiled
// transaction intents and package ABI payloads. It wraps
// github.com/fxamacker/cbor/v2 with deterministic encode options so that
// the same value always produces byte-identical output.
package sbor

import (
	"fmt"
	"reflect"

	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

const (
	TypeByteString uint8 = 0x40
	TypeTextString uint8 = 0x60
	TypeArray      uint8 = 0x80
	TypeMap        uint8 = 0xa0

	// Only the top 3 bits are used to specify the type
	TypeMask uint8 = 0xe0

	// Max value able to be stored in a single byte without type prefix
	MaxUintSimple uint8 = 0x17
)

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Useful for embedding and easier to remember
type StructAsArray struct {
	// Tells the decoder to convert to/from a struct and an array
	_ struct{} `cbor:",toarray"`
}

type DecodeStoreSborInterface interface {
	Sbor() []byte
}

// DecodeStoreSbor is embedded in types that need to retain their original
// encoded bytes for hashing or re-serialization
type DecodeStoreSbor struct {
	sborData []byte
}

// Sbor returns the original encoded bytes for the object
func (d *DecodeStoreSbor) Sbor() []byte {
	return d.sborData
}

// SetSbor stores a copy of the original encoded bytes
func (d *DecodeStoreSbor) SetSbor(data []byte) {
	d.sborData = make([]byte, len(data))
	copy(d.sborData, data)
}

// UnmarshalSborGeneric decodes the specified bytes into the destination object
// without using the destination object's UnmarshalCBOR() function
func (d *DecodeStoreSbor) UnmarshalSborGeneric(
	data []byte,
	dest DecodeStoreSborInterface,
) error {
	// Create a duplicate(-ish) struct from the destination so that we can
	// bypass any custom UnmarshalCBOR() function on the destination object
	valueDest := reflect.ValueOf(dest)
	if valueDest.Kind() != reflect.Pointer ||
		valueDest.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("destination must be a pointer to a struct")
	}
	typeDestElem := valueDest.Elem().Type()
	destTypeFields := []reflect.StructField{}
	for i := 0; i < typeDestElem.NumField(); i++ {
		tmpField := typeDestElem.Field(i)
		if tmpField.IsExported() && tmpField.Name != "DecodeStoreSbor" {
			destTypeFields = append(destTypeFields, tmpField)
		}
	}
	// Create temporary object with the type created above
	tmpDest := reflect.New(reflect.StructOf(destTypeFields))
	// Decode into temporary object
	if _, err := Decode(data, tmpDest.Interface()); err != nil {
		return err
	}
	// Copy values from temporary object into destination object
	if err := copier.Copy(dest, tmpDest.Interface()); err != nil {
		return err
	}
	// Store a copy of the original encoded data. This must be done after we
	// copy from the temp object above, or it gets wiped out when using struct
	// embedding and the DecodeStoreSbor struct is embedded at a deeper level
	d.SetSbor(data)
	return nil
}
