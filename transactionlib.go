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

// Package transactionlib provides stateless request/response handlers over
// the manifest compiler, address codec, intent framing, and package
// extractor. Byte blobs cross this boundary as lowercase hex strings; all
// handlers are safe for concurrent use.
package transactionlib

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/radixtools/transactionlib/abi"
	"github.com/radixtools/transactionlib/address"
	"github.com/radixtools/transactionlib/intent"
	"github.com/radixtools/transactionlib/keys"
	"github.com/radixtools/transactionlib/manifest"
)

const packageVersion = "0.1.0"

// ManifestKind selects the representation of a manifest inside a request or
// response envelope
type ManifestKind string

const (
	ManifestKindString ManifestKind = "String"
	ManifestKindJson   ManifestKind = "JSON"
)

// ManifestEnvelope carries a manifest in either its textual or its JSON
// representation
type ManifestEnvelope struct {
	Type  ManifestKind    `json:"type"`
	Value json.RawMessage `json:"value"`
}

// NewManifestEnvelope renders a manifest into an envelope of the requested
// kind
func NewManifestEnvelope(
	m *manifest.Manifest,
	kind ManifestKind,
) (*ManifestEnvelope, error) {
	switch kind {
	case ManifestKindString:
		value, err := json.Marshal(m.String())
		if err != nil {
			return nil, err
		}
		return &ManifestEnvelope{Type: kind, Value: value}, nil
	case ManifestKindJson:
		value, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		return &ManifestEnvelope{Type: kind, Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown manifest kind: %q", kind)
	}
}

// Manifest parses the envelope back into the in-memory form
func (e *ManifestEnvelope) Manifest() (*manifest.Manifest, error) {
	switch e.Type {
	case ManifestKindString:
		var src string
		if err := json.Unmarshal(e.Value, &src); err != nil {
			return nil, err
		}
		return manifest.Parse(src)
	case ManifestKindJson:
		var m manifest.Manifest
		if err := json.Unmarshal(e.Value, &m); err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("unknown manifest kind: %q", e.Type)
	}
}

// checkHeaderRange validates boundary integers that must fit the compiled
// header's single-byte fields
func checkHeaderRange(field string, value int) error {
	if value < 0 || value > 255 {
		return &manifest.OutOfRangeError{
			Field: field,
			Min:   0,
			Max:   255,
			Value: strconv.Itoa(value),
		}
	}
	return nil
}

type InformationResponse struct {
	PackageVersion string `json:"package_version"`
}

// Information reports the library version
func Information() *InformationResponse {
	return &InformationResponse{
		PackageVersion: packageVersion,
	}
}

type ConvertManifestRequest struct {
	TransactionVersion int              `json:"transaction_version"`
	NetworkId          int              `json:"network_id"`
	OutputFormat       ManifestKind     `json:"manifest_instructions_output_format"`
	Manifest           ManifestEnvelope `json:"manifest"`
}

type ConvertManifestResponse struct {
	Manifest ManifestEnvelope `json:"manifest"`
}

// ConvertManifest re-renders a manifest between its textual and JSON
// representations, validating it along the way. Conversion always passes
// through the in-memory form.
func ConvertManifest(
	request *ConvertManifestRequest,
) (*ConvertManifestResponse, error) {
	if err := checkHeaderRange("transaction_version", request.TransactionVersion); err != nil {
		return nil, err
	}
	if err := checkHeaderRange("network_id", request.NetworkId); err != nil {
		return nil, err
	}
	networkId := uint8(request.NetworkId)
	if address.NetworkById(networkId) == address.NetworkInvalid {
		return nil, &address.UnknownNetworkError{NetworkId: networkId}
	}
	m, err := request.Manifest.Manifest()
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := m.ValidateNetwork(networkId); err != nil {
		return nil, err
	}
	env, err := NewManifestEnvelope(m, request.OutputFormat)
	if err != nil {
		return nil, err
	}
	return &ConvertManifestResponse{Manifest: *env}, nil
}

type DecodeAddressRequest struct {
	Address string `json:"address"`
}

type DecodeAddressResponse struct {
	NetworkId   uint8  `json:"network_id"`
	NetworkName string `json:"network_name"`
	EntityType  string `json:"entity_type"`
	Data        string `json:"data"`
	Hrp         string `json:"hrp"`
	Address     string `json:"address"`
}

// DecodeAddress splits a bech32m address into its network, entity kind, and
// raw data
func DecodeAddress(
	request *DecodeAddressRequest,
) (*DecodeAddressResponse, error) {
	addr, err := address.NewAddress(request.Address)
	if err != nil {
		return nil, err
	}
	network := address.NetworkById(addr.NetworkId())
	return &DecodeAddressResponse{
		NetworkId:   addr.NetworkId(),
		NetworkName: network.Name,
		EntityType:  addr.Kind().String(),
		Data:        hex.EncodeToString(addr.Body()),
		Hrp:         addr.Hrp(),
		Address:     addr.String(),
	}, nil
}

type EncodeAddressRequest struct {
	Kind      address.Kind `json:"kind"`
	NetworkId int          `json:"network_id"`
	Data      string       `json:"data"`
}

type EncodeAddressResponse struct {
	Address string `json:"address"`
}

// EncodeAddress builds a bech32m address from an entity kind, a network, and
// the raw body bytes
func EncodeAddress(
	request *EncodeAddressRequest,
) (*EncodeAddressResponse, error) {
	if err := checkHeaderRange("network_id", request.NetworkId); err != nil {
		return nil, err
	}
	data, err := hex.DecodeString(request.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid data hex: %w", err)
	}
	encoded, err := address.Encode(
		request.Kind,
		uint8(request.NetworkId),
		data,
	)
	if err != nil {
		return nil, err
	}
	return &EncodeAddressResponse{Address: encoded}, nil
}

type CompileTransactionIntentRequest struct {
	TransactionVersion int              `json:"transaction_version"`
	NetworkId          int              `json:"network_id"`
	Manifest           ManifestEnvelope `json:"manifest"`
}

type CompileTransactionIntentResponse struct {
	CompiledIntent string `json:"compiled_intent"`
}

// CompileTransactionIntent validates and compiles a manifest, returning the
// canonical intent bytes as hex
func CompileTransactionIntent(
	request *CompileTransactionIntentRequest,
) (*CompileTransactionIntentResponse, error) {
	if err := checkHeaderRange("transaction_version", request.TransactionVersion); err != nil {
		return nil, err
	}
	if err := checkHeaderRange("network_id", request.NetworkId); err != nil {
		return nil, err
	}
	m, err := request.Manifest.Manifest()
	if err != nil {
		return nil, err
	}
	txIntent := intent.TransactionIntent{
		Header: intent.Header{
			Version:   uint8(request.TransactionVersion),
			NetworkId: uint8(request.NetworkId),
		},
		Manifest: *m,
	}
	compiled, err := txIntent.Compile()
	if err != nil {
		return nil, err
	}
	return &CompileTransactionIntentResponse{
		CompiledIntent: hex.EncodeToString(compiled),
	}, nil
}

type DecompileTransactionIntentRequest struct {
	CompiledIntent string       `json:"compiled_intent"`
	OutputFormat   ManifestKind `json:"manifest_instructions_output_format"`
}

type DecompileTransactionIntentResponse struct {
	TransactionVersion uint8            `json:"transaction_version"`
	NetworkId          uint8            `json:"network_id"`
	Manifest           ManifestEnvelope `json:"manifest"`
}

// DecompileTransactionIntent decodes compiled intent bytes back into a
// header and a manifest in the requested representation
func DecompileTransactionIntent(
	request *DecompileTransactionIntentRequest,
) (*DecompileTransactionIntentResponse, error) {
	compiled, err := hex.DecodeString(request.CompiledIntent)
	if err != nil {
		return nil, fmt.Errorf("invalid compiled intent hex: %w", err)
	}
	txIntent, err := intent.Decompile(compiled)
	if err != nil {
		return nil, err
	}
	env, err := NewManifestEnvelope(&txIntent.Manifest, request.OutputFormat)
	if err != nil {
		return nil, err
	}
	return &DecompileTransactionIntentResponse{
		TransactionVersion: txIntent.Header.Version,
		NetworkId:          txIntent.Header.NetworkId,
		Manifest:           *env,
	}, nil
}

// SignatureWithPublicKeyJson is the boundary form of one intent signature
type SignatureWithPublicKeyJson struct {
	Curve     string `json:"curve"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

func signatureFromJson(
	sig SignatureWithPublicKeyJson,
) (keys.SignatureWithPublicKey, error) {
	var ret keys.SignatureWithPublicKey
	curve, err := keys.CurveFromName(sig.Curve)
	if err != nil {
		return ret, err
	}
	publicKey, err := hex.DecodeString(sig.PublicKey)
	if err != nil {
		return ret, fmt.Errorf("invalid public key hex: %w", err)
	}
	signature, err := hex.DecodeString(sig.Signature)
	if err != nil {
		return ret, fmt.Errorf("invalid signature hex: %w", err)
	}
	ret = keys.SignatureWithPublicKey{
		PublicKey: keys.PublicKey{Curve: curve, Bytes: publicKey},
		Signature: keys.Signature{Curve: curve, Bytes: signature},
	}
	return ret, ret.Validate()
}

func signatureToJson(
	sig keys.SignatureWithPublicKey,
) SignatureWithPublicKeyJson {
	return SignatureWithPublicKeyJson{
		Curve:     sig.PublicKey.Curve.String(),
		PublicKey: hex.EncodeToString(sig.PublicKey.Bytes),
		Signature: hex.EncodeToString(sig.Signature.Bytes),
	}
}

type CompileSignedTransactionIntentRequest struct {
	TransactionVersion int                          `json:"transaction_version"`
	NetworkId          int                          `json:"network_id"`
	Manifest           ManifestEnvelope             `json:"manifest"`
	Signatures         []SignatureWithPublicKeyJson `json:"signatures"`
}

type CompileSignedTransactionIntentResponse struct {
	CompiledSignedIntent string `json:"compiled_signed_intent"`
}

// CompileSignedTransactionIntent wraps a manifest and a signature list into
// compiled signed intent bytes
func CompileSignedTransactionIntent(
	request *CompileSignedTransactionIntentRequest,
) (*CompileSignedTransactionIntentResponse, error) {
	if err := checkHeaderRange("transaction_version", request.TransactionVersion); err != nil {
		return nil, err
	}
	if err := checkHeaderRange("network_id", request.NetworkId); err != nil {
		return nil, err
	}
	m, err := request.Manifest.Manifest()
	if err != nil {
		return nil, err
	}
	signed := intent.SignedTransactionIntent{
		Intent: intent.TransactionIntent{
			Header: intent.Header{
				Version:   uint8(request.TransactionVersion),
				NetworkId: uint8(request.NetworkId),
			},
			Manifest: *m,
		},
	}
	for _, sig := range request.Signatures {
		parsed, err := signatureFromJson(sig)
		if err != nil {
			return nil, err
		}
		signed.Signatures = append(signed.Signatures, parsed)
	}
	compiled, err := signed.Compile()
	if err != nil {
		return nil, err
	}
	return &CompileSignedTransactionIntentResponse{
		CompiledSignedIntent: hex.EncodeToString(compiled),
	}, nil
}

type DecompileSignedTransactionIntentRequest struct {
	CompiledSignedIntent string       `json:"compiled_signed_intent"`
	OutputFormat         ManifestKind `json:"manifest_instructions_output_format"`
}

type DecompileSignedTransactionIntentResponse struct {
	TransactionVersion uint8                        `json:"transaction_version"`
	NetworkId          uint8                        `json:"network_id"`
	Manifest           ManifestEnvelope             `json:"manifest"`
	Signatures         []SignatureWithPublicKeyJson `json:"signatures"`
}

// DecompileSignedTransactionIntent decodes compiled signed intent bytes back
// into the intent and its signature list
func DecompileSignedTransactionIntent(
	request *DecompileSignedTransactionIntentRequest,
) (*DecompileSignedTransactionIntentResponse, error) {
	compiled, err := hex.DecodeString(request.CompiledSignedIntent)
	if err != nil {
		return nil, fmt.Errorf("invalid compiled signed intent hex: %w", err)
	}
	signed, err := intent.DecompileSigned(compiled)
	if err != nil {
		return nil, err
	}
	env, err := NewManifestEnvelope(&signed.Intent.Manifest, request.OutputFormat)
	if err != nil {
		return nil, err
	}
	ret := &DecompileSignedTransactionIntentResponse{
		TransactionVersion: signed.Intent.Header.Version,
		NetworkId:          signed.Intent.Header.NetworkId,
		Manifest:           *env,
	}
	for _, sig := range signed.Signatures {
		ret.Signatures = append(ret.Signatures, signatureToJson(sig))
	}
	return ret, nil
}

// PublicKeyJson is the boundary form of a curve-tagged public key
type PublicKeyJson struct {
	Curve     string `json:"curve"`
	PublicKey string `json:"public_key"`
}

type DeriveVirtualAccountAddressRequest struct {
	NetworkId int           `json:"network_id"`
	PublicKey PublicKeyJson `json:"public_key"`
}

type DeriveVirtualAccountAddressResponse struct {
	VirtualAccountAddress string `json:"virtual_account_address"`
}

// DeriveVirtualAccountAddress derives the virtual account component address
// owned by a public key on the given network
func DeriveVirtualAccountAddress(
	request *DeriveVirtualAccountAddressRequest,
) (*DeriveVirtualAccountAddressResponse, error) {
	if err := checkHeaderRange("network_id", request.NetworkId); err != nil {
		return nil, err
	}
	curve, err := keys.CurveFromName(request.PublicKey.Curve)
	if err != nil {
		return nil, err
	}
	publicKey, err := hex.DecodeString(request.PublicKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	pk := keys.PublicKey{Curve: curve, Bytes: publicKey}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	addr, err := address.NewVirtualAccountAddress(
		uint8(request.NetworkId),
		pk.Bytes,
	)
	if err != nil {
		return nil, err
	}
	return &DeriveVirtualAccountAddressResponse{
		VirtualAccountAddress: addr.String(),
	}, nil
}

type ExtractAbiRequest struct {
	Package string `json:"package"`
}

type ExtractAbiResponse struct {
	Code string `json:"code"`
	Abi  string `json:"abi"`
}

// ExtractAbi splits a package blob into its code and ABI segments
func ExtractAbi(request *ExtractAbiRequest) (*ExtractAbiResponse, error) {
	blob, err := hex.DecodeString(request.Package)
	if err != nil {
		return nil, fmt.Errorf("invalid package hex: %w", err)
	}
	artifact, err := abi.Extract(blob)
	if err != nil {
		return nil, err
	}
	return &ExtractAbiResponse{
		Code: hex.EncodeToString(artifact.Code),
		Abi:  hex.EncodeToString(artifact.Abi),
	}, nil
}
