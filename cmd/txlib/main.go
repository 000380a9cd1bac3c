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

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/radixtools/transactionlib"
	"go.uber.org/zap"
)

type globalFlags struct {
	flagset *flag.FlagSet
	input   string
	output  string
	debug   bool
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.input,
		"input",
		"",
		"path to a JSON request document (defaults to stdin)",
	)
	f.flagset.StringVar(
		&f.output,
		"output",
		"",
		"path to write the JSON response to (defaults to stdout)",
	)
	f.flagset.BoolVar(&f.debug, "debug", false, "enable debug logging")
	return f
}

// requestHeader carries the dispatch tag shared by every request document
type requestHeader struct {
	RequestType string `json:"request_type"`
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if f.debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Printf("failed to create logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	requestBytes, err := readRequest(f.input)
	if err != nil {
		logger.Fatal("failed to read request", zap.Error(err))
	}

	var header requestHeader
	if err := json.Unmarshal(requestBytes, &header); err != nil {
		logger.Fatal("failed to parse request document", zap.Error(err))
	}
	logger.Debug(
		"dispatching request",
		zap.String("request_type", header.RequestType),
	)

	response, err := dispatch(header.RequestType, requestBytes)
	if err != nil {
		logger.Fatal(
			"request failed",
			zap.String("request_type", header.RequestType),
			zap.Error(err),
		)
	}

	responseBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		logger.Fatal("failed to render response", zap.Error(err))
	}
	if err := writeResponse(f.output, responseBytes); err != nil {
		logger.Fatal("failed to write response", zap.Error(err))
	}
}

func readRequest(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeResponse(path string, data []byte) error {
	data = append(data, '\n')
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func dispatch(requestType string, requestBytes []byte) (any, error) {
	switch requestType {
	case "information":
		return transactionlib.Information(), nil
	case "convert_manifest":
		var request transactionlib.ConvertManifestRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.ConvertManifest(&request)
	case "decode_address":
		var request transactionlib.DecodeAddressRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.DecodeAddress(&request)
	case "encode_address":
		var request transactionlib.EncodeAddressRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.EncodeAddress(&request)
	case "compile_transaction_intent":
		var request transactionlib.CompileTransactionIntentRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.CompileTransactionIntent(&request)
	case "decompile_transaction_intent":
		var request transactionlib.DecompileTransactionIntentRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.DecompileTransactionIntent(&request)
	case "compile_signed_transaction_intent":
		var request transactionlib.CompileSignedTransactionIntentRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.CompileSignedTransactionIntent(&request)
	case "decompile_signed_transaction_intent":
		var request transactionlib.DecompileSignedTransactionIntentRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.DecompileSignedTransactionIntent(&request)
	case "derive_virtual_account_address":
		var request transactionlib.DeriveVirtualAccountAddressRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.DeriveVirtualAccountAddress(&request)
	case "extract_abi":
		var request transactionlib.ExtractAbiRequest
		if err := json.Unmarshal(requestBytes, &request); err != nil {
			return nil, err
		}
		return transactionlib.ExtractAbi(&request)
	default:
		return nil, fmt.Errorf("unknown request type: %q", requestType)
	}
}
