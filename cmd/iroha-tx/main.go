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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blinklabs-io/goiroha/cmd/common"
	lcommon "github.com/blinklabs-io/goiroha/ledger/common"
	"github.com/blinklabs-io/goiroha/ledger/transaction"
)

type irohaTxFlags struct {
	*common.GlobalFlags
	txFile     string
	cosignFile string
	keys       string
	outputCbor string
}

type txSummary struct {
	Hash        lcommon.Hash `json:"hash"`
	Payload     string       `json:"payload"`
	Transaction string       `json:"transaction"`
	Signatures  int          `json:"signatures"`
}

func main() {
	// Parse commandline
	f := irohaTxFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.StringVar(
		&f.txFile,
		"tx-file",
		"",
		"path to the YAML transaction description to build",
	)
	f.Flagset.StringVar(
		&f.cosignFile,
		"cosign-file",
		"",
		"path to a CBOR transaction envelope to add signatures to",
	)
	f.Flagset.StringVar(
		&f.keys,
		"keys",
		"",
		"comma-separated hex private keys to sign with",
	)
	f.Flagset.StringVar(
		&f.outputCbor,
		"output-cbor",
		"",
		"path to write the signed transaction as a CBOR envelope",
	)
	f.Parse()
	logger := f.Logger()
	txOpts := []transaction.TransactionOptionFunc{
		transaction.WithSignatureScheme(f.SignatureScheme()),
		transaction.WithLogger(logger),
	}

	// Load or build the transaction
	var tx *transaction.Transaction
	if f.cosignFile != "" {
		envelope, err := os.ReadFile(f.cosignFile)
		if err != nil {
			fmt.Printf("Failed to load transaction envelope: %s\n", err)
			os.Exit(1)
		}
		tx, err = transaction.DecodeTransactionCbor(envelope, txOpts...)
		if err != nil {
			fmt.Printf("Failed to decode transaction envelope: %s\n", err)
			os.Exit(1)
		}
	} else if f.txFile != "" {
		descFile, err := os.Open(f.txFile)
		if err != nil {
			fmt.Printf("Failed to load transaction file: %s\n", err)
			os.Exit(1)
		}
		desc, err := readDescription(descFile)
		descFile.Close()
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		b, err := desc.builder(
			time.Now(),
			transaction.WithValidation(f.Validate),
			transaction.WithTransactionOptions(txOpts...),
		)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		tx, err = b.Build()
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Printf("You must specify one of -tx-file or -cosign-file\n")
		os.Exit(1)
	}

	// Sign
	if err := signWithKeys(tx, f.keys); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if err := tx.VerifySignatures(); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	logger.Debug(
		"transaction ready",
		"hash", tx.Hash().String(),
		"commands", len(tx.Commands()),
		"signatures", len(tx.Signatures()),
	)

	if f.outputCbor != "" {
		envelope, err := tx.MarshalCBOR()
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(f.outputCbor, envelope, 0o600); err != nil {
			fmt.Printf("Failed to write transaction envelope: %s\n", err)
			os.Exit(1)
		}
	}

	summary, err := summarize(tx)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func signWithKeys(tx *transaction.Transaction, keys string) error {
	for _, keyHex := range strings.Split(keys, ",") {
		keyHex = strings.TrimSpace(keyHex)
		if keyHex == "" {
			continue
		}
		privateKey, err := hex.DecodeString(keyHex)
		if err != nil {
			return fmt.Errorf("decode private key: %w", err)
		}
		if _, err := tx.Sign(lcommon.KeyPair{PrivateKey: privateKey}); err != nil {
			return err
		}
	}
	return nil
}

func summarize(tx *transaction.Transaction) (txSummary, error) {
	wire, err := tx.MarshalBinary()
	if err != nil {
		return txSummary{}, err
	}
	return txSummary{
		Hash:        tx.Hash(),
		Payload:     hex.EncodeToString(tx.Payload()),
		Transaction: hex.EncodeToString(wire),
		Signatures:  len(tx.Signatures()),
	}, nil
}
