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

// Package bench provides benchmark utilities and transaction fixtures for
// memory profiling.
package bench

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/goiroha/internal/test"
	"github.com/blinklabs-io/goiroha/ledger/common"
	"github.com/blinklabs-io/goiroha/ledger/transaction"
)

// fixtureSizes maps fixture names to the number of commands and signatures
var fixtureSizes = map[string]struct {
	commands   int
	signatures int
}{
	"small":  {commands: 1, signatures: 1},
	"medium": {commands: 16, signatures: 3},
	"large":  {commands: 256, signatures: 8},
}

// FixtureNames returns the fixture names in increasing size.
func FixtureNames() []string {
	return []string{"small", "medium", "large"}
}

// TxFixture contains a pre-built, signed transaction for benchmarking.
type TxFixture struct {
	Name        string
	Builder     func() *transaction.Builder
	KeyPairs    []common.KeyPair
	Transaction *transaction.Transaction
	Wire        []byte
	Cbor        []byte
}

// KeyPairs returns count deterministic Ed25519-SHA3 key pairs.
func KeyPairs(count int) ([]common.KeyPair, error) {
	ret := make([]common.KeyPair, 0, count)
	for i := range count {
		keyPair, err := common.NewKeyPairFromSeed(
			common.Ed25519Sha3,
			test.Seed(byte(i+1)),
		)
		if err != nil {
			return nil, err
		}
		ret = append(ret, keyPair)
	}
	return ret, nil
}

// FixtureBuilder returns a function creating a builder loaded with
// commandCount commands cycling through the common command kinds.
func FixtureBuilder(commandCount int) func() *transaction.Builder {
	key := test.Seed(0xaa)
	return func() *transaction.Builder {
		b := transaction.NewBuilderMillis("admin@bench", 1700000000000)
		for i := range commandCount {
			account := fmt.Sprintf("user%d@bench", i)
			switch i % 4 {
			case 0:
				b.TransferAsset("admin@bench", account, "coin#bench", "bench", "10.25")
			case 1:
				b.CreateAccount(fmt.Sprintf("user%d", i), "bench", key)
			case 2:
				b.SetAccountDetail(account, "note", strings.Repeat("x", 64))
			case 3:
				b.AddAssetQuantityString("coin#bench", "1000.000001")
			}
		}
		return b
	}
}

// LoadTxFixture builds and signs the named fixture.
// The name should be one of: "small", "medium", "large".
func LoadTxFixture(name string) (*TxFixture, error) {
	size, ok := fixtureSizes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown fixture: %s", name)
	}
	keyPairs, err := KeyPairs(size.signatures)
	if err != nil {
		return nil, err
	}
	builder := FixtureBuilder(size.commands)
	tx, err := builder().Build()
	if err != nil {
		return nil, fmt.Errorf("build %s fixture: %w", name, err)
	}
	for _, keyPair := range keyPairs {
		if _, err := tx.Sign(keyPair); err != nil {
			return nil, fmt.Errorf("sign %s fixture: %w", name, err)
		}
	}
	wire, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	cborData, err := tx.MarshalCBOR()
	if err != nil {
		return nil, err
	}
	return &TxFixture{
		Name:        strings.ToLower(name),
		Builder:     builder,
		KeyPairs:    keyPairs,
		Transaction: tx,
		Wire:        wire,
		Cbor:        cborData,
	}, nil
}

// MustLoadTxFixture is like LoadTxFixture but panics on error.
func MustLoadTxFixture(name string) *TxFixture {
	fixture, err := LoadTxFixture(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load fixture %s: %v", name, err))
	}
	return fixture
}
