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

package bench

import (
	"testing"

	"github.com/blinklabs-io/goiroha/ledger/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTxFixture(t *testing.T) {
	expectedCommands := map[string]int{
		"small":  1,
		"medium": 16,
		"large":  256,
	}
	for _, name := range FixtureNames() {
		t.Run(name, func(t *testing.T) {
			fixture, err := LoadTxFixture(name)
			require.NoError(t, err)
			require.NotNil(t, fixture)

			assert.Equal(t, name, fixture.Name)
			assert.Len(t, fixture.Transaction.Commands(), expectedCommands[name])
			assert.Len(t, fixture.Transaction.Signatures(), len(fixture.KeyPairs))
			assert.NoError(t, fixture.Transaction.VerifySignatures())

			decoded, err := transaction.DecodeTransaction(fixture.Wire)
			require.NoError(t, err)
			assert.Equal(t, fixture.Transaction.Hash(), decoded.Hash())
			fromCbor, err := transaction.DecodeTransactionCbor(fixture.Cbor)
			require.NoError(t, err)
			assert.Equal(t, fixture.Transaction.Hash(), fromCbor.Hash())
		})
	}
}

func TestLoadTxFixtureCaseInsensitive(t *testing.T) {
	fixture, err := LoadTxFixture("SMALL")
	require.NoError(t, err)
	assert.Equal(t, "small", fixture.Name)
}

func TestLoadTxFixtureUnknown(t *testing.T) {
	_, err := LoadTxFixture("huge")
	assert.Error(t, err)
	assert.Panics(t, func() { MustLoadTxFixture("huge") })
}

func TestFixtureBuilderDeterministic(t *testing.T) {
	builder := FixtureBuilder(8)
	tx1, err := builder().Build()
	require.NoError(t, err)
	tx2, err := builder().Build()
	require.NoError(t, err)
	assert.Equal(t, tx1.Payload(), tx2.Payload())
}

func TestKeyPairsDistinct(t *testing.T) {
	keyPairs, err := KeyPairs(3)
	require.NoError(t, err)
	require.Len(t, keyPairs, 3)
	assert.NotEqual(t, keyPairs[0].PublicKey, keyPairs[1].PublicKey)
	assert.NotEqual(t, keyPairs[1].PublicKey, keyPairs[2].PublicKey)
}
