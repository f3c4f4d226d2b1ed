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

package transaction_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/goiroha/ed25519sha3"
	"github.com/blinklabs-io/goiroha/internal/test"
	"github.com/blinklabs-io/goiroha/ledger/common"
	"github.com/blinklabs-io/goiroha/ledger/transaction"
	"github.com/blinklabs-io/goiroha/ledger/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var testNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func testValidator() *validation.FieldValidator {
	return validation.NewFieldValidator(
		validation.WithClock(func() time.Time { return testNow }),
	)
}

func TestBuilderDeterministicPayload(t *testing.T) {
	defer goleak.VerifyNone(t)
	build := func() *transaction.Transaction {
		tx, err := transaction.NewBuilder("admin@test", testNow).
			CreateDomain("test", "user").
			CreateAsset("coin", "test", 2).
			AddAssetQuantityString("coin#test", "100.50").
			TransferAsset("admin@test", "user@test", "coin#test", "payment", "1.25").
			SetAccountDetail("user@test", "age", "18").
			Build()
		require.NoError(t, err)
		return tx
	}
	tx1 := build()
	tx2 := build()
	assert.Equal(t, tx1.Payload(), tx2.Payload())
	assert.Equal(t, tx1.Payload(), tx1.Payload())
	assert.Equal(t, tx1.Hash(), tx2.Hash())
	assert.Equal(t, common.Sha3256Hash(tx1.Payload()), tx1.Hash())
}

func TestBuilderHashChangesWithContent(t *testing.T) {
	base, err := transaction.NewBuilderMillis("admin@test", 1000).
		CreateDomain("test", "user").
		Build()
	require.NoError(t, err)
	variants := map[string]*transaction.Builder{
		"creator": transaction.NewBuilderMillis("root@test", 1000).
			CreateDomain("test", "user"),
		"time": transaction.NewBuilderMillis("admin@test", 1001).
			CreateDomain("test", "user"),
		"quorum": transaction.NewBuilderMillis("admin@test", 1000).
			SetQuorum(2).
			CreateDomain("test", "user"),
		"command": transaction.NewBuilderMillis("admin@test", 1000).
			CreateDomain("test", "admin"),
	}
	for name, builder := range variants {
		t.Run(name, func(t *testing.T) {
			tx, err := builder.Build()
			require.NoError(t, err)
			assert.NotEqual(t, base.Hash(), tx.Hash())
		})
	}
}

func TestBuilderPayloadVector(t *testing.T) {
	tx, err := transaction.NewBuilderMillis("a@b", 1000).
		CreateDomain("test", "user").
		Build()
	require.NoError(t, err)
	assert.Equal(
		t,
		test.DecodeHexString("0a0e3a0c0a0474657374120475736572 1203614062 18e807 2001"),
		tx.Payload(),
	)
}

func TestBuilderChaining(t *testing.T) {
	tx, err := transaction.NewGenesisBuilder().
		SetCreatedTimeMillis(1000).
		SetQuorum(2).
		AddAssetQuantityFloat("coin#domain", 5.00).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tx.Quorum())
	assert.Equal(t, uint64(1000), tx.CreatedTime())
	commands := tx.Commands()
	require.Len(t, commands, 1)
	cmd, ok := commands[0].(transaction.AddAssetQuantity)
	require.True(t, ok, "unexpected command type %T", commands[0])
	assert.Equal(t, "coin#domain", cmd.AssetId)
	expected, err := common.NewAmount("5.00")
	require.NoError(t, err)
	assert.True(t, cmd.Amount.Equal(expected), "amount %s", cmd.Amount)
}

func TestBuilderCommandOrder(t *testing.T) {
	key := test.Seed(0x01)
	tx, err := transaction.NewBuilderMillis("admin@test", 1000).
		SetAccountDetail("admin@test", "k", "v").
		CreateDomain("test", "user").
		AddSignatory("admin@test", key).
		CreateDomain("other", "user").
		SubtractAssetQuantity("coin#test", decimal.RequireFromString("1")).
		Build()
	require.NoError(t, err)
	var kinds []transaction.CommandKind
	for _, cmd := range tx.Commands() {
		kinds = append(kinds, cmd.Kind())
	}
	expected := []transaction.CommandKind{
		transaction.CommandKindSetAccountDetail,
		transaction.CommandKindCreateDomain,
		transaction.CommandKindAddSignatory,
		transaction.CommandKindCreateDomain,
		transaction.CommandKindSubtractAssetQuantity,
	}
	assert.Equal(t, expected, kinds)
	// The order survives serialization
	wire, err := tx.MarshalBinary()
	require.NoError(t, err)
	decoded, err := transaction.DecodeTransaction(wire)
	require.NoError(t, err)
	assert.Equal(t, tx.Commands(), decoded.Commands())
}

func TestGenesisBuilder(t *testing.T) {
	tx, err := transaction.NewGenesisBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, "", tx.CreatorAccountId())
	assert.Equal(t, uint64(0), tx.CreatedTime())
	assert.Equal(t, uint32(1), tx.Quorum())
	assert.Empty(t, tx.Commands())
	assert.Equal(t, test.DecodeHexString("2001"), tx.Payload())

	// Validation does not apply to fields that are never set
	_, err = transaction.NewGenesisBuilder(transaction.WithValidation(true)).
		AddPeer("127.0.0.1:10001", test.Seed(0x01)).
		Build()
	assert.NoError(t, err)
}

type invalidCall struct {
	name        string
	call        func(*transaction.Builder) *transaction.Builder
	expectedErr error
	// alwaysFails is set for input that cannot be represented at all
	alwaysFails bool
}

var invalidCalls = []invalidCall{
	{
		name: "CreatorWithoutDomain",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.SetCreatorAccountId("admin")
		},
		expectedErr: common.ErrInvalidIdentifier,
	},
	{
		name: "TimestampTooOld",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.SetCreatedTimeMillis(1000)
		},
		expectedErr: common.ErrTimestampOutOfRange,
	},
	{
		name: "QuorumZero",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.SetQuorum(0)
		},
		expectedErr: common.ErrInvalidQuorum,
	},
	{
		name: "QuorumNegative",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.SetQuorum(-1)
		},
		expectedErr: common.ErrInvalidQuorum,
		alwaysFails: true,
	},
	{
		name: "ShortPublicKey",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.CreateAccount("user", "test", make([]byte, 31))
		},
		expectedErr: common.ErrInvalidKeyLength,
	},
	{
		name: "BadDomain",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.CreateDomain("1test", "user")
		},
		expectedErr: common.ErrInvalidIdentifier,
	},
	{
		name: "BadAssetId",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.AddAssetQuantityString("coin", "1")
		},
		expectedErr: common.ErrInvalidIdentifier,
	},
	{
		name: "MalformedAmount",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.TransferAsset("a@test", "b@test", "coin#test", "", "abc")
		},
		expectedErr: common.ErrAmountFormat,
		alwaysFails: true,
	},
	{
		name: "ZeroAmount",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.TransferAsset("a@test", "b@test", "coin#test", "", "0")
		},
		expectedErr: common.ErrInvalidAmount,
	},
	{
		name: "NaNAmount",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.AddAssetQuantityFloat("coin#test", math.NaN())
		},
		expectedErr: common.ErrAmountFormat,
		alwaysFails: true,
	},
	{
		name: "LongDescription",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.TransferAsset(
				"a@test",
				"b@test",
				"coin#test",
				strings.Repeat("x", 65),
				"1",
			)
		},
		expectedErr: common.ErrInvalidDescription,
	},
	{
		name: "BadDetailKey",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.SetAccountDetail("admin@test", "bad key", "v")
		},
		expectedErr: common.ErrInvalidAccountDetail,
	},
	{
		name: "PeerWithoutPort",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.AddPeer("127.0.0.1", test.Seed(0x01))
		},
		expectedErr: common.ErrInvalidPeerAddress,
	},
	{
		name: "PrecisionTooLarge",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.CreateAsset("coin", "test", 256)
		},
		expectedErr: common.ErrInvalidPrecision,
	},
	{
		name: "UnknownGrantablePermission",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.GrantPermission("user@test", transaction.GrantablePermission(99))
		},
		expectedErr: common.ErrInvalidCommand,
	},
	{
		name: "AccountQuorumTooLarge",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.SetAccountQuorum("user@test", 129)
		},
		expectedErr: common.ErrInvalidQuorum,
	},
	{
		name: "NilCommand",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.AddCommand(nil)
		},
		expectedErr: common.ErrInvalidCommand,
		alwaysFails: true,
	},
	{
		name: "NilCommandPointer",
		call: func(b *transaction.Builder) *transaction.Builder {
			var cmd *transaction.CreateDomain
			return b.AddCommand(cmd)
		},
		expectedErr: common.ErrInvalidCommand,
		alwaysFails: true,
	},
	{
		name: "UnsupportedKeyType",
		call: func(b *transaction.Builder) *transaction.Builder {
			return b.CreateAccountWithKey("user", "test", "not a key")
		},
		expectedErr: common.ErrInvalidKeyLength,
		alwaysFails: true,
	},
}

func TestBuilderValidationGating(t *testing.T) {
	for _, testDef := range invalidCalls {
		t.Run(testDef.name, func(t *testing.T) {
			b := transaction.NewBuilder(
				"admin@test",
				testNow,
				transaction.WithValidator(testValidator()),
			).CreateDomain("test", "user")
			require.NoError(t, b.Err())
			before := b.Transaction().Payload()

			ret := testDef.call(b)
			assert.Same(t, b, ret)
			require.Error(t, b.Err())
			assert.True(
				t,
				errors.Is(b.Err(), testDef.expectedErr),
				"unexpected error: %v",
				b.Err(),
			)
			assert.Equal(t, before, b.Transaction().Payload())

			// Later calls are ignored and Build reports the first error
			b.CreateDomain("more", "user")
			assert.Equal(t, before, b.Transaction().Payload())
			_, err := b.Build()
			assert.ErrorIs(t, err, testDef.expectedErr)
		})
	}
}

func TestBuilderValidationBypass(t *testing.T) {
	for _, testDef := range invalidCalls {
		if testDef.alwaysFails {
			continue
		}
		t.Run(testDef.name, func(t *testing.T) {
			b := transaction.NewBuilder("admin@test", testNow)
			testDef.call(b)
			assert.NoError(t, b.Err())
			_, err := b.Build()
			assert.NoError(t, err)
		})
	}
}

func TestBuilderValidationToggle(t *testing.T) {
	b := transaction.NewBuilderMillis("admin@test", 1000)
	b.CreateDomain("1bad", "user")
	// Enabling validation does not recheck values already added
	b.EnableValidation()
	require.NoError(t, b.Err())
	b.DisableValidation().CreateDomain("2bad", "user")
	require.NoError(t, b.Err())
	b.EnableValidation().CreateDomain("3bad", "user")
	assert.ErrorIs(t, b.Err(), common.ErrInvalidIdentifier)
	assert.Len(t, b.Transaction().Commands(), 2)
}

func TestBuilderClearErr(t *testing.T) {
	b := transaction.NewBuilderMillis("admin@test", 1000).EnableValidation()
	b.CreateDomain("1bad", "user")
	require.ErrorIs(t, b.Err(), common.ErrInvalidIdentifier)
	require.Empty(t, b.Transaction().Commands())

	// Retry with a corrected value
	b.ClearErr().CreateDomain("good", "user")
	require.NoError(t, b.Err())
	require.Equal(
		t,
		[]transaction.Command{transaction.CreateDomain{DomainId: "good", DefaultRole: "user"}},
		b.Transaction().Commands(),
	)

	// Fall back to unvalidated construction
	b.CreateDomain("2bad", "user")
	require.Error(t, b.Err())
	b.ClearErr().DisableValidation().CreateDomain("2bad", "user")
	require.NoError(t, b.Err())
	commands := b.Transaction().Commands()
	require.Len(t, commands, 2)
	assert.Equal(t, transaction.CreateDomain{DomainId: "2bad", DefaultRole: "user"}, commands[1])

	tx, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, tx.Commands(), 2)
}

func TestBuilderTypedKeys(t *testing.T) {
	publicKey, _, err := ed25519sha3.GenerateKey(nil)
	require.NoError(t, err)
	tx, err := transaction.NewBuilder(
		"admin@test",
		testNow,
		transaction.WithValidator(testValidator()),
	).
		CreateAccountWithKey("user", "test", publicKey).
		AddPeerWithKey("peer.test:10001", publicKey).
		Build()
	require.NoError(t, err)
	commands := tx.Commands()
	require.Len(t, commands, 2)
	assert.Equal(
		t,
		transaction.CreateAccount{
			AccountName: "user",
			DomainId:    "test",
			PublicKey:   []byte(publicKey),
		},
		commands[0],
	)
	assert.Equal(
		t,
		transaction.AddPeer{
			Address: "peer.test:10001",
			PeerKey: []byte(publicKey),
		},
		commands[1],
	)
}

func TestBuilderCommandsAreCopied(t *testing.T) {
	key := test.Seed(0x05)
	b := transaction.NewBuilderMillis("admin@test", 1000).
		AddSignatory("admin@test", key).
		AddCommand(&transaction.RemoveSignatory{AccountId: "admin@test", PublicKey: key})
	key[0] ^= 0xff
	tx, err := b.Build()
	require.NoError(t, err)
	commands := tx.Commands()
	require.Len(t, commands, 2)
	assert.Equal(t, test.Seed(0x05), commands[0].(transaction.AddSignatory).PublicKey)
	assert.Equal(
		t,
		transaction.RemoveSignatory{AccountId: "admin@test", PublicKey: test.Seed(0x05)},
		commands[1],
	)
}

func TestBuilderGrantPermissions(t *testing.T) {
	tx, err := transaction.NewBuilderMillis("admin@test", 1000).
		GrantPermissions(
			"user@test",
			transaction.GrantablePermissionCanSetMyQuorum,
			transaction.GrantablePermissionCanTransferMyAssets,
		).
		RevokePermission("user@test", transaction.GrantablePermissionCanSetMyQuorum).
		CreateRole("auditor", transaction.RolePermissionCanGetAllAccTxs).
		AppendRole("user@test", "auditor").
		DetachRole("user@test", "auditor").
		SetAccountQuorum("admin@test", 2).
		Build()
	require.NoError(t, err)
	commands := tx.Commands()
	require.Len(t, commands, 7)
	assert.Equal(
		t,
		transaction.GrantPermission{
			AccountId:  "user@test",
			Permission: transaction.GrantablePermissionCanTransferMyAssets,
		},
		commands[1],
	)
	assert.Equal(
		t,
		transaction.CreateRole{
			RoleName:    "auditor",
			Permissions: []transaction.RolePermission{transaction.RolePermissionCanGetAllAccTxs},
		},
		commands[3],
	)
}
