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

package transaction

import (
	"crypto"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/blinklabs-io/goiroha/ledger/common"
	"github.com/blinklabs-io/goiroha/ledger/validation"
	"github.com/shopspring/decimal"
)

// Builder assembles a Transaction through chained calls. The first failing
// call is recorded and reported by Err and Build; it leaves the transaction
// unchanged and every later call on the builder is ignored until ClearErr is
// called. The caller can then retry with corrected input, or disable
// validation and retry.
//
// Field validation is off unless enabled with EnableValidation, WithValidation
// or WithValidator. Toggling it only affects calls made afterward
type Builder struct {
	tx        *Transaction
	validator *validation.FieldValidator
	validate  bool
	err       error
}

// NewBuilder returns a builder for a transaction created by the given account
func NewBuilder(
	creatorAccountId string,
	createdTime time.Time,
	opts ...BuilderOptionFunc,
) *Builder {
	b := newBuilder(opts...)
	return b.SetCreatorAccountId(creatorAccountId).
		SetCreatedTime(createdTime).
		SetQuorum(1)
}

// NewBuilderMillis is NewBuilder with the creation time in milliseconds since
// the Unix epoch
func NewBuilderMillis(
	creatorAccountId string,
	createdTime uint64,
	opts ...BuilderOptionFunc,
) *Builder {
	b := newBuilder(opts...)
	return b.SetCreatorAccountId(creatorAccountId).
		SetCreatedTimeMillis(createdTime).
		SetQuorum(1)
}

// NewGenesisBuilder returns a builder for a genesis block transaction, which
// has no creator and no creation time
func NewGenesisBuilder(opts ...BuilderOptionFunc) *Builder {
	return newBuilder(opts...).SetQuorum(1)
}

func newBuilder(opts ...BuilderOptionFunc) *Builder {
	b := &Builder{
		tx: NewTransaction(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// EnableValidation turns on field checks for subsequent calls
func (b *Builder) EnableValidation() *Builder {
	if b.validator == nil {
		b.validator = validation.NewFieldValidator()
	}
	b.validate = true
	return b
}

// DisableValidation turns off field checks for subsequent calls
func (b *Builder) DisableValidation() *Builder {
	b.validate = false
	return b
}

// Transaction returns the transaction under construction, which may not be
// finalized yet
func (b *Builder) Transaction() *Transaction {
	return b.tx
}

// Err returns the first error recorded by the builder
func (b *Builder) Err() error {
	return b.err
}

// ClearErr discards the recorded error so that later calls take effect again.
// The failed call is not replayed.
func (b *Builder) ClearErr() *Builder {
	b.err = nil
	return b
}

func (b *Builder) fail(op string, err error) *Builder {
	b.err = fmt.Errorf("%s: %w", op, err)
	b.tx.log().Debug(
		"rejected transaction change",
		"component", "transaction",
		"operation", op,
		"error", err,
	)
	return b
}

// mutate runs check when validation is enabled and applies the change if it
// passes
func (b *Builder) mutate(
	op string,
	check func(*validation.FieldValidator) error,
	apply func(*Transaction),
) *Builder {
	if b.err != nil {
		return b
	}
	if b.validate && check != nil {
		if err := check(b.validator); err != nil {
			return b.fail(op, err)
		}
	}
	apply(b.tx)
	b.tx.touch()
	return b
}

func (b *Builder) addCommand(op string, cmd Command) *Builder {
	cmd = cloneCommand(cmd)
	return b.mutate(
		op,
		func(v *validation.FieldValidator) error {
			return validateCommand(v, cmd)
		},
		func(t *Transaction) {
			t.commands = append(t.commands, cmd)
		},
	)
}

func (b *Builder) SetCreatorAccountId(accountId string) *Builder {
	return b.mutate(
		"SetCreatorAccountId",
		func(v *validation.FieldValidator) error {
			return v.CheckAccountId(accountId)
		},
		func(t *Transaction) {
			t.creatorAccountId = accountId
		},
	)
}

func (b *Builder) SetCreatedTime(createdTime time.Time) *Builder {
	millis := createdTime.UnixMilli()
	if millis < 0 {
		if b.err != nil {
			return b
		}
		return b.fail(
			"SetCreatedTime",
			common.NewValidationError(
				common.ValidationErrorTypeTimestampOutOfRange,
				"created_time",
				"time is before the Unix epoch",
				map[string]any{"time": createdTime},
				nil,
			),
		)
	}
	return b.SetCreatedTimeMillis(uint64(millis))
}

// SetCreatedTimeMillis sets the creation time in milliseconds since the Unix epoch
func (b *Builder) SetCreatedTimeMillis(createdTime uint64) *Builder {
	return b.mutate(
		"SetCreatedTime",
		func(v *validation.FieldValidator) error {
			return v.CheckTimestamp(createdTime)
		},
		func(t *Transaction) {
			t.createdTime = createdTime
		},
	)
}

// SetQuorum sets how many signatures the transaction needs to be accepted
func (b *Builder) SetQuorum(quorum int) *Builder {
	if quorum < 0 || int64(quorum) > math.MaxUint32 {
		if b.err != nil {
			return b
		}
		return b.fail(
			"SetQuorum",
			common.NewValidationError(
				common.ValidationErrorTypeInvalidQuorum,
				"quorum",
				fmt.Sprintf("quorum %d out of range", quorum),
				nil,
				nil,
			),
		)
	}
	return b.mutate(
		"SetQuorum",
		func(v *validation.FieldValidator) error {
			return v.CheckQuorum(quorum)
		},
		func(t *Transaction) {
			t.quorum = uint32(quorum) // #nosec G115
		},
	)
}

func (b *Builder) CreateAccount(
	accountName string,
	domainId string,
	publicKey []byte,
) *Builder {
	return b.addCommand(
		"CreateAccount",
		CreateAccount{
			AccountName: accountName,
			DomainId:    domainId,
			PublicKey:   publicKey,
		},
	)
}

// CreateAccountWithKey is CreateAccount with a typed public key
func (b *Builder) CreateAccountWithKey(
	accountName string,
	domainId string,
	publicKey crypto.PublicKey,
) *Builder {
	if b.err != nil {
		return b
	}
	keyBytes, err := common.PublicKeyBytes(publicKey)
	if err != nil {
		return b.fail("CreateAccount", err)
	}
	return b.CreateAccount(accountName, domainId, keyBytes)
}

// TransferAsset moves amount, given as a decimal string, of an asset between
// two accounts
func (b *Builder) TransferAsset(
	srcAccountId string,
	destAccountId string,
	assetId string,
	description string,
	amount string,
) *Builder {
	if b.err != nil {
		return b
	}
	value, err := common.NewAmount(amount)
	if err != nil {
		return b.fail("TransferAsset", err)
	}
	return b.addCommand(
		"TransferAsset",
		TransferAsset{
			SrcAccountId:  srcAccountId,
			DestAccountId: destAccountId,
			AssetId:       assetId,
			Description:   description,
			Amount:        value,
		},
	)
}

func (b *Builder) TransferAssetDecimal(
	srcAccountId string,
	destAccountId string,
	assetId string,
	description string,
	amount decimal.Decimal,
) *Builder {
	if b.err != nil {
		return b
	}
	value, err := common.NewAmountFromDecimal(amount)
	if err != nil {
		return b.fail("TransferAsset", err)
	}
	return b.addCommand(
		"TransferAsset",
		TransferAsset{
			SrcAccountId:  srcAccountId,
			DestAccountId: destAccountId,
			AssetId:       assetId,
			Description:   description,
			Amount:        value,
		},
	)
}

func (b *Builder) SetAccountDetail(accountId string, key string, value string) *Builder {
	return b.addCommand(
		"SetAccountDetail",
		SetAccountDetail{
			AccountId: accountId,
			Key:       key,
			Value:     value,
		},
	)
}

// AddPeer adds a peer listening on address, a host:port pair, to the network
func (b *Builder) AddPeer(address string, peerKey []byte) *Builder {
	return b.addCommand(
		"AddPeer",
		AddPeer{
			Address: address,
			PeerKey: peerKey,
		},
	)
}

func (b *Builder) AddPeerWithKey(address string, peerKey crypto.PublicKey) *Builder {
	if b.err != nil {
		return b
	}
	keyBytes, err := common.PublicKeyBytes(peerKey)
	if err != nil {
		return b.fail("AddPeer", err)
	}
	return b.AddPeer(address, keyBytes)
}

func (b *Builder) GrantPermission(accountId string, permission GrantablePermission) *Builder {
	return b.addCommand(
		"GrantPermission",
		GrantPermission{
			AccountId:  accountId,
			Permission: permission,
		},
	)
}

// GrantPermissions adds one GrantPermission command per permission
func (b *Builder) GrantPermissions(
	accountId string,
	permissions ...GrantablePermission,
) *Builder {
	for _, permission := range permissions {
		b.GrantPermission(accountId, permission)
	}
	return b
}

func (b *Builder) RevokePermission(accountId string, permission GrantablePermission) *Builder {
	return b.addCommand(
		"RevokePermission",
		RevokePermission{
			AccountId:  accountId,
			Permission: permission,
		},
	)
}

func (b *Builder) CreateRole(roleName string, permissions ...RolePermission) *Builder {
	return b.addCommand(
		"CreateRole",
		CreateRole{
			RoleName:    roleName,
			Permissions: permissions,
		},
	)
}

func (b *Builder) CreateDomain(domainId string, defaultRole string) *Builder {
	return b.addCommand(
		"CreateDomain",
		CreateDomain{
			DomainId:    domainId,
			DefaultRole: defaultRole,
		},
	)
}

func (b *Builder) AppendRole(accountId string, roleName string) *Builder {
	return b.addCommand(
		"AppendRole",
		AppendRole{
			AccountId: accountId,
			RoleName:  roleName,
		},
	)
}

func (b *Builder) DetachRole(accountId string, roleName string) *Builder {
	return b.addCommand(
		"DetachRole",
		DetachRole{
			AccountId: accountId,
			RoleName:  roleName,
		},
	)
}

// CreateAsset creates assetName#domainId with the given number of decimal places
func (b *Builder) CreateAsset(assetName string, domainId string, precision uint32) *Builder {
	return b.addCommand(
		"CreateAsset",
		CreateAsset{
			AssetName: assetName,
			DomainId:  domainId,
			Precision: precision,
		},
	)
}

func (b *Builder) AddAssetQuantity(assetId string, amount decimal.Decimal) *Builder {
	if b.err != nil {
		return b
	}
	value, err := common.NewAmountFromDecimal(amount)
	if err != nil {
		return b.fail("AddAssetQuantity", err)
	}
	return b.addCommand(
		"AddAssetQuantity",
		AddAssetQuantity{
			AssetId: assetId,
			Amount:  value,
		},
	)
}

// AddAssetQuantityString is AddAssetQuantity with the amount as a decimal string
func (b *Builder) AddAssetQuantityString(assetId string, amount string) *Builder {
	if b.err != nil {
		return b
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return b.fail(
			"AddAssetQuantity",
			common.NewValidationError(
				common.ValidationErrorTypeAmountFormat,
				"amount",
				"not a decimal number",
				map[string]any{"value": amount},
				err,
			),
		)
	}
	return b.AddAssetQuantity(assetId, value)
}

// AddAssetQuantityFloat is AddAssetQuantity with the amount as a float. The
// shortest decimal form of the float is used
func (b *Builder) AddAssetQuantityFloat(assetId string, amount float64) *Builder {
	if b.err != nil {
		return b
	}
	value, err := common.NewAmountFromFloat(amount)
	if err != nil {
		return b.fail("AddAssetQuantity", err)
	}
	return b.addCommand(
		"AddAssetQuantity",
		AddAssetQuantity{
			AssetId: assetId,
			Amount:  value,
		},
	)
}

func (b *Builder) SubtractAssetQuantity(assetId string, amount decimal.Decimal) *Builder {
	if b.err != nil {
		return b
	}
	value, err := common.NewAmountFromDecimal(amount)
	if err != nil {
		return b.fail("SubtractAssetQuantity", err)
	}
	return b.addCommand(
		"SubtractAssetQuantity",
		SubtractAssetQuantity{
			AssetId: assetId,
			Amount:  value,
		},
	)
}

func (b *Builder) AddSignatory(accountId string, publicKey []byte) *Builder {
	return b.addCommand(
		"AddSignatory",
		AddSignatory{
			AccountId: accountId,
			PublicKey: publicKey,
		},
	)
}

func (b *Builder) RemoveSignatory(accountId string, publicKey []byte) *Builder {
	return b.addCommand(
		"RemoveSignatory",
		RemoveSignatory{
			AccountId: accountId,
			PublicKey: publicKey,
		},
	)
}

// SetAccountQuorum sets how many signatures transactions from the account need
func (b *Builder) SetAccountQuorum(accountId string, quorum int) *Builder {
	if quorum < 0 || int64(quorum) > math.MaxUint32 {
		if b.err != nil {
			return b
		}
		return b.fail(
			"SetAccountQuorum",
			common.NewValidationError(
				common.ValidationErrorTypeInvalidQuorum,
				"quorum",
				fmt.Sprintf("quorum %d out of range", quorum),
				nil,
				nil,
			),
		)
	}
	return b.addCommand(
		"SetAccountQuorum",
		SetAccountQuorum{
			AccountId: accountId,
			Quorum:    uint32(quorum), // #nosec G115
		},
	)
}

// AddCommand appends an already assembled command
func (b *Builder) AddCommand(cmd Command) *Builder {
	if b.err != nil {
		return b
	}
	cmd, ok := derefCommand(cmd)
	if !ok {
		return b.fail(
			"AddCommand",
			common.NewValidationError(
				common.ValidationErrorTypeInvalidCommand,
				"command",
				"command is nil",
				nil,
				nil,
			),
		)
	}
	return b.addCommand("AddCommand", cmd)
}

// derefCommand turns a pointer to a command into the command value
func derefCommand(cmd Command) (Command, bool) {
	if cmd == nil {
		return nil, false
	}
	rv := reflect.ValueOf(cmd)
	if rv.Kind() != reflect.Pointer {
		return cmd, true
	}
	if rv.IsNil() {
		return nil, false
	}
	ret, ok := rv.Elem().Interface().(Command)
	return ret, ok
}

// Build finalizes the transaction payload and returns the transaction. It may
// be called again after further changes, as long as the transaction has not
// been signed
func (b *Builder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.tx.finalize(); err != nil {
		return nil, err
	}
	return b.tx, nil
}

// Sign builds the transaction and signs it with the key pair
func (b *Builder) Sign(keyPair common.KeyPair) (*Transaction, error) {
	tx, err := b.Build()
	if err != nil {
		return nil, err
	}
	return tx.Sign(keyPair)
}
