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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/blinklabs-io/goiroha/ledger/transaction"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// txDescription is the YAML form of a transaction. A description without a
// creator produces a genesis transaction
type txDescription struct {
	Creator     string               `yaml:"creator"`
	CreatedTime uint64               `yaml:"created_time"`
	Quorum      int                  `yaml:"quorum"`
	Commands    []commandDescription `yaml:"commands"`
}

type commandDescription struct {
	Type          string   `yaml:"type"`
	AccountId     string   `yaml:"account_id"`
	AccountName   string   `yaml:"account_name"`
	DomainId      string   `yaml:"domain_id"`
	AssetId       string   `yaml:"asset_id"`
	AssetName     string   `yaml:"asset_name"`
	RoleName      string   `yaml:"role_name"`
	DefaultRole   string   `yaml:"default_role"`
	PublicKey     string   `yaml:"public_key"`
	Address       string   `yaml:"address"`
	Amount        string   `yaml:"amount"`
	Precision     uint32   `yaml:"precision"`
	Quorum        int      `yaml:"quorum"`
	Key           string   `yaml:"key"`
	Value         string   `yaml:"value"`
	Description   string   `yaml:"description"`
	SrcAccountId  string   `yaml:"src_account_id"`
	DestAccountId string   `yaml:"dest_account_id"`
	Permission    string   `yaml:"permission"`
	Permissions   []string `yaml:"permissions"`
}

func readDescription(r io.Reader) (*txDescription, error) {
	var desc txDescription
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("parse transaction description: %w", err)
	}
	return &desc, nil
}

// builder returns a builder with every described command added
func (d *txDescription) builder(
	now time.Time,
	opts ...transaction.BuilderOptionFunc,
) (*transaction.Builder, error) {
	var b *transaction.Builder
	if d.Creator == "" {
		b = transaction.NewGenesisBuilder(opts...)
		if d.CreatedTime != 0 {
			b.SetCreatedTimeMillis(d.CreatedTime)
		}
	} else if d.CreatedTime == 0 {
		b = transaction.NewBuilder(d.Creator, now, opts...)
	} else {
		b = transaction.NewBuilderMillis(d.Creator, d.CreatedTime, opts...)
	}
	if d.Quorum != 0 {
		b.SetQuorum(d.Quorum)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	for idx, cmd := range d.Commands {
		if err := cmd.apply(b); err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", idx, cmd.Type, err)
		}
	}
	return b, nil
}

func (c commandDescription) publicKey() ([]byte, error) {
	if c.PublicKey == "" {
		return nil, errors.New("public_key is required")
	}
	key, err := hex.DecodeString(c.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("decode public_key: %w", err)
	}
	return key, nil
}

func (c commandDescription) amount() (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(c.Amount)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse amount %q: %w", c.Amount, err)
	}
	return amount, nil
}

func (c commandDescription) apply(b *transaction.Builder) error {
	switch c.Type {
	case "add_asset_quantity":
		amount, err := c.amount()
		if err != nil {
			return err
		}
		b.AddAssetQuantity(c.AssetId, amount)
	case "add_peer":
		key, err := c.publicKey()
		if err != nil {
			return err
		}
		b.AddPeer(c.Address, key)
	case "add_signatory":
		key, err := c.publicKey()
		if err != nil {
			return err
		}
		b.AddSignatory(c.AccountId, key)
	case "append_role":
		b.AppendRole(c.AccountId, c.RoleName)
	case "create_account":
		key, err := c.publicKey()
		if err != nil {
			return err
		}
		b.CreateAccount(c.AccountName, c.DomainId, key)
	case "create_asset":
		b.CreateAsset(c.AssetName, c.DomainId, c.Precision)
	case "create_domain":
		b.CreateDomain(c.DomainId, c.DefaultRole)
	case "create_role":
		permissions := make([]transaction.RolePermission, 0, len(c.Permissions))
		for _, name := range c.Permissions {
			p, err := transaction.ParseRolePermission(name)
			if err != nil {
				return err
			}
			permissions = append(permissions, p)
		}
		b.CreateRole(c.RoleName, permissions...)
	case "detach_role":
		b.DetachRole(c.AccountId, c.RoleName)
	case "grant_permission", "revoke_permission":
		p, err := transaction.ParseGrantablePermission(c.Permission)
		if err != nil {
			return err
		}
		if c.Type == "grant_permission" {
			b.GrantPermission(c.AccountId, p)
		} else {
			b.RevokePermission(c.AccountId, p)
		}
	case "remove_signatory":
		key, err := c.publicKey()
		if err != nil {
			return err
		}
		b.RemoveSignatory(c.AccountId, key)
	case "set_account_detail":
		b.SetAccountDetail(c.AccountId, c.Key, c.Value)
	case "set_account_quorum":
		b.SetAccountQuorum(c.AccountId, c.Quorum)
	case "subtract_asset_quantity":
		amount, err := c.amount()
		if err != nil {
			return err
		}
		b.SubtractAssetQuantity(c.AssetId, amount)
	case "transfer_asset":
		b.TransferAsset(
			c.SrcAccountId,
			c.DestAccountId,
			c.AssetId,
			c.Description,
			c.Amount,
		)
	default:
		return fmt.Errorf("unknown command type %q", c.Type)
	}
	return b.Err()
}
