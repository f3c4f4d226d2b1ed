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
	"bytes"
	"fmt"
	"slices"

	"github.com/blinklabs-io/goiroha/ledger/common"
)

// CommandKind identifies a command variant. Values match the field numbers of
// the command oneof on the wire
type CommandKind int

const (
	CommandKindAddAssetQuantity      CommandKind = 1
	CommandKindAddPeer               CommandKind = 2
	CommandKindAddSignatory          CommandKind = 3
	CommandKindAppendRole            CommandKind = 4
	CommandKindCreateAccount         CommandKind = 5
	CommandKindCreateAsset           CommandKind = 6
	CommandKindCreateDomain          CommandKind = 7
	CommandKindCreateRole            CommandKind = 8
	CommandKindDetachRole            CommandKind = 9
	CommandKindGrantPermission       CommandKind = 10
	CommandKindRemoveSignatory       CommandKind = 11
	CommandKindRevokePermission      CommandKind = 12
	CommandKindSetAccountDetail      CommandKind = 13
	CommandKindSetAccountQuorum      CommandKind = 14
	CommandKindSubtractAssetQuantity CommandKind = 15
	CommandKindTransferAsset         CommandKind = 16
)

var commandKindNames = map[CommandKind]string{
	CommandKindAddAssetQuantity:      "AddAssetQuantity",
	CommandKindAddPeer:               "AddPeer",
	CommandKindAddSignatory:          "AddSignatory",
	CommandKindAppendRole:            "AppendRole",
	CommandKindCreateAccount:         "CreateAccount",
	CommandKindCreateAsset:           "CreateAsset",
	CommandKindCreateDomain:          "CreateDomain",
	CommandKindCreateRole:            "CreateRole",
	CommandKindDetachRole:            "DetachRole",
	CommandKindGrantPermission:       "GrantPermission",
	CommandKindRemoveSignatory:       "RemoveSignatory",
	CommandKindRevokePermission:      "RevokePermission",
	CommandKindSetAccountDetail:      "SetAccountDetail",
	CommandKindSetAccountQuorum:      "SetAccountQuorum",
	CommandKindSubtractAssetQuantity: "SubtractAssetQuantity",
	CommandKindTransferAsset:         "TransferAsset",
}

func (k CommandKind) String() string {
	if name, ok := commandKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is one state-changing instruction carried by a transaction. The set
// of implementations is closed: only the types in this package satisfy it
type Command interface {
	Kind() CommandKind
	// appendWire appends the encoded command body, without the oneof tag
	appendWire(b []byte) []byte
}

type AddAssetQuantity struct {
	AssetId string
	Amount  common.Amount
}

func (AddAssetQuantity) Kind() CommandKind { return CommandKindAddAssetQuantity }

type AddPeer struct {
	Address string
	PeerKey []byte
}

func (AddPeer) Kind() CommandKind { return CommandKindAddPeer }

type AddSignatory struct {
	AccountId string
	PublicKey []byte
}

func (AddSignatory) Kind() CommandKind { return CommandKindAddSignatory }

type AppendRole struct {
	AccountId string
	RoleName  string
}

func (AppendRole) Kind() CommandKind { return CommandKindAppendRole }

// CreateAccount creates AccountName@DomainId with PublicKey as its first signatory
type CreateAccount struct {
	AccountName string
	DomainId    string
	PublicKey   []byte
}

func (CreateAccount) Kind() CommandKind { return CommandKindCreateAccount }

type CreateAsset struct {
	AssetName string
	DomainId  string
	Precision uint32
}

func (CreateAsset) Kind() CommandKind { return CommandKindCreateAsset }

// CreateDomain creates a domain whose new accounts get DefaultRole
type CreateDomain struct {
	DomainId    string
	DefaultRole string
}

func (CreateDomain) Kind() CommandKind { return CommandKindCreateDomain }

type CreateRole struct {
	RoleName    string
	Permissions []RolePermission
}

func (CreateRole) Kind() CommandKind { return CommandKindCreateRole }

type DetachRole struct {
	AccountId string
	RoleName  string
}

func (DetachRole) Kind() CommandKind { return CommandKindDetachRole }

// GrantPermission gives AccountId a permission over the creator's account
type GrantPermission struct {
	AccountId  string
	Permission GrantablePermission
}

func (GrantPermission) Kind() CommandKind { return CommandKindGrantPermission }

type RemoveSignatory struct {
	AccountId string
	PublicKey []byte
}

func (RemoveSignatory) Kind() CommandKind { return CommandKindRemoveSignatory }

type RevokePermission struct {
	AccountId  string
	Permission GrantablePermission
}

func (RevokePermission) Kind() CommandKind { return CommandKindRevokePermission }

type SetAccountDetail struct {
	AccountId string
	Key       string
	Value     string
}

func (SetAccountDetail) Kind() CommandKind { return CommandKindSetAccountDetail }

type SetAccountQuorum struct {
	AccountId string
	Quorum    uint32
}

func (SetAccountQuorum) Kind() CommandKind { return CommandKindSetAccountQuorum }

type SubtractAssetQuantity struct {
	AssetId string
	Amount  common.Amount
}

func (SubtractAssetQuantity) Kind() CommandKind { return CommandKindSubtractAssetQuantity }

type TransferAsset struct {
	SrcAccountId  string
	DestAccountId string
	AssetId       string
	Description   string
	Amount        common.Amount
}

func (TransferAsset) Kind() CommandKind { return CommandKindTransferAsset }

// cloneCommand returns a copy of the command that shares no slices with the
// caller
func cloneCommand(cmd Command) Command {
	switch c := cmd.(type) {
	case AddPeer:
		c.PeerKey = bytes.Clone(c.PeerKey)
		return c
	case AddSignatory:
		c.PublicKey = bytes.Clone(c.PublicKey)
		return c
	case CreateAccount:
		c.PublicKey = bytes.Clone(c.PublicKey)
		return c
	case CreateRole:
		c.Permissions = slices.Clone(c.Permissions)
		return c
	case RemoveSignatory:
		c.PublicKey = bytes.Clone(c.PublicKey)
		return c
	case AddAssetQuantity:
		c.Amount = cloneAmount(c.Amount)
		return c
	case SubtractAssetQuantity:
		c.Amount = cloneAmount(c.Amount)
		return c
	case TransferAsset:
		c.Amount = cloneAmount(c.Amount)
		return c
	default:
		return cmd
	}
}

func cloneAmount(a common.Amount) common.Amount {
	if a.Value != nil {
		a.Value = a.Value.Clone()
	}
	return a
}
