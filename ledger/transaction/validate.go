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
	"fmt"

	"github.com/blinklabs-io/goiroha/ledger/common"
	"github.com/blinklabs-io/goiroha/ledger/validation"
)

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func checkGrantablePermission(p GrantablePermission) error {
	if _, ok := grantablePermissionNames[p]; !ok {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidCommand,
			"permission",
			fmt.Sprintf("unknown grantable permission %d", int32(p)),
			nil,
			nil,
		)
	}
	return nil
}

func checkRolePermissions(permissions []RolePermission) error {
	for _, p := range permissions {
		if _, ok := rolePermissionNames[p]; !ok {
			return common.NewValidationError(
				common.ValidationErrorTypeInvalidCommand,
				"permissions",
				fmt.Sprintf("unknown role permission %d", int32(p)),
				nil,
				nil,
			)
		}
	}
	return nil
}

// validateCommand runs the field checks that apply to a command
func validateCommand(v *validation.FieldValidator, cmd Command) error {
	switch c := cmd.(type) {
	case AddAssetQuantity:
		return firstError(
			v.CheckAssetId(c.AssetId),
			v.CheckAmount(c.Amount),
		)
	case AddPeer:
		return firstError(
			v.CheckPeerAddress(c.Address),
			v.CheckPublicKey(c.PeerKey),
		)
	case AddSignatory:
		return firstError(
			v.CheckAccountId(c.AccountId),
			v.CheckPublicKey(c.PublicKey),
		)
	case AppendRole:
		return firstError(
			v.CheckAccountId(c.AccountId),
			v.CheckRoleName(c.RoleName),
		)
	case CreateAccount:
		return firstError(
			v.CheckAccountName(c.AccountName),
			v.CheckDomain(c.DomainId),
			v.CheckPublicKey(c.PublicKey),
		)
	case CreateAsset:
		return firstError(
			v.CheckAssetName(c.AssetName),
			v.CheckDomain(c.DomainId),
			v.CheckPrecision(c.Precision),
		)
	case CreateDomain:
		return firstError(
			v.CheckDomain(c.DomainId),
			v.CheckRoleName(c.DefaultRole),
		)
	case CreateRole:
		return firstError(
			v.CheckRoleName(c.RoleName),
			checkRolePermissions(c.Permissions),
		)
	case DetachRole:
		return firstError(
			v.CheckAccountId(c.AccountId),
			v.CheckRoleName(c.RoleName),
		)
	case GrantPermission:
		return firstError(
			v.CheckAccountId(c.AccountId),
			checkGrantablePermission(c.Permission),
		)
	case RemoveSignatory:
		return firstError(
			v.CheckAccountId(c.AccountId),
			v.CheckPublicKey(c.PublicKey),
		)
	case RevokePermission:
		return firstError(
			v.CheckAccountId(c.AccountId),
			checkGrantablePermission(c.Permission),
		)
	case SetAccountDetail:
		return firstError(
			v.CheckAccountId(c.AccountId),
			v.CheckAccountDetailsKey(c.Key),
			v.CheckAccountDetailsValue(c.Value),
		)
	case SetAccountQuorum:
		return firstError(
			v.CheckAccountId(c.AccountId),
			v.CheckQuorum(int(c.Quorum)),
		)
	case SubtractAssetQuantity:
		return firstError(
			v.CheckAssetId(c.AssetId),
			v.CheckAmount(c.Amount),
		)
	case TransferAsset:
		return firstError(
			v.CheckAccountId(c.SrcAccountId),
			v.CheckAccountId(c.DestAccountId),
			v.CheckAssetId(c.AssetId),
			v.CheckDescription(c.Description),
			v.CheckAmount(c.Amount),
		)
	default:
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidCommand,
			"command",
			fmt.Sprintf("unsupported command type %T", cmd),
			nil,
			nil,
		)
	}
}
