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
)

// RolePermission is a permission that can be attached to a role. Values follow
// the network's shared schema
type RolePermission int32

const (
	RolePermissionCanAppendRole                 RolePermission = 0
	RolePermissionCanCreateRole                 RolePermission = 1
	RolePermissionCanDetachRole                 RolePermission = 2
	RolePermissionCanAddAssetQty                RolePermission = 3
	RolePermissionCanSubtractAssetQty           RolePermission = 4
	RolePermissionCanAddPeer                    RolePermission = 5
	RolePermissionCanAddSignatory               RolePermission = 6
	RolePermissionCanRemoveSignatory            RolePermission = 7
	RolePermissionCanSetQuorum                  RolePermission = 8
	RolePermissionCanCreateAccount              RolePermission = 9
	RolePermissionCanSetDetail                  RolePermission = 10
	RolePermissionCanCreateAsset                RolePermission = 11
	RolePermissionCanTransfer                   RolePermission = 12
	RolePermissionCanReceive                    RolePermission = 13
	RolePermissionCanCreateDomain               RolePermission = 14
	RolePermissionCanReadAssets                 RolePermission = 15
	RolePermissionCanGetRoles                   RolePermission = 16
	RolePermissionCanGetMyAccount               RolePermission = 17
	RolePermissionCanGetAllAccounts             RolePermission = 18
	RolePermissionCanGetDomainAccounts          RolePermission = 19
	RolePermissionCanGetMySignatories           RolePermission = 20
	RolePermissionCanGetAllSignatories          RolePermission = 21
	RolePermissionCanGetDomainSignatories       RolePermission = 22
	RolePermissionCanGetMyAccAst                RolePermission = 23
	RolePermissionCanGetAllAccAst               RolePermission = 24
	RolePermissionCanGetDomainAccAst            RolePermission = 25
	RolePermissionCanGetMyAccDetail             RolePermission = 26
	RolePermissionCanGetAllAccDetail            RolePermission = 27
	RolePermissionCanGetDomainAccDetail         RolePermission = 28
	RolePermissionCanGetMyAccTxs                RolePermission = 29
	RolePermissionCanGetAllAccTxs               RolePermission = 30
	RolePermissionCanGetDomainAccTxs            RolePermission = 31
	RolePermissionCanGetMyAccAstTxs             RolePermission = 32
	RolePermissionCanGetAllAccAstTxs            RolePermission = 33
	RolePermissionCanGetDomainAccAstTxs         RolePermission = 34
	RolePermissionCanGetMyTxs                   RolePermission = 35
	RolePermissionCanGetAllTxs                  RolePermission = 36
	RolePermissionCanGetBlocks                  RolePermission = 37
	RolePermissionCanGrantCanSetMyQuorum        RolePermission = 38
	RolePermissionCanGrantCanAddMySignatory     RolePermission = 39
	RolePermissionCanGrantCanRemoveMySignatory  RolePermission = 40
	RolePermissionCanGrantCanTransferMyAssets   RolePermission = 41
	RolePermissionCanGrantCanSetMyAccountDetail RolePermission = 42
)

var rolePermissionNames = map[RolePermission]string{
	RolePermissionCanAppendRole:                 "can_append_role",
	RolePermissionCanCreateRole:                 "can_create_role",
	RolePermissionCanDetachRole:                 "can_detach_role",
	RolePermissionCanAddAssetQty:                "can_add_asset_qty",
	RolePermissionCanSubtractAssetQty:           "can_subtract_asset_qty",
	RolePermissionCanAddPeer:                    "can_add_peer",
	RolePermissionCanAddSignatory:               "can_add_signatory",
	RolePermissionCanRemoveSignatory:            "can_remove_signatory",
	RolePermissionCanSetQuorum:                  "can_set_quorum",
	RolePermissionCanCreateAccount:              "can_create_account",
	RolePermissionCanSetDetail:                  "can_set_detail",
	RolePermissionCanCreateAsset:                "can_create_asset",
	RolePermissionCanTransfer:                   "can_transfer",
	RolePermissionCanReceive:                    "can_receive",
	RolePermissionCanCreateDomain:               "can_create_domain",
	RolePermissionCanReadAssets:                 "can_read_assets",
	RolePermissionCanGetRoles:                   "can_get_roles",
	RolePermissionCanGetMyAccount:               "can_get_my_account",
	RolePermissionCanGetAllAccounts:             "can_get_all_accounts",
	RolePermissionCanGetDomainAccounts:          "can_get_domain_accounts",
	RolePermissionCanGetMySignatories:           "can_get_my_signatories",
	RolePermissionCanGetAllSignatories:          "can_get_all_signatories",
	RolePermissionCanGetDomainSignatories:       "can_get_domain_signatories",
	RolePermissionCanGetMyAccAst:                "can_get_my_acc_ast",
	RolePermissionCanGetAllAccAst:               "can_get_all_acc_ast",
	RolePermissionCanGetDomainAccAst:            "can_get_domain_acc_ast",
	RolePermissionCanGetMyAccDetail:             "can_get_my_acc_detail",
	RolePermissionCanGetAllAccDetail:            "can_get_all_acc_detail",
	RolePermissionCanGetDomainAccDetail:         "can_get_domain_acc_detail",
	RolePermissionCanGetMyAccTxs:                "can_get_my_acc_txs",
	RolePermissionCanGetAllAccTxs:               "can_get_all_acc_txs",
	RolePermissionCanGetDomainAccTxs:            "can_get_domain_acc_txs",
	RolePermissionCanGetMyAccAstTxs:             "can_get_my_acc_ast_txs",
	RolePermissionCanGetAllAccAstTxs:            "can_get_all_acc_ast_txs",
	RolePermissionCanGetDomainAccAstTxs:         "can_get_domain_acc_ast_txs",
	RolePermissionCanGetMyTxs:                   "can_get_my_txs",
	RolePermissionCanGetAllTxs:                  "can_get_all_txs",
	RolePermissionCanGetBlocks:                  "can_get_blocks",
	RolePermissionCanGrantCanSetMyQuorum:        "can_grant_can_set_my_quorum",
	RolePermissionCanGrantCanAddMySignatory:     "can_grant_can_add_my_signatory",
	RolePermissionCanGrantCanRemoveMySignatory:  "can_grant_can_remove_my_signatory",
	RolePermissionCanGrantCanTransferMyAssets:   "can_grant_can_transfer_my_assets",
	RolePermissionCanGrantCanSetMyAccountDetail: "can_grant_can_set_my_account_detail",
}

func (p RolePermission) String() string {
	if name, ok := rolePermissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("role_permission(%d)", int32(p))
}

// ParseRolePermission returns the role permission with the given name
func ParseRolePermission(name string) (RolePermission, error) {
	for p, n := range rolePermissionNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown role permission: %s", name)
}

// GrantablePermission is a permission one account can grant to another over
// its own resources
type GrantablePermission int32

const (
	GrantablePermissionCanAddMySignatory     GrantablePermission = 0
	GrantablePermissionCanRemoveMySignatory  GrantablePermission = 1
	GrantablePermissionCanSetMyQuorum        GrantablePermission = 2
	GrantablePermissionCanSetMyAccountDetail GrantablePermission = 3
	GrantablePermissionCanTransferMyAssets   GrantablePermission = 4
)

var grantablePermissionNames = map[GrantablePermission]string{
	GrantablePermissionCanAddMySignatory:     "can_add_my_signatory",
	GrantablePermissionCanRemoveMySignatory:  "can_remove_my_signatory",
	GrantablePermissionCanSetMyQuorum:        "can_set_my_quorum",
	GrantablePermissionCanSetMyAccountDetail: "can_set_my_account_detail",
	GrantablePermissionCanTransferMyAssets:   "can_transfer_my_assets",
}

func (p GrantablePermission) String() string {
	if name, ok := grantablePermissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("grantable_permission(%d)", int32(p))
}

// ParseGrantablePermission returns the grantable permission with the given name
func ParseGrantablePermission(name string) (GrantablePermission, error) {
	for p, n := range grantablePermissionNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown grantable permission: %s", name)
}
