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
	"errors"
	"fmt"
	"math"

	"github.com/blinklabs-io/goiroha/ledger/common"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the transaction messages
const (
	transactionFieldPayload    protowire.Number = 1
	transactionFieldSignatures protowire.Number = 2

	payloadFieldCommands    protowire.Number = 1
	payloadFieldCreator     protowire.Number = 2
	payloadFieldCreatedTime protowire.Number = 3
	payloadFieldQuorum      protowire.Number = 4

	signatureFieldPublicKey protowire.Number = 1
	signatureFieldSignature protowire.Number = 2
)

// The encoders below follow the canonical proto3 serialization: fields in
// field number order, scalar zero values omitted, nested messages always
// present and repeated enums packed

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendAmount(b []byte, amount common.Amount) []byte {
	var value []byte
	for i, limb := range amount.Limbs() {
		value = appendVarintField(value, protowire.Number(i+1), limb)
	}
	b = appendMessageField(b, 1, value)
	return appendVarintField(b, 2, uint64(amount.Precision))
}

func (c AddAssetQuantity) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AssetId)
	return appendMessageField(b, 2, appendAmount(nil, c.Amount))
}

func (c AddPeer) appendWire(b []byte) []byte {
	var peer []byte
	peer = appendStringField(peer, 1, c.Address)
	peer = appendBytesField(peer, 2, c.PeerKey)
	return appendMessageField(b, 1, peer)
}

func (c AddSignatory) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountId)
	return appendBytesField(b, 2, c.PublicKey)
}

func (c AppendRole) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountId)
	return appendStringField(b, 2, c.RoleName)
}

func (c CreateAccount) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountName)
	b = appendStringField(b, 2, c.DomainId)
	return appendBytesField(b, 3, c.PublicKey)
}

func (c CreateAsset) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AssetName)
	b = appendStringField(b, 2, c.DomainId)
	return appendVarintField(b, 3, uint64(c.Precision))
}

func (c CreateDomain) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.DomainId)
	return appendStringField(b, 2, c.DefaultRole)
}

func (c CreateRole) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.RoleName)
	if len(c.Permissions) == 0 {
		return b
	}
	var packed []byte
	for _, p := range c.Permissions {
		packed = protowire.AppendVarint(packed, uint64(p)) // #nosec G115
	}
	return appendMessageField(b, 2, packed)
}

func (c DetachRole) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountId)
	return appendStringField(b, 2, c.RoleName)
}

func (c GrantPermission) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountId)
	return appendVarintField(b, 2, uint64(c.Permission)) // #nosec G115
}

func (c RemoveSignatory) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountId)
	return appendBytesField(b, 2, c.PublicKey)
}

func (c RevokePermission) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountId)
	return appendVarintField(b, 2, uint64(c.Permission)) // #nosec G115
}

func (c SetAccountDetail) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountId)
	b = appendStringField(b, 2, c.Key)
	return appendStringField(b, 3, c.Value)
}

func (c SetAccountQuorum) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AccountId)
	return appendVarintField(b, 2, uint64(c.Quorum))
}

func (c SubtractAssetQuantity) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.AssetId)
	return appendMessageField(b, 2, appendAmount(nil, c.Amount))
}

func (c TransferAsset) appendWire(b []byte) []byte {
	b = appendStringField(b, 1, c.SrcAccountId)
	b = appendStringField(b, 2, c.DestAccountId)
	b = appendStringField(b, 3, c.AssetId)
	b = appendStringField(b, 4, c.Description)
	return appendMessageField(b, 5, appendAmount(nil, c.Amount))
}

func appendCommand(b []byte, cmd Command) []byte {
	return appendMessageField(
		b,
		protowire.Number(cmd.Kind()),
		cmd.appendWire(nil),
	)
}

// encodePayload produces the bytes that are hashed and signed
func encodePayload(
	creatorAccountId string,
	createdTime uint64,
	quorum uint32,
	commands []Command,
) []byte {
	b := make([]byte, 0, 64)
	for _, cmd := range commands {
		b = appendMessageField(b, payloadFieldCommands, appendCommand(nil, cmd))
	}
	b = appendStringField(b, payloadFieldCreator, creatorAccountId)
	b = appendVarintField(b, payloadFieldCreatedTime, createdTime)
	return appendVarintField(b, payloadFieldQuorum, uint64(quorum))
}

func encodeSignature(sig Signature) []byte {
	var b []byte
	b = appendBytesField(b, signatureFieldPublicKey, sig.PublicKey)
	return appendBytesField(b, signatureFieldSignature, sig.Signature)
}

func encodeTransaction(payload []byte, signatures []Signature) []byte {
	b := make([]byte, 0, len(payload)+len(signatures)*100+4)
	b = appendMessageField(b, transactionFieldPayload, payload)
	for _, sig := range signatures {
		b = appendMessageField(b, transactionFieldSignatures, encodeSignature(sig))
	}
	return b
}

type wireField struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	data   []byte
}

// parseFields splits a message into its fields. Groups and fixed-width
// fields are skipped since no message in the schema uses them
func parseFields(data []byte) ([]wireField, error) {
	var fields []wireField
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		data = data[n:]
		field := wireField{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			field.varint, n = protowire.ConsumeVarint(data)
		case protowire.BytesType:
			field.data, n = protowire.ConsumeBytes(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		data = data[n:]
		fields = append(fields, field)
	}
	return fields, nil
}

// fieldDecoder converts fields to Go values, keeping the first type mismatch
type fieldDecoder struct {
	err error
}

func (d *fieldDecoder) expect(f wireField, typ protowire.Type) bool {
	if f.typ == typ {
		return true
	}
	if d.err == nil {
		d.err = fmt.Errorf(
			"field %d: unexpected wire type %d, expected %d",
			f.num,
			f.typ,
			typ,
		)
	}
	return false
}

func (d *fieldDecoder) bytes(f wireField) []byte {
	if !d.expect(f, protowire.BytesType) {
		return nil
	}
	return bytes.Clone(f.data)
}

func (d *fieldDecoder) string(f wireField) string {
	if !d.expect(f, protowire.BytesType) {
		return ""
	}
	return string(f.data)
}

func (d *fieldDecoder) uint64(f wireField) uint64 {
	if !d.expect(f, protowire.VarintType) {
		return 0
	}
	return f.varint
}

func (d *fieldDecoder) uint32(f wireField) uint32 {
	v := d.uint64(f)
	if v > math.MaxUint32 {
		if d.err == nil {
			d.err = fmt.Errorf("field %d: value %d overflows uint32", f.num, v)
		}
		return 0
	}
	return uint32(v)
}

func (d *fieldDecoder) int32(f wireField) int32 {
	return int32(d.uint64(f)) // #nosec G115
}

func (d *fieldDecoder) fields(f wireField) []wireField {
	if !d.expect(f, protowire.BytesType) {
		return nil
	}
	fields, err := parseFields(f.data)
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("field %d: %w", f.num, err)
	}
	return fields
}

func (d *fieldDecoder) amount(f wireField) common.Amount {
	var limbs [4]uint64
	var precision uint32
	for _, af := range d.fields(f) {
		switch af.num {
		case 1:
			for _, vf := range d.fields(af) {
				if vf.num >= 1 && vf.num <= 4 {
					limbs[vf.num-1] = d.uint64(vf)
				}
			}
		case 2:
			precision = d.uint32(af)
			if precision > common.MaxAmountPrecision && d.err == nil {
				d.err = fmt.Errorf(
					"field %d: precision %d exceeds %d",
					af.num,
					precision,
					common.MaxAmountPrecision,
				)
			}
		}
	}
	return common.NewAmountFromLimbs(limbs, precision)
}

func (d *fieldDecoder) rolePermissions(f wireField) []RolePermission {
	if f.typ == protowire.VarintType {
		return []RolePermission{RolePermission(d.int32(f))}
	}
	if !d.expect(f, protowire.BytesType) {
		return nil
	}
	var ret []RolePermission
	data := f.data
	for len(data) > 0 {
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			if d.err == nil {
				d.err = fmt.Errorf("field %d: %w", f.num, protowire.ParseError(n))
			}
			return nil
		}
		ret = append(ret, RolePermission(int32(v))) // #nosec G115
		data = data[n:]
	}
	return ret
}

func decodeCommandBody(kind CommandKind, body []wireField) (Command, error) {
	var d fieldDecoder
	var cmd Command
	switch kind {
	case CommandKindAddAssetQuantity:
		var c AddAssetQuantity
		for _, f := range body {
			switch f.num {
			case 1:
				c.AssetId = d.string(f)
			case 2:
				c.Amount = d.amount(f)
			}
		}
		cmd = c
	case CommandKindAddPeer:
		var c AddPeer
		for _, f := range body {
			if f.num != 1 {
				continue
			}
			for _, pf := range d.fields(f) {
				switch pf.num {
				case 1:
					c.Address = d.string(pf)
				case 2:
					c.PeerKey = d.bytes(pf)
				}
			}
		}
		cmd = c
	case CommandKindAddSignatory:
		var c AddSignatory
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountId = d.string(f)
			case 2:
				c.PublicKey = d.bytes(f)
			}
		}
		cmd = c
	case CommandKindAppendRole:
		var c AppendRole
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountId = d.string(f)
			case 2:
				c.RoleName = d.string(f)
			}
		}
		cmd = c
	case CommandKindCreateAccount:
		var c CreateAccount
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountName = d.string(f)
			case 2:
				c.DomainId = d.string(f)
			case 3:
				c.PublicKey = d.bytes(f)
			}
		}
		cmd = c
	case CommandKindCreateAsset:
		var c CreateAsset
		for _, f := range body {
			switch f.num {
			case 1:
				c.AssetName = d.string(f)
			case 2:
				c.DomainId = d.string(f)
			case 3:
				c.Precision = d.uint32(f)
			}
		}
		cmd = c
	case CommandKindCreateDomain:
		var c CreateDomain
		for _, f := range body {
			switch f.num {
			case 1:
				c.DomainId = d.string(f)
			case 2:
				c.DefaultRole = d.string(f)
			}
		}
		cmd = c
	case CommandKindCreateRole:
		var c CreateRole
		for _, f := range body {
			switch f.num {
			case 1:
				c.RoleName = d.string(f)
			case 2:
				c.Permissions = append(c.Permissions, d.rolePermissions(f)...)
			}
		}
		cmd = c
	case CommandKindDetachRole:
		var c DetachRole
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountId = d.string(f)
			case 2:
				c.RoleName = d.string(f)
			}
		}
		cmd = c
	case CommandKindGrantPermission:
		var c GrantPermission
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountId = d.string(f)
			case 2:
				c.Permission = GrantablePermission(d.int32(f))
			}
		}
		cmd = c
	case CommandKindRemoveSignatory:
		var c RemoveSignatory
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountId = d.string(f)
			case 2:
				c.PublicKey = d.bytes(f)
			}
		}
		cmd = c
	case CommandKindRevokePermission:
		var c RevokePermission
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountId = d.string(f)
			case 2:
				c.Permission = GrantablePermission(d.int32(f))
			}
		}
		cmd = c
	case CommandKindSetAccountDetail:
		var c SetAccountDetail
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountId = d.string(f)
			case 2:
				c.Key = d.string(f)
			case 3:
				c.Value = d.string(f)
			}
		}
		cmd = c
	case CommandKindSetAccountQuorum:
		var c SetAccountQuorum
		for _, f := range body {
			switch f.num {
			case 1:
				c.AccountId = d.string(f)
			case 2:
				c.Quorum = d.uint32(f)
			}
		}
		cmd = c
	case CommandKindSubtractAssetQuantity:
		var c SubtractAssetQuantity
		for _, f := range body {
			switch f.num {
			case 1:
				c.AssetId = d.string(f)
			case 2:
				c.Amount = d.amount(f)
			}
		}
		cmd = c
	case CommandKindTransferAsset:
		var c TransferAsset
		for _, f := range body {
			switch f.num {
			case 1:
				c.SrcAccountId = d.string(f)
			case 2:
				c.DestAccountId = d.string(f)
			case 3:
				c.AssetId = d.string(f)
			case 4:
				c.Description = d.string(f)
			case 5:
				c.Amount = d.amount(f)
			}
		}
		cmd = c
	default:
		return nil, fmt.Errorf("unknown command kind %d", int(kind))
	}
	if d.err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, d.err)
	}
	return cmd, nil
}

func decodeCommand(data []byte) (Command, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	var cmd Command
	for _, f := range fields {
		kind := CommandKind(f.num)
		if _, ok := commandKindNames[kind]; !ok {
			continue
		}
		if cmd != nil {
			return nil, errors.New("command sets more than one variant")
		}
		var d fieldDecoder
		body := d.fields(f)
		if d.err != nil {
			return nil, d.err
		}
		cmd, err = decodeCommandBody(kind, body)
		if err != nil {
			return nil, err
		}
	}
	if cmd == nil {
		return nil, errors.New("command sets no known variant")
	}
	return cmd, nil
}

type payloadContent struct {
	creatorAccountId string
	createdTime      uint64
	quorum           uint32
	commands         []Command
}

func decodePayload(data []byte) (payloadContent, error) {
	var ret payloadContent
	fields, err := parseFields(data)
	if err != nil {
		return ret, err
	}
	var d fieldDecoder
	for _, f := range fields {
		switch f.num {
		case payloadFieldCommands:
			if !d.expect(f, protowire.BytesType) {
				continue
			}
			cmd, err := decodeCommand(f.data)
			if err != nil {
				return ret, fmt.Errorf(
					"command %d: %w",
					len(ret.commands),
					err,
				)
			}
			ret.commands = append(ret.commands, cmd)
		case payloadFieldCreator:
			ret.creatorAccountId = d.string(f)
		case payloadFieldCreatedTime:
			ret.createdTime = d.uint64(f)
		case payloadFieldQuorum:
			ret.quorum = d.uint32(f)
		}
	}
	return ret, d.err
}

func decodeSignature(data []byte) (Signature, error) {
	var ret Signature
	fields, err := parseFields(data)
	if err != nil {
		return ret, err
	}
	var d fieldDecoder
	for _, f := range fields {
		switch f.num {
		case signatureFieldPublicKey:
			ret.PublicKey = d.bytes(f)
		case signatureFieldSignature:
			ret.Signature = d.bytes(f)
		}
	}
	return ret, d.err
}

// decodeTransactionWire splits a wire transaction into its raw payload bytes
// and its signatures
func decodeTransactionWire(data []byte) ([]byte, []Signature, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, nil, err
	}
	payload := []byte{}
	var signatures []Signature
	var d fieldDecoder
	for _, f := range fields {
		switch f.num {
		case transactionFieldPayload:
			payload = d.bytes(f)
		case transactionFieldSignatures:
			if !d.expect(f, protowire.BytesType) {
				continue
			}
			sig, err := decodeSignature(f.data)
			if err != nil {
				return nil, nil, fmt.Errorf(
					"signature %d: %w",
					len(signatures),
					err,
				)
			}
			signatures = append(signatures, sig)
		}
	}
	if d.err != nil {
		return nil, nil, d.err
	}
	return payload, signatures, nil
}
