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

	"github.com/blinklabs-io/goiroha/cbor"
	"github.com/blinklabs-io/goiroha/ledger/common"
)

// envelope is the CBOR form used to pass a partially signed transaction
// between signatories: the payload bytes exactly as they were hashed and the
// signatures collected so far
const envelopeLength = 2

type envelope struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Payload    []byte
	Signatures []Signature
}

func (e *envelope) UnmarshalCBOR(cborData []byte) error {
	return e.UnmarshalCborGeneric(cborData, e)
}

// MarshalCBOR encodes the transaction as a co-signing envelope. A transaction
// decoded from CBOR and not changed since is returned as originally received
func (t *Transaction) MarshalCBOR() ([]byte, error) {
	if cborData := t.Cbor(); cborData != nil {
		return cborData, nil
	}
	if len(t.signatures) > 0 && t.stale() {
		return nil, ErrPayloadChanged
	}
	env := envelope{
		Payload:    t.Payload(),
		Signatures: t.signatures,
	}
	if env.Signatures == nil {
		env.Signatures = []Signature{}
	}
	cborData, err := cbor.Encode(&env)
	if err != nil {
		return nil, &common.SerializationError{
			Message: "encode transaction envelope",
			Err:     err,
		}
	}
	return cborData, nil
}

// UnmarshalCBOR decodes a co-signing envelope. The transaction is finalized
// over the payload bytes in the envelope, so further signatures cover the
// same hash as the ones already present
func (t *Transaction) UnmarshalCBOR(cborData []byte) error {
	length, err := cbor.ListLength(cborData)
	if err != nil {
		return &common.SerializationError{
			Message: "decode transaction envelope",
			Err:     err,
		}
	}
	if length != envelopeLength {
		return &common.SerializationError{
			Message: fmt.Sprintf(
				"transaction envelope has %d items, expected %d",
				length,
				envelopeLength,
			),
		}
	}
	var env envelope
	if err := cbor.DecodeAll(cborData, &env); err != nil {
		return &common.SerializationError{
			Message: "decode transaction envelope",
			Err:     err,
		}
	}
	if err := t.load(env.Payload, env.Signatures); err != nil {
		return err
	}
	t.SetCbor(env.Cbor())
	return nil
}

// DecodeTransactionCbor decodes a co-signing envelope
func DecodeTransactionCbor(
	cborData []byte,
	opts ...TransactionOptionFunc,
) (*Transaction, error) {
	t := NewTransaction(opts...)
	if err := t.UnmarshalCBOR(cborData); err != nil {
		return nil, err
	}
	return t, nil
}
