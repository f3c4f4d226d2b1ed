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
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/blinklabs-io/goiroha/cbor"
	"github.com/blinklabs-io/goiroha/ledger/common"
)

var (
	// ErrNotFinalized is returned when signing a transaction that was never built
	ErrNotFinalized = errors.New("transaction has not been built")
	// ErrPayloadChanged is returned when signing a transaction whose content
	// changed after the last build
	ErrPayloadChanged = errors.New("transaction content changed since last build")
	// ErrSignedContentChanged is returned when rebuilding a signed transaction
	// whose content changed since it was signed
	ErrSignedContentChanged = errors.New(
		"cannot rebuild a signed transaction with changed content",
	)
	// ErrInvalidSignature is returned by VerifySignatures
	ErrInvalidSignature = errors.New("invalid signature")
)

// Signature is one signer's signature over the transaction hash
type Signature struct {
	cbor.StructAsArray
	PublicKey []byte
	Signature []byte
}

// Transaction is a set of commands issued by a single account. It is mutated
// through a Builder and frozen by Build, after which it may be signed any
// number of times
type Transaction struct {
	cbor.DecodeStoreCbor
	creatorAccountId string
	createdTime      uint64
	quorum           uint32
	commands         []Command
	signatures       []Signature

	digest common.DigestFunc
	scheme common.SignatureScheme
	logger *slog.Logger

	// revision counts content changes. The payload snapshot taken by Build is
	// valid while finalizedRevision matches it
	revision          uint64
	finalized         []byte
	finalizedRevision uint64
	isFinalized       bool
}

// NewTransaction returns an empty, unbuilt transaction
func NewTransaction(opts ...TransactionOptionFunc) *Transaction {
	t := &Transaction{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transaction) digestFunc() common.DigestFunc {
	if t.digest == nil {
		return common.Sha3256Hash
	}
	return t.digest
}

func (t *Transaction) signatureScheme() common.SignatureScheme {
	if t.scheme == nil {
		return common.Ed25519Sha3
	}
	return t.scheme
}

func (t *Transaction) log() *slog.Logger {
	if t.logger == nil {
		return slog.Default()
	}
	return t.logger
}

func (t *Transaction) touch() {
	t.revision++
	t.SetCbor(nil)
}

func (t *Transaction) stale() bool {
	return !t.isFinalized || t.revision != t.finalizedRevision
}

func (t *Transaction) encodeContent() []byte {
	return encodePayload(t.creatorAccountId, t.createdTime, t.quorum, t.commands)
}

// finalize snapshots the payload over the current content
func (t *Transaction) finalize() error {
	if !t.stale() {
		return nil
	}
	if len(t.signatures) > 0 {
		return ErrSignedContentChanged
	}
	t.finalized = t.encodeContent()
	t.finalizedRevision = t.revision
	t.isFinalized = true
	return nil
}

// finalizeWith marks the transaction built over payload bytes received from
// elsewhere. Hashes and signatures use these bytes rather than a re-encoding
func (t *Transaction) finalizeWith(payload []byte) {
	t.finalized = bytes.Clone(payload)
	t.finalizedRevision = t.revision
	t.isFinalized = true
}

// Payload returns the serialized transaction content without signatures
func (t *Transaction) Payload() []byte {
	if t.stale() {
		return t.encodeContent()
	}
	return bytes.Clone(t.finalized)
}

// Hash returns the digest of Payload. It identifies the transaction and is
// the message signed by each signatory
func (t *Transaction) Hash() common.Hash {
	if t.stale() {
		return t.digestFunc()(t.encodeContent())
	}
	return t.digestFunc()(t.finalized)
}

// Sign appends a signature over the transaction hash made with the given key
// pair. The public key is derived from the private key when not provided
func (t *Transaction) Sign(keyPair common.KeyPair) (*Transaction, error) {
	if !t.isFinalized {
		return nil, ErrNotFinalized
	}
	if t.stale() {
		return nil, ErrPayloadChanged
	}
	scheme := t.signatureScheme()
	publicKey, err := scheme.PublicKey(keyPair.PrivateKey)
	if err != nil {
		return nil, &common.SigningError{
			Scheme:    scheme.Name(),
			PublicKey: bytes.Clone(keyPair.PublicKey),
			Err:       err,
		}
	}
	if len(keyPair.PublicKey) > 0 && !bytes.Equal(publicKey, keyPair.PublicKey) {
		return nil, &common.SigningError{
			Scheme:    scheme.Name(),
			PublicKey: bytes.Clone(keyPair.PublicKey),
			Err:       common.ErrKeyMismatch,
		}
	}
	hash := t.digestFunc()(t.finalized)
	signature, err := scheme.Sign(keyPair.PrivateKey, hash.Bytes())
	if err != nil {
		return nil, &common.SigningError{
			Scheme:    scheme.Name(),
			PublicKey: publicKey,
			Err:       err,
		}
	}
	t.signatures = append(
		t.signatures,
		Signature{
			PublicKey: publicKey,
			Signature: signature,
		},
	)
	t.SetCbor(nil)
	t.log().Debug(
		"signed transaction",
		"component", "transaction",
		"hash", hash.String(),
		"public_key", hex.EncodeToString(publicKey),
		"signatures", len(t.signatures),
	)
	return t, nil
}

// VerifySignatures checks every signature against the transaction hash
func (t *Transaction) VerifySignatures() error {
	if len(t.signatures) == 0 {
		return nil
	}
	if t.stale() {
		return ErrPayloadChanged
	}
	scheme := t.signatureScheme()
	hash := t.digestFunc()(t.finalized)
	for idx, sig := range t.signatures {
		if !scheme.Verify(sig.PublicKey, hash.Bytes(), sig.Signature) {
			return fmt.Errorf(
				"%w: signature %d from %s",
				ErrInvalidSignature,
				idx,
				hex.EncodeToString(sig.PublicKey),
			)
		}
	}
	return nil
}

// Signatures returns the signatures in the order they were added
func (t *Transaction) Signatures() []Signature {
	ret := make([]Signature, 0, len(t.signatures))
	for _, sig := range t.signatures {
		ret = append(
			ret,
			Signature{
				PublicKey: bytes.Clone(sig.PublicKey),
				Signature: bytes.Clone(sig.Signature),
			},
		)
	}
	return ret
}

func (t *Transaction) CreatorAccountId() string {
	return t.creatorAccountId
}

// CreatedTime returns the creation time in milliseconds since the Unix epoch
func (t *Transaction) CreatedTime() uint64 {
	return t.createdTime
}

func (t *Transaction) Quorum() uint32 {
	return t.quorum
}

// Commands returns the commands in execution order
func (t *Transaction) Commands() []Command {
	return slices.Clone(t.commands)
}

// IsFinalized reports whether the transaction was built and not changed since
func (t *Transaction) IsFinalized() bool {
	return !t.stale()
}

// MarshalBinary returns the wire form of the transaction with its signatures
func (t *Transaction) MarshalBinary() ([]byte, error) {
	if len(t.signatures) > 0 && t.stale() {
		return nil, ErrPayloadChanged
	}
	return encodeTransaction(t.Payload(), t.signatures), nil
}

// UnmarshalBinary decodes the wire form of a transaction. The result is
// finalized over the received payload bytes
func (t *Transaction) UnmarshalBinary(data []byte) error {
	payload, signatures, err := decodeTransactionWire(data)
	if err != nil {
		return &common.SerializationError{
			Message: "decode transaction",
			Err:     err,
		}
	}
	return t.load(payload, signatures)
}

func (t *Transaction) load(payload []byte, signatures []Signature) error {
	content, err := decodePayload(payload)
	if err != nil {
		return &common.SerializationError{
			Message: "decode transaction payload",
			Err:     err,
		}
	}
	t.creatorAccountId = content.creatorAccountId
	t.createdTime = content.createdTime
	t.quorum = content.quorum
	t.commands = content.commands
	t.signatures = signatures
	t.touch()
	t.finalizeWith(payload)
	return nil
}

// DecodeTransaction decodes a wire transaction. The options select the digest
// and signature scheme used for hashing and verification
func DecodeTransaction(
	data []byte,
	opts ...TransactionOptionFunc,
) (*Transaction, error) {
	t := NewTransaction(opts...)
	if err := t.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return t, nil
}
