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

// Package ed25519sha3 implements the Ed25519 signature scheme of RFC 8032 with
// SHA3-512 in place of SHA-512. This is the signature scheme used by the
// ledger peers; keys and signatures are not interchangeable with
// crypto/ed25519.
package ed25519sha3

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"errors"
	"hash"
	"io"
	"strconv"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"
)

const (
	// PublicKeySize is the size of a public key in bytes
	PublicKeySize = 32

	// PrivateKeySize is the size of a private key in bytes. A private key is the
	// seed followed by the public key
	PrivateKeySize = 64

	// SignatureSize is the size of a signature in bytes
	SignatureSize = 64

	// SeedSize is the size of a private key seed in bytes
	SeedSize = 32
)

// PublicKey is an Ed25519-SHA3 public key
type PublicKey []byte

// Equal reports whether pub and x have the same value
func (pub PublicKey) Equal(x crypto.PublicKey) bool {
	xx, ok := x.(PublicKey)
	if !ok {
		return false
	}
	return bytes.Equal(pub, xx)
}

// PrivateKey is an Ed25519-SHA3 private key
type PrivateKey []byte

// Public returns the PublicKey corresponding to priv
func (priv PrivateKey) Public() crypto.PublicKey {
	publicKey := make([]byte, PublicKeySize)
	copy(publicKey, priv[SeedSize:])
	return PublicKey(publicKey)
}

// Seed returns the private key seed corresponding to priv
func (priv PrivateKey) Seed() []byte {
	return bytes.Clone(priv[:SeedSize])
}

// GenerateKey generates a public/private key pair using entropy from rand. If
// rand is nil, crypto/rand.Reader is used
func GenerateKey(random io.Reader) (PublicKey, PrivateKey, error) {
	if random == nil {
		random = rand.Reader
	}
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, nil, err
	}
	privateKey, err := NewKeyFromSeed(seed)
	if err != nil {
		return nil, nil, err
	}
	return PublicKey(privateKey[SeedSize:]), privateKey, nil
}

// NewKeyFromSeed calculates a private key from a seed
func NewKeyFromSeed(seed []byte) (PrivateKey, error) {
	return newKeyFromSeed(seed, sha3.New512)
}

// Sign signs the message with privateKey and returns a signature
func Sign(privateKey PrivateKey, message []byte) ([]byte, error) {
	return sign(privateKey, message, sha3.New512)
}

// Verify reports whether sig is a valid signature of message by publicKey
func Verify(publicKey PublicKey, message, sig []byte) bool {
	return verify(publicKey, message, sig, sha3.New512)
}

func newKeyFromSeed(seed []byte, newHash func() hash.Hash) (PrivateKey, error) {
	if l := len(seed); l != SeedSize {
		return nil, errors.New(
			"ed25519sha3: bad seed length: " + strconv.Itoa(l),
		)
	}
	h := newHash()
	h.Write(seed)
	digest := h.Sum(nil)
	s, err := edwards25519.NewScalar().SetBytesWithClamping(digest[:32])
	if err != nil {
		return nil, err
	}
	A := (&edwards25519.Point{}).ScalarBaseMult(s)
	privateKey := make([]byte, PrivateKeySize)
	copy(privateKey, seed)
	copy(privateKey[SeedSize:], A.Bytes())
	return privateKey, nil
}

func sign(
	privateKey PrivateKey,
	message []byte,
	newHash func() hash.Hash,
) ([]byte, error) {
	if l := len(privateKey); l != PrivateKeySize {
		return nil, errors.New(
			"ed25519sha3: bad private key length: " + strconv.Itoa(l),
		)
	}
	seed, publicKey := privateKey[:SeedSize], privateKey[SeedSize:]

	h := newHash()
	h.Write(seed)
	digest := h.Sum(nil)
	s, err := edwards25519.NewScalar().SetBytesWithClamping(digest[:32])
	if err != nil {
		return nil, err
	}
	prefix := digest[32:]

	// r = H(prefix || M) mod L
	h.Reset()
	h.Write(prefix)
	h.Write(message)
	r, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, err
	}
	R := (&edwards25519.Point{}).ScalarBaseMult(r)

	// k = H(R || A || M) mod L
	h.Reset()
	h.Write(R.Bytes())
	h.Write(publicKey)
	h.Write(message)
	k, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, err
	}

	// S = k * s + r mod L
	S := edwards25519.NewScalar().MultiplyAdd(k, s, r)

	signature := make([]byte, SignatureSize)
	copy(signature[:32], R.Bytes())
	copy(signature[32:], S.Bytes())
	return signature, nil
}

func verify(
	publicKey PublicKey,
	message, sig []byte,
	newHash func() hash.Hash,
) bool {
	if len(publicKey) != PublicKeySize || len(sig) != SignatureSize {
		return false
	}
	A, err := (&edwards25519.Point{}).SetBytes(publicKey)
	if err != nil {
		return false
	}

	h := newHash()
	h.Write(sig[:32])
	h.Write(publicKey)
	h.Write(message)
	k, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return false
	}

	S, err := edwards25519.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}

	// [S]B = R + [k]A  <=>  [k](-A) + [S]B = R
	minusA := (&edwards25519.Point{}).Negate(A)
	R := (&edwards25519.Point{}).VarTimeDoubleScalarBaseMult(k, minusA, S)
	return bytes.Equal(sig[:32], R.Bytes())
}
