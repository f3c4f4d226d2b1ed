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

package common

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/blinklabs-io/goiroha/ed25519sha3"
)

// SignatureScheme is the asymmetric signature algorithm shared by the network.
// Private keys are either a 32-byte seed or the 64-byte seed and public key
type SignatureScheme interface {
	Name() string
	PublicKeySize() int
	PublicKey(privateKey []byte) ([]byte, error)
	Sign(privateKey []byte, message []byte) ([]byte, error)
	Verify(publicKey []byte, message []byte, signature []byte) bool
}

// KeyPair holds the raw key material used to sign a transaction. PublicKey may
// be left empty, in which case it is derived from PrivateKey
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

var (
	// Ed25519Sha3 is the default scheme used by the ledger peers
	Ed25519Sha3 SignatureScheme = ed25519Sha3Scheme{}
	// Ed25519 is plain RFC 8032 Ed25519
	Ed25519 SignatureScheme = ed25519Scheme{}
)

var ErrKeyMismatch = errors.New("public key does not match private key")

// NewKeyPairFromSeed derives a key pair for the scheme from a 32-byte seed
func NewKeyPairFromSeed(scheme SignatureScheme, seed []byte) (KeyPair, error) {
	publicKey, err := scheme.PublicKey(seed)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{
		PublicKey:  publicKey,
		PrivateKey: bytes.Clone(seed),
	}, nil
}

// PublicKeyBytes returns the raw bytes of a typed public key
func PublicKeyBytes(key crypto.PublicKey) ([]byte, error) {
	switch k := key.(type) {
	case ed25519sha3.PublicKey:
		return bytes.Clone(k), nil
	case ed25519.PublicKey:
		return bytes.Clone(k), nil
	case []byte:
		return bytes.Clone(k), nil
	default:
		return nil, NewValidationError(
			ValidationErrorTypeInvalidKeyLength,
			"public_key",
			fmt.Sprintf("unsupported public key type %T", key),
			nil,
			nil,
		)
	}
}

type ed25519Sha3Scheme struct{}

func (ed25519Sha3Scheme) Name() string { return "ed25519-sha3" }

func (ed25519Sha3Scheme) PublicKeySize() int { return ed25519sha3.PublicKeySize }

func (s ed25519Sha3Scheme) PublicKey(privateKey []byte) ([]byte, error) {
	key, err := s.privateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return key.Public().(ed25519sha3.PublicKey), nil
}

func (s ed25519Sha3Scheme) Sign(privateKey []byte, message []byte) ([]byte, error) {
	key, err := s.privateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return ed25519sha3.Sign(key, message)
}

func (ed25519Sha3Scheme) Verify(publicKey []byte, message []byte, signature []byte) bool {
	return ed25519sha3.Verify(publicKey, message, signature)
}

func (ed25519Sha3Scheme) privateKey(privateKey []byte) (ed25519sha3.PrivateKey, error) {
	switch len(privateKey) {
	case ed25519sha3.SeedSize:
		return ed25519sha3.NewKeyFromSeed(privateKey)
	case ed25519sha3.PrivateKeySize:
		key, err := ed25519sha3.NewKeyFromSeed(privateKey[:ed25519sha3.SeedSize])
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(key, privateKey) {
			return nil, ErrKeyMismatch
		}
		return key, nil
	default:
		return nil, fmt.Errorf("invalid private key size: %d", len(privateKey))
	}
}

type ed25519Scheme struct{}

func (ed25519Scheme) Name() string { return "ed25519" }

func (ed25519Scheme) PublicKeySize() int { return ed25519.PublicKeySize }

func (s ed25519Scheme) PublicKey(privateKey []byte) ([]byte, error) {
	key, err := s.privateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return key.Public().(ed25519.PublicKey), nil
}

func (s ed25519Scheme) Sign(privateKey []byte, message []byte) ([]byte, error) {
	key, err := s.privateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(key, message), nil
}

func (ed25519Scheme) Verify(publicKey []byte, message []byte, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize ||
		len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}

func (ed25519Scheme) privateKey(privateKey []byte) (ed25519.PrivateKey, error) {
	switch len(privateKey) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(privateKey), nil
	case ed25519.PrivateKeySize:
		key := ed25519.NewKeyFromSeed(privateKey[:ed25519.SeedSize])
		if !bytes.Equal(key, privateKey) {
			return nil, ErrKeyMismatch
		}
		return key, nil
	default:
		return nil, fmt.Errorf("invalid private key size: %d", len(privateKey))
	}
}

// SchemeByName returns the signature scheme with the given name
func SchemeByName(name string) (SignatureScheme, bool) {
	switch name {
	case Ed25519Sha3.Name():
		return Ed25519Sha3, true
	case Ed25519.Name():
		return Ed25519, true
	default:
		return nil, false
	}
}
