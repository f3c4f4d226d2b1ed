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
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"
)

const HashSize = 32

// Hash is the 32-byte content digest of a transaction payload
type Hash [HashSize]byte

// DigestFunc computes the content hash of arbitrary bytes
type DigestFunc func(data []byte) Hash

func NewHash(data []byte) Hash {
	h := Hash{}
	copy(h[:], data)
	return h
}

// NewHashFromHex parses a hex-encoded hash
func NewHashFromHex(hexData string) (Hash, error) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return Hash{}, err
	}
	if len(data) != HashSize {
		return Hash{}, fmt.Errorf(
			"invalid hash length: expected %d bytes, got %d",
			HashSize,
			len(data),
		)
	}
	return NewHash(data), nil
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	parsed, err := NewHashFromHex(tmp)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Sha3256Hash is the default DigestFunc: SHA3-256 as used network-wide
func Sha3256Hash(data []byte) Hash {
	return Hash(sha3.Sum256(data))
}
