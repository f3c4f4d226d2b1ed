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

// Package common provides the types shared by the ledger packages.
//
// # Key Files by Purpose
//
//   - hash.go: Hash, DigestFunc and the default SHA3-256 digest
//   - keys.go: SignatureScheme, KeyPair and the Ed25519 variants
//   - amount.go: Amount, the fixed-point wire form of asset quantities
//   - errors.go: ValidationError, SigningError and SerializationError
//
// Errors carry a sentinel per kind, so callers match them with errors.Is:
//
//	if errors.Is(err, common.ErrInvalidIdentifier) {
//	    ...
//	}
package common
