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

// Package transaction builds, hashes and signs ledger transactions.
//
// A Builder collects commands and metadata into a Transaction. Build freezes
// the serialized payload, whose SHA3-256 digest is the transaction hash and the
// message signed by every signatory. Transactions can be exchanged in their
// wire form (MarshalBinary) or as a CBOR co-signing envelope (MarshalCBOR)
// that preserves the exact payload bytes.
package transaction
