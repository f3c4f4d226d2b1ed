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

// Package cbor wraps github.com/fxamacker/cbor/v2 with the settings used for
// the co-signing envelope of a transaction.
//
// Encoding is always deterministic (core deterministic encoding, sorted map
// keys), so the same value encodes to the same bytes on every platform.
// Decoding rejects unknown struct fields and duplicate map keys.
//
// Embeddable types:
//   - StructAsArray: encode a struct as a CBOR array instead of a map
//   - DecodeStoreCbor: keep the original CBOR bytes of a decoded object
//
// A type that needs its original bytes implements UnmarshalCBOR by calling
// UnmarshalCborGeneric:
//
//	type envelope struct {
//	    cbor.StructAsArray
//	    cbor.DecodeStoreCbor
//	    Payload []byte
//	}
//
//	func (e *envelope) UnmarshalCBOR(data []byte) error {
//	    return e.UnmarshalCborGeneric(data, e)
//	}
package cbor
