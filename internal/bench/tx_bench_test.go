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

package bench

import (
	"testing"

	"github.com/blinklabs-io/goiroha/ledger/transaction"
)

// benchSink prevents compiler dead-code elimination in benchmarks.
var benchSink any

// BenchmarkTxBuild benchmarks adding commands and finalizing the payload.
func BenchmarkTxBuild(b *testing.B) {
	for _, name := range FixtureNames() {
		fixture := MustLoadTxFixture(name)
		b.Run("Size_"+name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _ = fixture.Builder().Build()
			}
		})
	}
}

// BenchmarkTxHash benchmarks transaction hash calculation.
func BenchmarkTxHash(b *testing.B) {
	for _, name := range FixtureNames() {
		fixture := MustLoadTxFixture(name)
		tx := fixture.Transaction
		b.Run("Size_"+name, func(b *testing.B) {
			b.SetBytes(int64(len(tx.Payload())))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink = tx.Hash()
			}
		})
	}
}

// BenchmarkTxSign benchmarks adding one signature to a built transaction.
func BenchmarkTxSign(b *testing.B) {
	for _, name := range FixtureNames() {
		fixture := MustLoadTxFixture(name)
		keyPair := fixture.KeyPairs[0]
		b.Run("Size_"+name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				tx, err := fixture.Builder().Build()
				if err != nil {
					b.Fatalf("Build failed: %v", err)
				}
				b.StartTimer()
				benchSink, _ = tx.Sign(keyPair)
			}
		})
	}
}

// BenchmarkTxVerifySignatures benchmarks checking every signature.
func BenchmarkTxVerifySignatures(b *testing.B) {
	for _, name := range FixtureNames() {
		fixture := MustLoadTxFixture(name)
		tx := fixture.Transaction
		b.Run("Size_"+name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink = tx.VerifySignatures()
			}
		})
	}
}

// BenchmarkTxEncode benchmarks wire and envelope encoding.
func BenchmarkTxEncode(b *testing.B) {
	for _, name := range FixtureNames() {
		fixture := MustLoadTxFixture(name)
		tx := fixture.Transaction
		b.Run("Wire_"+name, func(b *testing.B) {
			b.SetBytes(int64(len(fixture.Wire)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _ = tx.MarshalBinary()
			}
		})
		b.Run("Cbor_"+name, func(b *testing.B) {
			b.SetBytes(int64(len(fixture.Cbor)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _ = tx.MarshalCBOR()
			}
		})
	}
}

// BenchmarkTxDecode benchmarks wire and envelope decoding.
func BenchmarkTxDecode(b *testing.B) {
	for _, name := range FixtureNames() {
		fixture := MustLoadTxFixture(name)
		b.Run("Wire_"+name, func(b *testing.B) {
			// Pre-validate that decoding succeeds before measuring
			if _, err := transaction.DecodeTransaction(fixture.Wire); err != nil {
				b.Fatalf("DecodeTransaction failed for %s: %v", name, err)
			}
			b.SetBytes(int64(len(fixture.Wire)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _ = transaction.DecodeTransaction(fixture.Wire)
			}
		})
		b.Run("Cbor_"+name, func(b *testing.B) {
			if _, err := transaction.DecodeTransactionCbor(fixture.Cbor); err != nil {
				b.Fatalf("DecodeTransactionCbor failed for %s: %v", name, err)
			}
			b.SetBytes(int64(len(fixture.Cbor)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchSink, _ = transaction.DecodeTransactionCbor(fixture.Cbor)
			}
		})
	}
}
