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
	"log/slog"

	"github.com/blinklabs-io/goiroha/ledger/common"
	"github.com/blinklabs-io/goiroha/ledger/validation"
)

// TransactionOptionFunc is a type that represents functions that modify the Transaction config
type TransactionOptionFunc func(*Transaction)

// WithDigest specifies the payload digest. The default is SHA3-256
func WithDigest(digest common.DigestFunc) TransactionOptionFunc {
	return func(t *Transaction) {
		t.digest = digest
	}
}

// WithSignatureScheme specifies the scheme used by Sign and VerifySignatures.
// The default is Ed25519 with SHA3-512
func WithSignatureScheme(scheme common.SignatureScheme) TransactionOptionFunc {
	return func(t *Transaction) {
		t.scheme = scheme
	}
}

// WithLogger specifies the logger. The default is slog.Default()
func WithLogger(logger *slog.Logger) TransactionOptionFunc {
	return func(t *Transaction) {
		t.logger = logger
	}
}

// BuilderOptionFunc is a type that represents functions that modify the Builder config
type BuilderOptionFunc func(*Builder)

// WithValidation specifies whether field values are checked as they are added.
// This is disabled by default
func WithValidation(enabled bool) BuilderOptionFunc {
	return func(b *Builder) {
		if enabled {
			b.EnableValidation()
		} else {
			b.DisableValidation()
		}
	}
}

// WithValidator enables validation using the provided validator, for example
// one with a fixed clock or a custom timestamp window
func WithValidator(validator *validation.FieldValidator) BuilderOptionFunc {
	return func(b *Builder) {
		b.validator = validator
		b.validate = validator != nil
	}
}

// WithTransactionOptions applies options to the transaction under construction
func WithTransactionOptions(opts ...TransactionOptionFunc) BuilderOptionFunc {
	return func(b *Builder) {
		for _, opt := range opts {
			opt(b.tx)
		}
	}
}
