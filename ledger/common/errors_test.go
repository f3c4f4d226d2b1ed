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

package common_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/blinklabs-io/goiroha/ledger/common"
	"github.com/stretchr/testify/assert"
)

func TestValidationErrorIs(t *testing.T) {
	err := common.NewValidationError(
		common.ValidationErrorTypeInvalidQuorum,
		"quorum",
		"must be between 1 and 128",
		map[string]any{"value": 0},
		nil,
	)
	wrapped := fmt.Errorf("set quorum: %w", err)
	assert.True(t, errors.Is(wrapped, common.ErrInvalidQuorum))
	assert.False(t, errors.Is(wrapped, common.ErrInvalidIdentifier))
	assert.Equal(t, "invalid_quorum: quorum: must be between 1 and 128", err.Error())
}

func TestSigningErrorIs(t *testing.T) {
	cause := errors.New("bad key")
	err := &common.SigningError{Scheme: "ed25519-sha3", Err: cause}
	assert.True(t, errors.Is(err, common.ErrSigning))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, common.ErrSerialization))
}

func TestSerializationErrorIs(t *testing.T) {
	err := &common.SerializationError{Message: "truncated payload"}
	assert.True(t, errors.Is(err, common.ErrSerialization))
	assert.Equal(t, "truncated payload", err.Error())
}
