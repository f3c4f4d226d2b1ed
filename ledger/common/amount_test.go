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
	"math"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/goiroha/ledger/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	testDefs := []struct {
		input     string
		value     string
		precision uint32
		formatted string
	}{
		{input: "123.456", value: "123456", precision: 3, formatted: "123.456"},
		{input: "0.1", value: "1", precision: 1, formatted: "0.1"},
		{
			input:     "1000000000000.000000001",
			value:     "1000000000000000000001",
			precision: 9,
			formatted: "1000000000000.000000001",
		},
		{input: "5.00", value: "500", precision: 2, formatted: "5.00"},
		{input: "42", value: "42", precision: 0, formatted: "42"},
		{input: "1e3", value: "1000", precision: 0, formatted: "1000"},
		{input: " 7.5 ", value: "75", precision: 1, formatted: "7.5"},
		{input: "0", value: "0", precision: 0, formatted: "0"},
		{input: "0e100000000", value: "0", precision: 0, formatted: "0"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.input, func(t *testing.T) {
			start := time.Now()
			amount, err := common.NewAmount(testDef.input)
			require.NoError(t, err)
			assert.Less(t, time.Since(start), time.Second)
			assert.Equal(t, testDef.value, amount.Value.Dec())
			assert.Equal(t, testDef.precision, amount.Precision)
			assert.Equal(t, testDef.formatted, amount.String())
		})
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, input := range []string{"123.456", "0.1", "1000000000000.000000001", "0.000000000000000001"} {
		amount, err := common.NewAmount(input)
		require.NoError(t, err)
		expected := decimal.RequireFromString(input)
		assert.True(
			t,
			amount.Decimal().Equal(expected),
			"round trip of %s produced %s",
			input,
			amount.Decimal().String(),
		)
	}
}

func TestNewAmountErrors(t *testing.T) {
	testDefs := []string{
		"",
		"abc",
		"1.2.3",
		"-1",
		"-0.5",
		"1e80",
		"1e78",
		"1e100000000",
		"-1e100000000",
	}
	for _, input := range testDefs {
		t.Run(input, func(t *testing.T) {
			start := time.Now()
			_, err := common.NewAmount(input)
			assert.Less(t, time.Since(start), time.Second)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrAmountFormat))
			var validationErr *common.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, common.ValidationErrorTypeAmountFormat, validationErr.Type)
		})
	}
}

func TestNewAmountLargestExponent(t *testing.T) {
	amount, err := common.NewAmount("1e77")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), amount.Precision)
	assert.Equal(t, "1"+strings.Repeat("0", 77), amount.Value.Dec())
}

func TestAmountPrecisionAboveInt32(t *testing.T) {
	amount := common.NewAmountFromLimbs([4]uint64{0, 0, 0, 1}, math.MaxUint32)
	assert.Negative(t, amount.Decimal().Exponent())
	assert.True(t, amount.Decimal().IsPositive())
}

func TestNewAmountFromFloat(t *testing.T) {
	amount, err := common.NewAmountFromFloat(5.00)
	require.NoError(t, err)
	fromString, err := common.NewAmount("5.00")
	require.NoError(t, err)
	assert.True(t, amount.Equal(fromString))

	amount, err = common.NewAmountFromFloat(0.1)
	require.NoError(t, err)
	assert.Equal(t, "0.1", amount.String())

	_, err = common.NewAmountFromFloat(math.NaN())
	assert.ErrorIs(t, err, common.ErrAmountFormat)
	_, err = common.NewAmountFromFloat(math.Inf(1))
	assert.ErrorIs(t, err, common.ErrAmountFormat)
	_, err = common.NewAmountFromFloat(-1.5)
	assert.ErrorIs(t, err, common.ErrAmountFormat)
}

func TestAmountLimbs(t *testing.T) {
	// 2^64
	amount, err := common.NewAmount("18446744073709551616")
	require.NoError(t, err)
	assert.Equal(t, [4]uint64{0, 0, 1, 0}, amount.Limbs())

	restored := common.NewAmountFromLimbs(amount.Limbs(), amount.Precision)
	assert.True(t, restored.Equal(amount))
	assert.Equal(t, amount.String(), restored.String())
}

func TestAmountZeroValue(t *testing.T) {
	var amount common.Amount
	assert.True(t, amount.IsZero())
	assert.Equal(t, "0", amount.String())
	assert.Equal(t, [4]uint64{}, amount.Limbs())
}
