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
	"math"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// MaxAmountPrecision is the largest number of fractional digits the ledger accepts
	MaxAmountPrecision = 255

	// maxAmountExponent is the largest power of ten below 2^256
	maxAmountExponent = 77
)

// Amount is the fixed-point form of an asset quantity: an unsigned 256-bit
// integer value scaled down by 10^Precision
type Amount struct {
	Value     *uint256.Int
	Precision uint32
}

// NewAmount parses a decimal string such as "123.456", keeping its exact scale
func NewAmount(value string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Amount{}, NewValidationError(
			ValidationErrorTypeAmountFormat,
			"amount",
			"not a decimal number",
			map[string]any{"value": value},
			err,
		)
	}
	return NewAmountFromDecimal(d)
}

// NewAmountFromDecimal converts a decimal, keeping its exact scale
func NewAmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.Sign() < 0 {
		return Amount{}, NewValidationError(
			ValidationErrorTypeAmountFormat,
			"amount",
			"negative amounts cannot be represented",
			amountDetails(d),
			nil,
		)
	}
	coefficient := d.Coefficient()
	exponent := d.Exponent()
	var precision uint32
	if exponent > 0 {
		if coefficient.Sign() == 0 {
			return Amount{Value: uint256.NewInt(0)}, nil
		}
		if exponent > maxAmountExponent {
			return Amount{}, amountOverflowError(d)
		}
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exponent)), nil)
		coefficient.Mul(coefficient, scale)
	} else {
		precision = uint32(-int64(exponent))
	}
	value, overflow := uint256.FromBig(coefficient)
	if overflow {
		return Amount{}, amountOverflowError(d)
	}
	return Amount{Value: value, Precision: precision}, nil
}

// amountDetails avoids d.String(), which expands a positive exponent in full
func amountDetails(d decimal.Decimal) map[string]any {
	return map[string]any{
		"coefficient": d.Coefficient().String(),
		"exponent":    d.Exponent(),
	}
}

func amountOverflowError(d decimal.Decimal) error {
	return NewValidationError(
		ValidationErrorTypeAmountFormat,
		"amount",
		"value does not fit in 256 bits",
		amountDetails(d),
		nil,
	)
}

// NewAmountFromFloat converts a float using its shortest decimal representation
func NewAmountFromFloat(value float64) (Amount, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Amount{}, NewValidationError(
			ValidationErrorTypeAmountFormat,
			"amount",
			"not a finite number",
			nil,
			nil,
		)
	}
	return NewAmountFromDecimal(decimal.NewFromFloat(value))
}

func (a Amount) value() *uint256.Int {
	if a.Value == nil {
		return uint256.NewInt(0)
	}
	return a.Value
}

// scale returns Precision as a decimal exponent, saturating at MaxInt32
func (a Amount) scale() int32 {
	if a.Precision > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(a.Precision) // #nosec G115
}

// Decimal returns the amount as a decimal with the same scale
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(a.value().ToBig(), -a.scale())
}

// String formats the amount keeping all Precision digits after the point
func (a Amount) String() string {
	return a.Decimal().StringFixed(a.scale())
}

func (a Amount) IsZero() bool {
	return a.value().IsZero()
}

// Equal reports whether both amounts have the same numeric value, regardless
// of scale
func (a Amount) Equal(b Amount) bool {
	return a.Decimal().Equal(b.Decimal())
}

// Limbs returns the value as four 64-bit words, most significant first
func (a Amount) Limbs() [4]uint64 {
	v := a.value()
	return [4]uint64{v[3], v[2], v[1], v[0]}
}

// NewAmountFromLimbs is the inverse of Limbs
func NewAmountFromLimbs(limbs [4]uint64, precision uint32) Amount {
	v := uint256.Int{limbs[3], limbs[2], limbs[1], limbs[0]}
	return Amount{Value: &v, Precision: precision}
}
