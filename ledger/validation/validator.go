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

// Package validation checks transaction field values against the ledger's
// identifier, key and range constraints before they are added to a
// transaction. All checks are pure and return a *common.ValidationError.
package validation

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/goiroha/ledger/common"
)

const (
	PublicKeySize          = 32
	MinQuorum              = 1
	MaxQuorum              = 128
	MaxPrecision           = common.MaxAmountPrecision
	MaxDomainLength        = 255
	MaxAccountDetailsValue = 4096
	MaxDescriptionLength   = 64

	// DefaultMaxPastDelay is how old a transaction may be when it is built
	DefaultMaxPastDelay = 24 * time.Hour
	// DefaultMaxFutureGap is how far ahead of the local clock a transaction may be dated
	DefaultMaxFutureGap = 5 * time.Minute
)

var (
	nameRegex              = regexp.MustCompile(`^[a-z_0-9]{1,32}$`)
	domainLabelRegex       = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)
	accountDetailsKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)
)

// FieldValidator holds the checks applied to builder input. The zero value is
// not usable; create one with NewFieldValidator
type FieldValidator struct {
	now          func() time.Time
	maxPastDelay time.Duration
	maxFutureGap time.Duration
}

// ValidatorOptionFunc is a type that represents functions that modify the FieldValidator config
type ValidatorOptionFunc func(*FieldValidator)

// WithClock specifies the clock used by CheckTimestamp. The default is time.Now
func WithClock(now func() time.Time) ValidatorOptionFunc {
	return func(v *FieldValidator) {
		v.now = now
	}
}

// WithTimestampWindow specifies how far in the past and in the future a
// transaction timestamp may be, relative to the clock
func WithTimestampWindow(maxPastDelay, maxFutureGap time.Duration) ValidatorOptionFunc {
	return func(v *FieldValidator) {
		v.maxPastDelay = maxPastDelay
		v.maxFutureGap = maxFutureGap
	}
}

func NewFieldValidator(opts ...ValidatorOptionFunc) *FieldValidator {
	v := &FieldValidator{
		now:          time.Now,
		maxPastDelay: DefaultMaxPastDelay,
		maxFutureGap: DefaultMaxFutureGap,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func invalidIdentifier(field string, value string, message string) error {
	return common.NewValidationError(
		common.ValidationErrorTypeInvalidIdentifier,
		field,
		message,
		map[string]any{"value": value},
		nil,
	)
}

func checkName(field string, name string) error {
	if !nameRegex.MatchString(name) {
		return invalidIdentifier(
			field,
			name,
			fmt.Sprintf("%q does not match %s", name, nameRegex.String()),
		)
	}
	return nil
}

// CheckAccountName checks the name part of an account id
func (v *FieldValidator) CheckAccountName(name string) error {
	return checkName("account_name", name)
}

// CheckAccountId checks an account id of the form name@domain
func (v *FieldValidator) CheckAccountId(accountId string) error {
	name, domain, ok := strings.Cut(accountId, "@")
	if !ok {
		return invalidIdentifier(
			"account_id",
			accountId,
			fmt.Sprintf("%q is not of the form name@domain", accountId),
		)
	}
	if err := checkName("account_id", name); err != nil {
		return err
	}
	return checkDomain("account_id", domain)
}

// CheckDomain checks a domain id: dot-separated labels of letters, digits and
// hyphens, each starting with a letter
func (v *FieldValidator) CheckDomain(domainId string) error {
	return checkDomain("domain_id", domainId)
}

func checkDomain(field string, domainId string) error {
	if len(domainId) == 0 || len(domainId) > MaxDomainLength {
		return invalidIdentifier(
			field,
			domainId,
			fmt.Sprintf(
				"domain length %d is outside 1..%d",
				len(domainId),
				MaxDomainLength,
			),
		)
	}
	for _, label := range strings.Split(domainId, ".") {
		if !domainLabelRegex.MatchString(label) {
			return invalidIdentifier(
				field,
				domainId,
				fmt.Sprintf("%q is not a valid domain", domainId),
			)
		}
	}
	return nil
}

// CheckAssetName checks the name part of an asset id
func (v *FieldValidator) CheckAssetName(name string) error {
	return checkName("asset_name", name)
}

// CheckAssetId checks an asset id of the form name#domain
func (v *FieldValidator) CheckAssetId(assetId string) error {
	name, domain, ok := strings.Cut(assetId, "#")
	if !ok {
		return invalidIdentifier(
			"asset_id",
			assetId,
			fmt.Sprintf("%q is not of the form name#domain", assetId),
		)
	}
	if err := checkName("asset_id", name); err != nil {
		return err
	}
	return checkDomain("asset_id", domain)
}

func (v *FieldValidator) CheckRoleName(name string) error {
	return checkName("role_name", name)
}

func (v *FieldValidator) CheckPublicKey(publicKey []byte) error {
	if len(publicKey) != PublicKeySize {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidKeyLength,
			"public_key",
			fmt.Sprintf(
				"expected %d bytes, got %d",
				PublicKeySize,
				len(publicKey),
			),
			map[string]any{"length": len(publicKey)},
			nil,
		)
	}
	return nil
}

// CheckTimestamp checks that a creation time in epoch milliseconds falls in
// the allowed window around the current time
func (v *FieldValidator) CheckTimestamp(createdTime uint64) error {
	now := v.now()
	lower := now.Add(-v.maxPastDelay).UnixMilli()
	upper := now.Add(v.maxFutureGap).UnixMilli()
	if createdTime > uint64(upper) || int64(createdTime) < lower { // #nosec G115
		return common.NewValidationError(
			common.ValidationErrorTypeTimestampOutOfRange,
			"created_time",
			fmt.Sprintf(
				"timestamp %d is outside [%d, %d]",
				createdTime,
				lower,
				upper,
			),
			map[string]any{
				"value": createdTime,
				"lower": lower,
				"upper": upper,
			},
			nil,
		)
	}
	return nil
}

func (v *FieldValidator) CheckQuorum(quorum int) error {
	if quorum < MinQuorum || quorum > MaxQuorum {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidQuorum,
			"quorum",
			fmt.Sprintf(
				"quorum %d is outside %d..%d",
				quorum,
				MinQuorum,
				MaxQuorum,
			),
			map[string]any{"value": quorum},
			nil,
		)
	}
	return nil
}

// CheckAmount checks that an amount is positive with a representable precision
func (v *FieldValidator) CheckAmount(amount common.Amount) error {
	if amount.Precision > MaxPrecision {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidAmount,
			"amount",
			fmt.Sprintf(
				"precision %d exceeds %d",
				amount.Precision,
				MaxPrecision,
			),
			map[string]any{"precision": amount.Precision},
			nil,
		)
	}
	if amount.IsZero() {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidAmount,
			"amount",
			"amount must be greater than zero",
			map[string]any{"value": amount.String()},
			nil,
		)
	}
	return nil
}

func (v *FieldValidator) CheckPrecision(precision uint32) error {
	if precision > MaxPrecision {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidPrecision,
			"precision",
			fmt.Sprintf("precision %d exceeds %d", precision, MaxPrecision),
			map[string]any{"value": precision},
			nil,
		)
	}
	return nil
}

func (v *FieldValidator) CheckAccountDetailsKey(key string) error {
	if !accountDetailsKeyRegex.MatchString(key) {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidAccountDetail,
			"key",
			fmt.Sprintf(
				"%q does not match %s",
				key,
				accountDetailsKeyRegex.String(),
			),
			map[string]any{"value": key},
			nil,
		)
	}
	return nil
}

func (v *FieldValidator) CheckAccountDetailsValue(value string) error {
	if len(value) > MaxAccountDetailsValue {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidAccountDetail,
			"value",
			fmt.Sprintf(
				"value length %d exceeds %d",
				len(value),
				MaxAccountDetailsValue,
			),
			map[string]any{"length": len(value)},
			nil,
		)
	}
	return nil
}

func (v *FieldValidator) CheckDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidDescription,
			"description",
			fmt.Sprintf(
				"description length %d exceeds %d",
				len(description),
				MaxDescriptionLength,
			),
			map[string]any{"length": len(description)},
			nil,
		)
	}
	return nil
}

// CheckPeerAddress checks a peer address of the form host:port, where host is
// an IPv4 address or a hostname
func (v *FieldValidator) CheckPeerAddress(address string) error {
	invalid := func(message string, cause error) error {
		return common.NewValidationError(
			common.ValidationErrorTypeInvalidPeerAddress,
			"address",
			message,
			map[string]any{"value": address},
			cause,
		)
	}
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return invalid("address is not of the form host:port", err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return invalid(fmt.Sprintf("invalid port %q", portStr), err)
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return invalid("only IPv4 addresses are supported", nil)
		}
		return nil
	}
	if checkDomain("address", host) != nil {
		return invalid(fmt.Sprintf("invalid host %q", host), nil)
	}
	return nil
}
