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
	"errors"
	"fmt"
)

type ValidationErrorType string

const (
	ValidationErrorTypeInvalidIdentifier    ValidationErrorType = "invalid_identifier"
	ValidationErrorTypeInvalidKeyLength     ValidationErrorType = "invalid_key_length"
	ValidationErrorTypeTimestampOutOfRange  ValidationErrorType = "timestamp_out_of_range"
	ValidationErrorTypeInvalidQuorum        ValidationErrorType = "invalid_quorum"
	ValidationErrorTypeAmountFormat         ValidationErrorType = "amount_format"
	ValidationErrorTypeInvalidAmount        ValidationErrorType = "invalid_amount"
	ValidationErrorTypeInvalidPrecision     ValidationErrorType = "invalid_precision"
	ValidationErrorTypeInvalidPeerAddress   ValidationErrorType = "invalid_peer_address"
	ValidationErrorTypeInvalidAccountDetail ValidationErrorType = "invalid_account_detail"
	ValidationErrorTypeInvalidDescription   ValidationErrorType = "invalid_description"
	ValidationErrorTypeInvalidCommand       ValidationErrorType = "invalid_command"
)

// Sentinel errors for each validation error type so callers can use errors.Is
var (
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrInvalidKeyLength     = errors.New("invalid key length")
	ErrTimestampOutOfRange  = errors.New("timestamp out of range")
	ErrInvalidQuorum        = errors.New("invalid quorum")
	ErrAmountFormat         = errors.New("malformed amount")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidPrecision     = errors.New("invalid precision")
	ErrInvalidPeerAddress   = errors.New("invalid peer address")
	ErrInvalidAccountDetail = errors.New("invalid account detail")
	ErrInvalidDescription   = errors.New("invalid description")
	ErrInvalidCommand       = errors.New("invalid command")
)

var validationErrorSentinels = map[ValidationErrorType]error{
	ValidationErrorTypeInvalidIdentifier:    ErrInvalidIdentifier,
	ValidationErrorTypeInvalidKeyLength:     ErrInvalidKeyLength,
	ValidationErrorTypeTimestampOutOfRange:  ErrTimestampOutOfRange,
	ValidationErrorTypeInvalidQuorum:        ErrInvalidQuorum,
	ValidationErrorTypeAmountFormat:         ErrAmountFormat,
	ValidationErrorTypeInvalidAmount:        ErrInvalidAmount,
	ValidationErrorTypeInvalidPrecision:     ErrInvalidPrecision,
	ValidationErrorTypeInvalidPeerAddress:   ErrInvalidPeerAddress,
	ValidationErrorTypeInvalidAccountDetail: ErrInvalidAccountDetail,
	ValidationErrorTypeInvalidDescription:   ErrInvalidDescription,
	ValidationErrorTypeInvalidCommand:       ErrInvalidCommand,
}

// ValidationError represents a rejected field value with additional context
type ValidationError struct {
	Type    ValidationErrorType
	Field   string
	Message string
	Details map[string]any
	Cause   error
}

func (e ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s: %s", e.Type, e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

func (e ValidationError) Is(target error) bool {
	sentinel, ok := validationErrorSentinels[e.Type]
	return ok && target == sentinel
}

// NewValidationError creates a new structured validation error
func NewValidationError(
	errType ValidationErrorType,
	field string,
	message string,
	details map[string]any,
	cause error,
) *ValidationError {
	return &ValidationError{
		Type:    errType,
		Field:   field,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// ErrSigning matches any SigningError with errors.Is
var ErrSigning = errors.New("signing failed")

// SigningError indicates that the signature scheme rejected the key or input
type SigningError struct {
	Scheme    string
	PublicKey []byte
	Err       error
}

func (e SigningError) Error() string {
	return fmt.Sprintf("%s signing failed: %v", e.Scheme, e.Err)
}

func (e SigningError) Unwrap() error { return e.Err }

func (SigningError) Is(target error) bool {
	return target == ErrSigning
}

// ErrSerialization matches any SerializationError with errors.Is
var ErrSerialization = errors.New("serialization failed")

// SerializationError indicates that wire or envelope bytes could not be
// produced or parsed
type SerializationError struct {
	Message string
	Err     error
}

func (e SerializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e SerializationError) Unwrap() error { return e.Err }

func (SerializationError) Is(target error) bool {
	return target == ErrSerialization
}
