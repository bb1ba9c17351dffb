package ecpay

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error kinds.
var (
	// ErrValidation indicates a request field failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrEncryption indicates a cipher or credential failure.
	ErrEncryption = errors.New("encryption failed")

	// ErrPayload indicates a payload is missing structure or cannot be serialized.
	ErrPayload = errors.New("invalid payload")

	// ErrAPI indicates a malformed or vendor-rejected response.
	ErrAPI = errors.New("api error")

	// ErrConfiguration indicates a missing or invalid SDK setting.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument indicates an operation could not be resolved or built.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ValidationError reports a field that failed validation.
type ValidationError struct {
	Field   string         // Field that failed
	Message string         // Human-readable reason
	Context map[string]any // Extra detail (allowed values, limits)
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// EncryptionError reports a cipher failure or a missing credential.
type EncryptionError struct {
	Key    string // Credential name (HashKey, HashIV) when a credential is missing
	Reason string // What failed (empty input, bad base64, decrypt failed)
	Cause  error  // Original error from the cipher primitive
}

func (e *EncryptionError) Error() string {
	msg := ErrEncryption.Error()
	if e.Key != "" {
		msg = fmt.Sprintf("%s: %s must not be empty", msg, e.Key)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EncryptionError) Unwrap() error {
	return ErrEncryption
}

// PayloadError reports a structural or serialization problem with a payload.
type PayloadError struct {
	Reason string
	Cause  error
}

func (e *PayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrPayload.Error(), e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPayload.Error(), e.Reason)
}

func (e *PayloadError) Unwrap() error {
	return ErrPayload
}

// APIError reports a response the SDK could not accept.
// RtnCode and RtnMsg are set when the vendor answered with an error code.
type APIError struct {
	Reason   string
	RtnCode  *int
	RtnMsg   string
	Response Payload
	Cause    error
}

func (e *APIError) Error() string {
	msg := ErrAPI.Error()
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.RtnCode != nil {
		msg = fmt.Sprintf("%s [%d] %s", msg, *e.RtnCode, e.RtnMsg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

// ConfigError reports a missing or invalid SDK setting.
type ConfigError struct {
	Key    string // Setting name
	Value  any    // Offending value, nil when missing
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: missing %s", ErrConfiguration.Error(), e.Key)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration.Error(), e.Key, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// ArgumentError reports a factory resolution failure.
type ArgumentError struct {
	Target string // Target string passed to Make, if any
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s: %s (%q)", ErrInvalidArgument.Error(), e.Reason, e.Target)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidArgument.Error(), e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// newRequiredError creates a ValidationError for an empty required field.
func newRequiredError(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}

// newKeyError creates an EncryptionError for an empty credential.
func newKeyError(key string) error {
	return &EncryptionError{Key: key}
}

// newCipherError creates an EncryptionError for a cipher failure.
func newCipherError(reason string, cause error) error {
	return &EncryptionError{Reason: reason, Cause: cause}
}

// newAPIError creates an APIError from a vendor return code and message.
func newAPIError(reason string, code int, msg string, response Payload) error {
	return &APIError{Reason: reason, RtnCode: &code, RtnMsg: msg, Response: response}
}
