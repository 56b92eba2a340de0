package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// FieldIssue is one violated rule on one submitted field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field violation of a submission.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		fields = append(fields, is.Field)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// HasField reports whether field has at least one issue.
func (e *ValidationError) HasField(field string) bool {
	for _, is := range e.Issues {
		if is.Field == field {
			return true
		}
	}
	return false
}

// StatusConflictError is returned when a conditional status write finds the
// booking in a status the transition does not start from.
type StatusConflictError struct {
	BookingID string
	Current   BookingStatus
	Target    BookingStatus
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("booking %s: cannot move from %q to %q", e.BookingID, e.Current, e.Target)
}

// PaymentGatewayError wraps any failure to open a checkout session. The
// booking it was opened for survives.
type PaymentGatewayError struct {
	Provider string
	Err      error
}

func (e *PaymentGatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s: %v", e.Provider, e.Err)
}

func (e *PaymentGatewayError) Unwrap() error { return e.Err }

// Notification audiences.
const (
	AudienceCustomer = "customer"
	AudienceOperator = "operator"
)

// NotificationError is always non-fatal to the caller. Its message names the
// recipient and template, so it is for logs only.
type NotificationError struct {
	TemplateID string
	Recipient  string
	Audience   string
	Err        error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification %s to %s: %v", e.TemplateID, e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// SignatureVerificationError rejects a webhook delivery before any side effect.
type SignatureVerificationError struct {
	Reason string
	Err    error
}

func (e *SignatureVerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("signature verification failed: %s: %v", e.Reason, e.Err)
	}
	return "signature verification failed: " + e.Reason
}

func (e *SignatureVerificationError) Unwrap() error { return e.Err }

// ConfigurationError names the missing or invalid setting.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration error: %s is not set", e.Key)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

func MissingConfig(key string) *ConfigurationError {
	return &ConfigurationError{Key: key}
}
