package payment

import (
	"fmt"
	"net/http"
)

// Error codes for the join payment flow.
const (
	CodeMissingPayment         = "MISSING_PAYMENT"
	CodeMalformedPayment       = "MALFORMED_PAYMENT"
	CodeIncompletePayment      = "INCOMPLETE_PAYMENT"
	CodeNetworkMismatch        = "NETWORK_MISMATCH"
	CodeWrongRecipient         = "WRONG_RECIPIENT"
	CodeAmountMismatch         = "AMOUNT_MISMATCH"
	CodeVerificationFailed     = "VERIFICATION_FAILED"
	CodeSettlementFailed       = "SETTLEMENT_FAILED"
	CodeFacilitatorUnavailable = "FACILITATOR_UNAVAILABLE"
	CodeFacilitatorRejected    = "FACILITATOR_REJECTED"
	CodeInvalidConfig          = "INVALID_CONFIG"
	CodeInternal               = "INTERNAL"
)

// Error is a classified payment failure. Status is the HTTP status the
// failure maps to, Title the public error label, Details an optional
// structured payload echoed back to the client.
type Error struct {
	Code        string
	Status      int
	Title       string
	Message     string
	Details     any
	Facilitator string
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code string, status int, title, message string) *Error {
	return &Error{
		Code:    code,
		Status:  status,
		Title:   title,
		Message: message,
	}
}

func missingPayment(details any) *Error {
	result := newError(CodeMissingPayment, http.StatusPaymentRequired,
		"Payment Required", "missing X-Payment header")
	result.Details = details

	return result
}

func malformedPayment(cause error) *Error {
	result := newError(CodeMalformedPayment, http.StatusBadRequest,
		"Invalid Payment", "X-Payment header must be valid JSON")
	result.Details = cause.Error()
	result.Cause = cause

	return result
}

func incompletePayment(cause error) *Error {
	result := newError(CodeIncompletePayment, http.StatusBadRequest,
		"Invalid Payment", "payment envelope missing required fields (network, authorization, signature)")
	result.Cause = cause

	return result
}

func networkMismatch(expected, received string) *Error {
	return newError(CodeNetworkMismatch, http.StatusBadRequest,
		"Invalid Payment", fmt.Sprintf("network mismatch: expected %s, got %s", expected, received))
}

func wrongRecipient(payTo string) *Error {
	return newError(CodeWrongRecipient, http.StatusBadRequest,
		"Invalid Payment", fmt.Sprintf("payment must be sent to %s", payTo))
}

func amountMismatch(expected, feeUSD, received string) *Error {
	return newError(CodeAmountMismatch, http.StatusBadRequest,
		"Invalid Payment", fmt.Sprintf("incorrect payment amount: expected %s (%s USDC), got %s", expected, feeUSD, received))
}

func verificationFailed(message string, details any) *Error {
	if message == "" {
		message = "invalid payment signature"
	}

	result := newError(CodeVerificationFailed, http.StatusPaymentRequired,
		"Payment Verification Failed", message)
	result.Details = details

	return result
}

func settlementFailed(message string, details any) *Error {
	if message == "" {
		message = "failed to execute payment on-chain"
	}

	result := newError(CodeSettlementFailed, http.StatusPaymentRequired,
		"Payment Settlement Failed", message)
	result.Details = details

	return result
}

func facilitatorUnavailable(baseURL string, cause error) *Error {
	result := newError(CodeFacilitatorUnavailable, http.StatusServiceUnavailable,
		"Service Unavailable", "payment facilitator is not available, please try again later")
	result.Facilitator = baseURL
	result.Cause = cause

	return result
}

func facilitatorRejected(status int, message string, details any) *Error {
	if message == "" {
		message = "failed to verify payment"
	}

	result := newError(CodeFacilitatorRejected, status,
		"Payment Verification Error", message)
	result.Details = details

	return result
}

// ConfigError reports a deployment fault, never surfaced as a payment problem.
func ConfigError(message string) *Error {
	return newError(CodeInvalidConfig, http.StatusInternalServerError,
		"Server configuration error", message)
}

// InternalError wraps an unexpected failure. The cause is only exposed to
// clients in development environments.
func InternalError(cause error) *Error {
	result := newError(CodeInternal, http.StatusInternalServerError,
		"Internal Server Error", "failed to process game join request")
	result.Cause = cause

	return result
}
