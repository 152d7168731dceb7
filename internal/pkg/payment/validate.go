package payment

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ParseEnvelope validates a raw X-Payment header against the server policy.
// Checks run in a fixed order, structural before business rules, and the
// first failing check is reported. The returned envelope is the client's,
// unmodified.
func ParseEnvelope(header string, policy *Policy) (*Envelope, *Error) {
	if len(header) == 0 {
		return nil, missingPayment(map[string]string{
			"price":   policy.EntryFeeUSD,
			"network": policy.Network,
			"payTo":   policy.PayTo,
		})
	}

	var envelope Envelope

	err := json.Unmarshal([]byte(header), &envelope)
	if err != nil {
		return nil, malformedPayment(err)
	}

	err = validate.Struct(&envelope)
	if err != nil {
		return nil, incompletePayment(err)
	}

	if envelope.Network != policy.Network {
		return nil, networkMismatch(policy.Network, envelope.Network)
	}

	if !strings.EqualFold(envelope.Authorization.To, policy.PayTo) {
		return nil, wrongRecipient(policy.PayTo)
	}

	expected, err := policy.EntryFeeAtomic()
	if err != nil {
		return nil, ConfigError(err.Error())
	}

	if envelope.Authorization.Value != expected {
		return nil, amountMismatch(expected, policy.EntryFeeUSD, envelope.Authorization.Value)
	}

	return &envelope, nil
}
