package payment

import (
	"errors"
	"fmt"

	"github.com/samber/do/v2"
	"github.com/shopspring/decimal"
)

// TokenDecimals is the number of decimals of the settlement token (USDC).
const TokenDecimals = 6

var ErrPayToNotConfigured = errors.New("payment wallet not configured")

// Policy is the process-wide payment configuration, constructed once at
// startup and immutable thereafter.
type Policy struct {
	PayTo       string
	Network     string
	EntryFeeUSD string
}

func NewPolicy(i do.Injector) (*Policy, error) {
	result := &Policy{
		PayTo:       do.MustInvokeNamed[string](i, "pay-to"),
		Network:     do.MustInvokeNamed[string](i, "network"),
		EntryFeeUSD: do.MustInvokeNamed[string](i, "entry-fee-usd"),
	}

	return result, nil
}

func (p *Policy) Validate() error {
	if len(p.PayTo) == 0 {
		return ErrPayToNotConfigured
	}

	return nil
}

// EntryFeeAtomic converts the USD entry fee to the token's smallest unit,
// e.g. "0.01" becomes "10000".
func (p *Policy) EntryFeeAtomic() (string, error) {
	fee, err := decimal.NewFromString(p.EntryFeeUSD)
	if err != nil {
		return "", fmt.Errorf("invalid entry fee %q: %w", p.EntryFeeUSD, err)
	}

	return fee.Shift(TokenDecimals).Round(0).String(), nil
}
