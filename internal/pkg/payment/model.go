package payment

// Header is the request header carrying the JSON-encoded payment envelope.
const Header = "X-Payment"

// Authorization is a signed transfer instruction. Value is the amount in the
// token's smallest unit, encoded as a decimal string.
type Authorization struct {
	From        string `json:"from" validate:"required"`
	To          string `json:"to" validate:"required"`
	Value       string `json:"value" validate:"required"`
	ValidAfter  int64  `json:"validAfter"`
	ValidBefore int64  `json:"validBefore"`
	Nonce       string `json:"nonce"`
}

// Envelope wraps an authorization for transmission. The signature is opaque
// here, it is checked by the facilitator.
type Envelope struct {
	Network       string        `json:"network" validate:"required"`
	Authorization Authorization `json:"authorization" validate:"required"`
	Signature     string        `json:"signature" validate:"required"`
}

// FacilitatorPayload is the body of both facilitator calls.
type FacilitatorPayload struct {
	Authorization Authorization `json:"authorization"`
	Signature     string        `json:"signature"`
	Network       string        `json:"network"`
}

type VerificationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// SettlementResult is the facilitator's settle response. Transaction,
// BlockNumber, Explorer and Payer are only present on success.
type SettlementResult struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction,omitempty"`
	BlockNumber int64  `json:"blockNumber,omitempty"`
	Explorer    string `json:"explorer,omitempty"`
	Payer       string `json:"payer,omitempty"`
	Error       string `json:"error,omitempty"`
}
