package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/samber/do/v2"
	"github.com/selfbingo/selfbingo/internal/pkg/logging"
	"github.com/selfbingo/selfbingo/internal/pkg/metrics"
)

const (
	verifyPath    = "/verify-celo"
	settlePath    = "/settle-celo"
	verifyTimeout = 10 * time.Second
	settleTimeout = 30 * time.Second
)

// FacilitatorClient talks to the external payment facilitator. Each call is
// attempted exactly once, retry policy belongs to the caller.
type FacilitatorClient struct {
	BaseURL string

	HTTPClient *http.Client
	Logger     logging.Logger
	Recorder   metrics.Recorder
}

func NewFacilitatorClient(i do.Injector) (*FacilitatorClient, error) {
	baseURL := do.MustInvokeNamed[string](i, "facilitator-url")

	log, err := do.Invoke[logging.Logger](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	recorder, err := do.Invoke[metrics.Recorder](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	result := &FacilitatorClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Logger:     log,
		Recorder:   recorder,
	}

	return result, nil
}

// Verify asks the facilitator to check the authorization's signature. A nil
// return means the payment is valid.
func (c *FacilitatorClient) Verify(ctx context.Context, envelope *Envelope) *Error {
	body, perr := c.post(ctx, verifyPath, envelope, verifyTimeout)
	if perr != nil {
		return perr
	}

	var result VerificationResult

	err := json.Unmarshal(body, &result)
	if err != nil {
		return verificationFailed("", string(body))
	}

	if !result.Valid {
		c.Logger.Warn("payment verification failed", map[string]any{
			"from":  envelope.Authorization.From,
			"error": result.Error,
		})

		return verificationFailed(result.Error, result)
	}

	return nil
}

// Settle executes the verified payment on-chain. Only called after Verify
// succeeds.
func (c *FacilitatorClient) Settle(ctx context.Context, envelope *Envelope) (*SettlementResult, *Error) {
	body, perr := c.post(ctx, settlePath, envelope, settleTimeout)
	if perr != nil {
		return nil, perr
	}

	var result SettlementResult

	err := json.Unmarshal(body, &result)
	if err != nil {
		return nil, settlementFailed("", string(body))
	}

	if !result.Success {
		c.Logger.Warn("payment settlement failed", map[string]any{
			"from":  envelope.Authorization.From,
			"error": result.Error,
		})

		return nil, settlementFailed(result.Error, result)
	}

	return &result, nil
}

//nolint:cyclop
func (c *FacilitatorClient) post(ctx context.Context, path string, envelope *Envelope, timeout time.Duration) ([]byte, *Error) {
	payload := FacilitatorPayload{
		Authorization: envelope.Authorization,
		Signature:     envelope.Signature,
		Network:       envelope.Network,
	}

	marshaled, err := json.Marshal(payload)
	if err != nil {
		return nil, InternalError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(marshaled))
	if err != nil {
		return nil, InternalError(err)
	}

	req.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := c.HTTPClient.Do(req)

	outcome := "ok"
	if err != nil || resp.StatusCode != http.StatusOK {
		outcome = "error"
	}

	c.Recorder.ObserveLatency("facilitator"+path, time.Since(start), map[string]string{"outcome": outcome})

	if err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			c.Logger.Error("facilitator unreachable", map[string]any{
				"facilitator": c.BaseURL,
				"error":       err.Error(),
			})

			return nil, facilitatorUnavailable(c.BaseURL, err)
		}

		return nil, InternalError(err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, InternalError(err)
	}

	if resp.StatusCode != http.StatusOK {
		var details map[string]any

		message := ""
		if json.Unmarshal(body, &details) == nil {
			message, _ = details["error"].(string)
		}

		return nil, facilitatorRejected(resp.StatusCode, message, details)
	}

	return body, nil
}
