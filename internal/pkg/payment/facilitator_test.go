package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/selfbingo/selfbingo/internal/pkg/logging"
	"github.com/selfbingo/selfbingo/internal/pkg/metrics"
	"github.com/selfbingo/selfbingo/internal/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *payment.FacilitatorClient {
	return &payment.FacilitatorClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Logger:     logging.NoopLogger{},
		Recorder:   metrics.NoopRecorder{},
	}
}

func TestVerifyValid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verify-celo", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var payload payment.FacilitatorPayload

		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "celo", payload.Network)
		assert.Equal(t, "0xdeadbeef", payload.Signature)

		_ = json.NewEncoder(w).Encode(payment.VerificationResult{Valid: true})
	}))
	defer srv.Close()

	envelope := testEnvelope()
	perr := newTestClient(srv.URL).Verify(context.Background(), &envelope)

	assert.Nil(t, perr)
}

func TestVerifyInvalid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(payment.VerificationResult{Valid: false, Error: "bad signature"})
	}))
	defer srv.Close()

	envelope := testEnvelope()
	perr := newTestClient(srv.URL).Verify(context.Background(), &envelope)

	require.NotNil(t, perr)
	assert.Equal(t, payment.CodeVerificationFailed, perr.Code)
	assert.Equal(t, http.StatusPaymentRequired, perr.Status)
	assert.Equal(t, "bad signature", perr.Message)
}

func TestVerifyMalformedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	envelope := testEnvelope()
	perr := newTestClient(srv.URL).Verify(context.Background(), &envelope)

	require.NotNil(t, perr)
	assert.Equal(t, payment.CodeVerificationFailed, perr.Code)
	assert.Equal(t, "invalid payment signature", perr.Message)
}

func TestVerifyFacilitatorRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
	}))
	defer srv.Close()

	envelope := testEnvelope()
	perr := newTestClient(srv.URL).Verify(context.Background(), &envelope)

	require.NotNil(t, perr)
	assert.Equal(t, payment.CodeFacilitatorRejected, perr.Code)
	assert.Equal(t, http.StatusTeapot, perr.Status)
	assert.Equal(t, "nope", perr.Message)
}

func TestVerifyFacilitatorUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	baseURL := srv.URL

	srv.Close()

	envelope := testEnvelope()
	perr := newTestClient(baseURL).Verify(context.Background(), &envelope)

	require.NotNil(t, perr)
	assert.Equal(t, payment.CodeFacilitatorUnavailable, perr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, perr.Status)
	assert.Equal(t, baseURL, perr.Facilitator)
}

func TestSettleSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settle-celo", r.URL.Path)

		_ = json.NewEncoder(w).Encode(payment.SettlementResult{
			Success:     true,
			Transaction: "0xabc",
			BlockNumber: 12345,
			Explorer:    "https://celoscan.io/tx/0xabc",
			Payer:       "0x1111111111111111111111111111111111111111",
		})
	}))
	defer srv.Close()

	envelope := testEnvelope()
	result, perr := newTestClient(srv.URL).Settle(context.Background(), &envelope)

	require.Nil(t, perr)
	assert.Equal(t, "0xabc", result.Transaction)
	assert.Equal(t, int64(12345), result.BlockNumber)
	assert.Equal(t, "https://celoscan.io/tx/0xabc", result.Explorer)
}

func TestSettleFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(payment.SettlementResult{Success: false, Error: "insufficient funds"})
	}))
	defer srv.Close()

	envelope := testEnvelope()
	_, perr := newTestClient(srv.URL).Settle(context.Background(), &envelope)

	require.NotNil(t, perr)
	assert.Equal(t, payment.CodeSettlementFailed, perr.Code)
	assert.Equal(t, http.StatusPaymentRequired, perr.Status)
	assert.Equal(t, "insufficient funds", perr.Message)
}
