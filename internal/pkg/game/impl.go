package game

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"
	"github.com/selfbingo/selfbingo/internal/pkg/common"
	"github.com/selfbingo/selfbingo/internal/pkg/logging"
	"github.com/selfbingo/selfbingo/internal/pkg/metrics"
	"github.com/selfbingo/selfbingo/internal/pkg/payment"
	"github.com/shopspring/decimal"
)

const EnvironmentDevelopment = "development"

// JoinService owns the paid join flow: envelope validation, facilitator
// verify and settle, then session creation.
type JoinService struct {
	Policy      *payment.Policy
	Facilitator *payment.FacilitatorClient
	Store       *Store

	Logger   logging.Logger
	Recorder metrics.Recorder

	Environment string
}

func NewJoinService(i do.Injector) (*JoinService, error) {
	policy, err := do.Invoke[*payment.Policy](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment policy: %w", err)
	}

	facilitator, err := do.Invoke[*payment.FacilitatorClient](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create facilitator client: %w", err)
	}

	store, err := do.Invoke[*Store](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create game store: %w", err)
	}

	log, err := do.Invoke[logging.Logger](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	recorder, err := do.Invoke[metrics.Recorder](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	result := &JoinService{
		Policy:      policy,
		Facilitator: facilitator,
		Store:       store,

		Logger:   log,
		Recorder: recorder,

		Environment: do.MustInvokeNamed[string](i, "environment"),
	}

	echoService, err := do.Invoke[*common.EchoService](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create echo service: %w", err)
	}

	echoService.Register(func(e *echo.Echo) {
		apiGroup := e.Group("/api")

		gameGroup := apiGroup.Group("/game")

		gameGroup.POST("/join", result.Join)
		gameGroup.POST("/win", result.CheckWin)
		gameGroup.GET("/stats", result.Stats)
	})

	return result, nil
}

func (s *JoinService) Join(c echo.Context) error {
	header := c.Request().Header.Get(payment.Header)

	response, perr := s.processJoin(c.Request().Context(), header)
	if perr != nil {
		s.Recorder.IncCounter("join", map[string]string{"outcome": perr.Code})

		return s.paymentError(c, perr)
	}

	s.Recorder.IncCounter("join", map[string]string{"outcome": "success"})

	//nolint:wrapcheck
	return c.JSON(http.StatusOK, response)
}

// processJoin runs the join pipeline in a fixed order, stopping at the first
// failing step. Settle is never attempted before verify succeeds.
func (s *JoinService) processJoin(ctx context.Context, header string) (*JoinResponse, *payment.Error) {
	err := s.Policy.Validate()
	if err != nil {
		return nil, payment.ConfigError(err.Error())
	}

	envelope, perr := payment.ParseEnvelope(header, s.Policy)
	if perr != nil {
		return nil, perr
	}

	s.Logger.Info("payment envelope validated, verifying with facilitator", map[string]any{
		"from":   envelope.Authorization.From,
		"amount": envelope.Authorization.Value,
	})

	perr = s.Facilitator.Verify(ctx, envelope)
	if perr != nil {
		return nil, perr
	}

	s.Logger.Info("payment verified, settling on-chain", map[string]any{
		"from": envelope.Authorization.From,
	})

	settlement, perr := s.Facilitator.Settle(ctx, envelope)
	if perr != nil {
		return nil, perr
	}

	s.Logger.Info("payment settled", map[string]any{
		"transaction": settlement.Transaction,
		"block":       settlement.BlockNumber,
	})

	session := s.createSession(envelope, settlement)

	response := &JoinResponse{
		Success: true,
		Message: "Payment verified and settled. Welcome to Self Bingo!",
		Game: JoinGame{
			EntryFee: s.Policy.EntryFeeUSD,
			Network:  s.Policy.Network,
			Player:   envelope.Authorization.From,
		},
		Payment: JoinPayment{
			Transaction: settlement.Transaction,
			BlockNumber: settlement.BlockNumber,
			Explorer:    settlement.Explorer,
			Amount:      s.Policy.EntryFeeUSD,
		},
	}

	if session != nil {
		response.Game.SessionID = session.ID
		response.Game.Card = session.Card
	}

	return response, nil
}

// createSession assigns a card and records the entry. Settlement has already
// executed on-chain at this point, so a store failure must not fail the join;
// it is logged and the player still gets in.
func (s *JoinService) createSession(envelope *payment.Envelope, settlement *payment.SettlementResult) *Session {
	card, err := NewCard()
	if err != nil {
		s.Logger.Error("failed to generate bingo card", map[string]any{"error": err.Error()})

		return nil
	}

	sessionID, err := uuid.NewV7()
	if err != nil {
		s.Logger.Error("failed to generate session ID", map[string]any{"error": err.Error()})

		return nil
	}

	session := &Session{
		ID:          sessionID.String(),
		Player:      envelope.Authorization.From,
		Network:     envelope.Network,
		EntryFeeUSD: s.Policy.EntryFeeUSD,
		Transaction: settlement.Transaction,
		BlockNumber: settlement.BlockNumber,
		JoinedAt:    time.Now(),
		Card:        card,
	}

	err = s.Store.SaveSession(session)
	if err != nil {
		s.Logger.Error("failed to save game session", map[string]any{
			"session": session.ID,
			"error":   err.Error(),
		})

		return nil
	}

	return session
}

func (s *JoinService) paymentError(c echo.Context, perr *payment.Error) error {
	body := echo.Map{
		"error":   perr.Title,
		"message": perr.Message,
	}

	if perr.Details != nil {
		body["details"] = perr.Details
	}

	if len(perr.Facilitator) > 0 {
		body["facilitator"] = perr.Facilitator
	}

	if perr.Code == payment.CodeInternal && s.Environment == EnvironmentDevelopment && perr.Cause != nil {
		body["details"] = perr.Cause.Error()
	}

	if perr.Status >= http.StatusInternalServerError {
		s.Logger.Error("join request failed", map[string]any{
			"code":  perr.Code,
			"error": perr.Error(),
		})
	}

	//nolint:wrapcheck
	return c.JSON(perr.Status, body)
}

func (s *JoinService) CheckWin(c echo.Context) error {
	var request WinRequest

	err := c.Bind(&request)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if len(request.Cells) != CardSquares {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("card must have %d cells", CardSquares))
	}

	_, err = s.Store.Session(request.SessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session")
	}

	verifiedCount := 0

	for _, cell := range request.Cells {
		if cell {
			verifiedCount++
		}
	}

	//nolint:wrapcheck
	return c.JSON(http.StatusOK, WinResponse{
		Bingo:         HasBingo(request.Cells),
		VerifiedCount: verifiedCount,
	})
}

func (s *JoinService) Stats(c echo.Context) error {
	joins, err := s.Store.Joins()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read stats")
	}

	fee, err := decimal.NewFromString(s.Policy.EntryFeeUSD)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "invalid entry fee configuration")
	}

	prizePool := fee.Mul(decimal.NewFromInt(joins))

	//nolint:wrapcheck
	return c.JSON(http.StatusOK, StatsResponse{
		Players:   joins,
		PrizePool: prizePool.StringFixed(2),
		EntryFee:  s.Policy.EntryFeeUSD,
		Network:   s.Policy.Network,
	})
}
