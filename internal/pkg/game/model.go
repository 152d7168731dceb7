package game

import "time"

// Square is one cell of a bingo card. The free square is pre-verified.
type Square struct {
	Prompt string `json:"prompt"`
	Free   bool   `json:"free,omitempty"`
}

// Session records one paid game entry.
type Session struct {
	ID          string    `json:"session_id"`
	Player      string    `json:"player"`
	Network     string    `json:"network"`
	EntryFeeUSD string    `json:"entry_fee_usd"`
	Transaction string    `json:"transaction"`
	BlockNumber int64     `json:"block_number"`
	JoinedAt    time.Time `json:"joined_at"`
	Card        []Square  `json:"card"`
}

type JoinGame struct {
	EntryFee  string   `json:"entryFee"`
	Network   string   `json:"network"`
	Player    string   `json:"player"`
	SessionID string   `json:"sessionId,omitempty"`
	Card      []Square `json:"card,omitempty"`
}

type JoinPayment struct {
	Transaction string `json:"transaction"`
	BlockNumber int64  `json:"blockNumber"`
	Explorer    string `json:"explorer"`
	Amount      string `json:"amount"`
}

type JoinResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Game    JoinGame    `json:"game"`
	Payment JoinPayment `json:"payment"`
}

type WinRequest struct {
	SessionID string `json:"sessionId"`
	Cells     []bool `json:"cells"`
}

type WinResponse struct {
	Bingo         bool `json:"bingo"`
	VerifiedCount int  `json:"verifiedCount"`
}

type StatsResponse struct {
	Players   int64  `json:"players"`
	PrizePool string `json:"prizePool"`
	EntryFee  string `json:"entryFee"`
	Network   string `json:"network"`
}
