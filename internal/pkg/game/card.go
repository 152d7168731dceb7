package game

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

var ErrNotEnoughPrompts = errors.New("not enough prompts to fill a card")

// Prompts is the pool of identity attributes a card is drawn from.
var Prompts = []string{
	"Age 25+",
	"From Europe",
	"Not from USA",
	"Passport valid 6+ months",
	"Born in 1990s",
	"Gender: Male",
	"Issued in home country",
	"Age 18-30",
	"From Asia",
	"Not on OFAC list",
	"Born after 2000",
	"Has valid passport",
	"From Africa",
	"Age 30+",
	"Not from sanctioned country",
	"Gender: Female",
	"From South America",
	"Passport expires 2026+",
	"Born before 1995",
	"From Oceania",
	"Age 21+",
	"From North America",
	"Gender: Other",
	"Born in 2000s",
}

// NewCard draws a 5x5 card of distinct prompts, with the center square free.
func NewCard() ([]Square, error) {
	if len(Prompts) < CardSquares-1 {
		return nil, fmt.Errorf("%w: need %d prompts, have %d", ErrNotEnoughPrompts, CardSquares-1, len(Prompts))
	}

	shuffled := make([]string, len(Prompts))
	copy(shuffled, Prompts)

	for i := len(shuffled) - 1; i > 0; i-- {
		randIdx, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, fmt.Errorf("failed to generate random index: %w", err)
		}

		j := int(randIdx.Int64())
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	result := make([]Square, 0, CardSquares)

	next := 0
	for index := range CardSquares {
		if index == FreeSquareIndex {
			result = append(result, Square{Prompt: "FREE", Free: true})

			continue
		}

		result = append(result, Square{Prompt: shuffled[next]})
		next++
	}

	return result, nil
}
