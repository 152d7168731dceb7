package game_test

import (
	"testing"

	"github.com/selfbingo/selfbingo/internal/pkg/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	card, err := game.NewCard()

	require.NoError(t, err)
	require.Len(t, card, game.CardSquares)

	free := card[game.FreeSquareIndex]
	assert.True(t, free.Free)
	assert.Equal(t, "FREE", free.Prompt)

	pool := make(map[string]bool, len(game.Prompts))
	for _, prompt := range game.Prompts {
		pool[prompt] = true
	}

	seen := make(map[string]bool, game.CardSquares)

	for index, square := range card {
		if index == game.FreeSquareIndex {
			continue
		}

		assert.False(t, square.Free)
		assert.True(t, pool[square.Prompt], "prompt %q not in pool", square.Prompt)
		assert.False(t, seen[square.Prompt], "prompt %q drawn twice", square.Prompt)

		seen[square.Prompt] = true
	}
}
