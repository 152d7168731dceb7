package game_test

import (
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/selfbingo/selfbingo/internal/pkg/common"
	"github.com/selfbingo/selfbingo/internal/pkg/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *game.Store {
	t.Helper()

	i := do.New()
	do.ProvideNamedValue(i, "data-dir", t.TempDir())

	databaseService, err := common.NewDatabaseService(i)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = databaseService.Shutdown()
	})

	return &game.Store{DatabaseService: databaseService}
}

func testSession() *game.Session {
	return &game.Session{
		ID:          "0192d5a0-0000-7000-8000-000000000001",
		Player:      "0x1111111111111111111111111111111111111111",
		Network:     "celo",
		EntryFeeUSD: "0.01",
		Transaction: "0xabc",
		BlockNumber: 12345,
		JoinedAt:    time.Now().UTC().Truncate(time.Second),
		Card: []game.Square{
			{Prompt: "Age 25+"},
		},
	}
}

func TestStoreSaveAndLoadSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	session := testSession()

	require.NoError(t, store.SaveSession(session))

	loaded, err := store.Session(session.ID)

	require.NoError(t, err)
	assert.Equal(t, session, loaded)
}

func TestStoreSessionNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Session("missing")

	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestStoreJoinCounter(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	joins, err := store.Joins()
	require.NoError(t, err)
	assert.Equal(t, int64(0), joins)

	first := testSession()
	require.NoError(t, store.SaveSession(first))

	second := testSession()
	second.ID = "0192d5a0-0000-7000-8000-000000000002"
	require.NoError(t, store.SaveSession(second))

	joins, err = store.Joins()
	require.NoError(t, err)
	assert.Equal(t, int64(2), joins)
}
