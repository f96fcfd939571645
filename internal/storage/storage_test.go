package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadGame(t *testing.T) {
	s := openTestStore(t)

	saved := &SavedGame{
		Name:   "italian",
		FEN:    "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Moves:  []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4"},
		Result: "*",
	}
	require.NoError(t, s.SaveGame(saved))
	assert.False(t, saved.SavedAt.IsZero(), "SaveGame should stamp the time")

	loaded, err := s.LoadGame("italian")
	require.NoError(t, err)
	assert.Equal(t, saved.FEN, loaded.FEN)
	assert.Equal(t, saved.Moves, loaded.Moves)
	assert.Equal(t, saved.Result, loaded.Result)
}

func TestLoadMissingGame(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadGame("nope")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestSaveGameRequiresName(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.SaveGame(&SavedGame{FEN: "x"}))
}

func TestListAndDeleteGames(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, s.SaveGame(&SavedGame{Name: name, FEN: "fen"}))
	}

	names, err := s.ListGames()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, names)

	require.NoError(t, s.DeleteGame("beta"))
	names, err = s.ListGames()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "gamma"}, names)

	// Deleting a missing game is a no-op.
	assert.NoError(t, s.DeleteGame("beta"))
}

func TestSaveGameOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveGame(&SavedGame{Name: "g", Moves: []string{"e2e4"}}))
	require.NoError(t, s.SaveGame(&SavedGame{Name: "g", Moves: []string{"d2d4", "d7d5"}}))

	loaded, err := s.LoadGame("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"d2d4", "d7d5"}, loaded.Moves)
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	// Nothing saved yet: defaults.
	prefs, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)

	prefs.HashSizeMB = 64
	prefs.SearchDepth = 7
	require.NoError(t, s.SavePreferences(prefs))

	loaded, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, 64, loaded.HashSizeMB)
	assert.Equal(t, 7, loaded.SearchDepth)
}
