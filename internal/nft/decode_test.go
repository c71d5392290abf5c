package nft

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habithero/habitherod/internal/models"
)

const owner = "0x1111111111111111111111111111111111111111"

func tuple(cid, desc, title string, streak interface{}) []interface{} {
	return []interface{}{cid, desc, title, streak, big.NewInt(1700000000), big.NewInt(1700000100)}
}

func TestDecode_PositionalMapping(t *testing.T) {
	h, err := Decode(tuple("QmBadge", "Do 20 pushups every morning.", "Daily Pushups", big.NewInt(4)), 0, owner)
	require.NoError(t, err)

	assert.Equal(t, "QmBadge", h.CID)
	assert.Equal(t, "Do 20 pushups every morning.", h.Description)
	assert.Equal(t, "Daily Pushups", h.Title)
	assert.Equal(t, 4, h.Streak)
	assert.Equal(t, int64(1700000000), h.CreatedAt)
	assert.Equal(t, int64(1700000100), h.UpdatedAt)
	assert.Equal(t, owner, h.Owner)
}

func TestDecode_TitleFallback(t *testing.T) {
	h, err := Decode(tuple("", "desc", "", big.NewInt(0)), 2, owner)
	require.NoError(t, err)
	assert.Equal(t, "Habit 3", h.Title)

	h, err = Decode(tuple("", "desc", "   ", big.NewInt(0)), 0, owner)
	require.NoError(t, err)
	assert.Equal(t, "Habit 1", h.Title)
}

func TestDecode_StreakFromString(t *testing.T) {
	h, err := Decode(tuple("", "desc", "Read", "7"), 0, owner)
	require.NoError(t, err)
	assert.Equal(t, 7, h.Streak)
}

func TestDecode_Rejects(t *testing.T) {
	// Wrong arity.
	_, err := Decode([]interface{}{"cid", "desc"}, 0, owner)
	assert.Error(t, err)

	// Wrong type where a string is expected.
	_, err = Decode([]interface{}{42, "desc", "title", big.NewInt(1), big.NewInt(0), big.NewInt(0)}, 0, owner)
	assert.Error(t, err)

	// Non-numeric streak.
	_, err = Decode(tuple("", "desc", "title", "soon"), 0, owner)
	assert.Error(t, err)

	// Negative streak violates the invariant.
	_, err = Decode(tuple("", "desc", "title", big.NewInt(-1)), 0, owner)
	assert.Error(t, err)
}

func TestDecodeAll_FailsWholeBatch(t *testing.T) {
	rows := [][]interface{}{
		tuple("", "a", "A", big.NewInt(1)),
		{"only", "four", "fields", big.NewInt(1)},
	}
	_, err := DecodeAll(rows, owner)
	assert.Error(t, err)
}

func TestBoard_Metrics(t *testing.T) {
	habits := []models.HabitNFT{
		{Streak: 2}, {Streak: 0}, {Streak: 7}, {Streak: 0},
	}
	board := Board(habits)
	assert.Equal(t, 4, board.Total)
	assert.Equal(t, 2, board.Completed)
	assert.InDelta(t, 50.0, board.ProgressPercentage, 0.001)
}

func TestBoard_EmptyCollectionNoDivideByZero(t *testing.T) {
	board := Board(nil)
	assert.Equal(t, 0, board.Total)
	assert.Equal(t, 0, board.Completed)
	assert.Equal(t, 0.0, board.ProgressPercentage)
}

func TestRows_StructAndSliceShapes(t *testing.T) {
	structRows := []struct {
		Cid         string
		Description string
		Title       string
		Streak      *big.Int
		CreatedAt   *big.Int
		UpdatedAt   *big.Int
	}{
		{"QmX", "desc", "Water", big.NewInt(3), big.NewInt(10), big.NewInt(20)},
	}
	rows, err := Rows(structRows)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	h, err := Decode(rows[0], 0, owner)
	require.NoError(t, err)
	assert.Equal(t, "Water", h.Title)
	assert.Equal(t, 3, h.Streak)

	sliceRows := [][]interface{}{tuple("QmY", "d", "Run", big.NewInt(1))}
	rows, err = Rows(sliceRows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Run", rows[0][2])
}

func TestRows_UnexportedFieldsRejected(t *testing.T) {
	hiddenRows := []struct {
		Cid    string
		streak *big.Int
	}{
		{"QmX", big.NewInt(3)},
	}

	// Must fail with a decode error, never panic.
	assert.NotPanics(t, func() {
		_, err := Rows(hiddenRows)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected NFT tuple kind")
	})
}
