package themes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/storage/memory"
)

func setup(t *testing.T) (*Controller, *storage.Repositories, *[]events.Event) {
	t.Helper()
	repos := storage.NewRepositories(memory.New())
	bus := events.NewBus()
	var seen []events.Event
	bus.Subscribe(func(e events.Event) { seen = append(seen, e) })
	c, err := New(repos, bus)
	require.NoError(t, err)
	return c, repos, &seen
}

func TestDefaults(t *testing.T) {
	c, _, _ := setup(t)
	assert.Equal(t, models.DefaultThemeKey, c.ActiveTheme().Key)
	assert.Equal(t, models.DefaultStickerPackKey, c.ActiveStickerPack().Key)
	assert.True(t, c.Spent().IsZero())
}

func TestFreeThemeSelection(t *testing.T) {
	c, repos, seen := setup(t)

	require.NoError(t, c.SelectTheme("forest"))
	assert.Equal(t, "forest", c.ActiveTheme().Key)

	stored, err := repos.SelectedTheme.Load()
	require.NoError(t, err)
	assert.Equal(t, "forest", stored)
	assert.Equal(t, []events.Event{{Kind: events.KindThemes, Slot: "notesAppTheme"}}, *seen)
}

func TestPremiumThemeGating(t *testing.T) {
	c, repos, _ := setup(t)

	assert.False(t, c.ThemeAvailable("argyle"))
	err := c.SelectTheme("argyle")
	assert.ErrorIs(t, err, apperrors.ErrNotPurchased)
	assert.Equal(t, models.DefaultThemeKey, c.ActiveTheme().Key)

	require.NoError(t, c.PurchaseTheme("argyle"))
	require.NoError(t, c.PurchaseTheme("argyle"))
	assert.Equal(t, []string{"argyle"}, c.PurchasedThemes())

	require.NoError(t, c.SelectTheme("argyle"))
	assert.Equal(t, "argyle", c.ActiveTheme().Key)

	// Switching away never revokes the purchase
	require.NoError(t, c.SelectTheme("sunset"))
	stored, err := repos.PurchasedThemes.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"argyle"}, stored)
	assert.True(t, c.ThemeAvailable("argyle"))

	assert.True(t, decimal.RequireFromString("0.99").Equal(c.Spent()))
}

func TestUnknownKeys(t *testing.T) {
	c, _, seen := setup(t)

	assert.ErrorIs(t, c.SelectTheme("neon"), apperrors.ErrUnknownKey)
	assert.ErrorIs(t, c.PurchaseTheme("neon"), apperrors.ErrUnknownKey)
	assert.ErrorIs(t, c.SelectStickerPack("dogs"), apperrors.ErrUnknownKey)
	assert.ErrorIs(t, c.PurchaseStickerPack("dogs"), apperrors.ErrUnknownKey)
	assert.Empty(t, *seen)
}

func TestBuyingFreeItemIsNoop(t *testing.T) {
	c, _, seen := setup(t)
	require.NoError(t, c.PurchaseTheme("midnight"))
	assert.Empty(t, c.PurchasedThemes())
	assert.Empty(t, *seen)
}

func TestStickerPackGating(t *testing.T) {
	c, _, _ := setup(t)

	assert.ErrorIs(t, c.SelectStickerPack("cats"), apperrors.ErrNotPurchased)
	assert.Equal(t, "😊", c.Emoji(models.MoodHappy))

	require.NoError(t, c.PurchaseStickerPack("cats"))
	require.NoError(t, c.SelectStickerPack("cats"))
	assert.Equal(t, "😹", c.Emoji(models.MoodHappy))
	assert.Equal(t, []string{"cats"}, c.PurchasedStickerPacks())
}

func TestStoredPremiumSelectionWithoutPurchaseFallsBack(t *testing.T) {
	repos := storage.NewRepositories(memory.New())
	require.NoError(t, repos.SelectedTheme.Save("checkerboard"))
	require.NoError(t, repos.SelectedStickers.Save("unknown-pack"))

	c, err := New(repos, nil)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultThemeKey, c.ActiveTheme().Key)
	assert.Equal(t, models.DefaultStickerPackKey, c.ActiveStickerPack().Key)
}

func TestSelectionSurvivesReload(t *testing.T) {
	repos := storage.NewRepositories(memory.New())
	c, err := New(repos, nil)
	require.NoError(t, err)
	require.NoError(t, c.PurchaseTheme("leafPattern"))
	require.NoError(t, c.SelectTheme("leafPattern"))

	again, err := New(repos, nil)
	require.NoError(t, err)
	assert.Equal(t, "leafPattern", again.ActiveTheme().Key)
}
