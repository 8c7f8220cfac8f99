// Package themes tracks the active colour theme and mood sticker pack, and
// which premium items have been purchased.
package themes

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

// gate is the selection-plus-purchases state shared by themes and sticker packs.
type gate struct {
	selected   *storage.Slot[string]
	purchased  *storage.Slot[[]string]
	kind       events.Kind
	label      string
	defaultKey string
	lookup     func(key string) (premium bool, ok bool)

	active string
	owned  []string
}

func (g *gate) reload() error {
	active, err := g.selected.Load()
	if err != nil {
		return err
	}
	owned, err := g.purchased.Load()
	if err != nil {
		return err
	}
	g.owned = owned
	g.active = active
	if !g.available(active) {
		g.active = g.defaultKey
	}
	return nil
}

func (g *gate) available(key string) bool {
	premium, ok := g.lookup(key)
	if !ok {
		return false
	}
	return !premium || slices.Contains(g.owned, key)
}

func (g *gate) selectKey(bus *events.Bus, key string) error {
	premium, ok := g.lookup(key)
	if !ok {
		return fmt.Errorf("%s %q: %w", g.label, key, apperrors.ErrUnknownKey)
	}
	if premium && !slices.Contains(g.owned, key) {
		return fmt.Errorf("%s %q: %w", g.label, key, apperrors.ErrNotPurchased)
	}
	if err := g.selected.Save(key); err != nil {
		return err
	}
	g.active = key
	bus.Publish(events.Event{Kind: g.kind, Slot: g.selected.Key()})
	return nil
}

// purchase records key as owned. Purchases are never revoked and repeat
// purchases are no-ops.
func (g *gate) purchase(bus *events.Bus, key string) error {
	premium, ok := g.lookup(key)
	if !ok {
		return fmt.Errorf("%s %q: %w", g.label, key, apperrors.ErrUnknownKey)
	}
	if !premium || slices.Contains(g.owned, key) {
		return nil
	}
	next := append(slices.Clone(g.owned), key)
	if err := g.purchased.Save(next); err != nil {
		return err
	}
	g.owned = next
	bus.Publish(events.Event{Kind: g.kind, Slot: g.purchased.Key()})
	return nil
}

type Controller struct {
	bus      *events.Bus
	themes   *gate
	stickers *gate
}

func New(repos *storage.Repositories, bus *events.Bus) (*Controller, error) {
	c := &Controller{
		bus: bus,
		themes: &gate{
			selected:   repos.SelectedTheme,
			purchased:  repos.PurchasedThemes,
			kind:       events.KindThemes,
			label:      "theme",
			defaultKey: models.DefaultThemeKey,
			lookup: func(key string) (bool, bool) {
				t, ok := models.LookupTheme(key)
				return t.Premium, ok
			},
		},
		stickers: &gate{
			selected:   repos.SelectedStickers,
			purchased:  repos.PurchasedStickers,
			kind:       events.KindStickers,
			label:      "sticker pack",
			defaultKey: models.DefaultStickerPackKey,
			lookup: func(key string) (bool, bool) {
				p, ok := models.LookupStickerPack(key)
				return p.Premium, ok
			},
		},
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) Reload() error {
	if err := c.themes.reload(); err != nil {
		return err
	}
	return c.stickers.reload()
}

// ActiveTheme returns the selected theme, or the default when the stored
// key is unknown or not purchased.
func (c *Controller) ActiveTheme() models.Theme {
	t, _ := models.LookupTheme(c.themes.active)
	return t
}

// ThemeAvailable reports whether key can be selected right now.
func (c *Controller) ThemeAvailable(key string) bool {
	return c.themes.available(key)
}

// SelectTheme activates key. Premium themes return ErrNotPurchased until
// bought; callers route the user to PurchaseTheme.
func (c *Controller) SelectTheme(key string) error {
	return c.themes.selectKey(c.bus, key)
}

func (c *Controller) PurchaseTheme(key string) error {
	return c.themes.purchase(c.bus, key)
}

func (c *Controller) PurchasedThemes() []string {
	return slices.Clone(c.themes.owned)
}

func (c *Controller) ActiveStickerPack() models.StickerPack {
	p, _ := models.LookupStickerPack(c.stickers.active)
	return p
}

func (c *Controller) StickerPackAvailable(key string) bool {
	return c.stickers.available(key)
}

func (c *Controller) SelectStickerPack(key string) error {
	return c.stickers.selectKey(c.bus, key)
}

func (c *Controller) PurchaseStickerPack(key string) error {
	return c.stickers.purchase(c.bus, key)
}

func (c *Controller) PurchasedStickerPacks() []string {
	return slices.Clone(c.stickers.owned)
}

// Spent totals the price of every purchased theme and sticker pack.
func (c *Controller) Spent() decimal.Decimal {
	total := decimal.Zero
	for _, key := range c.themes.owned {
		if t, ok := models.LookupTheme(key); ok {
			total = total.Add(t.Price)
		}
	}
	for _, key := range c.stickers.owned {
		if p, ok := models.LookupStickerPack(key); ok {
			total = total.Add(p.Price)
		}
	}
	return total
}

// Emoji renders a mood with the active sticker pack.
func (c *Controller) Emoji(id models.MoodID) string {
	return c.ActiveStickerPack().EmojiFor(id)
}
