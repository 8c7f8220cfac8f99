package cli

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
)

func priceLabel(premium, owned bool, price decimal.Decimal) string {
	switch {
	case !premium:
		return "free"
	case owned:
		return "owned"
	default:
		return "$" + price.StringFixed(2)
	}
}

type ThemeListCmd struct{}

func (c *ThemeListCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	active := a.Themes.ActiveTheme().Key
	for _, t := range models.Themes {
		marker := " "
		if t.Key == active {
			marker = "*"
		}
		ctx.printf("%s %-14s %-18s %s\n", marker, t.Key, t.Name, priceLabel(t.Premium, a.Themes.ThemeAvailable(t.Key), t.Price))
	}
	ctx.printf("\nSpent on premium items: $%s\n", a.Themes.Spent().StringFixed(2))
	return nil
}

type ThemeUseCmd struct {
	Key string `arg:"" help:"Theme key."`
}

func (c *ThemeUseCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.Themes.SelectTheme(c.Key); err != nil {
		if errors.Is(err, apperrors.ErrNotPurchased) {
			return fmt.Errorf("%w: run 'daybook theme buy %s' first", err, c.Key)
		}
		return err
	}
	ctx.printf("Theme set to %s\n", a.Themes.ActiveTheme().Name)
	return nil
}

type ThemeBuyCmd struct {
	Key string `arg:"" help:"Theme key."`
}

func (c *ThemeBuyCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	t, ok := models.LookupTheme(c.Key)
	if !ok {
		return fmt.Errorf("theme %q: %w", c.Key, apperrors.ErrUnknownKey)
	}
	if err := a.Themes.PurchaseTheme(c.Key); err != nil {
		return err
	}
	if !t.Premium {
		ctx.printf("%s is free; nothing to buy\n", t.Name)
		return nil
	}
	ctx.printf("Purchased %s for $%s\n", t.Name, t.Price.StringFixed(2))
	return nil
}

type StickerListCmd struct{}

func (c *StickerListCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	active := a.Themes.ActiveStickerPack().Key
	for _, p := range models.StickerPacks {
		marker := " "
		if p.Key == active {
			marker = "*"
		}
		preview := ""
		for _, level := range models.MoodLevels {
			preview += p.EmojiFor(level.ID)
		}
		ctx.printf("%s %-8s %-14s %s  %s\n", marker, p.Key, p.Name, preview, priceLabel(p.Premium, a.Themes.StickerPackAvailable(p.Key), p.Price))
	}
	return nil
}

type StickerUseCmd struct {
	Key string `arg:"" help:"Sticker pack key."`
}

func (c *StickerUseCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.Themes.SelectStickerPack(c.Key); err != nil {
		if errors.Is(err, apperrors.ErrNotPurchased) {
			return fmt.Errorf("%w: run 'daybook sticker buy %s' first", err, c.Key)
		}
		return err
	}
	ctx.printf("Sticker pack set to %s\n", a.Themes.ActiveStickerPack().Name)
	return nil
}

type StickerBuyCmd struct {
	Key string `arg:"" help:"Sticker pack key."`
}

func (c *StickerBuyCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	p, ok := models.LookupStickerPack(c.Key)
	if !ok {
		return fmt.Errorf("sticker pack %q: %w", c.Key, apperrors.ErrUnknownKey)
	}
	if err := a.Themes.PurchaseStickerPack(c.Key); err != nil {
		return err
	}
	if !p.Premium {
		ctx.printf("%s is free; nothing to buy\n", p.Name)
		return nil
	}
	ctx.printf("Purchased %s for $%s\n", p.Name, p.Price.StringFixed(2))
	return nil
}
