package models

import "github.com/shopspring/decimal"

// Theme is a colour scheme. Premium themes must be purchased before use.
type Theme struct {
	Key            string
	Name           string
	Background     string
	CardBackground string
	TextPrimary    string
	TextSecondary  string
	Accent         string
	Border         string
	Hover          string
	Premium        bool
	Price          decimal.Decimal
}

const DefaultThemeKey = "default"

var premiumPrice = decimal.RequireFromString("0.99")

// Themes is the catalogue in display order
var Themes = []Theme{
	newTheme("default", "Ocean Breeze", "#667eea", "#3b82f6"),
	newTheme("sunset", "Sunset Glow", "#ff9a9e", "#f59e0b"),
	newTheme("forest", "Forest Dream", "#a8edea", "#10b981"),
	newTheme("midnight", "Midnight Sky", "#2c3e50", "#8b5cf6"),
	newTheme("lavender", "Lavender Fields", "#ffecd2", "#ec4899"),
	premiumTheme(newTheme("checkerboard", "Red Checkerboard", "#dc2626", "#dc2626")),
	premiumTheme(newTheme("argyle", "Blue Argyle", "#3b82f6", "#3b82f6")),
	premiumTheme(newTheme("leafPattern", "Verdant Leaves", "#22c55e", "#22c55e")),
}

func newTheme(key, name, background, accent string) Theme {
	return Theme{
		Key:            key,
		Name:           name,
		Background:     background,
		CardBackground: "#ffffff",
		TextPrimary:    "#1f2937",
		TextSecondary:  "#6b7280",
		Accent:         accent,
		Border:         "#e5e7eb",
		Hover:          accent,
		Price:          decimal.Zero,
	}
}

func premiumTheme(t Theme) Theme {
	t.Premium = true
	t.Price = premiumPrice
	return t
}

// LookupTheme finds a theme by key
func LookupTheme(key string) (Theme, bool) {
	for _, t := range Themes {
		if t.Key == key {
			return t, true
		}
	}
	return Theme{}, false
}
