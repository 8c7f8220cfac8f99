package models

import "github.com/shopspring/decimal"

// StickerPack maps each mood level to the emoji used to draw it
type StickerPack struct {
	Key         string
	Name        string
	Description string
	Premium     bool
	Price       decimal.Decimal
	Emoji       map[MoodID]string
}

const DefaultStickerPackKey = "default"

var StickerPacks = []StickerPack{
	{
		Key:   "default",
		Name:  "Default",
		Price: decimal.Zero,
		Emoji: map[MoodID]string{
			MoodVeryHappy: "😄", MoodHappy: "😊", MoodNeutral: "😐", MoodSad: "😢", MoodVerySad: "😭",
		},
	},
	{
		Key:         "cats",
		Name:        "Cat Faces",
		Description: "Adorable cat expressions for your mood tracking",
		Premium:     true,
		Price:       premiumPrice,
		Emoji: map[MoodID]string{
			MoodVeryHappy: "😸", MoodHappy: "😹", MoodNeutral: "😼", MoodSad: "😿", MoodVerySad: "🙀",
		},
	},
	{
		Key:         "theatre",
		Name:        "Theatre Masks",
		Description: "Dramatic expressions for creative moods",
		Premium:     true,
		Price:       premiumPrice,
		Emoji: map[MoodID]string{
			MoodVeryHappy: "🎭", MoodHappy: "🎪", MoodNeutral: "🎨", MoodSad: "🎬", MoodVerySad: "🎤",
		},
	},
	{
		Key:         "nature",
		Name:        "Nature Vibes",
		Description: "Natural elements to express your connection with nature",
		Premium:     true,
		Price:       premiumPrice,
		Emoji: map[MoodID]string{
			MoodVeryHappy: "🌞", MoodHappy: "🌸", MoodNeutral: "🌿", MoodSad: "🌙", MoodVerySad: "⭐",
		},
	},
}

func LookupStickerPack(key string) (StickerPack, bool) {
	for _, p := range StickerPacks {
		if p.Key == key {
			return p, true
		}
	}
	return StickerPack{}, false
}

// EmojiFor returns the emoji for id in this pack, falling back to the default pack
func (p StickerPack) EmojiFor(id MoodID) string {
	if e, ok := p.Emoji[id]; ok {
		return e
	}
	return StickerPacks[0].Emoji[id]
}
