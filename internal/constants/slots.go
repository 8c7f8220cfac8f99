package constants

// Slot keys in the key-value medium. Each entity kind owns exactly one slot.
const (
	SlotMoods             = "moods"
	SlotReminders         = "reminders"
	SlotRoutines          = "routines"
	SlotJournalEntries    = "journalEntries"
	SlotPurchasedThemes   = "purchasedThemes"
	SlotPurchasedStickers = "purchasedStickers"
	SlotSelectedTheme     = "notesAppTheme"
	SlotSelectedStickers  = "selectedStickerPack"
	SlotPomodoroSettings  = "pomodoroSettings"
)

// AllSlots lists every slot key known to the application, in a stable order.
var AllSlots = []string{
	SlotMoods,
	SlotReminders,
	SlotRoutines,
	SlotJournalEntries,
	SlotPurchasedThemes,
	SlotPurchasedStickers,
	SlotSelectedTheme,
	SlotSelectedStickers,
	SlotPomodoroSettings,
}
