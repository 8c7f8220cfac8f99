// Package mediumtest is a conformance suite shared by every storage medium.
package mediumtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daybook/internal/storage"
)

// Factory returns an initialized, empty medium. Cleanup is the factory's job.
type Factory func(t *testing.T) storage.Medium

// Run exercises the Medium contract against media produced by newMedium.
func Run(t *testing.T, newMedium Factory) {
	t.Run("GetMissing", func(t *testing.T) {
		m := newMedium(t)
		v, ok, err := m.Get("absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.Set("moods", `{"2024-01-01":"happy"}`))

		v, ok, err := m.Get("moods")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"2024-01-01":"happy"}`, v)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.Set("notesAppTheme", `"default"`))
		require.NoError(t, m.Set("notesAppTheme", `"sunset"`))

		v, _, err := m.Get("notesAppTheme")
		require.NoError(t, err)
		assert.Equal(t, `"sunset"`, v)
	})

	t.Run("Delete", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.Set("reminders", `[]`))
		require.NoError(t, m.Delete("reminders"))
		require.NoError(t, m.Delete("reminders"), "deleting a missing key is not an error")

		_, ok, err := m.Get("reminders")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("KeysSorted", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.Set("routines", `[]`))
		require.NoError(t, m.Set("journalEntries", `[]`))
		require.NoError(t, m.Set("moods", `{}`))

		keys, err := m.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"journalEntries", "moods", "routines"}, keys)
	})

	t.Run("UnicodeValues", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.Set("journalEntries", `[{"title":"Café ☕ 😸"}]`))
		v, _, err := m.Get("journalEntries")
		require.NoError(t, err)
		assert.Equal(t, `[{"title":"Café ☕ 😸"}]`, v)
	})

	t.Run("ConfigPathNonEmpty", func(t *testing.T) {
		assert.NotEmpty(t, newMedium(t).GetConfigPath())
	})
}
