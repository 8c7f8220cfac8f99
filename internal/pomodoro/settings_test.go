package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/storage/memory"
)

func TestControllerPersistsDuration(t *testing.T) {
	repos := storage.NewRepositories(memory.New())
	bus := events.NewBus()
	published := 0
	bus.Subscribe(func(events.Event) { published++ })

	c, err := New(repos.Pomodoro, bus)
	require.NoError(t, err)
	assert.Equal(t, 25, c.Settings().DurationMin)

	require.NoError(t, c.SelectDuration(15))
	assert.Equal(t, 15*60, c.Timer.State().RemainingSeconds)
	require.NoError(t, c.SelectDuration(15))
	assert.Equal(t, 1, published)

	again, err := New(repos.Pomodoro, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, again.Timer.Minutes())
}

func TestControllerRejectsOddDurations(t *testing.T) {
	repos := storage.NewRepositories(memory.New())
	c, err := New(repos.Pomodoro, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, c.SelectDuration(7), apperrors.ErrUnknownKey)
	assert.Equal(t, 25, c.Timer.Minutes())
}

func TestControllerIgnoresStoredOddDuration(t *testing.T) {
	repos := storage.NewRepositories(memory.New())
	require.NoError(t, repos.Pomodoro.Save(models.PomodoroSettings{DurationMin: 90}))

	c, err := New(repos.Pomodoro, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, c.Timer.Minutes())
}

func TestControllerReload(t *testing.T) {
	repos := storage.NewRepositories(memory.New())
	c, err := New(repos.Pomodoro, nil)
	require.NoError(t, err)
	other, err := New(repos.Pomodoro, nil)
	require.NoError(t, err)

	require.NoError(t, other.SelectDuration(15))
	assert.Equal(t, 25, c.Timer.Minutes())
	require.NoError(t, c.Reload())
	assert.Equal(t, 15, c.Timer.Minutes())
	assert.Equal(t, 15, c.Settings().DurationMin)

	c.Timer.Toggle()
	c.Timer.Tick()
	require.NoError(t, other.SelectDuration(5))
	require.NoError(t, c.Reload())
	assert.Equal(t, 15, c.Timer.Minutes(), "a running countdown is not reset")
	assert.Equal(t, 15*60-1, c.Timer.State().RemainingSeconds)

	c.Timer.Pause()
	require.NoError(t, c.Reload())
	assert.Equal(t, 5, c.Timer.Minutes())
}
