// Package events fans controller change notifications out to presenters.
package events

import (
	"slices"
	"sync"
)

type Kind string

const (
	KindMood      Kind = "mood"
	KindReminders Kind = "reminders"
	KindRoutines  Kind = "routines"
	KindJournal   Kind = "journal"
	KindThemes    Kind = "themes"
	KindStickers  Kind = "stickers"
	KindTimer     Kind = "timer"
	// KindExternal is published when the medium changed outside this process.
	KindExternal Kind = "external"
)

// Event announces that the slot behind Kind was persisted.
type Event struct {
	Kind Kind
	Slot string
}

// Bus is a synchronous publish/subscribe hub. A nil *Bus discards events.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish calls every subscriber in registration order.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}

	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
