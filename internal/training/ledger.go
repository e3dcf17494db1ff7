package training

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/maragym/gymlog/internal/kvstore"
	"github.com/maragym/gymlog/internal/log"
	"github.com/maragym/gymlog/internal/pubsub"
)

// EntriesKey is the store key the ledger owns.
const EntriesKey = "training-entries"

// EntryLedger owns the logged sets. The raw list keeps newest-added first;
// the exposed view is re-sorted by date (descending) on every change.
type EntryLedger struct {
	mu     sync.RWMutex
	store  *kvstore.Store
	list   []TrainingEntry
	sorted []TrainingEntry
	broker *pubsub.Broker[[]TrainingEntry]
	newID  func() string
}

// NewEntryLedger loads the persisted entries from store.
func NewEntryLedger(store *kvstore.Store) (*EntryLedger, error) {
	list, err := kvstore.ReadList[TrainingEntry](store, EntriesKey)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatLedger, "loaded entries", "count", len(list))
	return &EntryLedger{
		store:  store,
		list:   list,
		sorted: sortByDateDesc(list),
		broker: pubsub.NewBroker[[]TrainingEntry](),
		newID:  uuid.NewString,
	}, nil
}

func sortByDateDesc(list []TrainingEntry) []TrainingEntry {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b TrainingEntry) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return sorted
}

// Entries returns every entry, newest date first.
func (l *EntryLedger) Entries() []TrainingEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.sorted)
}

// EntriesForExercise returns the date-sorted entries of one exercise.
func (l *EntryLedger) EntriesForExercise(exerciseID string) []TrainingEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return filterByExercise(l.sorted, exerciseID)
}

func filterByExercise(entries []TrainingEntry, exerciseID string) []TrainingEntry {
	out := []TrainingEntry{}
	for _, e := range entries {
		if e.ExerciseID == exerciseID {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the entry with id.
func (l *EntryLedger) Get(id string) (TrainingEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := slices.IndexFunc(l.list, func(e TrainingEntry) bool { return e.ID == id })
	if i < 0 {
		return TrainingEntry{}, false
	}
	return l.list[i], true
}

// Add stores a new entry with a fresh id.
func (l *EntryLedger) Add(payload NewEntry) (TrainingEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := TrainingEntry{
		ID:         l.newID(),
		ExerciseID: payload.ExerciseID,
		Weight:     payload.Weight,
		Reps:       payload.Reps,
		Date:       payload.Date,
	}
	next := append([]TrainingEntry{entry}, l.list...)
	if err := l.persist(next, pubsub.CreatedEvent); err != nil {
		return TrainingEntry{}, err
	}
	log.Info(log.CatLedger, "added entry", "id", entry.ID, "exercise", entry.ExerciseID, "date", entry.Date)
	return entry, nil
}

// Update replaces the entry with the same id. Unknown ids are ignored
// without writing.
func (l *EntryLedger) Update(entry TrainingEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.list, func(e TrainingEntry) bool { return e.ID == entry.ID })
	if i < 0 {
		log.Debug(log.CatLedger, "update skipped, unknown entry", "id", entry.ID)
		return nil
	}
	next := slices.Clone(l.list)
	next[i] = entry
	return l.persist(next, pubsub.UpdatedEvent)
}

// Remove deletes the entry with id.
func (l *EntryLedger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(l.list), func(e TrainingEntry) bool { return e.ID == id })
	return l.persist(next, pubsub.DeletedEvent)
}

// ClearForExercise deletes every entry of exerciseID.
func (l *EntryLedger) ClearForExercise(exerciseID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(l.list), func(e TrainingEntry) bool { return e.ExerciseID == exerciseID })
	return l.persist(next, pubsub.ReplacedEvent)
}

// ReplaceAll overwrites the ledger. Exercise ids are not checked.
func (l *EntryLedger) ReplaceAll(list []TrainingEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if list == nil {
		list = []TrainingEntry{}
	}
	return l.persist(slices.Clone(list), pubsub.ReplacedEvent)
}

// Subscribe returns a channel of date-sorted snapshots, one per mutation.
func (l *EntryLedger) Subscribe(ctx context.Context) <-chan pubsub.Event[[]TrainingEntry] {
	return l.broker.Subscribe(ctx)
}

// Close stops change notifications.
func (l *EntryLedger) Close() {
	l.broker.Close()
}

// persist must be called with mu held.
func (l *EntryLedger) persist(next []TrainingEntry, event pubsub.EventType) error {
	if err := l.store.Write(EntriesKey, next); err != nil {
		log.ErrorErr(log.CatLedger, "failed to persist entries", err)
		return err
	}
	l.list = next
	l.sorted = sortByDateDesc(next)
	l.broker.Publish(event, slices.Clone(l.sorted))
	return nil
}
